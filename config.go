package main

import (
	"fmt"
	"os"
)

// Config holds all environment variables for the server.
type Config struct {
	Env       string
	Port      string
	MongoURI  string
	MongoDB   string
	JWTSecret string

	BraintreeMerchantID string
	BraintreePublicKey  string
	BraintreePrivateKey string
}

// LoadConfig loads environment variables into a Config struct and validates
// them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Env:       os.Getenv("ENV"),
		Port:      os.Getenv("PORT"),
		MongoURI:  os.Getenv("MONGO_URI"),
		MongoDB:   os.Getenv("MONGO_DB"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		BraintreeMerchantID: os.Getenv("BRAINTREE_MERCHANT_ID"),
		BraintreePublicKey:  os.Getenv("BRAINTREE_PUBLIC_KEY"),
		BraintreePrivateKey: os.Getenv("BRAINTREE_PRIVATE_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "ecommerce"
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
