package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer = 0
	RoleAdmin    = 1
)

// PurchaseRecord is a denormalized line-item snapshot appended to a user's
// purchase history at checkout. It is decoupled from later product edits.
type PurchaseRecord struct {
	Product       primitive.ObjectID `json:"product" bson:"product"`
	Name          string             `json:"name" bson:"name"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Category      primitive.ObjectID `json:"category" bson:"category"`
	Quantity      int                `json:"quantity" bson:"quantity"`
	TransactionID string             `json:"transaction_id" bson:"transaction_id"`
	Amount        float64            `json:"amount" bson:"amount"`
}

// User holds account and profile data. HashedPassword must never appear in a
// response payload, hence the json:"-" tag.
type User struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	HashedPassword string             `json:"-" bson:"hashed_password"`
	Role           int                `json:"role" bson:"role"`
	History        []PurchaseRecord   `json:"history" bson:"history"`
	Address        string             `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updated_at"`
}
