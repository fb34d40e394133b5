package services

import (
	"context"
	"math"

	"github.com/braintree-go/braintree-go"
	"go.uber.org/zap"
)

// PaymentResult is what order assembly persists from a captured payment.
type PaymentResult struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
}

// PaymentGateway is the narrow payment collaborator interface: client-token
// generation and sale submission. Gateway internals are out of scope.
type PaymentGateway interface {
	ClientToken(ctx context.Context) (string, *ServiceError)
	Sale(ctx context.Context, nonce string, amount float64) (*PaymentResult, *ServiceError)
}

type braintreeGateway struct {
	bt     *braintree.Braintree
	logger *zap.Logger
}

// NewBraintreeGateway builds the Braintree-backed gateway. The sandbox
// environment is used unless env is "production".
func NewBraintreeGateway(env, merchantID, publicKey, privateKey string, logger *zap.Logger) PaymentGateway {
	environment := braintree.Sandbox
	if env == "production" {
		environment = braintree.Production
	}
	return &braintreeGateway{
		bt:     braintree.New(environment, merchantID, publicKey, privateKey),
		logger: logger,
	}
}

func (g *braintreeGateway) ClientToken(ctx context.Context) (string, *ServiceError) {
	token, err := g.bt.ClientToken().Generate(ctx)
	if err != nil {
		g.logger.Error("client token generation failed", zap.Error(err))
		return "", errBadRequest("Could not generate client token")
	}
	return token, nil
}

func (g *braintreeGateway) Sale(ctx context.Context, nonce string, amount float64) (*PaymentResult, *ServiceError) {
	cents := int64(math.Round(amount * 100))
	tx, err := g.bt.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(cents, 2),
		PaymentMethodNonce: nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	})
	if err != nil {
		g.logger.Error("payment capture failed", zap.Error(err))
		return nil, errBadRequest("Payment failed")
	}
	return &PaymentResult{TransactionID: tx.Id, Amount: amount}, nil
}
