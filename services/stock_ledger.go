package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/5ecured/e-commerce/repository"
)

// LineItem is one product/quantity pair of a finalized order.
type LineItem struct {
	ProductID primitive.ObjectID
	Count     int
}

// StockLedger adjusts product stock counters as a side effect of order
// placement: per product, quantity -= count and sold += count, submitted as a
// single bulk batch. There is no multi-document transaction guarantee
// underneath, and no conditional-update guard: concurrent checkouts for the
// same product can race on quantity/sold.
type StockLedger interface {
	Apply(ctx context.Context, items []LineItem) *ServiceError
}

type stockLedger struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewStockLedger(products repository.ProductRepository, logger *zap.Logger) StockLedger {
	return &stockLedger{products: products, logger: logger}
}

func (l *stockLedger) Apply(ctx context.Context, items []LineItem) *ServiceError {
	adjustments := make([]repository.StockAdjustment, 0, len(items))
	for _, item := range items {
		adjustments = append(adjustments, repository.StockAdjustment{
			ProductID:     item.ProductID,
			QuantityDelta: -item.Count,
			SoldDelta:     item.Count,
		})
	}
	if err := l.products.AdjustStock(ctx, adjustments); err != nil {
		l.logger.Error("stock batch update failed", zap.Error(err))
		return errBadRequest("Could not update stock")
	}
	return nil
}
