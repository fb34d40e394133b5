package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. Any status may move to any other; there is no
// transition graph.
const (
	StatusNotProcessed = "Not processed"
	StatusProcessing   = "Processing"
	StatusShipped      = "Shipped"
	StatusDelivered    = "Delivered"
	StatusCancelled    = "Cancelled"
)

// OrderStatusValues returns the fixed set of valid order statuses.
func OrderStatusValues() []string {
	return []string{
		StatusNotProcessed,
		StatusProcessing,
		StatusShipped,
		StatusDelivered,
		StatusCancelled,
	}
}

// IsValidOrderStatus reports whether s is a member of the status enum.
func IsValidOrderStatus(s string) bool {
	for _, v := range OrderStatusValues() {
		if s == v {
			return true
		}
	}
	return false
}

// OrderItem carries a point-in-time snapshot of the purchased product, so
// order history survives later product edits.
type OrderItem struct {
	Product     primitive.ObjectID `json:"_id" bson:"product"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Category    primitive.ObjectID `json:"category,omitempty" bson:"category,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	Count       int                `json:"count" bson:"count"`
}

// Order is created once at checkout and mutated only by status transitions.
type Order struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Products      []OrderItem        `json:"products" bson:"products"`
	TransactionID string             `json:"transaction_id" bson:"transaction_id"`
	Amount        float64            `json:"amount" bson:"amount"`
	Status        string             `json:"status" bson:"status"`
	User          primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updated_at"`
}
