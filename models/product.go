package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Photo is stored inline on the product document. The binary payload is
// never serialized in JSON responses; it is served raw by the photo endpoint.
type Photo struct {
	Data        []byte `json:"-" bson:"data,omitempty"`
	ContentType string `json:"contentType,omitempty" bson:"contentType,omitempty"`
}

type Product struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Category    primitive.ObjectID `json:"category" bson:"category"`
	Quantity    int                `json:"quantity" bson:"quantity"`
	Sold        int                `json:"sold" bson:"sold"`
	Photo       *Photo             `json:"-" bson:"photo,omitempty"`
	Shipping    *bool              `json:"shipping,omitempty" bson:"shipping,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// Field length limits enforced at validation time; the store itself does not
// reject oversized values.
const (
	MaxProductNameLen        = 32
	MaxProductDescriptionLen = 2000
)
