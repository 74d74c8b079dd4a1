package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment mirrors a document in the `payments` collection.  Payments are the
// authoritative settlement log: written exactly once by the settlement
// sequence and never mutated or deleted afterwards.
type Payment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email   string             `bson:"email" json:"email"`
	ClassID string             `bson:"class_id" json:"class_id"`
	Amount  float64            `bson:"amount" json:"amount"`
	Date    time.Time          `bson:"date" json:"date"`
}
