package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Selection mirrors a document in the `selectedClasses` collection: a
// student's pending intent to enroll in a class.  It is removed either
// explicitly by the student or implicitly when a settlement for the same
// class completes.
type Selection struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	StudentEmail string             `bson:"student_email" json:"student_email"`
	ClassID      string             `bson:"class_id" json:"class_id"`
	SelectedAt   time.Time          `bson:"selected_at,omitempty" json:"selected_at,omitempty"`
}
