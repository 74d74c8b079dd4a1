package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// ClassStatus tracks the approval state of a class.  Instructors create
// classes as pending; an admin flips them to approved via the generic
// class update.  Only approved classes appear on the public listing.
type ClassStatus string

const (
	ClassPending  ClassStatus = "pending"
	ClassApproved ClassStatus = "approved"
)

// Class mirrors a document in the `classes` collection.  The instructor is
// referenced by embedded email rather than by id, matching the ownership
// checks on the instructor routes.  TotalSeats decreases and Enrollment
// increases in lockstep as settlements complete.
type Class struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name            string             `bson:"name,omitempty" json:"name,omitempty"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	InstructorName  string             `bson:"instructor_name,omitempty" json:"instructor_name,omitempty"`
	InstructorEmail string             `bson:"instructor_email,omitempty" json:"instructor_email,omitempty"`
	Price           float64            `bson:"price,omitempty" json:"price,omitempty"`
	Status          ClassStatus        `bson:"status,omitempty" json:"status,omitempty"`
	TotalSeats      int64              `bson:"total_seats" json:"total_seats"`
	Enrollment      int64              `bson:"enrollment" json:"enrollment"`
}
