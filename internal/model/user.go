package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the access level stored on a user document.  A freshly signed-in
// user has no role; instructors and admins are promoted via the role patch
// endpoint.  Matching is exact and case-sensitive throughout the API.
type Role string

const (
	RoleUnset      Role = ""
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// User mirrors a document in the `users` collection.  Identity is the email
// address, which is unique; the document is created on first sign-in and
// never deleted.  Enrolled counts students across an instructor's classes
// and serves as the sort key for the popular-instructor listing.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	Email    string             `bson:"email" json:"email"`
	Photo    string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role     Role               `bson:"role,omitempty" json:"role,omitempty"`
	Enrolled int64              `bson:"enrolled,omitempty" json:"enrolled,omitempty"`
}
