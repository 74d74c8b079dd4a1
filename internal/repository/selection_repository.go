package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sportfitx/class-booking/internal/model"
)

// SelectionStore is the contract handlers depend on for the
// `selectedClasses` collection.  DeleteByClassID exists for the settlement
// sequence, which removes any pending selection for the paid class.
type SelectionStore interface {
	ListByEmail(ctx context.Context, email string) ([]model.Selection, error)
	Insert(ctx context.Context, s model.Selection) (*mongo.InsertOneResult, error)
	DeleteByID(ctx context.Context, id string) (*mongo.DeleteResult, error)
	DeleteByClassID(ctx context.Context, classID string) (*mongo.DeleteResult, error)
}

// SelectionRepo implements SelectionStore over a mongo collection.
type SelectionRepo struct{ col *mongo.Collection }

// NewSelectionRepo wraps the `selectedClasses` collection of the given database.
func NewSelectionRepo(db *mongo.Database) *SelectionRepo {
	return &SelectionRepo{col: db.Collection("selectedClasses")}
}

// ListByEmail returns the pending selections of one student.
func (r *SelectionRepo) ListByEmail(ctx context.Context, email string) ([]model.Selection, error) {
	cur, err := r.col.Find(ctx, bson.M{"student_email": email})
	if err != nil {
		return nil, err
	}
	var sels []model.Selection
	if err := cur.All(ctx, &sels); err != nil {
		return nil, err
	}
	return sels, nil
}

// Insert records a new pending selection, stamping the selection time.
func (r *SelectionRepo) Insert(ctx context.Context, s model.Selection) (*mongo.InsertOneResult, error) {
	if s.SelectedAt.IsZero() {
		s.SelectedAt = time.Now().UTC()
	}
	return r.col.InsertOne(ctx, s)
}

// DeleteByID removes one selection by its hex id.
func (r *SelectionRepo) DeleteByID(ctx context.Context, id string) (*mongo.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return r.col.DeleteOne(ctx, bson.M{"_id": oid})
}

// DeleteByClassID removes a selection matching the given class id.
func (r *SelectionRepo) DeleteByClassID(ctx context.Context, classID string) (*mongo.DeleteResult, error) {
	return r.col.DeleteOne(ctx, bson.M{"class_id": classID})
}
