package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sportfitx/class-booking/internal/model"
)

// PaymentStore is the contract handlers depend on for the `payments`
// collection.  Payments are append-only; there is no update or delete.
type PaymentStore interface {
	ListByEmail(ctx context.Context, email string) ([]model.Payment, error)
	Insert(ctx context.Context, p model.Payment) (*mongo.InsertOneResult, error)
}

// PaymentRepo implements PaymentStore over a mongo collection.
type PaymentRepo struct{ col *mongo.Collection }

// NewPaymentRepo wraps the `payments` collection of the given database.
func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{col: db.Collection("payments")}
}

// ListByEmail returns one student's payment history, newest first.
func (r *PaymentRepo) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	var pays []model.Payment
	if err := cur.All(ctx, &pays); err != nil {
		return nil, err
	}
	return pays, nil
}

// Insert appends a settlement record.
func (r *PaymentRepo) Insert(ctx context.Context, p model.Payment) (*mongo.InsertOneResult, error) {
	return r.col.InsertOne(ctx, p)
}
