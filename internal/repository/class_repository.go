package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sportfitx/class-booking/internal/model"
)

// ClassStore is the contract handlers depend on for the `classes`
// collection.  ListApproved backs the public listing; ListAll backs the
// admin management route and returns every status unfiltered.
type ClassStore interface {
	ListApproved(ctx context.Context) ([]model.Class, error)
	ListAll(ctx context.Context) ([]model.Class, error)
	FindByID(ctx context.Context, id string) (model.Class, error)
	Insert(ctx context.Context, cl model.Class) (*mongo.InsertOneResult, error)
	Set(ctx context.Context, id string, fields bson.M) (*mongo.UpdateResult, error)
	Popular(ctx context.Context, limit int64) ([]model.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]model.Class, error)
	ApplySettlement(ctx context.Context, classID string) (*mongo.UpdateResult, error)
}

// ClassRepo implements ClassStore over a mongo collection.
type ClassRepo struct{ col *mongo.Collection }

// NewClassRepo wraps the `classes` collection of the given database.
func NewClassRepo(db *mongo.Database) *ClassRepo {
	return &ClassRepo{col: db.Collection("classes")}
}

// ListApproved returns classes whose status is approved.
func (r *ClassRepo) ListApproved(ctx context.Context) ([]model.Class, error) {
	return r.list(ctx, bson.M{"status": model.ClassApproved}, nil)
}

// ListAll returns every class regardless of status.
func (r *ClassRepo) ListAll(ctx context.Context) ([]model.Class, error) {
	return r.list(ctx, bson.M{}, nil)
}

// FindByID fetches a class by its hex id.  ErrNotFound is returned when no
// document matches.
func (r *ClassRepo) FindByID(ctx context.Context, id string) (model.Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Class{}, err
	}
	var cl model.Class
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&cl)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Class{}, ErrNotFound
	}
	return cl, err
}

// Insert creates a class document.
func (r *ClassRepo) Insert(ctx context.Context, cl model.Class) (*mongo.InsertOneResult, error) {
	return r.col.InsertOne(ctx, cl)
}

// Set applies a $set of the given fields to the class identified by id,
// inserting a new document when none matches (upsert).  This backs the
// generic PUT used by admins to approve classes and by instructors to
// edit theirs.
func (r *ClassRepo) Set(ctx context.Context, id string, fields bson.M) (*mongo.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": fields},
		options.Update().SetUpsert(true))
}

// Popular returns at most limit classes sorted by enrollment descending.
func (r *ClassRepo) Popular(ctx context.Context, limit int64) ([]model.Class, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "enrollment", Value: -1}}).
		SetLimit(limit)
	return r.list(ctx, bson.M{}, opts)
}

// ListByInstructor returns the classes owned by the given instructor email.
func (r *ClassRepo) ListByInstructor(ctx context.Context, email string) ([]model.Class, error) {
	return r.list(ctx, bson.M{"instructor_email": email}, nil)
}

// ApplySettlement increments the class enrollment and decrements its seat
// count in a single document update.  Upsert stays enabled for parity with
// the original behaviour: settling an unknown classID creates a near-empty
// class document holding only the counters.
func (r *ClassRepo) ApplySettlement(ctx context.Context, classID string) (*mongo.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(classID)
	if err != nil {
		return nil, err
	}
	return r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"enrollment": 1, "total_seats": -1}},
		options.Update().SetUpsert(true))
}

func (r *ClassRepo) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Class, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.col.Find(ctx, filter, opts)
	} else {
		cur, err = r.col.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	var classes []model.Class
	if err := cur.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}
