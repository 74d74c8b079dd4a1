package repository

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sportfitx/class-booking/internal/model"
)

// UserStore is the contract handlers depend on for the `users` collection.
// Raw driver results are passed through unchanged so callers see inserted
// ids and matched/modified counts exactly as the store reports them.
type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Insert(ctx context.Context, u model.User) (*mongo.InsertOneResult, error)
	PatchRole(ctx context.Context, id string, role model.Role) (*mongo.UpdateResult, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	PopularByRole(ctx context.Context, role model.Role, limit int64) ([]model.User, error)
}

// UserRepo implements UserStore over a mongo collection.
type UserRepo struct{ col *mongo.Collection }

// NewUserRepo wraps the `users` collection of the given database.
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection("users")}
}

// RoleOf reports the stored role for an email.  It backs the role gate
// middleware; ErrNotFound means no user record exists for the identity.
func (r *UserRepo) RoleOf(ctx context.Context, email string) (string, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return string(u.Role), nil
}

// List returns every user document, unfiltered.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail fetches a user by normalized email.  ErrNotFound is returned
// when no record exists.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// Insert creates a user document.  ErrDuplicate is returned when a record
// with the same email already exists; the caller never gets a second
// document for the same identity.
func (r *UserRepo) Insert(ctx context.Context, u model.User) (*mongo.InsertOneResult, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if _, err := r.FindByEmail(ctx, u.Email); err == nil {
		return nil, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return r.col.InsertOne(ctx, u)
}

// PatchRole sets the role attribute on the user identified by id.
func (r *UserRepo) PatchRole(ctx context.Context, id string, role model.Role) (*mongo.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"role": role}})
}

// ListByRole returns all users whose role equals the given value.
func (r *UserRepo) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	cur, err := r.col.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// PopularByRole returns at most limit users of the given role, sorted by
// their enrolled count in descending order.
func (r *UserRepo) PopularByRole(ctx context.Context, role model.Role, limit int64) ([]model.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "enrolled", Value: -1}}).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{"role": role}, opts)
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
