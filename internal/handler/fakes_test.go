package handler

import (
	"context"
	"errors"
	"net/http/httptest"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sportfitx/class-booking/internal/model"
	"github.com/sportfitx/class-booking/internal/repository"
)

// In-memory fakes implementing the store interfaces.  They reproduce the
// observable store semantics (duplicate refusal, sort-and-limit, upsert on
// settlement) so handler tests exercise real contracts without a database.

type fakeUserStore struct{ users []model.User }

func (f *fakeUserStore) List(context.Context) ([]model.User, error) { return f.users, nil }

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) Insert(_ context.Context, u model.User) (*mongo.InsertOneResult, error) {
	for _, ex := range f.users {
		if ex.Email == u.Email {
			return nil, repository.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	f.users = append(f.users, u)
	return &mongo.InsertOneResult{InsertedID: u.ID}, nil
}

func (f *fakeUserStore) PatchRole(_ context.Context, id string, role model.Role) (*mongo.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	for i := range f.users {
		if f.users[i].ID == oid {
			f.users[i].Role = role
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &mongo.UpdateResult{}, nil
}

func (f *fakeUserStore) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) PopularByRole(ctx context.Context, role model.Role, limit int64) ([]model.User, error) {
	out, _ := f.ListByRole(ctx, role)
	sort.Slice(out, func(i, j int) bool { return out[i].Enrolled > out[j].Enrolled })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeClassStore struct{ classes []model.Class }

func (f *fakeClassStore) ListApproved(context.Context) ([]model.Class, error) {
	var out []model.Class
	for _, cl := range f.classes {
		if cl.Status == model.ClassApproved {
			out = append(out, cl)
		}
	}
	return out, nil
}

func (f *fakeClassStore) ListAll(context.Context) ([]model.Class, error) { return f.classes, nil }

func (f *fakeClassStore) FindByID(_ context.Context, id string) (model.Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Class{}, err
	}
	for _, cl := range f.classes {
		if cl.ID == oid {
			return cl, nil
		}
	}
	return model.Class{}, repository.ErrNotFound
}

func (f *fakeClassStore) Insert(_ context.Context, cl model.Class) (*mongo.InsertOneResult, error) {
	cl.ID = primitive.NewObjectID()
	f.classes = append(f.classes, cl)
	return &mongo.InsertOneResult{InsertedID: cl.ID}, nil
}

func (f *fakeClassStore) Set(_ context.Context, id string, fields bson.M) (*mongo.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	for i := range f.classes {
		if f.classes[i].ID == oid {
			if s, ok := fields["status"].(string); ok {
				f.classes[i].Status = model.ClassStatus(s)
			}
			if n, ok := fields["name"].(string); ok {
				f.classes[i].Name = n
			}
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	f.classes = append(f.classes, model.Class{ID: oid})
	return &mongo.UpdateResult{UpsertedCount: 1, UpsertedID: oid}, nil
}

func (f *fakeClassStore) Popular(_ context.Context, limit int64) ([]model.Class, error) {
	out := append([]model.Class(nil), f.classes...)
	sort.Slice(out, func(i, j int) bool { return out[i].Enrollment > out[j].Enrollment })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeClassStore) ListByInstructor(_ context.Context, email string) ([]model.Class, error) {
	var out []model.Class
	for _, cl := range f.classes {
		if cl.InstructorEmail == email {
			out = append(out, cl)
		}
	}
	return out, nil
}

func (f *fakeClassStore) ApplySettlement(_ context.Context, classID string) (*mongo.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(classID)
	if err != nil {
		return nil, err
	}
	for i := range f.classes {
		if f.classes[i].ID == oid {
			f.classes[i].Enrollment++
			f.classes[i].TotalSeats--
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	// Upsert path: a near-empty document holding only the counters.
	f.classes = append(f.classes, model.Class{ID: oid, Enrollment: 1, TotalSeats: -1})
	return &mongo.UpdateResult{UpsertedCount: 1, UpsertedID: oid}, nil
}

type fakeSelectionStore struct{ selections []model.Selection }

func (f *fakeSelectionStore) ListByEmail(_ context.Context, email string) ([]model.Selection, error) {
	var out []model.Selection
	for _, s := range f.selections {
		if s.StudentEmail == email {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSelectionStore) Insert(_ context.Context, s model.Selection) (*mongo.InsertOneResult, error) {
	s.ID = primitive.NewObjectID()
	f.selections = append(f.selections, s)
	return &mongo.InsertOneResult{InsertedID: s.ID}, nil
}

func (f *fakeSelectionStore) DeleteByID(_ context.Context, id string) (*mongo.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	for i, s := range f.selections {
		if s.ID == oid {
			f.selections = append(f.selections[:i], f.selections[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}

func (f *fakeSelectionStore) DeleteByClassID(_ context.Context, classID string) (*mongo.DeleteResult, error) {
	for i, s := range f.selections {
		if s.ClassID == classID {
			f.selections = append(f.selections[:i], f.selections[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}

type fakePaymentStore struct{ payments []model.Payment }

func (f *fakePaymentStore) ListByEmail(_ context.Context, email string) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range f.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakePaymentStore) Insert(_ context.Context, p model.Payment) (*mongo.InsertOneResult, error) {
	p.ID = primitive.NewObjectID()
	f.payments = append(f.payments, p)
	return &mongo.InsertOneResult{InsertedID: p.ID}, nil
}

type fakeIntents struct {
	lastAmount int64
	err        error
}

func (f *fakeIntents) CreateIntent(_ context.Context, amountCents int64, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastAmount = amountCents
	return "cs_test_secret", nil
}

var errUpstream = errors.New("upstream failure")

// newTestCtx builds an echo context with the application validator wired,
// a JSON body and a recorder capturing the response.
func newTestCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
