package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sportfitx/class-booking/internal/model"
)

func TestPublicListingFiltersApproved(t *testing.T) {
	store := &fakeClassStore{classes: []model.Class{
		{Name: "yoga", Status: model.ClassApproved},
		{Name: "boxing", Status: model.ClassPending},
	}}
	h := NewClassHandler(store)

	c, rec := newTestCtx(http.MethodGet, "/classes", "")
	require.NoError(t, h.List(c))

	var got []model.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "yoga", got[0].Name)
}

func TestManageListingIsUnfiltered(t *testing.T) {
	store := &fakeClassStore{classes: []model.Class{
		{Status: model.ClassApproved},
		{Status: model.ClassPending},
	}}
	h := NewClassHandler(store)

	c, rec := newTestCtx(http.MethodGet, "/manage-classes", "")
	require.NoError(t, h.Manage(c))

	var got []model.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestPopularClassesLimitAndOrder(t *testing.T) {
	store := &fakeClassStore{}
	for i := int64(0); i < 9; i++ {
		store.classes = append(store.classes, model.Class{Enrollment: i})
	}
	h := NewClassHandler(store)

	c, rec := newTestCtx(http.MethodGet, "/popular-classes", "")
	require.NoError(t, h.Popular(c))

	var got []model.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 6)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Enrollment, got[i].Enrollment)
	}
}

func TestMyClassesOwnershipMismatch(t *testing.T) {
	h := NewClassHandler(&fakeClassStore{})

	c, rec := newTestCtx(http.MethodGet, "/my-classes?email=a@x.com", "")
	c.Set("email", "b@x.com")
	require.NoError(t, h.My(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"forbidden access"}`, rec.Body.String())
}

func TestAddClassStartsPending(t *testing.T) {
	store := &fakeClassStore{}
	h := NewClassHandler(store)

	body := `{"name":"spin","instructor_email":"i@x.com","price":25,"total_seats":12}`
	c, rec := newTestCtx(http.MethodPost, "/add-class", body)
	c.Set("email", "i@x.com")
	require.NoError(t, h.Add(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.classes, 1)
	assert.Equal(t, model.ClassPending, store.classes[0].Status)
	assert.Equal(t, int64(12), store.classes[0].TotalSeats)
	assert.Zero(t, store.classes[0].Enrollment)
}

func TestAddClassForAnotherInstructorForbidden(t *testing.T) {
	store := &fakeClassStore{}
	h := NewClassHandler(store)

	body := `{"name":"spin","instructor_email":"other@x.com","total_seats":12}`
	c, rec := newTestCtx(http.MethodPost, "/add-class", body)
	c.Set("email", "i@x.com")
	require.NoError(t, h.Add(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, store.classes)
}

func TestUpdateClassApproves(t *testing.T) {
	store := &fakeClassStore{classes: []model.Class{
		{ID: primitive.NewObjectID(), Name: "yoga", Status: model.ClassPending},
	}}
	id := store.classes[0].ID.Hex()

	h := NewClassHandler(store)
	c, rec := newTestCtx(http.MethodPut, "/classes/"+id, `{"status":"approved"}`)
	c.SetPath("/classes/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ClassApproved, store.classes[0].Status)
}
