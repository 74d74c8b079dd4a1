package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sportfitx/class-booking/internal/model"
	"github.com/sportfitx/class-booking/internal/repository"
)

// ClassHandler serves the class resource: the public listing, the admin
// management view, the instructor's own classes and the generic update.
type ClassHandler struct {
	Classes repository.ClassStore
}

// NewClassHandler constructs a ClassHandler.  The store must be non-nil.
func NewClassHandler(classes repository.ClassStore) *ClassHandler {
	if classes == nil {
		panic("nil store passed to NewClassHandler")
	}
	return &ClassHandler{Classes: classes}
}

type addClassRequest struct {
	Name            string  `json:"name" validate:"required"`
	Image           string  `json:"image"`
	InstructorName  string  `json:"instructor_name"`
	InstructorEmail string  `json:"instructor_email" validate:"required,email"`
	Price           float64 `json:"price" validate:"gte=0"`
	TotalSeats      int64   `json:"total_seats" validate:"gte=0"`
}

type updateClassRequest struct {
	Name           *string  `json:"name"`
	Image          *string  `json:"image"`
	InstructorName *string  `json:"instructor_name"`
	Price          *float64 `json:"price" validate:"omitempty,gte=0"`
	Status         *string  `json:"status" validate:"omitempty,oneof=pending approved"`
	TotalSeats     *int64   `json:"total_seats" validate:"omitempty,gte=0"`
}

// List handles GET /classes.  The public listing shows approved classes
// only; pending ones stay hidden until an admin flips their status.
func (h *ClassHandler) List(c echo.Context) error {
	classes, err := h.Classes.ListApproved(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
	}
	return c.JSON(http.StatusOK, classes)
}

// GetByID handles GET /classes/:id.  A missing record yields an empty 200
// body; a malformed id is a 400.
func (h *ClassHandler) GetByID(c echo.Context) error {
	cl, err := h.Classes.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, nil)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid class id"})
	}
	return c.JSON(http.StatusOK, cl)
}

// Create handles POST /classes.  New classes always start pending.
func (h *ClassHandler) Create(c echo.Context) error {
	var body addClassRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	res, err := h.Classes.Insert(c.Request().Context(), model.Class{
		Name:            body.Name,
		Image:           body.Image,
		InstructorName:  body.InstructorName,
		InstructorEmail: body.InstructorEmail,
		Price:           body.Price,
		Status:          model.ClassPending,
		TotalSeats:      body.TotalSeats,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
	}
	return c.JSON(http.StatusOK, res)
}

// Update handles PUT /classes/:id: a $set of the supplied fields with
// upsert enabled.  Admins use it to approve classes; instructors to edit
// theirs.  Only fields present in the body are written.
func (h *ClassHandler) Update(c echo.Context) error {
	var body updateClassRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	fields := bson.M{}
	if body.Name != nil {
		fields["name"] = *body.Name
	}
	if body.Image != nil {
		fields["image"] = *body.Image
	}
	if body.InstructorName != nil {
		fields["instructor_name"] = *body.InstructorName
	}
	if body.Price != nil {
		fields["price"] = *body.Price
	}
	if body.Status != nil {
		fields["status"] = *body.Status
	}
	if body.TotalSeats != nil {
		fields["total_seats"] = *body.TotalSeats
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "empty update"})
	}
	res, err := h.Classes.Set(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid class id"})
	}
	return c.JSON(http.StatusOK, res)
}

// Popular handles GET /popular-classes: classes sorted by enrollment
// descending, at most six.
func (h *ClassHandler) Popular(c echo.Context) error {
	classes, err := h.Classes.Popular(c.Request().Context(), popularLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
	}
	return c.JSON(http.StatusOK, classes)
}

// Manage handles GET /manage-classes for admins.  Unlike the public
// listing it returns every status unfiltered.
func (h *ClassHandler) Manage(c echo.Context) error {
	classes, err := h.Classes.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
	}
	return c.JSON(http.StatusOK, classes)
}

// My handles GET /my-classes?email= for instructors.  The supplied email
// must match the verified identity.
func (h *ClassHandler) My(c echo.Context) error {
	email, ok := ownEmail(c, c.QueryParam("email"))
	if !ok {
		return nil
	}
	classes, err := h.Classes.ListByInstructor(c.Request().Context(), email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
	}
	return c.JSON(http.StatusOK, classes)
}

// Add handles POST /add-class for instructors.  The embedded instructor
// email must match the verified identity; the new class starts pending.
func (h *ClassHandler) Add(c echo.Context) error {
	var body addClassRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	if _, ok := ownEmail(c, body.InstructorEmail); !ok {
		return nil
	}
	res, err := h.Classes.Insert(c.Request().Context(), model.Class{
		Name:            body.Name,
		Image:           body.Image,
		InstructorName:  body.InstructorName,
		InstructorEmail: body.InstructorEmail,
		Price:           body.Price,
		Status:          model.ClassPending,
		TotalSeats:      body.TotalSeats,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
	}
	return c.JSON(http.StatusOK, res)
}
