package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sportfitx/class-booking/internal/model"
	"github.com/sportfitx/class-booking/internal/repository"
)

// popularLimit caps the popular listings at six documents.
const popularLimit = 6

// UserHandler serves the user resource.  All methods perform exactly one
// collection operation and return the raw result.
type UserHandler struct {
	Users repository.UserStore
}

// NewUserHandler constructs a UserHandler.  The store must be non-nil.
func NewUserHandler(users repository.UserStore) *UserHandler {
	if users == nil {
		panic("nil store passed to NewUserHandler")
	}
	return &UserHandler{Users: users}
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
	Photo string `json:"photo"`
}

type patchRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=instructor admin"`
}

// List handles GET /users and returns every user document.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
	}
	return c.JSON(http.StatusOK, users)
}

// GetByEmail handles GET /users/:email.  A missing record is not an error:
// the response is an empty 200 body, mirroring the store returning null.
func (h *UserHandler) GetByEmail(c echo.Context) error {
	u, err := h.Users.FindByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, nil)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
	}
	return c.JSON(http.StatusOK, u)
}

// Create handles POST /users.  Users are created on first sign-in; when a
// record for the email already exists the handler short-circuits with a
// message body instead of inserting a second document.
func (h *UserHandler) Create(c echo.Context) error {
	var body createUserRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	res, err := h.Users.Insert(c.Request().Context(), model.User{
		Name:  body.Name,
		Email: body.Email,
		Photo: body.Photo,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusOK, echo.Map{"message": "user already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
	}
	return c.JSON(http.StatusOK, res)
}

// PatchRole handles PATCH /users/:id and sets the role attribute.
func (h *UserHandler) PatchRole(c echo.Context) error {
	var body patchRoleRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	res, err := h.Users.PatchRole(c.Request().Context(), c.Param("id"), model.Role(body.Role))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid user id"})
	}
	return c.JSON(http.StatusOK, res)
}

// Manage handles GET /manage-users for admins.  Same unfiltered listing as
// GET /users; the route differs only in its guard chain.
func (h *UserHandler) Manage(c echo.Context) error {
	return h.List(c)
}

// Instructors handles GET /instructor and lists users holding the
// instructor role.
func (h *UserHandler) Instructors(c echo.Context) error {
	users, err := h.Users.ListByRole(c.Request().Context(), model.RoleInstructor)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
	}
	return c.JSON(http.StatusOK, users)
}

// PopularInstructors handles GET /popular-instructor: instructors sorted by
// enrolled count descending, at most six.
func (h *UserHandler) PopularInstructors(c echo.Context) error {
	users, err := h.Users.PopularByRole(c.Request().Context(), model.RoleInstructor, popularLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
	}
	return c.JSON(http.StatusOK, users)
}
