package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sportfitx/class-booking/internal/model"
	"github.com/sportfitx/class-booking/internal/repository"
)

// SelectionHandler serves the selected-class resource: a student's pending
// enrollment intents.
type SelectionHandler struct {
	Selections repository.SelectionStore
}

// NewSelectionHandler constructs a SelectionHandler.  The store must be non-nil.
func NewSelectionHandler(selections repository.SelectionStore) *SelectionHandler {
	if selections == nil {
		panic("nil store passed to NewSelectionHandler")
	}
	return &SelectionHandler{Selections: selections}
}

type createSelectionRequest struct {
	StudentEmail string `json:"student_email" validate:"required,email"`
	ClassID      string `json:"class_id" validate:"required"`
}

// List handles GET /selected-class?email=.  The supplied email must match
// the verified identity; mismatch is forbidden regardless of data present.
func (h *SelectionHandler) List(c echo.Context) error {
	email, ok := ownEmail(c, c.QueryParam("email"))
	if !ok {
		return nil
	}
	sels, err := h.Selections.ListByEmail(c.Request().Context(), email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
	}
	return c.JSON(http.StatusOK, sels)
}

// Create handles POST /selected-class.  Students can only select classes
// for themselves.
func (h *SelectionHandler) Create(c echo.Context) error {
	var body createSelectionRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	if _, ok := ownEmail(c, body.StudentEmail); !ok {
		return nil
	}
	res, err := h.Selections.Insert(c.Request().Context(), model.Selection{
		StudentEmail: body.StudentEmail,
		ClassID:      body.ClassID,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /selected-class/:id and removes one selection.
func (h *SelectionHandler) Delete(c echo.Context) error {
	res, err := h.Selections.DeleteByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid selection id"})
	}
	return c.JSON(http.StatusOK, res)
}
