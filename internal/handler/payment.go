package handler

import (
	"log"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportfitx/class-booking/internal/model"
	"github.com/sportfitx/class-booking/internal/payment"
	"github.com/sportfitx/class-booking/internal/queue"
	"github.com/sportfitx/class-booking/internal/repository"
	queue_publisher "github.com/sportfitx/class-booking/internal/service"
)

// PaymentHandler serves intent creation and settlement.  Settlement is the
// only handler that composes more than one write: it records the payment,
// frees the matching selection and moves the class counters, in that order
// and without a shared transaction.  A crash between steps leaves partial
// state; nothing here detects or repairs it.
type PaymentHandler struct {
	Payments   repository.PaymentStore
	Selections repository.SelectionStore
	Classes    repository.ClassStore
	Intents    payment.IntentCreator
	AMQPURL    string // empty disables settlement events
}

// NewPaymentHandler constructs a PaymentHandler.  All stores and the intent
// creator must be non-nil.
func NewPaymentHandler(payments repository.PaymentStore, selections repository.SelectionStore, classes repository.ClassStore, intents payment.IntentCreator, amqpURL string) *PaymentHandler {
	if payments == nil || selections == nil || classes == nil || intents == nil {
		panic("nil dependency passed to NewPaymentHandler")
	}
	return &PaymentHandler{
		Payments:   payments,
		Selections: selections,
		Classes:    classes,
		Intents:    intents,
		AMQPURL:    amqpURL,
	}
}

type createIntentRequest struct {
	Price float64 `json:"price"`
}

type settleRequest struct {
	Email   string  `json:"email" validate:"required,email"`
	ClassID string  `json:"class_id" validate:"required"`
	Amount  float64 `json:"amount" validate:"required"`
}

// CreateIntent handles POST /create-payment-intent.  The price is
// converted to minor units and handed to the processor; the client secret
// comes back for the browser to confirm the payment.  The route carries no
// auth and the price is not bounds-checked, both kept as-is from the
// upstream contract.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var body createIntentRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid request body"})
	}
	amount := int64(math.Round(body.Price * 100))
	secret, err := h.Intents.CreateIntent(c.Request().Context(), amount, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "payment intent failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": secret})
}

// List handles GET /payments?email=: one student's settlement history,
// newest first.  The supplied email must match the verified identity.
func (h *PaymentHandler) List(c echo.Context) error {
	email, ok := ownEmail(c, c.QueryParam("email"))
	if !ok {
		return nil
	}
	pays, err := h.Payments.ListByEmail(c.Request().Context(), email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "database error"})
	}
	return c.JSON(http.StatusOK, pays)
}

// Settle handles POST /payments.  The write sequence is:
//
//  1. insert the payment record — the authoritative log, always first; if
//     this fails the request aborts with no partial writes;
//  2. delete any selection matching the class id;
//  3. $inc the class counters with upsert enabled.
//
// Steps 2 and 3 are not rolled back and their failures do not fail the
// request: all three sub-results are returned as-is and the caller infers
// problems from them.  There is no idempotency key, so a client retry
// after partial success settles twice.
func (h *PaymentHandler) Settle(c echo.Context) error {
	var body settleRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	ctx := c.Request().Context()

	insertRes, err := h.Payments.Insert(ctx, model.Payment{
		Email:   body.Email,
		ClassID: body.ClassID,
		Amount:  body.Amount,
		Date:    time.Now().UTC(),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "settlement failed"})
	}

	deleteRes, err := h.Selections.DeleteByClassID(ctx, body.ClassID)
	if err != nil {
		log.Printf("settlement: selection delete failed for class %s: %v", body.ClassID, err)
	}
	updateRes, err := h.Classes.ApplySettlement(ctx, body.ClassID)
	if err != nil {
		log.Printf("settlement: class update failed for class %s: %v", body.ClassID, err)
	}

	ev := queue.SettlementRecordedEvent{
		Email:      body.Email,
		ClassID:    body.ClassID,
		Amount:     body.Amount,
		RecordedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if deleteRes != nil {
		ev.SelectionsFreed = deleteRes.DeletedCount
	}
	if updateRes != nil {
		ev.ClassUpserted = updateRes.UpsertedCount > 0
	}
	_ = queue_publisher.PublishSettlementRecorded(ctx, h.AMQPURL, ev)

	return c.JSON(http.StatusOK, echo.Map{
		"insertResult": insertRes,
		"deleteResult": deleteRes,
		"updateResult": updateRes,
	})
}
