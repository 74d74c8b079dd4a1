// Package payment wraps the external payment processor behind a small
// interface so handlers can be exercised without network access.
package payment

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// IntentCreator creates a payment intent for an amount in minor units and
// returns the client-side secret the browser needs to confirm the payment.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error)
}

// StripeIntents implements IntentCreator against the Stripe API.  The
// secret key is global to the stripe-go client, so Configure must be
// called once at startup before any intent is created.
type StripeIntents struct {
	Currency string
}

// Configure installs the API secret key into the stripe client.
func Configure(secretKey string) {
	stripe.Key = secretKey
}

// NewStripeIntents returns a StripeIntents fixed to the given currency.
func NewStripeIntents(currency string) *StripeIntents {
	return &StripeIntents{Currency: currency}
}

// CreateIntent requests a card-only payment intent from Stripe and returns
// its client secret.  Amount is already in minor units; no bounds are
// enforced here, matching the upstream contract.
func (s *StripeIntents) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	if currency == "" {
		currency = s.Currency
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}
