// Package payment adapts the Stripe API to the PaymentProvider port.
package payment

import (
	"context"
	"fmt"
	"math"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/donorhub/donorhub-api/internal/core/ports"
)

// StripeProvider creates PaymentIntents through an explicitly constructed
// Stripe client handle; no package-global key is set.
type StripeProvider struct {
	api      *client.API
	currency string
}

// NewStripeProvider builds a provider for the given secret key and
// three-letter currency code (e.g. "usd").
func NewStripeProvider(secretKey, currency string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api, currency: currency}
}

// CreateIntent creates a card PaymentIntent for amount major units,
// converted to the minor-unit integer Stripe expects.
func (p *StripeProvider) CreateIntent(ctx context.Context, amount float64) (*ports.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(math.Round(amount * 100))),
		Currency:           stripe.String(p.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent: %w", err)
	}
	return &ports.PaymentIntent{ClientSecret: pi.ClientSecret}, nil
}
