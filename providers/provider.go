// Package providers holds the payment provider capability: the interface the
// lifecycle engine calls to initiate, authorize, capture, refund and cancel
// payments, and the providers shipped with the service.
package providers

import (
	"context"
	"sort"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/money"
)

// AuthorizeResult is the outcome of asking a provider to authorize a session.
type AuthorizeResult struct {
	Status models.PaymentSessionStatus
	Data   map[string]interface{}
}

// PaymentInput describes a money movement against an authorized payment.
// Amount is the amount of this movement, not the payment total.
type PaymentInput struct {
	PaymentID    string
	CurrencyCode string
	Amount       money.BigNumber
	Data         map[string]interface{}
}

// PaymentProvider is the capability every payment provider implements.
// Returned data maps replace the provider data held on the session or
// payment.
type PaymentProvider interface {
	Identifier() string
	InitiatePayment(ctx context.Context, input models.PaymentProviderContext) (map[string]interface{}, error)
	UpdatePayment(ctx context.Context, data map[string]interface{}, input models.PaymentProviderContext) (map[string]interface{}, error)
	AuthorizePayment(ctx context.Context, data map[string]interface{}, authContext map[string]interface{}) (*AuthorizeResult, error)
	CapturePayment(ctx context.Context, input PaymentInput) (map[string]interface{}, error)
	RefundPayment(ctx context.Context, input PaymentInput) (map[string]interface{}, error)
	CancelPayment(ctx context.Context, data map[string]interface{}) (map[string]interface{}, error)
	DeletePayment(ctx context.Context, data map[string]interface{}) error
}

// Registry resolves provider ids to providers. Providers are registered at
// start up, before the registry is shared.
type Registry struct {
	providers map[string]PaymentProvider
}

// NewRegistry returns a registry holding the given providers.
func NewRegistry(providers ...PaymentProvider) *Registry {
	r := &Registry{providers: make(map[string]PaymentProvider)}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds p, replacing any provider with the same id.
func (r *Registry) Register(p PaymentProvider) {
	r.providers[p.Identifier()] = p
}

// Get returns the provider registered under id.
func (r *Registry) Get(id string) (PaymentProvider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// IDs lists the registered provider ids in order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func copyData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
