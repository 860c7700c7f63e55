package providers

import (
	"context"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
)

// SystemProviderID identifies the built in provider.
const SystemProviderID = "system"

// SystemProvider authorizes every session immediately and makes no external
// calls. It backs manual payments and tests.
type SystemProvider struct{}

// Identifier implements PaymentProvider.
func (SystemProvider) Identifier() string { return SystemProviderID }

// InitiatePayment implements PaymentProvider.
func (SystemProvider) InitiatePayment(_ context.Context, input models.PaymentProviderContext) (map[string]interface{}, error) {
	return copyData(input.PaymentSessionData), nil
}

// UpdatePayment implements PaymentProvider.
func (SystemProvider) UpdatePayment(_ context.Context, data map[string]interface{}, input models.PaymentProviderContext) (map[string]interface{}, error) {
	out := copyData(data)
	for k, v := range input.PaymentSessionData {
		out[k] = v
	}
	return out, nil
}

// AuthorizePayment implements PaymentProvider.
func (SystemProvider) AuthorizePayment(_ context.Context, data map[string]interface{}, _ map[string]interface{}) (*AuthorizeResult, error) {
	return &AuthorizeResult{Status: models.SessionAuthorized, Data: copyData(data)}, nil
}

// CapturePayment implements PaymentProvider.
func (SystemProvider) CapturePayment(_ context.Context, input PaymentInput) (map[string]interface{}, error) {
	return copyData(input.Data), nil
}

// RefundPayment implements PaymentProvider.
func (SystemProvider) RefundPayment(_ context.Context, input PaymentInput) (map[string]interface{}, error) {
	return copyData(input.Data), nil
}

// CancelPayment implements PaymentProvider.
func (SystemProvider) CancelPayment(_ context.Context, data map[string]interface{}) (map[string]interface{}, error) {
	return copyData(data), nil
}

// DeletePayment implements PaymentProvider.
func (SystemProvider) DeletePayment(context.Context, map[string]interface{}) error {
	return nil
}
