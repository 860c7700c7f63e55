package models

import "github.com/companieshouse/payment-collections.api.ch.gov.uk/money"

// CreatePaymentCollectionRequest is the data required to open a collection
type CreatePaymentCollectionRequest struct {
	CurrencyCode string                 `json:"currency_code" validate:"required"`
	Amount       *money.BigNumber       `json:"amount"        validate:"required,gt=0"`
	RegionID     string                 `json:"region_id"     validate:"required"`
	Metadata     map[string]interface{} `json:"metadata"`
}

// UpdatePaymentCollectionRequest is a partial update; nil fields are left
// untouched.
type UpdatePaymentCollectionRequest struct {
	ID           string                 `json:"id"            validate:"required"`
	CurrencyCode *string                `json:"currency_code" validate:"omitempty,min=1"`
	Amount       *money.BigNumber       `json:"amount"        validate:"omitempty,gt=0"`
	RegionID     *string                `json:"region_id"     validate:"omitempty,min=1"`
	Metadata     map[string]interface{} `json:"metadata"`
}

// PaymentProviderContext is forwarded unmodified to the payment provider.
type PaymentProviderContext struct {
	Amount             *money.BigNumber       `json:"amount"               validate:"required,gt=0"`
	CurrencyCode       string                 `json:"currency_code"        validate:"required"`
	PaymentSessionData map[string]interface{} `json:"payment_session_data"`
	Context            map[string]interface{} `json:"context"`
	Customer           map[string]interface{} `json:"customer"`
	BillingAddress     map[string]interface{} `json:"billing_address"`
	Email              string                 `json:"email"                validate:"omitempty,email"`
	ResourceID         string                 `json:"resource_id"`
}

// CreatePaymentSessionRequest is the data required to open a session
type CreatePaymentSessionRequest struct {
	ProviderID      string                 `json:"provider_id"     validate:"required"`
	ProviderContext PaymentProviderContext `json:"providerContext"`
}

// UpdatePaymentSessionRequest refreshes a session at its provider
type UpdatePaymentSessionRequest struct {
	ID              string                 `json:"id"              validate:"required"`
	ProviderContext PaymentProviderContext `json:"providerContext"`
}

// UpdatePaymentRequest updates the descriptive references of a payment.
type UpdatePaymentRequest struct {
	ID          string  `json:"id"            validate:"required"`
	CartID      *string `json:"cart_id"`
	OrderID     *string `json:"order_id"`
	OrderEditID *string `json:"order_edit_id"`
	CustomerID  *string `json:"customer_id"`
}

// CapturePaymentRequest captures funds against a payment. A nil amount
// captures whatever remains of the authorization.
type CapturePaymentRequest struct {
	PaymentID  string           `json:"payment_id"  validate:"required"`
	Amount     *money.BigNumber `json:"amount"`
	CapturedBy *string          `json:"captured_by"`
}

// RefundPaymentRequest returns captured funds. A nil amount refunds whatever
// remains of the captured funds.
type RefundPaymentRequest struct {
	PaymentID string           `json:"payment_id" validate:"required"`
	Amount    *money.BigNumber `json:"amount"`
	CreatedBy *string          `json:"created_by"`
	Note      *string          `json:"note"`
}

// FilterablePaymentCollectionProps narrows a collection listing. Empty fields
// do not filter.
type FilterablePaymentCollectionProps struct {
	ID           []string                  `json:"id"`
	RegionID     []string                  `json:"region_id"`
	CurrencyCode []string                  `json:"currency_code"`
	Status       []PaymentCollectionStatus `json:"status"`
}

// FindConfig controls paging and relation expansion.
type FindConfig struct {
	Skip      int64    `json:"offset"`
	Take      int64    `json:"limit"`
	Relations []string `json:"relations"`
}
