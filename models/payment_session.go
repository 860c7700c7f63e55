package models

import (
	"time"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/money"
)

// PaymentSession is one provider-bound attempt to collect funds for a
// collection.
type PaymentSession struct {
	ID                  string                 `json:"id"`
	PaymentCollectionID string                 `json:"payment_collection_id"`
	ProviderID          string                 `json:"provider_id"`
	CurrencyCode        string                 `json:"currency_code"`
	Amount              money.BigNumber        `json:"amount"`
	RawAmount           money.RawValue         `json:"raw_amount"`
	Status              PaymentSessionStatus   `json:"status"`
	Data                map[string]interface{} `json:"data"`
	Context             map[string]interface{} `json:"context"`
	AuthorizedAt        *time.Time             `json:"authorized_at"`
	PaymentID           *string                `json:"payment_id"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// NewPaymentSession builds a pending session for collectionID.
func NewPaymentSession(collectionID, providerID string, providerContext PaymentProviderContext) PaymentSession {
	t := now()
	s := PaymentSession{
		ID:                  GenerateID(PaymentSessionPrefix),
		PaymentCollectionID: collectionID,
		ProviderID:          providerID,
		CurrencyCode:        providerContext.CurrencyCode,
		Status:              SessionPending,
		Data:                copyData(providerContext.PaymentSessionData),
		Context:             copyData(providerContext.Context),
		CreatedAt:           t,
		UpdatedAt:           t,
	}
	if providerContext.Amount != nil {
		s.Amount = *providerContext.Amount
		s.RawAmount = s.Amount.Raw()
	}
	return s
}

// IsAuthorized reports whether the session has produced a payment.
func (s *PaymentSession) IsAuthorized() bool {
	return s.Status == SessionAuthorized
}

// MarkAuthorized links the session to paymentID.
func (s *PaymentSession) MarkAuthorized(paymentID string, data map[string]interface{}) {
	t := now()
	s.Status = SessionAuthorized
	s.AuthorizedAt = &t
	s.PaymentID = &paymentID
	s.UpdatedAt = t
	if data != nil {
		s.Data = copyData(data)
	}
}

// MarkStatus records a non-authorized outcome of a provider call.
func (s *PaymentSession) MarkStatus(status PaymentSessionStatus, data map[string]interface{}) {
	s.Status = status
	s.UpdatedAt = now()
	if data != nil {
		s.Data = copyData(data)
	}
}
