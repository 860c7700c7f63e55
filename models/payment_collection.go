package models

import (
	"time"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/money"
)

// Relations that can be expanded when retrieving a payment collection
const (
	RelationPaymentSessions = "payment_sessions"
	RelationPayments        = "payments"
	RelationCaptures        = "payments.captures"
	RelationRefunds         = "payments.refunds"
)

// PaymentCollection is the aggregate root binding a target amount and
// currency to the sessions and payments raised against it.
type PaymentCollection struct {
	ID               string                  `json:"id"`
	CurrencyCode     string                  `json:"currency_code"`
	Amount           money.BigNumber         `json:"amount"`
	RawAmount        money.RawValue          `json:"raw_amount"`
	AuthorizedAmount money.BigNumber         `json:"authorized_amount"`
	CapturedAmount   money.BigNumber         `json:"captured_amount"`
	RefundedAmount   money.BigNumber         `json:"refunded_amount"`
	RegionID         string                  `json:"region_id"`
	Status           PaymentCollectionStatus `json:"status"`
	Metadata         map[string]interface{}  `json:"metadata"`
	PaymentProviders []string                `json:"payment_providers"`
	CompletedAt      *time.Time              `json:"completed_at"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
	PaymentSessions  []PaymentSession        `json:"payment_sessions"`
	Payments         []Payment               `json:"payments"`

	// Version is the optimistic concurrency token of the stored document.
	Version int64 `json:"-"`
}

// NewPaymentCollection builds an unpaid collection from a validated request.
func NewPaymentCollection(req CreatePaymentCollectionRequest) PaymentCollection {
	t := now()
	c := PaymentCollection{
		ID:               GenerateID(PaymentCollectionPrefix),
		CurrencyCode:     req.CurrencyCode,
		RegionID:         req.RegionID,
		Metadata:         req.Metadata,
		PaymentProviders: []string{},
		CreatedAt:        t,
		UpdatedAt:        t,
		PaymentSessions:  []PaymentSession{},
		Payments:         []Payment{},
	}
	if req.Amount != nil {
		c.Amount = *req.Amount
		c.RawAmount = c.Amount.Raw()
	}
	c.RecomputeTotals()
	return c
}

// RecomputeTotals derives every payment's totals, the collection totals and
// the collection status.
func (c *PaymentCollection) RecomputeTotals() {
	authorized, captured, refunded := money.Zero, money.Zero, money.Zero
	for i := range c.Payments {
		p := &c.Payments[i]
		p.RecomputeTotals()
		captured = captured.Add(p.CapturedAmount)
		refunded = refunded.Add(p.RefundedAmount)
		if !p.IsCanceled() {
			authorized = authorized.Add(p.AuthorizedAmount)
		}
	}
	c.AuthorizedAmount = authorized
	c.CapturedAmount = captured
	c.RefundedAmount = refunded
	c.Status = c.deriveStatus()
}

func (c *PaymentCollection) deriveStatus() PaymentCollectionStatus {
	if c.CompletedAt != nil {
		return CollectionCompleted
	}
	if len(c.Payments) > 0 && c.allPaymentsCanceled() {
		return CollectionCanceled
	}
	if c.AuthorizedAmount.IsPositive() {
		if c.AuthorizedAmount.GreaterThanOrEqual(c.Amount) {
			return CollectionAuthorized
		}
		return CollectionPartiallyAuthorized
	}
	for _, s := range c.PaymentSessions {
		if s.Status == SessionError {
			return CollectionAwaiting
		}
	}
	return CollectionNotPaid
}

func (c *PaymentCollection) allPaymentsCanceled() bool {
	for _, p := range c.Payments {
		if !p.IsCanceled() {
			return false
		}
	}
	return true
}

// Session returns the session with the given id, or nil.
func (c *PaymentCollection) Session(id string) *PaymentSession {
	for i := range c.PaymentSessions {
		if c.PaymentSessions[i].ID == id {
			return &c.PaymentSessions[i]
		}
	}
	return nil
}

// Payment returns the payment with the given id, or nil.
func (c *PaymentCollection) Payment(id string) *Payment {
	for i := range c.Payments {
		if c.Payments[i].ID == id {
			return &c.Payments[i]
		}
	}
	return nil
}

// RemoveSession drops the session with the given id.
func (c *PaymentCollection) RemoveSession(id string) {
	sessions := c.PaymentSessions[:0]
	for _, s := range c.PaymentSessions {
		if s.ID != id {
			sessions = append(sessions, s)
		}
	}
	c.PaymentSessions = sessions
}

// HasOpenSessions reports whether any session is still live, i.e. not
// canceled.
func (c *PaymentCollection) HasOpenSessions() bool {
	for _, s := range c.PaymentSessions {
		if s.Status != SessionCanceled {
			return true
		}
	}
	return false
}

// AddProvider records providerID in the set of providers used by the
// collection.
func (c *PaymentCollection) AddProvider(providerID string) {
	for _, p := range c.PaymentProviders {
		if p == providerID {
			return
		}
	}
	c.PaymentProviders = append(c.PaymentProviders, providerID)
}

// Touch stamps updated_at.
func (c *PaymentCollection) Touch() {
	c.UpdatedAt = now()
}

// WithRelations returns a copy holding only the requested child sets.
// Derived totals are unaffected.
func (c PaymentCollection) WithRelations(relations []string) PaymentCollection {
	want := make(map[string]bool, len(relations))
	for _, r := range relations {
		want[r] = true
	}

	if !want[RelationPaymentSessions] {
		c.PaymentSessions = nil
	}
	if !want[RelationPayments] && !want[RelationCaptures] && !want[RelationRefunds] {
		c.Payments = nil
		return c
	}

	payments := make([]Payment, len(c.Payments))
	for i, p := range c.Payments {
		if !want[RelationCaptures] {
			p.Captures = nil
		}
		if !want[RelationRefunds] {
			p.Refunds = nil
		}
		payments[i] = p
	}
	c.Payments = payments
	return c
}
