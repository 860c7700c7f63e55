package models

import (
	"time"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/money"
)

// Payment is the settled result of an authorized payment session. Captured
// and refunded totals and the status are derived from the ledger and are
// recomputed by RecomputeTotals; they are never a source of truth.
type Payment struct {
	ID                  string                 `json:"id"`
	PaymentCollectionID string                 `json:"payment_collection_id"`
	PaymentSessionID    string                 `json:"payment_session_id"`
	ProviderID          string                 `json:"provider_id"`
	CurrencyCode        string                 `json:"currency_code"`
	Amount              money.BigNumber        `json:"amount"`
	RawAmount           money.RawValue         `json:"raw_amount"`
	AuthorizedAmount    money.BigNumber        `json:"authorized_amount"`
	RawAuthorizedAmount money.RawValue         `json:"raw_authorized_amount"`
	CapturedAmount      money.BigNumber        `json:"captured_amount"`
	RefundedAmount      money.BigNumber        `json:"refunded_amount"`
	Status              PaymentStatus          `json:"status"`
	Data                map[string]interface{} `json:"data"`
	CartID              *string                `json:"cart_id"`
	OrderID             *string                `json:"order_id"`
	OrderEditID         *string                `json:"order_edit_id"`
	CustomerID          *string                `json:"customer_id"`
	CapturedAt          *time.Time             `json:"captured_at"`
	CanceledAt          *time.Time             `json:"canceled_at"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
	Captures            []Capture              `json:"captures"`
	Refunds             []Refund               `json:"refunds"`
}

// NewPaymentFromSession builds the payment produced by authorizing session.
// The authorized amount is fixed to the session amount.
func NewPaymentFromSession(session PaymentSession) Payment {
	t := now()
	p := Payment{
		ID:                  GenerateID(PaymentPrefix),
		PaymentCollectionID: session.PaymentCollectionID,
		PaymentSessionID:    session.ID,
		ProviderID:          session.ProviderID,
		CurrencyCode:        session.CurrencyCode,
		Amount:              session.Amount,
		RawAmount:           session.Amount.Raw(),
		AuthorizedAmount:    session.Amount,
		RawAuthorizedAmount: session.Amount.Raw(),
		Data:                copyData(session.Data),
		CreatedAt:           t,
		UpdatedAt:           t,
		Captures:            []Capture{},
		Refunds:             []Refund{},
	}
	p.RecomputeTotals()
	return p
}

// Ledger returns every capture and refund of the payment.
func (p *Payment) Ledger() []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(p.Captures)+len(p.Refunds))
	for _, c := range p.Captures {
		entries = append(entries, c)
	}
	for _, r := range p.Refunds {
		entries = append(entries, r)
	}
	return entries
}

// RecomputeTotals derives the captured and refunded totals and the status
// from the ledger.
func (p *Payment) RecomputeTotals() {
	ledger := p.Ledger()
	p.CapturedAmount = SumLedger(ledger, LedgerCapture)
	p.RefundedAmount = SumLedger(ledger, LedgerRefund)
	p.Status = p.deriveStatus()
}

func (p *Payment) deriveStatus() PaymentStatus {
	switch {
	case p.CanceledAt != nil:
		return PaymentCanceled
	case p.RefundedAmount.IsPositive() && p.CapturedAmount.GreaterThanOrEqual(p.AuthorizedAmount) &&
		p.RefundedAmount.GreaterThanOrEqual(p.CapturedAmount):
		// refunded only once nothing is left to capture
		return PaymentRefunded
	case p.RefundedAmount.IsPositive():
		return PaymentPartiallyRefunded
	case p.CapturedAmount.IsPositive() && p.CapturedAmount.GreaterThanOrEqual(p.AuthorizedAmount):
		return PaymentCaptured
	case p.CapturedAmount.IsPositive():
		return PaymentPartiallyCaptured
	default:
		return PaymentAuthorized
	}
}

// IsCanceled reports whether the payment has been canceled.
func (p *Payment) IsCanceled() bool {
	return p.CanceledAt != nil
}

// HasCaptures reports whether any funds have been captured.
func (p *Payment) HasCaptures() bool {
	return len(p.Captures) > 0
}

// CapturableAmount is the part of the authorization not yet captured.
func (p *Payment) CapturableAmount() money.BigNumber {
	return p.AuthorizedAmount.Sub(SumLedger(p.Ledger(), LedgerCapture))
}

// RefundableAmount is the part of the captured funds not yet refunded.
func (p *Payment) RefundableAmount() money.BigNumber {
	ledger := p.Ledger()
	return SumLedger(ledger, LedgerCapture).Sub(SumLedger(ledger, LedgerRefund))
}

// AppendCapture records c and stamps captured_at once the authorization is
// fully captured.
func (p *Payment) AppendCapture(c Capture) {
	p.Captures = append(p.Captures, c)
	p.UpdatedAt = c.CreatedAt
	p.RecomputeTotals()
	if p.CapturedAt == nil && p.CapturedAmount.GreaterThanOrEqual(p.AuthorizedAmount) {
		t := c.CreatedAt
		p.CapturedAt = &t
	}
}

// AppendRefund records r.
func (p *Payment) AppendRefund(r Refund) {
	p.Refunds = append(p.Refunds, r)
	p.UpdatedAt = r.CreatedAt
	p.RecomputeTotals()
}

// Cancel stamps canceled_at.
func (p *Payment) Cancel() {
	t := now()
	p.CanceledAt = &t
	p.UpdatedAt = t
	p.RecomputeTotals()
}

func copyData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
