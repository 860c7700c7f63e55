package models

import (
	"time"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/money"
)

// LedgerEntryKind identifies the variant of a ledger entry.
type LedgerEntryKind string

// Ledger entry kinds
const (
	LedgerCapture LedgerEntryKind = "capture"
	LedgerRefund  LedgerEntryKind = "refund"
)

// LedgerEntry is an append-only movement of funds recorded against a payment.
type LedgerEntry interface {
	Kind() LedgerEntryKind
	EntryID() string
	EntryAmount() money.BigNumber
	EntryCreatedAt() time.Time
}

// Capture records funds taken against an authorized payment.
type Capture struct {
	ID        string          `json:"id"`
	PaymentID string          `json:"payment_id"`
	Amount    money.BigNumber `json:"amount"`
	RawAmount money.RawValue  `json:"raw_amount"`
	CreatedBy *string         `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// Refund records captured funds returned to the payer.
type Refund struct {
	ID        string          `json:"id"`
	PaymentID string          `json:"payment_id"`
	Amount    money.BigNumber `json:"amount"`
	RawAmount money.RawValue  `json:"raw_amount"`
	CreatedBy *string         `json:"created_by"`
	Note      *string         `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewCapture builds a capture entry for paymentID.
func NewCapture(paymentID string, amount money.BigNumber, createdBy *string) Capture {
	return Capture{
		ID:        GenerateID(CapturePrefix),
		PaymentID: paymentID,
		Amount:    amount,
		RawAmount: amount.Raw(),
		CreatedBy: createdBy,
		CreatedAt: now(),
	}
}

// NewRefund builds a refund entry for paymentID.
func NewRefund(paymentID string, amount money.BigNumber, createdBy, note *string) Refund {
	return Refund{
		ID:        GenerateID(RefundPrefix),
		PaymentID: paymentID,
		Amount:    amount,
		RawAmount: amount.Raw(),
		CreatedBy: createdBy,
		Note:      note,
		CreatedAt: now(),
	}
}

func (c Capture) Kind() LedgerEntryKind { return LedgerCapture }
func (c Capture) EntryID() string { return c.ID }
func (c Capture) EntryAmount() money.BigNumber { return c.Amount }
func (c Capture) EntryCreatedAt() time.Time { return c.CreatedAt }
func (r Refund) Kind() LedgerEntryKind { return LedgerRefund }
func (r Refund) EntryID() string { return r.ID }
func (r Refund) EntryAmount() money.BigNumber { return r.Amount }
func (r Refund) EntryCreatedAt() time.Time { return r.CreatedAt }

// SumLedger totals the entries of the given kind.
func SumLedger(entries []LedgerEntry, kind LedgerEntryKind) money.BigNumber {
	total := money.Zero
	for _, e := range entries {
		if e.Kind() == kind {
			total = total.Add(e.EntryAmount())
		}
	}
	return total
}
