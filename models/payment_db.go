package models

import (
	"time"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/money"
)

// PaymentCollectionDB is the stored form of a payment collection. The whole
// aggregate (sessions, payments and their ledgers) lives in one document so
// that every lifecycle transition is a single atomic write.
type PaymentCollectionDB struct {
	ID               string                 `bson:"_id"`
	Version          int64                  `bson:"version"`
	CurrencyCode     string                 `bson:"currency_code"`
	Amount           string                 `bson:"amount"`
	RawAmount        money.RawValue         `bson:"raw_amount"`
	RegionID         string                 `bson:"region_id"`
	Status           string                 `bson:"status"`
	Metadata         map[string]interface{} `bson:"metadata,omitempty"`
	PaymentProviders []string               `bson:"payment_providers"`
	CompletedAt      *time.Time             `bson:"completed_at,omitempty"`
	CreatedAt        time.Time              `bson:"created_at"`
	UpdatedAt        time.Time              `bson:"updated_at"`
	PaymentSessions  []PaymentSessionDB     `bson:"payment_sessions"`
	Payments         []PaymentDB            `bson:"payments"`
}

// PaymentSessionDB is the stored form of a payment session
type PaymentSessionDB struct {
	ID           string                 `bson:"id"`
	ProviderID   string                 `bson:"provider_id"`
	CurrencyCode string                 `bson:"currency_code"`
	Amount       string                 `bson:"amount"`
	RawAmount    money.RawValue         `bson:"raw_amount"`
	Status       string                 `bson:"status"`
	Data         map[string]interface{} `bson:"data,omitempty"`
	Context      map[string]interface{} `bson:"context,omitempty"`
	AuthorizedAt *time.Time             `bson:"authorized_at,omitempty"`
	PaymentID    *string                `bson:"payment_id,omitempty"`
	CreatedAt    time.Time              `bson:"created_at"`
	UpdatedAt    time.Time              `bson:"updated_at"`
}

// PaymentDB is the stored form of a payment. Only the ledger is stored;
// totals are derived when the document is read.
type PaymentDB struct {
	ID                  string                 `bson:"id"`
	PaymentSessionID    string                 `bson:"payment_session_id"`
	ProviderID          string                 `bson:"provider_id"`
	CurrencyCode        string                 `bson:"currency_code"`
	Amount              string                 `bson:"amount"`
	RawAmount           money.RawValue         `bson:"raw_amount"`
	AuthorizedAmount    string                 `bson:"authorized_amount"`
	RawAuthorizedAmount money.RawValue         `bson:"raw_authorized_amount"`
	Data                map[string]interface{} `bson:"data,omitempty"`
	CartID              *string                `bson:"cart_id,omitempty"`
	OrderID             *string                `bson:"order_id,omitempty"`
	OrderEditID         *string                `bson:"order_edit_id,omitempty"`
	CustomerID          *string                `bson:"customer_id,omitempty"`
	CapturedAt          *time.Time             `bson:"captured_at,omitempty"`
	CanceledAt          *time.Time             `bson:"canceled_at,omitempty"`
	CreatedAt           time.Time              `bson:"created_at"`
	UpdatedAt           time.Time              `bson:"updated_at"`
	Captures            []LedgerEntryDB        `bson:"captures"`
	Refunds             []LedgerEntryDB        `bson:"refunds"`
}

// LedgerEntryDB is the stored form of both captures and refunds. Kind tells
// the variants apart.
type LedgerEntryDB struct {
	ID        string         `bson:"id"`
	Kind      string         `bson:"kind"`
	Amount    string         `bson:"amount"`
	RawAmount money.RawValue `bson:"raw_amount"`
	CreatedBy *string        `bson:"created_by,omitempty"`
	Note      *string        `bson:"note,omitempty"`
	CreatedAt time.Time      `bson:"created_at"`
}
