package models

// PaymentCollectionStatus is the derived state of a payment collection.
type PaymentCollectionStatus string

// PaymentCollection statuses
const (
	CollectionNotPaid             PaymentCollectionStatus = "not_paid"
	CollectionAwaiting            PaymentCollectionStatus = "awaiting"
	CollectionAuthorized          PaymentCollectionStatus = "authorized"
	CollectionPartiallyAuthorized PaymentCollectionStatus = "partially_authorized"
	CollectionCompleted           PaymentCollectionStatus = "completed"
	CollectionCanceled            PaymentCollectionStatus = "canceled"
)

// AcceptsSessions reports whether new payment sessions may be opened against
// a collection in this status.
func (s PaymentCollectionStatus) AcceptsSessions() bool {
	switch s {
	case CollectionNotPaid, CollectionAwaiting, CollectionPartiallyAuthorized:
		return true
	default:
		return false
	}
}

// PaymentSessionStatus is the state of a single provider-bound attempt.
type PaymentSessionStatus string

// PaymentSession statuses
const (
	SessionPending    PaymentSessionStatus = "pending"
	SessionAuthorized PaymentSessionStatus = "authorized"
	SessionCanceled   PaymentSessionStatus = "canceled"
	SessionError      PaymentSessionStatus = "error"
)

// IsMutable reports whether the session can still be refreshed at its
// provider.
func (s PaymentSessionStatus) IsMutable() bool {
	return s == SessionPending || s == SessionError
}

// PaymentStatus is the derived state of a payment, computed from its ledger.
type PaymentStatus string

// Payment statuses
const (
	PaymentAuthorized        PaymentStatus = "authorized"
	PaymentPartiallyCaptured PaymentStatus = "partially_captured"
	PaymentCaptured          PaymentStatus = "captured"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentCanceled          PaymentStatus = "canceled"
)

// IsTerminal reports whether no further ledger movement is possible.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentRefunded || s == PaymentCanceled
}
