package dao

import (
	"context"
	"errors"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
)

// ErrVersionConflict is returned when a payment collection was written by
// someone else since it was read.
var ErrVersionConflict = errors.New("payment collection was modified concurrently")

// DAO is an interface for accessing payment collections from a backend
// store. Getters return nil, nil when nothing matches.
type DAO interface {
	CreatePaymentCollections(ctx context.Context, collections []models.PaymentCollectionDB) error
	GetPaymentCollection(ctx context.Context, id string) (*models.PaymentCollectionDB, error)
	GetPaymentCollectionBySessionID(ctx context.Context, sessionID string) (*models.PaymentCollectionDB, error)
	GetPaymentCollectionByPaymentID(ctx context.Context, paymentID string) (*models.PaymentCollectionDB, error)
	ListPaymentCollections(ctx context.Context, filter models.FilterablePaymentCollectionProps, config models.FindConfig) ([]models.PaymentCollectionDB, error)
	CountPaymentCollections(ctx context.Context, filter models.FilterablePaymentCollectionProps) (int64, error)
	UpdatePaymentCollection(ctx context.Context, collection *models.PaymentCollectionDB) error
	DeletePaymentCollections(ctx context.Context, ids []string) error
}
