package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/dao"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/helpers"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/lock"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/transformers"
)

// mutation changes a loaded collection. It reports whether the collection
// must be written; a changed collection is written even when an error is
// also returned, so failed provider outcomes are recorded.
type mutation func(c *models.PaymentCollection) (changed bool, err error)

// defaultLocker serialises writers of services built without a Locker.
var defaultLocker = lock.NewKeyedMutex()

// aggregates loads and writes whole payment collections.
type aggregates struct {
	dao         dao.DAO
	locker      lock.Locker
	transformer transformers.PaymentCollectionTransformer
}

func newAggregates(d dao.DAO, l lock.Locker) aggregates {
	if l == nil {
		l = defaultLocker
	}
	return aggregates{dao: d, locker: l}
}

func (a aggregates) toRest(dbResource *models.PaymentCollectionDB) (*models.PaymentCollection, error) {
	collection, err := a.transformer.TransformToRest(*dbResource)
	if err != nil {
		return nil, wrapError(DatabaseError, err, "error reading payment collection: [%v]", err)
	}
	return &collection, nil
}

func (a aggregates) get(ctx context.Context, id string) (*models.PaymentCollection, error) {
	dbResource, err := a.dao.GetPaymentCollection(ctx, id)
	if err != nil {
		return nil, wrapError(DatabaseError, err, "error getting payment collection from db: [%v]", err)
	}
	if dbResource == nil {
		return nil, notFound("PaymentCollection", id)
	}
	return a.toRest(dbResource)
}

// collectionIDForSession resolves the collection owning a session without locking.
func (a aggregates) collectionIDForSession(ctx context.Context, sessionID string) (string, error) {
	dbResource, err := a.dao.GetPaymentCollectionBySessionID(ctx, sessionID)
	if err != nil {
		return "", wrapError(DatabaseError, err, "error getting payment collection from db: [%v]", err)
	}
	if dbResource == nil {
		return "", notFound("PaymentSession", sessionID)
	}
	return dbResource.ID, nil
}

// collectionIDForPayment resolves the collection owning a payment without locking.
func (a aggregates) collectionIDForPayment(ctx context.Context, paymentID string) (string, error) {
	dbResource, err := a.dao.GetPaymentCollectionByPaymentID(ctx, paymentID)
	if err != nil {
		return "", wrapError(DatabaseError, err, "error getting payment collection from db: [%v]", err)
	}
	if dbResource == nil {
		return "", notFound("Payment", paymentID)
	}
	return dbResource.ID, nil
}

// mutate runs fn against the latest state of collection id while holding
// the collection lock, then writes the collection if fn changed it.
func (a aggregates) mutate(ctx context.Context, id string, fn mutation) (*models.PaymentCollection, error) {
	ic, _ := helpers.GetIsolationContext(ctx)

	unlock, err := a.locker.Lock(ctx, id)
	if err != nil {
		return nil, wrapError(ConflictError, err, "could not lock payment collection: %s: [%v]", id, err)
	}
	defer unlock()

	collection, err := a.get(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, fnErr := fn(collection)
	if !changed {
		return collection, fnErr
	}

	collection.RecomputeTotals()
	collection.Touch()

	dbResource := a.transformer.TransformToDB(*collection)
	if err := a.dao.UpdatePaymentCollection(ctx, &dbResource); err != nil {
		data := ic.LogData()
		data["payment_collection_id"] = id
		if errors.Is(err, dao.ErrVersionConflict) {
			log.Info("stale write to payment collection rejected", data)
			return nil, wrapError(ConflictError, err, "PaymentCollection with id: %s was modified concurrently", id)
		}
		log.Error(fmt.Errorf("error updating payment collection: [%v]", err), data)
		return nil, wrapError(DatabaseError, err, "error updating payment collection in db: [%v]", err)
	}
	collection.Version = dbResource.Version

	return collection, fnErr
}
