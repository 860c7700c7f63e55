package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/config"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/dao"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/helpers"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/lock"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"golang.org/x/sync/errgroup"
)

// PaymentCollectionService manages payment collections
type PaymentCollectionService struct {
	DAO    dao.DAO
	Locker lock.Locker
	Config config.Config
}

func (service *PaymentCollectionService) store() aggregates {
	return newAggregates(service.DAO, service.Locker)
}

// CreatePaymentCollections validates every request and then stores the new
// collections in one write. Nothing is stored if any request is invalid.
func (service *PaymentCollectionService) CreatePaymentCollections(ctx context.Context, reqs ...models.CreatePaymentCollectionRequest) ([]models.PaymentCollection, error) {
	ctx, ic := helpers.BeginOperation(ctx)

	for i := range reqs {
		if err := validateRequest("PaymentCollection", &reqs[i]); err != nil {
			return nil, err
		}
	}

	collections := make([]models.PaymentCollection, 0, len(reqs))
	dbResources := make([]models.PaymentCollectionDB, 0, len(reqs))
	ids := make([]string, 0, len(reqs))
	for _, req := range reqs {
		collection := models.NewPaymentCollection(req)
		collections = append(collections, collection)
		dbResources = append(dbResources, service.store().transformer.TransformToDB(collection))
		ids = append(ids, collection.ID)
	}

	if err := service.DAO.CreatePaymentCollections(ctx, dbResources); err != nil {
		log.Error(fmt.Errorf("error writing payment collections to db: [%v]", err), ic.LogData())
		return nil, wrapError(DatabaseError, err, "error writing payment collections to db: [%v]", err)
	}

	data := ic.LogData()
	data["payment_collection_ids"] = ids
	log.Info("payment collections created", data)

	return collections, nil
}

// RetrievePaymentCollection returns the collection with the child sets named
// by config.Relations.
func (service *PaymentCollectionService) RetrievePaymentCollection(ctx context.Context, id string, config models.FindConfig) (*models.PaymentCollection, error) {
	collection, err := service.store().get(ctx, id)
	if err != nil {
		return nil, err
	}
	withRelations := collection.WithRelations(config.Relations)
	return &withRelations, nil
}

// ListPaymentCollections returns the collections matching filter in the
// order they were created.
func (service *PaymentCollectionService) ListPaymentCollections(ctx context.Context, filter models.FilterablePaymentCollectionProps, config models.FindConfig) ([]models.PaymentCollection, error) {
	dbResources, err := service.DAO.ListPaymentCollections(ctx, filter, config)
	if err != nil {
		return nil, wrapError(DatabaseError, err, "error listing payment collections from db: [%v]", err)
	}

	collections := make([]models.PaymentCollection, 0, len(dbResources))
	for i := range dbResources {
		collection, err := service.store().toRest(&dbResources[i])
		if err != nil {
			return nil, err
		}
		collections = append(collections, collection.WithRelations(config.Relations))
	}
	return collections, nil
}

// ListAndCountPaymentCollections returns one page of collections together
// with the number of collections matching filter.
func (service *PaymentCollectionService) ListAndCountPaymentCollections(ctx context.Context, filter models.FilterablePaymentCollectionProps, config models.FindConfig) ([]models.PaymentCollection, int64, error) {
	var collections []models.PaymentCollection
	var count int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		collections, err = service.ListPaymentCollections(gctx, filter, config)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = service.DAO.CountPaymentCollections(gctx, filter)
		if err != nil {
			return wrapError(DatabaseError, err, "error counting payment collections in db: [%v]", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return collections, count, nil
}

// UpdatePaymentCollections applies partial updates. The amount and currency
// of a collection are fixed once it has live sessions. Updates are applied in
// order; on error the collections already updated are returned with it and
// stay updated.
func (service *PaymentCollectionService) UpdatePaymentCollections(ctx context.Context, reqs ...models.UpdatePaymentCollectionRequest) ([]models.PaymentCollection, error) {
	ctx, ic := helpers.BeginOperation(ctx)

	for i := range reqs {
		if err := validateRequest("PaymentCollection", &reqs[i]); err != nil {
			return nil, err
		}
	}

	updated := make([]models.PaymentCollection, 0, len(reqs))
	for _, req := range reqs {
		req := req
		collection, err := service.store().mutate(ctx, req.ID, func(c *models.PaymentCollection) (bool, error) {
			if req.CurrencyCode != nil || req.Amount != nil {
				if c.CompletedAt != nil {
					return false, newError(InvalidStateError, "Cannot update the amount or currency of completed payment collection: %s.", c.ID)
				}
				if c.HasOpenSessions() {
					return false, newError(InvalidStateError, "Cannot update the amount or currency of payment collection: %s with active payment sessions.", c.ID)
				}
			}

			if req.CurrencyCode != nil {
				c.CurrencyCode = *req.CurrencyCode
			}
			if req.Amount != nil {
				c.Amount = *req.Amount
				c.RawAmount = req.Amount.Raw()
			}
			if req.RegionID != nil {
				c.RegionID = *req.RegionID
			}
			if req.Metadata != nil {
				c.Metadata = req.Metadata
			}
			return true, nil
		})
		if err != nil {
			return updated, err
		}
		updated = append(updated, *collection)
	}

	log.Info("payment collections updated", ic.LogData())
	return updated, nil
}

// DeletePaymentCollections deletes collections with their sessions and
// payments. Unknown ids are ignored.
func (service *PaymentCollectionService) DeletePaymentCollections(ctx context.Context, ids []string) error {
	ctx, ic := helpers.BeginOperation(ctx)

	if err := service.DAO.DeletePaymentCollections(ctx, ids); err != nil {
		return wrapError(DatabaseError, err, "error deleting payment collections from db: [%v]", err)
	}

	data := ic.LogData()
	data["payment_collection_ids"] = ids
	log.Info("payment collections deleted", data)
	return nil
}

// CompletePaymentCollections marks collections completed. A collection needs
// an authorized payment to complete, and under the full amount policy its
// authorized total must reach its amount. Completed collections are left
// untouched. On error the collections completed so far are returned with it
// and stay completed.
func (service *PaymentCollectionService) CompletePaymentCollections(ctx context.Context, ids ...string) ([]models.PaymentCollection, error) {
	ctx, ic := helpers.BeginOperation(ctx)

	completed := make([]models.PaymentCollection, 0, len(ids))
	for _, id := range ids {
		collection, err := service.store().mutate(ctx, id, func(c *models.PaymentCollection) (bool, error) {
			if c.CompletedAt != nil {
				return false, nil
			}
			if err := service.canComplete(c); err != nil {
				return false, err
			}
			t := models.Now()
			c.CompletedAt = &t
			return true, nil
		})
		if err != nil {
			return completed, err
		}
		completed = append(completed, *collection)
	}

	data := ic.LogData()
	data["payment_collection_ids"] = ids
	log.Info("payment collections completed", data)
	return completed, nil
}

func (service *PaymentCollectionService) canComplete(c *models.PaymentCollection) error {
	if !c.AuthorizedAmount.IsPositive() {
		return newError(InvalidStateError, "PaymentCollection: %s has no authorized payments.", c.ID)
	}
	if strings.EqualFold(service.Config.CompletionPolicy, config.CompletionPolicyFullAmount) && c.AuthorizedAmount.LessThan(c.Amount) {
		return newError(InvalidStateError, "PaymentCollection: %s is not fully authorized.", c.ID)
	}
	return nil
}
