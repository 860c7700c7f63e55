package service

import (
	"context"
	"sort"
	"sync"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/config"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/dao"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/lock"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/money"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/providers"
)

// memoryDAO is a dao.DAO holding documents in memory with the same
// version check as the mongo implementation.
type memoryDAO struct {
	mtx  sync.Mutex
	docs map[string]models.PaymentCollectionDB
}

func newMemoryDAO() *memoryDAO {
	return &memoryDAO{docs: make(map[string]models.PaymentCollectionDB)}
}

func (m *memoryDAO) CreatePaymentCollections(_ context.Context, collections []models.PaymentCollectionDB) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	for _, c := range collections {
		m.docs[c.ID] = c
	}
	return nil
}

func (m *memoryDAO) GetPaymentCollection(_ context.Context, id string) (*models.PaymentCollectionDB, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if c, ok := m.docs[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *memoryDAO) GetPaymentCollectionBySessionID(_ context.Context, sessionID string) (*models.PaymentCollectionDB, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	for _, c := range m.docs {
		for _, s := range c.PaymentSessions {
			if s.ID == sessionID {
				c := c
				return &c, nil
			}
		}
	}
	return nil, nil
}

func (m *memoryDAO) GetPaymentCollectionByPaymentID(_ context.Context, paymentID string) (*models.PaymentCollectionDB, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	for _, c := range m.docs {
		for _, p := range c.Payments {
			if p.ID == paymentID {
				c := c
				return &c, nil
			}
		}
	}
	return nil, nil
}

func (m *memoryDAO) matching(filter models.FilterablePaymentCollectionProps) []models.PaymentCollectionDB {
	in := func(values []string, v string) bool {
		if len(values) == 0 {
			return true
		}
		for _, x := range values {
			if x == v {
				return true
			}
		}
		return false
	}
	statuses := make([]string, 0, len(filter.Status))
	for _, s := range filter.Status {
		statuses = append(statuses, string(s))
	}

	var out []models.PaymentCollectionDB
	for _, c := range m.docs {
		if in(filter.ID, c.ID) && in(filter.RegionID, c.RegionID) && in(filter.CurrencyCode, c.CurrencyCode) && in(statuses, c.Status) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *memoryDAO) ListPaymentCollections(_ context.Context, filter models.FilterablePaymentCollectionProps, config models.FindConfig) ([]models.PaymentCollectionDB, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	out := m.matching(filter)
	if config.Skip > 0 {
		if config.Skip >= int64(len(out)) {
			return []models.PaymentCollectionDB{}, nil
		}
		out = out[config.Skip:]
	}
	if config.Take > 0 && config.Take < int64(len(out)) {
		out = out[:config.Take]
	}
	return out, nil
}

func (m *memoryDAO) CountPaymentCollections(_ context.Context, filter models.FilterablePaymentCollectionProps) (int64, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return int64(len(m.matching(filter))), nil
}

func (m *memoryDAO) UpdatePaymentCollection(_ context.Context, collection *models.PaymentCollectionDB) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	stored, ok := m.docs[collection.ID]
	if !ok || stored.Version != collection.Version {
		return dao.ErrVersionConflict
	}
	collection.Version++
	m.docs[collection.ID] = *collection
	return nil
}

func (m *memoryDAO) DeletePaymentCollections(_ context.Context, ids []string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	for _, id := range ids {
		delete(m.docs, id)
	}
	return nil
}

// testServices wires the three managers over one store and locker.
type testServices struct {
	collections *PaymentCollectionService
	sessions    *PaymentSessionService
	payments    *PaymentService
}

func newTestServices(d dao.DAO, producer EventProducer, extra ...providers.PaymentProvider) testServices {
	locker := lock.NewKeyedMutex()
	registry := providers.NewRegistry(append([]providers.PaymentProvider{providers.SystemProvider{}}, extra...)...)
	return testServices{
		collections: &PaymentCollectionService{DAO: d, Locker: locker, Config: *config.DefaultConfig()},
		sessions:    &PaymentSessionService{DAO: d, Locker: locker, Providers: registry, Events: producer},
		payments:    &PaymentService{DAO: d, Locker: locker, Providers: registry, Events: producer},
	}
}

func amountOf(i int64) *money.BigNumber {
	a := money.NewFromInt(i)
	return &a
}

func collectionRequest(amount int64) models.CreatePaymentCollectionRequest {
	return models.CreatePaymentCollectionRequest{
		CurrencyCode: "usd",
		Amount:       amountOf(amount),
		RegionID:     "reg_123",
	}
}

func sessionRequest(providerID string, amount int64) models.CreatePaymentSessionRequest {
	return models.CreatePaymentSessionRequest{
		ProviderID: providerID,
		ProviderContext: models.PaymentProviderContext{
			Amount:       amountOf(amount),
			CurrencyCode: "usd",
		},
	}
}

// authorizedPayment creates a collection of amount with one system session
// for the same amount and authorizes it.
func (ts testServices) authorizedPayment(ctx context.Context, amount int64) (*models.PaymentCollection, *models.Payment, error) {
	collections, err := ts.collections.CreatePaymentCollections(ctx, collectionRequest(amount))
	if err != nil {
		return nil, nil, err
	}
	session, err := ts.sessions.CreatePaymentSession(ctx, collections[0].ID, sessionRequest(providers.SystemProviderID, amount))
	if err != nil {
		return nil, nil, err
	}
	payment, err := ts.sessions.AuthorizePaymentSession(ctx, session.ID, nil)
	if err != nil {
		return nil, nil, err
	}
	return &collections[0], payment, nil
}
