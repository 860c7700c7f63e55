package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/dao"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/events"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/helpers"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/lock"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/providers"
)

// PaymentSessionService manages payment sessions and their authorization
type PaymentSessionService struct {
	DAO       dao.DAO
	Locker    lock.Locker
	Providers *providers.Registry
	Events    EventProducer
}

func (service *PaymentSessionService) store() aggregates {
	return newAggregates(service.DAO, service.Locker)
}

func (service *PaymentSessionService) provider(id string) (providers.PaymentProvider, error) {
	if service.Providers != nil {
		if p, ok := service.Providers.Get(id); ok {
			return p, nil
		}
	}
	return nil, newError(NotFoundError, "Could not find a payment provider with id: %s", id)
}

// CreatePaymentSession opens a session against collectionID and initiates
// it with the provider.
func (service *PaymentSessionService) CreatePaymentSession(ctx context.Context, collectionID string, req models.CreatePaymentSessionRequest) (*models.PaymentSession, error) {
	ctx, ic := helpers.BeginOperation(ctx)

	if err := validateRequest("PaymentSession", &req); err != nil {
		return nil, err
	}

	provider, err := service.provider(req.ProviderID)
	if err != nil {
		return nil, err
	}

	var session models.PaymentSession
	_, err = service.store().mutate(ctx, collectionID, func(c *models.PaymentCollection) (bool, error) {
		if !c.Status.AcceptsSessions() {
			return false, newError(InvalidStateError, "Cannot create a payment session for PaymentCollection: %s with status %s.", c.ID, c.Status)
		}
		if err := checkSessionAgainstCollection(c, req.ProviderContext); err != nil {
			return false, err
		}

		data, err := provider.InitiatePayment(ctx, req.ProviderContext)
		if err != nil {
			return false, wrapError(ProviderError, err, "Could not initiate payment with provider: %s: [%v]", provider.Identifier(), err)
		}

		session = models.NewPaymentSession(c.ID, provider.Identifier(), req.ProviderContext)
		session.Data = data
		c.PaymentSessions = append(c.PaymentSessions, session)
		c.AddProvider(provider.Identifier())
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	data := ic.LogData()
	data["payment_collection_id"] = collectionID
	data["payment_session_id"] = session.ID
	log.Info("payment session created", data)

	return &session, nil
}

// UpdatePaymentSession refreshes a pending or failed session with its
// provider.
func (service *PaymentSessionService) UpdatePaymentSession(ctx context.Context, req models.UpdatePaymentSessionRequest) (*models.PaymentSession, error) {
	ctx, ic := helpers.BeginOperation(ctx)

	if err := validateRequest("PaymentSession", &req); err != nil {
		return nil, err
	}

	collectionID, err := service.store().collectionIDForSession(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	var session models.PaymentSession
	_, err = service.store().mutate(ctx, collectionID, func(c *models.PaymentCollection) (bool, error) {
		s := c.Session(req.ID)
		if s == nil {
			return false, notFound("PaymentSession", req.ID)
		}
		if !s.Status.IsMutable() {
			return false, newError(InvalidStateError, "Cannot update payment session: %s with status %s.", s.ID, s.Status)
		}
		if !c.Status.AcceptsSessions() {
			return false, newError(InvalidStateError, "Cannot update payment session: %s of PaymentCollection: %s with status %s.", s.ID, c.ID, c.Status)
		}
		if err := checkSessionAgainstCollection(c, req.ProviderContext); err != nil {
			return false, err
		}

		provider, err := service.provider(s.ProviderID)
		if err != nil {
			return false, err
		}
		data, err := provider.UpdatePayment(ctx, s.Data, req.ProviderContext)
		if err != nil {
			return false, wrapError(ProviderError, err, "Could not update payment session: %s with provider: %s: [%v]", s.ID, s.ProviderID, err)
		}

		s.Amount = *req.ProviderContext.Amount
		s.RawAmount = s.Amount.Raw()
		s.CurrencyCode = req.ProviderContext.CurrencyCode
		if req.ProviderContext.Context != nil {
			s.Context = req.ProviderContext.Context
		}
		s.MarkStatus(models.SessionPending, data)
		session = *s
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	data := ic.LogData()
	data["payment_session_id"] = session.ID
	log.Info("payment session updated", data)

	return &session, nil
}

// DeletePaymentSession removes a session that has not been authorized.
func (service *PaymentSessionService) DeletePaymentSession(ctx context.Context, id string) error {
	ctx, ic := helpers.BeginOperation(ctx)

	collectionID, err := service.store().collectionIDForSession(ctx, id)
	if err != nil {
		return err
	}

	_, err = service.store().mutate(ctx, collectionID, func(c *models.PaymentCollection) (bool, error) {
		s := c.Session(id)
		if s == nil {
			return false, notFound("PaymentSession", id)
		}
		if s.IsAuthorized() {
			return false, newError(InvalidStateError, "Cannot delete payment session: %s that has been authorized.", id)
		}

		provider, err := service.provider(s.ProviderID)
		if err != nil {
			return false, err
		}
		if err := provider.DeletePayment(ctx, s.Data); err != nil {
			return false, wrapError(ProviderError, err, "Could not delete payment session: %s with provider: %s: [%v]", id, s.ProviderID, err)
		}

		c.RemoveSession(id)
		return true, nil
	})
	if err != nil {
		return err
	}

	data := ic.LogData()
	data["payment_session_id"] = id
	log.Info("payment session deleted", data)
	return nil
}

// AuthorizePaymentSession authorizes a session with its provider and, on
// success, creates its payment in the same write. A session that is
// already authorized returns its existing payment without calling the
// provider. A provider failure leaves the session in error and creates no
// payment.
func (service *PaymentSessionService) AuthorizePaymentSession(ctx context.Context, id string, authContext map[string]interface{}) (*models.Payment, error) {
	ctx, ic := helpers.BeginOperation(ctx)

	logData := ic.LogData()
	logData["payment_session_id"] = id

	collectionID, err := service.store().collectionIDForSession(ctx, id)
	if err != nil {
		return nil, err
	}

	var payment models.Payment
	var created bool
	_, err = service.store().mutate(ctx, collectionID, func(c *models.PaymentCollection) (bool, error) {
		s := c.Session(id)
		if s == nil {
			return false, notFound("PaymentSession", id)
		}

		if s.IsAuthorized() {
			if s.PaymentID != nil {
				if existing := c.Payment(*s.PaymentID); existing != nil {
					payment = *existing
					return false, nil
				}
			}
			return false, newError(InvalidStateError, "Session: %s is authorized but has no payment.", id)
		}
		if s.Status == models.SessionCanceled {
			return false, newError(InvalidStateError, "Cannot authorize payment session: %s that has been canceled.", id)
		}
		if !c.Status.AcceptsSessions() {
			return false, newError(InvalidStateError, "Cannot authorize payment session: %s of PaymentCollection: %s with status %s.", id, c.ID, c.Status)
		}
		if c.AuthorizedAmount.Add(s.Amount).GreaterThan(c.Amount) {
			return false, newError(InvalidStateError, "Authorizing payment session: %s would exceed the amount of PaymentCollection: %s.", id, c.ID)
		}

		provider, err := service.provider(s.ProviderID)
		if err != nil {
			return false, err
		}

		result, err := provider.AuthorizePayment(ctx, s.Data, authContext)
		if err != nil {
			log.Error(fmt.Errorf("error authorizing payment session with provider: [%v]", err), logData)
			s.MarkStatus(models.SessionError, nil)
			return true, wrapError(ProviderError, err, "Session: %s could not be authorized with the provider: [%v]", id, err)
		}

		if result.Status != models.SessionAuthorized {
			s.MarkStatus(result.Status, result.Data)
			return true, newError(InvalidStateError, "Session: %s is not authorized with the provider.", id)
		}

		if result.Data != nil {
			s.Data = result.Data
		}
		payment = models.NewPaymentFromSession(*s)
		payment.PaymentCollectionID = c.ID
		s.MarkAuthorized(payment.ID, result.Data)
		c.Payments = append(c.Payments, payment)
		created = true
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		logData["payment_id"] = payment.ID
		log.Info("payment session authorized", logData)
		publish(ctx, service.Events, ic, events.EventAuthorized, &payment, payment.AuthorizedAmount)
	}

	return &payment, nil
}

// checkSessionAgainstCollection checks the currency and amount of a session
// against its collection.
func checkSessionAgainstCollection(c *models.PaymentCollection, providerContext models.PaymentProviderContext) error {
	if !strings.EqualFold(providerContext.CurrencyCode, c.CurrencyCode) {
		return newError(ValidationError, "Currency code %s does not match the currency code %s of PaymentCollection: %s.", providerContext.CurrencyCode, c.CurrencyCode, c.ID)
	}

	outstanding := c.Amount.Sub(c.AuthorizedAmount)
	if providerContext.Amount.GreaterThan(outstanding) {
		return newError(ValidationError, "Amount for payment session exceeds the amount outstanding on PaymentCollection: %s.", c.ID)
	}
	return nil
}
