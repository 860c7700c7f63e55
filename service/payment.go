package service

import (
	"context"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/dao"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/events"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/helpers"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/lock"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/money"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/providers"
)

// PaymentService manages payments and their capture and refund ledger
type PaymentService struct {
	DAO       dao.DAO
	Locker    lock.Locker
	Providers *providers.Registry
	Events    EventProducer
}

func (service *PaymentService) store() aggregates {
	return newAggregates(service.DAO, service.Locker)
}

func (service *PaymentService) provider(id string) (providers.PaymentProvider, error) {
	if service.Providers != nil {
		if p, ok := service.Providers.Get(id); ok {
			return p, nil
		}
	}
	return nil, newError(NotFoundError, "Could not find a payment provider with id: %s", id)
}

// paymentMutation changes one payment of a loaded collection.
type paymentMutation func(p *models.Payment) (changed bool, err error)

// mutatePayment runs fn against payment id under its collection lock and
// returns a copy of the payment as stored.
func (service *PaymentService) mutatePayment(ctx context.Context, id string, fn paymentMutation) (*models.Payment, error) {
	collectionID, err := service.store().collectionIDForPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	var payment models.Payment
	_, err = service.store().mutate(ctx, collectionID, func(c *models.PaymentCollection) (bool, error) {
		p := c.Payment(id)
		if p == nil {
			return false, notFound("Payment", id)
		}
		changed, err := fn(p)
		p.RecomputeTotals()
		payment = *p
		return changed, err
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// RetrievePayment returns a payment with its captures and refunds.
func (service *PaymentService) RetrievePayment(ctx context.Context, id string) (*models.Payment, error) {
	collectionID, err := service.store().collectionIDForPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	collection, err := service.store().get(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	p := collection.Payment(id)
	if p == nil {
		return nil, notFound("Payment", id)
	}
	return p, nil
}

// ListPayments returns the payments of a collection.
func (service *PaymentService) ListPayments(ctx context.Context, collectionID string) ([]models.Payment, error) {
	collection, err := service.store().get(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	return collection.Payments, nil
}

// UpdatePayment updates the cart, order, order edit and customer references
// of a payment.
func (service *PaymentService) UpdatePayment(ctx context.Context, req models.UpdatePaymentRequest) (*models.Payment, error) {
	ctx, ic := helpers.BeginOperation(ctx)

	if err := validateRequest("Payment", &req); err != nil {
		return nil, err
	}

	payment, err := service.mutatePayment(ctx, req.ID, func(p *models.Payment) (bool, error) {
		if req.CartID != nil {
			p.CartID = req.CartID
		}
		if req.OrderID != nil {
			p.OrderID = req.OrderID
		}
		if req.OrderEditID != nil {
			p.OrderEditID = req.OrderEditID
		}
		if req.CustomerID != nil {
			p.CustomerID = req.CustomerID
		}
		p.UpdatedAt = models.Now()
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	data := ic.LogData()
	data["payment_id"] = payment.ID
	log.Info("payment updated", data)
	return payment, nil
}

// CapturePayment captures funds against a payment's authorization. The
// provider is called first; the capture is recorded only if it succeeds. A
// request without an amount captures whatever remains authorized.
func (service *PaymentService) CapturePayment(ctx context.Context, req models.CapturePaymentRequest) (*models.Payment, error) {
	ctx, ic := helpers.BeginOperation(ctx)

	if err := validateRequest("Capture", &req); err != nil {
		return nil, err
	}
	if err := validatePositive("Capture", "amount", req.Amount); err != nil {
		return nil, err
	}

	var captured money.BigNumber
	payment, err := service.mutatePayment(ctx, req.PaymentID, func(p *models.Payment) (bool, error) {
		if p.IsCanceled() {
			return false, newError(InvalidStateError, "The payment: %s has been canceled.", p.ID)
		}
		if p.Status.IsTerminal() {
			return false, newError(InvalidStateError, "The payment: %s has been %s.", p.ID, p.Status)
		}

		remaining := p.CapturableAmount()
		if !remaining.IsPositive() {
			return false, newError(AlreadyCapturedError, "The payment: %s is already fully captured.", p.ID)
		}

		amount := remaining
		if req.Amount != nil {
			amount = *req.Amount
		}
		if amount.GreaterThan(remaining) {
			return false, newError(InsufficientAuthorizationError, "Total captured amount for payment: %s exceeds authorized amount.", p.ID)
		}

		provider, err := service.provider(p.ProviderID)
		if err != nil {
			return false, err
		}
		data, err := provider.CapturePayment(ctx, providers.PaymentInput{
			PaymentID:    p.ID,
			CurrencyCode: p.CurrencyCode,
			Amount:       amount,
			Data:         p.Data,
		})
		if err != nil {
			return false, wrapError(ProviderError, err, "Could not capture payment: %s with provider: %s: [%v]", p.ID, p.ProviderID, err)
		}

		p.Data = data
		p.AppendCapture(models.NewCapture(p.ID, amount, req.CapturedBy))
		captured = amount
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	data := ic.LogData()
	data["payment_id"] = payment.ID
	data["amount"] = captured.String()
	log.Info("payment captured", data)
	publish(ctx, service.Events, ic, events.EventCaptured, payment, captured)

	return payment, nil
}

// RefundPayment returns captured funds. A request without an amount refunds
// whatever remains captured.
func (service *PaymentService) RefundPayment(ctx context.Context, req models.RefundPaymentRequest) (*models.Payment, error) {
	ctx, ic := helpers.BeginOperation(ctx)

	if err := validateRequest("Refund", &req); err != nil {
		return nil, err
	}
	if err := validatePositive("Refund", "amount", req.Amount); err != nil {
		return nil, err
	}

	var refunded money.BigNumber
	payment, err := service.mutatePayment(ctx, req.PaymentID, func(p *models.Payment) (bool, error) {
		if p.IsCanceled() {
			return false, newError(InvalidStateError, "The payment: %s has been canceled.", p.ID)
		}

		refundable := p.RefundableAmount()
		amount := refundable
		if req.Amount != nil {
			amount = *req.Amount
		}
		if !amount.IsPositive() || amount.GreaterThan(refundable) {
			return false, newError(InsufficientCaptureError, "Refund amount for payment: %s cannot be greater than the amount captured on the payment.", p.ID)
		}

		provider, err := service.provider(p.ProviderID)
		if err != nil {
			return false, err
		}
		data, err := provider.RefundPayment(ctx, providers.PaymentInput{
			PaymentID:    p.ID,
			CurrencyCode: p.CurrencyCode,
			Amount:       amount,
			Data:         p.Data,
		})
		if err != nil {
			return false, wrapError(ProviderError, err, "Could not refund payment: %s with provider: %s: [%v]", p.ID, p.ProviderID, err)
		}

		p.Data = data
		p.AppendRefund(models.NewRefund(p.ID, amount, req.CreatedBy, req.Note))
		refunded = amount
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	data := ic.LogData()
	data["payment_id"] = payment.ID
	data["amount"] = refunded.String()
	log.Info("payment refunded", data)
	publish(ctx, service.Events, ic, events.EventRefunded, payment, refunded)

	return payment, nil
}

// CancelPayment cancels a payment that has no captures. Canceling a canceled
// payment returns it unchanged.
func (service *PaymentService) CancelPayment(ctx context.Context, id string) (*models.Payment, error) {
	ctx, ic := helpers.BeginOperation(ctx)

	var canceled bool
	payment, err := service.mutatePayment(ctx, id, func(p *models.Payment) (bool, error) {
		if p.IsCanceled() {
			return false, nil
		}
		if p.HasCaptures() {
			return false, newError(AlreadyCapturedError, "Cannot cancel a payment: %s that has been captured.", p.ID)
		}

		provider, err := service.provider(p.ProviderID)
		if err != nil {
			return false, err
		}
		data, err := provider.CancelPayment(ctx, p.Data)
		if err != nil {
			return false, wrapError(ProviderError, err, "Could not cancel payment: %s with provider: %s: [%v]", p.ID, p.ProviderID, err)
		}

		p.Data = data
		p.Cancel()
		canceled = true
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if canceled {
		data := ic.LogData()
		data["payment_id"] = payment.ID
		log.Info("payment canceled", data)
		publish(ctx, service.Events, ic, events.EventCanceled, payment, payment.AuthorizedAmount)
	}

	return payment, nil
}
