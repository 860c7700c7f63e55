package service

import (
	"context"
	"fmt"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/events"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/helpers"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/money"
)

// EventProducer publishes payment lifecycle events
type EventProducer interface {
	Produce(ctx context.Context, event events.LifecycleEvent) error
}

// publish sends a lifecycle event for payment. Failures are logged and
// never fail the operation that has already been persisted.
func publish(ctx context.Context, producer EventProducer, ic helpers.IsolationContext, eventType string, payment *models.Payment, amount money.BigNumber) {
	if producer == nil || payment == nil {
		return
	}

	event := events.LifecycleEvent{
		EventType:           eventType,
		PaymentCollectionID: payment.PaymentCollectionID,
		PaymentID:           payment.ID,
		Amount:              amount.String(),
		CurrencyCode:        payment.CurrencyCode,
		TransactionID:       ic.TransactionID,
		RequestID:           ic.RequestID,
	}

	if err := producer.Produce(ctx, event); err != nil {
		data := ic.LogData()
		data["payment_id"] = payment.ID
		data["event_type"] = eventType
		log.Error(fmt.Errorf("error producing payment lifecycle message: [%v]", err), data)
	}
}
