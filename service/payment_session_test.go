package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/providers"
	"github.com/golang/mock/gomock"
	. "github.com/smartystreets/goconvey/convey"
)

func newMockProvider(mockCtrl *gomock.Controller) *providers.MockPaymentProvider {
	mockProvider := providers.NewMockPaymentProvider(mockCtrl)
	mockProvider.EXPECT().Identifier().Return("mock").AnyTimes()
	return mockProvider
}

func TestUnitCreatePaymentSession(t *testing.T) {
	ctx := context.Background()

	Convey("Unknown provider", t, func() {
		ts := newTestServices(newMemoryDAO(), nil)
		created, _ := ts.collections.CreatePaymentCollections(ctx, collectionRequest(200))

		session, err := ts.sessions.CreatePaymentSession(ctx, created[0].ID, sessionRequest("stripe", 100))
		So(session, ShouldBeNil)
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		So(err.Error(), ShouldEqual, "Could not find a payment provider with id: stripe")
	})

	Convey("Unknown collection", t, func() {
		ts := newTestServices(newMemoryDAO(), nil)

		_, err := ts.sessions.CreatePaymentSession(ctx, "paycol_missing", sessionRequest(providers.SystemProviderID, 100))
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)
	})

	Convey("Currency must match the collection", t, func() {
		ts := newTestServices(newMemoryDAO(), nil)
		created, _ := ts.collections.CreatePaymentCollections(ctx, collectionRequest(200))
		req := sessionRequest(providers.SystemProviderID, 100)
		req.ProviderContext.CurrencyCode = "eur"

		_, err := ts.sessions.CreatePaymentSession(ctx, created[0].ID, req)
		So(errors.Is(err, ErrValidation), ShouldBeTrue)
	})

	Convey("Amount cannot exceed the outstanding amount", t, func() {
		ts := newTestServices(newMemoryDAO(), nil)
		created, _ := ts.collections.CreatePaymentCollections(ctx, collectionRequest(200))

		_, err := ts.sessions.CreatePaymentSession(ctx, created[0].ID, sessionRequest(providers.SystemProviderID, 201))
		So(errors.Is(err, ErrValidation), ShouldBeTrue)
		So(err.Error(), ShouldEqual, fmt.Sprintf("Amount for payment session exceeds the amount outstanding on PaymentCollection: %s.", created[0].ID))
	})

	Convey("Provider failure stores nothing", t, func() {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		mockProvider := newMockProvider(mockCtrl)
		ts := newTestServices(newMemoryDAO(), nil, mockProvider)
		created, _ := ts.collections.CreatePaymentCollections(ctx, collectionRequest(200))

		mockProvider.EXPECT().InitiatePayment(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("provider down"))

		_, err := ts.sessions.CreatePaymentSession(ctx, created[0].ID, sessionRequest("mock", 100))
		So(errors.Is(err, ErrProvider), ShouldBeTrue)

		collection, _ := ts.collections.RetrievePaymentCollection(ctx, created[0].ID, models.FindConfig{Relations: []string{models.RelationPaymentSessions}})
		So(collection.PaymentSessions, ShouldBeEmpty)
	})

	Convey("Session is stored with the provider data", t, func() {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		mockProvider := newMockProvider(mockCtrl)
		ts := newTestServices(newMemoryDAO(), nil, mockProvider)
		created, _ := ts.collections.CreatePaymentCollections(ctx, collectionRequest(200))

		mockProvider.EXPECT().InitiatePayment(gomock.Any(), gomock.Any()).Return(map[string]interface{}{"order_id": "ord_1"}, nil)

		session, err := ts.sessions.CreatePaymentSession(ctx, created[0].ID, sessionRequest("mock", 100))
		So(err, ShouldBeNil)
		So(session.Status, ShouldEqual, models.SessionPending)
		So(session.Data["order_id"], ShouldEqual, "ord_1")

		collection, _ := ts.collections.RetrievePaymentCollection(ctx, created[0].ID, models.FindConfig{Relations: []string{models.RelationPaymentSessions}})
		So(collection.PaymentSessions, ShouldHaveLength, 1)
		So(collection.PaymentProviders, ShouldResemble, []string{"mock"})
	})
}

func TestUnitUpdatePaymentSession(t *testing.T) {
	ctx := context.Background()

	Convey("Pending sessions are refreshed with the provider", t, func() {
		ts := newTestServices(newMemoryDAO(), nil)
		created, _ := ts.collections.CreatePaymentCollections(ctx, collectionRequest(200))
		session, _ := ts.sessions.CreatePaymentSession(ctx, created[0].ID, sessionRequest(providers.SystemProviderID, 100))

		updated, err := ts.sessions.UpdatePaymentSession(ctx, models.UpdatePaymentSessionRequest{
			ID:              session.ID,
			ProviderContext: sessionRequest(providers.SystemProviderID, 150).ProviderContext,
		})
		So(err, ShouldBeNil)
		So(updated.Amount.String(), ShouldEqual, "150")
		So(updated.Status, ShouldEqual, models.SessionPending)
	})

	Convey("Authorized sessions cannot be updated", t, func() {
		ts := newTestServices(newMemoryDAO(), nil)
		_, payment, err := ts.authorizedPayment(ctx, 100)
		So(err, ShouldBeNil)

		_, err = ts.sessions.UpdatePaymentSession(ctx, models.UpdatePaymentSessionRequest{
			ID:              payment.PaymentSessionID,
			ProviderContext: sessionRequest(providers.SystemProviderID, 100).ProviderContext,
		})
		So(errors.Is(err, ErrInvalidState), ShouldBeTrue)
	})

	Convey("Unknown session", t, func() {
		ts := newTestServices(newMemoryDAO(), nil)

		_, err := ts.sessions.UpdatePaymentSession(ctx, models.UpdatePaymentSessionRequest{
			ID:              "ps_missing",
			ProviderContext: sessionRequest(providers.SystemProviderID, 100).ProviderContext,
		})
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		So(err.Error(), ShouldEqual, "PaymentSession with id: ps_missing was not found")
	})
}

func TestUnitDeletePaymentSession(t *testing.T) {
	ctx := context.Background()

	Convey("Pending sessions are removed", t, func() {
		ts := newTestServices(newMemoryDAO(), nil)
		created, _ := ts.collections.CreatePaymentCollections(ctx, collectionRequest(200))
		session, _ := ts.sessions.CreatePaymentSession(ctx, created[0].ID, sessionRequest(providers.SystemProviderID, 100))

		So(ts.sessions.DeletePaymentSession(ctx, session.ID), ShouldBeNil)

		collection, _ := ts.collections.RetrievePaymentCollection(ctx, created[0].ID, models.FindConfig{Relations: []string{models.RelationPaymentSessions}})
		So(collection.PaymentSessions, ShouldBeEmpty)
	})

	Convey("Authorized sessions are kept", t, func() {
		ts := newTestServices(newMemoryDAO(), nil)
		_, payment, err := ts.authorizedPayment(ctx, 100)
		So(err, ShouldBeNil)

		err = ts.sessions.DeletePaymentSession(ctx, payment.PaymentSessionID)
		So(errors.Is(err, ErrInvalidState), ShouldBeTrue)
	})
}

func TestUnitAuthorizePaymentSession(t *testing.T) {
	ctx := context.Background()

	Convey("Authorizing creates one payment", t, func() {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		mockEvents := NewMockEventProducer(mockCtrl)
		ts := newTestServices(newMemoryDAO(), mockEvents)
		created, _ := ts.collections.CreatePaymentCollections(ctx, collectionRequest(200))
		session, _ := ts.sessions.CreatePaymentSession(ctx, created[0].ID, sessionRequest(providers.SystemProviderID, 200))

		mockEvents.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		payment, err := ts.sessions.AuthorizePaymentSession(ctx, session.ID, nil)
		So(err, ShouldBeNil)
		So(payment.ID, ShouldStartWith, "pay_")
		So(payment.PaymentCollectionID, ShouldEqual, created[0].ID)
		So(payment.AuthorizedAmount.String(), ShouldEqual, "200")
		So(payment.Status, ShouldEqual, models.PaymentAuthorized)

		Convey("Authorizing again returns the same payment", func() {
			again, err := ts.sessions.AuthorizePaymentSession(ctx, session.ID, nil)
			So(err, ShouldBeNil)
			So(again.ID, ShouldEqual, payment.ID)

			collection, _ := ts.collections.RetrievePaymentCollection(ctx, created[0].ID, models.FindConfig{Relations: []string{models.RelationPayments}})
			So(collection.Payments, ShouldHaveLength, 1)
			So(collection.Status, ShouldEqual, models.CollectionAuthorized)
		})
	})

	Convey("Provider failure marks the session in error", t, func() {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		mockProvider := newMockProvider(mockCtrl)
		ts := newTestServices(newMemoryDAO(), nil, mockProvider)
		created, _ := ts.collections.CreatePaymentCollections(ctx, collectionRequest(200))

		mockProvider.EXPECT().InitiatePayment(gomock.Any(), gomock.Any()).Return(map[string]interface{}{}, nil)
		mockProvider.EXPECT().AuthorizePayment(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("card declined"))

		session, _ := ts.sessions.CreatePaymentSession(ctx, created[0].ID, sessionRequest("mock", 100))
		payment, err := ts.sessions.AuthorizePaymentSession(ctx, session.ID, nil)
		So(payment, ShouldBeNil)
		So(errors.Is(err, ErrProvider), ShouldBeTrue)
		So(err.Error(), ShouldEqual, fmt.Sprintf("Session: %s could not be authorized with the provider: [card declined]", session.ID))

		collection, _ := ts.collections.RetrievePaymentCollection(ctx, created[0].ID, models.FindConfig{Relations: []string{models.RelationPaymentSessions, models.RelationPayments}})
		So(collection.PaymentSessions[0].Status, ShouldEqual, models.SessionError)
		So(collection.Payments, ShouldBeEmpty)
		So(collection.Status, ShouldEqual, models.CollectionAwaiting)
	})

	Convey("Provider requiring more steps leaves the session pending", t, func() {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		mockProvider := newMockProvider(mockCtrl)
		ts := newTestServices(newMemoryDAO(), nil, mockProvider)
		created, _ := ts.collections.CreatePaymentCollections(ctx, collectionRequest(200))

		mockProvider.EXPECT().InitiatePayment(gomock.Any(), gomock.Any()).Return(map[string]interface{}{}, nil)
		mockProvider.EXPECT().AuthorizePayment(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&providers.AuthorizeResult{Status: models.SessionPending, Data: map[string]interface{}{"step": "3ds"}}, nil)

		session, _ := ts.sessions.CreatePaymentSession(ctx, created[0].ID, sessionRequest("mock", 100))
		_, err := ts.sessions.AuthorizePaymentSession(ctx, session.ID, nil)
		So(errors.Is(err, ErrInvalidState), ShouldBeTrue)
		So(err.Error(), ShouldEqual, fmt.Sprintf("Session: %s is not authorized with the provider.", session.ID))
	})

	Convey("Authorizations cannot exceed the collection amount", t, func() {
		ts := newTestServices(newMemoryDAO(), nil)
		created, _ := ts.collections.CreatePaymentCollections(ctx, collectionRequest(200))
		first, _ := ts.sessions.CreatePaymentSession(ctx, created[0].ID, sessionRequest(providers.SystemProviderID, 150))
		second, _ := ts.sessions.CreatePaymentSession(ctx, created[0].ID, sessionRequest(providers.SystemProviderID, 150))

		_, err := ts.sessions.AuthorizePaymentSession(ctx, first.ID, nil)
		So(err, ShouldBeNil)

		_, err = ts.sessions.AuthorizePaymentSession(ctx, second.ID, nil)
		So(errors.Is(err, ErrInvalidState), ShouldBeTrue)
	})

	Convey("Sessions of a completed collection cannot be authorized", t, func() {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		mockProvider := newMockProvider(mockCtrl)
		ts := newTestServices(newMemoryDAO(), nil, mockProvider)
		created, _ := ts.collections.CreatePaymentCollections(ctx, collectionRequest(200))

		mockProvider.EXPECT().InitiatePayment(gomock.Any(), gomock.Any()).Return(map[string]interface{}{}, nil).Times(2)
		mockProvider.EXPECT().AuthorizePayment(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&providers.AuthorizeResult{Status: models.SessionAuthorized}, nil).Times(1)

		first, _ := ts.sessions.CreatePaymentSession(ctx, created[0].ID, sessionRequest("mock", 100))
		second, _ := ts.sessions.CreatePaymentSession(ctx, created[0].ID, sessionRequest("mock", 100))

		_, err := ts.sessions.AuthorizePaymentSession(ctx, first.ID, nil)
		So(err, ShouldBeNil)
		_, err = ts.collections.CompletePaymentCollections(ctx, created[0].ID)
		So(err, ShouldBeNil)

		payment, err := ts.sessions.AuthorizePaymentSession(ctx, second.ID, nil)
		So(payment, ShouldBeNil)
		So(errors.Is(err, ErrInvalidState), ShouldBeTrue)
		So(err.Error(), ShouldEqual, fmt.Sprintf("Cannot authorize payment session: %s of PaymentCollection: %s with status completed.", second.ID, created[0].ID))

		collection, _ := ts.collections.RetrievePaymentCollection(ctx, created[0].ID, models.FindConfig{Relations: []string{models.RelationPayments}})
		So(collection.Payments, ShouldHaveLength, 1)
		So(collection.AuthorizedAmount.String(), ShouldEqual, "100")
		So(collection.Status, ShouldEqual, models.CollectionCompleted)
	})

	Convey("Unknown session", t, func() {
		ts := newTestServices(newMemoryDAO(), nil)

		_, err := ts.sessions.AuthorizePaymentSession(ctx, "ps_missing", nil)
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)
	})
}
