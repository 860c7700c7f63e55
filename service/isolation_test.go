package service

import (
	"context"
	"sync"
	"testing"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/dao"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/helpers"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"github.com/golang/mock/gomock"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/sync/errgroup"
)

func TestUnitIsolationContext(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockDao := dao.NewMockDAO(mockCtrl)
	service := PaymentCollectionService{DAO: mockDao}

	var mtx sync.Mutex
	var seen []helpers.IsolationContext
	record := func(ctx context.Context, _ []models.PaymentCollectionDB) error {
		ic, _ := helpers.GetIsolationContext(ctx)
		mtx.Lock()
		seen = append(seen, ic)
		mtx.Unlock()
		return nil
	}

	Convey("Parallel operations get their own transaction", t, func() {
		seen = nil
		mockDao.EXPECT().CreatePaymentCollections(gomock.Any(), gomock.Any()).DoAndReturn(record).Times(3)

		var g errgroup.Group
		for i := 0; i < 3; i++ {
			g.Go(func() error {
				_, err := service.CreatePaymentCollections(context.Background(), collectionRequest(10))
				return err
			})
		}
		So(g.Wait(), ShouldBeNil)

		So(seen, ShouldHaveLength, 3)
		ids := map[string]bool{}
		for _, ic := range seen {
			So(ic.TransactionID, ShouldNotBeEmpty)
			So(ic.RequestID, ShouldNotBeEmpty)
			ids[ic.TransactionID] = true
		}
		So(ids, ShouldHaveLength, 3)
	})

	Convey("A supplied request id is kept", t, func() {
		seen = nil
		mockDao.EXPECT().CreatePaymentCollections(gomock.Any(), gomock.Any()).DoAndReturn(record)

		ctx := helpers.WithRequestID(context.Background(), "req_123")
		_, err := service.CreatePaymentCollections(ctx, collectionRequest(10))
		So(err, ShouldBeNil)

		So(seen, ShouldHaveLength, 1)
		So(seen[0].RequestID, ShouldEqual, "req_123")
	})

	Convey("Nested operations share the enclosing transaction", t, func() {
		seen = nil
		mockDao.EXPECT().CreatePaymentCollections(gomock.Any(), gomock.Any()).DoAndReturn(record)

		ctx, outer := helpers.BeginOperation(context.Background())
		_, err := service.CreatePaymentCollections(ctx, collectionRequest(10))
		So(err, ShouldBeNil)

		So(seen[0], ShouldResemble, outer)
	})
}

func TestUnitCollectionLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("A collection is authorized, captured, refunded and completed", t, func() {
		ts := newTestServices(newMemoryDAO(), nil)

		created, err := ts.collections.CreatePaymentCollections(ctx, collectionRequest(200))
		So(err, ShouldBeNil)
		id := created[0].ID
		So(created[0].CurrencyCode, ShouldEqual, "usd")
		So(created[0].RegionID, ShouldEqual, "reg_123")

		first, err := ts.sessions.CreatePaymentSession(ctx, id, sessionRequest("system", 120))
		So(err, ShouldBeNil)
		second, err := ts.sessions.CreatePaymentSession(ctx, id, sessionRequest("system", 80))
		So(err, ShouldBeNil)

		p1, err := ts.sessions.AuthorizePaymentSession(ctx, first.ID, nil)
		So(err, ShouldBeNil)
		collection, _ := ts.collections.RetrievePaymentCollection(ctx, id, models.FindConfig{})
		So(collection.Status, ShouldEqual, models.CollectionPartiallyAuthorized)
		So(collection.AuthorizedAmount.String(), ShouldEqual, "120")

		p2, err := ts.sessions.AuthorizePaymentSession(ctx, second.ID, nil)
		So(err, ShouldBeNil)
		collection, _ = ts.collections.RetrievePaymentCollection(ctx, id, models.FindConfig{})
		So(collection.Status, ShouldEqual, models.CollectionAuthorized)
		So(collection.AuthorizedAmount.String(), ShouldEqual, "200")

		_, err = ts.payments.CapturePayment(ctx, models.CapturePaymentRequest{PaymentID: p1.ID})
		So(err, ShouldBeNil)
		_, err = ts.payments.CapturePayment(ctx, models.CapturePaymentRequest{PaymentID: p2.ID, Amount: amountOf(30)})
		So(err, ShouldBeNil)
		_, err = ts.payments.RefundPayment(ctx, models.RefundPaymentRequest{PaymentID: p1.ID, Amount: amountOf(20)})
		So(err, ShouldBeNil)

		completed, err := ts.collections.CompletePaymentCollections(ctx, id)
		So(err, ShouldBeNil)
		So(completed[0].Status, ShouldEqual, models.CollectionCompleted)

		collection, _ = ts.collections.RetrievePaymentCollection(ctx, id, models.FindConfig{Relations: []string{models.RelationPayments, models.RelationCaptures, models.RelationRefunds}})
		So(collection.CapturedAmount.String(), ShouldEqual, "150")
		So(collection.RefundedAmount.String(), ShouldEqual, "20")
		So(collection.Payments, ShouldHaveLength, 2)
		So(collection.Payments[0].Captures, ShouldHaveLength, 1)
		So(collection.Payments[0].Refunds, ShouldHaveLength, 1)
	})
}
