package dao

import (
	"context"
	"testing"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/config"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	. "github.com/smartystreets/goconvey/convey"
)

const noDeployment = "must have a Deployment set before Execute can be called"

func TestUnitCreatePaymentCollections(t *testing.T) {
	Convey("Create Payment Collections", t, func() {
		cfg, _ := config.Get()
		client = &mongo.Client{}
		dao := NewDAO(cfg)

		err := dao.CreatePaymentCollections(context.Background(), []models.PaymentCollectionDB{{ID: "paycol_1"}})
		So(err.Error(), ShouldContainSubstring, noDeployment)
	})

	Convey("Create nothing is a no-op", t, func() {
		cfg, _ := config.Get()
		client = &mongo.Client{}
		dao := NewDAO(cfg)

		So(dao.CreatePaymentCollections(context.Background(), nil), ShouldBeNil)
	})
}

func TestUnitGetPaymentCollection(t *testing.T) {
	Convey("Get Payment Collection", t, func() {
		cfg, _ := config.Get()
		client = &mongo.Client{}
		dao := NewDAO(cfg)

		resource, err := dao.GetPaymentCollection(context.Background(), "paycol_1")
		So(resource, ShouldBeNil)
		So(err.Error(), ShouldContainSubstring, noDeployment)
	})
}

func TestUnitUpdatePaymentCollection(t *testing.T) {
	Convey("Update Payment Collection", t, func() {
		cfg, _ := config.Get()
		client = &mongo.Client{}
		dao := NewDAO(cfg)

		resource := models.PaymentCollectionDB{ID: "paycol_1", Version: 3}
		err := dao.UpdatePaymentCollection(context.Background(), &resource)
		So(err.Error(), ShouldStartWith, "error updating payment collection [paycol_1]")
		So(resource.Version, ShouldEqual, 3)
	})
}

func TestUnitDeletePaymentCollections(t *testing.T) {
	Convey("Delete Payment Collections", t, func() {
		cfg, _ := config.Get()
		client = &mongo.Client{}
		dao := NewDAO(cfg)

		err := dao.DeletePaymentCollections(context.Background(), []string{"paycol_1"})
		So(err.Error(), ShouldContainSubstring, noDeployment)
	})

	Convey("Delete nothing is a no-op", t, func() {
		cfg, _ := config.Get()
		client = &mongo.Client{}
		dao := NewDAO(cfg)

		So(dao.DeletePaymentCollections(context.Background(), []string{}), ShouldBeNil)
	})
}

func TestUnitBuildFilter(t *testing.T) {
	Convey("Empty filter matches everything", t, func() {
		So(buildFilter(models.FilterablePaymentCollectionProps{}), ShouldBeEmpty)
	})

	Convey("Every field becomes an $in clause", t, func() {
		filter := buildFilter(models.FilterablePaymentCollectionProps{
			ID:           []string{"paycol_1"},
			RegionID:     []string{"reg_1"},
			CurrencyCode: []string{"usd"},
			Status:       []models.PaymentCollectionStatus{models.CollectionAuthorized},
		})

		So(filter, ShouldHaveLength, 4)
		So(filter["status"], ShouldResemble, bson.M{"$in": []string{"authorized"}})
	})
}
