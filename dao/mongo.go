package dao

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/config"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var client *mongo.Client

func getMongoClient(mongoDBURL string) *mongo.Client {
	if client != nil {
		return client
	}

	ctx := context.Background()

	clientOptions := options.Client().ApplyURI(mongoDBURL)
	mongoClient, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	// check we can connect to the mongodb instance. failure here should result in a crash.
	pingContext, cancel := context.WithDeadline(ctx, time.Now().Add(5*time.Second))
	defer cancel()
	err = mongoClient.Ping(pingContext, nil)
	if err != nil {
		log.Error(errors.New("ping to mongodb timed out. please check the connection to mongodb and that it is running"))
		os.Exit(1)
	}

	log.Info("connected to mongodb successfully")

	client = mongoClient
	return client
}

// MongoDatabaseInterface is an interface that describes the mongodb driver
type MongoDatabaseInterface interface {
	Collection(name string, opts ...*options.CollectionOptions) *mongo.Collection
}

func getMongoDatabase(mongoDBURL, databaseName string) MongoDatabaseInterface {
	return getMongoClient(mongoDBURL).Database(databaseName)
}

// MongoService is an implementation of the DAO interface using MongoDB
// as the backend driver.
type MongoService struct {
	db             MongoDatabaseInterface
	CollectionName string
}

// NewDAO returns a DAO backed by the configured MongoDB database
func NewDAO(cfg *config.Config) DAO {
	return &MongoService{
		db:             getMongoDatabase(cfg.MongoDBURL, cfg.Database),
		CollectionName: cfg.Collection,
	}
}

// CreatePaymentCollections writes new payment collections to the DB
func (m *MongoService) CreatePaymentCollections(ctx context.Context, collections []models.PaymentCollectionDB) error {
	if len(collections) == 0 {
		return nil
	}

	documents := make([]interface{}, 0, len(collections))
	for _, c := range collections {
		documents = append(documents, c)
	}

	_, err := m.db.Collection(m.CollectionName).InsertMany(ctx, documents)
	return err
}

// GetPaymentCollection gets a payment collection from the DB
// If the payment collection is not found in the DB, return nil
func (m *MongoService) GetPaymentCollection(ctx context.Context, id string) (*models.PaymentCollectionDB, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

// GetPaymentCollectionBySessionID gets the payment collection owning a payment session
func (m *MongoService) GetPaymentCollectionBySessionID(ctx context.Context, sessionID string) (*models.PaymentCollectionDB, error) {
	return m.findOne(ctx, bson.M{"payment_sessions.id": sessionID})
}

// GetPaymentCollectionByPaymentID gets the payment collection owning a payment
func (m *MongoService) GetPaymentCollectionByPaymentID(ctx context.Context, paymentID string) (*models.PaymentCollectionDB, error) {
	return m.findOne(ctx, bson.M{"payments.id": paymentID})
}

func (m *MongoService) findOne(ctx context.Context, filter bson.M) (*models.PaymentCollectionDB, error) {
	var resource models.PaymentCollectionDB

	collection := m.db.Collection(m.CollectionName)
	dbResource := collection.FindOne(ctx, filter)

	err := dbResource.Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Debug("no payment collection found", log.Data{"filter": filter})
			return nil, nil
		}
		return nil, err
	}

	err = dbResource.Decode(&resource)
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// ListPaymentCollections gets the payment collections matching filter in
// insertion order
func (m *MongoService) ListPaymentCollections(ctx context.Context, filter models.FilterablePaymentCollectionProps, config models.FindConfig) ([]models.PaymentCollectionDB, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	if config.Skip > 0 {
		findOptions.SetSkip(config.Skip)
	}
	if config.Take > 0 {
		findOptions.SetLimit(config.Take)
	}

	cursor, err := m.db.Collection(m.CollectionName).Find(ctx, buildFilter(filter), findOptions)
	if err != nil {
		return nil, err
	}

	resources := []models.PaymentCollectionDB{}
	if err = cursor.All(ctx, &resources); err != nil {
		return nil, err
	}

	return resources, nil
}

// CountPaymentCollections counts the payment collections matching filter
func (m *MongoService) CountPaymentCollections(ctx context.Context, filter models.FilterablePaymentCollectionProps) (int64, error) {
	return m.db.Collection(m.CollectionName).CountDocuments(ctx, buildFilter(filter))
}

// UpdatePaymentCollection replaces a stored payment collection, provided
// nobody has written it since it was read. On success the version of
// collection is advanced.
func (m *MongoService) UpdatePaymentCollection(ctx context.Context, collection *models.PaymentCollectionDB) error {
	expectedVersion := collection.Version

	replacement := *collection
	replacement.Version = expectedVersion + 1

	result, err := m.db.Collection(m.CollectionName).ReplaceOne(ctx, bson.M{"_id": collection.ID, "version": expectedVersion}, replacement)
	if err != nil {
		return fmt.Errorf("error updating payment collection [%s]: [%v]", collection.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}

	collection.Version = replacement.Version
	return nil
}

// DeletePaymentCollections deletes payment collections along with their
// sessions and payments. Unknown ids are ignored.
func (m *MongoService) DeletePaymentCollections(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := m.db.Collection(m.CollectionName).DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

func buildFilter(filter models.FilterablePaymentCollectionProps) bson.M {
	query := bson.M{}
	if len(filter.ID) > 0 {
		query["_id"] = bson.M{"$in": filter.ID}
	}
	if len(filter.RegionID) > 0 {
		query["region_id"] = bson.M{"$in": filter.RegionID}
	}
	if len(filter.CurrencyCode) > 0 {
		query["currency_code"] = bson.M{"$in": filter.CurrencyCode}
	}
	if len(filter.Status) > 0 {
		statuses := make([]string, 0, len(filter.Status))
		for _, s := range filter.Status {
			statuses = append(statuses, string(s))
		}
		query["status"] = bson.M{"$in": statuses}
	}
	return query
}
