// Package events publishes payment lifecycle messages to kafka.
package events

import (
	"context"
	"fmt"

	"github.com/companieshouse/chs.go/avro"
	"github.com/companieshouse/chs.go/avro/schema"
	"github.com/companieshouse/chs.go/kafka/producer"
	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/config"
)

// ProducerTopic is the topic to which payment lifecycle messages are sent
const ProducerTopic = "payment-lifecycle"

// ProducerSchemaName is the schema which will be used to send payment lifecycle messages with
const ProducerSchemaName = "payment-lifecycle"

// Lifecycle event types.
const (
	EventAuthorized = "authorized"
	EventCaptured   = "captured"
	EventRefunded   = "refunded"
	EventCanceled   = "canceled"
)

// LifecycleEvent represents the payment-lifecycle avro schema
type LifecycleEvent struct {
	EventType           string `avro:"event_type"`
	PaymentCollectionID string `avro:"payment_collection_id"`
	PaymentID           string `avro:"payment_id"`
	Amount              string `avro:"amount"`
	CurrencyCode        string `avro:"currency_code"`
	TransactionID       string `avro:"transaction_id"`
	RequestID           string `avro:"request_id"`
}

type messageSender interface {
	Send(msg *producer.Message) (int32, int64, error)
}

// KafkaProducer sends lifecycle events to ProducerTopic.
type KafkaProducer struct {
	sender messageSender
	schema avro.Schema
}

// NewKafkaProducer connects to the configured brokers and fetches the
// message schema from the schema registry.
func NewKafkaProducer(cfg *config.Config) (*KafkaProducer, error) {
	kafkaProducer, err := producer.New(&producer.Config{Acks: &producer.WaitForAll, BrokerAddrs: cfg.BrokerAddr})
	if err != nil {
		return nil, fmt.Errorf("error creating kafka producer: [%v]", err)
	}

	lifecycleSchema, err := schema.Get(cfg.SchemaRegistryURL, ProducerSchemaName)
	if err != nil {
		return nil, fmt.Errorf("error getting schema from schema registry: [%v]", err)
	}

	log.Info("kafka producer created", log.Data{"brokers": cfg.BrokerAddr, "topic": ProducerTopic})

	return &KafkaProducer{
		sender: kafkaProducer,
		schema: avro.Schema{Definition: lifecycleSchema},
	}, nil
}

// Produce marshals event with the avro schema and sends it.
func (k *KafkaProducer) Produce(_ context.Context, event LifecycleEvent) error {
	message, err := prepareKafkaMessage(event, k.schema)
	if err != nil {
		return fmt.Errorf("error preparing kafka message with schema: [%v]", err)
	}

	partition, offset, err := k.sender.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send message in partition: %d at offset %d: [%v]", partition, offset, err)
	}

	log.Trace("lifecycle message sent", log.Data{"event_type": event.EventType, "payment_id": event.PaymentID, "partition": partition, "offset": offset})
	return nil
}

// prepareKafkaMessage is pulled out of Produce() to allow unit testing of non-kafka portion of code
func prepareKafkaMessage(event LifecycleEvent, lifecycleSchema avro.Schema) (*producer.Message, error) {
	messageBytes, err := lifecycleSchema.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payment lifecycle message: [%v]", err)
	}

	return &producer.Message{
		Value: messageBytes,
		Topic: ProducerTopic,
	}, nil
}
