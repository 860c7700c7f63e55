package events

import (
	"context"
	"errors"
	"testing"

	"github.com/companieshouse/chs.go/avro"
	"github.com/companieshouse/chs.go/kafka/producer"
	. "github.com/smartystreets/goconvey/convey"
)

// This is the schema that is used by the producer
const lifecycleSchema = `{
	"type": "record",
	"name": "payment_lifecycle",
	"namespace": "payments",
	"fields": [
		{"name": "event_type", "type": "string"},
		{"name": "payment_collection_id", "type": "string"},
		{"name": "payment_id", "type": "string"},
		{"name": "amount", "type": "string"},
		{"name": "currency_code", "type": "string"},
		{"name": "transaction_id", "type": "string"},
		{"name": "request_id", "type": "string"}
	]
}`

type recordingSender struct {
	messages []*producer.Message
	err      error
}

func (r *recordingSender) Send(msg *producer.Message) (int32, int64, error) {
	if r.err != nil {
		return 0, 0, r.err
	}
	r.messages = append(r.messages, msg)
	return 1, int64(len(r.messages)), nil
}

var captured = LifecycleEvent{
	EventType:           EventCaptured,
	PaymentCollectionID: "paycol_1",
	PaymentID:           "pay_1",
	Amount:              "200",
	CurrencyCode:        "usd",
	TransactionID:       "tx",
	RequestID:           "req",
}

func TestUnitPrepareKafkaMessage(t *testing.T) {
	Convey("Successful message preparation with prepareKafkaMessage", t, func() {
		producerSchema := avro.Schema{Definition: lifecycleSchema}

		// the message must read back exactly as it was sent
		message, err := prepareKafkaMessage(captured, producerSchema)
		So(err, ShouldBeNil)
		So(message.Topic, ShouldEqual, ProducerTopic)

		unmarshalled := LifecycleEvent{}
		So(producerSchema.Unmarshal(message.Value, &unmarshalled), ShouldBeNil)
		So(unmarshalled, ShouldResemble, captured)
	})

	Convey("Unsuccessful message preparation with prepareKafkaMessage", t, func() {
		// amount has the wrong type, so marshalling fails
		producerSchema := avro.Schema{Definition: `{
			"type": "record",
			"name": "payment_lifecycle",
			"namespace": "payments",
			"fields": [{"name": "amount", "type": "int"}]
		}`}

		_, err := prepareKafkaMessage(captured, producerSchema)
		So(err, ShouldNotBeNil)
	})
}

func TestUnitProduce(t *testing.T) {
	Convey("Message is sent to the lifecycle topic", t, func() {
		sender := &recordingSender{}
		k := &KafkaProducer{sender: sender, schema: avro.Schema{Definition: lifecycleSchema}}

		err := k.Produce(context.Background(), captured)

		So(err, ShouldBeNil)
		So(sender.messages, ShouldHaveLength, 1)
		So(sender.messages[0].Topic, ShouldEqual, "payment-lifecycle")
	})

	Convey("Send failure is returned", t, func() {
		k := &KafkaProducer{sender: &recordingSender{err: errors.New("broker down")}, schema: avro.Schema{Definition: lifecycleSchema}}

		err := k.Produce(context.Background(), captured)

		So(err.Error(), ShouldEqual, "failed to send message in partition: 0 at offset 0: [broker down]")
	})
}
