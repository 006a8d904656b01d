package events

import (
	"context"
	"encoding/json"

	"github.com/Shopify/sarama"
)

// DefaultKafkaTopic is used when no topic is configured.
const DefaultKafkaTopic = "station-events"

// KafkaPublisher writes events to a Kafka topic keyed by session id,
// so all actions on one session land on the same partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaProducer dials brokers and returns a synchronous producer.
func NewKafkaProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 3
	return sarama.NewSyncProducer(brokers, cfg)
}

// NewKafkaPublisher wraps producer.
func NewKafkaPublisher(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultKafkaTopic
	}
	return &KafkaPublisher{producer: producer, topic: topic}
}

// Publish sends one message per event.
func (p *KafkaPublisher) Publish(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.Session.ID),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("kind"), Value: []byte(event.Kind)},
		},
	})
	return err
}

// Close releases the producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
