package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/redis/go-redis/v9"

	"evstation/backend/services/station-service/internal/models"
)

func testEvent() Event {
	return Event{
		Kind:    KindSessionPaused,
		Session: models.ChargingSession{ID: "EV-19", Charger: 8, Status: models.StatusPausedByOwner},
		Logs: []models.AILogEntry{
			{Time: "12:00:00", Type: models.LogTypeAction, Message: "Owner manually **Paused** charging for **EV-19**."},
		},
	}
}

func TestFanoutDeliversToAllAndJoinsErrors(t *testing.T) {
	var calls []string
	fanout := NewFanout()
	fanout.Add("first", PublisherFunc(func(context.Context, Event) error {
		calls = append(calls, "first")
		return errors.New("boom")
	}))
	fanout.Add("ignored", nil)
	fanout.Add("second", PublisherFunc(func(context.Context, Event) error {
		calls = append(calls, "second")
		return nil
	}))

	if fanout.Len() != 2 {
		t.Fatalf("expected 2 publishers, got %d", fanout.Len())
	}
	err := fanout.Publish(context.Background(), testEvent())
	if err == nil || !strings.Contains(err.Error(), "first: boom") {
		t.Fatalf("expected joined error naming sink, got %v", err)
	}
	if strings.Join(calls, ",") != "first,second" {
		t.Fatalf("unexpected call order %v", calls)
	}
}

type fakeRedis struct {
	channel string
	payload []byte
	err     error
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(1)
	}
	return cmd
}

func TestRedisPublisher(t *testing.T) {
	client := &fakeRedis{}
	publisher := NewRedisPublisher(client, "")

	if err := publisher.Publish(context.Background(), testEvent()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if client.channel != DefaultRedisChannel {
		t.Fatalf("unexpected channel %s", client.channel)
	}
	var decoded Event
	if err := json.Unmarshal(client.payload, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.Kind != KindSessionPaused || decoded.Session.ID != "EV-19" || len(decoded.Logs) != 1 {
		t.Fatalf("unexpected payload %+v", decoded)
	}

	client.err = redis.ErrClosed
	if err := publisher.Publish(context.Background(), testEvent()); !errors.Is(err, redis.ErrClosed) {
		t.Fatalf("expected redis error, got %v", err)
	}
}

func TestKafkaPublisher(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var decoded Event
		if err := json.Unmarshal(val, &decoded); err != nil {
			return err
		}
		if decoded.Session.ID != "EV-19" {
			return errors.New("unexpected session in payload")
		}
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewKafkaPublisher(producer, "")
	if err := publisher.Publish(context.Background(), testEvent()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := publisher.Publish(context.Background(), testEvent()); !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("expected broker error, got %v", err)
	}
	if err := publisher.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
