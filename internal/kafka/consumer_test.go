package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestTripEventHandler_Decodes(t *testing.T) {
	var got domain.TripEvent
	handler := TripEventHandler(func(_ context.Context, event domain.TripEvent) error {
		got = event
		return nil
	})

	err := handler(context.Background(), kafka.Message{
		Value: []byte(`{"type":"trip_created","trip_id":7,"full_name":"B","companions":[{"trip_id":1,"full_name":"A"}]}`),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.TripEventCreated, got.Type)
	assert.Equal(t, int64(7), got.TripID)
	assert.Len(t, got.Companions, 1)
}

func TestTripEventHandler_SkipsUndecodable(t *testing.T) {
	called := false
	handler := TripEventHandler(func(context.Context, domain.TripEvent) error {
		called = true
		return nil
	})

	err := handler(context.Background(), kafka.Message{Value: []byte("{")})

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestTripEventHandler_PropagatesHandlerError(t *testing.T) {
	handler := TripEventHandler(func(context.Context, domain.TripEvent) error {
		return errors.New("boom")
	})

	err := handler(context.Background(), kafka.Message{Value: []byte(`{"type":"trip_created"}`)})
	assert.EqualError(t, err, "boom")
}

func TestProducer_CheckConnection_NoBrokers(t *testing.T) {
	p := NewProducer(nil)
	defer p.Close()

	assert.Error(t, p.CheckConnection(context.Background()))
}

func TestCheckConnection_UnreachableBroker(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := CheckConnection(ctx, []string{"127.0.0.1:1"})

	assert.ErrorContains(t, err, "failed to connect to Kafka")
}
