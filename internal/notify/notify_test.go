package notify

import (
	"context"
	"testing"

	"github.com/Domenick1991/tripmates/internal/domain"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSender_Send(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sender := NewSender(logger)

	event := domain.TripEvent{
		ID:       "evt-1",
		Type:     domain.TripEventCreated,
		TripID:   2,
		FullName: "B",
		Segment:  domain.SegmentPayload{TrainNumber: "45", CarNumber: "3"},
		Companions: []domain.CompanionNotice{
			{TripID: 1, FullName: "A", SeatNumber: "12", ContactInfo: "a@example.com"},
			{TripID: 3, FullName: "C", SeatNumber: "15"},
		},
	}

	sent, err := sender.Send(context.Background(), event)

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	require.Len(t, hook.AllEntries(), 2)
	first := hook.AllEntries()[0]
	assert.Equal(t, log.InfoLevel, first.Level)
	assert.Equal(t, "B joined your car", first.Message)
	assert.Equal(t, "A", first.Data["to"])
	assert.Equal(t, "a@example.com", first.Data["contact"])
}

func TestSender_Send_IgnoresOtherTypes(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sender := NewSender(logger)

	sent, err := sender.Send(context.Background(), domain.TripEvent{
		Type:       "trip_archived",
		Companions: []domain.CompanionNotice{{FullName: "A"}},
	})

	assert.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, hook.AllEntries())
}

func TestSender_Send_CancelledContext(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sender := NewSender(logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sent, err := sender.Send(ctx, domain.TripEvent{
		Type:       domain.TripEventCreated,
		Companions: []domain.CompanionNotice{{FullName: "A"}},
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sent)
}
