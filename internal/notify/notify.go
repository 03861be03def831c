package notify

import (
	"context"

	"github.com/Domenick1991/tripmates/internal/domain"
	log "github.com/sirupsen/logrus"
)

// Sender tells every companion listed in a trip event that a new traveler
// booked their car. Delivery is a structured log line per companion.
type Sender struct {
	log log.FieldLogger
}

func NewSender(logger log.FieldLogger) *Sender {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Sender{log: logger}
}

// Send returns the number of notices emitted.
func (s *Sender) Send(ctx context.Context, event domain.TripEvent) (int, error) {
	if event.Type != domain.TripEventCreated {
		return 0, nil
	}

	sent := 0
	for _, c := range event.Companions {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		s.log.WithFields(log.Fields{
			"event_id":     event.ID,
			"to":           c.FullName,
			"contact":      c.ContactInfo,
			"seat":         c.SeatNumber,
			"traveler":     event.FullName,
			"train_number": event.Segment.TrainNumber,
			"car_number":   event.Segment.CarNumber,
			"departure":    event.Segment.DepartureDate + " " + event.Segment.DepartureTime,
		}).Infof("%s joined your car", event.FullName)
		sent++
	}
	return sent, nil
}
