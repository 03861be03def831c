package trips

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/Domenick1991/tripmates/internal/repository"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type TripUseCase interface {
	CreateTrip(ctx context.Context, input CreateTripInput) (*CreateTripResult, error)
	ListTrips(ctx context.Context, fullName string) ([]domain.Trip, error)
}

type Cache interface {
	GetTripsByName(ctx context.Context, fullName string) ([]domain.Trip, error)
	TripsByNameVersion(ctx context.Context, fullName string) (int64, error)
	SetTripsByName(ctx context.Context, fullName string, version int64, trips []domain.Trip) (bool, error)
	InvalidateTripsByName(ctx context.Context, fullName string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// CreateTripInput carries the submitted fields after defaulting; absent
// fields are empty strings.
type CreateTripInput struct {
	FullName       string
	TrainNumber    string
	DepartureDate  string
	DepartureTime  string
	ArrivalDate    string
	ArrivalTime    string
	CarNumber      string
	SeatNumber     string
	ContactInfo    string
	AdditionalInfo string
}

type CreateTripResult struct {
	Trip       domain.Trip
	Companions []domain.Trip
}

type TripService struct {
	trips      repository.TripRepository
	cache      Cache
	producer   Producer
	tripsTopic string
	now        func() time.Time
}

type TripServiceOption func(*TripService)

func WithCache(cache Cache) TripServiceOption {
	return func(s *TripService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer, topic string) TripServiceOption {
	return func(s *TripService) {
		s.producer = producer
		s.tripsTopic = topic
	}
}

func NewTripService(trips repository.TripRepository, opts ...TripServiceOption) *TripService {
	service := &TripService{
		trips: trips,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateTrip stores the trip and returns it with every trip already booked on
// the same segment under a different full name.
func (s *TripService) CreateTrip(ctx context.Context, input CreateTripInput) (*CreateTripResult, error) {
	session, err := s.trips.Session(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Release()

	trip := domain.Trip{
		FullName:       input.FullName,
		TrainNumber:    input.TrainNumber,
		DepartureDate:  input.DepartureDate,
		DepartureTime:  input.DepartureTime,
		ArrivalDate:    input.ArrivalDate,
		ArrivalTime:    input.ArrivalTime,
		CarNumber:      input.CarNumber,
		SeatNumber:     input.SeatNumber,
		ContactInfo:    input.ContactInfo,
		AdditionalInfo: input.AdditionalInfo,
	}
	if err := session.Insert(ctx, &trip); err != nil {
		return nil, fmt.Errorf("insert trip: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateTripsByName(ctx, trip.FullName); err != nil {
			log.WithError(err).WithField("trip_id", trip.ID).Warn("invalidate trips cache")
		}
	}

	companions, err := session.FindCompanions(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("find companions: %w", err)
	}

	if err := s.publish(ctx, trip, companions); err != nil {
		log.WithError(err).WithField("trip_id", trip.ID).Warn("publish trip_created event")
	}

	return &CreateTripResult{Trip: trip, Companions: companions}, nil
}

// ListTrips returns the trips stored under exactly fullName, latest
// departure date first. An empty name matches only unnamed trips.
func (s *TripService) ListTrips(ctx context.Context, fullName string) ([]domain.Trip, error) {
	// fill stays false unless the version is read before the store query,
	// so a create that commits in between makes the fill a no-op.
	var (
		version int64
		fill    bool
	)
	if s.cache != nil {
		cached, err := s.cache.GetTripsByName(ctx, fullName)
		if err != nil {
			log.WithError(err).Warn("read trips cache")
		} else if cached != nil {
			return cached, nil
		}

		if version, err = s.cache.TripsByNameVersion(ctx, fullName); err != nil {
			log.WithError(err).Warn("read trips cache version")
		} else {
			fill = true
		}
	}

	session, err := s.trips.Session(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Release()

	trips, err := session.ListByFullName(ctx, fullName)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	if fill {
		stored, err := s.cache.SetTripsByName(ctx, fullName, version, trips)
		switch {
		case err != nil:
			log.WithError(err).Warn("write trips cache")
		case !stored:
			log.WithField("full_name", fullName).Debug("skip stale trips cache fill")
		}
	}
	return trips, nil
}

func (s *TripService) publish(ctx context.Context, trip domain.Trip, companions []domain.Trip) error {
	if s.producer == nil || s.tripsTopic == "" {
		return nil
	}

	notices := make([]domain.CompanionNotice, 0, len(companions))
	for _, c := range companions {
		notices = append(notices, domain.CompanionNotice{
			TripID:      c.ID,
			FullName:    c.FullName,
			SeatNumber:  c.SeatNumber,
			ContactInfo: c.ContactInfo,
		})
	}

	event := domain.TripEvent{
		ID:         uuid.NewString(),
		Type:       domain.TripEventCreated,
		TripID:     trip.ID,
		FullName:   trip.FullName,
		SeatNumber: trip.SeatNumber,
		Segment:    domain.NewSegmentPayload(trip.Segment()),
		Companions: notices,
		OccurredAt: s.now().UTC(),
	}
	return s.producer.Publish(ctx, s.tripsTopic, strconv.FormatInt(trip.ID, 10), event)
}

var _ TripUseCase = (*TripService)(nil)
