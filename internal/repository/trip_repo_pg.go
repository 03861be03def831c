package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TripRepository hands out one store session per invocation. Callers must
// Release the session on every path.
type TripRepository interface {
	Session(ctx context.Context) (TripSession, error)
}

type TripSession interface {
	Insert(ctx context.Context, trip *domain.Trip) error
	FindCompanions(ctx context.Context, trip domain.Trip) ([]domain.Trip, error)
	ListByFullName(ctx context.Context, fullName string) ([]domain.Trip, error)
	Release()
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGTripRepository struct {
	db *pgxpool.Pool
}

func NewTripRepository(db *pgxpool.Pool) TripRepository {
	return &PGTripRepository{db: db}
}

func (r *PGTripRepository) Session(ctx context.Context) (TripSession, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return newTripSession(conn, conn.Release), nil
}

type pgTripSession struct {
	q       querier
	release func()
}

func newTripSession(q querier, release func()) *pgTripSession {
	return &pgTripSession{q: q, release: release}
}

const insertTripSQL = `INSERT INTO trips
	(full_name, train_number, departure_date, departure_time, arrival_date, arrival_time, car_number, seat_number, contact_info, additional_info)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id`

// Insert runs in autocommit mode, so the row is committed once it returns.
func (s *pgTripSession) Insert(ctx context.Context, trip *domain.Trip) error {
	return s.q.QueryRow(ctx, insertTripSQL,
		trip.FullName, trip.TrainNumber, trip.DepartureDate, trip.DepartureTime,
		trip.ArrivalDate, trip.ArrivalTime, trip.CarNumber, trip.SeatNumber,
		trip.ContactInfo, trip.AdditionalInfo,
	).Scan(&trip.ID)
}

const companionsSQL = `SELECT id, full_name, train_number, departure_date::text, departure_time::text,
	arrival_date::text, arrival_time::text, car_number, seat_number, contact_info, additional_info
	FROM trips
	WHERE train_number = $1
	  AND departure_date = $2
	  AND arrival_date = $3
	  AND departure_time = $4
	  AND arrival_time = $5
	  AND car_number = $6
	  AND full_name <> $7`

// FindCompanions returns every stored trip on the same segment under a
// different full name. The caller's own row is excluded only through the name
// filter, so travelers sharing a name never match each other.
func (s *pgTripSession) FindCompanions(ctx context.Context, trip domain.Trip) ([]domain.Trip, error) {
	rows, err := s.q.Query(ctx, companionsSQL,
		trip.TrainNumber, trip.DepartureDate, trip.ArrivalDate,
		trip.DepartureTime, trip.ArrivalTime, trip.CarNumber, trip.FullName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companions := make([]domain.Trip, 0)
	for rows.Next() {
		var (
			t     domain.Trip
			sched schedule
		)
		if err := rows.Scan(&t.ID, &t.FullName, &t.TrainNumber, &sched.departureDate, &sched.departureTime,
			&sched.arrivalDate, &sched.arrivalTime, &t.CarNumber, &t.SeatNumber, &t.ContactInfo, &t.AdditionalInfo); err != nil {
			return nil, err
		}
		sched.apply(&t)
		companions = append(companions, t)
	}
	return companions, rows.Err()
}

const listByFullNameSQL = `SELECT id, full_name, train_number, departure_date::text, departure_time::text,
	arrival_date::text, arrival_time::text, car_number, seat_number
	FROM trips
	WHERE full_name = $1
	ORDER BY departure_date DESC`

func (s *pgTripSession) ListByFullName(ctx context.Context, fullName string) ([]domain.Trip, error) {
	rows, err := s.q.Query(ctx, listByFullNameSQL, fullName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := make([]domain.Trip, 0)
	for rows.Next() {
		var (
			t     domain.Trip
			sched schedule
		)
		if err := rows.Scan(&t.ID, &t.FullName, &t.TrainNumber, &sched.departureDate, &sched.departureTime,
			&sched.arrivalDate, &sched.arrivalTime, &t.CarNumber, &t.SeatNumber); err != nil {
			return nil, err
		}
		sched.apply(&t)
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// schedule holds the nullable date and time columns. NULL reads back as "".
type schedule struct {
	departureDate, departureTime pgtype.Text
	arrivalDate, arrivalTime     pgtype.Text
}

func (sc schedule) apply(t *domain.Trip) {
	t.DepartureDate = sc.departureDate.String
	t.DepartureTime = sc.departureTime.String
	t.ArrivalDate = sc.arrivalDate.String
	t.ArrivalTime = sc.arrivalTime.String
}

func (s *pgTripSession) Release() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
}

var _ TripRepository = (*PGTripRepository)(nil)
var _ TripSession = (*pgTripSession)(nil)
