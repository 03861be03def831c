package domain

import "time"

const TripEventCreated = "trip_created"

type TripEvent struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	TripID     int64             `json:"trip_id"`
	FullName   string            `json:"full_name"`
	SeatNumber string            `json:"seat_number"`
	Segment    SegmentPayload    `json:"segment"`
	Companions []CompanionNotice `json:"companions"`
	OccurredAt time.Time         `json:"occurred_at"`
}

type SegmentPayload struct {
	TrainNumber   string `json:"train_number"`
	DepartureDate string `json:"departure_date"`
	DepartureTime string `json:"departure_time"`
	ArrivalDate   string `json:"arrival_date"`
	ArrivalTime   string `json:"arrival_time"`
	CarNumber     string `json:"car_number"`
}

type CompanionNotice struct {
	TripID      int64  `json:"trip_id"`
	FullName    string `json:"full_name"`
	SeatNumber  string `json:"seat_number"`
	ContactInfo string `json:"contact_info"`
}

func NewSegmentPayload(s Segment) SegmentPayload {
	return SegmentPayload(s)
}
