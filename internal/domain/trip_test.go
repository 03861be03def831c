package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrip_IsCompanionOf(t *testing.T) {
	base := Trip{
		FullName:      "A",
		TrainNumber:   "45",
		DepartureDate: "2024-05-01",
		DepartureTime: "10:00:00",
		ArrivalDate:   "2024-05-02",
		ArrivalTime:   "08:00:00",
		CarNumber:     "3",
		SeatNumber:    "12",
	}

	other := base
	other.FullName = "B"
	other.SeatNumber = "14"
	other.ContactInfo = "b@example.com"
	other.AdditionalInfo = "window"
	assert.True(t, other.IsCompanionOf(base))
	assert.True(t, base.IsCompanionOf(other))

	sameName := base
	sameName.SeatNumber = "13"
	assert.False(t, sameName.IsCompanionOf(base))

	otherCar := other
	otherCar.CarNumber = "4"
	assert.False(t, otherCar.IsCompanionOf(base))

	otherArrival := other
	otherArrival.ArrivalTime = "09:00:00"
	assert.False(t, otherArrival.IsCompanionOf(base))
}

func TestNewSegmentPayload(t *testing.T) {
	seg := Segment{TrainNumber: "45", DepartureDate: "2024-05-01", CarNumber: "3"}
	p := NewSegmentPayload(seg)
	assert.Equal(t, "45", p.TrainNumber)
	assert.Equal(t, "2024-05-01", p.DepartureDate)
	assert.Equal(t, "3", p.CarNumber)
}
