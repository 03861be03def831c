package domain

// Trip is one traveler's booked train segment. Dates and times are kept in
// the string form the store returns them in.
type Trip struct {
	ID             int64
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

// Segment identifies a specific train car's journey. Two trips are companions
// when their segments are equal and their full names differ.
type Segment struct {
	TrainNumber   string
	DepartureDate string
	DepartureTime string
	ArrivalDate   string
	ArrivalTime   string
	CarNumber     string
}

func (t Trip) Segment() Segment {
	return Segment{
		TrainNumber:   t.TrainNumber,
		DepartureDate: t.DepartureDate,
		DepartureTime: t.DepartureTime,
		ArrivalDate:   t.ArrivalDate,
		ArrivalTime:   t.ArrivalTime,
		CarNumber:     t.CarNumber,
	}
}

// IsCompanionOf reports whether t would be returned as a companion of other.
func (t Trip) IsCompanionOf(other Trip) bool {
	return t.Segment() == other.Segment() && t.FullName != other.FullName
}
