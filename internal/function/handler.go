package function

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/Domenick1991/tripmates/internal/service/trips"
	"github.com/aws/aws-lambda-go/events"
	log "github.com/sirupsen/logrus"
)

// ErrMalformedBody is returned when a POST body is not a JSON object.
var ErrMalformedBody = errors.New("malformed request body")

// Handler is the single entry point for trip requests delivered as proxy
// events.
type Handler struct {
	trips trips.TripUseCase
}

func NewHandler(trips trips.TripUseCase) *Handler {
	return &Handler{trips: trips}
}

type tripResponse struct {
	ID             int64  `json:"id"`
	FullName       string `json:"fullName"`
	TrainNumber    string `json:"trainNumber"`
	DepartureDate  string `json:"departureDate"`
	DepartureTime  string `json:"departureTime"`
	ArrivalDate    string `json:"arrivalDate"`
	ArrivalTime    string `json:"arrivalTime"`
	CarNumber      string `json:"carNumber"`
	SeatNumber     string `json:"seatNumber"`
	ContactInfo    string `json:"contactInfo"`
	AdditionalInfo string `json:"additionalInfo"`
}

type tripSummaryResponse struct {
	ID            int64  `json:"id"`
	FullName      string `json:"fullName"`
	TrainNumber   string `json:"trainNumber"`
	DepartureDate string `json:"departureDate"`
	DepartureTime string `json:"departureTime"`
	ArrivalDate   string `json:"arrivalDate"`
	ArrivalTime   string `json:"arrivalTime"`
	CarNumber     string `json:"carNumber"`
	SeatNumber    string `json:"seatNumber"`
}

type createTripResponse struct {
	TripID     int64          `json:"tripId"`
	Companions []tripResponse `json:"companions"`
}

type listTripsResponse struct {
	Trips []tripSummaryResponse `json:"trips"`
}

// Handle dispatches on the request method. Store and body decode failures are
// returned as errors and surface as a platform failure, not a 4xx. Methods are
// matched case-sensitively.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	method := req.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}

	switch method {
	case http.MethodOptions:
		return preflight(), nil
	case http.MethodPost:
		return h.create(ctx, req.Body)
	case http.MethodGet:
		return h.list(ctx, req.QueryStringParameters)
	default:
		return methodNotAllowed(), nil
	}
}

func (h *Handler) create(ctx context.Context, body string) (events.APIGatewayProxyResponse, error) {
	input, err := parseCreateTripInput(body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	result, err := h.trips.CreateTrip(ctx, input)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	companions := make([]tripResponse, 0, len(result.Companions))
	for _, c := range result.Companions {
		companions = append(companions, toTripResponse(c))
	}

	log.WithFields(log.Fields{
		"trip_id":    result.Trip.ID,
		"companions": len(companions),
	}).Info("trip created")

	return jsonResponse(http.StatusOK, createTripResponse{
		TripID:     result.Trip.ID,
		Companions: companions,
	})
}

func (h *Handler) list(ctx context.Context, params map[string]string) (events.APIGatewayProxyResponse, error) {
	fullName := params["fullName"]

	found, err := h.trips.ListTrips(ctx, fullName)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	summaries := make([]tripSummaryResponse, 0, len(found))
	for _, t := range found {
		summaries = append(summaries, toTripSummaryResponse(t))
	}
	return jsonResponse(http.StatusOK, listTripsResponse{Trips: summaries})
}

var createFields = [...]string{
	"fullName", "trainNumber", "departureDate", "departureTime", "arrivalDate",
	"arrivalTime", "carNumber", "seatNumber", "contactInfo", "additionalInfo",
}

// parseCreateTripInput decodes body into a loose object and applies the
// empty-string default to each field before building the typed input.
func parseCreateTripInput(body string) (trips.CreateTripInput, error) {
	if strings.TrimSpace(body) == "" {
		body = "{}"
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return trips.CreateTripInput{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if raw == nil {
		return trips.CreateTripInput{}, fmt.Errorf("%w: body is not a JSON object", ErrMalformedBody)
	}
	if dec.More() {
		return trips.CreateTripInput{}, fmt.Errorf("%w: trailing data after JSON object", ErrMalformedBody)
	}

	values := make(map[string]string, len(createFields))
	for _, key := range createFields {
		v, err := stringField(raw, key)
		if err != nil {
			return trips.CreateTripInput{}, err
		}
		values[key] = v
	}

	return trips.CreateTripInput{
		FullName:       values["fullName"],
		TrainNumber:    values["trainNumber"],
		DepartureDate:  values["departureDate"],
		DepartureTime:  values["departureTime"],
		ArrivalDate:    values["arrivalDate"],
		ArrivalTime:    values["arrivalTime"],
		CarNumber:      values["carNumber"],
		SeatNumber:     values["seatNumber"],
		ContactInfo:    values["contactInfo"],
		AdditionalInfo: values["additionalInfo"],
	}, nil
}

func stringField(raw map[string]any, key string) (string, error) {
	switch v := raw[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("%w: field %q must be a scalar", ErrMalformedBody, key)
	}
}

func toTripResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:             t.ID,
		FullName:       t.FullName,
		TrainNumber:    t.TrainNumber,
		DepartureDate:  t.DepartureDate,
		DepartureTime:  t.DepartureTime,
		ArrivalDate:    t.ArrivalDate,
		ArrivalTime:    t.ArrivalTime,
		CarNumber:      t.CarNumber,
		SeatNumber:     t.SeatNumber,
		ContactInfo:    t.ContactInfo,
		AdditionalInfo: t.AdditionalInfo,
	}
}

func toTripSummaryResponse(t domain.Trip) tripSummaryResponse {
	return tripSummaryResponse{
		ID:            t.ID,
		FullName:      t.FullName,
		TrainNumber:   t.TrainNumber,
		DepartureDate: t.DepartureDate,
		DepartureTime: t.DepartureTime,
		ArrivalDate:   t.ArrivalDate,
		ArrivalTime:   t.ArrivalTime,
		CarNumber:     t.CarNumber,
		SeatNumber:    t.SeatNumber,
	}
}
