package domain

import (
	"errors"
	"math"
	"time"
)

// BookingStatus es el estado de una reserva en el booking service
type BookingStatus string

const (
	BookingAwaitingPayment BookingStatus = "AWAITING_PAYMENT"
	BookingConfirmed       BookingStatus = "CONFIRMED"
	BookingCancelled       BookingStatus = "CANCELLED"
	BookingPending         BookingStatus = "PENDING"
)

var bookingDisplayNames = map[BookingStatus]string{
	BookingAwaitingPayment: "Awaiting Payment",
	BookingConfirmed:       "Confirmed",
	BookingCancelled:       "Cancelled",
	BookingPending:         "Pending",
}

// DisplayName devuelve la etiqueta para la UI; un status desconocido sale tal cual
func (s BookingStatus) DisplayName() string {
	if name, ok := bookingDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

// IsCancellable: solo se cancelan reservas confirmadas o esperando el pago
func (s BookingStatus) IsCancellable() bool {
	return s == BookingConfirmed || s == BookingAwaitingPayment
}

// Booking es la reserva tal como la devuelve GET /bookings/{id}
type Booking struct {
	ID                  int64         `json:"id"`
	PropertyID          string        `json:"propertyId"`
	TenantID            string        `json:"tenantId"`
	StartDate           string        `json:"startDate"`
	EndDate             string        `json:"endDate"`
	Status              BookingStatus `json:"status"`
	TenantWalletAddress string        `json:"tenantWalletAddress"`
	ContractAddress     string        `json:"contractAddress,omitempty"`
	PricePerNight       float64       `json:"pricePerNight"`
	TotalPrice          float64       `json:"totalPrice"`
	Currency            string        `json:"currency"`
	CreatedAt           string        `json:"createdAt"`
	UpdatedAt           string        `json:"updatedAt"`
}

// BookingDateLayout es el formato de fecha que espera el booking service
const BookingDateLayout = "2006-01-02"

// ServiceFeeRate es la comisión que se suma al subtotal de la estadía
const ServiceFeeRate = 0.05

var (
	ErrStayDatesRequired = errors.New("Please select check-in and check-out dates.")
	ErrStayDatesOrder    = errors.New("Check-out date must be after check-in date.")
)

// StayQuote es el desglose de precio que ve el huésped antes de reservar
type StayQuote struct {
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"pricePerNight"`
	Subtotal      float64 `json:"subtotal"`
	ServiceFee    float64 `json:"serviceFee"`
	Total         float64 `json:"total"`
}

// ParseStay valida las fechas de la estadía: ambas presentes y la salida posterior a la entrada
func ParseStay(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, ErrStayDatesRequired
	}
	start, err := time.Parse(BookingDateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrStayDatesRequired
	}
	end, err := time.Parse(BookingDateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrStayDatesRequired
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrStayDatesOrder
	}
	return start, end, nil
}

// QuoteStay calcula noches, subtotal, comisión del 5% y total
func QuoteStay(pricePerNight float64, startDate, endDate string) (StayQuote, error) {
	start, end, err := ParseStay(startDate, endDate)
	if err != nil {
		return StayQuote{}, err
	}

	nights := int(end.Sub(start).Hours() / 24)
	subtotal := pricePerNight * float64(nights)
	fee := roundCents(subtotal * ServiceFeeRate)
	return StayQuote{
		StartDate:     startDate,
		EndDate:       endDate,
		Nights:        nights,
		PricePerNight: pricePerNight,
		Subtotal:      roundCents(subtotal),
		ServiceFee:    fee,
		Total:         roundCents(subtotal + fee),
	}, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
