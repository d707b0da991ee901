package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/appLSI/decentralized-rental-app-sub000/apperrors"
	"github.com/appLSI/decentralized-rental-app-sub000/clients"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

// PropertyLookup es lo único que las reservas necesitan del catálogo de propiedades
type PropertyLookup interface {
	GetProperty(ctx context.Context, propertyID string) (*domain.Property, error)
}

// BookingService define las operaciones de reservas contra el booking service
type BookingService interface {
	Quote(ctx context.Context, propertyID, startDate, endDate string) (*domain.StayQuote, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID int64, current domain.BookingStatus) (*domain.Booking, error)
	MyBookings(ctx context.Context) ([]domain.Booking, error)
	Get(ctx context.Context, bookingID int64) (*domain.Booking, error)
	CountClientActive(ctx context.Context, userID string) (int64, error)
	CountHostFuture(ctx context.Context, userID string) (int64, error)
}

type bookingService struct {
	bookings clients.BookingsClient
	props    PropertyLookup
}

func NewBookingService(bookings clients.BookingsClient, props PropertyLookup) BookingService {
	return &bookingService{bookings: bookings, props: props}
}

// bookable trae la propiedad y verifica que acepte reservas
func (s *bookingService) bookable(ctx context.Context, propertyID string) (*domain.Property, error) {
	if strings.TrimSpace(propertyID) == "" {
		return nil, apperrors.NewValidationError("property ID is required")
	}
	property, err := s.props.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !property.Status.CanAcceptBookings() {
		return nil, apperrors.NewValidationError("This property is not available for booking")
	}
	return property, nil
}

// Quote calcula el precio de la estadía con el precio actual de la propiedad
func (s *bookingService) Quote(ctx context.Context, propertyID, startDate, endDate string) (*domain.StayQuote, error) {
	if _, _, err := domain.ParseStay(startDate, endDate); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	property, err := s.bookable(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	quote, err := domain.QuoteStay(property.PricePerNight, startDate, endDate)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return &quote, nil
}

// Create valida fechas y status localmente y después reserva.
// El backend exige la wallet conectada; ese 400 se traduce en el mensaje de MetaMask.
func (s *bookingService) Create(ctx context.Context, req dto.CreateBookingRequest) (*domain.Booking, error) {
	// 1. Fechas
	if _, _, err := domain.ParseStay(req.StartDate, req.EndDate); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	// 2. La propiedad tiene que estar ACTIVE
	if _, err := s.bookable(ctx, req.PropertyID); err != nil {
		return nil, err
	}

	// 3. Reservar
	booking, err := s.bookings.CreateBooking(ctx, req)
	if err != nil {
		return nil, upstreamError(apperrors.OpCreateBooking, err)
	}
	log.Info().Int64("booking_id", booking.ID).Str("property_id", req.PropertyID).Msg("Booking created")
	return booking, nil
}

// Cancel rechaza localmente las reservas que ya no se pueden cancelar
func (s *bookingService) Cancel(ctx context.Context, bookingID int64, current domain.BookingStatus) (*domain.Booking, error) {
	if !current.IsCancellable() {
		return nil, apperrors.NewValidationError("Only confirmed or awaiting payment bookings can be cancelled")
	}
	booking, err := s.bookings.CancelBooking(ctx, bookingID)
	if err != nil {
		return nil, upstreamError(apperrors.OpCancelBooking, err)
	}
	log.Info().Int64("booking_id", bookingID).Msg("Booking cancelled")
	return booking, nil
}

func (s *bookingService) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.bookings.MyBookings(ctx)
	return bookings, upstreamError(apperrors.OpBookings, err)
}

func (s *bookingService) Get(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	return booking, upstreamError(apperrors.OpGetBooking, err)
}

func (s *bookingService) CountClientActive(ctx context.Context, userID string) (int64, error) {
	count, err := s.bookings.CountClientActiveBookings(ctx, userID)
	return count, upstreamError(apperrors.OpBookings, err)
}

func (s *bookingService) CountHostFuture(ctx context.Context, userID string) (int64, error) {
	count, err := s.bookings.CountHostFutureBookings(ctx, userID)
	return count, upstreamError(apperrors.OpBookings, err)
}
