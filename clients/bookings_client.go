package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

const bookingsPath = "/bookings"

// BookingsClient define las operaciones contra el booking service
type BookingsClient interface {
	CreateBooking(ctx context.Context, req dto.CreateBookingRequest) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	MyBookings(ctx context.Context) ([]domain.Booking, error)
	GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	CountClientActiveBookings(ctx context.Context, userID string) (int64, error)
	CountHostFutureBookings(ctx context.Context, userID string) (int64, error)
}

type bookingsClient struct {
	restClient
}

// NewBookingsClient crea el cliente; baseURL es la raíz del gateway (http://localhost:8082/api)
func NewBookingsClient(baseURL string, timeout time.Duration) BookingsClient {
	return &bookingsClient{restClient: newRestClient(baseURL, timeout)}
}

func bookingPath(bookingID int64, suffix string) string {
	return bookingsPath + "/" + strconv.FormatInt(bookingID, 10) + suffix
}

func (c *bookingsClient) CreateBooking(ctx context.Context, req dto.CreateBookingRequest) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.doJSON(ctx, http.MethodPost, bookingsPath, nil, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *bookingsClient) CancelBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.doJSON(ctx, http.MethodPatch, bookingPath(bookingID, "/cancel"), nil, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *bookingsClient) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.doJSON(ctx, http.MethodGet, bookingsPath+"/my-bookings", nil, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *bookingsClient) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.doJSON(ctx, http.MethodGet, bookingPath(bookingID, ""), nil, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *bookingsClient) count(ctx context.Context, path string) (int64, error) {
	var resp dto.BookingCountResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *bookingsClient) CountClientActiveBookings(ctx context.Context, userID string) (int64, error) {
	return c.count(ctx, bookingsPath+"/client/"+url.PathEscape(userID)+"/active-count")
}

func (c *bookingsClient) CountHostFutureBookings(ctx context.Context, userID string) (int64, error) {
	return c.count(ctx, bookingsPath+"/host/"+url.PathEscape(userID)+"/future-count")
}
