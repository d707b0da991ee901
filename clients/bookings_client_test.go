package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

func TestBookingsClient_Endpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tenant-token", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/bookings":
			var body dto.CreateBookingRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			writeJSON(w, http.StatusCreated, domain.Booking{ID: 7, PropertyID: body.PropertyID, StartDate: body.StartDate, EndDate: body.EndDate, Status: domain.BookingAwaitingPayment})
		case r.Method == http.MethodPatch && r.URL.Path == "/api/bookings/7/cancel":
			writeJSON(w, http.StatusOK, domain.Booking{ID: 7, Status: domain.BookingCancelled})
		case r.Method == http.MethodGet && r.URL.Path == "/api/bookings/my-bookings":
			writeJSON(w, http.StatusOK, []domain.Booking{{ID: 7}, {ID: 8}})
		case r.Method == http.MethodGet && r.URL.Path == "/api/bookings/7":
			writeJSON(w, http.StatusOK, domain.Booking{ID: 7, TotalPrice: 378})
		case r.URL.Path == "/api/bookings/client/u-1/active-count":
			writeJSON(w, http.StatusOK, dto.BookingCountResponse{Count: 2, UserID: "u-1"})
		case r.URL.Path == "/api/bookings/host/u-1/future-count":
			writeJSON(w, http.StatusOK, dto.BookingCountResponse{Count: 5, UserID: "u-1"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewBookingsClient(srv.URL+"/api", time.Second)
	ctx := WithToken(context.Background(), "tenant-token")

	created, err := client.CreateBooking(ctx, dto.CreateBookingRequest{PropertyID: "p-1", StartDate: "2025-07-01", EndDate: "2025-07-04"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, "p-1", created.PropertyID)

	cancelled, err := client.CancelBooking(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)

	mine, err := client.MyBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	one, err := client.GetBooking(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 378.0, one.TotalPrice)

	active, err := client.CountClientActiveBookings(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)

	future, err := client.CountHostFutureBookings(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), future)
}

func TestBookingsClient_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Dates overlap"})
	}))
	defer srv.Close()

	client := NewBookingsClient(srv.URL, time.Second)
	_, err := client.CreateBooking(context.Background(), dto.CreateBookingRequest{PropertyID: "p-1", StartDate: "2025-07-01", EndDate: "2025-07-02"})

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Dates overlap", apiErr.Message)
}
