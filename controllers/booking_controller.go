package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
	"github.com/appLSI/decentralized-rental-app-sub000/services"
	"github.com/appLSI/decentralized-rental-app-sub000/stores"
)

// BookingCreatedResponse es la respuesta de POST /api/bookings
type BookingCreatedResponse struct {
	Message string              `json:"message"`
	Booking domain.Booking      `json:"booking"`
	State   stores.BookingState `json:"state"`
}

// BookingController maneja las reservas del usuario y la cotización pública
type BookingController struct {
	bookings services.BookingService
}

func NewBookingController(bookings services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

func bookingIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid booking id")
		return 0, false
	}
	return id, true
}

// Quote maneja GET /api/properties/:id/quote?startDate=&endDate=
func (ctrl *BookingController) Quote(c *gin.Context) {
	quote, err := ctrl.bookings.Quote(c.Request.Context(), c.Param("id"), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// List maneja GET /api/bookings: reservas y conteos, siempre recargados
func (ctrl *BookingController) List(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	if err := s.Bookings.Load(s.Context(c.Request.Context())); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Bookings.State())
}

// Create maneja POST /api/bookings
func (ctrl *BookingController) Create(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	// 1. Leer el JSON del body
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	// 2. Reservar; si la recarga posterior falla la reserva igual existe
	booking, err := s.Bookings.Create(s.Context(c.Request.Context()), req)
	if booking == nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, BookingCreatedResponse{
		Message: "Booking created successfully",
		Booking: *booking,
		State:   s.Bookings.State(),
	})
}

// Get maneja GET /api/bookings/:id
func (ctrl *BookingController) Get(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := s.Bookings.Get(s.Context(c.Request.Context()), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Cancel maneja PATCH /api/bookings/:id/cancel
func (ctrl *BookingController) Cancel(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	if err := s.Bookings.Cancel(s.Context(c.Request.Context()), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Bookings.State())
}
