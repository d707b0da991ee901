package dto

// CreateBookingRequest es el body de POST /bookings; las fechas van en formato 2006-01-02
type CreateBookingRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
}

// BookingCountResponse es la respuesta de los conteos de reservas
type BookingCountResponse struct {
	Count   int64  `json:"count"`
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// BookingCounts agrupa los dos conteos del panel de reservas
type BookingCounts struct {
	ActiveAsClient int64 `json:"activeAsClient"`
	FutureAsHost   int64 `json:"futureAsHost"`
}
