// Package api holds the HTTP contract of the booking service: request and
// response bodies and the chi wrapper that binds path and query parameters.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidationError defines model for ValidationError.
type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// ValidationErrorResponse defines model for ValidationErrorResponse.
type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

// HealthcheckResponse defines model for HealthcheckResponse.
type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

// SystemInfo defines model for SystemInfo.
type SystemInfo struct {
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

// Seat defines model for Seat.
type Seat struct {
	Id        openapi_types.UUID `json:"id"`
	Row       string             `json:"row"`
	Number    int                `json:"number"`
	Label     string             `json:"label"`
	Available bool               `json:"available"`
}

// SeatRow defines model for SeatRow.
type SeatRow struct {
	Row   string `json:"row"`
	Seats []Seat `json:"seats"`
}

// SeatMapResponse defines model for SeatMapResponse.
type SeatMapResponse struct {
	ShowtimeId     openapi_types.UUID `json:"showtimeId"`
	MovieId        openapi_types.UUID `json:"movieId"`
	TheaterName    string             `json:"theaterName"`
	Date           openapi_types.Date `json:"date"`
	Time           string             `json:"time"`
	Price          decimal.Decimal    `json:"price"`
	TotalSeats     int                `json:"totalSeats"`
	AvailableSeats int                `json:"availableSeats"`
	SeatRows       []SeatRow          `json:"seatRows"`
}

// CreateBookingRequest defines model for CreateBookingRequest. The upper
// bound on the number of seats is configurable and enforced when booking.
type CreateBookingRequest struct {
	SeatIds []openapi_types.UUID `json:"seatIds" validate:"required,min=1,unique,dive,required"`
}

// Booking defines model for Booking.
type Booking struct {
	Id          openapi_types.UUID   `json:"id"`
	ShowtimeId  openapi_types.UUID   `json:"showtimeId"`
	UserId      string               `json:"userId"`
	Status      string               `json:"status"`
	TotalAmount decimal.Decimal      `json:"totalAmount"`
	SeatIds     []openapi_types.UUID `json:"seatIds"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// BookingResponse defines model for BookingResponse.
type BookingResponse struct {
	Booking Booking `json:"booking"`
}

// BookingMovie defines model for BookingMovie.
type BookingMovie struct {
	Id        openapi_types.UUID `json:"id"`
	Title     string             `json:"title"`
	Genre     string             `json:"genre"`
	PosterUrl *string            `json:"posterUrl,omitempty"`
}

// BookingShowtime defines model for BookingShowtime.
type BookingShowtime struct {
	Id          openapi_types.UUID `json:"id"`
	TheaterName string             `json:"theaterName"`
	Date        openapi_types.Date `json:"date"`
	Time        string             `json:"time"`
}

// BookingSummary defines model for BookingSummary.
type BookingSummary struct {
	Id          openapi_types.UUID `json:"id"`
	Status      string             `json:"status"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	CreatedAt   time.Time          `json:"createdAt"`
	Movie       BookingMovie       `json:"movie"`
	Showtime    BookingShowtime    `json:"showtime"`
	Seats       []string           `json:"seats"`
}

// Metadata defines model for Metadata.
type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

// UserBookingsResponse defines model for UserBookingsResponse.
type UserBookingsResponse struct {
	Bookings []BookingSummary `json:"bookings"`
	Metadata Metadata         `json:"metadata"`
}

// GetBookingsOfUserParams defines parameters for GetBookingsOfUser.
type GetBookingsOfUserParams struct {
	Page     *int `form:"page,omitempty" json:"page,omitempty" validate:"omitempty,min=1"`
	PageSize *int `form:"pageSize,omitempty" json:"pageSize,omitempty" validate:"omitempty,min=1,max=100"`
}
