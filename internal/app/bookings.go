package app

import (
	"net/http"

	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/domain"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

func (app *Application) CreateBooking(
	w http.ResponseWriter,
	r *http.Request,
	showtimeID openapi_types.UUID) {

	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	booking, err := app.coordinator.CreateBooking(r.Context(), userId, showtimeID, input.SeatIds)
	if err != nil {
		app.bookingErrorResponse(w, r, err, ErrMsgSeatsNotFound)
		return
	}

	resp := api.BookingResponse{
		Booking: toApiBooking(booking),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingsOfUser(
	w http.ResponseWriter,
	r *http.Request,
	params api.GetBookingsOfUserParams) {

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)
	pagination := toPagination(params)

	bookings, metadata, err := app.coordinator.ListBookingsForUser(r.Context(), userId, pagination)
	if err != nil {
		app.bookingErrorResponse(w, r, err, ErrMsgNotFound)
		return
	}

	resp := api.UserBookingsResponse{
		Bookings: toBookingSummaries(bookings),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiBooking(booking *domain.Booking) api.Booking {
	return api.Booking{
		Id:          booking.ID,
		ShowtimeId:  booking.ShowtimeID,
		UserId:      booking.UserID,
		Status:      string(booking.Status),
		TotalAmount: booking.TotalAmount,
		SeatIds:     booking.SeatIDs,
		CreatedAt:   booking.CreatedAt,
	}
}

func toBookingSummaries(bookings []domain.BookingDetail) []api.BookingSummary {
	summaries := make([]api.BookingSummary, len(bookings))

	for i, v := range bookings {
		summary := &summaries[i]

		summary.Id = v.Booking.ID
		summary.Status = string(v.Booking.Status)
		summary.TotalAmount = v.Booking.TotalAmount
		summary.CreatedAt = v.Booking.CreatedAt
		summary.Movie = api.BookingMovie{
			Id:        v.Movie.ID,
			Title:     v.Movie.Title,
			Genre:     v.Movie.Genre,
			PosterUrl: v.Movie.PosterUrl,
		}
		summary.Showtime = api.BookingShowtime{
			Id:          v.Showtime.ID,
			TheaterName: v.Showtime.TheaterName,
			Date:        openapi_types.Date{Time: v.Showtime.Date},
			Time:        v.Showtime.Time,
		}

		summary.Seats = make([]string, len(v.Seats))
		for j, seat := range v.Seats {
			summary.Seats[j] = seat.Label()
		}
	}

	return summaries
}

func toPagination(params api.GetBookingsOfUserParams) domain.Pagination {
	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if params.Page != nil {
		pagination.Page = *params.Page
	}
	if params.PageSize != nil {
		pagination.PageSize = *params.PageSize
	}

	return pagination
}

func toApiMetadata(metadata *domain.Metadata) api.Metadata {
	if metadata == nil {
		return api.Metadata{}
	}

	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
