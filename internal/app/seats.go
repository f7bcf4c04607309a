package app

import (
	"net/http"

	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/domain"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func (app *Application) GetSeatMapByShowtime(
	w http.ResponseWriter,
	r *http.Request,
	showtimeID openapi_types.UUID) {

	showtimeSeats, err := app.coordinator.GetOrInitializeSeats(r.Context(), showtimeID)
	if err != nil {
		app.bookingErrorResponse(w, r, err, ErrMsgShowtimeNotFound)
		return
	}

	resp := toSeatMapResponse(showtimeSeats)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatMapResponse(showtimeSeats *domain.ShowtimeSeats) api.SeatMapResponse {
	showtime := showtimeSeats.Showtime

	return api.SeatMapResponse{
		ShowtimeId:     showtime.ID,
		MovieId:        showtime.MovieID,
		TheaterName:    showtime.TheaterName,
		Date:           openapi_types.Date{Time: showtime.Date},
		Time:           showtime.Time,
		Price:          showtime.Price,
		TotalSeats:     showtime.TotalSeats,
		AvailableSeats: showtime.AvailableSeats,
		SeatRows:       toSeatRows(showtimeSeats.Seats),
	}
}

func toSeatRows(seats []domain.Seat) []api.SeatRow {
	// Seats are pre-sorted by row then number, so rows can be built in a
	// single pass.
	seatRows := []api.SeatRow{}

	if len(seats) == 0 {
		return seatRows
	}

	currentRow := api.SeatRow{Row: seats[0].Row}

	for _, v := range seats {
		if v.Row != currentRow.Row {
			seatRows = append(seatRows, currentRow)
			currentRow = api.SeatRow{Row: v.Row}
		}

		currentRow.Seats = append(currentRow.Seats, api.Seat{
			Id:        v.ID,
			Row:       v.Row,
			Number:    v.Number,
			Label:     v.Label(),
			Available: !v.Booked,
		})
	}

	seatRows = append(seatRows, currentRow)

	return seatRows
}
