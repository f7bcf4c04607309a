package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (user_id, showtime_id, total_amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := conn(ctx, p.db).QueryRow(
		ctx,
		query,
		booking.UserID,
		booking.ShowtimeID,
		toNumeric(booking.TotalAmount),
		string(booking.Status),
	).Scan(&booking.ID, &booking.CreatedAt)

	return classifyError(err)
}

func (p *PostgresBookingRepository) CreateBookingSeats(
	ctx context.Context,
	bookingID uuid.UUID,
	seatIDs []uuid.UUID) error {

	rows := make([][]any, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		rows = append(rows, []any{bookingID, seatID})
	}

	copied, err := conn(ctx, p.db).CopyFrom(
		ctx,
		pgx.Identifier{"booking_seats"},
		[]string{"booking_id", "seat_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return classifyError(err)
	}

	if copied != int64(len(seatIDs)) {
		return fmt.Errorf("inserted %d of %d booking seats", copied, len(seatIDs))
	}

	return nil
}

func (p *PostgresBookingRepository) GetBookingsByUserId(
	ctx context.Context,
	userID string,
	pagination domain.Pagination) ([]domain.BookingDetail, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			b.user_id,
			b.showtime_id,
			b.total_amount,
			b.status,
			b.created_at,
			s.movie_id,
			s.theater_name,
			s.show_date,
			s.show_time::text,
			s.price,
			s.total_seats,
			s.available_seats,
			m.title,
			m.genre,
			m.poster_url
		FROM bookings b
		JOIN showtimes s ON b.showtime_id = s.id
		JOIN movies m ON s.movie_id = m.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id
		LIMIT $2 OFFSET $3
	`

	q := conn(ctx, p.db)

	rows, err := q.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, classifyError(err)
	}
	defer rows.Close()

	bookings := make([]domain.BookingDetail, 0)
	totalRecords := 0

	for rows.Next() {
		var detail domain.BookingDetail
		var totalAmount, price pgtype.Numeric
		var status string

		err := rows.Scan(
			&totalRecords,
			&detail.Booking.ID,
			&detail.Booking.UserID,
			&detail.Booking.ShowtimeID,
			&totalAmount,
			&status,
			&detail.Booking.CreatedAt,
			&detail.Showtime.MovieID,
			&detail.Showtime.TheaterName,
			&detail.Showtime.Date,
			&detail.Showtime.Time,
			&price,
			&detail.Showtime.TotalSeats,
			&detail.Showtime.AvailableSeats,
			&detail.Movie.Title,
			&detail.Movie.Genre,
			&detail.Movie.PosterUrl,
		)
		if err != nil {
			return nil, nil, classifyError(err)
		}

		detail.Booking.TotalAmount = toDecimal(totalAmount)
		detail.Booking.Status = domain.BookingStatus(status)
		detail.Showtime.ID = detail.Booking.ShowtimeID
		detail.Showtime.Price = toDecimal(price)
		detail.Movie.ID = detail.Showtime.MovieID

		bookings = append(bookings, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, classifyError(err)
	}

	// rows must be released before the connection is reused inside a transaction
	rows.Close()

	err = p.attachSeats(ctx, q, bookings)
	if err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return bookings, metadata, nil
}

func (p *PostgresBookingRepository) attachSeats(ctx context.Context, q querier, bookings []domain.BookingDetail) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]string, len(bookings))
	index := make(map[uuid.UUID]int, len(bookings))

	for i, b := range bookings {
		ids[i] = b.Booking.ID.String()
		index[b.Booking.ID] = i
	}

	query := `
		SELECT bs.booking_id, s.id, s.showtime_id, s.row_label, s.seat_number, s.is_booked
		FROM booking_seats bs
		JOIN seats s ON bs.seat_id = s.id
		WHERE bs.booking_id = ANY($1::uuid[])
		ORDER BY length(s.row_label), s.row_label, s.seat_number
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return classifyError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID uuid.UUID
		var seat domain.Seat

		err := rows.Scan(&bookingID, &seat.ID, &seat.ShowtimeID, &seat.Row, &seat.Number, &seat.Booked)
		if err != nil {
			return classifyError(err)
		}

		i, ok := index[bookingID]
		if !ok {
			continue
		}

		seat.BookingID = &bookingID

		bookings[i].Seats = append(bookings[i].Seats, seat)
		bookings[i].Booking.SeatIDs = append(bookings[i].Booking.SeatIDs, seat.ID)
	}

	if err = rows.Err(); err != nil {
		return classifyError(err)
	}

	return nil
}
