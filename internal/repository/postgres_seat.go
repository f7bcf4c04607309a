package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) EnsureSeatsExist(
	ctx context.Context,
	showtimeID uuid.UUID,
	totalSeats int) ([]domain.Seat, error) {

	if totalSeats <= 0 {
		return nil, fmt.Errorf("%w: total seats must be positive, got %d", domain.ErrInvalidSelection, totalSeats)
	}

	layout := domain.SeatLayout(totalSeats)
	rows := make([]string, len(layout))
	numbers := make([]int32, len(layout))

	for i, position := range layout {
		rows[i] = position.Row
		numbers[i] = int32(position.Number)
	}

	// Concurrent initializers wait on the unique index and then skip the
	// rows the winner already inserted.
	query := `
		INSERT INTO seats (showtime_id, row_label, seat_number)
		SELECT $1, t.row_label, t.seat_number
		FROM unnest($2::text[], $3::int[]) AS t(row_label, seat_number)
		ON CONFLICT (showtime_id, row_label, seat_number) DO NOTHING
	`

	_, err := conn(ctx, p.db).Exec(ctx, query, showtimeID, rows, numbers)
	if err != nil {
		return nil, classifyError(err)
	}

	return p.ListSeats(ctx, showtimeID)
}

func (p *PostgresSeatRepository) ListSeats(ctx context.Context, showtimeID uuid.UUID) ([]domain.Seat, error) {
	query := `
		SELECT id, showtime_id, row_label, seat_number, is_booked, booking_id
		FROM seats
		WHERE showtime_id = $1
		ORDER BY length(row_label), row_label, seat_number
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, showtimeID)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			return nil, classifyError(err)
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, classifyError(err)
	}

	return seats, nil
}

func scanSeat(row pgx.Row) (domain.Seat, error) {
	var seat domain.Seat
	var bookingID uuid.NullUUID

	err := row.Scan(
		&seat.ID,
		&seat.ShowtimeID,
		&seat.Row,
		&seat.Number,
		&seat.Booked,
		&bookingID,
	)
	if err != nil {
		return domain.Seat{}, err
	}

	if bookingID.Valid {
		seat.BookingID = &bookingID.UUID
	}

	return seat, nil
}

func (p *PostgresSeatRepository) ClaimSeats(
	ctx context.Context,
	showtimeID uuid.UUID,
	seatIDs []uuid.UUID,
	bookingID uuid.UUID) error {

	if len(seatIDs) == 0 {
		return fmt.Errorf("%w: no seats to claim", domain.ErrInvalidSelection)
	}

	ids := uuidStrings(seatIDs)

	// Rows are locked in id order so that overlapping claims queue up instead
	// of deadlocking. A row booked by a transaction we waited on is re-checked
	// after the lock is granted and drops out of target.
	query := `
		WITH target AS (
			SELECT id
			FROM seats
			WHERE showtime_id = $1 AND id = ANY($2::uuid[]) AND NOT is_booked
			ORDER BY id
			FOR UPDATE
		)
		UPDATE seats s
		SET is_booked = TRUE, booking_id = $3
		FROM target
		WHERE s.id = target.id
	`

	err := inTx(ctx, p.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, showtimeID, ids, bookingID)
		if err != nil {
			return err
		}

		claimed := int(tag.RowsAffected())
		if claimed == len(seatIDs) {
			return nil
		}

		var existing int

		err = tx.QueryRow(
			ctx,
			`SELECT COUNT(*) FROM seats WHERE showtime_id = $1 AND id = ANY($2::uuid[])`,
			showtimeID,
			ids,
		).Scan(&existing)
		if err != nil {
			return err
		}

		if existing < len(seatIDs) {
			return fmt.Errorf("%w: %d of %d seats do not belong to showtime %s",
				domain.ErrRecordNotFound, len(seatIDs)-existing, len(seatIDs), showtimeID)
		}

		return fmt.Errorf("%w: %d of %d seats already booked",
			domain.ErrConflict, len(seatIDs)-claimed, len(seatIDs))
	})

	return classifyError(err)
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}

	return out
}
