package integration_test

import "github.com/google/uuid"

const (
	TestUserId      = "user-1"
	TestOtherUserId = "user-2"

	TestTheaterName = "Test Theater 1"
	TestShowDate    = "2026-11-20"
	TestShowTime    = "19:30:00"
	TestTotalSeats  = 12

	TestSmallTotalSeats = 3
	TestLazyTotalSeats  = 10

	showtimesFixture = "testdata/showtimes_up.sql"
)

var (
	TestMovieId         = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	TestShowtimeId      = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	TestSmallShowtimeId = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	// has no seats in the seats fixture
	TestLazyShowtimeId = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

const seatsFixture = "testdata/seats_up.sql"

// Seat ids of the seats fixture.
var (
	SeatA1  = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	SeatA2  = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	SeatA3  = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	SeatA4  = uuid.MustParse("00000000-0000-0000-0000-000000000004")
	SeatA5  = uuid.MustParse("00000000-0000-0000-0000-000000000005")
	SeatA6  = uuid.MustParse("00000000-0000-0000-0000-000000000006")
	SeatA7  = uuid.MustParse("00000000-0000-0000-0000-000000000007")
	SeatA10 = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	SeatB1  = uuid.MustParse("00000000-0000-0000-0000-000000000011")
	SeatB2  = uuid.MustParse("00000000-0000-0000-0000-000000000012")

	SmallSeatA1 = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	SmallSeatA2 = uuid.MustParse("00000000-0000-0000-0000-000000000102")
	SmallSeatA3 = uuid.MustParse("00000000-0000-0000-0000-000000000103")
)
