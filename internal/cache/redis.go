// Package cache keeps read-through copies of seat maps in Redis. Entries are
// only used for display; seat claims are always decided by the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	seatMapKeyPrefix        = "seat_map:"
	seatMapVersionKeyPrefix = "seat_map_version:"
	DefaultSeatMapTTL       = 30 * time.Second
)

// KEYS[1] = seat map, KEYS[2] = version
// ARGV[1] = version observed before the read, ARGV[2] = seat map, ARGV[3] = ttl in ms
var storeIfUnchangedScript = redis.NewScript(`
	local current = redis.call("GET", KEYS[2]) or "0"
	if current ~= ARGV[1] then
		return 0
	end
	redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
	return 1
`)

// KEYS[1] = seat map, KEYS[2] = version
var invalidateScript = redis.NewScript(`
	redis.call("INCR", KEYS[2])
	redis.call("DEL", KEYS[1])
	return 1
`)

type RedisSeatMapCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisSeatMapCache(client redis.UniversalClient, ttl time.Duration) *RedisSeatMapCache {
	if ttl <= 0 {
		ttl = DefaultSeatMapTTL
	}

	return &RedisSeatMapCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisSeatMapCache) Get(ctx context.Context, showtimeID uuid.UUID) (*domain.ShowtimeSeats, int64, bool, error) {
	values, err := c.client.MGet(ctx, seatMapKey(showtimeID), seatMapVersionKey(showtimeID)).Result()
	if err != nil {
		return nil, 0, false, err
	}

	version, err := parseVersion(values[1])
	if err != nil {
		return nil, 0, false, err
	}

	data, ok := values[0].(string)
	if !ok {
		return nil, version, false, nil
	}

	var seats domain.ShowtimeSeats

	err = json.Unmarshal([]byte(data), &seats)
	if err != nil {
		return nil, 0, false, fmt.Errorf("decode cached seat map: %w", err)
	}

	return &seats, version, true, nil
}

func (c *RedisSeatMapCache) Set(ctx context.Context, seats *domain.ShowtimeSeats, version int64) (bool, error) {
	data, err := json.Marshal(seats)
	if err != nil {
		return false, err
	}

	showtimeID := seats.Showtime.ID

	stored, err := storeIfUnchangedScript.Run(
		ctx,
		c.client,
		[]string{seatMapKey(showtimeID), seatMapVersionKey(showtimeID)},
		strconv.FormatInt(version, 10),
		data,
		c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}

	return stored == 1, nil
}

func (c *RedisSeatMapCache) Invalidate(ctx context.Context, showtimeID uuid.UUID) error {
	return invalidateScript.Run(
		ctx,
		c.client,
		[]string{seatMapKey(showtimeID), seatMapVersionKey(showtimeID)},
	).Err()
}

func parseVersion(value any) (int64, error) {
	if value == nil {
		return 0, nil
	}

	s, ok := value.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected seat map version type %T", value)
	}

	version, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse seat map version: %w", err)
	}

	return version, nil
}

// Both keys of a showtime share a hash tag so scripts touching them work on
// a cluster.
func seatMapKey(showtimeID uuid.UUID) string {
	return seatMapKeyPrefix + "{" + showtimeID.String() + "}"
}

func seatMapVersionKey(showtimeID uuid.UUID) string {
	return seatMapVersionKeyPrefix + "{" + showtimeID.String() + "}"
}
