package app

import (
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/metinatakli/showtime-booking/internal/booking"
	"github.com/metinatakli/showtime-booking/internal/cache"
	"github.com/metinatakli/showtime-booking/internal/events"
)

type Config struct {
	Port             int
	Env              string
	DB               DBConfig
	Redis            RedisConfig
	Auth             AuthConfig
	AMQP             AMQPConfig
	Booking          BookingConfig
	OtelCollectorUrl string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
	// LockTimeout bounds how long a booking transaction waits on row locks.
	LockTimeout time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
}

type AMQPConfig struct {
	URL   string
	Queue string
}

type BookingConfig struct {
	MaxSeatsPerBooking int
	SeatCacheTTL       time.Duration
}

// ParseConfig reads flags from args. Every flag defaults to its environment
// variable, so a deployment can be configured with either.
func ParseConfig(args []string, getenv func(string) string) (Config, bool, error) {
	var cfg Config

	env := envLookup{getenv: getenv}
	fs := flag.NewFlagSet("api", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "port", env.getInt("PORT", 3000), "server port")
	fs.StringVar(&cfg.Env, "env", env.getString("ENV", "dev"), "Environment (dev|staging|prod)")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", env.getString("DB_DSN", ""), "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", env.getInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", env.getDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")
	fs.DurationVar(&cfg.DB.LockTimeout, "db-lock-timeout", env.getDuration("DB_LOCK_TIMEOUT", 5*time.Second), "PostgreSQL lock timeout for booking transactions")

	fs.StringVar(&cfg.Redis.URL, "redis-url", env.getString("REDIS_URL", ""), "Redis URL")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", env.getInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", env.getInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", env.getDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	fs.StringVar(&cfg.Auth.JWTSecret, "jwt-secret", env.getString("JWT_SECRET", ""), "HMAC secret of bearer tokens issued by the auth service")
	fs.StringVar(&cfg.Auth.JWTIssuer, "jwt-issuer", env.getString("JWT_ISSUER", ""), "Expected issuer of bearer tokens")

	fs.StringVar(&cfg.AMQP.URL, "amqp-url", env.getString("AMQP_URL", ""), "RabbitMQ URL")
	fs.StringVar(&cfg.AMQP.Queue, "amqp-queue", env.getString("AMQP_QUEUE", events.DefaultBookingConfirmedQueue), "Queue for booking confirmed events")

	fs.IntVar(&cfg.Booking.MaxSeatsPerBooking, "max-seats-per-booking", env.getInt("MAX_SEATS_PER_BOOKING", booking.DefaultMaxSeatsPerBooking), "Maximum seats in a single booking, 0 for no limit")
	fs.DurationVar(&cfg.Booking.SeatCacheTTL, "seat-cache-ttl", env.getDuration("SEAT_CACHE_TTL", cache.DefaultSeatMapTTL), "Seat map cache TTL")

	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", env.getString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	displayVersion := fs.Bool("version", false, "Display version and exit")

	err := fs.Parse(args)
	if err != nil {
		return Config{}, false, err
	}

	if env.err != nil {
		return Config{}, false, env.err
	}

	return cfg, *displayVersion, nil
}

type envLookup struct {
	getenv func(string) string
	err    error
}

func (e *envLookup) getString(key, fallback string) string {
	if v := e.getenv(key); v != "" {
		return v
	}

	return fallback
}

func (e *envLookup) getInt(key string, fallback int) int {
	v := e.getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
		return fallback
	}

	return n
}

func (e *envLookup) getDuration(key string, fallback time.Duration) time.Duration {
	v := e.getenv(key)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
		return fallback
	}

	return d
}
