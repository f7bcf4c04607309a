package integration_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking/internal/app"
	"github.com/metinatakli/showtime-booking/internal/booking"
	"github.com/metinatakli/showtime-booking/internal/domain"
	appvalidator "github.com/metinatakli/showtime-booking/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App            *app.Application
	Config         app.Config
	Logger         *slog.Logger
	DB             *pgxpool.Pool
	Redis          *redis.Client
	SessionManager *scs.SessionManager
	Coordinator    *booking.Coordinator
	Publisher      *recordingPublisher
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := appvalidator.NewValidator()
	publisher := &recordingPublisher{}

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)
	coordinator := app.NewCoordinator(cfg, logger, db, redisClient, publisher)

	application := app.NewApp(
		cfg,
		logger,
		validator,
		sessionManager,
		coordinator,
	)

	return &TestApp{
		App:            application,
		Config:         cfg,
		Logger:         logger,
		DB:             db,
		Redis:          redisClient,
		SessionManager: sessionManager,
		Coordinator:    coordinator,
		Publisher:      publisher,
	}, nil
}

func (a *TestApp) Close() {
	a.Redis.Close()
	a.DB.Close()
}

// recordingPublisher keeps published events in memory so scenarios can
// assert on them without a broker.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.BookingConfirmedEvent
}

func (p *recordingPublisher) PublishBookingConfirmed(_ context.Context, event domain.BookingConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Events() []domain.BookingConfirmedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]domain.BookingConfirmedEvent(nil), p.events...)
}

func (p *recordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = nil
}

const testLockTimeout = 5 * time.Second
