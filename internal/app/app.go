package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/booking"
	"github.com/metinatakli/showtime-booking/internal/cache"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/metinatakli/showtime-booking/internal/events"
	"github.com/metinatakli/showtime-booking/internal/repository"
	appvalidator "github.com/metinatakli/showtime-booking/internal/validator"
	"github.com/metinatakli/showtime-booking/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "showtime-booking-api"

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	validator      *validator.Validate
	sessionManager *scs.SessionManager
	coordinator    *booking.Coordinator
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	validator *validator.Validate,
	sessionManager *scs.SessionManager,
	coordinator *booking.Coordinator) *Application {

	return &Application{
		config:         cfg,
		logger:         logger,
		validator:      validator,
		sessionManager: sessionManager,
		coordinator:    coordinator,
	}
}

func Run(args []string) error {
	cfg, displayVersion, err := ParseConfig(args, os.Getenv)
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		return nil
	}

	app := &Application{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		app.logger = slog.New(NewMultiHandler(
			slog.NewTextHandler(os.Stdout, nil),
			otelslog.NewHandler(serviceName),
		))
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	var publisher domain.EventPublisher = events.NopPublisher{}

	if cfg.AMQP.URL != "" {
		rabbitPublisher, err := events.NewRabbitMQPublisher(app.logger, cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			return err
		}
		defer rabbitPublisher.Close()

		publisher = rabbitPublisher
	} else {
		app.logger.Info("AMQP URL not set, booking events will not be published")
	}

	app.validator = appvalidator.NewValidator()
	app.sessionManager = NewSessionManager(redisClient)
	app.coordinator = NewCoordinator(cfg, app.logger, db, redisClient, publisher)

	return app.run()
}

// NewCoordinator wires the Postgres repositories, the seat map cache and the
// event publisher into a booking coordinator.
func NewCoordinator(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	publisher domain.EventPublisher) *booking.Coordinator {

	return booking.NewCoordinator(
		logger,
		repository.NewPostgresTransactor(db, cfg.DB.LockTimeout),
		repository.NewPostgresShowtimeRepository(db),
		repository.NewPostgresSeatRepository(db),
		repository.NewPostgresBookingRepository(db),
		booking.WithSeatMapCache(cache.NewRedisSeatMapCache(redisClient, cfg.Booking.SeatCacheTTL)),
		booking.WithEventPublisher(publisher),
		booking.WithMaxSeatsPerBooking(cfg.Booking.MaxSeatsPerBooking),
	)
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(app.requestLogger)
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	wrapper := api.ServerInterfaceWrapper{
		Handler:          app,
		ErrorHandlerFunc: app.invalidParamResponse,
	}

	r.Get("/healthcheck", wrapper.GetHealth)
	r.Get("/showtimes/{showtimeId}/seats", wrapper.GetSeatMapByShowtime)

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.Post("/showtimes/{showtimeId}/bookings", wrapper.CreateBooking)
		r.Get("/users/me/bookings", wrapper.GetBookingsOfUser)
	})

	return r
}
