package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	appdb "github.com/coworkly/spaces-api/internal/database"
	"github.com/coworkly/spaces-api/internal/http/handlers"
	appmw "github.com/coworkly/spaces-api/internal/http/middleware"
	"github.com/coworkly/spaces-api/internal/metrics"
	"github.com/coworkly/spaces-api/internal/repository"
	"github.com/coworkly/spaces-api/internal/service"
	"github.com/coworkly/spaces-api/pkg/auth"
	"github.com/coworkly/spaces-api/pkg/config"
	"github.com/coworkly/spaces-api/pkg/database"
	"github.com/coworkly/spaces-api/pkg/events"
	"github.com/coworkly/spaces-api/pkg/logger"
	mw "github.com/coworkly/spaces-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if err := appdb.RunMigrations(cfg.Database.URL); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Failed to parse Redis URL", "error", err)
		os.Exit(1)
	}
	if cfg.Redis.Password != "" {
		redisOpts.Password = cfg.Redis.Password
	}
	redisOpts.DB = cfg.Redis.DB
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	if err := subscribeReservationCreated(eventBus); err != nil {
		logger.Error("Failed to subscribe to reservation events", "error", err)
		os.Exit(1)
	}

	credentials := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	roomRepo := repository.NewRoomRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	roomService := service.NewRoomService(roomRepo)
	reservationService := service.NewReservationService(roomRepo, reservationRepo, eventBus)
	userService := service.NewUserService(userRepo, service.Argon2Hasher{}, credentials)

	h := handlers.New(roomService, reservationService, userService)
	gate := appmw.NewGate(credentials, userRepo)
	loginLimiter := appmw.NewRateLimiter(redisClient, 10, time.Minute)
	collector := metrics.NewCollector()

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("spaces-api"))
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(collector.Instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(gate.Authenticate)

	r.Handle("/metrics", collector.Handler())

	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", h.ListRooms)
		r.Group(func(r chi.Router) {
			r.Use(appmw.RequireAuth)
			r.Post("/", h.CreateRoom)
			r.Get("/{id}", h.GetRoom)
			r.Delete("/{id}", h.DeleteRoom)
		})
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Get("/", h.ListReservations)
		r.Group(func(r chi.Router) {
			r.Use(appmw.RequireAuth)
			r.Post("/", h.CreateReservation)
			r.Delete("/{id}", h.DeleteReservation)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(loginLimiter.Middleware)
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down spaces API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting spaces API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

// subscribeReservationCreated logs every announced reservation. The consumer
// is intentionally trivial: the announcement is fire-and-forget and carries
// no delivery guarantee.
func subscribeReservationCreated(bus events.EventBus) error {
	return bus.QueueSubscribe(events.ReservationCreated, "spaces-api", func(msg *events.Message) {
		var event events.ReservationCreatedEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logger.Error("Failed to decode reservation event", "error", err)
			return
		}
		logger.Info("Reservation announced",
			"reservation_id", event.ReservationID,
			"room_code", event.RoomCode,
			"scheduled_time", event.ScheduledTime,
		)
	})
}
