package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/adapters/handler"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/adapters/middleware"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/adapters/realtime"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/adapters/repository"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/config"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/services"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Connected to Redis successfully")

	statsRepo := repository.NewStatsRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Campaign updates reach dashboards through Redis pub/sub so every API
	// replica's SSE hub sees them, not just the one that took the donation.
	eventPublisher := realtime.NewRedisPublisher(redisClient, cfg.EventsChannel)
	hub := realtime.NewHub()
	go func() {
		if err := realtime.RunBridge(ctx, redisClient, cfg.EventsChannel, hub); err != nil && err != context.Canceled {
			log.Printf("realtime bridge stopped: %v", err)
		}
	}()

	statsService := services.NewStatsService(statsRepo)
	donationService := services.NewDonationService(donationRepo, eventPublisher)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	handler.SetIncludeErrorStack(cfg.IncludeErrorStack)

	statsHandler := handler.NewStatsHandler(statsService)
	donationHandler := handler.NewDonationHandler(donationService)
	authHandler := handler.NewAuthHandler(authService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	anyRole := []domain.Role{domain.RolePublic, domain.RoleClinicStaff, domain.RoleSuperAdmin}
	staffUp := []domain.Role{domain.RoleClinicStaff, domain.RoleSuperAdmin}

	mux := http.NewServeMux()

	// Health endpoints
	mux.HandleFunc("GET /api/health", healthHandler.Health)
	mux.HandleFunc("GET /api/health/ready", healthHandler.Ready)

	// Auth endpoints
	mux.HandleFunc("POST /api/auth/login", metrics.Instrument("/api/auth/login", authHandler.Login))
	mux.HandleFunc("POST /api/auth/register", metrics.Instrument("/api/auth/register", authHandler.Register))

	// Statistics endpoints. Auth is optional here: anonymous callers get the
	// public view and the staff-only reports deny from inside the handler.
	mux.HandleFunc("GET /api/total_adoptions",
		metrics.Instrument("/api/total_adoptions", authMiddleware.OptionalAuthenticate(statsHandler.TotalAdoptions)))
	mux.HandleFunc("GET /api/cats_status",
		metrics.Instrument("/api/cats_status", authMiddleware.OptionalAuthenticate(statsHandler.CatsStatus)))
	mux.HandleFunc("GET /api/incoming_cats",
		metrics.Instrument("/api/incoming_cats", authMiddleware.OptionalAuthenticate(statsHandler.IncomingCats)))
	mux.HandleFunc("GET /api/neutered_cats",
		metrics.Instrument("/api/neutered_cats", authMiddleware.OptionalAuthenticate(statsHandler.NeuteredCats)))
	mux.HandleFunc("GET /api/campaign",
		metrics.Instrument("/api/campaign", authMiddleware.OptionalAuthenticate(statsHandler.Campaign)))

	// Donation endpoints
	mux.HandleFunc("POST /api/donations",
		metrics.Instrument("/api/donations", authMiddleware.RequireRole(anyRole, donationHandler.Create)))
	mux.HandleFunc("GET /api/donations",
		metrics.Instrument("/api/donations", authMiddleware.RequireRole(staffUp, donationHandler.List)))
	mux.HandleFunc("GET /api/donations/campaigns",
		metrics.Instrument("/api/donations/campaigns", authMiddleware.RequireRole(anyRole, donationHandler.ListCampaigns)))
	mux.HandleFunc("GET /api/donations/{id}",
		metrics.Instrument("/api/donations/{id}", authMiddleware.RequireRole(staffUp, donationHandler.FindByID)))

	// Dashboard endpoints
	mux.HandleFunc("GET /api/metrics/dashboard",
		metrics.Instrument("/api/metrics/dashboard", authMiddleware.RequireRole(anyRole, statsHandler.Dashboard)))
	mux.HandleFunc("GET /api/metrics/adoption-history",
		metrics.Instrument("/api/metrics/adoption-history", authMiddleware.RequireRole(anyRole, statsHandler.AdoptionHistory)))

	// SSE stream. Not instrumented: the metrics wrapper hides http.Flusher
	// and the connection count belongs to the hub, not request counters.
	mux.Handle("GET /api/events", hub)

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	chain := middleware.CORSMiddleware(cfg.AllowedOrigins)(
		middleware.Recover(cfg.IncludeErrorStack, mux),
	)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, chain); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
