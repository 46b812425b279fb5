package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"jewel-backend/internal/auth"
	"jewel-backend/internal/backup"
	"jewel-backend/internal/cache"
	"jewel-backend/internal/config"
	"jewel-backend/internal/database"
	"jewel-backend/internal/db"
	"jewel-backend/internal/handlers"
	"jewel-backend/internal/health"
	jhttp "jewel-backend/internal/http"
	"jewel-backend/internal/middleware"
	"jewel-backend/internal/monitoring"
	"jewel-backend/internal/repositories"
	"jewel-backend/internal/services"
	"jewel-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; without it login falls back to bcrypt every time
	// and list reads always hit Postgres.
	if err := cache.Init(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password); err != nil {
		log.Printf("[Redis] Cache unavailable: %v", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Embedded migrations bootstrap the schema on a fresh database.
	migrator := database.NewMigrator(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)

	// Monitoring side server: /metrics, /stats, /ws.
	go monitoring.NewServer(pool, cfg.Monitoring.Port).Start()

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	counterRepo := repositories.NewCounterRepository(pool)
	containerRepo := repositories.NewContainerRepository(pool)
	pieceRepo := repositories.NewPieceRepository(pool)
	dashboardRepo := repositories.NewDashboardRepository(pool)

	// Services
	totpService := services.NewTOTPService(userRepo)
	userService := services.NewUserService(userRepo, jwtManager, totpService)
	counterService := services.NewCounterService(counterRepo, containerRepo)
	containerService := services.NewContainerService(containerRepo, counterRepo, pieceRepo)
	pieceService := services.NewPieceService(pieceRepo, containerRepo)
	dashboardService := services.NewDashboardService(dashboardRepo)
	reportService := services.NewReportService(counterRepo, containerRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	counterHandler := handlers.NewCounterHandler(counterService)
	containerHandler := handlers.NewContainerHandler(containerService)
	pieceHandler := handlers.NewPieceHandler(pieceService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	reportHandler := handlers.NewReportHandler(reportService)
	totpHandler := handlers.NewTOTPHandler(totpService, userService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := jhttp.NewRouter(
		authHandler,
		counterHandler,
		containerHandler,
		pieceHandler,
		dashboardHandler,
		reportHandler,
		totpHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.NewCORS(cfg)(
			middleware.MetricsMiddleware(router)))

	// Cloud snapshots when credentials are configured.
	if cfg.Backup.Enabled {
		uploader, err := backup.NewUploader(cfg, counterRepo, containerRepo, pieceRepo)
		if err != nil {
			log.Printf("[Backup] disabled: %v", err)
		} else {
			go uploader.Run(context.Background())
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("jewel-backend listening on %s", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
