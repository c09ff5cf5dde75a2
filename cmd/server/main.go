package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"emprof/internal/db"
	"emprof/internal/domain/audit"
	"emprof/internal/domain/auth"
	"emprof/internal/domain/catalog"
	"emprof/internal/domain/docs"
	"emprof/internal/domain/employee"
	"emprof/internal/domain/profile"
	"emprof/internal/domain/records"
	"emprof/internal/domain/salary"
	"emprof/internal/platform/config"
	cryptoutil "emprof/internal/platform/crypto"
	"emprof/internal/platform/metrics"
	"emprof/internal/platform/storage"
	"emprof/internal/transport/http/api"
	audithandler "emprof/internal/transport/http/handlers/audit"
	documentshandler "emprof/internal/transport/http/handlers/documents"
	profilehandler "emprof/internal/transport/http/handlers/profile"
	recordshandler "emprof/internal/transport/http/handlers/records"
	salaryhandler "emprof/internal/transport/http/handlers/salary"
	"emprof/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
		if err := db.Seed(ctx, pool); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	cryptoSvc, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		log.Fatalf("data encryption key invalid: %v", err)
	}

	var uploader storage.Uploader = storage.Disabled{}
	if cfg.CloudinaryURL != "" {
		cloud, err := storage.NewCloudinary(cfg.CloudinaryURL, cfg.UploadTimeout)
		if err != nil {
			log.Fatalf("cloudinary init failed: %v", err)
		}
		uploader = cloud
	} else {
		log.Println("CLOUDINARY_URL not set, document uploads disabled")
	}

	if err := os.MkdirAll(cfg.LetterDir, 0o755); err != nil {
		log.Fatalf("letter dir: %v", err)
	}

	authStore := auth.NewStore(pool)
	employeeStore := employee.NewStore(pool, cryptoSvc)
	recordStore := records.NewStore(pool)
	recordService := records.NewService(recordStore, uploader)
	salaryStore := salary.NewStore(pool)
	catalogService := catalog.NewService(recordStore, salaryStore, employeeStore)
	resolver := docs.NewResolver(catalogService)
	auditService := audit.New(pool)
	snapshots := profile.NewCache(profile.NewCoordinator(nil))
	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
	})

	router.Route("/api/v1", func(r chi.Router) {
		profilehandler.NewHandler(employeeStore, uploader, authStore, auditService, snapshots).RegisterRoutes(r)
		recordshandler.NewHandler(recordService, authStore, auditService).RegisterRoutes(r)
		documentshandler.NewHandler(resolver, catalogService, uploader, authStore).RegisterRoutes(r)
		salaryhandler.NewHandler(salaryStore, employeeStore, uploader, authStore, auditService, cfg.LetterDir).RegisterRoutes(r)
		audithandler.NewHandler(auditService, authStore).RegisterRoutes(r)
	})

	log.Printf("employee profile server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
