package main

import (
	"context"
	"net/http"

	"github.com/autopartsfinder/backend/internal/config"
	appmiddleware "github.com/autopartsfinder/backend/internal/middleware"
	"github.com/autopartsfinder/backend/internal/modules/auth"
	"github.com/autopartsfinder/backend/internal/modules/cart"
	"github.com/autopartsfinder/backend/internal/modules/catalog"
	"github.com/autopartsfinder/backend/internal/modules/checkout"
	"github.com/autopartsfinder/backend/internal/modules/ledger"
	"github.com/autopartsfinder/backend/internal/modules/user"
	"github.com/autopartsfinder/backend/internal/monitoring"
	"github.com/autopartsfinder/backend/internal/pkg/logger"
	"github.com/autopartsfinder/backend/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log := logger.New()

	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "error", err.Error())
	}

	store, err := storage.OpenSQLStore(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal("failed to open store", "driver", cfg.DBDriver, "error", err.Error())
	}
	defer store.Close()
	log.Info("store ready", "driver", cfg.DBDriver)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(monitoring.Middleware)

	authMW := appmiddleware.NewAuth(cfg.JWTSecret)

	// ── Phase 1: Identity ───────────────────────────────────
	userRepo := user.NewKVRepository(store)
	userService := user.NewService(userRepo)
	user.NewHandler(userService, authMW).RegisterRoutes(router)

	if err := userService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal("failed to seed admin account", "error", err.Error())
	}

	authService := auth.NewService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	auth.NewHandler(authService, userService).RegisterRoutes(router)

	// ── Phase 2: Catalog & Cart ─────────────────────────────
	catalogRepo := catalog.NewKVRepository(store)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService, authMW, log).RegisterRoutes(router)

	cartRepo := cart.NewKVRepository(store)
	cartService := cart.NewService(cartRepo)
	cart.NewHandler(cartService, catalogService, authMW).RegisterRoutes(router)

	// ── Phase 3: Ledger & Checkout ──────────────────────────
	ledgerRepo := ledger.NewKVRepository(store)
	ledgerService := ledger.NewService(ledgerRepo)
	ledger.NewHandler(ledgerService, authMW).RegisterRoutes(router)

	checkoutService := checkout.NewService(catalogService, cartService, ledgerService, log)
	checkout.NewHandler(checkoutService, authMW).RegisterRoutes(router)

	// ── Operational endpoints ───────────────────────────────
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// ── Start Server ────────────────────────────────────────
	log.Info("AutoParts API server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal("server stopped", "error", err.Error())
	}
}
