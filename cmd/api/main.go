package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/smart-hire/internal/audit"
	"github.com/BruksfildServices01/smart-hire/internal/auth"
	"github.com/BruksfildServices01/smart-hire/internal/config"
	dbpkg "github.com/BruksfildServices01/smart-hire/internal/db"
	"github.com/BruksfildServices01/smart-hire/internal/domain/booking"
	"github.com/BruksfildServices01/smart-hire/internal/handlers"
	"github.com/BruksfildServices01/smart-hire/internal/infra/lock"
	"github.com/BruksfildServices01/smart-hire/internal/infra/memstore"
	"github.com/BruksfildServices01/smart-hire/internal/infra/mongostore"
	infraRepo "github.com/BruksfildServices01/smart-hire/internal/infra/repository"
	"github.com/BruksfildServices01/smart-hire/internal/logger"
	"github.com/BruksfildServices01/smart-hire/internal/routes"
	"github.com/BruksfildServices01/smart-hire/internal/timezone"
	"github.com/BruksfildServices01/smart-hire/internal/usecase/account"
	"github.com/BruksfildServices01/smart-hire/internal/validators"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run never exits the process; main does, after the deferred closes have run.
func run() error {

	cfg := config.Load()
	log := logger.New(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", slog.Any("error", err))
		return err
	}
	if cfg.UsesDefaultSecret() {
		log.Warn("JWT_SECRET is not set, tokens are signed with the built-in default secret")
	}
	timezone.SetDefault(cfg.DefaultTimezone)

	if err := validators.Register(); err != nil {
		log.Error("register validators", slog.Any("error", err))
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// STORAGE
	// ======================================================
	stores, health, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		log.Error("open store", slog.String("driver", cfg.StoreDriver), slog.Any("error", err))
		return err
	}
	defer closeStores()

	// ======================================================
	// SLOT LOCK
	// ======================================================
	var locker booking.Locker = lock.NewLocalLocker(cfg.SlotLockTTL)

	rdb, err := dbpkg.NewRedis(ctx, cfg)
	if err != nil {
		log.Error("connect redis", slog.Any("error", err))
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.SlotLockTTL, cfg.SlotLockTTL)
		health["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// ======================================================
	// AUDIT
	// ======================================================
	dispatcher := audit.NewDispatcher(audit.New(stores.Audit), log, cfg.AuditQueueSize)

	var emailChecker account.EmailChecker
	if cfg.ValidateEmailDNS {
		emailChecker = validators.IsEmailDomainValid
	}

	// ======================================================
	// HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:       cfg,
		Log:          log,
		Stores:       stores,
		Locker:       locker,
		Audit:        dispatcher,
		Issuer:       auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
		EmailChecker: emailChecker,
		Health:       health,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server running", slog.String("addr", cfg.Addr()), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", slog.Any("error", err))
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", slog.Any("error", err))
	}
	// pending audit events are flushed before the stores close
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error("audit drain", slog.Any("error", err))
	}

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

func openStores(ctx context.Context, cfg *config.Config) (routes.Stores, map[string]handlers.Check, func(), error) {
	switch cfg.StoreDriver {

	case config.DriverMongo:
		client, database, err := dbpkg.NewMongo(ctx, cfg)
		if err != nil {
			return routes.Stores{}, nil, nil, err
		}
		store := mongostore.New(client, database)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return routes.Stores{}, nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return routes.StoresFrom(store), map[string]handlers.Check{"mongo": store.Ping}, closeFn, nil

	case config.DriverMemory:
		store := memstore.New()
		return routes.StoresFrom(store), map[string]handlers.Check{"memory": store.Ping}, func() {}, nil

	default:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return routes.Stores{}, nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return routes.Stores{}, nil, nil, err
		}
		stores := routes.Stores{
			Availability: infraRepo.NewAvailabilityGormRepository(db),
			Bookings:     infraRepo.NewBookingGormRepository(db),
			Users:        infraRepo.NewUserGormRepository(db),
			Catalog:      infraRepo.NewCatalogGormRepository(db),
			Audit:        infraRepo.NewAuditGormRepository(db),
		}
		closeFn := func() { _ = sqlDB.Close() }
		return stores, map[string]handlers.Check{"postgres": sqlDB.PingContext}, closeFn, nil
	}
}
