package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/decora-erp/decora-erp/internal/app"
	"github.com/decora-erp/decora-erp/internal/catalog"
	"github.com/decora-erp/decora-erp/internal/masterdata/contacts"
	"github.com/decora-erp/decora-erp/internal/masterdata/stores"
	"github.com/decora-erp/decora-erp/internal/observability"
	"github.com/decora-erp/decora-erp/internal/platform/cache"
	"github.com/decora-erp/decora-erp/internal/platform/db"
	"github.com/decora-erp/decora-erp/internal/pricing"
	"github.com/decora-erp/decora-erp/internal/quotes"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	var resolutionCache *pricing.ResolutionCache
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, price lookups go straight to postgres", slog.Any("error", err))
	} else {
		resolutionCache = pricing.NewResolutionCache(redisClient, cfg.PriceCacheTTL)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()

	storeRepo := stores.NewRepository(pool)
	storeService := stores.NewService(storeRepo)
	storeHandler := stores.NewHandler(logger, storeService)

	contactRepo := contacts.NewRepository(pool)
	contactService := contacts.NewService(contactRepo)
	contactHandler := contacts.NewHandler(logger, contactService)

	catalogRepo := catalog.NewRepository(pool)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	pricingRepo := pricing.NewRepository(pool)
	pricingService := pricing.NewService(pricingRepo, resolutionCache, logger)
	resolver := pricing.NewResolver(pricingRepo, catalogRepo, resolutionCache, metrics, logger)
	pricingHandler := pricing.NewHandler(logger, pricingService, resolver)

	quoteRepo := quotes.NewRepository(pool)
	quoteService := quotes.NewService(quoteRepo, resolver, catalogRepo, storeRepo, contactRepo, logger)
	quoteHandler := quotes.NewHandler(logger, quoteService)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Metrics:         metrics,
		StoresHandler:   storeHandler,
		ContactsHandler: contactHandler,
		CatalogHandler:  catalogHandler,
		PricingHandler:  pricingHandler,
		QuotesHandler:   quoteHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
