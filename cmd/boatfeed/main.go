package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"boatfeed/internal/adapter/cache"
	"boatfeed/internal/adapter/feed"
	"boatfeed/internal/adapter/handler"
	"boatfeed/internal/adapter/rates"
	"boatfeed/internal/application/service"
	"boatfeed/internal/domain/port"
	"boatfeed/internal/infrastructure/config"
	"boatfeed/internal/infrastructure/logger"
	"boatfeed/internal/infrastructure/server"
)

var (
	portFlag   = flag.Int("port", 0, "Port number")
	configFlag = flag.String("config", "configs/config.yaml", "Path to config file")
	helpFlag   = flag.Bool("help", false, "Show help")
)

func main() {
	flag.Parse()

	if *helpFlag {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *portFlag != 0 {
		cfg.Server.Port = *portFlag
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting boatfeed", "version", "1.0.0")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var datasetCache port.DatasetCachePort
	if cfg.Cache.Backend == "redis" {
		redisCache, err := cache.NewRedisAdapter(
			cfg.RedisAddr(),
			cfg.Cache.Redis.Password,
			cfg.Cache.Redis.DB,
			cfg.Cache.TTL,
		)
		if err != nil {
			log.Error("failed to initialize redis", "error", err)
			os.Exit(1)
		}
		datasetCache = redisCache
	} else {
		datasetCache = cache.NewMemoryAdapter(cfg.Cache.TTL)
	}
	defer datasetCache.Close()

	boatsCom := feed.NewBoatsCom(
		cfg.Feeds.BoatsComKey,
		cfg.Dataset.Language,
		cfg.Feeds.FetchTimeout,
		cfg.Feeds.RequestsPerSecond,
		cfg.Feeds.Burst,
		log,
	)
	boatWizard := feed.NewBoatWizard(
		cfg.Feeds.BoatWizardEventID,
		cfg.Dataset.Language,
		cfg.Feeds.FetchTimeout,
		cfg.Feeds.RequestsPerSecond,
		cfg.Feeds.Burst,
		log,
	)
	rateProvider := rates.New(cfg.Rates.FXRatesURL, cfg.Rates.CurrConvKey, cfg.Feeds.FetchTimeout, log)

	datasetService := service.NewDatasetService(
		boatsCom,
		boatWizard,
		rateProvider,
		datasetCache,
		cfg.Feeds.BoatsComKey,
		cfg.Feeds.BoatWizardEventID,
		log,
	)
	queryService := service.NewQueryService(cfg.Dataset.PerPage)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refreshService := service.NewRefreshService(datasetService, log)
	refreshService.Start(ctx, cfg.Dataset.RefreshInterval)
	defer refreshService.Stop()

	boatsHandler := handler.NewBoatsHandler(datasetService, queryService, log)
	brandsHandler := handler.NewBrandsHandler(datasetService, queryService, log)
	refreshHandler := handler.NewRefreshHandler(datasetService, log)
	boatsComRaw := handler.NewRawHandler(boatsCom, boatsCom.Name(), "application/json; charset=utf-8", log)
	boatWizardRaw := handler.NewRawHandler(boatWizard, boatWizard.Name(), "application/xml; charset=utf-8", log)
	demoHandler := handler.NewDemoHandler()
	webhookHandler := handler.NewWebhookHandler(log)
	healthHandler := handler.NewHealthHandler(datasetCache, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/boats", boatsHandler.Get)
	mux.HandleFunc("/boats/refresh", refreshHandler.Post)
	mux.HandleFunc("/brands", brandsHandler.Get)
	mux.HandleFunc("/boatscom/raw", boatsComRaw.Get)
	mux.HandleFunc("/boatwizard/raw", boatWizardRaw.Get)
	mux.HandleFunc("/demo/hello", demoHandler.Hello)
	mux.HandleFunc("/demo/availability", demoHandler.Availability)
	mux.HandleFunc("/webhook/form", webhookHandler.Post)
	mux.HandleFunc("/health", healthHandler.Check)

	root := handler.Recover(log, handler.CORS(mux))

	srv := server.New(cfg.Server.Port, root, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, log)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down gracefully")

	cancel()
	refreshService.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}

	log.Info("shutdown complete")
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  boatfeed [--port <N>] [--config <path>]")
	fmt.Println("  boatfeed --help")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --port N        Port number")
	fmt.Println("  --config PATH   Path to config file (default configs/config.yaml)")
}
