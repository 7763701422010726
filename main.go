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

	"github.com/Aashish23092/tds-renamer/client"
	"github.com/Aashish23092/tds-renamer/config"
	"github.com/Aashish23092/tds-renamer/dto"
	"github.com/Aashish23092/tds-renamer/handler"
	"github.com/Aashish23092/tds-renamer/logging"
	"github.com/Aashish23092/tds-renamer/metrics"
	"github.com/Aashish23092/tds-renamer/service"
	"github.com/Aashish23092/tds-renamer/utils"
)

const serviceName = "tds-renamer"

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)
	slog.SetDefault(logger)

	sink, err := newOutputSink(cfg.Output)
	if err != nil {
		logger.Error("failed to initialize output sink", "sink", cfg.Output.Sink, "error", err)
		os.Exit(1)
	}

	renameMetrics := metrics.NewRenameMetrics(serviceName)

	// Initialize service layer
	engine := service.NewRenameEngine(service.NewPDFProcessor(), service.EngineOptions{
		Policy:       utils.MatchPolicy(cfg.MatchPolicy),
		ValidatePDF:  cfg.ValidatePDF,
		TextFallback: cfg.TextFallback,
	}, logger)
	renameService := service.NewRenameService(service.NewMappingLoader(logger), engine, sink, renameMetrics, logger)

	// Initialize handler layer
	renameHandler := handler.NewRenameHandler(renameService, cfg.ArchiveName, dto.OutputMode(cfg.DefaultMode), logger)

	if logging.ParseLevel(cfg.LogLevel) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(renameHandler, renameMetrics.Handler(), cfg.MaxMultipartMemory, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server",
			"port", cfg.ServerPort,
			"match_policy", cfg.MatchPolicy,
			"default_mode", cfg.DefaultMode,
			"output_sink", cfg.Output.Sink,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func newOutputSink(cfg config.OutputConfig) (service.OutputSink, error) {
	switch cfg.Sink {
	case "s3":
		return client.NewS3Client(cfg.S3)
	default:
		return client.NewLocalFSClient(cfg.Dir), nil
	}
}
