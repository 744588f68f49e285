package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Maariakh-cs/medex/internal/common"
	"github.com/Maariakh-cs/medex/internal/extract"
	"github.com/Maariakh-cs/medex/internal/fields"
	"github.com/Maariakh-cs/medex/internal/nlp"
	"github.com/Maariakh-cs/medex/internal/ocr"
	"github.com/Maariakh-cs/medex/internal/pipeline"
	"github.com/Maariakh-cs/medex/internal/server"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(slogger)

	// Env
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("loading .env: %v", err)
	}
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Engine resources are built once and shared read-only across
	// requests. A failure here is fatal: the service must not accept
	// requests without a working extraction engine.
	tagger, err := nlp.NewTagger()
	if err != nil {
		log.Fatalf("initializing entity tagger: %v", err)
	}
	engine, err := fields.NewEngine(tagger, slogger)
	if err != nil {
		log.Fatalf("initializing extraction engine: %v", err)
	}

	ocrx := ocr.NewExtractor(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
		PageWorkers:   cfg.OCR.PageWorkers,
	}, slogger)
	acquirer := extract.NewAcquirer(ocrx, slogger)
	processor := pipeline.NewProcessor(acquirer, engine, cfg.Extract, slogger)

	svc := server.NewExtractService(processor, cfg.Server.MaxUploadBytes, logger)
	router := server.NewRouter(cfg.Server, svc, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("http serving on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("forced shutdown: %v", err)
	}
	log.Info("stopped.")
}
