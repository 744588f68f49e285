package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Maariakh-cs/medex/constants"
	"github.com/Maariakh-cs/medex/internal/common"
	"github.com/Maariakh-cs/medex/internal/extract"
	"github.com/Maariakh-cs/medex/internal/fields"
	"github.com/Maariakh-cs/medex/internal/nlp"
	"github.com/Maariakh-cs/medex/internal/ocr"
	"github.com/Maariakh-cs/medex/internal/pipeline"
)

// runextract runs the full pipeline over a local file and prints the
// envelope JSON. MIME type is taken from argv when given, otherwise
// inferred from the file extension.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 || len(os.Args) > 3 {
		logger.Error("usage", "cmd", "runextract <file> [mime-type]")
		os.Exit(2)
	}
	path := os.Args[1]
	mimeType := ""
	if len(os.Args) == 3 {
		mimeType = os.Args[2]
	} else {
		mimeType = constants.MapExtToMIME(filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read file", "path", path, "error", err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	tagger, err := nlp.NewTagger()
	if err != nil {
		logger.Error("initialize tagger", "error", err)
		os.Exit(1)
	}
	engine, err := fields.NewEngine(tagger, logger)
	if err != nil {
		logger.Error("initialize engine", "error", err)
		os.Exit(1)
	}
	ocrx := ocr.NewExtractor(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
		PageWorkers:   cfg.OCR.PageWorkers,
	}, logger)
	acquirer := extract.NewAcquirer(ocrx, logger)
	p := pipeline.NewProcessor(acquirer, engine, cfg.Extract, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	envelope, err := p.Process(ctx, data, mimeType)
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err)
	}

	out, merr := json.MarshalIndent(envelope, "", "  ")
	if merr != nil {
		logger.Error("encode envelope", "error", merr)
		os.Exit(1)
	}
	fmt.Println(string(out))
	if err != nil {
		os.Exit(1)
	}
}
