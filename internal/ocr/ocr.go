package ocr

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Maariakh-cs/medex/internal/common"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for PDF pages, default 300
	MaxPages      int    // 0 = no limit
	PageWorkers   int    // concurrent page OCR workers, default 4
}

// ExtractionResult is the per-file OCR summary.
type ExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE
	Method     string // "image-ocr" | "pdf-ocr"
	Language   string
	Warnings   []string
	Confidence float32
}

// Extractor recognizes text in images and scanned PDFs using external
// tesseract/pdftoppm binaries. It is safe for concurrent use.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.PageWorkers <= 0 {
		cfg.PageWorkers = 4
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// writeTemp persists incoming bytes so the external binaries can read them.
// Returns the file path and a cleanup func.
func writeTemp(data []byte, pattern string) (string, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return path, cleanup, nil
}

func acquisitionError(msg string, cause error) error {
	return common.NewAppError("ACQUISITION_FAILED", msg, fmt.Errorf("%w: %w", common.ErrAcquisitionFailed, cause))
}
