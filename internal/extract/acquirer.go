package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Maariakh-cs/medex/constants"
	"github.com/Maariakh-cs/medex/internal/common"
	"github.com/Maariakh-cs/medex/internal/docx"
	"github.com/Maariakh-cs/medex/internal/ocr"
)

// OCREngine is the raster capability the acquirer dispatches images and
// scanned PDFs to.
type OCREngine interface {
	ExtractImage(ctx context.Context, data []byte) (ocr.ExtractionResult, error)
	ExtractPDF(ctx context.Context, data []byte) (ocr.ExtractionResult, error)
}

// Acquirer is the text acquisition layer: it dispatches file bytes to the
// right engine based on the declared MIME type.
type Acquirer struct {
	ocr    OCREngine
	logger *slog.Logger
}

func NewAcquirer(ocrx OCREngine, logger *slog.Logger) *Acquirer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Acquirer{ocr: ocrx, logger: logger}
}

// ExtractText picks a strategy based on the declared MIME type.
// Unrecognized types fail with ErrUnsupportedFormat; any engine failure
// fails the whole acquisition, never returning partial text.
func (a *Acquirer) ExtractText(ctx context.Context, data []byte, mimeType string) (TextExtractionResult, error) {
	start := time.Now()
	format := constants.MapMIMEToFormat(mimeType)
	a.logger.Debug("starting text acquisition", "mime_type", mimeType, "format", format, "bytes", len(data))

	switch format {
	case constants.IMAGE:
		res, err := a.ocr.ExtractImage(ctx, data)
		return a.finish(res, start), err
	case constants.PDF:
		res, err := a.ocr.ExtractPDF(ctx, data)
		return a.finish(res, start), err
	case constants.DOCX:
		text, err := docx.ExtractText(data)
		if err != nil {
			return TextExtractionResult{SourceType: constants.DOCX}, err
		}
		return TextExtractionResult{
			Text:       text,
			Pages:      1,
			SourceType: constants.DOCX,
			Method:     "docx-text",
			Duration:   time.Since(start),
		}, nil
	default:
		a.logger.Warn("unsupported mime type", "mime_type", mimeType)
		return TextExtractionResult{}, common.NewAppError(
			"UNSUPPORTED_FORMAT",
			fmt.Sprintf("no dispatch rule for mime type %q", mimeType),
			common.ErrUnsupportedFormat,
		)
	}
}

func (a *Acquirer) finish(res ocr.ExtractionResult, start time.Time) TextExtractionResult {
	out := TextExtractionResult{
		Text:       res.Text,
		Pages:      res.Pages,
		SourceType: res.SourceType,
		Method:     res.Method,
		Language:   res.Language,
		Duration:   time.Since(start),
		Warnings:   res.Warnings,
		Confidence: res.Confidence,
	}
	if res.Confidence > 0 && res.Confidence < ocr.ImageConfidenceThreshold {
		a.logger.Warn("low ocr confidence", "method", res.Method, "confidence", res.Confidence)
		out.Warnings = append(out.Warnings, fmt.Sprintf("low ocr confidence: %.2f", res.Confidence))
	}
	return out
}
