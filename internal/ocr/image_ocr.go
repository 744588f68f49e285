package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/Maariakh-cs/medex/constants"
)

// ImageConfidenceThreshold flags low-confidence OCR text for review.
const ImageConfidenceThreshold = 0.6

// ExtractImage runs OCR over a single raster image. Recognized fragments
// are joined with single spaces in the engine's reading order.
func (e *Extractor) ExtractImage(ctx context.Context, data []byte) (ExtractionResult, error) {
	path, cleanup, err := writeTemp(data, "medex-img-*")
	if err != nil {
		return ExtractionResult{SourceType: constants.IMAGE}, acquisitionError("persist image", err)
	}
	defer cleanup()

	txt, warn, err := e.tesseractOCR(ctx, path)
	if err != nil {
		return ExtractionResult{SourceType: constants.IMAGE, Warnings: warn}, err
	}

	return ExtractionResult{
		Text:       joinFragments(txt),
		Pages:      1,
		SourceType: constants.IMAGE,
		Method:     "image-ocr",
		Language:   e.cfg.TesseractLang,
		Warnings:   warn,
		Confidence: heuristicConfidence(txt),
	}, nil
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, []string, error) {
	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, path, "stdout", "-l", e.cfg.TesseractLang)
	if err != nil {
		return "", []string{string(errb)}, acquisitionError("tesseract", fmt.Errorf("%w: %s", err, truncate(string(errb), 512)))
	}
	return string(out), nil, nil
}

// joinFragments flattens OCR output into one space-separated line,
// preserving the engine's left-to-right, top-to-bottom fragment order.
func joinFragments(txt string) string {
	fields := strings.Fields(txt)
	return strings.Join(fields, " ")
}
