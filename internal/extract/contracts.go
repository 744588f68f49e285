package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 1: file bytes + declared MIME type -> plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, mimeType string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE | constants.DOCX
	Method     string // "image-ocr" | "pdf-ocr" | "docx-text"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

// Entity labels the field extraction engine understands.
const (
	LabelPerson = "PERSON"
	LabelDate   = "DATE"
)

// Entity is a labeled span of text produced by the tagger.
type Entity struct {
	Label string
	Text  string
}

// EntityTagger is the named-entity capability the field extraction engine
// falls back on when no labeled line matched. Implementations must be
// deterministic for identical text.
type EntityTagger interface {
	NamedEntities(text string) []Entity
}
