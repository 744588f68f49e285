// Package pipeline coordinates text acquisition then field extraction,
// assembling the response envelope. One request is one unit of work; no
// state is shared across requests beyond the immutable engine.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/goccy/go-json"

	"github.com/Maariakh-cs/medex/internal/common"
	"github.com/Maariakh-cs/medex/internal/entity"
	"github.com/Maariakh-cs/medex/internal/extract"
	"github.com/Maariakh-cs/medex/internal/fields"
)

type Processor struct {
	logger   *slog.Logger
	acquirer extract.TextExtractor
	engine   *fields.Engine
	cfg      common.ExtractConfig
}

func NewProcessor(acquirer extract.TextExtractor, engine *fields.Engine, cfg common.ExtractConfig, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, acquirer: acquirer, engine: engine, cfg: cfg}
}

// Process runs acquisition then extraction for one document and always
// returns a complete envelope. On failure the envelope carries
// success=false, a categorized message, and default records; the error is
// returned alongside for the boundary to log and map to a status code.
func (p *Processor) Process(ctx context.Context, data []byte, mimeType string) (entity.ExtractionResult, error) {
	reqID := common.RequestIDFromContext(ctx)

	res, err := p.acquirer.ExtractText(ctx, data, mimeType)
	if err != nil {
		p.logger.Error("acquisition failed", "request_id", reqID, "mime_type", mimeType, "error", err)
		return entity.FailedResult(common.CategorizeMessage(err)), err
	}
	p.logger.Info("acquisition ok",
		"request_id", reqID,
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"confidence", res.Confidence,
		"duration_ms", res.Duration.Milliseconds(),
	)

	envelope := entity.ExtractionResult{
		PatientInfo:   p.engine.ExtractPatientInfo(res.Text),
		MedicalRecord: p.engine.ExtractMedicalRecord(res.Text),
		Success:       true,
		Message:       "extraction successful",
	}
	if p.cfg.IncludeRawText {
		envelope.RawText = res.Text
	}

	if p.cfg.ValidateEnvelope {
		if err := p.checkSchema(envelope); err != nil {
			p.logger.Error("envelope schema check failed", "request_id", reqID, "error", err)
			return entity.FailedResult(common.CategorizeMessage(common.ErrInternal)),
				common.WrapError(err, "envelope schema")
		}
	}

	p.logger.Info("extraction ok", "request_id", reqID,
		"medications", len(envelope.MedicalRecord.Medications),
		"procedures", len(envelope.MedicalRecord.Procedures),
		"lab_results", len(envelope.MedicalRecord.LabResults),
	)
	return envelope, nil
}

func (p *Processor) checkSchema(envelope entity.ExtractionResult) error {
	b, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return entity.ValidateEnvelope(b)
}
