package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/Maariakh-cs/medex/constants"
	"github.com/Maariakh-cs/medex/internal/entity"
)

// DocumentProcessor is the pipeline boundary the handler depends on.
type DocumentProcessor interface {
	Process(ctx context.Context, data []byte, mimeType string) (entity.ExtractionResult, error)
}

// ExtractService serves the document extraction endpoint.
type ExtractService struct {
	processor      DocumentProcessor
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewExtractService(processor DocumentProcessor, maxUploadBytes int64, logger *zap.Logger) *ExtractService {
	return &ExtractService{processor: processor, maxUploadBytes: maxUploadBytes, logger: logger}
}

// HandleExtract accepts a multipart upload under the "file" field and
// returns the extraction envelope. Failures never surface internals:
// the envelope carries a categorized message only.
func (s *ExtractService) HandleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}
		s.logger.Warn("reject upload", zap.Error(err))
		writeJSON(w, status, entity.FailedResult("invalid request: file field is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Warn("read upload", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, entity.FailedResult("invalid request: unreadable file"))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = constants.MapExtToMIME(filepath.Ext(header.Filename))
	}

	envelope, err := s.processor.Process(r.Context(), data, mimeType)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, envelope)
		return
	}
	writeJSON(w, http.StatusOK, envelope)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
