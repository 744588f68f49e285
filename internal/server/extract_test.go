package server

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Maariakh-cs/medex/constants"
	"github.com/Maariakh-cs/medex/internal/common"
	"github.com/Maariakh-cs/medex/internal/entity"
)

type stubProcessor struct {
	gotMIME string
	gotData []byte
	env     entity.ExtractionResult
	err     error
}

func (s *stubProcessor) Process(_ context.Context, data []byte, mimeType string) (entity.ExtractionResult, error) {
	s.gotData = data
	s.gotMIME = mimeType
	return s.env, s.err
}

func multipartBody(t *testing.T, field, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	if contentType != "" {
		hdr["Content-Type"] = []string{contentType}
	}
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func newTestServer(proc DocumentProcessor, maxUpload int64) http.Handler {
	svc := NewExtractService(proc, maxUpload, zap.NewNop())
	cfg := common.ServerConfig{CORSOrigins: []string{"*"}, MaxRequestsRate: 100}
	return NewRouter(cfg, svc, zap.NewNop())
}

func TestHandleExtract_Success(t *testing.T) {
	env := entity.ExtractionResult{
		PatientInfo:   entity.PatientInfo{Name: "Jane Doe"},
		MedicalRecord: entity.NewMedicalRecord(),
		Success:       true,
		Message:       "extraction successful",
	}
	proc := &stubProcessor{env: env}
	h := newTestServer(proc, 1<<20)

	body, ctype := multipartBody(t, "file", "scan.png", constants.MIMETypePNG, []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, constants.MIMETypePNG, proc.gotMIME)
	assert.Equal(t, []byte("png-bytes"), proc.gotData)

	var got entity.ExtractionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.Equal(t, "Jane Doe", got.PatientInfo.Name)
	assert.NotNil(t, got.MedicalRecord.Medications)
}

func TestHandleExtract_MIMEFallsBackToExtension(t *testing.T) {
	proc := &stubProcessor{env: entity.ExtractionResult{Success: true, MedicalRecord: entity.NewMedicalRecord()}}
	h := newTestServer(proc, 1<<20)

	body, ctype := multipartBody(t, "file", "visit-notes.docx", "", []byte("zip-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constants.MIMETypeDOCX, proc.gotMIME)
}

func TestHandleExtract_MissingFileField(t *testing.T) {
	proc := &stubProcessor{}
	h := newTestServer(proc, 1<<20)

	body, ctype := multipartBody(t, "document", "scan.png", constants.MIMETypePNG, []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var got entity.ExtractionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Success)
	assert.Contains(t, got.Message, "file field is required")
	assert.NotNil(t, got.MedicalRecord.Medications)
}

func TestHandleExtract_UploadTooLarge(t *testing.T) {
	proc := &stubProcessor{}
	h := newTestServer(proc, 64)

	body, ctype := multipartBody(t, "file", "scan.png", constants.MIMETypePNG, bytes.Repeat([]byte("a"), 4096))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandleExtract_ProcessorFailure(t *testing.T) {
	proc := &stubProcessor{
		env: entity.FailedResult("failed to extract text from document"),
		err: errors.New("tesseract: exit status 1"),
	}
	h := newTestServer(proc, 1<<20)

	body, ctype := multipartBody(t, "file", "corrupt.pdf", constants.MIMETypePDF, []byte("not a pdf"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var got entity.ExtractionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Success)
	assert.Equal(t, "failed to extract text from document", got.Message)
	assert.NotContains(t, rec.Body.String(), "exit status")
}

func TestRouter_Health(t *testing.T) {
	h := newTestServer(&stubProcessor{}, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestRouter_RequestID(t *testing.T) {
	h := newTestServer(&stubProcessor{}, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-abc-123", rec.Header().Get("X-Request-ID"))
}
