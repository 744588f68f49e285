package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maariakh-cs/medex/constants"
	"github.com/Maariakh-cs/medex/internal/common"
	"github.com/Maariakh-cs/medex/internal/ocr"
)

type stubOCR struct {
	image func(data []byte) (ocr.ExtractionResult, error)
	pdf   func(data []byte) (ocr.ExtractionResult, error)
}

func (s stubOCR) ExtractImage(_ context.Context, data []byte) (ocr.ExtractionResult, error) {
	return s.image(data)
}

func (s stubOCR) ExtractPDF(_ context.Context, data []byte) (ocr.ExtractionResult, error) {
	return s.pdf(data)
}

func TestExtractText_DispatchImage(t *testing.T) {
	a := NewAcquirer(stubOCR{
		image: func([]byte) (ocr.ExtractionResult, error) {
			return ocr.ExtractionResult{Text: "Patient: Jane Doe", Pages: 1, SourceType: constants.IMAGE, Method: "image-ocr", Confidence: 0.9}, nil
		},
	}, nil)

	for _, mime := range []string{constants.MIMETypeJPEG, constants.MIMETypePNG, "IMAGE/PNG; charset=binary"} {
		res, err := a.ExtractText(context.Background(), []byte("img"), mime)
		require.NoError(t, err, "mime: %s", mime)
		assert.Equal(t, "Patient: Jane Doe", res.Text)
		assert.Equal(t, "image-ocr", res.Method)
	}
}

func TestExtractText_DispatchPDF(t *testing.T) {
	a := NewAcquirer(stubOCR{
		pdf: func([]byte) (ocr.ExtractionResult, error) {
			return ocr.ExtractionResult{Text: "p1\n\np2", Pages: 2, SourceType: constants.PDF, Method: "pdf-ocr", Confidence: 0.8}, nil
		},
	}, nil)

	res, err := a.ExtractText(context.Background(), []byte("%PDF"), constants.MIMETypePDF)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, constants.PDF, res.SourceType)
}

func TestExtractText_LowConfidenceWarns(t *testing.T) {
	a := NewAcquirer(stubOCR{
		image: func([]byte) (ocr.ExtractionResult, error) {
			return ocr.ExtractionResult{Text: "zz", Pages: 1, SourceType: constants.IMAGE, Method: "image-ocr", Confidence: 0.2}, nil
		},
	}, nil)

	res, err := a.ExtractText(context.Background(), []byte("img"), constants.MIMETypePNG)
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "low ocr confidence")
}

func TestExtractText_DispatchDocx(t *testing.T) {
	a := NewAcquirer(stubOCR{}, nil)

	data := buildDocx(t, []string{"Patient: Jane Doe", "Diagnosis: Flu"})
	res, err := a.ExtractText(context.Background(), data, constants.MIMETypeDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Patient: Jane Doe\nDiagnosis: Flu", res.Text)
	assert.Equal(t, "docx-text", res.Method)
	assert.Equal(t, constants.DOCX, res.SourceType)
}

func TestExtractText_DocxFailure(t *testing.T) {
	a := NewAcquirer(stubOCR{}, nil)

	_, err := a.ExtractText(context.Background(), []byte("not a zip archive"), constants.MIMETypeDOCX)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAcquisitionFailed)
}

func TestExtractText_UnsupportedFormat(t *testing.T) {
	a := NewAcquirer(stubOCR{}, nil)

	for _, mime := range []string{"text/plain", "application/json", "", "image/gif"} {
		_, err := a.ExtractText(context.Background(), []byte("x"), mime)
		require.Error(t, err, "mime: %s", mime)
		assert.ErrorIs(t, err, common.ErrUnsupportedFormat, "mime: %s", mime)
	}
}

func TestExtractText_EngineFailurePropagates(t *testing.T) {
	a := NewAcquirer(stubOCR{
		pdf: func([]byte) (ocr.ExtractionResult, error) {
			return ocr.ExtractionResult{SourceType: constants.PDF},
				common.NewAppError("ACQUISITION_FAILED", "rasterize pdf", common.ErrAcquisitionFailed)
		},
	}, nil)

	_, err := a.ExtractText(context.Background(), []byte("corrupt"), constants.MIMETypePDF)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAcquisitionFailed)
}
