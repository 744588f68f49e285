package constants

import "strings"

// Document formats handled by the acquisition layer.
const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
	DOCX  = "DOCX"
)

// FileTypes holds the allowed format values for acquisition results.
var FileTypes = []string{PDF, IMAGE, DOCX}

// MIME types accepted at the request boundary.
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeJPEG = "image/jpeg"
	MIMETypePNG  = "image/png"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// AllowedMIMETypes holds the MIME types the extraction endpoint accepts.
var AllowedMIMETypes = map[string]struct{}{
	MIMETypePDF:  {},
	MIMETypeJPEG: {},
	MIMETypePNG:  {},
	MIMETypeDOCX: {},
}

// NormalizeMIMEType lowercases a MIME type and strips any parameters
// (e.g. "image/png; charset=binary" -> "image/png").
func NormalizeMIMEType(mimeType string) string {
	mimeType = strings.TrimSpace(strings.ToLower(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}

// MapMIMEToFormat returns the document format for a MIME type,
// or "" when the type has no dispatch rule.
func MapMIMEToFormat(mimeType string) string {
	switch NormalizeMIMEType(mimeType) {
	case MIMETypePDF:
		return PDF
	case MIMETypeJPEG, MIMETypePNG:
		return IMAGE
	case MIMETypeDOCX:
		return DOCX
	default:
		return ""
	}
}

// MapExtToMIME maps a file extension to its MIME type, for CLI use where
// no declared content type accompanies the file. Returns "" when unknown.
func MapExtToMIME(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		return MIMETypePDF
	case "jpg", "jpeg":
		return MIMETypeJPEG
	case "png":
		return MIMETypePNG
	case "docx":
		return MIMETypeDOCX
	default:
		return ""
	}
}
