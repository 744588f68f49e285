// Package docx reads paragraph text out of OOXML word-processing documents.
// Parsing is pure Go: the document is a zip archive and the text layer
// lives in word/document.xml.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/Maariakh-cs/medex/internal/common"
)

const documentPath = "word/document.xml"

// ReadParagraphs returns the document's paragraph texts in document order.
// No OCR is involved; the text layer is assumed present.
func ReadParagraphs(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, readError("open docx archive", err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == documentPath {
			doc = f
			break
		}
	}
	if doc == nil {
		return nil, readError("locate document body", fmt.Errorf("%s missing from archive", documentPath))
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, readError("open document body", err)
	}
	defer rc.Close()

	paras, err := decodeParagraphs(rc)
	if err != nil {
		return nil, readError("parse document body", err)
	}
	return paras, nil
}

// ExtractText joins paragraphs with single newlines, in document order.
func ExtractText(data []byte) (string, error) {
	paras, err := ReadParagraphs(data)
	if err != nil {
		return "", err
	}
	return strings.Join(paras, "\n"), nil
}

func decodeParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var paras []string
	var cur strings.Builder
	inPara := false
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				cur.Reset()
				inPara = true
			case "t":
				inText = inPara
			case "tab":
				if inPara {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if inPara {
					cur.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inPara {
					paras = append(paras, cur.String())
					inPara = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	return paras, nil
}

func readError(msg string, cause error) error {
	return common.NewAppError("ACQUISITION_FAILED", msg, fmt.Errorf("%w: %w", common.ErrAcquisitionFailed, cause))
}
