package normalize

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"applyai-backend/internal/shared/telemetry"
)

// Format identifies a supported resume document format.
type Format string

const (
	FormatPDF       Format = "pdf"
	FormatDOCX      Format = "docx"
	FormatPlainText Format = "txt"
)

const (
	mimePDF   = "application/pdf"
	mimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePlain = "text/plain"
)

// Upload is the raw file handed over by the upload boundary.
type Upload struct {
	Name         string
	DeclaredType string
	Data         []byte
}

// FormatFromMime maps a declared MIME tag to a supported format.
// Parameters after a semicolon (charset etc.) are ignored.
func FormatFromMime(declared string) (Format, bool) {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(declared, ";")[0]))
	switch clean {
	case mimePDF:
		return FormatPDF, true
	case mimeDOCX:
		return FormatDOCX, true
	case mimePlain:
		return FormatPlainText, true
	default:
		return "", false
	}
}

// TypeFromName maps a file extension to the MIME type used when the upload
// declares none, or declares a generic one like application/octet-stream.
func TypeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	case ".txt":
		return mimePlain
	default:
		return ""
	}
}

// Normalize converts an uploaded document into plain text. It dispatches on
// the declared type; the sniffed content type is only cross-checked and
// logged when it disagrees. Pure function of the input bytes.
func Normalize(file Upload) (string, error) {
	format, ok := FormatFromMime(file.DeclaredType)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, file.DeclaredType)
	}

	logTypeMismatch(file, format)

	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = extractPDF(file.Data)
	case FormatDOCX:
		text, err = extractDOCX(file.Data)
	case FormatPlainText:
		text, err = decodePlainText(file.Data)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyContent, file.Name)
	}
	return text, nil
}

// extractPDF concatenates per-page plain text with newline separators.
// Pages that yield no text (scanned/image pages) contribute nothing.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrCorruptDocument, err)
	}

	var b strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil || pageText == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}

// extractDOCX reads the package in memory and reduces the document XML to
// paragraph text in document order.
func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty docx data", ErrCorruptDocument)
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrCorruptDocument, err)
	}
	defer doc.Close()

	return paragraphText(doc.Editable().GetContent()), nil
}

// paragraphText walks document XML and joins paragraph character data with
// newlines, dropping all markup.
func paragraphText(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return strings.TrimSpace(raw)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func decodePlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: not valid UTF-8", ErrCorruptDocument)
	}
	return string(data), nil
}

func logTypeMismatch(file Upload, declared Format) {
	sniffed := mimetype.Detect(file.Data)
	declaredMime := mimeForFormat(declared)
	if sniffed.Is(declaredMime) {
		return
	}
	telemetry.Warn("normalize.type_mismatch", map[string]any{
		"file":     file.Name,
		"declared": declaredMime,
		"sniffed":  sniffed.String(),
	})
}

func mimeForFormat(f Format) string {
	switch f {
	case FormatPDF:
		return mimePDF
	case FormatDOCX:
		return mimeDOCX
	default:
		return mimePlain
	}
}
