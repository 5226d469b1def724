package prepare

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads resume text from a document path. PDF files are
// extracted page by page; anything else is treated as plain text.
func ExtractText(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extractPDFText(path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &StructureError{Message: "failed to read resume file", Cause: err}
	}
	return string(content), nil
}

func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", &StructureError{Message: "failed to open PDF", Cause: err}
	}
	defer func() { _ = f.Close() }()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", &StructureError{Message: "failed to extract PDF text", Cause: err}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return "", &StructureError{Message: "failed to read PDF text", Cause: err}
	}
	return buf.String(), nil
}
