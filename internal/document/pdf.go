package document

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrEmptyPDF is returned for a zero-length download.
var ErrEmptyPDF = errors.New("empty PDF")

// PDFPageCount returns the number of pages in data.
func PDFPageCount(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, ErrEmptyPDF
	}
	n, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF: %w", err)
	}
	return n, nil
}
