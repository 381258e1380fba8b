// Package pdfparser turns uploaded PDF statements into transactions.
package pdfparser

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/dslipak/pdf"
)

// Extractor kinds accepted by NewExtractor.
const (
	ExtractorLibrary   = "library"
	ExtractorPdftotext = "pdftotext"
)

// PDFExtractor defines the interface for extracting text from PDF files.
type PDFExtractor interface {
	// ExtractText extracts the text of the PDF at pdfPath, one visual row per line.
	ExtractText(pdfPath string) (string, error)
}

// NewExtractor returns the extractor named by kind.
func NewExtractor(kind string) (PDFExtractor, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", ExtractorLibrary:
		return NewLibraryExtractor(), nil
	case ExtractorPdftotext:
		return NewPdftotextExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown PDF extractor %q", kind)
	}
}

// LibraryExtractor reads PDFs in-process with github.com/dslipak/pdf.
type LibraryExtractor struct{}

// NewLibraryExtractor creates a LibraryExtractor.
func NewLibraryExtractor() *LibraryExtractor {
	return &LibraryExtractor{}
}

// Horizontal gaps, in PDF units, that become one or two spaces.
const (
	wordGap   = 1.0
	columnGap = 10.0
)

// ExtractText walks pages in order and emits each text row as one line.
func (e *LibraryExtractor) ExtractText(pdfPath string) (string, error) {
	f, err := os.Open(pdfPath) // #nosec G304 -- path comes from the upload spool or the CLI
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	// pdf.Open never closes its file, so the reader is built over ours.
	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}

	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("error reading page %d: %w", i, err)
		}
		for _, row := range rows {
			lines = append(lines, rowText(row.Content))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func rowText(content pdf.TextHorizontal) string {
	var b strings.Builder
	prevEnd := -1.0
	for _, t := range content {
		if prevEnd >= 0 {
			switch gap := t.X - prevEnd; {
			case gap > columnGap:
				b.WriteString("  ")
			case gap > wordGap:
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	return b.String()
}

// PdftotextExtractor shells out to poppler's pdftotext in layout mode.
type PdftotextExtractor struct {
	Binary string
}

// NewPdftotextExtractor creates a PdftotextExtractor using pdftotext from PATH.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{Binary: "pdftotext"}
}

// ExtractText runs `pdftotext -layout pdfPath -`.
func (e *PdftotextExtractor) ExtractText(pdfPath string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(e.Binary, "-layout", pdfPath, "-") // #nosec G204 -- fixed binary, path is a spooled temp file
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// MockPDFExtractor returns canned text for tests.
type MockPDFExtractor struct {
	MockText string
	MockErr  error
	Calls    []string
}

// NewMockPDFExtractor creates a new MockPDFExtractor with the given mock data.
func NewMockPDFExtractor(mockText string, mockErr error) *MockPDFExtractor {
	return &MockPDFExtractor{MockText: mockText, MockErr: mockErr}
}

// ExtractText records pdfPath and returns the canned result.
func (e *MockPDFExtractor) ExtractText(pdfPath string) (string, error) {
	e.Calls = append(e.Calls, pdfPath)
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
