package pdfparser

import (
	"context"
	"fmt"
	"io"
	"os"

	"fjacquet/finflow/internal/fileutils"
	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/parsererror"
	"fjacquet/finflow/internal/statement"
)

// Adapter spools an uploaded PDF to disk, extracts its text and runs the
// statement parser over it.
type Adapter struct {
	extractor PDFExtractor
	parser    *statement.Parser
	tempDir   string
	logger    logging.Logger
}

// NewAdapter creates an Adapter. A nil extractor uses the library extractor.
func NewAdapter(extractor PDFExtractor, parser *statement.Parser, logger logging.Logger) *Adapter {
	if extractor == nil {
		extractor = NewLibraryExtractor()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Adapter{extractor: extractor, parser: parser, logger: logger}
}

// WithTempDir sets where uploads are spooled. Empty means os.TempDir().
func (a *Adapter) WithTempDir(dir string) *Adapter {
	a.tempDir = dir
	return a
}

// ExtractText spools r and returns the extracted statement text. The spooled
// file is removed before returning.
func (a *Adapter) ExtractText(r io.Reader) (string, error) {
	path, err := fileutils.SpoolToTemp(a.tempDir, "upload-", "pdf", r)
	if err != nil {
		return "", fmt.Errorf("failed to spool upload: %w", err)
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			a.logger.WithError(err).Warn("Failed to remove temporary file",
				logging.F(logging.FieldFile, path))
		}
	}()

	text, err := a.extractor.ExtractText(path)
	if err != nil {
		return "", &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "PDF",
			Msg:            "text extraction failed",
			Err:            err,
		}
	}
	a.logger.Debug("Extracted PDF text",
		logging.F(logging.FieldFile, path), logging.F("chars", len(text)))
	return text, nil
}

// Parse extracts the text of the PDF in r and parses it for userID.
func (a *Adapter) Parse(ctx context.Context, r io.Reader, userID string) (statement.Result, error) {
	text, err := a.ExtractText(r)
	if err != nil {
		return statement.Result{}, err
	}
	return a.parser.Parse(ctx, userID, text)
}
