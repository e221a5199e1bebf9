package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"docreview/internal/model"
	"docreview/internal/storage"
)

var (
	ErrReaderNil = errors.New("reader is nil")
)

var pdfMagic = []byte("%PDF-")

// IngestService accepts new PDF documents into a category.
type IngestService interface {
	// Ingest validates the payload as a PDF and stores it under the given
	// name (falling back to the upload's original filename). Returns the
	// stored name. The content check is structural, not extension-based.
	Ingest(ctx context.Context, category, name, originalFilename string, r io.Reader) (string, error)
}

// ingestService is a concrete implementation of IngestService.
type ingestService struct {
	store storage.DocumentStore
}

// NewIngestService constructs a new IngestService.
func NewIngestService(store storage.DocumentStore) IngestService {
	return &ingestService{store: store}
}

func (s *ingestService) Ingest(ctx context.Context, category, name, originalFilename string, r io.Reader) (string, error) {
	if r == nil {
		return "", ErrReaderNil
	}

	stored := documentName(name, originalFilename)
	if stored == "" {
		return "", ErrNameRequired
	}

	// Buffer the payload: it is validated before anything touches storage,
	// so a rejected upload leaves no partial state behind.
	payload, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if err := validatePDF(payload); err != nil {
		return "", err
	}

	if err := s.store.Put(ctx, category, stored, bytes.NewReader(payload), int64(len(payload))); err != nil {
		return "", err
	}
	return stored, nil
}

// documentName picks the stored name: the explicit name if given, else the
// original upload filename, reduced to a bare file name with a .pdf
// extension.
func documentName(name, originalFilename string) string {
	n := strings.TrimSpace(name)
	if n == "" {
		n = strings.TrimSpace(originalFilename)
	}
	if n == "" {
		return ""
	}
	n = filepath.Base(filepath.Clean(n))
	if n == "." || n == ".." || n == string(filepath.Separator) {
		return ""
	}
	if !strings.EqualFold(filepath.Ext(n), ".pdf") {
		n += ".pdf"
	}
	return n
}

// validatePDF checks the magic header, then runs pdfcpu's relaxed
// structural validation over the payload.
func validatePDF(payload []byte) error {
	if !bytes.HasPrefix(payload, pdfMagic) {
		return fmt.Errorf("%w: missing PDF header", model.ErrInvalidType)
	}
	cfg := pdfmodel.NewDefaultConfiguration()
	cfg.ValidationMode = pdfmodel.ValidationRelaxed
	if err := api.Validate(bytes.NewReader(payload), cfg); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidType, err)
	}
	return nil
}
