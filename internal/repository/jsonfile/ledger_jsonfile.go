package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"docreview/internal/model"
	"docreview/internal/repository"
)

const (
	unreviewedBlob = "unreviewed.json"
	reviewedBlob   = "reviewed.json"
)

// LedgerJSONFile persists each category's two collections as pretty-printed
// JSON blobs next to the category's document directory:
//
//	<root>/<category>/unreviewed.json
//	<root>/<category>/reviewed.json
//
// The blobs are the source of truth; they are re-read on every Load and
// written whole on every Save.
type LedgerJSONFile struct {
	root       string
	categories map[string]struct{}
}

// NewLedgerJSONFile constructs the repository and bootstraps the category
// directories so first-run saves have somewhere to land.
func NewLedgerJSONFile(dataDir string, categories []string) (*LedgerJSONFile, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data dir is required")
	}
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
		if err := os.MkdirAll(filepath.Join(dataDir, c), 0o755); err != nil {
			return nil, fmt.Errorf("bootstrap category %s: %w", c, err)
		}
	}
	return &LedgerJSONFile{root: dataDir, categories: set}, nil
}

func (l *LedgerJSONFile) categoryDir(category string) (string, error) {
	if _, ok := l.categories[category]; !ok {
		return "", fmt.Errorf("%w: %s", model.ErrUnknownCategory, category)
	}
	dir := filepath.Join(l.root, category)
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("%w: %s: %v", model.ErrUnknownCategory, category, err)
	}
	return dir, nil
}

// Load reads both blobs. Missing blob: empty collection. Unparsable blob:
// empty collection, logged and flagged, never fatal.
func (l *LedgerJSONFile) Load(ctx context.Context, category string) (*repository.Collections, error) {
	dir, err := l.categoryDir(category)
	if err != nil {
		return nil, err
	}

	c := repository.NewCollections()

	for _, side := range []struct {
		name string
		blob string
		dst  *map[string]model.Record
	}{
		{"unreviewed", unreviewedBlob, &c.Unreviewed},
		{"reviewed", reviewedBlob, &c.Reviewed},
	} {
		m, degraded, err := readCollection(filepath.Join(dir, side.blob))
		if err != nil {
			return nil, err
		}
		if degraded {
			logDegraded(category, side.name)
			c.Degraded = append(c.Degraded, side.name)
		}
		*side.dst = m
	}

	return c, nil
}

func readCollection(path string) (map[string]model.Record, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]model.Record), false, nil
		}
		return nil, false, fmt.Errorf("read ledger blob %s: %w", path, err)
	}

	var m map[string]model.Record
	if err := json.Unmarshal(b, &m); err != nil {
		// Corrupt blob. Degrade to empty so the service stays up; the flag
		// distinguishes this from a legitimately empty ledger.
		return make(map[string]model.Record), true, nil
	}
	if m == nil {
		m = make(map[string]model.Record)
	}
	return m, false, nil
}

// Save writes both collections. Both payloads are serialized before any I/O,
// then each blob is staged to a temp file and renamed into place. If the
// second replace fails after the first succeeded, the ledger is inconsistent
// on disk and the error says so; success is never reported on any failure.
func (l *LedgerJSONFile) Save(ctx context.Context, category string, c *repository.Collections) error {
	dir, err := l.categoryDir(category)
	if err != nil {
		return err
	}

	unreviewed, err := marshalCollection(c.Unreviewed)
	if err != nil {
		return fmt.Errorf("%w: encode unreviewed: %v", model.ErrPersistence, err)
	}
	reviewed, err := marshalCollection(c.Reviewed)
	if err != nil {
		return fmt.Errorf("%w: encode reviewed: %v", model.ErrPersistence, err)
	}

	tmpUnreviewed, err := stage(dir, unreviewed)
	if err != nil {
		return fmt.Errorf("%w: stage unreviewed: %v", model.ErrPersistence, err)
	}
	defer os.Remove(tmpUnreviewed)

	tmpReviewed, err := stage(dir, reviewed)
	if err != nil {
		return fmt.Errorf("%w: stage reviewed: %v", model.ErrPersistence, err)
	}
	defer os.Remove(tmpReviewed)

	if err := atomic.ReplaceFile(tmpUnreviewed, filepath.Join(dir, unreviewedBlob)); err != nil {
		return fmt.Errorf("%w: replace unreviewed blob: %v", model.ErrPersistence, err)
	}
	if err := atomic.ReplaceFile(tmpReviewed, filepath.Join(dir, reviewedBlob)); err != nil {
		return fmt.Errorf("%w: replace reviewed blob after unreviewed was written; ledger %s is partially updated: %v",
			model.ErrPersistence, category, err)
	}
	return nil
}

// marshalCollection pretty-prints for human diffability of the blobs.
func marshalCollection(m map[string]model.Record) ([]byte, error) {
	if m == nil {
		m = make(map[string]model.Record)
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func stage(dir string, payload []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, ".ledger-*")
	if err != nil {
		return "", err
	}
	name := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	return name, nil
}

func logDegraded(category, side string) {
	entry := map[string]any{
		"level":    "warn",
		"msg":      "ledger_blob_unparsable",
		"category": category,
		"side":     side,
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
