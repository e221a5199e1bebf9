package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"docreview/internal/model"
)

const documentsDirName = "documents"

// fsStore keeps each category's documents under
// <root>/<category>/documents/. It is safe for concurrent use; the
// filesystem provides the per-file consistency and Put never overwrites.
type fsStore struct {
	root       string
	categories map[string]struct{}
}

// NewFilesystem creates a filesystem-backed document store rooted at dataDir
// and bootstraps the per-category document directories.
func NewFilesystem(dataDir string, categories []string) (DocumentStore, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data dir is required")
	}
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if c == "" || c != filepath.Base(c) {
			return nil, fmt.Errorf("invalid category name %q", c)
		}
		set[c] = struct{}{}
		if err := os.MkdirAll(filepath.Join(dataDir, c, documentsDirName), 0o755); err != nil {
			return nil, fmt.Errorf("bootstrap category %s: %w", c, err)
		}
	}
	return &fsStore{root: dataDir, categories: set}, nil
}

// safeName reports whether name is a plain file name that cannot escape the
// category directory. Rejection is an error, not a sanitization: a request
// for "../x" fails rather than being served as "x".
func safeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}
	return name == filepath.Base(filepath.Clean(name))
}

func (s *fsStore) categoryDir(category string) (string, error) {
	if _, ok := s.categories[category]; !ok {
		return "", fmt.Errorf("%w: %s", model.ErrUnknownCategory, category)
	}
	dir := filepath.Join(s.root, category, documentsDirName)
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("%w: %s: %v", model.ErrUnknownCategory, category, err)
	}
	return dir, nil
}

func (s *fsStore) List(ctx context.Context, category string) ([]string, error) {
	dir, err := s.categoryDir(category)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", model.ErrUnknownCategory, category, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *fsStore) Get(ctx context.Context, category, name string) (io.ReadCloser, ObjectInfo, error) {
	dir, err := s.categoryDir(category)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	if !safeName(name) {
		return nil, ObjectInfo{}, fmt.Errorf("%w: %s", model.ErrNotFound, name)
	}
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ObjectInfo{}, fmt.Errorf("%w: %s/%s", model.ErrNotFound, category, name)
		}
		return nil, ObjectInfo{}, fmt.Errorf("open document: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, fmt.Errorf("stat document: %w", err)
	}
	info := ObjectInfo{
		Name:         name,
		Size:         st.Size(),
		ContentType:  "application/pdf",
		LastModified: st.ModTime(),
	}
	return f, info, nil
}

// Put stages the payload to a temp file in the category directory, then
// links it into place. Link fails on an existing name, which is what gives
// the no-overwrite guarantee without a stat/create race. The temp file is
// removed on every path.
func (s *fsStore) Put(ctx context.Context, category, name string, r io.Reader, size int64) error {
	dir, err := s.categoryDir(category)
	if err != nil {
		return err
	}
	if !safeName(name) {
		return fmt.Errorf("%w: invalid document name %q", model.ErrPersistence, name)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("%w: stage upload: %v", model.ErrPersistence, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write upload: %v", model.ErrPersistence, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync upload: %v", model.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close upload: %v", model.ErrPersistence, err)
	}

	if err := os.Link(tmpName, filepath.Join(dir, name)); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s/%s", model.ErrAlreadyExists, category, name)
		}
		return fmt.Errorf("%w: store upload: %v", model.ErrPersistence, err)
	}
	return nil
}

func (s *fsStore) Ping(ctx context.Context) error {
	if _, err := os.Stat(s.root); err != nil {
		return fmt.Errorf("data dir unavailable: %w", err)
	}
	return nil
}
