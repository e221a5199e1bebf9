package storage

import (
	"context"
	"io"
	"time"
)

// Package storage holds the document store abstraction: the physical PDF
// bytes for each category crossed with a document name. The store never sees
// ledger data; the document name is the only key shared with the ledger.

// ObjectInfo contains basic information about a stored document.
type ObjectInfo struct {
	Name         string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// DocumentStore is the read/write contract over a category's documents.
// All lookups match names byte-for-byte; implementations must reject any
// name that could resolve outside the category's storage boundary.
type DocumentStore interface {
	// List returns the sorted document names present for the category.
	// Fails with model.ErrUnknownCategory when the category is not
	// configured or its storage location is gone.
	List(ctx context.Context, category string) ([]string, error)

	// Get streams a document's bytes. Fails with model.ErrNotFound when the
	// name is absent (or rejected as unsafe).
	Get(ctx context.Context, category, name string) (io.ReadCloser, ObjectInfo, error)

	// Put stores a new document. Fails with model.ErrAlreadyExists when the
	// exact name is already present; there is no overwrite. Partial writes
	// are cleaned up on every failure path.
	Put(ctx context.Context, category, name string, r io.Reader, size int64) error

	// Ping reports backend reachability, used by the health endpoint.
	Ping(ctx context.Context) error
}
