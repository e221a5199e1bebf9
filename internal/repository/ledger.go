package repository

// Package repository contains the review-ledger data access layer.
// Implementations live in subpackages (e.g., jsonfile) inside this directory.

import (
	"context"

	"docreview/internal/model"
)

// Collections is one category's pair of ledger collections. A document name
// must appear in at most one of the two maps; every mutation goes through a
// full load-mutate-save cycle so there is no partial state to merge.
type Collections struct {
	Unreviewed map[string]model.Record
	Reviewed   map[string]model.Record

	// Degraded lists the sides ("unreviewed", "reviewed") whose backing blob
	// existed but failed to parse and was replaced with an empty map. The
	// service stays available; callers can surface the condition.
	Degraded []string
}

// NewCollections returns an empty, non-nil pair.
func NewCollections() *Collections {
	return &Collections{
		Unreviewed: make(map[string]model.Record),
		Reviewed:   make(map[string]model.Record),
	}
}

// LedgerRepository persists both collections for a category as whole blobs.
// No business logic here, strictly persistence operations.
type LedgerRepository interface {
	// Load reads both collections fresh from storage. A missing blob is an
	// empty map; an unparsable blob degrades to an empty map and is flagged
	// via Collections.Degraded. Fails with model.ErrUnknownCategory when the
	// category's storage location is absent.
	Load(ctx context.Context, category string) (*Collections, error)

	// Save serializes both collections back. Each blob write is atomic
	// (temp file then rename); any failure surfaces model.ErrPersistence
	// and is never reported as success.
	Save(ctx context.Context, category string, c *Collections) error
}
