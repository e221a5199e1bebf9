package model

// Package model contains the review domain types shared across layers.
// No persistence or transport tags beyond plain JSON naming.

import "time"

// ReviewStatus is derived from ledger membership, never stored.
type ReviewStatus string

const (
	StatusNoResult   ReviewStatus = "no_result"
	StatusUnreviewed ReviewStatus = "unreviewed"
	StatusReviewed   ReviewStatus = "reviewed"
)

// Valid reports whether s is one of the three known statuses.
func (s ReviewStatus) Valid() bool {
	switch s {
	case StatusNoResult, StatusUnreviewed, StatusReviewed:
		return true
	}
	return false
}

// Record is the extracted-data payload for one document. The shape is
// open-ended (whatever the extraction pipeline produced), so it stays a
// generic JSON object rather than a fixed schema.
type Record map[string]any

// ViewItem is one document entry in a category view.
type ViewItem struct {
	Name      string       `json:"name"`
	HasRecord bool         `json:"has_record"`
	Status    ReviewStatus `json:"status"`
	// MissingDocument marks a ledger entry whose PDF is gone from the
	// document store. The record is kept; the UI flags it.
	MissingDocument bool `json:"missing_document,omitempty"`
}

// CategoryView partitions a category's documents by review status.
type CategoryView struct {
	Category   string     `json:"category"`
	Unreviewed []ViewItem `json:"unreviewed"`
	Reviewed   []ViewItem `json:"reviewed"`
	NoResult   []ViewItem `json:"no_result"`
}

// CategorySummary is the per-category row on the landing listing.
type CategorySummary struct {
	Category        string   `json:"category"`
	DocumentNames   []string `json:"document_names"`
	UnreviewedCount int      `json:"unreviewed_count"`
	ReviewedCount   int      `json:"reviewed_count"`
}

// ExportSnapshot is a read-only dump of both ledger collections.
type ExportSnapshot struct {
	ID          string            `json:"id"`
	Category    string            `json:"category"`
	Unreviewed  map[string]Record `json:"unreviewed"`
	Reviewed    map[string]Record `json:"reviewed"`
	GeneratedAt time.Time         `json:"generated_at"`
}
