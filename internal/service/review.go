package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"docreview/internal/model"
	"docreview/internal/repository"
	"docreview/internal/storage"
)

var (
	ErrNameRequired   = errors.New("document name is required")
	ErrRecordRequired = errors.New("record is required")
)

// ReviewService defines the use cases around the two-collection review
// ledger: the merged category view, record reads/writes, and the
// promote/demote toggle. Status is always derived from collection
// membership, never stored.
type ReviewService interface {
	// Summaries returns one row per configured category for the landing
	// listing: document names plus unreviewed/reviewed counts.
	Summaries(ctx context.Context) ([]model.CategorySummary, error)

	// CategoryView partitions a category's documents into unreviewed,
	// reviewed and no-result lists. Ledger entries whose document is gone
	// stay in their ledger list, flagged, and never land in no-result.
	CategoryView(ctx context.Context, category string) (*model.CategoryView, error)

	// GetRecord returns a document's record and derived status, checking
	// the unreviewed collection first.
	GetRecord(ctx context.Context, category, name string) (model.Record, model.ReviewStatus, error)

	// SaveRecord overwrites the record in whichever collection holds it,
	// preserving review status across edits. A name absent from both
	// collections is inserted into the default landing collection.
	SaveRecord(ctx context.Context, category, name string, rec model.Record) error

	// Promote moves a record from unreviewed to reviewed, value unchanged.
	Promote(ctx context.Context, category, name string) error

	// Demote moves a record from reviewed back to unreviewed.
	Demote(ctx context.Context, category, name string) error

	// Export returns a read-only snapshot of both collections.
	Export(ctx context.Context, category string) (*model.ExportSnapshot, error)
}

// reviewService is a concrete implementation of ReviewService.
type reviewService struct {
	store        storage.DocumentStore
	ledger       repository.LedgerRepository
	categories   []string
	defaultState model.ReviewStatus

	// Each ledger mutation is a load-mutate-save cycle over whole blobs, so
	// concurrent mutations of one category would lose updates. One mutex per
	// category serializes them; reads stay lock-free (blob replacement is
	// atomic on disk).
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewReviewService constructs a ReviewService. defaultState decides where a
// record for a previously unrecorded document lands on save.
func NewReviewService(store storage.DocumentStore, ledger repository.LedgerRepository, categories []string, defaultState model.ReviewStatus) (ReviewService, error) {
	if defaultState != model.StatusUnreviewed && defaultState != model.StatusReviewed {
		return nil, fmt.Errorf("invalid default landing state %q", defaultState)
	}
	return &reviewService{
		store:        store,
		ledger:       ledger,
		categories:   append([]string(nil), categories...),
		defaultState: defaultState,
		locks:        make(map[string]*sync.Mutex),
	}, nil
}

func (s *reviewService) categoryLock(category string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[category]
	if !ok {
		l = &sync.Mutex{}
		s.locks[category] = l
	}
	return l
}

func (s *reviewService) Summaries(ctx context.Context) ([]model.CategorySummary, error) {
	out := make([]model.CategorySummary, 0, len(s.categories))
	for _, category := range s.categories {
		names, err := s.store.List(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("list %s documents: %w", category, err)
		}
		c, err := s.ledger.Load(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("load %s ledger: %w", category, err)
		}
		if names == nil {
			names = []string{}
		}
		out = append(out, model.CategorySummary{
			Category:        category,
			DocumentNames:   names,
			UnreviewedCount: len(c.Unreviewed),
			ReviewedCount:   len(c.Reviewed),
		})
	}
	return out, nil
}

func (s *reviewService) CategoryView(ctx context.Context, category string) (*model.CategoryView, error) {
	names, err := s.store.List(ctx, category)
	if err != nil {
		return nil, err
	}
	c, err := s.ledger.Load(ctx, category)
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(names))
	for _, n := range names {
		present[n] = struct{}{}
	}

	view := &model.CategoryView{
		Category:   category,
		Unreviewed: ledgerItems(c.Unreviewed, model.StatusUnreviewed, present),
		Reviewed:   ledgerItems(c.Reviewed, model.StatusReviewed, present),
		NoResult:   []model.ViewItem{},
	}
	for _, n := range names {
		if _, ok := c.Unreviewed[n]; ok {
			continue
		}
		if _, ok := c.Reviewed[n]; ok {
			continue
		}
		view.NoResult = append(view.NoResult, model.ViewItem{
			Name:   n,
			Status: model.StatusNoResult,
		})
	}
	return view, nil
}

// ledgerItems turns one collection into sorted view items, marking entries
// whose document no longer exists in the store. Those records are kept.
func ledgerItems(coll map[string]model.Record, status model.ReviewStatus, present map[string]struct{}) []model.ViewItem {
	items := make([]model.ViewItem, 0, len(coll))
	for n := range coll {
		_, exists := present[n]
		items = append(items, model.ViewItem{
			Name:            n,
			HasRecord:       true,
			Status:          status,
			MissingDocument: !exists,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

func (s *reviewService) GetRecord(ctx context.Context, category, name string) (model.Record, model.ReviewStatus, error) {
	if name == "" {
		return nil, "", ErrNameRequired
	}
	c, err := s.ledger.Load(ctx, category)
	if err != nil {
		return nil, "", err
	}
	if rec, ok := c.Unreviewed[name]; ok {
		return rec, model.StatusUnreviewed, nil
	}
	if rec, ok := c.Reviewed[name]; ok {
		return rec, model.StatusReviewed, nil
	}
	return nil, "", fmt.Errorf("%w: no record for %s/%s", model.ErrNotFound, category, name)
}

func (s *reviewService) SaveRecord(ctx context.Context, category, name string, rec model.Record) error {
	if name == "" {
		return ErrNameRequired
	}
	if rec == nil {
		return ErrRecordRequired
	}

	lock := s.categoryLock(category)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.ledger.Load(ctx, category)
	if err != nil {
		return err
	}
	switch {
	case hasKey(c.Unreviewed, name):
		c.Unreviewed[name] = rec
	case hasKey(c.Reviewed, name):
		c.Reviewed[name] = rec
	case s.defaultState == model.StatusReviewed:
		c.Reviewed[name] = rec
	default:
		c.Unreviewed[name] = rec
	}
	return s.ledger.Save(ctx, category, c)
}

func (s *reviewService) Promote(ctx context.Context, category, name string) error {
	return s.move(ctx, category, name, model.StatusUnreviewed)
}

func (s *reviewService) Demote(ctx context.Context, category, name string) error {
	return s.move(ctx, category, name, model.StatusReviewed)
}

// move transfers a record out of the named source collection into the other
// one, leaving the value untouched.
func (s *reviewService) move(ctx context.Context, category, name string, from model.ReviewStatus) error {
	if name == "" {
		return ErrNameRequired
	}

	lock := s.categoryLock(category)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.ledger.Load(ctx, category)
	if err != nil {
		return err
	}

	src, dst := c.Unreviewed, c.Reviewed
	if from == model.StatusReviewed {
		src, dst = c.Reviewed, c.Unreviewed
	}
	rec, ok := src[name]
	if !ok {
		return fmt.Errorf("%w: %s/%s is not %s", model.ErrNotFound, category, name, from)
	}
	delete(src, name)
	dst[name] = rec

	return s.ledger.Save(ctx, category, c)
}

func (s *reviewService) Export(ctx context.Context, category string) (*model.ExportSnapshot, error) {
	c, err := s.ledger.Load(ctx, category)
	if err != nil {
		return nil, err
	}
	return &model.ExportSnapshot{
		ID:          uuid.New().String(),
		Category:    category,
		Unreviewed:  c.Unreviewed,
		Reviewed:    c.Reviewed,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func hasKey(m map[string]model.Record, name string) bool {
	_, ok := m[name]
	return ok
}
