package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docreview/internal/model"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Summaries(ctx context.Context) ([]model.CategorySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategorySummary), args.Error(1)
}

func (m *MockReviewService) CategoryView(ctx context.Context, category string) (*model.CategoryView, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CategoryView), args.Error(1)
}

func (m *MockReviewService) GetRecord(ctx context.Context, category, name string) (model.Record, model.ReviewStatus, error) {
	args := m.Called(ctx, category, name)
	if args.Get(0) == nil {
		return nil, args.Get(1).(model.ReviewStatus), args.Error(2)
	}
	return args.Get(0).(model.Record), args.Get(1).(model.ReviewStatus), args.Error(2)
}

func (m *MockReviewService) SaveRecord(ctx context.Context, category, name string, rec model.Record) error {
	args := m.Called(ctx, category, name, rec)
	return args.Error(0)
}

func (m *MockReviewService) Promote(ctx context.Context, category, name string) error {
	args := m.Called(ctx, category, name)
	return args.Error(0)
}

func (m *MockReviewService) Demote(ctx context.Context, category, name string) error {
	args := m.Called(ctx, category, name)
	return args.Error(0)
}

func (m *MockReviewService) Export(ctx context.Context, category string) (*model.ExportSnapshot, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExportSnapshot), args.Error(1)
}
