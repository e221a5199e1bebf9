package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docreview/internal/repository"
)

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Load(ctx context.Context, category string) (*repository.Collections, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Collections), args.Error(1)
}

func (m *MockLedgerRepository) Save(ctx context.Context, category string, c *repository.Collections) error {
	args := m.Called(ctx, category, c)
	return args.Error(0)
}
