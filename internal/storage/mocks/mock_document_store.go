package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"docreview/internal/storage"
)

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) List(ctx context.Context, category string) ([]string, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDocumentStore) Get(ctx context.Context, category, name string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, category, name)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockDocumentStore) Put(ctx context.Context, category, name string, r io.Reader, size int64) error {
	args := m.Called(ctx, category, name, r, size)
	return args.Error(0)
}

func (m *MockDocumentStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
