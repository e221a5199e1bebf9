package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) Ingest(ctx context.Context, category, name, originalFilename string, r io.Reader) (string, error) {
	args := m.Called(ctx, category, name, originalFilename, r)
	return args.String(0), args.Error(1)
}
