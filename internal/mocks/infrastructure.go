package mocks

import (
	"context"
	"mime/multipart"

	"restaurant_backend/internal/mailer"
	"restaurant_backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockMailer is a mock implementation of mailer.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg mailer.Message) error {
	return m.Called(ctx, msg).Error(0)
}

// MockImageProcessor is a mock implementation of services.ImageProcessor
type MockImageProcessor struct {
	mock.Mock
}

func (m *MockImageProcessor) Process(ctx context.Context, fh *multipart.FileHeader, profile storage.Profile) (*storage.StoredImage, error) {
	args := m.Called(ctx, fh, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.StoredImage), args.Error(1)
}

func (m *MockImageProcessor) Remove(ctx context.Context, publicPath string) {
	m.Called(ctx, publicPath)
}

// MockPinger is a mock implementation of services.Pinger
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ mailer.Mailer = (*MockMailer)(nil)
