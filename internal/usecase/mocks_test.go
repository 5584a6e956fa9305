package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nuclralert-dashboard/internal/domain"
)

// MockBackendRepository is a mock of BackendRepository
type MockBackendRepository struct {
	mock.Mock
}

func (m *MockBackendRepository) LoadData(ctx context.Context) (*domain.LoadSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoadSummary), args.Error(1)
}

func (m *MockBackendRepository) GetData(ctx context.Context) (*domain.DashboardSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSnapshot), args.Error(1)
}

func (m *MockBackendRepository) MapURL(filename string) string {
	if filename == "" {
		return ""
	}
	return "http://backend/static/maps/" + filename
}

func (m *MockBackendRepository) DownloadURL() string {
	return "http://backend/download_processed"
}

func (m *MockBackendRepository) CheckHealth(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockAlertNotifier is a mock of AlertNotifier
type MockAlertNotifier struct {
	mock.Mock
}

func (m *MockAlertNotifier) Enqueue(event *domain.AlertEvent) bool {
	args := m.Called(event)
	return args.Bool(0)
}
