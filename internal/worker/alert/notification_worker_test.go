package alert_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/nuclralert-dashboard/internal/observability"
	"github.com/nuclralert-dashboard/internal/worker/alert"
)

// MockAlertPublisher is a mock of AlertPublisher
type MockAlertPublisher struct {
	mock.Mock
}

func (m *MockAlertPublisher) PublishAlert(ctx context.Context, event *domain.AlertEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAlertPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newEvent(level domain.AlertLevel) *domain.AlertEvent {
	return domain.NewAlertEvent("session-1", domain.Alert{Level: level, Title: string(level)}, time.Now())
}

// TestNotificationWorker_Name tests the worker name
func TestNotificationWorker_Name(t *testing.T) {
	w := alert.NewNotificationWorker(&MockAlertPublisher{}, 1, nil, zap.NewNop())
	assert.Equal(t, "alert-notification", w.Name())
}

// TestNotificationWorker_PublishesQueuedEvents tests delivery of queued events
func TestNotificationWorker_PublishesQueuedEvents(t *testing.T) {
	publisher := &MockAlertPublisher{}
	metrics := observability.NewMetricsForTesting()
	w := alert.NewNotificationWorker(publisher, 4, metrics, zap.NewNop())

	event := newEvent(domain.AlertDangerous)
	published := make(chan struct{})
	publisher.On("PublishAlert", mock.Anything, event).Return(nil).Once().Run(func(args mock.Arguments) {
		close(published)
	})
	publisher.On("Close").Return(nil).Once()

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	require.True(t, w.Enqueue(event))

	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for publish")
	}

	require.NoError(t, w.Stop())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop")
	}

	publisher.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AlertsPublished.WithLabelValues("dangerous", "published")))
}

// TestNotificationWorker_PublishFailure tests that a failing publish is counted and skipped
func TestNotificationWorker_PublishFailure(t *testing.T) {
	publisher := &MockAlertPublisher{}
	metrics := observability.NewMetricsForTesting()
	w := alert.NewNotificationWorker(publisher, 4, metrics, zap.NewNop())

	event := newEvent(domain.AlertSafe)
	publisher.On("PublishAlert", mock.Anything, event).Return(errors.New("broker down")).Once()
	publisher.On("Close").Return(nil).Once()

	require.True(t, w.Enqueue(event))
	require.NoError(t, w.Stop())

	// Очередь дочищается при остановке
	require.NoError(t, w.Start(context.Background()))

	publisher.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AlertsPublished.WithLabelValues("safe", "failed")))
}

// TestNotificationWorker_FullQueueDrops tests that Enqueue never blocks
func TestNotificationWorker_FullQueueDrops(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	w := alert.NewNotificationWorker(&MockAlertPublisher{}, 1, metrics, zap.NewNop())

	assert.True(t, w.Enqueue(newEvent(domain.AlertModerate)))
	assert.False(t, w.Enqueue(newEvent(domain.AlertModerate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AlertsPublished.WithLabelValues("moderate", "dropped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AlertQueueDepth))
}

// TestNotificationWorker_EnqueueAfterStop tests that a stopped worker rejects events
func TestNotificationWorker_EnqueueAfterStop(t *testing.T) {
	w := alert.NewNotificationWorker(&MockAlertPublisher{}, 1, nil, zap.NewNop())
	require.NoError(t, w.Stop())
	assert.False(t, w.Enqueue(newEvent(domain.AlertOnSite)))
}
