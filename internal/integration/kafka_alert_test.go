//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/nuclralert-dashboard/internal/config"
	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/nuclralert-dashboard/internal/repository/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
	"go.uber.org/zap"
)

const testAlertTopic = "test-nuclralert-alerts"

// startKafka поднимает одноузловой Kafka в контейнере и возвращает адрес брокера
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("nuclralert-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic создает топик с одной партицией через контроллер кластера
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestAlertWriter_RoundTrip - опубликованная тревога читается из топика
// с тем же ключом и заголовками
func TestAlertWriter_RoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAlertTopic)

	writer := kafka.NewAlertWriter(&config.NotifierConfig{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testAlertTopic,
	}, zap.NewNop())
	defer writer.Close()

	event := domain.NewAlertEvent("session-42", domain.Alert{
		Level:   domain.AlertOnSite,
		Title:   "🚨 ON-SITE ALERT",
		Message: "You are currently at: Indian Point",
		Plants:  []string{"Indian Point"},
	}, time.Now().UTC().Truncate(time.Second))

	require.NoError(t, writer.PublishAlert(ctx, event))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testAlertTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1 << 20,
	})
	defer reader.Close()

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := reader.ReadMessage(readCtx)
	require.NoError(t, err, "read from alert topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}

	var received domain.AlertEvent
	require.NoError(t, json.Unmarshal(msg.Value, &received))

	assert.Equal(t, "session-42", string(msg.Key))
	assert.Equal(t, "on_site", headers["alert_level"])
	assert.Equal(t, "15", headers["display_seconds"])
	assert.Equal(t, event.ID, received.ID)
	assert.Equal(t, []string{"Indian Point"}, received.Plants)
}
