package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nuclralert-dashboard/internal/config"
	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/nuclralert-dashboard/internal/domain/repository"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// AlertWriter - публикация тревог в топик Kafka
type AlertWriter struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

var _ repository.AlertPublisher = (*AlertWriter)(nil)

// NewAlertWriter создает продюсер для топика тревог из конфига
func NewAlertWriter(cfg *config.NotifierConfig, logger *zap.Logger) *AlertWriter {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &AlertWriter{writer: w, logger: logger}
}

// PublishAlert пишет событие с ключом session_id: тревоги одного посетителя идут в одну партицию по порядку
func (w *AlertWriter) PublishAlert(ctx context.Context, event *domain.AlertEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		w.logger.Error("Failed to publish alert to kafka",
			zap.String("topic", w.writer.Topic),
			zap.String("alert_id", event.ID.String()),
			zap.Error(err))
		return fmt.Errorf("publish alert: %w", err)
	}

	w.logger.Debug("Alert published to kafka",
		zap.String("topic", w.writer.Topic),
		zap.String("alert_id", event.ID.String()))
	return nil
}

func (w *AlertWriter) Close() error {
	return w.writer.Close()
}

// serializeToMessage - AlertEvent в сообщение Kafka (JSON + заголовки)
func serializeToMessage(event *domain.AlertEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.SessionID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "alert_level", Value: []byte(event.Level)},
			{Key: "display_seconds", Value: []byte(strconv.Itoa(event.DisplaySeconds))},
			{Key: "created_at", Value: []byte(event.CreatedAt.Format(time.RFC3339))},
		},
		Time: event.CreatedAt,
	}, nil
}
