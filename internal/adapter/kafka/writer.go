// Package kafka implements the optional streaming export of watershed
// summaries for downstream mapping and reporting consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/couchcryptid/bcg-survey-pipeline/internal/config"
	"github.com/couchcryptid/bcg-survey-pipeline/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces watershed summaries to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishWatershed serializes and publishes the summaries in a single
// WriteMessages call. Messages are keyed by HUC8 so consumers see the latest
// summary per watershed in partition order.
func (w *Writer) PublishWatershed(ctx context.Context, summaries []domain.WatershedSummary) error {
	if len(summaries) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(summaries))
	for i := range summaries {
		msg, err := serializeToMessage(summaries[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a WatershedSummary into a Kafka message.
func serializeToMessage(summary domain.WatershedSummary) (kafkago.Message, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize watershed summary: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(summary.HUC8),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "huc8", Value: []byte(summary.HUC8)},
			{Key: "grade", Value: []byte(strconv.Itoa(summary.Grade))},
		},
	}, nil
}
