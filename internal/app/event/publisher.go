package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"transcription-api/internal/app/model"
	"transcription-api/internal/config"
)

// EventTranscriptionCreated is published once per successful create.
const EventTranscriptionCreated = "transcription.created"

// Publisher is the best-effort change-event side channel. Implementations must
// never block request handling on delivery and never surface publish failures
// to the caller.
type Publisher interface {
	PublishTranscriptionEvent(t *model.Transcription, eventType string)
	Close() error
}

// Envelope is the JSON structure published per transcription event.
type Envelope struct {
	EventType     string `json:"event_type"`
	ID            string `json:"id"`
	AudioFilename string `json:"audio_filename"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// NewEnvelope builds the event envelope for a record.
func NewEnvelope(t *model.Transcription, eventType string) Envelope {
	return Envelope{
		EventType:     eventType,
		ID:            t.ID.String(),
		AudioFilename: t.AudioFilename,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
}

// KafkaPublisher writes envelopes to a Kafka topic, fire-and-forget.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *slog.Logger
}

// NewKafkaPublisher creates a publisher against the configured topic. The
// writer runs in async mode: WriteMessages enqueues and returns, and delivery
// failures only reach the completion callback, where they are logged.
func NewKafkaPublisher(cfg config.EventsConfig, logger *slog.Logger) *KafkaPublisher {
	p := &KafkaPublisher{
		topic:  cfg.Topic,
		logger: logger,
	}
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("event publish failed",
					"topic", cfg.Topic,
					"messages", len(messages),
					"error", err,
				)
			}
		},
	}
	return p
}

// PublishTranscriptionEvent submits one envelope for the record. Errors are
// logged and swallowed; the HTTP response never depends on delivery.
func (p *KafkaPublisher) PublishTranscriptionEvent(t *model.Transcription, eventType string) {
	payload, err := json.Marshal(NewEnvelope(t, eventType))
	if err != nil {
		p.logger.Warn("event encode failed", "id", t.ID, "error", err)
		return
	}

	err = p.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(t.ID.String()),
		Value: payload,
	})
	if err != nil {
		p.logger.Warn("event publish failed",
			"topic", p.topic,
			"id", t.ID,
			"error", err,
		)
	}
}

// Close flushes any queued messages and releases the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
