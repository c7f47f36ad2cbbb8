// Package messaging publica eventos de alertas en Kafka (segmentio/kafka-go).
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jhoicas/prateleira-api/internal/application/alert"
)

var _ alert.Publisher = (*AlertPublisher)(nil)

// MessageWriter es el subconjunto de *kafka.Writer que usa el publisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// AlertMessage es el payload JSON publicado en el tópico de alertas.
type AlertMessage struct {
	Action     string     `json:"action"`
	AlertID    string     `json:"alert_id"`
	ProductID  string     `json:"product_id"`
	Type       string     `json:"type"`
	Message    string     `json:"message"`
	CreatedAt  time.Time  `json:"created_at"`
	Resolved   bool       `json:"resolved"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// AlertPublisher escribe un mensaje por evento con clave = product_id (orden por producto).
type AlertPublisher struct {
	w MessageWriter
}

// NewAlertPublisher envuelve un writer ya configurado.
func NewAlertPublisher(w MessageWriter) *AlertPublisher {
	return &AlertPublisher{w: w}
}

// NewWriter construye el *kafka.Writer para el tópico de alertas.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

// Publish serializa el evento y propaga el contexto de traza en los headers.
func (p *AlertPublisher) Publish(ctx context.Context, event alert.Event) error {
	a := event.Alert
	payload, err := json.Marshal(AlertMessage{
		Action:     event.Action,
		AlertID:    a.ID,
		ProductID:  a.ProductID,
		Type:       a.Type,
		Message:    a.Message,
		CreatedAt:  a.CreatedAt,
		Resolved:   a.Resolved,
		ResolvedAt: a.ResolvedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal alert event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(a.ProductID),
		Value: payload,
		Time:  time.Now(),
	}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{msg: &msg})
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write alert event: %w", err)
	}
	return nil
}

// Close libera el writer.
func (p *AlertPublisher) Close() error {
	return p.w.Close()
}

// headerCarrier adapta los headers de kafka.Message a propagation.TextMapCarrier.
type headerCarrier struct {
	msg *kafka.Message
}

var _ propagation.TextMapCarrier = headerCarrier{}

func (c headerCarrier) Get(key string) string {
	for _, h := range c.msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(key, value string) {
	for i, h := range c.msg.Headers {
		if h.Key == key {
			c.msg.Headers[i].Value = []byte(value)
			return
		}
	}
	c.msg.Headers = append(c.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.msg.Headers))
	for _, h := range c.msg.Headers {
		keys = append(keys, h.Key)
	}
	return keys
}
