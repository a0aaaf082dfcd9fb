// internal/adapter/events/nats.go

package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/service/analysis"
)

// NATSPublisher pushes analysis events onto a NATS subject. The
// websocket feed and any other consumer subscribe to the same subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher creates a publisher for the given subject.
func NewNATSPublisher(conn *nats.Conn, subject string) *NATSPublisher {
	return &NATSPublisher{conn: conn, subject: subject}
}

// Publish marshals the event and fires it at the subject.
func (p *NATSPublisher) Publish(event analysis.AnalyzedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling analysis event: %w", err)
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("error publishing analysis event: %w", err)
	}
	return nil
}
