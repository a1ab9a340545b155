package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/waste_approval_app/internal/core/ports/services"
	"github.com/nats-io/nats.go"
)

// publisher is the subset of *nats.Conn the notifier needs.
type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSNotifier publishes workflow events as JSON on <root>.<event type>.
type NATSNotifier struct {
	conn        publisher
	subjectRoot string
}

// Ensure NATSNotifier implements portssvc.WorkflowNotifier
var _ portssvc.WorkflowNotifier = (*NATSNotifier)(nil)

// NewNATSNotifier wraps an established connection.
func NewNATSNotifier(conn publisher, subjectRoot string) *NATSNotifier {
	return &NATSNotifier{conn: conn, subjectRoot: subjectRoot}
}

// Connect dials the server and returns a notifier plus a close function.
func Connect(url, subjectRoot string, logger *slog.Logger) (*NATSNotifier, func(), error) {
	conn, err := nats.Connect(url,
		nats.Name("waste-approval-backend"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	closeFn := func() {
		if err := conn.Drain(); err != nil {
			logger.Warn("Failed to drain NATS connection", slog.String("error", err.Error()))
		}
	}
	return NewNATSNotifier(conn, subjectRoot), closeFn, nil
}

// Subject returns the subject an event type is published on.
func (n *NATSNotifier) Subject(eventType domain.WorkflowEventType) string {
	return n.subjectRoot + "." + string(eventType)
}

func (n *NATSNotifier) Publish(ctx context.Context, event domain.WorkflowEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}
	subject := n.Subject(event.Type)
	if err := n.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish on %s: %w", subject, err)
	}
	return nil
}

// NoopNotifier drops every event. Used when no NATS server is configured.
type NoopNotifier struct{}

var _ portssvc.WorkflowNotifier = NoopNotifier{}

func (NoopNotifier) Publish(context.Context, domain.WorkflowEvent) error { return nil }
