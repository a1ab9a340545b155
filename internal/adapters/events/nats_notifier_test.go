package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMessage struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	messages []capturedMessage
	err      error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, capturedMessage{subject: subject, data: data})
	return nil
}

func TestNATSNotifier_PublishesJSONOnTypedSubject(t *testing.T) {
	pub := &fakePublisher{}
	notifier := NewNATSNotifier(pub, "waste")
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := notifier.Publish(context.Background(), domain.WorkflowEvent{
		Type:                 domain.EventEntryAdvanced,
		EntryID:              "e1",
		ActorID:              "approver-1",
		ApprovalStatus:       domain.StatusPending,
		CurrentApprovalLevel: 2,
		OccurredAt:           at,
	})
	require.NoError(t, err)
	require.Len(t, pub.messages, 1)
	assert.Equal(t, "waste.entry_advanced", pub.messages[0].subject)

	var decoded domain.WorkflowEvent
	require.NoError(t, json.Unmarshal(pub.messages[0].data, &decoded))
	assert.Equal(t, "e1", decoded.EntryID)
	assert.Equal(t, 2, decoded.CurrentApprovalLevel)
	assert.True(t, at.Equal(decoded.OccurredAt))
}

func TestNATSNotifier_WrapsPublishError(t *testing.T) {
	boom := errors.New("connection closed")
	notifier := NewNATSNotifier(&fakePublisher{err: boom}, "plant")

	err := notifier.Publish(context.Background(), domain.WorkflowEvent{Type: domain.EventEntryRejected})

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "plant.entry_rejected")
}

func TestNATSNotifier_CancelledContext(t *testing.T) {
	pub := &fakePublisher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewNATSNotifier(pub, "waste").Publish(ctx, domain.WorkflowEvent{Type: domain.EventEntrySubmitted})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, pub.messages)
}

func TestNoopNotifier(t *testing.T) {
	assert.NoError(t, NoopNotifier{}.Publish(context.Background(), domain.WorkflowEvent{}))
}
