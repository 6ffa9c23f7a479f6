package notify

import (
	"context"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
)

// NoopNotifier drops events when Redis/Asynq is not configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) Publish(ctx context.Context, event ports.Event) error {
	return nil
}

var _ ports.Notifier = (*NoopNotifier)(nil)
