package notify

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
)

// TypeNotification is the asynq task type for outbound feedback events.
const TypeNotification = "notify:event"

// AsynqNotifier enqueues notification events for the background worker.
type AsynqNotifier struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqNotifier(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *AsynqNotifier {
	return &AsynqNotifier{client: asynq.NewClient(redisOpt), log: log}
}

func (n *AsynqNotifier) Close() error {
	return n.client.Close()
}

func (n *AsynqNotifier) Publish(ctx context.Context, event ports.Event) error {
	payload, _ := json.Marshal(event)
	task := asynq.NewTask(TypeNotification, payload)
	if _, err := n.client.EnqueueContext(ctx, task); err != nil {
		n.log.Warn().Err(err).Str("type", event.Type).Msg("enqueue notification failed")
		return err
	}
	return nil
}

var _ ports.Notifier = (*AsynqNotifier)(nil)
