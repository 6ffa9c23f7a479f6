package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
)

// Worker consumes notification tasks. When a webhook URL is configured the
// event is POSTed there as JSON; otherwise it is only logged.
type Worker struct {
	srv        *asynq.Server
	mux        *asynq.ServeMux
	log        zerolog.Logger
	webhookURL string
	client     *http.Client
}

// NewWorker creates an asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, webhookURL string, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{
		srv:        srv,
		mux:        mux,
		log:        log,
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
	mux.HandleFunc(TypeNotification, w.handleNotification)
	return w
}

func (w *Worker) handleNotification(ctx context.Context, t *asynq.Task) error {
	var event ports.Event
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		w.log.Error().Err(err).Msg("notification payload invalid")
		return err
	}
	w.log.Info().
		Str("type", event.Type).
		Str("company_id", event.CompanyID).
		Str("post_id", event.PostID).
		Msg("notification event")
	if w.webhookURL == "" {
		return nil
	}
	body, _ := json.Marshal(event)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		w.log.Warn().Int("status", resp.StatusCode).Str("type", event.Type).Msg("webhook delivery rejected")
	}
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
