package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/hugh/go-smscms/internal/messages"
)

// TaskClient is the part of *asynq.Client the enqueuer uses.
type TaskClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Enqueuer schedules a dispatch task for every new message. Tasks are not
// retried: a message that cannot be dispatched stays pending until someone
// updates it explicitly.
type Enqueuer struct {
	client TaskClient
	queue  string
	logger *slog.Logger
}

func NewEnqueuer(client TaskClient, queue string, logger *slog.Logger) *Enqueuer {
	if queue == "" {
		queue = "default"
	}
	return &Enqueuer{client: client, queue: queue, logger: logger}
}

func (e *Enqueuer) Dispatch(ctx context.Context, messageID string) error {
	task, err := NewMessageDispatchTask(MessageDispatchPayload{MessageID: messageID})
	if err != nil {
		return fmt.Errorf("building dispatch task: %w", err)
	}

	info, err := e.client.EnqueueContext(ctx, task, asynq.Queue(e.queue), asynq.MaxRetry(0))
	if err != nil {
		return fmt.Errorf("enqueueing dispatch task: %w", err)
	}

	e.logger.Debug("dispatch task enqueued", "message_id", messageID, "task_id", info.ID, "queue", info.Queue)
	return nil
}

var _ messages.Dispatcher = (*Enqueuer)(nil)
