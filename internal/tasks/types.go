package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeMessageDispatch = "message:dispatch"
)

// MessageDispatchPayload identifies the message whose delivery is simulated.
type MessageDispatchPayload struct {
	MessageID string `json:"message_id"`
}

func NewMessageDispatchTask(payload MessageDispatchPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeMessageDispatch, data), nil
}
