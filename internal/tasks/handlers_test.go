package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/hugh/go-smscms/internal/database/models"
	"github.com/hugh/go-smscms/internal/messages"
	"github.com/hugh/go-smscms/internal/testutil"
	"github.com/hugh/go-smscms/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dispatchTask(t *testing.T, messageID string) *asynq.Task {
	t.Helper()
	task, err := NewMessageDispatchTask(MessageDispatchPayload{MessageID: messageID})
	require.NoError(t, err)
	return task
}

func storedStatus(t *testing.T, db *gorm.DB, id string) models.MessageStatus {
	t.Helper()
	var message models.Message
	require.NoError(t, db.First(&message, "id = ?", id).Error)
	return message.Status
}

func TestNewMessageDispatchTask(t *testing.T) {
	task := dispatchTask(t, "msg-1")

	assert.Equal(t, TypeMessageDispatch, task.Type())

	var payload MessageDispatchPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "msg-1", payload.MessageID)
}

func TestHandleMessageDispatch_InvalidPayload(t *testing.T) {
	setup := testutil.NewTestContext(t)
	defer setup.Cleanup()

	handler := NewHandler(setup.MessageService(), util.DiscardLogger())

	task := asynq.NewTask(TypeMessageDispatch, []byte("invalid json"))

	err := handler.HandleMessageDispatch(context.Background(), task)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal payload")
}

func TestHandleMessageDispatch_MarksSent(t *testing.T) {
	setup := testutil.NewTestContext(t)
	defer setup.Cleanup()

	handler := NewHandler(setup.MessageService(), util.DiscardLogger())

	contact := testutil.CreateTestContact(t, setup.DB, "Ana", "5551234")
	message := testutil.CreateTestMessage(t, setup.DB, setup.User.ID, contact.ID, "hola")

	require.NoError(t, handler.HandleMessageDispatch(context.Background(), dispatchTask(t, message.ID)))
	assert.Equal(t, models.MessageStatusSent, storedStatus(t, setup.DB, message.ID))
}

func TestHandleMessageDispatch_MissingContactMarksFailed(t *testing.T) {
	setup := testutil.NewTestContext(t)
	defer setup.Cleanup()

	handler := NewHandler(setup.MessageService(), util.DiscardLogger())

	contact := testutil.CreateTestContact(t, setup.DB, "Ana", "5551234")
	message := testutil.CreateTestMessage(t, setup.DB, setup.User.ID, contact.ID, "hola")
	require.NoError(t, setup.DB.Delete(&models.Contact{}, "id = ?", contact.ID).Error)

	require.NoError(t, handler.HandleMessageDispatch(context.Background(), dispatchTask(t, message.ID)))
	assert.Equal(t, models.MessageStatusFailed, storedStatus(t, setup.DB, message.ID))
}

func TestHandleMessageDispatch_AlreadySettled(t *testing.T) {
	setup := testutil.NewTestContext(t)
	defer setup.Cleanup()

	service := setup.MessageService()
	handler := NewHandler(service, util.DiscardLogger())

	contact := testutil.CreateTestContact(t, setup.DB, "Ana", "5551234")
	message := testutil.CreateTestMessage(t, setup.DB, setup.User.ID, contact.ID, "hola")
	_, err := service.SetStatus(context.Background(), message.ID, models.MessageStatusFailed)
	require.NoError(t, err)

	require.NoError(t, handler.HandleMessageDispatch(context.Background(), dispatchTask(t, message.ID)))
	assert.Equal(t, models.MessageStatusFailed, storedStatus(t, setup.DB, message.ID))
}

func TestHandleMessageDispatch_UnknownMessage(t *testing.T) {
	setup := testutil.NewTestContext(t)
	defer setup.Cleanup()

	handler := NewHandler(setup.MessageService(), util.DiscardLogger())

	err := handler.HandleMessageDispatch(context.Background(), dispatchTask(t, "missing"))
	assert.NoError(t, err)
}

func TestRegisterHandlers(t *testing.T) {
	setup := testutil.NewTestContext(t)
	defer setup.Cleanup()

	handler := NewHandler(setup.MessageService(), util.DiscardLogger())
	mux := asynq.NewServeMux()

	handler.RegisterHandlers(mux)

	h, pattern := mux.Handler(asynq.NewTask(TypeMessageDispatch, nil))
	assert.NotNil(t, h)
	assert.Equal(t, TypeMessageDispatch, pattern)
}

type fakeTaskClient struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeTaskClient) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{ID: "task-1", Queue: "sms", Type: task.Type()}, nil
}

func TestEnqueuer_Dispatch(t *testing.T) {
	client := &fakeTaskClient{}
	enqueuer := NewEnqueuer(client, "sms", util.DiscardLogger())

	require.NoError(t, enqueuer.Dispatch(context.Background(), "msg-1"))
	require.Len(t, client.tasks, 1)
	assert.Equal(t, TypeMessageDispatch, client.tasks[0].Type())

	var queueName string
	maxRetry := -1
	for _, opt := range client.opts[0] {
		switch opt.Type() {
		case asynq.QueueOpt:
			queueName = opt.Value().(string)
		case asynq.MaxRetryOpt:
			maxRetry = opt.Value().(int)
		}
	}
	assert.Equal(t, "sms", queueName)
	assert.Equal(t, 0, maxRetry)
}

func TestEnqueuer_DefaultQueue(t *testing.T) {
	enqueuer := NewEnqueuer(&fakeTaskClient{}, "", util.DiscardLogger())
	assert.Equal(t, "default", enqueuer.queue)
}

func TestEnqueuer_ClientError(t *testing.T) {
	enqueuer := NewEnqueuer(&fakeTaskClient{err: errors.New("redis down")}, "sms", util.DiscardLogger())

	err := enqueuer.Dispatch(context.Background(), "msg-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
}

func TestEnqueuer_CreateDoesNotFailWhenQueueDown(t *testing.T) {
	setup := testutil.NewTestContext(t)
	defer setup.Cleanup()

	client := &fakeTaskClient{err: errors.New("redis down")}
	service := setup.MessageService(messages.WithDispatcher(NewEnqueuer(client, "sms", util.DiscardLogger())))

	contact := testutil.CreateTestContact(t, setup.DB, "Ana", "5551234")
	message, err := service.Create(context.Background(), "hola", contact.ID, setup.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusPending, storedStatus(t, setup.DB, message.ID))
}
