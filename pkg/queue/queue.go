package queue

import (
	"github.com/hibiken/asynq"
	"github.com/hugh/go-smscms/pkg/config"
)

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
	}
}

func NewClient(cfg *config.RedisConfig) *asynq.Client {
	return asynq.NewClient(redisOpt(cfg))
}

// NewServer builds a worker server consuming the dispatch queue.
func NewServer(cfg *config.RedisConfig, dispatch *config.DispatchConfig) *asynq.Server {
	concurrency := dispatch.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	queueName := dispatch.Queue
	if queueName == "" {
		queueName = "default"
	}

	return asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				queueName: 1,
			},
		},
	)
}
