package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/config"
	"golang-rival-tracker/internal/tracker/strategy"
	"golang-rival-tracker/pkg/common"
	"golang-rival-tracker/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// WorkerService consumes tracking tasks from the Redis stream and
// dispatches them to the matching strategy.
type WorkerService interface {
	ProcessTask(ctx context.Context)
}

// NewWorkerService creates a new WorkerService.
func NewWorkerService(
	redisClient *redis.Client,
	log *logger.Logger,
	cfg *config.Config,
	strategies []strategy.TrackingStrategy,
) WorkerService {
	strategyMap := make(map[string]strategy.TrackingStrategy)
	for _, s := range strategies {
		strategyMap[s.GetType()] = s
	}

	return &workerService{
		redisClient: redisClient,
		log:         log,
		cfg:         cfg,
		strategies:  strategyMap,
	}
}

type workerService struct {
	redisClient *redis.Client
	log         *logger.Logger
	cfg         *config.Config
	strategies  map[string]strategy.TrackingStrategy
}

// ProcessTask dequeues and executes a single task.
func (s *workerService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamTrackerTasks, ">"},
		Count:    1,
		Block:    2 * time.Second, // allow graceful shutdown
		NoAck:    true,
	}).Result()

	if err != nil {
		if err == context.Canceled || err == redis.Nil {
			return
		}
		s.log.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]

	payload, ok := message.Values["payload"].(string)
	if !ok {
		s.log.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", message.ID))
		return
	}

	var task entity.TrackTask
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		s.log.Error("Failed to unmarshal task", logger.ErrorField(err), logger.Field("message_id", message.ID))
		// Ack so the malformed message is not reprocessed.
		if err := s.redisClient.XAck(ctx, common.RedisStreamTrackerTasks, common.RedisStreamGroup, message.ID).Err(); err != nil {
			s.log.Error("Failed to acknowledge malformed message", logger.ErrorField(err), logger.Field("message_id", message.ID))
		}
		return
	}

	s.log.Info("Processing task",
		logger.Field("company_id", task.CompanyID),
		logger.StringField("task_type", task.TaskType))

	timeout := s.cfg.Tracker.TaskTimeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.execute(execCtx, &task); err != nil {
		s.log.Error("Task execution failed",
			logger.Field("company_id", task.CompanyID),
			logger.StringField("task_type", task.TaskType),
			logger.ErrorField(err))
		return
	}

	s.log.Info("Task completed",
		logger.Field("company_id", task.CompanyID),
		logger.StringField("task_type", task.TaskType))
}

func (s *workerService) execute(ctx context.Context, task *entity.TrackTask) error {
	strat, ok := s.strategies[task.TaskType]
	if !ok {
		return fmt.Errorf("no tracking strategy found for task type: %s", task.TaskType)
	}
	return strat.Execute(ctx, task)
}
