package service

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/config"
	"golang-rival-tracker/pkg/common"
	"golang-rival-tracker/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// TaskQueueService publishes ad-hoc tracking tasks to the tracker
// stream, outside the cron schedule.
type TaskQueueService interface {
	Enqueue(ctx context.Context, task entity.TrackTask) error
}

type taskQueueService struct {
	redisClient *redis.Client
	log         *logger.Logger
	cfg         *config.Config
}

// NewTaskQueueService creates a new TaskQueueService.
func NewTaskQueueService(redisClient *redis.Client, log *logger.Logger, cfg *config.Config) TaskQueueService {
	return &taskQueueService{redisClient: redisClient, log: log, cfg: cfg}
}

func (s *taskQueueService) Enqueue(ctx context.Context, task entity.TrackTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	if err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamTrackerTasks,
		Values: map[string]interface{}{"payload": payload},
		MaxLen: s.cfg.Redis.StreamMaxLen,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue task: %w", err)
	}

	s.log.Info("Task enqueued",
		logger.Field("company_id", task.CompanyID),
		logger.StringField("task_type", task.TaskType))
	return nil
}
