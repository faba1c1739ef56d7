package service

import (
	"context"
	"encoding/json"
	"time"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/config"
	"golang-rival-tracker/internal/tracker/repository"
	"golang-rival-tracker/pkg/common"
	"golang-rival-tracker/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// SchedulerService polls for due tracking schedules and publishes tasks
// to the tracker stream.
type SchedulerService interface {
	Start(ctx context.Context)
	ProcessSchedules(ctx context.Context)
}

// NewSchedulerService creates a new scheduler service.
func NewSchedulerService(scheduleRepo repository.TrackScheduleRepository, redisClient *redis.Client, log *logger.Logger, cfg *config.Config) SchedulerService {
	return &schedulerService{
		scheduleRepo: scheduleRepo,
		redisClient:  redisClient,
		log:          log,
		cfg:          cfg,
		cronParser:   cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

type schedulerService struct {
	scheduleRepo repository.TrackScheduleRepository
	redisClient  *redis.Client
	log          *logger.Logger
	cfg          *config.Config
	cronParser   cron.Parser
}

// Start begins the periodic schedule polling loop.
func (s *schedulerService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Tracker.PollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Scheduler service stopping")
			return
		case <-ticker.C:
			s.ProcessSchedules(ctx)
		}
	}
}

// ProcessSchedules finds due schedules and enqueues their tasks.
func (s *schedulerService) ProcessSchedules(ctx context.Context) {
	schedules, err := s.scheduleRepo.FindDue(ctx)
	if err != nil {
		s.log.Error("Failed to find due schedules", logger.ErrorField(err))
		return
	}

	for _, schedule := range schedules {
		s.publishTask(ctx, schedule)
	}
}

func (s *schedulerService) publishTask(ctx context.Context, schedule entity.TrackSchedule) {
	now := time.Now()

	payload, err := json.Marshal(entity.TrackTask{
		ScheduleID: schedule.ID,
		CompanyID:  schedule.CompanyID,
		TaskType:   schedule.TaskType,
	})
	if err != nil {
		s.log.Error("Failed to marshal task payload", logger.ErrorField(err), logger.Field("schedule_id", schedule.ID))
		return
	}

	if err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamTrackerTasks,
		Values: map[string]interface{}{"payload": payload},
		MaxLen: s.cfg.Redis.StreamMaxLen,
	}).Err(); err != nil {
		s.log.Error("Failed to enqueue task", logger.ErrorField(err), logger.Field("schedule_id", schedule.ID))
		return
	}

	s.log.Info("Task published",
		logger.Field("schedule_id", schedule.ID),
		logger.Field("company_id", schedule.CompanyID),
		logger.StringField("task_type", schedule.TaskType))

	cronSchedule, err := s.cronParser.Parse(schedule.CronExpression)
	if err != nil {
		s.log.Error("Failed to parse cron expression", logger.ErrorField(err), logger.Field("schedule_id", schedule.ID))
		return
	}

	schedule.LastExecution.Time = now
	schedule.LastExecution.Valid = true
	schedule.NextExecution.Time = cronSchedule.Next(now)
	schedule.NextExecution.Valid = true

	if err := s.scheduleRepo.Update(ctx, &schedule); err != nil {
		s.log.Error("Failed to update next execution time", logger.ErrorField(err), logger.Field("schedule_id", schedule.ID))
	}
}
