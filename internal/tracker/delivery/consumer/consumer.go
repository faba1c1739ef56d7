package consumer

import (
	"context"
	"sync"
	"time"

	"golang-rival-tracker/internal/tracker/config"
	"golang-rival-tracker/internal/tracker/service"
	"golang-rival-tracker/pkg/logger"
	"golang-rival-tracker/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RedisConsumer manages the consumption of tracking tasks from the Redis
// stream.
type RedisConsumer struct {
	cfg           *config.Config
	redisClient   *redis.Client
	workerService service.WorkerService
	log           *logger.Logger
	stopChan      chan struct{}
	wg            sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(cfg *config.Config, redisClient *redis.Client, workerService service.WorkerService, log *logger.Logger) *RedisConsumer {
	return &RedisConsumer{
		cfg:           cfg,
		redisClient:   redisClient,
		workerService: workerService,
		log:           log,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the consumer's task processing loop.
func (c *RedisConsumer) Start(ctx context.Context) {
	c.log.Info("Redis consumer started")

	timeout := c.cfg.Tracker.RedisStreamReadTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.log.Info("Redis consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.log.Info("Redis consumer stopping")
				return
			default:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				c.workerService.ProcessTask(ctxTimeout)
				cancel()
			}
		}
	})
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	close(c.stopChan)
	c.wg.Wait()
	c.log.Info("Redis consumer stopped")
}
