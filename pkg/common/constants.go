package common

const (
	RedisStreamTrackerTasks = "tracker.task.execution"

	RedisStreamGroup    = "tracker-group"
	RedisStreamConsumer = "tracker-consumer"
)

// Task types dispatched over the tracker stream.
const (
	TaskTypeCompanyRefresh = "company_refresh"
	TaskTypeMetricBackfill = "metric_backfill"
)

// SourceAI is the audit log source name for records produced by the AI
// extraction step.
const SourceAI = "ai_extraction"
