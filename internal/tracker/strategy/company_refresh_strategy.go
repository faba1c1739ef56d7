package strategy

import (
	"context"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/pkg/common"
	"golang-rival-tracker/pkg/logger"
	"golang-rival-tracker/pkg/telegram"
)

// CompanyRefreshStrategy runs a tracking cycle for one company and sends
// a Telegram digest when changes were detected.
type CompanyRefreshStrategy struct {
	refresher Refresher
	notifier  telegram.Notifier
	log       *logger.Logger
}

// NewCompanyRefreshStrategy creates a new CompanyRefreshStrategy.
func NewCompanyRefreshStrategy(refresher Refresher, notifier telegram.Notifier, log *logger.Logger) *CompanyRefreshStrategy {
	return &CompanyRefreshStrategy{refresher: refresher, notifier: notifier, log: log}
}

// GetType returns the task type this strategy handles.
func (s *CompanyRefreshStrategy) GetType() string {
	return common.TaskTypeCompanyRefresh
}

// Execute runs the cycle. Notification failures are logged but do not
// fail the task; the cycle itself already committed.
func (s *CompanyRefreshStrategy) Execute(ctx context.Context, task *entity.TrackTask) error {
	outcome, err := s.refresher.Refresh(ctx, task.CompanyID)
	if err != nil {
		return err
	}

	if len(outcome.Events) == 0 {
		return nil
	}

	alerts := make([]telegram.ChangeAlert, 0, len(outcome.Events))
	for _, e := range outcome.Events {
		alerts = append(alerts, telegram.ChangeAlert{
			EventType:   string(e.EventType),
			Description: e.Description,
		})
	}

	message := telegram.FormatChangeAlerts(outcome.Company.Name, alerts)
	if err := s.notifier.SendMessage(message); err != nil {
		s.log.Error("Failed to send change alert",
			logger.Field("company_id", task.CompanyID),
			logger.ErrorField(err))
	}
	return nil
}
