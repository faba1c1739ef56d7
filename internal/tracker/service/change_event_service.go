package service

import (
	"context"

	"golang-rival-tracker/internal/tracker/dto"
	"golang-rival-tracker/internal/tracker/repository"
)

// ChangeEventService exposes the change-event feed.
type ChangeEventService interface {
	Feed(ctx context.Context, filter dto.ChangeEventFilter) ([]dto.ChangeEventResponse, error)
}

type changeEventService struct {
	changeEventRepo repository.ChangeEventRepository
}

// NewChangeEventService creates a new ChangeEventService.
func NewChangeEventService(changeEventRepo repository.ChangeEventRepository) ChangeEventService {
	return &changeEventService{changeEventRepo: changeEventRepo}
}

func (s *changeEventService) Feed(ctx context.Context, filter dto.ChangeEventFilter) ([]dto.ChangeEventResponse, error) {
	events, err := s.changeEventRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ChangeEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ChangeEventResponse{
			ID:          e.ID,
			CompanyID:   e.CompanyID,
			EventType:   string(e.EventType),
			Description: e.Description,
			DetectedAt:  e.DetectedAt,
		})
	}
	return out, nil
}
