package services

import (
	"context"
	"errors"

	"github.com/obelousov/pixelboard/internal/common"
	"github.com/obelousov/pixelboard/internal/server/models"
	"github.com/obelousov/pixelboard/internal/server/repositories/repomanager"
)

// EventStats summarizes one date range for the dashboard header cards.
type EventStats struct {
	Leads               int64 `json:"leads"`
	Conversions         int64 `json:"conversions"`
	FailedConversions   int64 `json:"failed_conversions"`
	PendingConversions  int64 `json:"pending_conversions"`
	CredentialsComplete bool  `json:"credentials_complete"`
}

type EventService struct {
	repos repomanager.RepositoryManager
}

func NewEventService(m repomanager.RepositoryManager) *EventService {
	return &EventService{repos: m}
}

func (s *EventService) CountLeads(ctx context.Context, filter *models.EventFilter) (int64, error) {
	return s.repos.LeadEvents().Count(ctx, filter)
}

func (s *EventService) CountPurchases(ctx context.Context, filter *models.EventFilter) (int64, error) {
	return s.repos.PurchaseEvents().Count(ctx, filter)
}

func (s *EventService) ListLeads(ctx context.Context, filter *models.EventFilter) ([]*models.LeadEvent, int64, error) {
	return s.repos.LeadEvents().List(ctx, filter)
}

func (s *EventService) ListPurchases(ctx context.Context, filter *models.EventFilter) ([]*models.PurchaseEvent, int64, error) {
	return s.repos.PurchaseEvents().List(ctx, filter)
}

func (s *EventService) CreateLead(ctx context.Context, event *models.LeadEvent) (*models.LeadEvent, error) {
	return s.repos.LeadEvents().Create(ctx, event)
}

func (s *EventService) CreatePurchase(ctx context.Context, event *models.PurchaseEvent) (*models.PurchaseEvent, error) {
	return s.repos.PurchaseEvents().Create(ctx, event)
}

// Stats aggregates the dashboard counters for one date range.
func (s *EventService) Stats(ctx context.Context, filter *models.EventFilter) (*EventStats, error) {
	stats := &EventStats{}

	leads, err := s.repos.LeadEvents().Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	stats.Leads = leads

	conversions, err := s.repos.PurchaseEvents().Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	stats.Conversions = conversions

	failed := *filter
	failed.Status = models.EventStatusFailed
	if stats.FailedConversions, err = s.repos.PurchaseEvents().Count(ctx, &failed); err != nil {
		return nil, err
	}

	pending := *filter
	pending.Status = models.EventStatusPending
	if stats.PendingConversions, err = s.repos.PurchaseEvents().Count(ctx, &pending); err != nil {
		return nil, err
	}

	cred, err := s.repos.Credentials().Get(ctx)
	switch {
	case err == nil:
		stats.CredentialsComplete = cred.Configured()
	case errors.Is(err, common.ErrorNotFound):
		stats.CredentialsComplete = false
	default:
		return nil, err
	}

	return stats, nil
}
