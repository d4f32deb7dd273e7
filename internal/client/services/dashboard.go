package services

import (
	"context"
	"fmt"
	"time"

	"github.com/obelousov/pixelboard/internal/client/models"
	"github.com/obelousov/pixelboard/internal/client/remote"
	"github.com/obelousov/pixelboard/internal/netx"
)

// DashboardService answers the read queries behind the terminal dashboard:
// counters, paginated event listings, credential and webhook inspection,
// and CSV export downloads.
type DashboardService struct {
	client remote.Client
}

func NewDashboardService(client remote.Client) *DashboardService {
	return &DashboardService{client: client}
}

// Stats fetches the server-aggregated counters for one date range.
func (s *DashboardService) Stats(ctx context.Context, from time.Time, to time.Time) (*models.EventStats, error) {
	stats, err := s.client.GetEventStats(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("stats error: %w", err)
	}
	return stats, nil
}

func (s *DashboardService) ListLeads(ctx context.Context, query *models.EventQuery) (*models.LeadEventPage, error) {
	return s.client.ListLeadEvents(ctx, query)
}

func (s *DashboardService) ListPurchases(ctx context.Context, query *models.EventQuery) (*models.PurchaseEventPage, error) {
	return s.client.ListPurchaseEvents(ctx, query)
}

func (s *DashboardService) Credentials(ctx context.Context) (*models.PixelCredential, error) {
	return s.client.GetPixelCredentials(ctx)
}

func (s *DashboardService) Webhooks(ctx context.Context) ([]*models.Webhook, error) {
	return s.client.ListWebhooks(ctx)
}

// Export asks the server to render a CSV of the matching purchase events
// and downloads it from the returned presigned URL into path.
func (s *DashboardService) Export(ctx context.Context, query *models.EventQuery, path string) error {
	url, err := s.client.RequestEventsExport(ctx, query)
	if err != nil {
		return fmt.Errorf("export request error: %w", err)
	}

	if err := netx.DownloadToFile(ctx, url, path); err != nil {
		return fmt.Errorf("export download error: %w", err)
	}
	return nil
}

// Ping proxies a liveness check to the data service.
func (s *DashboardService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (s *DashboardService) Close() error {
	return s.client.Close()
}
