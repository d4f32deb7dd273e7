// Package httpapi exposes the row store over authenticated HTTP. The API is
// deliberately thin: every route is a pass-through to a table repository or
// an aggregate query, plus token issuance guarding them.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/obelousov/pixelboard/internal/logging"
	"github.com/obelousov/pixelboard/internal/server/models"
	"github.com/obelousov/pixelboard/internal/server/repositories/credentials"
	"github.com/obelousov/pixelboard/internal/server/repositories/webhooks"
	"github.com/obelousov/pixelboard/internal/server/services"
)

// TokenIssuer is the token-service surface the API needs.
type TokenIssuer interface {
	IssueFromAPIKey(ctx context.Context, key string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Validate(tokenString string) error
}

// UserStore is the user-row surface the API needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListByEmail(ctx context.Context, email string) ([]*models.User, error)
	Update(ctx context.Context, id string, patch *models.UserPatch) (*models.User, error)
}

// EventStore is the event surface the API needs.
type EventStore interface {
	CountLeads(ctx context.Context, filter *models.EventFilter) (int64, error)
	CountPurchases(ctx context.Context, filter *models.EventFilter) (int64, error)
	ListLeads(ctx context.Context, filter *models.EventFilter) ([]*models.LeadEvent, int64, error)
	ListPurchases(ctx context.Context, filter *models.EventFilter) ([]*models.PurchaseEvent, int64, error)
	CreateLead(ctx context.Context, event *models.LeadEvent) (*models.LeadEvent, error)
	CreatePurchase(ctx context.Context, event *models.PurchaseEvent) (*models.PurchaseEvent, error)
	Stats(ctx context.Context, filter *models.EventFilter) (*services.EventStats, error)
}

// Exporter produces downloadable event exports.
type Exporter interface {
	ExportPurchaseEvents(ctx context.Context, filter *models.EventFilter) (string, error)
}

type Server struct {
	address     string
	logger      logging.Logger
	tokens      TokenIssuer
	users       UserStore
	events      EventStore
	exports     Exporter
	credentials credentials.Repository
	webhooks    webhooks.Repository
}

func NewServer(
	address string,
	l logging.Logger,
	tokens TokenIssuer,
	users UserStore,
	events EventStore,
	exports Exporter,
	creds credentials.Repository,
	hooks webhooks.Repository,
) *Server {
	return &Server{
		address:     address,
		logger:      l.With("module", "httpapi"),
		tokens:      tokens,
		users:       users,
		events:      events,
		exports:     exports,
		credentials: creds,
		webhooks:    hooks,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")

	v1.POST("/auth/token", s.issueToken)
	v1.POST("/auth/refresh", s.refreshToken)

	authed := v1.Group("", s.requireAccessToken())

	authed.GET("/users", s.listUsersByEmail)
	authed.POST("/users", s.createUser)
	authed.GET("/users/:id", s.getUser)
	authed.PATCH("/users/:id", s.updateUser)

	authed.GET("/lead_events", s.listLeads)
	authed.GET("/lead_events/count", s.countLeads)
	authed.POST("/lead_events", s.createLead)

	authed.GET("/purchase_events", s.listPurchases)
	authed.GET("/purchase_events/count", s.countPurchases)
	authed.POST("/purchase_events", s.createPurchase)

	authed.GET("/events/stats", s.eventStats)

	authed.GET("/pixel_credentials", s.getCredentials)
	authed.PUT("/pixel_credentials", s.upsertCredentials)

	authed.GET("/webhooks", s.listWebhooks)
	authed.POST("/webhooks", s.createWebhook)

	authed.POST("/exports/purchase_events", s.exportPurchases)

	return router
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
