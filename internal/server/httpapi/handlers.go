package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/obelousov/pixelboard/internal/common"
	"github.com/obelousov/pixelboard/internal/server/models"
)

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) issueToken(c *gin.Context) {
	key := c.GetHeader(common.APIKeyHeaderName)
	if key == "" {
		writeError(c, http.StatusUnauthorized, common.CodeUnauthorized, "missing api key")
		return
	}

	pair, err := s.tokens.IssueFromAPIKey(c.Request.Context(), key)
	if err != nil {
		s.logger.Error(c.Request.Context(), "token issue failed", "error", err)
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) refreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, common.CodeBadRequest, "refresh_token is required")
		return
	}

	pair, err := s.tokens.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) listUsersByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		writeError(c, http.StatusBadRequest, common.CodeBadRequest, "email query parameter is required")
		return
	}

	users, err := s.users.ListByEmail(c.Request.Context(), email)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (s *Server) createUser(c *gin.Context) {
	var req struct {
		Email        string `json:"email" binding:"required"`
		Name         string `json:"name"`
		PasswordHash string `json:"password_hash" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, common.CodeBadRequest, "email and password_hash are required")
		return
	}

	user, err := s.users.Create(c.Request.Context(), &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: req.PasswordHash,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (s *Server) getUser(c *gin.Context) {
	user, err := s.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) updateUser(c *gin.Context) {
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, http.StatusBadRequest, common.CodeBadRequest, "invalid patch body")
		return
	}
	if patch.Empty() {
		writeError(c, http.StatusBadRequest, common.CodeBadRequest, "patch changes nothing")
		return
	}

	user, err := s.users.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// parseEventFilter reads the shared filter query parameters. Timestamps are
// RFC 3339.
func parseEventFilter(c *gin.Context) (*models.EventFilter, bool) {
	filter := &models.EventFilter{Status: c.Query("status")}

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(c, http.StatusBadRequest, common.CodeBadRequest, "from must be RFC 3339")
			return nil, false
		}
		filter.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(c, http.StatusBadRequest, common.CodeBadRequest, "to must be RFC 3339")
			return nil, false
		}
		filter.To = t
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(c, http.StatusBadRequest, common.CodeBadRequest, "limit must be a non-negative integer")
			return nil, false
		}
		filter.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(c, http.StatusBadRequest, common.CodeBadRequest, "offset must be a non-negative integer")
			return nil, false
		}
		filter.Offset = n
	}

	return filter, true
}

func (s *Server) countLeads(c *gin.Context) {
	filter, ok := parseEventFilter(c)
	if !ok {
		return
	}

	count, err := s.events.CountLeads(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) listLeads(c *gin.Context) {
	filter, ok := parseEventFilter(c)
	if !ok {
		return
	}

	events, total, err := s.events.ListLeads(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "total": total})
}

func (s *Server) createLead(c *gin.Context) {
	var event models.LeadEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		writeError(c, http.StatusBadRequest, common.CodeBadRequest, "invalid lead event body")
		return
	}

	created, err := s.events.CreateLead(c.Request.Context(), &event)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) countPurchases(c *gin.Context) {
	filter, ok := parseEventFilter(c)
	if !ok {
		return
	}

	count, err := s.events.CountPurchases(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) listPurchases(c *gin.Context) {
	filter, ok := parseEventFilter(c)
	if !ok {
		return
	}

	events, total, err := s.events.ListPurchases(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "total": total})
}

func (s *Server) createPurchase(c *gin.Context) {
	var event models.PurchaseEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		writeError(c, http.StatusBadRequest, common.CodeBadRequest, "invalid purchase event body")
		return
	}

	created, err := s.events.CreatePurchase(c.Request.Context(), &event)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) eventStats(c *gin.Context) {
	filter, ok := parseEventFilter(c)
	if !ok {
		return
	}

	stats, err := s.events.Stats(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) getCredentials(c *gin.Context) {
	cred, err := s.credentials.Get(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cred)
}

func (s *Server) upsertCredentials(c *gin.Context) {
	var cred models.PixelCredential
	if err := c.ShouldBindJSON(&cred); err != nil {
		writeError(c, http.StatusBadRequest, common.CodeBadRequest, "invalid credential body")
		return
	}

	saved, err := s.credentials.Upsert(c.Request.Context(), &cred)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

func (s *Server) listWebhooks(c *gin.Context) {
	hooks, err := s.webhooks.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"webhooks": hooks})
}

func (s *Server) createWebhook(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, common.CodeBadRequest, "url is required")
		return
	}

	hook, err := s.webhooks.Create(c.Request.Context(), &models.Webhook{URL: req.URL})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, hook)
}

func (s *Server) exportPurchases(c *gin.Context) {
	var filter models.EventFilter
	var req struct {
		Status string    `json:"status"`
		From   time.Time `json:"from"`
		To     time.Time `json:"to"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, common.CodeBadRequest, "invalid export request body")
		return
	}
	filter.Status = req.Status
	filter.From = req.From
	filter.To = req.To

	url, err := s.exports.ExportPurchaseEvents(c.Request.Context(), &filter)
	if err != nil {
		s.logger.Error(c.Request.Context(), "export failed", "error", err)
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
