package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/obelousov/pixelboard/internal/client/models"
	"github.com/obelousov/pixelboard/internal/common"
)

const requestTimeout = 15 * time.Second

// HTTPClient talks JSON to the data service. Token acquisition and renewal
// are handled by the underlying authTransport.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http: &http.Client{
			Transport: newAuthTransport(nil, baseURL, apiKey),
			Timeout:   requestTimeout,
		},
	}
}

// wireUser mirrors the server's user row, password hash included. It is
// mapped to models.User at the package boundary so the hash never travels
// further than credential verification.
type wireUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (w *wireUser) toModel() *models.User {
	return &models.User{
		ID:           w.ID,
		Email:        w.Email,
		Name:         w.Name,
		PasswordHash: w.PasswordHash,
		CreatedAt:    w.CreatedAt,
	}
}

// doJSON performs one request/response pair, mapping error statuses to the
// shared sentinels. A nil out skips response decoding.
func (c *HTTPClient) doJSON(ctx context.Context, method string, path string, query url.Values, in any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	var body *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("request encode error: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("request build error: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrorNotFound
	case resp.StatusCode == http.StatusConflict:
		return common.ErrorAlreadyExists
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrorUnauthorized
	default:
		return fmt.Errorf("unexpected status %d: %w", resp.StatusCode, common.ErrorInternal)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("response decode error: %w", err)
	}
	return nil
}

func (c *HTTPClient) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var resp struct {
		Users []*wireUser `json:"users"`
	}

	query := url.Values{"email": {email}}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/users", query, nil, &resp); err != nil {
		return nil, err
	}

	switch len(resp.Users) {
	case 0:
		return nil, common.ErrorNotFound
	case 1:
		return resp.Users[0].toModel(), nil
	default:
		return nil, common.ErrAmbiguousMatch
	}
}

func (c *HTTPClient) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user wireUser
	if err := c.doJSON(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(id), nil, nil, &user); err != nil {
		return nil, err
	}
	return user.toModel(), nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, email string, name string, passwordHash string) (*models.User, error) {
	payload := map[string]string{
		"email":         email,
		"name":          name,
		"password_hash": passwordHash,
	}

	var user wireUser
	if err := c.doJSON(ctx, http.MethodPost, "/v1/users", nil, payload, &user); err != nil {
		return nil, err
	}
	return user.toModel(), nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id string, email *string, name *string, passwordHash *string) (*models.User, error) {
	payload := map[string]any{}
	if email != nil {
		payload["email"] = *email
	}
	if name != nil {
		payload["name"] = *name
	}
	if passwordHash != nil {
		payload["password_hash"] = *passwordHash
	}

	var user wireUser
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/users/"+url.PathEscape(id), nil, payload, &user); err != nil {
		return nil, err
	}
	return user.toModel(), nil
}

func eventQueryValues(status string, from time.Time, to time.Time, limit int, offset int) url.Values {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	if !from.IsZero() {
		query.Set("from", from.Format(time.RFC3339))
	}
	if !to.IsZero() {
		query.Set("to", to.Format(time.RFC3339))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	return query
}

func (c *HTTPClient) CountLeadEvents(ctx context.Context, from time.Time, to time.Time) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}

	query := eventQueryValues("", from, to, 0, 0)
	if err := c.doJSON(ctx, http.MethodGet, "/v1/lead_events/count", query, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *HTTPClient) CountPurchaseEvents(ctx context.Context, status string, from time.Time, to time.Time) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}

	query := eventQueryValues(status, from, to, 0, 0)
	if err := c.doJSON(ctx, http.MethodGet, "/v1/purchase_events/count", query, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *HTTPClient) ListLeadEvents(ctx context.Context, q *models.EventQuery) (*models.LeadEventPage, error) {
	var resp struct {
		Events []*models.LeadEvent `json:"events"`
		Total  int64               `json:"total"`
	}

	query := eventQueryValues("", q.From, q.To, q.Limit, q.Offset)
	if err := c.doJSON(ctx, http.MethodGet, "/v1/lead_events", query, nil, &resp); err != nil {
		return nil, err
	}
	return &models.LeadEventPage{Events: resp.Events, Total: resp.Total}, nil
}

func (c *HTTPClient) ListPurchaseEvents(ctx context.Context, q *models.EventQuery) (*models.PurchaseEventPage, error) {
	var resp struct {
		Events []*models.PurchaseEvent `json:"events"`
		Total  int64                   `json:"total"`
	}

	query := eventQueryValues(q.Status, q.From, q.To, q.Limit, q.Offset)
	if err := c.doJSON(ctx, http.MethodGet, "/v1/purchase_events", query, nil, &resp); err != nil {
		return nil, err
	}
	return &models.PurchaseEventPage{Events: resp.Events, Total: resp.Total}, nil
}

func (c *HTTPClient) GetEventStats(ctx context.Context, from time.Time, to time.Time) (*models.EventStats, error) {
	var stats models.EventStats

	query := eventQueryValues("", from, to, 0, 0)
	if err := c.doJSON(ctx, http.MethodGet, "/v1/events/stats", query, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *HTTPClient) GetPixelCredentials(ctx context.Context) (*models.PixelCredential, error) {
	var cred models.PixelCredential
	if err := c.doJSON(ctx, http.MethodGet, "/v1/pixel_credentials", nil, nil, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (c *HTTPClient) ListWebhooks(ctx context.Context) ([]*models.Webhook, error) {
	var resp struct {
		Webhooks []*models.Webhook `json:"webhooks"`
	}

	if err := c.doJSON(ctx, http.MethodGet, "/v1/webhooks", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Webhooks, nil
}

func (c *HTTPClient) RequestEventsExport(ctx context.Context, q *models.EventQuery) (string, error) {
	payload := map[string]any{"status": q.Status}
	if !q.From.IsZero() {
		payload["from"] = q.From.Format(time.RFC3339)
	}
	if !q.To.IsZero() {
		payload["to"] = q.To.Format(time.RFC3339)
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/exports/purchase_events", nil, payload, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}

	// healthz is unauthenticated, skip the auth transport
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("ping error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping failed: status %d", resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
