// Package models defines the dashboard-side view of the rows served by the
// data service.
package models

import "time"

// User is the authenticated identity held by the session. PasswordHash is
// never serialized: the local snapshot and anything handed to the UI must
// not contain the secret.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserPatch is a partial user update. Nil fields are left untouched.
// Password is plain text and is hashed before it goes on the wire.
type UserPatch struct {
	Email    *string
	Name     *string
	Password []byte
}

// Empty reports whether the patch changes nothing.
func (p *UserPatch) Empty() bool {
	return p.Email == nil && p.Name == nil && len(p.Password) == 0
}

// LeadEvent is a captured click-to-WhatsApp lead as listed by the
// activity feed.
type LeadEvent struct {
	ID          string    `json:"id"`
	PixelID     string    `json:"pixel_id"`
	PageID      string    `json:"page_id"`
	PhoneNumber string    `json:"phone_number"`
	ClickID     string    `json:"click_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// LeadEventPage is one page of leads plus the exact total the filter
// matches.
type LeadEventPage struct {
	Events []*LeadEvent
	Total  int64
}

// PurchaseEvent is a conversion row as listed by the dashboard.
type PurchaseEvent struct {
	ID           string    `json:"id"`
	PixelID      string    `json:"pixel_id"`
	CustomerName string    `json:"customer_name"`
	FBTraceID    string    `json:"fb_trace_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// PurchaseEventPage is one page of purchase events plus the exact total the
// filter matches.
type PurchaseEventPage struct {
	Events []*PurchaseEvent
	Total  int64
}

// EventQuery narrows event counts and listings. Zero time bounds and an
// empty status mean "no restriction".
type EventQuery struct {
	Status string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// EventStats are the date-range counters the server aggregates for the
// overview screen.
type EventStats struct {
	Leads               int64 `json:"leads"`
	Conversions         int64 `json:"conversions"`
	FailedConversions   int64 `json:"failed_conversions"`
	PendingConversions  int64 `json:"pending_conversions"`
	CredentialsComplete bool  `json:"credentials_complete"`
}

// PixelCredential is the tenant's Meta pixel configuration.
type PixelCredential struct {
	ID              string    `json:"id"`
	PixelID         string    `json:"pixel_id"`
	AccessToken     string    `json:"access_token"`
	PageID          string    `json:"page_id"`
	InstructionLink string    `json:"instruction_link"`
	CreatedAt       time.Time `json:"created_at"`
}

// Configured reports whether the credential is complete enough to send
// conversion events.
func (c *PixelCredential) Configured() bool {
	return c != nil && c.PixelID != "" && c.AccessToken != ""
}

// Webhook is a registered inbound webhook endpoint.
type Webhook struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
