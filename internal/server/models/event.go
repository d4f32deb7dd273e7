package models

import "time"

// Purchase event statuses as reported by the conversion pipeline.
const (
	EventStatusPending = "pending"
	EventStatusSuccess = "success"
	EventStatusFailed  = "failed"
)

// LeadEvent is a single click-to-WhatsApp lead captured by the pixel.
type LeadEvent struct {
	ID          string    `json:"id"`
	PixelID     string    `json:"pixel_id"`
	PageID      string    `json:"page_id"`
	PhoneNumber string    `json:"phone_number"`
	ClickID     string    `json:"click_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// PurchaseEvent is a conversion event forwarded to the Meta API.
type PurchaseEvent struct {
	ID           string    `json:"id"`
	PixelID      string    `json:"pixel_id"`
	CustomerName string    `json:"customer_name"`
	FBTraceID    string    `json:"fb_trace_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// EventFilter narrows event listings and counts.
// Zero time bounds and an empty status mean "no restriction".
type EventFilter struct {
	Status string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}
