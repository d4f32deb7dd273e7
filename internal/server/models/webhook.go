package models

import "time"

// Webhook is an inbound webhook endpoint registered for event delivery.
type Webhook struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
