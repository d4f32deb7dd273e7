package models

import "time"

// PixelCredential holds the Meta pixel configuration of the tenant.
// The dashboard considers the integration configured when both PixelID and
// AccessToken are present.
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
