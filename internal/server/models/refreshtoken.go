package models

import "time"

// RefreshToken is an opaque stored token exchangeable for a new token pair.
type RefreshToken struct {
	Token   string
	Expires time.Time
}
