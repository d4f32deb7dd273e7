package common

// APIKeyHeaderName is the HTTP header used to present the service API key
// when exchanging it for a token pair.
const APIKeyHeaderName = "X-Api-Key"

// SnapshotKey is the fixed key in the local durable store under which the
// serialized identity of the signed-in user is kept.
const SnapshotKey = "session_user"

// Wire error codes carried in API error bodies. Both the server handlers and
// the dashboard client branch on these, so they live here.
const (
	CodeBadRequest   = "bad_request"
	CodeUnauthorized = "unauthorized"
	CodeTokenExpired = "token_expired"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeInternal     = "internal"
)
