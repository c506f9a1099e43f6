package types

import "fmt"

// Codes carried by venue error frames.
const (
	WSCodeSuccess           = 200
	WSCodeInvalidRequest    = 400
	WSCodeInvalidSignature  = 401
	WSCodeInvalidSigner     = 402
	WSCodeUnauthorized      = 403
	WSCodeEngineError       = 420
	WSCodeRateLimitExceeded = 429
	WSCodeUnknownError      = 500
)

// VenueError is an error reported by the venue on the `error` channel. It
// is delivered as its own event, never mixed with transport errors.
type VenueError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e VenueError) Error() string {
	return fmt.Sprintf("pacifica error %d: %s", e.Code, e.Message)
}

// Retryable reports whether resending the same request may succeed.
func (e VenueError) Retryable() bool {
	return e.Code == WSCodeRateLimitExceeded || e.Code == WSCodeEngineError || e.Code >= 500
}
