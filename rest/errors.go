package rest

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrForbidden           = errors.New("forbidden: no access code or restricted region")
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("conflict")
	ErrBusinessLogic       = errors.New("business logic error")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrInternal            = errors.New("internal server error")
	ErrUnavailable         = errors.New("service unavailable")
	ErrGatewayTimeout      = errors.New("gateway timeout")
	ErrInvalidResponse     = errors.New("invalid api response")
	ErrSignerNotConfigured = errors.New("signer required for authenticated requests")
)

var statusKinds = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusUnprocessableEntity: ErrBusinessLogic,
	http.StatusTooManyRequests:     ErrRateLimited,
	http.StatusInternalServerError: ErrInternal,
	http.StatusServiceUnavailable:  ErrUnavailable,
	http.StatusGatewayTimeout:      ErrGatewayTimeout,
}

// APIError is a failed response. errors.Is matches it against the sentinel
// for its status code, e.g. ErrRateLimited for 429.
type APIError struct {
	StatusCode int
	Code       *int
	Message    string
	Body       []byte
}

func newAPIError(status int, message string, code *int, body []byte) *APIError {
	if message == "" {
		message = http.StatusText(status)
	}
	if status == http.StatusUnprocessableEntity && code != nil {
		message = BusinessCode(*code).String()
	}
	return &APIError{StatusCode: status, Code: code, Message: message, Body: body}
}

func (e *APIError) Error() string {
	if e.Code != nil {
		return fmt.Sprintf("pacifica api error %d (code %d): %s", e.StatusCode, *e.Code, e.Message)
	}
	return fmt.Sprintf("pacifica api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return statusKinds[e.StatusCode]
}

// IsRetryable returns true if the error should trigger a retry.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// BusinessCode returns the business logic code of a 422 response.
func (e *APIError) BusinessCode() (BusinessCode, bool) {
	if e.StatusCode != http.StatusUnprocessableEntity || e.Code == nil {
		return 0, false
	}
	return BusinessCode(*e.Code), true
}

type BusinessCode int

const (
	BusinessCodeUnknown BusinessCode = iota
	BusinessCodeAccountNotFound
	BusinessCodeBookNotFound
	BusinessCodeInvalidTickLevel
	BusinessCodeInsufficientBalance
	BusinessCodeOrderNotFound
	BusinessCodeOverWithdrawal
	BusinessCodeInvalidLeverage
	BusinessCodeCannotUpdateMargin
	BusinessCodePositionNotFound
	BusinessCodePositionTPSLLimitExceeded
)

var businessMessages = map[BusinessCode]string{
	BusinessCodeUnknown:                   "Unknown error",
	BusinessCodeAccountNotFound:           "Account not found",
	BusinessCodeBookNotFound:              "Order book not found",
	BusinessCodeInvalidTickLevel:          "Invalid tick level",
	BusinessCodeInsufficientBalance:       "Insufficient balance",
	BusinessCodeOrderNotFound:             "Order not found",
	BusinessCodeOverWithdrawal:            "Withdrawal amount exceeds available balance",
	BusinessCodeInvalidLeverage:           "Invalid leverage",
	BusinessCodeCannotUpdateMargin:        "Cannot update margin",
	BusinessCodePositionNotFound:          "Position not found",
	BusinessCodePositionTPSLLimitExceeded: "Position TP/SL limit exceeded",
}

func (c BusinessCode) String() string {
	if msg, ok := businessMessages[c]; ok {
		return msg
	}
	return fmt.Sprintf("Unknown business logic error (code: %d)", int(c))
}
