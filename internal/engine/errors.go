package engine

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is through an EngineError's cause.
var (
	ErrBrowserNotFound = errors.New("chrome browser not found")
	ErrBrowserStart    = errors.New("browser failed to start")
	ErrTimeout         = errors.New("request timeout")
	ErrInvalidURL      = errors.New("invalid URL")
	ErrNavigation      = errors.New("navigation failed")
	ErrNetworkError    = errors.New("network error")
	ErrParseError      = errors.New("failed to parse response")
)

// ErrorCode classifies a fetch failure for logs.
type ErrorCode string

const (
	ErrCodeNavigation   ErrorCode = "NAVIGATION"
	ErrCodeTimeout      ErrorCode = "TIMEOUT"
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeBrowserStart ErrorCode = "BROWSER_START"
	ErrCodeNetworkError ErrorCode = "NETWORK_ERROR"
	ErrCodeParseError   ErrorCode = "PARSE_ERROR"
)

// EngineError is the error every fetcher returns. A failed page is dropped
// from the level; only IsFatal errors stop the run.
type EngineError struct {
	Code       ErrorCode
	URL        string
	Message    string
	Underlying error
	Details    map[string]interface{}
}

func (e *EngineError) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.URL != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.URL)
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is matches another *EngineError by code, anything else through the cause.
func (e *EngineError) Is(target error) bool {
	if t, ok := target.(*EngineError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

func NewEngineError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:       code,
		Message:    message,
		Underlying: err,
		Details:    make(map[string]interface{}),
	}
}

// ForURL records the page the error belongs to.
func (e *EngineError) ForURL(u string) *EngineError {
	e.URL = u
	return e
}

func (e *EngineError) WithDetail(key string, value interface{}) *EngineError {
	e.Details[key] = value
	return e
}

// CodeOf returns the code of the first EngineError in err's chain, or ""
// when there is none.
func CodeOf(err error) ErrorCode {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}

// IsFatal reports whether err means the fetch backend cannot work at all,
// as opposed to a single page failing.
func IsFatal(err error) bool {
	return errors.Is(err, ErrBrowserNotFound) || errors.Is(err, ErrBrowserStart)
}
