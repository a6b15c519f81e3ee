package instrument

import "fmt"

// Common error codes.
const (
	ErrCodeConfigure   = "CONFIGURE_FAILED"
	ErrCodeAcquire     = "ACQUIRE_FAILED"
	ErrCodeTimeout     = "TIMEOUT"
	ErrCodeUnsupported = "UNSUPPORTED"
)

// Error represents an instrument-related failure at one frequency point.
type Error struct {
	Op      string  `json:"op"`
	FreqHz  float64 `json:"freq_hz"`
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Cause   error   `json:"-"`
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s at %g Hz [%s]: %s", e.Op, e.FreqHz, e.Code, e.Message)
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new instrument error.
func NewError(op string, freqHz float64, code, message string, cause error) *Error {
	return &Error{
		Op:      op,
		FreqHz:  freqHz,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
