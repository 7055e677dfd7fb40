// Package respond writes JSON responses and sanitized JSON errors.
// Internal error details never reach the client; they are logged and
// replaced with a generic message.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent, nothing left to do but log.
			slog.Default().Error("encode response failed",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes the error message verbatim as a JSON error response.
// Use SafeError unless the message is known to be client-safe.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// safeFragments are substrings that mark an error message as a validation
// outcome a client may see. Anything else is treated as internal.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"cannot be",
	"too long",
	"too short",
}

// SafeError writes an error response, passing validation-style messages
// through and masking everything else as "internal server error". Codes
// of 500 and above always mask.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			slog.Default().Error("application error",
				slog.Int("code", appErr.Code),
				slog.String("user_message", appErr.UserMsg),
				slog.Any("error", appErr.Err))
		}
		JSON(w, appErr.Code, map[string]string{"error": appErr.UserMsg})
		return
	}

	msg := err.Error()
	safe := false
	lower := strings.ToLower(msg)
	for _, frag := range safeFragments {
		if strings.Contains(lower, frag) {
			safe = true
			break
		}
	}
	if code >= 500 {
		safe = false
	}

	if !safe {
		slog.Default().Error("internal server error",
			slog.Int("code", code),
			slog.Any("error", err))
		msg = "internal server error"
	}
	JSON(w, code, map[string]string{"error": msg})
}

// AppError pairs an internal error with the message the client should see.
type AppError struct {
	UserMsg string
	Err     error
	Code    int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError builds an AppError with the given status code, user-facing
// message and internal cause.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}
