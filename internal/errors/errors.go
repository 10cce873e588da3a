package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNoPlayer        = errors.New("no player selected")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrNoSyncTarget    = errors.New("sync target required")
	ErrSyncRefRequired = errors.New("sync target reference required")
	ErrServerDown      = errors.New("server unreachable")
	ErrConfigNotFound  = errors.New("config file not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// SlimError wraps an error with a user-friendly suggestion.
type SlimError struct {
	Err        error
	Suggestion string
}

func (e *SlimError) Error() string {
	return e.Err.Error()
}

func (e *SlimError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &SlimError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's already a SlimError with suggestion
	var slimErr *SlimError
	if errors.As(err, &slimErr) && slimErr.Suggestion != "" {
		return slimErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Player selection errors
	if errors.Is(err, ErrNoPlayer) {
		return "Pass --player, or set defaults.player with 'slimctl config set-player'"
	}

	if errors.Is(err, ErrPlayerNotFound) || strings.Contains(errStr, "player not found") {
		return "Run 'slimctl players' to see the players the server knows about"
	}

	// Sync errors
	if errors.Is(err, ErrNoSyncTarget) || errors.Is(err, ErrSyncRefRequired) {
		return "Name the player to sync with: a reference from 'slimctl players', or an index when acting as master"
	}

	// Transport errors
	if errors.Is(err, ErrServerDown) || strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return "Check server.host and server.port in your config; is the media server running?"
	}

	// Config errors
	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) ||
		strings.Contains(errStr, "config") {
		return "Run 'slimctl config init' to write a starter configuration"
	}

	// Server-side errors
	if strings.Contains(errStr, "status 5") || strings.Contains(errStr, "server error") {
		return "The media server had an internal problem. Check its log and try again"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
