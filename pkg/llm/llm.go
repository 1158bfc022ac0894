package llm

import (
	"context"
	"fmt"
	"time"
)

// DefaultTimeout bounds one reasoning-service round trip.
const DefaultTimeout = 60 * time.Second

// LLM is a synchronous chat round trip to a reasoning service.
type LLM interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// ServiceError covers transport-level failures: timeouts, non-2xx
// responses, auth rejections. Distinct from a reply that arrived but
// could not be parsed.
type ServiceError struct {
	Provider string
	Status   int // HTTP status, 0 when the request never completed
	Message  string
	Err      error
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
