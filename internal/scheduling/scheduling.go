package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/domain"
)

// Checker answers whether a proposed fulfillment slot is available. The
// collaborator is opaque beyond accept/reject.
type Checker interface {
	CheckAvailability(ctx context.Context, date time.Time) error
}

// HTTPChecker asks an external scheduling service. Calls carry a bounded
// timeout so a slow collaborator fails the request instead of hanging it.
type HTTPChecker struct {
	baseURL string
	client  *http.Client
}

func NewHTTPChecker(baseURL string, timeout time.Duration) *HTTPChecker {
	return &HTTPChecker{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPChecker) CheckAvailability(ctx context.Context, date time.Time) error {
	url := fmt.Sprintf("%s/availability?date=%s", c.baseURL, date.UTC().Format(time.RFC3339))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &domain.DependencyError{Op: "scheduling.check", Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.DependencyError{Op: "scheduling.check", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &domain.DependencyError{Op: "scheduling.check", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var result struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &domain.DependencyError{Op: "scheduling.check", Err: err}
	}
	if !result.Available {
		return &domain.SchedulingConflictError{Date: date}
	}
	return nil
}

// AlwaysAvailable accepts every slot. Used when no scheduling service is
// configured and by tests.
type AlwaysAvailable struct{}

func (AlwaysAvailable) CheckAvailability(context.Context, time.Time) error {
	return nil
}
