package check

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/calebfornari/listerine/internal/monitor"
)

// URL builds an assertion that fetches rawURL and holds when the server
// answers with a non-error status. A 4xx/5xx answer or a transport error
// fails the assertion, with the detail captured for the notification
// body.
func URL(rawURL string, timeout time.Duration) monitor.Assertion {
	client := &http.Client{Timeout: timeout}
	return func(ctx context.Context) (bool, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return false, fmt.Errorf("building request for %s: %w", rawURL, err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return false, fmt.Errorf("fetching %s: %w", rawURL, err)
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode >= http.StatusBadRequest {
			return false, fmt.Errorf("%s answered %s", rawURL, resp.Status)
		}
		return true, nil
	}
}
