package importer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Checker verifies that every registered source URL still answers, via
// periodic HEAD requests, and persists the results in the sources
// database. Redirects are recorded as-is, not followed.
type Checker struct {
	sources  *SourceDB
	logger   *slog.Logger
	interval time.Duration
	client   *http.Client
}

func NewChecker(sources *SourceDB, logger *slog.Logger, interval time.Duration) *Checker {
	return &Checker{
		sources:  sources,
		logger:   logger,
		interval: interval,
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Start checks immediately, then on every interval tick until ctx ends.
func (c *Checker) Start(ctx context.Context) {
	c.CheckAll(ctx)

	tick := time.NewTicker(c.interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			c.CheckAll(ctx)
		}
	}
}

// CheckAll runs one pass over every source.
func (c *Checker) CheckAll(ctx context.Context) {
	sources, err := c.sources.ListSources()
	if err != nil {
		c.logger.Error("source check: listing sources failed", "error", err)
		return
	}
	if len(sources) == 0 {
		return
	}

	ok := 0
	for _, src := range sources {
		if ctx.Err() != nil {
			return
		}
		if c.checkSource(ctx, src) {
			ok++
		}
	}
	c.logger.Info("source check complete", "total", len(sources), "ok", ok, "failed", len(sources)-ok)
}

// checkSource HEADs one source, persists the outcome, and reports
// whether the source is reachable (2xx or 3xx).
func (c *Checker) checkSource(ctx context.Context, src Source) bool {
	status, err := c.head(ctx, src.SourceURL)
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}

	if err := c.sources.UpdateCheck(src.AdapterID, status, errMsg); err != nil {
		c.logger.Error("source check: update failed", "adapter", src.AdapterID, "error", err)
	}

	if status >= 200 && status < 400 {
		return true
	}
	c.logger.Warn("source unreachable",
		"adapter", src.AdapterID,
		"url", src.SourceURL,
		"status", status,
		"error", errMsg,
	)
	return false
}

// head returns the response status, or 0 with an error when the
// request never completed.
func (c *Checker) head(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HEAD %s: %w", url, err)
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
