// Package keepalive pings the service's own public address on an interval
// so free-tier hosts do not put the process to sleep.
package keepalive

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type Pinger struct {
	domain   string
	interval time.Duration
	client   *http.Client
}

func New(domain string, interval time.Duration) *Pinger {
	return &Pinger{
		domain:   domain,
		interval: interval,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Run pings until ctx is cancelled. It never retries a failed ping; the next
// tick is attempt enough.
func (p *Pinger) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ping(ctx)
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	url := fmt.Sprintf("http://%s/healthcheck", p.domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Warn("keepalive: build request", "error", err)
		return
	}

	resp, err := p.client.Do(req)
	if err != nil {
		slog.Warn("keepalive: ping failed", "url", url, "error", err)
		return
	}
	defer resp.Body.Close()

	slog.Info("keepalive: ping", "url", url, "status", resp.StatusCode)
}
