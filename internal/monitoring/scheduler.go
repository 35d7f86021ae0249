package monitoring

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/edu2job/edu2job-server/internal/metrics"
)

// DefaultPingTimeout bounds a single keep-warm request. Cold starts of the
// inference service are slow, so this matches the prediction timeout.
const DefaultPingTimeout = 30 * time.Second

// Scheduler periodically pings the prediction service so it stays warm.
type Scheduler struct {
	url     string
	timeout time.Duration
	client  *http.Client
	metrics *metrics.Metrics
	cron    *cron.Cron
}

// NewScheduler creates a keep-warm scheduler for a standard 5-field cron spec.
func NewScheduler(spec, url string, timeout time.Duration, m *metrics.Metrics) (*Scheduler, error) {
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}
	s := &Scheduler{
		url:     url,
		timeout: timeout,
		client:  &http.Client{},
		metrics: m,
		cron:    cron.New(),
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid keep-warm schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	log.Info().Str("url", s.url).Msg("Starting keep-warm scheduler")
	s.cron.Start()
}

// Stop halts the scheduler and returns a context that is done once any
// running ping has finished.
func (s *Scheduler) Stop() context.Context {
	log.Info().Msg("Stopping keep-warm scheduler")
	return s.cron.Stop()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("url", s.url).Msg("Keep-warm ping failed")
		s.metrics.SetUpstreamUp(false)
		return
	}
	s.metrics.SetUpstreamUp(true)
}

// Ping issues one GET to the keep-warm URL. Any response below 500 counts as
// reachable, since the endpoint may not accept GET.
func (s *Scheduler) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("keep-warm endpoint responded with status %d", resp.StatusCode)
	}

	log.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("Keep-warm ping succeeded")
	return nil
}
