package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CheckFunc probes one dependency. A nil return means healthy.
type CheckFunc func(ctx context.Context) error

type check struct {
	name     string
	critical bool
	fn       CheckFunc
}

// Monitor refreshes dependency health on a schedule and serves the latest
// snapshot to the health endpoint. Non-critical components (the cache) are
// reported but never mark the service degraded.
type Monitor struct {
	interval time.Duration
	logger   *zap.Logger
	cron     *cron.Cron

	mu     sync.RWMutex
	checks []check
	status Status
}

func New(interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Monitor{
		interval: interval,
		logger:   logger,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, _ = m.cron.AddFunc(schedule, m.refresh)

	return m
}

// Register adds a named dependency check. Critical checks gate the overall
// healthy flag. Register before Start.
func (m *Monitor) Register(name string, critical bool, fn CheckFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks = append(m.checks, check{name: name, critical: critical, fn: fn})
}

// Start runs an immediate refresh and launches the scheduler.
func (m *Monitor) Start() {
	m.refresh()
	m.cron.Start()
}

// Stop halts the scheduler, waiting for an in-flight refresh to finish.
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
}

// Healthy reports whether every critical dependency passed the last refresh.
func (m *Monitor) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Healthy
}

// GetStatus returns the most recent snapshot.
func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) refresh() {
	m.mu.RLock()
	checks := make([]check, len(m.checks))
	copy(checks, m.checks)
	m.mu.RUnlock()

	components := make(map[string]bool, len(checks))
	healthy := true
	for _, c := range checks {
		ok := m.run(c)
		components[c.name] = ok
		if c.critical && !ok {
			healthy = false
		}
	}

	m.mu.Lock()
	m.status = Status{
		Healthy:    healthy,
		Components: components,
		LastCheck:  time.Now(),
	}
	m.mu.Unlock()
}

func (m *Monitor) run(c check) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := c.fn(ctx); err != nil {
		m.logger.Warn("dependency check failed", zap.String("component", c.name), zap.Error(err))
		return false
	}
	return true
}
