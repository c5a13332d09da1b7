package monitoring

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Monitor tracks the outcome of the most recent extraction run. It is
// written from HTTP handlers and the scheduler, so access is locked.
type Monitor struct {
	mu             sync.Mutex
	lastRunSuccess bool
	lastRunTime    time.Time
	totalRuns      int
	totalFailures  int
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) RecordSuccess(summary string, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = true
	m.lastRunTime = time.Now()
	m.totalRuns++
	m.mu.Unlock()

	log.Printf("✅ Run completed successfully - %s (took %v)", summary, duration)
}

func (m *Monitor) RecordFailure(err error, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = false
	m.lastRunTime = time.Now()
	m.totalRuns++
	m.totalFailures++
	m.mu.Unlock()

	log.Printf("🚨 Run failed: %s (took %v)", err.Error(), duration)
}

func (m *Monitor) IsHealthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastRunTime.IsZero() {
		return true // No runs yet, assume healthy
	}
	return m.lastRunSuccess
}

func (m *Monitor) GetStatusSummary() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastRunTime.IsZero() {
		return "No runs yet"
	}

	when := m.lastRunTime.Format("Jan 2 15:04")
	if m.lastRunSuccess {
		return fmt.Sprintf("✅ Last run: %s (%d runs, %d failed)", when, m.totalRuns, m.totalFailures)
	}
	return fmt.Sprintf("❌ Last run failed: %s (%d runs, %d failed)", when, m.totalRuns, m.totalFailures)
}
