package repository

import (
	"context"
	"strings"
	"sync"
	"time"
)

// StorageMonitor tracks the outcome of repository operations
type StorageMonitor struct {
	mu                   sync.RWMutex
	total                int64
	failed               int64
	consecutiveFailures  int64
	lastFailure          time.Time
	lastSuccess          time.Time
	recentFailures       []FailureRecord
	maxRecentFailures    int
	failureThreshold     float64
	consecutiveThreshold int64
	now                  func() time.Time
}

// FailureRecord is one failed repository operation
type FailureRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Operation string    `json:"operation"`
	UserID    string    `json:"user_id"`
	Error     string    `json:"error"`
}

// HealthStatus summarizes recent storage behaviour
type HealthStatus struct {
	IsHealthy           bool            `json:"is_healthy"`
	TotalOperations     int64           `json:"total_operations"`
	FailedOperations    int64           `json:"failed_operations"`
	SuccessRate         float64         `json:"success_rate"`
	ConsecutiveFailures int64           `json:"consecutive_failures"`
	LastFailureTime     *time.Time      `json:"last_failure_time,omitempty"`
	LastSuccessTime     *time.Time      `json:"last_success_time,omitempty"`
	RecentFailures      []FailureRecord `json:"recent_failures"`
	HealthIssues        []string        `json:"health_issues"`
}

// NewStorageMonitor creates a monitor that flags more than 20% failures
// (after 10 operations) or 5 failures in a row
func NewStorageMonitor() *StorageMonitor {
	return &StorageMonitor{
		maxRecentFailures:    20,
		failureThreshold:     0.2,
		consecutiveThreshold: 5,
		recentFailures:       make([]FailureRecord, 0, 20),
		now:                  time.Now,
	}
}

func (m *StorageMonitor) record(op, userID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.total++
	if err == nil {
		m.consecutiveFailures = 0
		m.lastSuccess = now
		return
	}

	m.failed++
	m.consecutiveFailures++
	m.lastFailure = now
	m.recentFailures = append(m.recentFailures, FailureRecord{
		Timestamp: now,
		Operation: op,
		UserID:    userID,
		Error:     err.Error(),
	})
	if len(m.recentFailures) > m.maxRecentFailures {
		m.recentFailures = m.recentFailures[1:]
	}
}

// Status returns a snapshot of the counters and any detected issues
func (m *StorageMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := HealthStatus{
		IsHealthy:           true,
		TotalOperations:     m.total,
		FailedOperations:    m.failed,
		SuccessRate:         1.0,
		ConsecutiveFailures: m.consecutiveFailures,
		RecentFailures:      append([]FailureRecord{}, m.recentFailures...),
		HealthIssues:        []string{},
	}
	if m.total > 0 {
		status.SuccessRate = float64(m.total-m.failed) / float64(m.total)
	}
	if !m.lastFailure.IsZero() {
		t := m.lastFailure
		status.LastFailureTime = &t
	}
	if !m.lastSuccess.IsZero() {
		t := m.lastSuccess
		status.LastSuccessTime = &t
	}

	if m.total >= 10 && status.SuccessRate < 1.0-m.failureThreshold {
		status.IsHealthy = false
		status.HealthIssues = append(status.HealthIssues, "High storage failure rate")
	}
	if m.consecutiveFailures >= m.consecutiveThreshold {
		status.IsHealthy = false
		status.HealthIssues = append(status.HealthIssues, "Consecutive storage failures")
	}
	if issue := dominantFailure(m.recentFailures); issue != "" {
		status.HealthIssues = append(status.HealthIssues, issue)
	}
	return status
}

// dominantFailure names the error category behind most recent failures
func dominantFailure(failures []FailureRecord) string {
	if len(failures) < 3 {
		return ""
	}
	counts := make(map[string]int)
	for _, f := range failures {
		counts[categorizeError(f.Error)]++
	}
	for category, count := range counts {
		if float64(count)/float64(len(failures)) <= 0.5 {
			continue
		}
		switch category {
		case "timeout":
			return "Frequent storage timeouts"
		case "connection":
			return "Storage connectivity issues"
		case "encoding":
			return "Workspace data cannot be encoded"
		}
	}
	return ""
}

func categorizeError(msg string) string {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return "timeout"
	case strings.Contains(msg, "connection"), strings.Contains(msg, "network"), strings.Contains(msg, "dial"):
		return "connection"
	case strings.Contains(msg, "encode"), strings.Contains(msg, "json"):
		return "encoding"
	}
	return "other"
}

// Reset clears all counters
func (m *StorageMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = 0
	m.failed = 0
	m.consecutiveFailures = 0
	m.lastFailure = time.Time{}
	m.lastSuccess = time.Time{}
	m.recentFailures = m.recentFailures[:0]
}

// MonitoredRepository records every operation of the wrapped repository
type MonitoredRepository struct {
	next    WorkspaceRepository
	monitor *StorageMonitor
}

// NewMonitoredRepository wraps next so each call is recorded on monitor
func NewMonitoredRepository(next WorkspaceRepository, monitor *StorageMonitor) *MonitoredRepository {
	return &MonitoredRepository{next: next, monitor: monitor}
}

func (r *MonitoredRepository) Load(ctx context.Context, userID string) (Snapshot, error) {
	snap, err := r.next.Load(ctx, userID)
	r.monitor.record("load", userID, err)
	return snap, err
}

func (r *MonitoredRepository) Save(ctx context.Context, userID string, snap Snapshot) error {
	err := r.next.Save(ctx, userID, snap)
	r.monitor.record("save", userID, err)
	return err
}

func (r *MonitoredRepository) Delete(ctx context.Context, userID string) error {
	err := r.next.Delete(ctx, userID)
	r.monitor.record("delete", userID, err)
	return err
}
