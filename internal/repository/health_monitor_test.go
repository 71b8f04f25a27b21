package repository

import (
	"context"
	"errors"
	"testing"
)

type flakyRepository struct {
	*MemoryRepository
	err error
}

func (r *flakyRepository) Save(ctx context.Context, userID string, snap Snapshot) error {
	if r.err != nil {
		return r.err
	}
	return r.MemoryRepository.Save(ctx, userID, snap)
}

func TestStorageMonitor_RecordsOperations(t *testing.T) {
	monitor := NewStorageMonitor()
	inner := &flakyRepository{MemoryRepository: NewMemoryRepository()}
	repo := NewMonitoredRepository(inner, monitor)
	ctx := context.Background()

	if !monitor.Status().IsHealthy {
		t.Error("Expected new monitor to be healthy")
	}

	if err := repo.Save(ctx, "u1", NewSnapshot()); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}
	if _, err := repo.Load(ctx, "u1"); err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}
	inner.err = errors.New("dial tcp: connection refused")
	if err := repo.Save(ctx, "u1", NewSnapshot()); err == nil {
		t.Fatal("Expected save to fail")
	}
	if err := repo.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Expected delete to succeed, got %v", err)
	}

	status := monitor.Status()
	if status.TotalOperations != 4 {
		t.Errorf("Expected 4 operations, got %d", status.TotalOperations)
	}
	if status.FailedOperations != 1 {
		t.Errorf("Expected 1 failed operation, got %d", status.FailedOperations)
	}
	if status.SuccessRate != 0.75 {
		t.Errorf("Expected 75%% success rate, got %.2f", status.SuccessRate)
	}
	if status.ConsecutiveFailures != 0 {
		t.Errorf("Expected consecutive failures to reset, got %d", status.ConsecutiveFailures)
	}
	if len(status.RecentFailures) != 1 || status.RecentFailures[0].Operation != "save" {
		t.Errorf("Expected one recorded save failure, got %+v", status.RecentFailures)
	}
}

func TestStorageMonitor_ConsecutiveFailures(t *testing.T) {
	monitor := NewStorageMonitor()
	for i := 0; i < 5; i++ {
		monitor.record("save", "u1", errors.New("connection reset by peer"))
	}

	status := monitor.Status()
	if status.IsHealthy {
		t.Error("Expected monitor to be unhealthy after consecutive failures")
	}
	found := false
	for _, issue := range status.HealthIssues {
		if issue == "Storage connectivity issues" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected connectivity issue, got %v", status.HealthIssues)
	}

	monitor.Reset()
	if !monitor.Status().IsHealthy {
		t.Error("Expected monitor to be healthy after reset")
	}
}

func TestStorageMonitor_FailureRate(t *testing.T) {
	monitor := NewStorageMonitor()
	for i := 0; i < 10; i++ {
		var err error
		if i%3 == 0 {
			err = errors.New("context deadline exceeded")
		}
		monitor.record("load", "u1", err)
	}

	status := monitor.Status()
	if status.IsHealthy {
		t.Errorf("Expected 40%% failures to be unhealthy, got success rate %.2f", status.SuccessRate)
	}
}

func TestCategorizeError(t *testing.T) {
	testCases := map[string]string{
		"context deadline exceeded":    "timeout",
		"dial tcp 127.0.0.1:5432":      "connection",
		"failed to encode leads: json": "encoding",
		"pq: duplicate key value":      "other",
	}
	for msg, expected := range testCases {
		if got := categorizeError(msg); got != expected {
			t.Errorf("categorizeError(%q): expected %s, got %s", msg, expected, got)
		}
	}
}
