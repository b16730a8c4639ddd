// Package notify watches task snapshots for arrived due dates.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jaydenyuan326/todo/internal/task"
)

// Alert reports one due or overdue task.
type Alert struct {
	ID          uuid.UUID
	Description string
	DueDate     time.Time
	Overdue     bool
}

// Scanner polls read-only snapshots on an interval and emits alerts
// over a channel. It never touches the live task list: the UI hands it
// fresh snapshots after each mutation, and findings travel back only
// through Alerts. One alert is emitted per task.
type Scanner struct {
	interval time.Duration
	logger   *log.Logger
	alerts   chan Alert
	now      func() time.Time

	mu      sync.Mutex
	records []task.Record

	seen map[uuid.UUID]bool
}

// New returns a scanner that checks every interval.
func New(interval time.Duration, logger *log.Logger) *Scanner {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scanner{
		interval: interval,
		logger:   logger,
		alerts:   make(chan Alert, 16),
		now:      time.Now,
		seen:     make(map[uuid.UUID]bool),
	}
}

// Alerts returns the channel findings are delivered on.
func (s *Scanner) Alerts() <-chan Alert {
	return s.alerts
}

// Update replaces the snapshot the scanner works from.
func (s *Scanner) Update(records []task.Record) {
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
}

// Run scans until ctx is cancelled.
func (s *Scanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.scan()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scan()
		}
	}
}

// scan emits an alert for each not-yet-notified task whose due date
// has arrived. Done tasks never alert.
func (s *Scanner) scan() {
	s.mu.Lock()
	records := s.records
	s.mu.Unlock()

	today := midnight(s.now())
	for _, rec := range records {
		if rec.DueDate == nil || rec.Column == task.ColumnDone || s.seen[rec.ID] {
			continue
		}
		due := midnight(*rec.DueDate)
		if due.After(today) {
			continue
		}

		alert := Alert{
			ID:          rec.ID,
			Description: rec.Description,
			DueDate:     due,
			Overdue:     due.Before(today),
		}
		select {
		case s.alerts <- alert:
			s.seen[rec.ID] = true
			if s.logger != nil {
				s.logger.Info("task due", "task", rec.Description, "due", rec.DueString(), "overdue", alert.Overdue)
			}
		default:
			// Channel full; retry on the next tick.
		}
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
