package task

import (
	"math"
	"strings"
	"time"
)

type Status string

const (
	StatusPending Status = "Pending"
	StatusDone    Status = "Done"
)

type Task struct {
	ID          int64     `json:"id"`
	OwnerID     string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Stats summarises one owner's tasks for the dashboard.
type Stats struct {
	TotalTasks         int `json:"totalTasks"`
	PendingTasks       int `json:"pendingTasks"`
	ProgressPercentage int `json:"progressPercentage"`
}

// newStats rounds half to even, so 1 of 8 done reports 12.
func newStats(total, done int) Stats {
	s := Stats{TotalTasks: total, PendingTasks: total - done}
	if total > 0 {
		s.ProgressPercentage = int(math.RoundToEven(float64(done) * 100 / float64(total)))
	}
	return s
}

type QuickCreateInput struct {
	Title   string     `json:"title" validate:"notblank,max=200"`
	DueDate *time.Time `json:"dueDate"`
}

type UpdateInput struct {
	Title       string    `json:"title" validate:"notblank,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Status      Status    `json:"status" validate:"required,oneof=Pending Done"`
}

type Filter string

const (
	FilterDaily  Filter = "daily"
	FilterWeekly Filter = "weekly"
	FilterAll    Filter = "all"
)

// ParseFilter falls back to daily for anything it does not know.
func ParseFilter(s string) Filter {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterWeekly:
		return FilterWeekly
	case FilterAll:
		return FilterAll
	default:
		return FilterDaily
	}
}

// Window is an inclusive range of due dates.
type Window struct {
	From time.Time
	To   time.Time
}

// window returns the due-date range for f relative to today, or nil for all.
// Weeks start on Sunday.
func (f Filter) window(today time.Time) *Window {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	switch f {
	case FilterAll:
		return nil
	case FilterWeekly:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return &Window{From: start, To: start.AddDate(0, 0, 6)}
	default:
		return &Window{From: day, To: day}
	}
}
