// Package domain contains the core business entities for planday.
// These entities represent the fundamental concepts of the daily planner
// and are independent of any external frameworks or infrastructure.
package domain

import (
	"errors"
	"strconv"
	"time"
)

// Common domain errors.
var (
	ErrEmptyTaskName   = errors.New("task name cannot be empty")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrInvalidPriority = errors.New("priority must be high, medium or low")
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
	ErrTaskNotFound    = errors.New("task not found")
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Priority classifies how urgent a task is. Lower rank sorts first.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of the priority: high=1, medium=2, low=3.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// Valid returns true if the priority is one of the known values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Label returns a human-readable label for the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// ParsePriority converts user input into a Priority.
// It accepts the canonical values and their labels, matching on the
// first letter ("h", "High", "high" all map to PriorityHigh).
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return "", ErrInvalidPriority
	}
	switch s[0] {
	case 'h', 'H':
		return PriorityHigh, nil
	case 'm', 'M':
		return PriorityMedium, nil
	case 'l', 'L':
		return PriorityLow, nil
	default:
		return "", ErrInvalidPriority
	}
}

// Task represents a single planned activity on a calendar date.
type Task struct {
	ID        string
	Name      string
	Priority  Priority
	Duration  int    // minutes
	Date      string // YYYY-MM-DD
	CreatedAt time.Time
}

// NewTask creates a validated task for the given date.
func NewTask(name string, priority Priority, duration int, date string) (*Task, error) {
	if name == "" {
		return nil, ErrEmptyTaskName
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	return &Task{
		ID:        generateID(),
		Name:      name,
		Priority:  priority,
		Duration:  duration,
		Date:      date,
		CreatedAt: time.Now(),
	}, nil
}

// ValidateDate checks that the string is a real calendar date in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// ParseDuration converts a user-supplied duration string into minutes.
func ParseDuration(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, ErrInvalidDuration
	}
	return n, nil
}
