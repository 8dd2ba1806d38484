package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Status is the closed set of lifecycle states a task can be in.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every allowed status value, in declaration order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Field length bounds, counted in characters, not bytes.
const (
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
)

// Task represents a tracked unit of work.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// Validate checks every field constraint and reports all violations at once,
// so a caller can fix the whole payload in a single round trip.
func (t *Task) Validate() error {
	var v ValidationError
	checkTitle(&v, t.Title)
	checkDescription(&v, t.Description)
	checkStatus(&v, t.Status)
	return v.orNil()
}

// ValidateStatus checks a standalone status value, as supplied to the
// status-update and filter operations.
func ValidateStatus(s Status) error {
	var v ValidationError
	checkStatus(&v, s)
	return v.orNil()
}

// TaskPatch carries a partial update. A nil field was absent from the request
// and must be left untouched; a non-nil pointer to a zero value is still an
// explicit assignment.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *Status
}

// Empty reports whether the patch carries no fields at all.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// Validate checks only the fields the patch actually carries.
func (p TaskPatch) Validate() error {
	var v ValidationError
	if p.Title != nil {
		checkTitle(&v, *p.Title)
	}
	if p.Description != nil {
		checkDescription(&v, *p.Description)
	}
	if p.Status != nil {
		checkStatus(&v, *p.Status)
	}
	return v.orNil()
}

// Apply merges the supplied fields into task, leaving absent fields alone.
// ID and CreatedAt are never touched.
func (p TaskPatch) Apply(task *Task) {
	if task == nil {
		return
	}
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Status != nil {
		task.Status = *p.Status
	}
}

func checkTitle(v *ValidationError, title string) {
	length := utf8.RuneCountInString(title)
	switch {
	case length == 0:
		v.add("title", "must not be empty")
	case length > TitleMaxLen:
		v.add("title", fmt.Sprintf("must be at most %d characters", TitleMaxLen))
	}
}

func checkDescription(v *ValidationError, description string) {
	if utf8.RuneCountInString(description) > DescriptionMaxLen {
		v.add("description", fmt.Sprintf("must be at most %d characters", DescriptionMaxLen))
	}
}

func checkStatus(v *ValidationError, status Status) {
	if !status.Valid() {
		v.add("status", fmt.Sprintf("%q is not one of %s", status, allowedStatuses()))
	}
}

func allowedStatuses() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
