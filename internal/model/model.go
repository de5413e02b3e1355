package model

import "time"

// User identifies a tracker account referenced by an issue, either as the
// author or as the current assignee.
type User struct {
	Login string `yaml:"login"`
	Name  string `yaml:"name"`
	Mail  string `yaml:"mail"`
}

// IssueStatus is the workflow state of an issue.
type IssueStatus struct {
	Name   string `yaml:"name"`
	Closed bool   `yaml:"closed"`
}

// FixedVersion is the release version an issue is targeted at. Its dates act
// as a fallback when the issue carries none of its own.
type FixedVersion struct {
	Name      string     `yaml:"name"`
	StartDate *time.Time `yaml:"start_date"`
	DueDate   *time.Time `yaml:"due_date"`
}

// TimeOverride carries optional per-issue begin/end clock times ("HH:MM").
// Empty fields fall back to 00:00 (begin) and 24:00 (end).
type TimeOverride struct {
	Begin string `yaml:"begin"`
	End   string `yaml:"end"`
}

// Issue is a read-only tracker issue as supplied by the query layer.
type Issue struct {
	ID          int    `yaml:"id"`
	ProjectID   int    `yaml:"project_id"`
	ProjectName string `yaml:"project_name"`
	Tracker     string `yaml:"tracker"`
	Subject     string `yaml:"subject"`
	Description string `yaml:"description"`

	StartDate *time.Time `yaml:"start_date"`
	DueDate   *time.Time `yaml:"due_date"`

	Status       IssueStatus   `yaml:"status"`
	AssignedTo   *User         `yaml:"assigned_to"`
	Author       User          `yaml:"author"`
	FixedVersion *FixedVersion `yaml:"fixed_version"`
	Category     string        `yaml:"category"`

	// PriorityPosition is the 1-based position of the issue's priority within
	// the deployment's ordered priority scale (1 = lowest urgency).
	PriorityPosition int    `yaml:"priority_position"`
	PriorityName     string `yaml:"priority_name"`

	// DoneRatio is the completion percentage, 0-100.
	DoneRatio int `yaml:"done_ratio"`

	CreatedOn time.Time  `yaml:"created_on"`
	UpdatedOn *time.Time `yaml:"updated_on"`

	// LockVersion is the optimistic-locking revision counter; it increases on
	// every update and feeds the calendar SEQUENCE property.
	LockVersion int `yaml:"lock_version"`
}

// Closed reports whether the issue is in a closed workflow state.
func (i Issue) Closed() bool {
	return i.Status.Closed
}

// Version is a read-only release version as supplied by the query layer.
type Version struct {
	ID          int    `yaml:"id"`
	ProjectID   int    `yaml:"project_id"`
	ProjectName string `yaml:"project_name"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	StartDate *time.Time `yaml:"start_date"`
	DueDate   *time.Time `yaml:"due_date"`

	// Status is the raw status text, e.g. "open", "locked" or "closed".
	Status string `yaml:"status"`

	// Sharing marks cross-project visibility; "system" versions are visible
	// from every project.
	Sharing string `yaml:"sharing"`

	CompletedPercent int `yaml:"completed_percent"`

	CreatedOn time.Time  `yaml:"created_on"`
	UpdatedOn *time.Time `yaml:"updated_on"`
}

// Closed reports whether the version has been closed.
func (v Version) Closed() bool {
	return v.Status == "closed"
}
