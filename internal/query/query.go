// Package query selects the issues and versions that participate in a render
// pass. The rendering engine never filters; everything it receives has
// already passed the selection rules applied here.
package query

import (
	"context"
	"fmt"

	"redmics/internal/model"
)

// StatusFilter selects items by workflow state.
type StatusFilter string

const (
	StatusOpen StatusFilter = "open"
	StatusAll  StatusFilter = "all"
)

// AssignmentFilter selects issues by assignee.
type AssignmentFilter string

const (
	AssignmentMy       AssignmentFilter = "my"
	AssignmentAssigned AssignmentFilter = "assigned"
	AssignmentAll      AssignmentFilter = "all"
)

func ParseStatusFilter(s string) (StatusFilter, error) {
	switch v := StatusFilter(s); v {
	case StatusOpen, StatusAll:
		return v, nil
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

func ParseAssignmentFilter(s string) (AssignmentFilter, error) {
	switch v := AssignmentFilter(s); v {
	case AssignmentMy, AssignmentAssigned, AssignmentAll:
		return v, nil
	}
	return "", fmt.Errorf("unknown assignment filter %q", s)
}

// Options narrows a selection. The zero ProjectID means all projects; an
// empty UserLogin means the request is anonymous.
type Options struct {
	ProjectID  int
	Status     StatusFilter
	Assignment AssignmentFilter
	UserLogin  string
}

// Source supplies pre-filtered tracker records for one render pass.
type Source interface {
	Issues(ctx context.Context, opts Options) ([]model.Issue, error)
	Versions(ctx context.Context, opts Options) ([]model.Version, error)
}

// matchIssue applies the status/assignment/project selection to one issue.
func matchIssue(issue model.Issue, opts Options) (bool, error) {
	if opts.ProjectID != 0 && issue.ProjectID != opts.ProjectID {
		return false, nil
	}
	if opts.Status == StatusOpen && issue.Closed() {
		return false, nil
	}

	switch opts.Assignment {
	case AssignmentMy:
		if opts.UserLogin == "" {
			return false, fmt.Errorf("anonymous user cannot have issues assigned")
		}
		return issue.AssignedTo != nil && issue.AssignedTo.Login == opts.UserLogin, nil
	case AssignmentAssigned:
		return issue.AssignedTo != nil, nil
	case AssignmentAll, "":
		return true, nil
	default:
		return false, fmt.Errorf("unknown assignment filter %q", opts.Assignment)
	}
}

// matchVersion applies the status/project selection to one version. Versions
// shared system-wide are visible from every project scope.
func matchVersion(v model.Version, opts Options) bool {
	if opts.ProjectID != 0 && v.ProjectID != opts.ProjectID && v.Sharing != "system" {
		return false
	}
	if opts.Status == StatusOpen && v.Closed() {
		return false
	}
	return true
}
