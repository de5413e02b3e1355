package render

import (
	"fmt"
	"strings"

	"redmics/internal/locale"
	"redmics/internal/model"
)

// Calendar status labels. These are raw interchange-format values, not
// display strings, so they bypass the localizer.
const (
	statusConfirmed   = "CONFIRMED"
	statusTentative   = "TENTATIVE"
	statusCompleted   = "COMPLETED"
	statusInProcess   = "IN-PROCESS"
	statusNeedsAction = "NEEDS-ACTION"
)

// applyIssueCommon attaches the cross-cutting fields shared by every issue
// entry regardless of kind.
func (r *Renderer) applyIssueCommon(issue model.Issue, entries []*Entry) {
	for _, e := range entries {
		if e.Summary == "" {
			e.Summary = issue.Subject
		}
		e.Priority = mapPriority(issue.PriorityPosition, r.settings.PriorityLevels)
		e.Created = issue.CreatedOn
		e.LastMod = issue.UpdatedOn
		if issue.Description != "" {
			e.Description = issue.Description
		}
		e.Categories = []string{strings.ToUpper(r.loc.Label(locale.LabelIssue))}
		if issue.AssignedTo != nil {
			e.Contact = &Contact{Name: issue.AssignedTo.Name, Mail: issue.AssignedTo.Mail}
		}
		e.Organizer = &Organizer{Name: issue.Author.Name, Mail: issue.Author.Mail}
		e.URL = r.issueURL(issue)
		e.Sequence = issue.LockVersion
	}
}

// applyIssueEvent sets the event status. Closed issues are left without a
// status here; how a closed issue is displayed is a strategy concern.
func (r *Renderer) applyIssueEvent(issue model.Issue, entries []*Entry) {
	if issue.Closed() {
		return
	}
	status := statusTentative
	if issue.AssignedTo != nil {
		status = statusConfirmed
	}
	for _, e := range entries {
		e.Status = status
	}
}

// applyIssueTodo sets the to-do completion state.
func (r *Renderer) applyIssueTodo(issue model.Issue, entries []*Entry) {
	for _, e := range entries {
		switch {
		case issue.Closed():
			e.Status = statusCompleted
			e.Completed = issue.UpdatedOn
			e.Percent = intPtr(100)
		case issue.AssignedTo != nil:
			e.Status = statusInProcess
			e.Percent = intPtr(issue.DoneRatio)
		default:
			e.Status = statusNeedsAction
		}
	}
}

// applyVersionCommon attaches the cross-cutting fields shared by every
// version entry.
func (r *Renderer) applyVersionCommon(v model.Version, entries []*Entry) {
	for _, e := range entries {
		if e.Summary == "" {
			e.Summary = r.loc.Label(locale.LabelVersion) + " " + v.Name
		}
		e.Created = v.CreatedOn
		e.LastMod = v.UpdatedOn
		if v.Description != "" {
			e.Description = v.Description
		}
		e.Categories = []string{strings.ToUpper(r.loc.Label(locale.LabelVersion))}
		e.URL = r.versionURL(v)
		// Versions carry no revision counter; whole days since creation
		// stand in for it, still monotonic across updates.
		if v.UpdatedOn != nil {
			e.Sequence = int(v.UpdatedOn.Unix()-v.CreatedOn.Unix()) / 86400
		}
	}
}

// applyVersionEvent sets the event status; versions have no pending state.
func (r *Renderer) applyVersionEvent(v model.Version, entries []*Entry) {
	if v.Closed() {
		return
	}
	for _, e := range entries {
		e.Status = statusConfirmed
	}
}

// applyVersionTodo sets the to-do completion state.
func (r *Renderer) applyVersionTodo(v model.Version, entries []*Entry) {
	for _, e := range entries {
		if v.Closed() {
			e.Status = statusCompleted
			e.Completed = v.UpdatedOn
			e.Percent = intPtr(100)
		} else {
			e.Status = statusInProcess
			e.Percent = intPtr(v.CompletedPercent)
		}
	}
}

// applyIssueAlarm attaches the reminder to the last entry produced for an
// issue. With the start-and-end-date strategy that is the end-half event.
func (r *Renderer) applyIssueAlarm(entries []*Entry) {
	if r.settings.Alarm == nil || len(entries) == 0 {
		return
	}
	entries[len(entries)-1].Alarm = &Alarm{
		Description: "This is an event reminder",
		Trigger:     *r.settings.Alarm,
	}
}

func (r *Renderer) issueURL(issue model.Issue) string {
	return fmt.Sprintf("%s/issues/%d", r.settings.BaseURL, issue.ID)
}

func (r *Renderer) versionURL(v model.Version) string {
	return fmt.Sprintf("%s/versions/%d", r.settings.BaseURL, v.ID)
}

func intPtr(v int) *int {
	return &v
}
