package render

import (
	"fmt"
	"time"

	"redmics/internal/locale"
	"redmics/internal/model"
)

// Summary markers prefixed by the start-and-end-date strategies. The
// ticket-number enrichment keys on these, so builders and enrichment must
// agree on them.
const (
	markerIssueSingle   = "<> "
	markerIssueStart    = "> "
	markerIssueEnd      = "< "
	markerVersionSingle = "<#> "
	markerVersionStart  = ">> "
	markerVersionEnd    = "<< "
)

type issueBuilder func(model.Issue) []*Entry

type versionBuilder func(model.Version) []*Entry

// issueBuilderFor selects the builder once per render pass.
func (r *Renderer) issueBuilderFor(strategy IssueStrategy) (issueBuilder, error) {
	switch strategy {
	case IssueNone:
		return func(model.Issue) []*Entry { return nil }, nil
	case IssueFullSpan:
		return r.buildIssueFullSpan, nil
	case IssueEndDate:
		return r.buildIssueEndDate, nil
	case IssueStartAndEndDate:
		return r.buildIssueStartAndEndDate, nil
	case IssueTodo:
		return r.buildIssueTodo, nil
	case IssueMegaCalendar:
		return r.buildIssueMegaCalendar, nil
	default:
		return nil, fmt.Errorf("unknown issue strategy %q", strategy)
	}
}

func (r *Renderer) versionBuilderFor(strategy VersionStrategy) (versionBuilder, error) {
	switch strategy {
	case VersionNone:
		return func(model.Version) []*Entry { return nil }, nil
	case VersionFullSpan:
		return r.buildVersionFullSpan, nil
	case VersionEndDate:
		return r.buildVersionEndDate, nil
	case VersionStartAndEndDate:
		return r.buildVersionStartAndEndDate, nil
	case VersionTodo:
		return r.buildVersionTodo, nil
	default:
		return nil, fmt.Errorf("unknown version strategy %q", strategy)
	}
}

func nextDay(d time.Time) time.Time {
	return d.AddDate(0, 0, 1)
}

// buildIssueFullSpan produces one all-day event spanning the whole period.
// Both bounds are required.
func (r *Renderer) buildIssueFullSpan(issue model.Issue) []*Entry {
	start, due := issuePeriod(issue)
	if start == nil || due == nil {
		return nil
	}
	end := nextDay(*due)
	return []*Entry{{
		Kind:  KindEvent,
		UID:   r.issueUID(issue, ""),
		Start: start,
		End:   &end,
	}}
}

// buildIssueEndDate produces one single-day event on the due date. A present
// start date is irrelevant.
func (r *Renderer) buildIssueEndDate(issue model.Issue) []*Entry {
	_, due := issuePeriod(issue)
	if due == nil {
		return nil
	}
	end := nextDay(*due)
	return []*Entry{{
		Kind:  KindEvent,
		UID:   r.issueUID(issue, ""),
		Start: due,
		End:   &end,
	}}
}

// buildIssueStartAndEndDate produces single-day events marking the period
// boundaries: one marker event per present bound, or one combined event when
// both bounds fall on the same day.
func (r *Renderer) buildIssueStartAndEndDate(issue model.Issue) []*Entry {
	start, due := issuePeriod(issue)
	if start == nil && due == nil {
		return nil
	}
	if start != nil && due != nil && start.Equal(*due) {
		end := nextDay(*start)
		return []*Entry{{
			Kind:    KindEvent,
			UID:     r.issueUID(issue, ""),
			Summary: markerIssueSingle + issue.Subject,
			Start:   start,
			End:     &end,
		}}
	}

	var result []*Entry
	if start != nil {
		end := nextDay(*start)
		result = append(result, &Entry{
			Kind:    KindEvent,
			UID:     r.issueUID(issue, suffixStart),
			Summary: markerIssueStart + issue.Subject,
			Start:   start,
			End:     &end,
		})
	}
	if due != nil {
		end := nextDay(*due)
		result = append(result, &Entry{
			Kind:    KindEvent,
			UID:     r.issueUID(issue, suffixEnd),
			Summary: markerIssueEnd + issue.Subject,
			Start:   due,
			End:     &end,
		})
	}
	return result
}

// buildIssueTodo produces one to-do; a dateless to-do is valid, so there is
// no empty case.
func (r *Renderer) buildIssueTodo(issue model.Issue) []*Entry {
	start, due := issuePeriod(issue)
	return []*Entry{{
		Kind:  KindTodo,
		UID:   r.issueUID(issue, ""),
		Start: start,
		Due:   due,
	}}
}

// buildIssueMegaCalendar produces one timed event using the per-issue
// time-of-day overrides. Both bounds are required.
func (r *Renderer) buildIssueMegaCalendar(issue model.Issue) []*Entry {
	start, due := r.megaCalendarPeriod(issue)
	if start == nil || due == nil {
		return nil
	}
	return []*Entry{{
		Kind:  KindEvent,
		UID:   r.issueUID(issue, ""),
		Start: start,
		End:   due,
		Timed: true,
	}}
}

func (r *Renderer) buildVersionFullSpan(v model.Version) []*Entry {
	start, due := versionPeriod(v)
	if start == nil || due == nil {
		return nil
	}
	end := nextDay(*due)
	return []*Entry{{
		Kind:  KindEvent,
		UID:   r.versionUID(v, ""),
		Start: start,
		End:   &end,
	}}
}

func (r *Renderer) buildVersionEndDate(v model.Version) []*Entry {
	_, due := versionPeriod(v)
	if due == nil {
		return nil
	}
	end := nextDay(*due)
	return []*Entry{{
		Kind:  KindEvent,
		UID:   r.versionUID(v, ""),
		Start: due,
		End:   &end,
	}}
}

func (r *Renderer) buildVersionStartAndEndDate(v model.Version) []*Entry {
	start, due := versionPeriod(v)
	if start == nil && due == nil {
		return nil
	}
	label := r.loc.Label(locale.LabelVersion) + " " + v.Name
	if start != nil && due != nil && start.Equal(*due) {
		end := nextDay(*start)
		return []*Entry{{
			Kind:    KindEvent,
			UID:     r.versionUID(v, ""),
			Summary: markerVersionSingle + label,
			Start:   start,
			End:     &end,
		}}
	}

	var result []*Entry
	if start != nil {
		end := nextDay(*start)
		result = append(result, &Entry{
			Kind:    KindEvent,
			UID:     r.versionUID(v, suffixStart),
			Summary: markerVersionStart + label,
			Start:   start,
			End:     &end,
		})
	}
	if due != nil {
		end := nextDay(*due)
		result = append(result, &Entry{
			Kind:    KindEvent,
			UID:     r.versionUID(v, suffixEnd),
			Summary: markerVersionEnd + label,
			Start:   due,
			End:     &end,
		})
	}
	return result
}

func (r *Renderer) buildVersionTodo(v model.Version) []*Entry {
	start, due := versionPeriod(v)
	return []*Entry{{
		Kind:  KindTodo,
		UID:   r.versionUID(v, ""),
		Start: start,
		Due:   due,
	}}
}

func (r *Renderer) issueUID(issue model.Issue, suffix string) string {
	return buildUID(kindIssue, issue.ProjectID, issue.ID, suffix, r.settings.Hostname)
}

func (r *Renderer) versionUID(v model.Version, suffix string) string {
	return buildUID(kindVersion, v.ProjectID, v.ID, suffix, r.settings.Hostname)
}
