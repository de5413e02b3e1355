// Package render maps tracker issues and release versions onto calendar
// entries under a caller-selected set of rendering strategies and serializes
// them into one calendar document.
//
// The engine is pure: it performs no I/O beyond the optional best-effort
// time-override lookup handed in through Settings, and a Renderer holds no
// mutable state across calls, so renders may run fully in parallel.
package render

import (
	ics "github.com/arran4/golang-ical"

	"redmics/internal/locale"
	"redmics/internal/model"
)

// ProductID identifies this generator in the calendar document.
const ProductID = "-//redmics//tracker calendar export//EN"

// ContentType is the media type of a serialized calendar document.
const ContentType = "text/calendar; charset=utf-8"

// Renderer executes one or more render passes for a fixed settings bundle.
type Renderer struct {
	settings Settings
	loc      locale.Localizer
}

// New validates the settings bundle and returns a Renderer for it. Unknown
// strategy values are configuration errors.
func New(settings Settings, loc locale.Localizer) (*Renderer, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = locale.Default()
	}
	return &Renderer{settings: settings, loc: loc}, nil
}

// Calendar renders the supplied pre-filtered issues and versions into one
// calendar document. The input records are never mutated.
func (r *Renderer) Calendar(issues []model.Issue, versions []model.Version) (*ics.Calendar, error) {
	buildIssue, err := r.issueBuilderFor(r.settings.Issues)
	if err != nil {
		return nil, err
	}
	buildVersion, err := r.versionBuilderFor(r.settings.Versions)
	if err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)

	for _, issue := range issues {
		entries, err := r.renderIssue(issue, buildIssue)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			e.seal(cal)
		}
	}
	for _, v := range versions {
		entries, err := r.renderVersion(v, buildVersion)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			e.seal(cal)
		}
	}
	return cal, nil
}

// ICS renders straight to the serialized interchange text.
func (r *Renderer) ICS(issues []model.Issue, versions []model.Version) (string, error) {
	cal, err := r.Calendar(issues, versions)
	if err != nil {
		return "", err
	}
	return cal.Serialize(), nil
}

// renderIssue runs one issue through the fixed pipeline: builder, appliers,
// enrichment, alarm.
func (r *Renderer) renderIssue(issue model.Issue, build issueBuilder) ([]*Entry, error) {
	entries := build(issue)
	if len(entries) == 0 {
		return nil, nil
	}

	r.applyIssueCommon(issue, entries)
	if r.settings.Issues == IssueTodo {
		r.applyIssueTodo(issue, entries)
	} else {
		r.applyIssueEvent(issue, entries)
	}
	if err := r.enhanceIssueSummary(issue, entries); err != nil {
		return nil, err
	}
	if err := r.enhanceIssueDescription(issue, entries); err != nil {
		return nil, err
	}
	r.applyIssueAlarm(entries)
	return entries, nil
}

// renderVersion runs one version through the same pipeline; versions have no
// summary enrichment and no alarms.
func (r *Renderer) renderVersion(v model.Version, build versionBuilder) ([]*Entry, error) {
	entries := build(v)
	if len(entries) == 0 {
		return nil, nil
	}

	r.applyVersionCommon(v, entries)
	if r.settings.Versions == VersionTodo {
		r.applyVersionTodo(v, entries)
	} else {
		r.applyVersionEvent(v, entries)
	}
	if err := r.enhanceVersionDescription(v, entries); err != nil {
		return nil, err
	}
	return entries, nil
}
