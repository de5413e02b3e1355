package render

import (
	"fmt"
	"time"

	"redmics/internal/model"
)

// IssueStrategy selects how one issue is turned into calendar entries.
type IssueStrategy string

const (
	IssueNone            IssueStrategy = "none"
	IssueFullSpan        IssueStrategy = "full_span"
	IssueEndDate         IssueStrategy = "end_date"
	IssueStartAndEndDate IssueStrategy = "start_and_end_date"
	IssueTodo            IssueStrategy = "vtodo"
	IssueMegaCalendar    IssueStrategy = "mega_calendar"
)

// VersionStrategy selects how one version is turned into calendar entries.
// Versions have no mega-calendar variant.
type VersionStrategy string

const (
	VersionNone            VersionStrategy = "none"
	VersionFullSpan        VersionStrategy = "full_span"
	VersionEndDate         VersionStrategy = "end_date"
	VersionStartAndEndDate VersionStrategy = "start_and_end_date"
	VersionTodo            VersionStrategy = "vtodo"
)

// SummaryStrategy selects how issue summaries are enriched.
type SummaryStrategy string

const (
	SummaryPlain                 SummaryStrategy = "plain"
	SummaryStatus                SummaryStrategy = "status"
	SummaryTicketNumberAndStatus SummaryStrategy = "ticket_number_and_status"
)

// DescriptionStrategy selects how entry descriptions are enriched.
type DescriptionStrategy string

const (
	DescriptionPlain         DescriptionStrategy = "plain"
	DescriptionURLAndVersion DescriptionStrategy = "url_and_version"
	DescriptionFullNoURL     DescriptionStrategy = "full_no_url"
	DescriptionFull          DescriptionStrategy = "full"
)

// ParseIssueStrategy resolves a strategy name. An unknown name is a
// configuration error.
func ParseIssueStrategy(s string) (IssueStrategy, error) {
	switch v := IssueStrategy(s); v {
	case IssueNone, IssueFullSpan, IssueEndDate, IssueStartAndEndDate, IssueTodo, IssueMegaCalendar:
		return v, nil
	}
	return "", fmt.Errorf("unknown issue strategy %q", s)
}

func ParseVersionStrategy(s string) (VersionStrategy, error) {
	switch v := VersionStrategy(s); v {
	case VersionNone, VersionFullSpan, VersionEndDate, VersionStartAndEndDate, VersionTodo:
		return v, nil
	}
	return "", fmt.Errorf("unknown version strategy %q", s)
}

func ParseSummaryStrategy(s string) (SummaryStrategy, error) {
	switch v := SummaryStrategy(s); v {
	case SummaryPlain, SummaryStatus, SummaryTicketNumberAndStatus:
		return v, nil
	}
	return "", fmt.Errorf("unknown summary strategy %q", s)
}

func ParseDescriptionStrategy(s string) (DescriptionStrategy, error) {
	switch v := DescriptionStrategy(s); v {
	case DescriptionPlain, DescriptionURLAndVersion, DescriptionFullNoURL, DescriptionFull:
		return v, nil
	}
	return "", fmt.Errorf("unknown description strategy %q", s)
}

// Feed URLs encode strategies as single digits; the index order is fixed and
// must never change, or existing subscription URLs would silently switch
// rendering modes.
var (
	issueStrategyCodes = []IssueStrategy{
		IssueNone, IssueFullSpan, IssueEndDate, IssueStartAndEndDate, IssueTodo, IssueMegaCalendar,
	}
	versionStrategyCodes = []VersionStrategy{
		VersionNone, VersionFullSpan, VersionEndDate, VersionStartAndEndDate, VersionTodo,
	}
	summaryStrategyCodes = []SummaryStrategy{
		SummaryPlain, SummaryStatus, SummaryTicketNumberAndStatus,
	}
	descriptionStrategyCodes = []DescriptionStrategy{
		DescriptionPlain, DescriptionURLAndVersion, DescriptionFullNoURL, DescriptionFull,
	}
)

// DecodeIssueStrategy maps a single-digit URL code onto a strategy.
// ok is false for anything that is not a known code.
func DecodeIssueStrategy(code string) (IssueStrategy, bool) {
	i, ok := decodeIndex(code, len(issueStrategyCodes))
	if !ok {
		return "", false
	}
	return issueStrategyCodes[i], true
}

func DecodeVersionStrategy(code string) (VersionStrategy, bool) {
	i, ok := decodeIndex(code, len(versionStrategyCodes))
	if !ok {
		return "", false
	}
	return versionStrategyCodes[i], true
}

func DecodeSummaryStrategy(code string) (SummaryStrategy, bool) {
	i, ok := decodeIndex(code, len(summaryStrategyCodes))
	if !ok {
		return "", false
	}
	return summaryStrategyCodes[i], true
}

func DecodeDescriptionStrategy(code string) (DescriptionStrategy, bool) {
	i, ok := decodeIndex(code, len(descriptionStrategyCodes))
	if !ok {
		return "", false
	}
	return descriptionStrategyCodes[i], true
}

func decodeIndex(code string, n int) (int, bool) {
	if len(code) != 1 || code[0] < '0' || code[0] > '9' {
		return 0, false
	}
	i := int(code[0] - '0')
	if i >= n {
		return 0, false
	}
	return i, true
}

// TimeOverrideFunc looks up the optional per-issue time-of-day override used
// by the mega-calendar strategy. The lookup is best effort: an error is
// treated as "no override" and never aborts a render.
type TimeOverrideFunc func(issueID int) (model.TimeOverride, error)

// Settings is the resolved bundle for one render pass. It is not mutated by
// the renderer.
type Settings struct {
	Issues      IssueStrategy
	Versions    VersionStrategy
	Summary     SummaryStrategy
	Description DescriptionStrategy

	// Alarm, if non-nil, attaches a display reminder this far before the
	// entry to the last entry produced for each issue.
	Alarm *time.Duration

	// Hostname is the deployment host name embedded in every UID.
	Hostname string

	// BaseURL is the external root for issue/version deep links, without a
	// trailing slash, e.g. "https://tracker.example.com".
	BaseURL string

	// PriorityLevels is the size N of the deployment's ordered priority
	// scale.
	PriorityLevels int

	// TimeOverride supplies per-issue clock times for the mega-calendar
	// strategy. Nil means no overrides exist.
	TimeOverride TimeOverrideFunc
}

// validate checks that every enumerated option holds a known value.
func (s Settings) validate() error {
	if _, err := ParseIssueStrategy(string(s.Issues)); err != nil {
		return err
	}
	if _, err := ParseVersionStrategy(string(s.Versions)); err != nil {
		return err
	}
	if _, err := ParseSummaryStrategy(string(s.Summary)); err != nil {
		return err
	}
	if _, err := ParseDescriptionStrategy(string(s.Description)); err != nil {
		return err
	}
	return nil
}
