package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redmics/internal/model"
)

func TestIssueFullSpan(t *testing.T) {
	r := testRenderer(testSettings())

	issue := testIssue()
	issue.StartDate = date(2024, 3, 1)
	issue.DueDate = date(2024, 3, 10)

	entries := r.buildIssueFullSpan(issue)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, KindEvent, e.Kind)
	assert.Equal(t, "id:redmics:project:7:issue:42@example.com", e.UID)
	assert.Equal(t, *date(2024, 3, 1), *e.Start)
	// End is exclusive: due + 1 day.
	assert.Equal(t, *date(2024, 3, 11), *e.End)
}

func TestIssueFullSpanRequiresBothBounds(t *testing.T) {
	r := testRenderer(testSettings())

	issue := testIssue()
	issue.StartDate = date(2024, 3, 1)
	assert.Empty(t, r.buildIssueFullSpan(issue))

	issue.StartDate = nil
	issue.DueDate = date(2024, 3, 10)
	assert.Empty(t, r.buildIssueFullSpan(issue))
}

func TestIssueEndDate(t *testing.T) {
	r := testRenderer(testSettings())

	issue := testIssue()
	issue.DueDate = date(2024, 3, 10)

	entries := r.buildIssueEndDate(issue)
	require.Len(t, entries, 1)
	assert.Equal(t, *date(2024, 3, 10), *entries[0].Start)
	assert.Equal(t, *date(2024, 3, 11), *entries[0].End)
}

func TestIssueEndDateIgnoresStart(t *testing.T) {
	r := testRenderer(testSettings())

	// A present start date is irrelevant; only due counts.
	issue := testIssue()
	issue.StartDate = date(2024, 3, 1)
	assert.Empty(t, r.buildIssueEndDate(issue))
}

func TestIssueStartAndEndDateBothAbsent(t *testing.T) {
	r := testRenderer(testSettings())
	assert.Empty(t, r.buildIssueStartAndEndDate(testIssue()))
}

func TestIssueStartAndEndDateSameDay(t *testing.T) {
	r := testRenderer(testSettings())

	issue := testIssue()
	issue.StartDate = date(2024, 3, 5)
	issue.DueDate = date(2024, 3, 5)

	entries := r.buildIssueStartAndEndDate(issue)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "<> Fix leak", e.Summary)
	// Suffix-free identifier for the combined entry.
	assert.Equal(t, "id:redmics:project:7:issue:42@example.com", e.UID)
	assert.Equal(t, *date(2024, 3, 6), *e.End)
}

func TestIssueStartAndEndDateSplit(t *testing.T) {
	r := testRenderer(testSettings())

	issue := testIssue()
	issue.StartDate = date(2024, 3, 1)
	issue.DueDate = date(2024, 3, 10)

	entries := r.buildIssueStartAndEndDate(issue)
	require.Len(t, entries, 2)

	assert.Equal(t, "> Fix leak", entries[0].Summary)
	assert.Equal(t, "id:redmics:project:7:issue:42:s@example.com", entries[0].UID)
	assert.Equal(t, *date(2024, 3, 1), *entries[0].Start)

	assert.Equal(t, "< Fix leak", entries[1].Summary)
	assert.Equal(t, "id:redmics:project:7:issue:42:e@example.com", entries[1].UID)
	assert.Equal(t, *date(2024, 3, 10), *entries[1].Start)
}

func TestIssueStartAndEndDateSingleBound(t *testing.T) {
	r := testRenderer(testSettings())

	issue := testIssue()
	issue.DueDate = date(2024, 3, 10)

	entries := r.buildIssueStartAndEndDate(issue)
	require.Len(t, entries, 1)
	assert.Equal(t, "< Fix leak", entries[0].Summary)
	assert.Equal(t, "id:redmics:project:7:issue:42:e@example.com", entries[0].UID)
}

func TestIssueTodoDateless(t *testing.T) {
	r := testRenderer(testSettings())

	// A dateless to-do is valid.
	entries := r.buildIssueTodo(testIssue())
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, KindTodo, e.Kind)
	assert.Nil(t, e.Start)
	assert.Nil(t, e.Due)
	assert.Empty(t, e.Summary) // no marker prefixing for to-dos
}

func TestIssueTodoDates(t *testing.T) {
	r := testRenderer(testSettings())

	issue := testIssue()
	issue.StartDate = date(2024, 3, 1)
	issue.DueDate = date(2024, 3, 10)

	entries := r.buildIssueTodo(issue)
	require.Len(t, entries, 1)
	assert.Equal(t, *date(2024, 3, 1), *entries[0].Start)
	assert.Equal(t, *date(2024, 3, 10), *entries[0].Due)
}

func TestIssueMegaCalendar(t *testing.T) {
	s := testSettings()
	s.TimeOverride = func(issueID int) (model.TimeOverride, error) {
		return model.TimeOverride{Begin: "08:00", End: "17:00"}, nil
	}
	r := testRenderer(s)

	issue := testIssue()
	issue.StartDate = date(2024, 3, 1)
	issue.DueDate = date(2024, 3, 2)

	entries := r.buildIssueMegaCalendar(issue)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.True(t, e.Timed)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), *e.Start)
	assert.Equal(t, time.Date(2024, 3, 2, 17, 0, 0, 0, time.UTC), *e.End)
}

func TestIssueMegaCalendarRequiresBothBounds(t *testing.T) {
	r := testRenderer(testSettings())

	issue := testIssue()
	issue.DueDate = date(2024, 3, 2)
	assert.Empty(t, r.buildIssueMegaCalendar(issue))
}

func TestVersionStartAndEndDateSameDay(t *testing.T) {
	r := testRenderer(testSettings())

	v := testVersion()
	v.StartDate = date(2024, 1, 1)
	v.DueDate = date(2024, 1, 1)

	entries := r.buildVersionStartAndEndDate(v)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "<#> Version 2.0", e.Summary)
	assert.Equal(t, "id:redmics:project:3:version:9@example.com", e.UID)
	assert.Equal(t, *date(2024, 1, 2), *e.End)
}

func TestVersionStartAndEndDateSplit(t *testing.T) {
	r := testRenderer(testSettings())

	v := testVersion()
	v.StartDate = date(2024, 1, 1)
	v.DueDate = date(2024, 2, 1)

	entries := r.buildVersionStartAndEndDate(v)
	require.Len(t, entries, 2)
	assert.Equal(t, ">> Version 2.0", entries[0].Summary)
	assert.Equal(t, "id:redmics:project:3:version:9:s@example.com", entries[0].UID)
	assert.Equal(t, "<< Version 2.0", entries[1].Summary)
	assert.Equal(t, "id:redmics:project:3:version:9:e@example.com", entries[1].UID)
}

func TestVersionEndDate(t *testing.T) {
	r := testRenderer(testSettings())

	v := testVersion()
	assert.Empty(t, r.buildVersionEndDate(v))

	v.DueDate = date(2024, 2, 1)
	entries := r.buildVersionEndDate(v)
	require.Len(t, entries, 1)
	assert.Equal(t, *date(2024, 2, 1), *entries[0].Start)
	assert.Equal(t, *date(2024, 2, 2), *entries[0].End)
}

func TestNoneBuilders(t *testing.T) {
	r := testRenderer(testSettings())

	buildIssue, err := r.issueBuilderFor(IssueNone)
	require.NoError(t, err)
	assert.Empty(t, buildIssue(testIssue()))

	buildVersion, err := r.versionBuilderFor(VersionNone)
	require.NoError(t, err)
	assert.Empty(t, buildVersion(testVersion()))
}
