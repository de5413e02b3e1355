package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redmics/internal/model"
)

func TestApplyIssueCommon(t *testing.T) {
	r := testRenderer(testSettings())

	issue := testIssue()
	updated := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	issue.UpdatedOn = &updated
	issue.Description = "memory grows without bound"
	issue.AssignedTo = &model.User{Login: "ann", Name: "Ann Dev", Mail: "ann@example.com"}
	issue.LockVersion = 3

	e := &Entry{Kind: KindEvent}
	r.applyIssueCommon(issue, []*Entry{e})

	assert.Equal(t, "Fix leak", e.Summary)
	assert.Equal(t, 5, e.Priority) // position 2 of 5
	assert.Equal(t, issue.CreatedOn, e.Created)
	assert.Equal(t, &updated, e.LastMod)
	assert.Equal(t, "memory grows without bound", e.Description)
	assert.Equal(t, []string{"ISSUE"}, e.Categories)
	require.NotNil(t, e.Contact)
	assert.Equal(t, "Ann Dev", e.Contact.Name)
	assert.Equal(t, "ann@example.com", e.Contact.Mail)
	require.NotNil(t, e.Organizer)
	assert.Equal(t, "Frank Author", e.Organizer.Name)
	assert.Equal(t, "http://example.com/issues/42", e.URL)
	assert.Equal(t, 3, e.Sequence)
}

func TestApplyIssueCommonKeepsBuilderSummary(t *testing.T) {
	r := testRenderer(testSettings())

	e := &Entry{Kind: KindEvent, Summary: "> Fix leak"}
	r.applyIssueCommon(testIssue(), []*Entry{e})
	assert.Equal(t, "> Fix leak", e.Summary)
}

func TestApplyIssueCommonUnassigned(t *testing.T) {
	r := testRenderer(testSettings())

	e := &Entry{Kind: KindEvent}
	r.applyIssueCommon(testIssue(), []*Entry{e})
	assert.Nil(t, e.Contact)
}

func TestApplyIssueEventStatus(t *testing.T) {
	r := testRenderer(testSettings())

	// Open and unassigned: tentative.
	e := &Entry{Kind: KindEvent}
	r.applyIssueEvent(testIssue(), []*Entry{e})
	assert.Equal(t, statusTentative, e.Status)

	// Open and assigned: confirmed.
	issue := testIssue()
	issue.AssignedTo = &model.User{Name: "Ann Dev"}
	e = &Entry{Kind: KindEvent}
	r.applyIssueEvent(issue, []*Entry{e})
	assert.Equal(t, statusConfirmed, e.Status)

	// Closed: this applier leaves status unset.
	issue.Status.Closed = true
	e = &Entry{Kind: KindEvent}
	r.applyIssueEvent(issue, []*Entry{e})
	assert.Empty(t, e.Status)
}

func TestApplyIssueTodoStatus(t *testing.T) {
	r := testRenderer(testSettings())
	updated := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)

	// Closed: completed at update time, 100 percent.
	issue := testIssue()
	issue.Status.Closed = true
	issue.UpdatedOn = &updated
	e := &Entry{Kind: KindTodo}
	r.applyIssueTodo(issue, []*Entry{e})
	assert.Equal(t, statusCompleted, e.Status)
	assert.Equal(t, &updated, e.Completed)
	require.NotNil(t, e.Percent)
	assert.Equal(t, 100, *e.Percent)

	// Open and assigned: in-process with the issue's completion ratio.
	issue = testIssue()
	issue.AssignedTo = &model.User{Name: "Ann Dev"}
	issue.DoneRatio = 40
	e = &Entry{Kind: KindTodo}
	r.applyIssueTodo(issue, []*Entry{e})
	assert.Equal(t, statusInProcess, e.Status)
	require.NotNil(t, e.Percent)
	assert.Equal(t, 40, *e.Percent)

	// Open and unassigned: needs action, percent left unset.
	e = &Entry{Kind: KindTodo}
	r.applyIssueTodo(testIssue(), []*Entry{e})
	assert.Equal(t, statusNeedsAction, e.Status)
	assert.Nil(t, e.Percent)
}

func TestApplyVersionCommon(t *testing.T) {
	r := testRenderer(testSettings())

	v := testVersion()
	updated := v.CreatedOn.Add(72 * time.Hour)
	v.UpdatedOn = &updated

	e := &Entry{Kind: KindEvent}
	r.applyVersionCommon(v, []*Entry{e})

	assert.Equal(t, "Version 2.0", e.Summary)
	assert.Equal(t, []string{"VERSION"}, e.Categories)
	assert.Equal(t, "http://example.com/versions/9", e.URL)
	// Sequence counts whole days between creation and last update.
	assert.Equal(t, 3, e.Sequence)
}

func TestApplyVersionCommonNeverUpdated(t *testing.T) {
	r := testRenderer(testSettings())

	e := &Entry{Kind: KindEvent}
	r.applyVersionCommon(testVersion(), []*Entry{e})
	assert.Equal(t, 0, e.Sequence)
}

func TestApplyVersionEventStatus(t *testing.T) {
	r := testRenderer(testSettings())

	e := &Entry{Kind: KindEvent}
	r.applyVersionEvent(testVersion(), []*Entry{e})
	assert.Equal(t, statusConfirmed, e.Status)

	v := testVersion()
	v.Status = "closed"
	e = &Entry{Kind: KindEvent}
	r.applyVersionEvent(v, []*Entry{e})
	assert.Empty(t, e.Status)
}

func TestApplyVersionTodoStatus(t *testing.T) {
	r := testRenderer(testSettings())

	v := testVersion()
	v.CompletedPercent = 60
	e := &Entry{Kind: KindTodo}
	r.applyVersionTodo(v, []*Entry{e})
	assert.Equal(t, statusInProcess, e.Status)
	require.NotNil(t, e.Percent)
	assert.Equal(t, 60, *e.Percent)

	updated := v.CreatedOn.Add(24 * time.Hour)
	v.Status = "closed"
	v.UpdatedOn = &updated
	e = &Entry{Kind: KindTodo}
	r.applyVersionTodo(v, []*Entry{e})
	assert.Equal(t, statusCompleted, e.Status)
	assert.Equal(t, &updated, e.Completed)
	require.NotNil(t, e.Percent)
	assert.Equal(t, 100, *e.Percent)
}

func TestApplyIssueAlarm(t *testing.T) {
	s := testSettings()
	trigger := 15 * time.Minute
	s.Alarm = &trigger
	r := testRenderer(s)

	first := &Entry{Kind: KindEvent}
	last := &Entry{Kind: KindEvent}
	r.applyIssueAlarm([]*Entry{first, last})

	// Exactly one alarm, on the last entry produced.
	assert.Nil(t, first.Alarm)
	require.NotNil(t, last.Alarm)
	assert.Equal(t, "This is an event reminder", last.Alarm.Description)
	assert.Equal(t, trigger, last.Alarm.Trigger)
}

func TestApplyIssueAlarmNoEntries(t *testing.T) {
	s := testSettings()
	trigger := 15 * time.Minute
	s.Alarm = &trigger
	r := testRenderer(s)

	// Must not panic on an empty sequence.
	r.applyIssueAlarm(nil)
}

func TestApplyIssueAlarmDisabled(t *testing.T) {
	r := testRenderer(testSettings())

	e := &Entry{Kind: KindEvent}
	r.applyIssueAlarm([]*Entry{e})
	assert.Nil(t, e.Alarm)
}

func TestFormatTrigger(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{15 * time.Minute, "-PT15M"},
		{time.Hour, "-PT1H"},
		{90 * time.Minute, "-PT1H30M"},
		{24 * time.Hour, "-P1D"},
		{25 * time.Hour, "-P1DT1H"},
		{30 * time.Second, "-PT30S"},
		{0, "-PT0S"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatTrigger(tt.d), "duration %s", tt.d)
	}
}
