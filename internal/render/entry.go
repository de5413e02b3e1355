package render

import (
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// Kind tags an Entry as an event or a to-do.
type Kind int

const (
	KindEvent Kind = iota
	KindTodo
)

// Date/date-time layouts of the calendar interchange format. Date-times are
// written as floating local times; the engine does not model timezones beyond
// plain dates and clock times.
const (
	icalDateLayout     = "20060102"
	icalDateTimeLayout = "20060102T150405"
)

// Alarm is a display reminder attached to an entry.
type Alarm struct {
	Description string
	Trigger     time.Duration
}

// Organizer is the mail-based originator reference of an entry.
type Organizer struct {
	Name string
	Mail string
}

// Contact is the mail-based contact reference of an entry.
type Contact struct {
	Name string
	Mail string
}

// Entry is one calendar object under construction. Builders create it with
// the minimal required fields, the applier and enrichment stages mutate it,
// and seal turns it into an immutable calendar component. Zero optional
// pointers mean "property absent".
type Entry struct {
	Kind Kind
	UID  string

	Summary     string
	Description string
	Status      string
	Sequence    int
	Organizer   *Organizer
	Contact     *Contact
	Categories  []string
	Created     time.Time
	LastMod     *time.Time
	URL         string
	Priority    int

	// Event bounds. End is exclusive. Timed switches both from all-day date
	// values to date-time values (mega-calendar).
	Start *time.Time
	End   *time.Time
	Timed bool

	// Todo fields. Start is shared with the event case.
	Due       *time.Time
	Completed *time.Time
	Percent   *int

	Alarm *Alarm
}

// Properties the library has no named constants for are addressed by their
// raw names, the same way RECURRENCE-ID has to be handled on the parse side.
const (
	propAction    = ics.ComponentProperty("ACTION")
	propContact   = ics.ComponentProperty("CONTACT")
	propTrigger   = ics.ComponentProperty("TRIGGER")
	propDue       = ics.ComponentProperty("DUE")
	propCompleted = ics.ComponentProperty("COMPLETED")
	propPercent   = ics.ComponentProperty("PERCENT-COMPLETE")
	propPriority  = ics.ComponentProperty("PRIORITY")
)

// propertySetter is the slice of the ical component API the seal step needs;
// both VEVENT and VTODO components provide it.
type propertySetter interface {
	SetProperty(property ics.ComponentProperty, value string, params ...ics.PropertyParameter)
}

func dateValue(t time.Time) (string, ics.PropertyParameter) {
	return t.Format(icalDateLayout), &ics.KeyValues{Key: "VALUE", Value: []string{"DATE"}}
}

// seal converts the finished entry into a calendar component and adds it to
// cal. The entry must not be modified afterwards.
func (e *Entry) seal(cal *ics.Calendar) {
	switch e.Kind {
	case KindEvent:
		ev := &ics.VEvent{}
		ev.SetProperty(ics.ComponentPropertyUniqueId, e.UID)
		if e.Start != nil {
			e.setBound(ev, ics.ComponentPropertyDtStart, *e.Start)
		}
		if e.End != nil {
			e.setBound(ev, ics.ComponentPropertyDtEnd, *e.End)
		}
		e.sealCommon(ev)
		if e.Alarm != nil {
			ev.Components = append(ev.Components, e.Alarm.component())
		}
		cal.Components = append(cal.Components, ev)

	case KindTodo:
		td := &ics.VTodo{}
		td.SetProperty(ics.ComponentPropertyUniqueId, e.UID)
		if e.Start != nil {
			v, p := dateValue(*e.Start)
			td.SetProperty(ics.ComponentPropertyDtStart, v, p)
		}
		if e.Due != nil {
			v, p := dateValue(*e.Due)
			td.SetProperty(propDue, v, p)
		}
		if e.Completed != nil {
			td.SetProperty(propCompleted, e.Completed.Format(icalDateTimeLayout))
		}
		if e.Percent != nil {
			td.SetProperty(propPercent, strconv.Itoa(*e.Percent))
		}
		e.sealCommon(td)
		if e.Alarm != nil {
			td.Components = append(td.Components, e.Alarm.component())
		}
		cal.Components = append(cal.Components, td)
	}
}

// setBound writes one event boundary, either as an all-day date or as a
// floating date-time for timed entries.
func (e *Entry) setBound(ev propertySetter, prop ics.ComponentProperty, t time.Time) {
	if e.Timed {
		ev.SetProperty(prop, t.Format(icalDateTimeLayout))
		return
	}
	v, p := dateValue(t)
	ev.SetProperty(prop, v, p)
}

// sealCommon writes the properties shared by both entry kinds.
func (e *Entry) sealCommon(c propertySetter) {
	// DTSTAMP is derived from the item's creation time so that identical
	// input keeps producing byte-identical documents.
	if !e.Created.IsZero() {
		c.SetProperty(ics.ComponentPropertyDtstamp, e.Created.UTC().Format(icalDateTimeLayout)+"Z")
		v, p := dateValue(e.Created)
		c.SetProperty(ics.ComponentPropertyCreated, v, p)
	}
	if e.Summary != "" {
		c.SetProperty(ics.ComponentPropertySummary, e.Summary)
	}
	if e.Description != "" {
		c.SetProperty(ics.ComponentPropertyDescription, e.Description)
	}
	if e.Status != "" {
		c.SetProperty(ics.ComponentPropertyStatus, e.Status)
	}
	if e.Priority != 0 {
		c.SetProperty(propPriority, strconv.Itoa(e.Priority))
	}
	if e.LastMod != nil {
		c.SetProperty(ics.ComponentPropertyLastModified, e.LastMod.UTC().Format(icalDateTimeLayout)+"Z")
	}
	if len(e.Categories) > 0 {
		c.SetProperty(ics.ComponentPropertyCategories, strings.Join(e.Categories, ","))
	}
	if e.Organizer != nil {
		c.SetProperty(ics.ComponentPropertyOrganizer, "mailto:"+e.Organizer.Mail, ics.WithCN(e.Organizer.Name))
	}
	if e.Contact != nil {
		c.SetProperty(propContact, e.Contact.Name,
			&ics.KeyValues{Key: "ALTREP", Value: []string{"mailto:" + e.Contact.Mail}})
	}
	if e.URL != "" {
		c.SetProperty(ics.ComponentPropertyUrl, e.URL)
	}
	c.SetProperty(ics.ComponentPropertySequence, strconv.Itoa(e.Sequence))
}

// component builds the VALARM subcomponent for this alarm.
func (a *Alarm) component() *ics.VAlarm {
	al := &ics.VAlarm{}
	al.SetProperty(propAction, "DISPLAY")
	al.SetProperty(ics.ComponentPropertyDescription, a.Description)
	al.SetProperty(propTrigger, formatTrigger(a.Trigger))
	return al
}

// formatTrigger renders a positive offset-before-start as a negative ISO 8601
// duration, e.g. 15m -> "-PT15M".
func formatTrigger(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	sign := "-"
	total := int(d / time.Second)

	days := total / 86400
	total %= 86400
	hours := total / 3600
	total %= 3600
	mins := total / 60
	secs := total % 60

	out := sign + "P"
	if days > 0 {
		out += strconv.Itoa(days) + "D"
	}
	if hours > 0 || mins > 0 || secs > 0 || days == 0 {
		out += "T"
		if hours > 0 {
			out += strconv.Itoa(hours) + "H"
		}
		if mins > 0 {
			out += strconv.Itoa(mins) + "M"
		}
		if secs > 0 || (hours == 0 && mins == 0) {
			out += strconv.Itoa(secs) + "S"
		}
	}
	return out
}
