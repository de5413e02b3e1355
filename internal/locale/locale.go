// Package locale resolves the display labels used in calendar summaries,
// categories and description headers. The deployment may plug in its own
// Localizer; the built-in table carries the English defaults.
package locale

// Label keys understood by the built-in localizer.
const (
	LabelIssue        = "label_issue"
	LabelVersion      = "label_version"
	FieldProject      = "field_project"
	FieldAuthor       = "field_author"
	FieldStatus       = "field_status"
	FieldPriority     = "field_priority"
	FieldAssignedTo   = "field_assigned_to"
	FieldCategory     = "field_category"
	FieldFixedVersion = "field_fixed_version"
	FieldURL          = "field_url"
)

// Localizer resolves a label key into display text.
type Localizer interface {
	Label(key string) string
}

var english = map[string]string{
	LabelIssue:        "Issue",
	LabelVersion:      "Version",
	FieldProject:      "Project",
	FieldAuthor:       "Author",
	FieldStatus:       "Status",
	FieldPriority:     "Priority",
	FieldAssignedTo:   "Assignee",
	FieldCategory:     "Category",
	FieldFixedVersion: "Target version",
	FieldURL:          "URL",
}

type builtin struct{}

// Label returns the English label for key, or the key itself when unknown so
// that a missing translation stays visible instead of vanishing.
func (builtin) Label(key string) string {
	if s, ok := english[key]; ok {
		return s
	}
	return key
}

// Default returns the built-in English localizer.
func Default() Localizer {
	return builtin{}
}
