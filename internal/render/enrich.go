package render

import (
	"fmt"
	"regexp"
	"strings"

	"redmics/internal/locale"
	"redmics/internal/model"
)

// markerRe matches a summary that begins with one of the issue boundary
// markers, capturing the marker and the remainder separately.
var markerRe = regexp.MustCompile(`^(<>|<|>) (.*)$`)

// enhanceIssueSummary rewrites entry summaries according to the configured
// summary strategy.
func (r *Renderer) enhanceIssueSummary(issue model.Issue, entries []*Entry) error {
	for _, e := range entries {
		switch r.settings.Summary {
		case SummaryPlain:
			// no action
		case SummaryStatus:
			if issue.Status.Name != "" {
				e.Summary = fmt.Sprintf("%s (%s)", e.Summary, issue.Status.Name)
			}
		case SummaryTicketNumberAndStatus:
			if issue.Status.Name != "" {
				e.Summary = fmt.Sprintf("%s (%s)", e.Summary, issue.Status.Name)
			}
			// Keep a boundary marker in front; the ticket reference goes
			// between the marker and the subject.
			if m := markerRe.FindStringSubmatch(e.Summary); m != nil {
				e.Summary = fmt.Sprintf("%s %s #%d: %s", m[1], issue.Tracker, issue.ID, m[2])
			} else {
				e.Summary = fmt.Sprintf("%s #%d: %s", issue.Tracker, issue.ID, e.Summary)
			}
		default:
			return fmt.Errorf("unknown summary strategy %q", r.settings.Summary)
		}
	}
	return nil
}

// enhanceIssueDescription prepends the strategy-selected header block to each
// entry description.
func (r *Renderer) enhanceIssueDescription(issue model.Issue, entries []*Entry) error {
	for _, e := range entries {
		var header []string
		switch r.settings.Description {
		case DescriptionPlain:
			continue
		case DescriptionURLAndVersion:
			header = append(header, fmt.Sprintf("%s #%d: %s", issue.Tracker, issue.ID, e.URL))
			header = r.appendIssueProjectLines(header, issue, false)
		case DescriptionFullNoURL:
			header = append(header, fmt.Sprintf("%s #%d", issue.Tracker, issue.ID))
			header = r.appendIssueProjectLines(header, issue, true)
		case DescriptionFull:
			header = append(header, fmt.Sprintf("%s #%d: %s", issue.Tracker, issue.ID, e.URL))
			header = r.appendIssueProjectLines(header, issue, true)
		default:
			return fmt.Errorf("unknown description strategy %q", r.settings.Description)
		}
		e.Description = prependHeader(header, e.Description)
	}
	return nil
}

// appendIssueProjectLines adds the metadata lines below the header's first
// line. Each line is included only when the corresponding field is known.
// full additionally covers author, status, priority, assignee and category.
func (r *Renderer) appendIssueProjectLines(header []string, issue model.Issue, full bool) []string {
	if issue.ProjectName != "" {
		header = append(header, r.loc.Label(locale.FieldProject)+": "+issue.ProjectName)
	}
	if full {
		if issue.Author.Name != "" {
			header = append(header, r.loc.Label(locale.FieldAuthor)+": "+issue.Author.Name)
		}
		if issue.Status.Name != "" {
			header = append(header, r.loc.Label(locale.FieldStatus)+": "+issue.Status.Name)
		}
		if issue.PriorityName != "" {
			header = append(header, r.loc.Label(locale.FieldPriority)+": "+issue.PriorityName)
		}
		if issue.AssignedTo != nil {
			header = append(header, r.loc.Label(locale.FieldAssignedTo)+": "+issue.AssignedTo.Name)
		}
		if issue.Category != "" {
			header = append(header, r.loc.Label(locale.FieldCategory)+": "+issue.Category)
		}
	}
	if issue.FixedVersion != nil {
		header = append(header, r.loc.Label(locale.FieldFixedVersion)+": "+issue.FixedVersion.Name)
	}
	return header
}

// enhanceVersionDescription is the version analogue of issue description
// enrichment; versions only carry project and status metadata.
func (r *Renderer) enhanceVersionDescription(v model.Version, entries []*Entry) error {
	for _, e := range entries {
		var header []string
		switch r.settings.Description {
		case DescriptionPlain:
			continue
		case DescriptionURLAndVersion:
			header = append(header, r.loc.Label(locale.FieldURL)+": "+e.URL)
		case DescriptionFullNoURL:
			// Bare url label only; this mode carries no links.
			header = append(header, r.loc.Label(locale.FieldURL))
			header = r.appendVersionLines(header, v)
		case DescriptionFull:
			header = append(header, r.loc.Label(locale.FieldURL)+": "+e.URL)
			header = r.appendVersionLines(header, v)
		default:
			return fmt.Errorf("unknown description strategy %q", r.settings.Description)
		}
		e.Description = prependHeader(header, e.Description)
	}
	return nil
}

func (r *Renderer) appendVersionLines(header []string, v model.Version) []string {
	if v.ProjectName != "" {
		header = append(header, r.loc.Label(locale.FieldProject)+": "+v.ProjectName)
	}
	if v.Status != "" {
		header = append(header, r.loc.Label(locale.FieldStatus)+": "+v.Status)
	}
	return header
}

// prependHeader joins the header lines and glues the original description
// below them, separated by one blank line. Without an original description
// the header alone becomes the description.
func prependHeader(header []string, original string) string {
	h := strings.Join(header, "\n")
	if original == "" {
		return h
	}
	return h + "\n\n" + original
}
