package render

import (
	"fmt"
	"strconv"
	"strings"
)

// uidNamespace is the product namespace embedded in every UID.
const uidNamespace = "redmics"

// Item kinds as they appear inside UIDs.
const (
	kindIssue   = "issue"
	kindVersion = "version"
)

// UID suffixes distinguishing the two halves of a split entry.
const (
	suffixStart = "s"
	suffixEnd   = "e"
)

// buildUID derives the stable unique identifier for one entry:
//
//	id:redmics:project:<project>:<kind>:<item>[:<suffix>]@<host>
//
// The same item rendered with the same strategy on the same deployment always
// yields the same UID, which is what lets calendar clients update entries in
// place instead of duplicating them.
func buildUID(kind string, projectID, itemID int, suffix, host string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "id:%s:project:%d:%s:%d", uidNamespace, projectID, kind, itemID)
	if suffix != "" {
		b.WriteString(":")
		b.WriteString(suffix)
	}
	b.WriteString("@")
	b.WriteString(host)
	return b.String()
}

// UIDParts is the decomposed form of an entry UID.
type UIDParts struct {
	Kind      string
	ProjectID int
	ItemID    int
	Suffix    string
	Host      string
}

// ParseUID decomposes a UID produced by this package back into its parts.
func ParseUID(uid string) (UIDParts, error) {
	var p UIDParts

	body, host, ok := strings.Cut(uid, "@")
	if !ok || host == "" {
		return p, fmt.Errorf("uid %q: missing host", uid)
	}
	p.Host = host

	fields := strings.Split(body, ":")
	if len(fields) != 6 && len(fields) != 7 {
		return p, fmt.Errorf("uid %q: unexpected field count %d", uid, len(fields))
	}
	if fields[0] != "id" || fields[1] != uidNamespace || fields[2] != "project" {
		return p, fmt.Errorf("uid %q: not a %s identifier", uid, uidNamespace)
	}

	projectID, err := strconv.Atoi(fields[3])
	if err != nil {
		return p, fmt.Errorf("uid %q: bad project id: %w", uid, err)
	}
	p.ProjectID = projectID

	switch fields[4] {
	case kindIssue, kindVersion:
		p.Kind = fields[4]
	default:
		return p, fmt.Errorf("uid %q: unknown kind %q", uid, fields[4])
	}

	itemID, err := strconv.Atoi(fields[5])
	if err != nil {
		return p, fmt.Errorf("uid %q: bad item id: %w", uid, err)
	}
	p.ItemID = itemID

	if len(fields) == 7 {
		switch fields[6] {
		case suffixStart, suffixEnd:
			p.Suffix = fields[6]
		default:
			return p, fmt.Errorf("uid %q: unknown suffix %q", uid, fields[6])
		}
	}
	return p, nil
}
