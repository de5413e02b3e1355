package render

import (
	"time"

	"redmics/internal/locale"
	"redmics/internal/model"
)

// Shared fixtures for the render package tests.

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testSettings() Settings {
	return Settings{
		Issues:         IssueEndDate,
		Versions:       VersionEndDate,
		Summary:        SummaryPlain,
		Description:    DescriptionPlain,
		Hostname:       "example.com",
		BaseURL:        "http://example.com",
		PriorityLevels: 5,
	}
}

func testRenderer(s Settings) *Renderer {
	r, err := New(s, locale.Default())
	if err != nil {
		panic(err)
	}
	return r
}

func testIssue() model.Issue {
	return model.Issue{
		ID:               42,
		ProjectID:        7,
		ProjectName:      "Apollo",
		Tracker:          "Bug",
		Subject:          "Fix leak",
		Status:           model.IssueStatus{Name: "New"},
		Author:           model.User{Login: "frank", Name: "Frank Author", Mail: "frank@example.com"},
		PriorityPosition: 2,
		PriorityName:     "Normal",
		CreatedOn:        time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func testVersion() model.Version {
	return model.Version{
		ID:          9,
		ProjectID:   3,
		ProjectName: "Apollo",
		Name:        "2.0",
		Status:      "open",
		CreatedOn:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
