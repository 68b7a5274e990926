package service

import (
	"strings"

	"github.com/Moonidhi/CivicIssueManager/internal/domain"
)

// FilterAll is the sentinel meaning "no filter on this axis".
const FilterAll = "all"

// IssueFilter is a compound predicate over the issue collection. All four
// axes combine with AND. An empty value is treated like the sentinel.
type IssueFilter struct {
	SearchTerm string
	Category   string
	Status     string
	Priority   string
}

// FilterIssues applies the compound filter, preserving input order. The
// search term matches case-insensitively against title, description or
// location; an empty term matches everything.
func FilterIssues(issues []domain.Issue, filter IssueFilter) []domain.Issue {
	search := strings.ToLower(strings.TrimSpace(filter.SearchTerm))

	result := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		if search != "" &&
			!strings.Contains(strings.ToLower(issue.Title), search) &&
			!strings.Contains(strings.ToLower(issue.Description), search) &&
			!strings.Contains(strings.ToLower(issue.Location), search) {
			continue
		}
		if !axisMatches(filter.Category, string(issue.Category)) {
			continue
		}
		if !axisMatches(filter.Status, string(issue.Status)) {
			continue
		}
		if !axisMatches(filter.Priority, string(issue.Priority)) {
			continue
		}
		result = append(result, issue)
	}
	return result
}

func axisMatches(selected, value string) bool {
	return selected == "" || selected == FilterAll || selected == value
}
