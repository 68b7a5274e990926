package service

import (
	"sort"
	"strings"

	"github.com/Moonidhi/CivicIssueManager/internal/domain"
)

// Pure projections over the issue collection. Nothing here caches: every
// call recomputes from the slice it is handed.

// StatusSummary zero-fills every status so dashboards never miss a key.
type StatusSummary struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
}

// CategoryCount pairs a category with its count and share of the total.
type CategoryCount struct {
	Category   domain.IssueCategory `json:"category"`
	Count      int                  `json:"count"`
	Percentage float64              `json:"percentage"`
}

// LocationCount pairs a truncated location with its count.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// TrendBucket holds open/resolved counts for one creation month.
type TrendBucket struct {
	Month    string `json:"month"`
	Open     int    `json:"open"`
	Resolved int    `json:"resolved"`
}

// StatusCounts tallies issues per status with all four keys present.
func StatusCounts(issues []domain.Issue) StatusSummary {
	summary := StatusSummary{Total: len(issues)}
	for _, issue := range issues {
		switch issue.Status {
		case domain.StatusOpen:
			summary.Open++
		case domain.StatusInProgress:
			summary.InProgress++
		case domain.StatusResolved:
			summary.Resolved++
		case domain.StatusClosed:
			summary.Closed++
		}
	}
	return summary
}

// CategoryCounts tallies occurring categories, largest first. Percentages
// are 0 for an empty collection rather than NaN.
func CategoryCounts(issues []domain.Issue) []CategoryCount {
	counts := make(map[domain.IssueCategory]int)
	order := []domain.IssueCategory{}
	for _, issue := range issues {
		if _, seen := counts[issue.Category]; !seen {
			order = append(order, issue.Category)
		}
		counts[issue.Category]++
	}

	total := len(issues)
	result := make([]CategoryCount, 0, len(order))
	for _, category := range order {
		entry := CategoryCount{Category: category, Count: counts[category]}
		if total > 0 {
			entry.Percentage = float64(entry.Count) / float64(total) * 100
		}
		result = append(result, entry)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// TopLocations aggregates issues per "city", taking everything before the
// first comma of the free-text location. Ties keep first-seen order.
func TopLocations(issues []domain.Issue, n int) []LocationCount {
	counts := make(map[string]int)
	order := []string{}
	for _, issue := range issues {
		location := strings.TrimSpace(strings.SplitN(issue.Location, ",", 2)[0])
		if _, seen := counts[location]; !seen {
			order = append(order, location)
		}
		counts[location]++
	}

	result := make([]LocationCount, 0, len(order))
	for _, location := range order {
		result = append(result, LocationCount{Location: location, Count: counts[location]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result
}

// UrgentOpenIssues returns urgent issues that are neither resolved nor closed.
func UrgentOpenIssues(issues []domain.Issue) []domain.Issue {
	result := []domain.Issue{}
	for _, issue := range issues {
		if issue.Priority == domain.PriorityUrgent &&
			issue.Status != domain.StatusResolved && issue.Status != domain.StatusClosed {
			result = append(result, issue)
		}
	}
	return result
}

// RecentIssues returns the n most recently created issues. The sort is
// stable so identical timestamps keep collection order.
func RecentIssues(issues []domain.Issue, n int) []domain.Issue {
	result := make([]domain.Issue, len(issues))
	copy(result, issues)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result
}

// MonthlyTrend buckets issues by creation month (short name, first-seen
// order). Resolved and closed issues count as resolved, all others as open.
func MonthlyTrend(issues []domain.Issue) []TrendBucket {
	index := make(map[string]int)
	result := []TrendBucket{}
	for _, issue := range issues {
		month := issue.CreatedAt.Format("Jan")
		i, seen := index[month]
		if !seen {
			i = len(result)
			index[month] = i
			result = append(result, TrendBucket{Month: month})
		}
		if issue.Status == domain.StatusResolved || issue.Status == domain.StatusClosed {
			result[i].Resolved++
		} else {
			result[i].Open++
		}
	}
	return result
}
