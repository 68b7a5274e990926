package service

import (
	"math"
	"testing"
	"time"

	"github.com/Moonidhi/CivicIssueManager/internal/domain"
)

func TestStatusCounts(t *testing.T) {
	issues := []domain.Issue{
		{Status: domain.StatusOpen},
		{Status: domain.StatusOpen},
		{Status: domain.StatusInProgress},
		{Status: domain.StatusResolved},
		{Status: domain.StatusClosed},
	}

	got := StatusCounts(issues)
	want := StatusSummary{Total: 5, Open: 2, InProgress: 1, Resolved: 1, Closed: 1}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestStatusCounts_EmptyCollection(t *testing.T) {
	got := StatusCounts(nil)
	if got != (StatusSummary{}) {
		t.Errorf("expected all-zero summary, got %+v", got)
	}
}

func TestCategoryCounts(t *testing.T) {
	issues := []domain.Issue{
		{Category: domain.CategorySanitation},
		{Category: domain.CategoryInfrastructure},
		{Category: domain.CategoryInfrastructure},
		{Category: domain.CategoryInfrastructure},
		{Category: domain.CategorySafety},
	}

	got := CategoryCounts(issues)
	if len(got) != 3 {
		t.Fatalf("expected 3 occurring categories, got %d", len(got))
	}
	if got[0].Category != domain.CategoryInfrastructure || got[0].Count != 3 {
		t.Errorf("expected infrastructure first with 3, got %+v", got[0])
	}
	if math.Abs(got[0].Percentage-60.0) > 1e-9 {
		t.Errorf("expected 60%%, got %f", got[0].Percentage)
	}
	// Sanitation and safety tie at 1; sanitation appeared first.
	if got[1].Category != domain.CategorySanitation || got[2].Category != domain.CategorySafety {
		t.Errorf("expected first-seen tie order, got %+v", got[1:])
	}
}

func TestCategoryCounts_EmptyCollection(t *testing.T) {
	got := CategoryCounts(nil)
	if len(got) != 0 {
		t.Errorf("expected no entries, got %+v", got)
	}
	for _, entry := range got {
		if math.IsNaN(entry.Percentage) {
			t.Errorf("percentage must never be NaN, got %+v", entry)
		}
	}
}

func TestTopLocations(t *testing.T) {
	issues := []domain.Issue{
		{Location: "Main St, Springfield"},
		{Location: "Main St, Shelbyville"},
		{Location: "  Main St  "},
		{Location: "Elm St, Springfield"},
		{Location: "Elm St"},
		{Location: "Oak Ave"},
	}

	got := TopLocations(issues, 5)
	if len(got) != 3 {
		t.Fatalf("expected 3 locations, got %+v", got)
	}
	if got[0].Location != "Main St" || got[0].Count != 3 {
		t.Errorf("expected Main St x3 first, got %+v", got[0])
	}
	if got[1].Location != "Elm St" || got[1].Count != 2 {
		t.Errorf("expected Elm St x2 second, got %+v", got[1])
	}
	if got[2].Location != "Oak Ave" || got[2].Count != 1 {
		t.Errorf("expected Oak Ave x1 third, got %+v", got[2])
	}
}

func TestTopLocations_Truncates(t *testing.T) {
	issues := []domain.Issue{
		{Location: "A St"},
		{Location: "B St"},
		{Location: "C St"},
	}
	got := TopLocations(issues, 2)
	if len(got) != 2 {
		t.Errorf("expected 2 entries, got %d", len(got))
	}
}

func TestUrgentOpenIssues(t *testing.T) {
	issues := []domain.Issue{
		{ID: "1", Priority: domain.PriorityUrgent, Status: domain.StatusOpen},
		{ID: "2", Priority: domain.PriorityUrgent, Status: domain.StatusResolved},
		{ID: "3", Priority: domain.PriorityUrgent, Status: domain.StatusClosed},
		{ID: "4", Priority: domain.PriorityHigh, Status: domain.StatusOpen},
		{ID: "5", Priority: domain.PriorityUrgent, Status: domain.StatusInProgress},
	}

	got := UrgentOpenIssues(issues)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "5" {
		t.Errorf("expected issues 1 and 5, got %v", ids(got))
	}
}

func TestRecentIssues(t *testing.T) {
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	issues := []domain.Issue{
		{ID: "1", CreatedAt: base},
		{ID: "2", CreatedAt: base.Add(48 * time.Hour)},
		{ID: "3", CreatedAt: base.Add(24 * time.Hour)},
		{ID: "4", CreatedAt: base.Add(24 * time.Hour)}, // tie with 3
	}

	got := RecentIssues(issues, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(got))
	}
	if got[0].ID != "2" {
		t.Errorf("expected newest first, got %v", ids(got))
	}
	// Stable sort keeps collection order for the tied pair.
	if got[1].ID != "3" || got[2].ID != "4" {
		t.Errorf("expected tie order 3 then 4, got %v", ids(got))
	}
	if issues[0].ID != "1" {
		t.Error("input slice must not be reordered")
	}
}

func TestMonthlyTrend(t *testing.T) {
	jan := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)
	issues := []domain.Issue{
		{CreatedAt: feb, Status: domain.StatusOpen},
		{CreatedAt: jan, Status: domain.StatusResolved},
		{CreatedAt: jan, Status: domain.StatusClosed},
		{CreatedAt: feb, Status: domain.StatusInProgress},
		{CreatedAt: jan, Status: domain.StatusOpen},
	}

	got := MonthlyTrend(issues)
	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %+v", got)
	}
	// Buckets appear in first-seen order: Feb came first in the collection.
	if got[0].Month != "Feb" || got[0].Open != 2 || got[0].Resolved != 0 {
		t.Errorf("unexpected Feb bucket %+v", got[0])
	}
	// Closed counts as resolved alongside resolved.
	if got[1].Month != "Jan" || got[1].Open != 1 || got[1].Resolved != 2 {
		t.Errorf("unexpected Jan bucket %+v", got[1])
	}
}

func TestMonthlyTrend_Empty(t *testing.T) {
	if got := MonthlyTrend(nil); len(got) != 0 {
		t.Errorf("expected no buckets, got %+v", got)
	}
}
