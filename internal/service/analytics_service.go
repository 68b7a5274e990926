package service

import (
	"context"

	"github.com/Moonidhi/CivicIssueManager/internal/domain"
	"github.com/Moonidhi/CivicIssueManager/internal/repository"
	apperrors "github.com/Moonidhi/CivicIssueManager/pkg/util"
)

const topLocationLimit = 5
const recentIssueLimit = 5

// AnalyticsReport is the full analytics view.
type AnalyticsReport struct {
	Statuses     StatusSummary   `json:"statuses"`
	Categories   []CategoryCount `json:"categories"`
	TopLocations []LocationCount `json:"top_locations"`
	MonthlyTrend []TrendBucket   `json:"monthly_trend"`
}

// DashboardReport is the admin triage view.
type DashboardReport struct {
	Statuses   StatusSummary   `json:"statuses"`
	Urgent     []domain.Issue  `json:"urgent_issues"`
	Recent     []domain.Issue  `json:"recent_issues"`
	Categories []CategoryCount `json:"categories"`
}

// AnalyticsService derives aggregate views from the issue collection.
type AnalyticsService struct {
	issues repository.IssueRepository
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(issues repository.IssueRepository) *AnalyticsService {
	return &AnalyticsService{issues: issues}
}

// Report computes the analytics projection from the current collection.
func (s *AnalyticsService) Report(ctx context.Context) (*AnalyticsReport, error) {
	issues, err := s.issues.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &AnalyticsReport{
		Statuses:     StatusCounts(issues),
		Categories:   CategoryCounts(issues),
		TopLocations: TopLocations(issues, topLocationLimit),
		MonthlyTrend: MonthlyTrend(issues),
	}, nil
}

// Dashboard computes the admin triage projection.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*DashboardReport, error) {
	issues, err := s.issues.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &DashboardReport{
		Statuses:   StatusCounts(issues),
		Urgent:     UrgentOpenIssues(issues),
		Recent:     RecentIssues(issues, recentIssueLimit),
		Categories: CategoryCounts(issues),
	}, nil
}
