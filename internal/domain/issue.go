package domain

import "time"

// IssueStatus enumerates lifecycle states for reported issues.
type IssueStatus string

const (
	StatusOpen       IssueStatus = "open"
	StatusInProgress IssueStatus = "in_progress"
	StatusResolved   IssueStatus = "resolved"
	StatusClosed     IssueStatus = "closed"
)

// IssueStatuses lists every status in display order.
var IssueStatuses = []IssueStatus{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

// IssuePriority enumerates reporter-selected urgency.
type IssuePriority string

const (
	PriorityLow    IssuePriority = "low"
	PriorityMedium IssuePriority = "medium"
	PriorityHigh   IssuePriority = "high"
	PriorityUrgent IssuePriority = "urgent"
)

// IssueCategory classifies the civic concern.
type IssueCategory string

const (
	CategoryInfrastructure IssueCategory = "infrastructure"
	CategorySanitation     IssueCategory = "sanitation"
	CategorySafety         IssueCategory = "safety"
	CategoryEnvironment    IssueCategory = "environment"
	CategoryUtilities      IssueCategory = "utilities"
	CategoryTransportation IssueCategory = "transportation"
	CategoryOther          IssueCategory = "other"
)

// MaxPhotoURLs caps attachments per issue.
const MaxPhotoURLs = 5

// Issue is the aggregate for citizen reports. UserName snapshots the
// reporter's name at creation time and is never re-synced. ResolvedAt holds
// the most recent resolution timestamp and is never cleared once set.
type Issue struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	UserName    string        `json:"user_name"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    IssueCategory `json:"category"`
	Location    string        `json:"location"`
	Status      IssueStatus   `json:"status"`
	Priority    IssuePriority `json:"priority"`
	PhotoURLs   []string      `json:"photo_urls"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	ResolvedAt  *time.Time    `json:"resolved_at,omitempty"`
}
