package events

import (
	"time"

	"github.com/Moonidhi/CivicIssueManager/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIssueCreated       EventType = "issue_created"
	EventIssueStatusChanged EventType = "issue_status_changed"
	EventIssueCommentAdded  EventType = "issue_comment_added"
)

// Actor captures who triggered an event.
type Actor struct {
	UserID string          `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

// Event is a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	IssueID   string      `json:"issue_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// IssueCreatedPayload payload.
type IssueCreatedPayload struct {
	Title    string               `json:"title"`
	Category domain.IssueCategory `json:"category"`
	Priority domain.IssuePriority `json:"priority"`
	Location string               `json:"location"`
}

// IssueStatusChangedPayload carries everything the notification side needs
// so it never has to re-read the issue.
type IssueStatusChangedPayload struct {
	OldStatus  domain.IssueStatus `json:"old_status"`
	NewStatus  domain.IssueStatus `json:"new_status"`
	ReporterID string             `json:"reporter_id"`
	IssueTitle string             `json:"issue_title"`
}

// IssueCommentAddedPayload payload.
type IssueCommentAddedPayload struct {
	CommentID  string `json:"comment_id"`
	AuthorID   string `json:"author_id"`
	IsOfficial bool   `json:"is_official"`
}
