package domain

import "time"

// NotificationType tags what a notification is about.
type NotificationType string

const (
	NotificationStatusChange NotificationType = "status_change"
	NotificationNewComment   NotificationType = "new_comment"
	NotificationResolved     NotificationType = "resolved"
	NotificationAssigned     NotificationType = "assigned"
)

// Notification is addressed to a single recipient about a single issue.
// Only the read flag is mutable after creation.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	IssueID   string           `json:"issue_id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
