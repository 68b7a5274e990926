package domain

import "time"

// Comment is an immutable, append-only entry on an issue thread.
// IsOfficial is true iff the author held the admin role at post time.
type Comment struct {
	ID         string    `json:"id"`
	IssueID    string    `json:"issue_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	Content    string    `json:"content"`
	IsOfficial bool      `json:"is_official"`
	CreatedAt  time.Time `json:"created_at"`
}
