package dto

import (
	"time"

	"github.com/Moonidhi/CivicIssueManager/internal/domain"
)

// CreateIssueRequest payload.
type CreateIssueRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Category    domain.IssueCategory `json:"category"`
	Location    string               `json:"location"`
	Priority    domain.IssuePriority `json:"priority"`
	PhotoURLs   []string             `json:"photo_urls"`
}

// ChangeStatusRequest payload.
type ChangeStatusRequest struct {
	Status domain.IssueStatus `json:"status"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// IssueResponse is the wire shape of an issue.
type IssueResponse struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	UserName    string               `json:"user_name"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Category    domain.IssueCategory `json:"category"`
	Location    string               `json:"location"`
	Status      domain.IssueStatus   `json:"status"`
	Priority    domain.IssuePriority `json:"priority"`
	PhotoURLs   []string             `json:"photo_urls"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	ResolvedAt  *time.Time           `json:"resolved_at,omitempty"`
}

// CommentResponse is the wire shape of a comment.
type CommentResponse struct {
	ID         string    `json:"id"`
	IssueID    string    `json:"issue_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	Content    string    `json:"content"`
	IsOfficial bool      `json:"is_official"`
	CreatedAt  time.Time `json:"created_at"`
}

// IssueDetailResponse bundles an issue with its comment thread.
type IssueDetailResponse struct {
	IssueResponse
	Comments []CommentResponse `json:"comments"`
}

// NewIssueResponse maps a domain issue.
func NewIssueResponse(issue *domain.Issue) IssueResponse {
	return IssueResponse{
		ID:          issue.ID,
		UserID:      issue.UserID,
		UserName:    issue.UserName,
		Title:       issue.Title,
		Description: issue.Description,
		Category:    issue.Category,
		Location:    issue.Location,
		Status:      issue.Status,
		Priority:    issue.Priority,
		PhotoURLs:   issue.PhotoURLs,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
		ResolvedAt:  issue.ResolvedAt,
	}
}

// NewCommentResponse maps a domain comment.
func NewCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:         comment.ID,
		IssueID:    comment.IssueID,
		UserID:     comment.UserID,
		UserName:   comment.UserName,
		Content:    comment.Content,
		IsOfficial: comment.IsOfficial,
		CreatedAt:  comment.CreatedAt,
	}
}
