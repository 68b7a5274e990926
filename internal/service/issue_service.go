package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Moonidhi/CivicIssueManager/internal/domain"
	"github.com/Moonidhi/CivicIssueManager/internal/events"
	"github.com/Moonidhi/CivicIssueManager/internal/repository"
	apperrors "github.com/Moonidhi/CivicIssueManager/pkg/util"
)

// IssueService is the issue lifecycle engine: it validates creations,
// governs status transitions and fans transitions out as events.
type IssueService struct {
	issues     repository.IssueRepository
	comments   repository.CommentRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// IssueDependencies bundles collaborators for the issue service.
type IssueDependencies struct {
	IssueRepo   repository.IssueRepository
	CommentRepo repository.CommentRepository
	Dispatcher  events.Dispatcher
}

// IssueCreateInput describes a citizen's draft report.
type IssueCreateInput struct {
	Title       string
	Description string
	Category    domain.IssueCategory
	Location    string
	Priority    domain.IssuePriority
	PhotoURLs   []string
}

// NewIssueService constructs the service.
func NewIssueService(deps IssueDependencies) *IssueService {
	return &IssueService{
		issues:     deps.IssueRepo,
		comments:   deps.CommentRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// CreateIssue files a new report on behalf of the actor. Status is forced to
// open and the actor's name is snapshotted onto the issue.
func (s *IssueService) CreateIssue(ctx context.Context, actor *domain.User, input IssueCreateInput) (*domain.Issue, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	location := strings.TrimSpace(input.Location)
	if title == "" || description == "" || location == "" || input.Category == "" {
		return nil, apperrors.NewValidationError("title, description, location and category are required", nil)
	}
	if len(input.PhotoURLs) > domain.MaxPhotoURLs {
		return nil, apperrors.NewValidationError("at most 5 photos per issue", map[string]any{
			"photo_urls": len(input.PhotoURLs),
		})
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := s.now()
	issue := &domain.Issue{
		UserID:      actor.ID,
		UserName:    actor.FullName,
		Title:       title,
		Description: description,
		Category:    input.Category,
		Location:    location,
		Status:      domain.StatusOpen,
		Priority:    priority,
		PhotoURLs:   input.PhotoURLs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventIssueCreated,
		IssueID: issue.ID,
		Actor:   eventActor(actor),
		Payload: events.IssueCreatedPayload{
			Title:    issue.Title,
			Category: issue.Category,
			Priority: issue.Priority,
			Location: issue.Location,
		},
	})
	return issue, nil
}

// ChangeStatus moves an issue to newStatus. Only admins may do this; the
// check lives here, not in the UI. Any (old, new) pair is accepted. A no-op
// transition performs no write and emits no event. ResolvedAt is stamped on
// every transition to resolved and never cleared afterwards.
func (s *IssueService) ChangeStatus(ctx context.Context, actor *domain.User, issueID string, newStatus domain.IssueStatus) (*domain.Issue, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("only administrators can change issue status")
	}
	if !validStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}

	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("issue", map[string]any{"id": issueID})
		}
		return nil, apperrors.MapError(err)
	}

	if issue.Status == newStatus {
		return issue, nil
	}

	now := s.now()
	oldStatus := issue.Status
	issue.Status = newStatus
	issue.UpdatedAt = now
	if newStatus == domain.StatusResolved {
		resolvedAt := now
		issue.ResolvedAt = &resolvedAt
	}

	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventIssueStatusChanged,
		IssueID: issue.ID,
		Actor:   eventActor(actor),
		Payload: events.IssueStatusChangedPayload{
			OldStatus:  oldStatus,
			NewStatus:  newStatus,
			ReporterID: issue.UserID,
			IssueTitle: issue.Title,
		},
	})
	return issue, nil
}

// AddComment appends an immutable comment to an issue thread. The comment is
// official iff the actor holds the admin role at post time.
func (s *IssueService) AddComment(ctx context.Context, actor *domain.User, issueID, content string) (*domain.Comment, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("comment content is required", nil)
	}

	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("issue", map[string]any{"id": issueID})
		}
		return nil, apperrors.MapError(err)
	}

	comment := &domain.Comment{
		IssueID:    issue.ID,
		UserID:     actor.ID,
		UserName:   actor.FullName,
		Content:    content,
		IsOfficial: actor.IsAdmin(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventIssueCommentAdded,
		IssueID: issue.ID,
		Actor:   eventActor(actor),
		Payload: events.IssueCommentAddedPayload{
			CommentID:  comment.ID,
			AuthorID:   comment.UserID,
			IsOfficial: comment.IsOfficial,
		},
	})
	return comment, nil
}

// GetIssue fetches an issue together with its comment thread.
func (s *IssueService) GetIssue(ctx context.Context, issueID string) (*domain.Issue, []domain.Comment, error) {
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("issue", map[string]any{"id": issueID})
		}
		return nil, nil, apperrors.MapError(err)
	}
	comments, err := s.comments.ListByIssue(ctx, issue.ID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return issue, comments, nil
}

// ListIssues returns the full collection, newest first, after applying the
// compound filter in memory.
func (s *IssueService) ListIssues(ctx context.Context, filter IssueFilter) ([]domain.Issue, error) {
	issues, err := s.issues.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return FilterIssues(issues, filter), nil
}

func validStatus(status domain.IssueStatus) bool {
	for _, candidate := range domain.IssueStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}

func (s *IssueService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func eventActor(actor *domain.User) events.Actor {
	if actor == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: actor.ID, Role: actor.Role}
}
