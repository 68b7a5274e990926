package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Moonidhi/CivicIssueManager/internal/domain"
	"github.com/Moonidhi/CivicIssueManager/internal/events"
	apperrors "github.com/Moonidhi/CivicIssueManager/pkg/util"
)

type fakeIssueRepo struct {
	issues []*domain.Issue
	nextID int
}

func (r *fakeIssueRepo) Create(_ context.Context, issue *domain.Issue) error {
	r.nextID++
	issue.ID = "issue-" + strconv.Itoa(r.nextID)
	stored := *issue
	r.issues = append(r.issues, &stored)
	return nil
}

func (r *fakeIssueRepo) Update(_ context.Context, issue *domain.Issue) error {
	for i, stored := range r.issues {
		if stored.ID == issue.ID {
			updated := *issue
			r.issues[i] = &updated
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeIssueRepo) GetByID(_ context.Context, id string) (*domain.Issue, error) {
	for _, stored := range r.issues {
		if stored.ID == id {
			found := *stored
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeIssueRepo) ListAll(_ context.Context) ([]domain.Issue, error) {
	result := make([]domain.Issue, 0, len(r.issues))
	for i := len(r.issues) - 1; i >= 0; i-- {
		result = append(result, *r.issues[i])
	}
	return result, nil
}

type fakeCommentRepo struct {
	comments []*domain.Comment
	nextID   int
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.nextID++
	comment.ID = "comment-" + strconv.Itoa(r.nextID)
	comment.CreatedAt = time.Now()
	stored := *comment
	r.comments = append(r.comments, &stored)
	return nil
}

func (r *fakeCommentRepo) ListByIssue(_ context.Context, issueID string) ([]domain.Comment, error) {
	result := []domain.Comment{}
	for _, stored := range r.comments {
		if stored.IssueID == issueID {
			result = append(result, *stored)
		}
	}
	return result, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func newTestIssueService(now time.Time) (*IssueService, *fakeIssueRepo, *recordingDispatcher) {
	issueRepo := &fakeIssueRepo{}
	dispatcher := &recordingDispatcher{}
	svc := NewIssueService(IssueDependencies{
		IssueRepo:   issueRepo,
		CommentRepo: &fakeCommentRepo{},
		Dispatcher:  dispatcher,
	})
	svc.now = func() time.Time { return now }
	return svc, issueRepo, dispatcher
}

var (
	citizen = &domain.User{ID: "user-1", FullName: "John Citizen", Role: domain.RoleCitizen}
	admin   = &domain.User{ID: "user-2", FullName: "Admin User", Role: domain.RoleAdmin}
)

func validDraft() IssueCreateInput {
	return IssueCreateInput{
		Title:       "Broken Streetlight",
		Description: "The light on the corner has been out for a week",
		Category:    domain.CategoryInfrastructure,
		Location:    "Main St, Springfield",
		Priority:    domain.PriorityHigh,
	}
}

func TestCreateIssue(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc, _, dispatcher := newTestIssueService(now)
	ctx := context.Background()

	issue, err := svc.CreateIssue(ctx, citizen, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if issue.Status != domain.StatusOpen {
		t.Errorf("expected status open, got %s", issue.Status)
	}
	if !issue.CreatedAt.Equal(issue.UpdatedAt) {
		t.Errorf("expected created_at == updated_at, got %v and %v", issue.CreatedAt, issue.UpdatedAt)
	}
	if issue.ResolvedAt != nil {
		t.Errorf("expected resolved_at unset, got %v", issue.ResolvedAt)
	}
	if issue.UserID != citizen.ID || issue.UserName != citizen.FullName {
		t.Errorf("expected reporter snapshot, got %s/%s", issue.UserID, issue.UserName)
	}
	if len(dispatcher.published) != 1 || dispatcher.published[0].Type != events.EventIssueCreated {
		t.Errorf("expected one issue_created event, got %+v", dispatcher.published)
	}
}

func TestCreateIssue_Validation(t *testing.T) {
	svc, _, _ := newTestIssueService(time.Now())
	ctx := context.Background()

	sixPhotos := validDraft()
	sixPhotos.PhotoURLs = []string{"a", "b", "c", "d", "e", "f"}

	tests := []struct {
		name   string
		mutate func(*IssueCreateInput)
	}{
		{"empty title", func(in *IssueCreateInput) { in.Title = "   " }},
		{"empty description", func(in *IssueCreateInput) { in.Description = "" }},
		{"empty location", func(in *IssueCreateInput) { in.Location = "" }},
		{"empty category", func(in *IssueCreateInput) { in.Category = "" }},
		{"too many photos", func(in *IssueCreateInput) { in.PhotoURLs = sixPhotos.PhotoURLs }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validDraft()
			tt.mutate(&input)
			_, err := svc.CreateIssue(ctx, citizen, input)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if de := apperrors.ToDomainError(err); de.Code != "VALIDATION_FAILED" {
				t.Errorf("expected VALIDATION_FAILED, got %s", de.Code)
			}
		})
	}
}

func TestCreateIssue_DefaultPriority(t *testing.T) {
	svc, _, _ := newTestIssueService(time.Now())

	input := validDraft()
	input.Priority = ""
	issue, err := svc.CreateIssue(context.Background(), citizen, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issue.Priority != domain.PriorityMedium {
		t.Errorf("expected medium default, got %s", issue.Priority)
	}
}

func TestChangeStatus_RequiresAdmin(t *testing.T) {
	svc, _, _ := newTestIssueService(time.Now())
	ctx := context.Background()

	issue, err := svc.CreateIssue(ctx, citizen, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.ChangeStatus(ctx, citizen, issue.ID, domain.StatusInProgress)
	if err == nil {
		t.Fatal("expected forbidden error, got nil")
	}
	if de := apperrors.ToDomainError(err); de.Code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %s", de.Code)
	}
}

func TestChangeStatus_NoOpProducesNoEvent(t *testing.T) {
	created := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc, _, dispatcher := newTestIssueService(created)
	ctx := context.Background()

	issue, err := svc.CreateIssue(ctx, citizen, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dispatcher.published = nil

	svc.now = func() time.Time { return created.Add(time.Hour) }
	unchanged, err := svc.ChangeStatus(ctx, admin, issue.ID, domain.StatusOpen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dispatcher.published) != 0 {
		t.Errorf("expected no event for no-op transition, got %d", len(dispatcher.published))
	}
	if !unchanged.UpdatedAt.Equal(created) {
		t.Errorf("expected updated_at untouched, got %v", unchanged.UpdatedAt)
	}
}

func TestChangeStatus_EveryPairIsLegal(t *testing.T) {
	for _, from := range domain.IssueStatuses {
		for _, to := range domain.IssueStatuses {
			if from == to {
				continue
			}
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				svc, repo, _ := newTestIssueService(time.Now())
				ctx := context.Background()
				issue, err := svc.CreateIssue(ctx, citizen, validDraft())
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				repo.issues[0].Status = from

				if _, err := svc.ChangeStatus(ctx, admin, issue.ID, to); err != nil {
					t.Errorf("transition %s -> %s rejected: %v", from, to, err)
				}
			})
		}
	}
}

func TestChangeStatus_ResolvedAtSemantics(t *testing.T) {
	created := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newTestIssueService(created)
	ctx := context.Background()

	issue, err := svc.CreateIssue(ctx, citizen, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resolvedTime := created.Add(2 * time.Hour)
	svc.now = func() time.Time { return resolvedTime }
	resolved, err := svc.ChangeStatus(ctx, admin, issue.ID, domain.StatusResolved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.ResolvedAt == nil || !resolved.ResolvedAt.Equal(resolvedTime) {
		t.Fatalf("expected resolved_at %v, got %v", resolvedTime, resolved.ResolvedAt)
	}

	// Closing afterwards must not clear the resolution timestamp.
	svc.now = func() time.Time { return resolvedTime.Add(time.Hour) }
	closed, err := svc.ChangeStatus(ctx, admin, issue.ID, domain.StatusClosed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if closed.ResolvedAt == nil || !closed.ResolvedAt.Equal(resolvedTime) {
		t.Errorf("expected resolved_at preserved at %v, got %v", resolvedTime, closed.ResolvedAt)
	}

	// Reopening does not clear it either.
	reopened, err := svc.ChangeStatus(ctx, admin, issue.ID, domain.StatusOpen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reopened.ResolvedAt == nil || !reopened.ResolvedAt.Equal(resolvedTime) {
		t.Errorf("expected resolved_at preserved after reopen, got %v", reopened.ResolvedAt)
	}
}

func TestChangeStatus_EmitsEventForReporter(t *testing.T) {
	svc, _, dispatcher := newTestIssueService(time.Now())
	ctx := context.Background()

	issue, err := svc.CreateIssue(ctx, citizen, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dispatcher.published = nil

	if _, err := svc.ChangeStatus(ctx, admin, issue.ID, domain.StatusInProgress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dispatcher.published) != 1 {
		t.Fatalf("expected one event, got %d", len(dispatcher.published))
	}
	event := dispatcher.published[0]
	if event.Type != events.EventIssueStatusChanged {
		t.Fatalf("expected issue_status_changed, got %s", event.Type)
	}
	payload, ok := event.Payload.(events.IssueStatusChangedPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", event.Payload)
	}
	if payload.ReporterID != citizen.ID {
		t.Errorf("expected reporter %s, got %s", citizen.ID, payload.ReporterID)
	}
	if payload.OldStatus != domain.StatusOpen || payload.NewStatus != domain.StatusInProgress {
		t.Errorf("unexpected transition %s -> %s", payload.OldStatus, payload.NewStatus)
	}
	if payload.IssueTitle != "Broken Streetlight" {
		t.Errorf("unexpected title %q", payload.IssueTitle)
	}
}

func TestChangeStatus_MissingIssue(t *testing.T) {
	svc, _, _ := newTestIssueService(time.Now())

	_, err := svc.ChangeStatus(context.Background(), admin, "issue-404", domain.StatusResolved)
	if err == nil {
		t.Fatal("expected not found error, got nil")
	}
	if de := apperrors.ToDomainError(err); de.Code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", de.Code)
	}
}

func TestAddComment(t *testing.T) {
	svc, _, _ := newTestIssueService(time.Now())
	ctx := context.Background()

	issue, err := svc.CreateIssue(ctx, citizen, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	official, err := svc.AddComment(ctx, admin, issue.ID, "Crew dispatched.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !official.IsOfficial {
		t.Error("expected admin comment to be official")
	}

	reply, err := svc.AddComment(ctx, citizen, issue.ID, "Thanks for the update!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.IsOfficial {
		t.Error("expected citizen comment to be unofficial")
	}
	if reply.UserName != citizen.FullName {
		t.Errorf("expected author snapshot %q, got %q", citizen.FullName, reply.UserName)
	}

	if _, err := svc.AddComment(ctx, citizen, issue.ID, "   "); err == nil {
		t.Error("expected validation error for empty content")
	}
	if _, err := svc.AddComment(ctx, citizen, "issue-404", "hello"); err == nil {
		t.Error("expected not found error for missing issue")
	}
}

func TestAddComment_DoesNotTouchIssue(t *testing.T) {
	created := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc, repo, _ := newTestIssueService(created)
	ctx := context.Background()

	issue, err := svc.CreateIssue(ctx, citizen, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.now = func() time.Time { return created.Add(time.Hour) }
	if _, err := svc.AddComment(ctx, citizen, issue.ID, "still broken"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := repo.GetByID(ctx, issue.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.UpdatedAt.Equal(created) {
		t.Errorf("expected issue updated_at untouched by comment, got %v", stored.UpdatedAt)
	}
}

func TestListIssues_AppliesFilter(t *testing.T) {
	svc, _, _ := newTestIssueService(time.Now())
	ctx := context.Background()

	first := validDraft()
	second := validDraft()
	second.Title = "Overflowing bin"
	second.Category = domain.CategorySanitation

	if _, err := svc.CreateIssue(ctx, citizen, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateIssue(ctx, citizen, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.ListIssues(ctx, IssueFilter{Category: string(domain.CategorySanitation)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 || result[0].Title != "Overflowing bin" {
		t.Errorf("expected only the sanitation issue, got %+v", result)
	}
}
