package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestIssueJSONRoundTrip(t *testing.T) {
	created := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	resolved := created.Add(3 * time.Hour)
	issue := Issue{
		ID:          "issue-1",
		UserID:      "user-1",
		UserName:    "John Citizen",
		Title:       "Broken Streetlight",
		Description: "Out for a week",
		Category:    CategoryInfrastructure,
		Location:    "Main St, Springfield",
		Status:      StatusResolved,
		Priority:    PriorityHigh,
		PhotoURLs:   []string{"https://example.com/a.jpg"},
		CreatedAt:   created,
		UpdatedAt:   resolved,
		ResolvedAt:  &resolved,
	}

	encoded, err := json.Marshal(issue)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Enum values serialize in their stored snake_case form.
	for _, token := range []string{`"status":"resolved"`, `"priority":"high"`, `"category":"infrastructure"`, `"resolved_at"`} {
		if !strings.Contains(string(encoded), token) {
			t.Errorf("expected %s in %s", token, encoded)
		}
	}

	var decoded Issue
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID != issue.ID || decoded.Status != issue.Status || decoded.Priority != issue.Priority {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
	if decoded.ResolvedAt == nil || !decoded.ResolvedAt.Equal(resolved) {
		t.Errorf("expected resolved_at %v, got %v", resolved, decoded.ResolvedAt)
	}
	if len(decoded.PhotoURLs) != 1 {
		t.Errorf("expected one photo url, got %v", decoded.PhotoURLs)
	}
}

func TestIssueJSONOmitsUnsetResolvedAt(t *testing.T) {
	encoded, err := json.Marshal(Issue{ID: "issue-1", Status: StatusOpen})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(encoded), "resolved_at") {
		t.Errorf("expected resolved_at omitted for unresolved issue, got %s", encoded)
	}
}

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *User
		want bool
	}{
		{"nil user", nil, false},
		{"citizen", &User{Role: RoleCitizen}, false},
		{"admin", &User{Role: RoleAdmin}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.IsAdmin(); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}
