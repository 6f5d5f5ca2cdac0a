package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_issue_repository.go -package=mocks github.com/AnirbanSinha27/Issue-tracking-platform/internal/issue/domain IssueRepository

// IssueRepository scopes every read and mutation by both issue id and owning
// user id, so a caller can never observe another user's issues.
type IssueRepository interface {
	Create(ctx context.Context, issue *Issue) error
	// FindAllByUser returns the user's issues newest first, optionally
	// restricted to one type (empty string means no filter).
	FindAllByUser(ctx context.Context, userID string, issueType string) ([]Issue, error)
	// FindByID returns (nil, nil) when no issue matches both id and owner.
	FindByID(ctx context.Context, id, userID string) (*Issue, error)
	// Update applies the non-nil fields and reports how many rows matched.
	Update(ctx context.Context, id, userID string, upd IssueUpdate) (int64, error)
	// Delete reports how many rows matched.
	Delete(ctx context.Context, id, userID string) (int64, error)
}
