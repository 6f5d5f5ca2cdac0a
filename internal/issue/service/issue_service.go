package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/apierror"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/issue/domain"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/issue/dto"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/mailer"
)

type IssueService struct {
	repo   domain.IssueRepository
	mailer mailer.Mailer
	logger *slog.Logger
}

func NewIssueService(repo domain.IssueRepository, m mailer.Mailer, logger *slog.Logger) *IssueService {
	return &IssueService{
		repo:   repo,
		mailer: m,
		logger: logger,
	}
}

func (s *IssueService) Create(ctx context.Context, userID, userEmail string, input dto.CreateIssueInput) (*domain.Issue, error) {
	now := time.Now()

	issue := &domain.Issue{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Type:        domain.Type(input.Type),
		Status:      domain.StatusOpen,
		Priority:    input.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, issue); err != nil {
		return nil, err
	}

	// Best effort: a failed notification never fails the create.
	go func() {
		err := s.mailer.SendIssueCreated(context.Background(), userEmail, issue.Title, string(issue.Type), issue.Description)
		if err != nil {
			s.logger.Error("failed to send issue-created email", "issue_id", issue.ID, "error", err)
		}
	}()

	return issue, nil
}

func (s *IssueService) List(ctx context.Context, userID string, issueType string) ([]domain.Issue, error) {
	return s.repo.FindAllByUser(ctx, userID, issueType)
}

// GetByID re-verifies ownership: authentication proves identity, not
// ownership. A mismatch yields NotFound, never Forbidden, so issue ids do
// not leak existence across users.
func (s *IssueService) GetByID(ctx context.Context, userID, issueID string) (*domain.Issue, error) {
	issue, err := s.repo.FindByID(ctx, issueID, userID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, apierror.NotFound("Issue not found")
	}

	return issue, nil
}

func (s *IssueService) Update(ctx context.Context, userID, issueID string, input dto.UpdateIssueInput) error {
	count, err := s.repo.Update(ctx, issueID, userID, input.ToUpdate())
	if err != nil {
		return err
	}
	if count == 0 {
		return apierror.NotFound("Issue not found")
	}

	return nil
}

func (s *IssueService) Delete(ctx context.Context, userID, issueID string) error {
	count, err := s.repo.Delete(ctx, issueID, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		return apierror.NotFound("Issue not found")
	}

	return nil
}
