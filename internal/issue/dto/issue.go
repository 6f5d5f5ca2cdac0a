package dto

import (
	"time"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/issue/domain"
)

type CreateIssueInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=CLOUD_SECURITY REDTEAM_ASSESSMENT VAPT"`
	Priority    *int   `json:"priority"`
}

// UpdateIssueInput is a partial update: nil fields are left alone and
// unrecognized JSON fields are silently ignored.
type UpdateIssueInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Type        *string `json:"type" validate:"omitempty,oneof=CLOUD_SECURITY REDTEAM_ASSESSMENT VAPT"`
	Status      *string `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS RESOLVED"`
	Priority    *int    `json:"priority"`
}

func (in UpdateIssueInput) Empty() bool {
	return in.Title == nil && in.Description == nil && in.Type == nil && in.Status == nil && in.Priority == nil
}

// ToUpdate converts the validated input into the repository's update shape.
func (in UpdateIssueInput) ToUpdate() domain.IssueUpdate {
	upd := domain.IssueUpdate{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
	}
	if in.Type != nil {
		t := domain.Type(*in.Type)
		upd.Type = &t
	}
	if in.Status != nil {
		st := domain.Status(*in.Status)
		upd.Status = &st
	}
	return upd
}

type IssueOutput struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Priority    *int      `json:"priority,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromIssue(i *domain.Issue) IssueOutput {
	return IssueOutput{
		ID:          i.ID,
		Title:       i.Title,
		Description: i.Description,
		Type:        string(i.Type),
		Status:      string(i.Status),
		Priority:    i.Priority,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func FromIssues(issues []domain.Issue) []IssueOutput {
	out := make([]IssueOutput, 0, len(issues))
	for i := range issues {
		out = append(out, FromIssue(&issues[i]))
	}
	return out
}
