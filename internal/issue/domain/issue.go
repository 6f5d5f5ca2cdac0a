package domain

import "time"

type Type string

const (
	TypeCloudSecurity     Type = "CLOUD_SECURITY"
	TypeRedTeamAssessment Type = "REDTEAM_ASSESSMENT"
	TypeVAPT              Type = "VAPT"
)

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
)

type Issue struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Type        Type
	Status      Status
	Priority    *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IssueUpdate carries the fields of a partial update. A nil field is left
// untouched.
type IssueUpdate struct {
	Title       *string
	Description *string
	Type        *Type
	Status      *Status
	Priority    *int
}
