package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/issue/domain"
)

// DB is the subset of pgxpool.Pool the repository needs, kept small so
// pgxmock can stand in during tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const issueColumns = "id, user_id, title, description, type, status, priority, created_at, updated_at"

func (r *PostgresRepository) Create(ctx context.Context, issue *domain.Issue) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO issues (id, user_id, title, description, type, status, priority, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, issue.ID, issue.UserID, issue.Title, issue.Description, issue.Type, issue.Status,
		issue.Priority, issue.CreatedAt, issue.UpdatedAt)

	return err
}

func (r *PostgresRepository) FindAllByUser(ctx context.Context, userID string, issueType string) ([]domain.Issue, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM issues
		WHERE user_id = $1
	`, issueColumns)
	args := []any{userID}

	if issueType != "" {
		query += " AND type = $2"
		args = append(args, issueType)
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	defer rows.Close()

	issues := []domain.Issue{}
	for rows.Next() {
		var issue domain.Issue
		if err := scanIssue(rows, &issue); err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return issues, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id, userID string) (*domain.Issue, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM issues
		WHERE id = $1 AND user_id = $2
		LIMIT 1;
	`, issueColumns)
	row := r.db.QueryRow(ctx, query, id, userID)

	var issue domain.Issue
	if err := scanIssue(row, &issue); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return &issue, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id, userID string, upd domain.IssueUpdate) (int64, error) {
	set := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Type != nil {
		add("type", *upd.Type)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.Priority != nil {
		add("priority", *upd.Priority)
	}

	if len(set) == 0 {
		return 0, nil
	}

	args = append(args, id, userID)
	query := fmt.Sprintf(
		"UPDATE issues SET %s, updated_at = now() WHERE id = $%d AND user_id = $%d",
		strings.Join(set, ", "), len(args)-1, len(args),
	)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update issue: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM issues WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete issue: %w", err)
	}

	return tag.RowsAffected(), nil
}

func scanIssue(row pgx.Row, issue *domain.Issue) error {
	return row.Scan(
		&issue.ID, &issue.UserID, &issue.Title, &issue.Description,
		&issue.Type, &issue.Status, &issue.Priority,
		&issue.CreatedAt, &issue.UpdatedAt,
	)
}
