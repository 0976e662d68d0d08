package inquiry

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository interface {
	CreateJoinRequest(ctx context.Context, j *JoinRequest) error
	ListJoinRequests(ctx context.Context) ([]JoinRequest, error)
	CreateContactMessage(ctx context.Context, m *ContactMessage) error
	ListContactMessages(ctx context.Context) ([]ContactMessage, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) CreateJoinRequest(ctx context.Context, j *JoinRequest) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO join_requests (full_name, email, phone, field, experience, portfolio, motivation, contribution)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, j.FullName, j.Email, j.Phone, j.Field, j.Experience, j.Portfolio, j.Motivation, j.Contribution).
		Scan(&j.ID, &j.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert join request: %w", err)
	}
	return nil
}

func (r *repo) ListJoinRequests(ctx context.Context) ([]JoinRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, full_name, email, phone, field, experience, portfolio, motivation, contribution, created_at
		FROM join_requests ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select join requests: %w", err)
	}
	defer rows.Close()

	out := []JoinRequest{}
	for rows.Next() {
		var j JoinRequest
		if err := rows.Scan(&j.ID, &j.FullName, &j.Email, &j.Phone, &j.Field, &j.Experience,
			&j.Portfolio, &j.Motivation, &j.Contribution, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan join request: %w", err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (r *repo) CreateContactMessage(ctx context.Context, m *ContactMessage) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO contact_messages (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, m.Name, m.Email, m.Subject, m.Message).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

func (r *repo) ListContactMessages(ctx context.Context) ([]ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, subject, message, created_at
		FROM contact_messages ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select contact messages: %w", err)
	}
	defer rows.Close()

	out := []ContactMessage{}
	for rows.Next() {
		var m ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
