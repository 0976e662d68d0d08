package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// Repository calls are all scoped to one owner. A task that exists but
// belongs to someone else is reported as ErrNotFound.
type Repository interface {
	List(ctx context.Context, ownerID string, w *Window) ([]Task, error)
	Create(ctx context.Context, t *Task) error
	Update(ctx context.Context, t *Task) error
	Toggle(ctx context.Context, ownerID string, id int64) (Status, error)
	Delete(ctx context.Context, ownerID string, id int64) error
	Counts(ctx context.Context, ownerID string) (total, done int, err error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

const taskColumns = `id, owner_id, title, description, due_date, status, created_at`

func (r *repo) List(ctx context.Context, ownerID string, w *Window) ([]Task, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if w == nil {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE owner_id = $1 ORDER BY due_date, id`, ownerID)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE owner_id = $1 AND due_date BETWEEN $2 AND $3 ORDER BY due_date, id`,
			ownerID, w.From, w.To)
	}
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var (
			t      Task
			status string
		)
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.DueDate, &status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Status = Status(status)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return tasks, nil
}

func (r *repo) Create(ctx context.Context, t *Task) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tasks (owner_id, title, description, due_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, t.OwnerID, t.Title, t.Description, t.DueDate, string(t.Status)).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *repo) Update(ctx context.Context, t *Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET title = $3, description = $4, due_date = $5, status = $6
		WHERE id = $1 AND owner_id = $2
	`, t.ID, t.OwnerID, t.Title, t.Description, t.DueDate, string(t.Status))
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return requireRow(res)
}

func (r *repo) Toggle(ctx context.Context, ownerID string, id int64) (Status, error) {
	var status string
	err := r.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET status = CASE WHEN status = 'Done' THEN 'Pending' ELSE 'Done' END
		WHERE id = $1 AND owner_id = $2
		RETURNING status
	`, id, ownerID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("toggle task: %w", err)
	}
	return Status(status), nil
}

func (r *repo) Delete(ctx context.Context, ownerID string, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireRow(res)
}

func (r *repo) Counts(ctx context.Context, ownerID string) (int, int, error) {
	var total, done int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'Done')
		FROM tasks WHERE owner_id = $1
	`, ownerID).Scan(&total, &done)
	if err != nil {
		return 0, 0, fmt.Errorf("count tasks: %w", err)
	}
	return total, done, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
