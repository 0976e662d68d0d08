package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	List(ctx context.Context) ([]Course, error)
	Get(ctx context.Context, id int64) (Course, error)
	Create(ctx context.Context, c *Course) error
	Update(ctx context.Context, c *Course) error
	Delete(ctx context.Context, id int64) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

const courseColumns = `id, title, description, trainer_name, start_date, end_date, image_url, price, duration, created_at`

func (r *repo) List(ctx context.Context) ([]Course, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY start_date NULLS LAST, id`)
	if err != nil {
		return nil, fmt.Errorf("select courses: %w", err)
	}
	defer rows.Close()

	courses := []Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return courses, nil
}

func (r *repo) Get(ctx context.Context, id int64) (Course, error) {
	c, err := scanCourse(r.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Course{}, ErrNotFound
		}
		return Course{}, fmt.Errorf("select course: %w", err)
	}
	return c, nil
}

func (r *repo) Create(ctx context.Context, c *Course) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO courses (title, description, trainer_name, start_date, end_date, image_url, price, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, c.Title, c.Description, c.TrainerName, nullTime(c.StartDate), nullTime(c.EndDate), c.ImageURL, c.Price.String(), c.Duration).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (r *repo) Update(ctx context.Context, c *Course) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE courses
		SET title = $2, description = $3, trainer_name = $4, start_date = $5, end_date = $6,
		    image_url = $7, price = $8, duration = $9
		WHERE id = $1
	`, c.ID, c.Title, c.Description, c.TrainerName, nullTime(c.StartDate), nullTime(c.EndDate), c.ImageURL, c.Price.String(), c.Duration)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return requireRow(res)
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return requireRow(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCourse(s scanner) (Course, error) {
	var (
		c          Course
		start, end sql.NullTime
	)
	if err := s.Scan(&c.ID, &c.Title, &c.Description, &c.TrainerName, &start, &end, &c.ImageURL, &c.Price, &c.Duration, &c.CreatedAt); err != nil {
		return Course{}, err
	}
	if start.Valid {
		c.StartDate = &start.Time
	}
	if end.Valid {
		c.EndDate = &end.Time
	}
	return c, nil
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

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
