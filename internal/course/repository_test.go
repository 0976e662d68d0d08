package course

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var courseCols = []string{"id", "title", "description", "trainer_name", "start_date", "end_date", "image_url", "price", "duration", "created_at"}

func TestRepositoryList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, description, trainer_name, start_date, end_date, image_url, price, duration, created_at FROM courses ORDER BY`)).
		WillReturnRows(sqlmock.NewRows(courseCols).
			AddRow(int64(1), "Go basics", "Intro", "Sara", start, nil, "", "49.99", "6 weeks", start).
			AddRow(int64(2), "Robotics", "", "", nil, nil, "", "0", "2 days", start))

	courses, err := NewRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.NotNil(t, courses[0].StartDate)
	assert.True(t, courses[0].StartDate.Equal(start))
	assert.Nil(t, courses[0].EndDate)
	assert.True(t, courses[0].Price.Equal(decimal.RequireFromString("49.99")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM courses WHERE id = $1`)).
		WithArgs(int64(4)).
		WillReturnError(sql.ErrNoRows)

	_, err = NewRepository(db).Get(context.Background(), 4)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	c := &Course{Title: "Go basics", Price: decimal.RequireFromString("10.5"), Duration: "1 week"}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO courses (title, description, trainer_name, start_date, end_date, image_url, price, duration)`)).
		WithArgs("Go basics", "", "", sqlmock.AnyArg(), sqlmock.AnyArg(), "", "10.5", "1 week").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(9), now))

	require.NoError(t, NewRepository(db).Create(context.Background(), c))
	assert.Equal(t, int64(9), c.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateAndDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE courses`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM courses WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	require.ErrorIs(t, repo.Update(context.Background(), &Course{ID: 3, Title: "x", Duration: "y"}), ErrNotFound)
	require.ErrorIs(t, repo.Delete(context.Background(), 3), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
