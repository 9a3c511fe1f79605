package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zenstudio/booking-api/internal/errors"
	"github.com/zenstudio/booking-api/internal/testutil"
)

// seedTeacher inserts a teacher row directly; there is no write path for
// teachers through the repositories.
func seedTeacher(t *testing.T, db *sql.DB, firstName, lastName string, createdAt time.Time) string {
	t.Helper()
	var id string
	err := db.QueryRowContext(context.Background(), `
		INSERT INTO teachers (first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id::text`, firstName, lastName, createdAt).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestTeacherRepo_GetByID(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewTeacherRepo(db)
		id := seedTeacher(t, db, "Margot", "Delahaye", testutil.TestTime())

		teacher, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, teacher.ID)
		assert.Equal(t, "Margot", teacher.FirstName)
		assert.Equal(t, "Delahaye", teacher.LastName)

		_, err = repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestTeacherRepo_ListAll(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewTeacherRepo(db)

		teachers, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, teachers)

		base := testutil.TestTime()
		first := seedTeacher(t, db, "Margot", "Delahaye", base)
		second := seedTeacher(t, db, "Hélène", "Thiercelin", base.Add(time.Minute))

		teachers, err = repo.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, teachers, 2)
		assert.Equal(t, first, teachers[0].ID)
		assert.Equal(t, second, teachers[1].ID)
	})
}
