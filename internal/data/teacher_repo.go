package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/zenstudio/booking-api/internal/data/pgxutil"
	"github.com/zenstudio/booking-api/internal/domain/model"
	apperrors "github.com/zenstudio/booking-api/internal/errors"
)

// TeacherRepo provides read access to teachers. Teachers are reference data
// seeded outside this service; there is no write path.
type TeacherRepo struct {
	DB *sql.DB
}

// NewTeacherRepo creates a new TeacherRepo.
func NewTeacherRepo(db *sql.DB) *TeacherRepo {
	return &TeacherRepo{DB: db}
}

const (
	teacherColumns = `id, last_name, first_name, created_at, updated_at`

	teacherGetByIDQuery = `
		SELECT ` + teacherColumns + `
		FROM teachers
		WHERE id = $1`

	teacherListQuery = `
		SELECT ` + teacherColumns + `
		FROM teachers
		ORDER BY created_at`
)

// GetByID retrieves a teacher by ID.
func (r *TeacherRepo) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, teacherGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		teacher, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Teacher])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("teacher not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to get teacher")
	}
	return &teacher, nil
}

// ListAll retrieves all teachers.
func (r *TeacherRepo) ListAll(ctx context.Context) ([]*model.Teacher, error) {
	var rowsOut []model.Teacher
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, teacherListQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Teacher])
		return err
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to list teachers")
	}

	res := make([]*model.Teacher, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
