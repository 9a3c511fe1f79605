package data

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zenstudio/booking-api/internal/data/pgxutil"
	"github.com/zenstudio/booking-api/internal/domain/model"
	apperrors "github.com/zenstudio/booking-api/internal/errors"
)

// SessionRepo provides database operations for sessions and their rosters.
//
// Roster mutations run inside a transaction that locks the session row and
// re-checks membership under the lock, so two concurrent joins on the same
// session serialize instead of losing an update. The composite primary key on
// session_participants backstops duplicates.
type SessionRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSessionRepo creates a new SessionRepo with real time provider.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewSessionRepoWithTimeProvider creates a new SessionRepo with a custom time provider (useful for tests).
func NewSessionRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *SessionRepo {
	return &SessionRepo{DB: db, timeProvider: tp}
}

const (
	sessionColumns = `id, name, date, teacher_id, description, created_at, updated_at`

	sessionGetByIDQuery = `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE id = $1`

	sessionGetByIDForUpdateQuery = sessionGetByIDQuery + `
		FOR UPDATE`

	sessionListQuery = `
		SELECT ` + sessionColumns + `
		FROM sessions
		ORDER BY date`

	rosterQuery = `
		SELECT user_id::text
		FROM session_participants
		WHERE session_id = $1`
)

// Create inserts a new session along with its initial roster, which may be
// empty.
func (r *SessionRepo) Create(ctx context.Context, req *model.CreateSessionRequest) (*model.Session, error) {
	if req == nil {
		return nil, apperrors.Validation("create session request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Session
	if err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO sessions (name, date, teacher_id, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+sessionColumns,
			strings.TrimSpace(req.Name),
			req.Date.UTC(),
			req.TeacherID,
			req.Description,
			now,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Session])
		rows.Close()
		if err != nil {
			return err
		}
		for _, userID := range req.Users {
			if _, err = tx.Exec(ctx, `
				INSERT INTO session_participants (session_id, user_id)
				VALUES ($1, $2)`, out.ID, userID); err != nil {
				return err
			}
		}
		return nil
	}}); err != nil {
		return nil, r.mapWriteErr(err, "failed to create session")
	}
	out.Users = slices.Clone(req.Users)
	if out.Users == nil {
		out.Users = []string{}
	}
	return &out, nil
}

// GetByID retrieves a session with its full participant roster.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var out model.Session
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, sessionGetByIDQuery, id)
		if err != nil {
			return err
		}
		sess, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Session])
		rows.Close()
		if err != nil {
			return err
		}
		roster, err := loadRoster(ctx, conn, id)
		if err != nil {
			return err
		}
		sess.Users = roster
		out = sess
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("session not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to get session")
	}
	return &out, nil
}

// ListAll retrieves all sessions with their rosters.
func (r *SessionRepo) ListAll(ctx context.Context) ([]*model.Session, error) {
	var sessions []model.Session
	rosters := map[string][]string{}
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, sessionListQuery)
		if err != nil {
			return err
		}
		sessions, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Session])
		rows.Close()
		if err != nil || len(sessions) == 0 {
			return err
		}

		ids := make([]string, len(sessions))
		for i := range sessions {
			ids[i] = sessions[i].ID
		}
		memberRows, err := conn.Query(ctx, `
			SELECT session_id::text, user_id::text
			FROM session_participants
			WHERE session_id = ANY($1::uuid[])`, ids)
		if err != nil {
			return err
		}
		defer memberRows.Close()
		for memberRows.Next() {
			var sessionID, userID string
			if scanErr := memberRows.Scan(&sessionID, &userID); scanErr != nil {
				return scanErr
			}
			rosters[sessionID] = append(rosters[sessionID], userID)
		}
		return memberRows.Err()
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to list sessions")
	}

	res := make([]*model.Session, len(sessions))
	for i := range sessions {
		sessions[i].Users = rosters[sessions[i].ID]
		if sessions[i].Users == nil {
			sessions[i].Users = []string{}
		}
		res[i] = &sessions[i]
	}
	return res, nil
}

// Update rewrites the session's own fields, preserving created_at and
// refreshing updated_at. The roster is replaced only when req.Users is set;
// otherwise the stored participant set is left untouched.
func (r *SessionRepo) Update(
	ctx context.Context,
	id string,
	req *model.UpdateSessionRequest,
) (*model.Session, error) {
	if req == nil {
		return nil, apperrors.Validation("update session request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Session
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			UPDATE sessions
			SET name = $2, date = $3, teacher_id = $4, description = $5, updated_at = $6
			WHERE id = $1
			RETURNING `+sessionColumns,
			id,
			strings.TrimSpace(req.Name),
			req.Date.UTC(),
			req.TeacherID,
			req.Description,
			now,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Session])
		rows.Close()
		if err != nil {
			return err
		}

		if req.Users == nil {
			roster, rosterErr := loadRoster(ctx, tx, id)
			if rosterErr != nil {
				return rosterErr
			}
			out.Users = roster
			return nil
		}

		if _, err = tx.Exec(ctx, `DELETE FROM session_participants WHERE session_id = $1`, id); err != nil {
			return err
		}
		for _, userID := range *req.Users {
			if _, err = tx.Exec(ctx, `
				INSERT INTO session_participants (session_id, user_id)
				VALUES ($1, $2)`, id, userID); err != nil {
				return err
			}
		}
		out.Users = slices.Clone(*req.Users)
		return nil
	}})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("session not found")
		}
		return nil, r.mapWriteErr(err, "failed to update session")
	}
	return &out, nil
}

// Delete deletes a session by ID; the roster rows cascade.
func (r *SessionRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to delete session")
	}
	return rows > 0, nil
}

// AddParticipant adds a user to the roster under a row lock on the session.
func (r *SessionRepo) AddParticipant(ctx context.Context, sessionID, userID string) (*model.Session, error) {
	return r.mutateRoster(ctx, sessionID, userID, true)
}

// RemoveParticipant removes a user from the roster under a row lock on the session.
func (r *SessionRepo) RemoveParticipant(ctx context.Context, sessionID, userID string) (*model.Session, error) {
	return r.mutateRoster(ctx, sessionID, userID, false)
}

func (r *SessionRepo) mutateRoster(
	ctx context.Context,
	sessionID, userID string,
	add bool,
) (*model.Session, error) {
	now := r.timeProvider.Now().UTC()
	var out model.Session
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sessionGetByIDForUpdateQuery, sessionID)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Session])
		rows.Close()
		if err != nil {
			return err
		}

		roster, err := loadRoster(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		member := slices.Contains(roster, userID)
		if add {
			if member {
				return apperrors.Validation("user is already participating")
			}
			if _, err = tx.Exec(ctx, `
				INSERT INTO session_participants (session_id, user_id)
				VALUES ($1, $2)`, sessionID, userID); err != nil {
				return err
			}
			roster = append(roster, userID)
		} else {
			if !member {
				return apperrors.Validation("user is not participating")
			}
			if _, err = tx.Exec(ctx, `
				DELETE FROM session_participants
				WHERE session_id = $1 AND user_id = $2`, sessionID, userID); err != nil {
				return err
			}
			roster = slices.DeleteFunc(roster, func(id string) bool { return id == userID })
		}

		if _, err = tx.Exec(ctx, `UPDATE sessions SET updated_at = $2 WHERE id = $1`, sessionID, now); err != nil {
			return err
		}
		out.UpdatedAt = now
		out.Users = roster
		return nil
	}})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("session not found")
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			// user row vanished between the service's existence check and this write
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to update roster")
	}
	return &out, nil
}

// rosterQuerier is satisfied by both *pgx.Conn and pgx.Tx.
type rosterQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func loadRoster(ctx context.Context, q rosterQuerier, sessionID string) ([]string, error) {
	rows, err := q.Query(ctx, rosterQuery, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	roster, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if roster == nil {
		roster = []string{}
	}
	return roster, nil
}

func (r *SessionRepo) mapWriteErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			if strings.Contains(pgErr.ConstraintName, "teacher") {
				return apperrors.ValidationField("teacher_id", "teacher_id does not reference a known teacher")
			}
			return apperrors.ValidationField("users", "users contains an unknown user id")
		case pgerrcode.UniqueViolation:
			return apperrors.Validation("user is already participating")
		}
	}
	return apperrors.Wrap(err, apperrors.ErrCodeInternal, msg)
}
