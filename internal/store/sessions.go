package store

import (
	"context"
	"errors"
	"fmt"

	"ConferenceAPI/internal/filter"
	"ConferenceAPI/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var sessionColumns = []string{
	"id::text", "conference_id::text", "name", "highlights", "speaker", "duration",
	"type_of_session", "session_date", "start_time", "month", "organizer_user_id",
}

func scanSession(row pgx.Row) (model.Session, error) {
	var s model.Session
	err := row.Scan(
		&s.Key, &s.ConferenceKey, &s.Name, &s.Highlights, &s.Speaker, &s.Duration,
		&s.TypeOfSession, &s.Date, &s.StartTime, &s.Month, &s.OrganizerUserID,
	)
	return s, err
}

func collectSessions(rows pgx.Rows) ([]model.Session, error) {
	defer rows.Close()
	out := []model.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// InsertSession stores sess, allocating sess.Key when empty.
func (s *Postgres) InsertSession(ctx context.Context, sess *model.Session) error {
	if sess.Key == "" {
		sess.Key = NewKey()
	}
	sqlStr, args, err := psql.Insert("sessions").
		Columns("id", "conference_id", "name", "highlights", "speaker", "duration",
			"type_of_session", "session_date", "start_time", "month", "organizer_user_id").
		Values(sess.Key, sess.ConferenceKey, sess.Name, sess.Highlights, sess.Speaker, sess.Duration,
			sess.TypeOfSession, sess.Date, sess.StartTime, sess.Month, sess.OrganizerUserID).
		ToSql()
	if err != nil {
		return err
	}
	logSQL("insert_session", sqlStr, args)
	if _, err := s.pool.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *Postgres) GetSession(ctx context.Context, key string) (*model.Session, error) {
	return getSession(ctx, s.pool, key, false)
}

func getSession(ctx context.Context, q querier, key string, forUpdate bool) (*model.Session, error) {
	if !validKey(key) {
		return nil, ErrNotFound
	}
	sb := psql.Select(sessionColumns...).From("sessions").Where(squirrel.Eq{"id": key})
	if forUpdate {
		sb = sb.Suffix("FOR UPDATE")
	}
	sqlStr, args, err := sb.ToSql()
	if err != nil {
		return nil, err
	}
	sess, err := scanSession(q.QueryRow(ctx, sqlStr, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

// QuerySessions executes a filter plan built by the session registry.
func (s *Postgres) QuerySessions(ctx context.Context, plan filter.Plan) ([]model.Session, error) {
	reg, err := s.registry(filter.EntitySession)
	if err != nil {
		return nil, err
	}
	sb, err := reg.Apply(psql.Select(sessionColumns...).From("sessions"), plan)
	if err != nil {
		return nil, err
	}
	sqlStr, args, err := sb.ToSql()
	if err != nil {
		return nil, err
	}
	logSQL("query_sessions", sqlStr, args)
	rows, err := s.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return collectSessions(rows)
}

// SessionsByKeys returns sessions in the order of keys; unknown keys are skipped.
func (s *Postgres) SessionsByKeys(ctx context.Context, keys []string) ([]model.Session, error) {
	valid := make([]string, 0, len(keys))
	for _, k := range keys {
		if validKey(k) {
			valid = append(valid, k)
		}
	}
	if len(valid) == 0 {
		return []model.Session{}, nil
	}
	sqlStr, args, err := psql.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Expr("id = ANY(?::uuid[])", valid)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("sessions by keys: %w", err)
	}
	found, err := collectSessions(rows)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]model.Session, len(found))
	for _, sess := range found {
		byKey[sess.Key] = sess
	}
	out := make([]model.Session, 0, len(found))
	for _, k := range valid {
		if sess, ok := byKey[k]; ok {
			out = append(out, sess)
		}
	}
	return out, nil
}
