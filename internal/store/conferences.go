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

var conferenceColumns = []string{
	"id::text", "name", "description", "organizer_user_id", "topics", "city",
	"start_date", "end_date", "month", "max_attendees", "seats_available", "featured_speaker",
}

func scanConference(row pgx.Row) (model.Conference, error) {
	var c model.Conference
	err := row.Scan(
		&c.Key, &c.Name, &c.Description, &c.OrganizerUserID, &c.Topics, &c.City,
		&c.StartDate, &c.EndDate, &c.Month, &c.MaxAttendees, &c.SeatsAvailable, &c.FeaturedSpeaker,
	)
	return c, err
}

func collectConferences(rows pgx.Rows) ([]model.Conference, error) {
	defer rows.Close()
	out := []model.Conference{}
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// InsertConference stores c, allocating c.Key when empty.
func (s *Postgres) InsertConference(ctx context.Context, c *model.Conference) error {
	if c.Key == "" {
		c.Key = NewKey()
	}
	if c.Topics == nil {
		c.Topics = []string{}
	}
	sqlStr, args, err := psql.Insert("conferences").
		Columns("id", "name", "description", "organizer_user_id", "topics", "city",
			"start_date", "end_date", "month", "max_attendees", "seats_available", "featured_speaker").
		Values(c.Key, c.Name, c.Description, c.OrganizerUserID, c.Topics, c.City,
			c.StartDate, c.EndDate, c.Month, c.MaxAttendees, c.SeatsAvailable, c.FeaturedSpeaker).
		ToSql()
	if err != nil {
		return err
	}
	logSQL("insert_conference", sqlStr, args)
	if _, err := s.pool.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert conference: %w", err)
	}
	return nil
}

func (s *Postgres) GetConference(ctx context.Context, key string) (*model.Conference, error) {
	return getConference(ctx, s.pool, key, false)
}

func getConference(ctx context.Context, q querier, key string, forUpdate bool) (*model.Conference, error) {
	if !validKey(key) {
		return nil, ErrNotFound
	}
	sb := psql.Select(conferenceColumns...).From("conferences").Where(squirrel.Eq{"id": key})
	if forUpdate {
		sb = sb.Suffix("FOR UPDATE")
	}
	sqlStr, args, err := sb.ToSql()
	if err != nil {
		return nil, err
	}
	c, err := scanConference(q.QueryRow(ctx, sqlStr, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get conference: %w", err)
	}
	return &c, nil
}

func writeConference(ctx context.Context, q querier, c *model.Conference) error {
	sqlStr, args, err := psql.Update("conferences").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("topics", c.Topics).
		Set("city", c.City).
		Set("start_date", c.StartDate).
		Set("end_date", c.EndDate).
		Set("month", c.Month).
		Set("max_attendees", c.MaxAttendees).
		Set("seats_available", c.SeatsAvailable).
		Set("featured_speaker", c.FeaturedSpeaker).
		Where(squirrel.Eq{"id": c.Key}).
		ToSql()
	if err != nil {
		return err
	}
	logSQL("update_conference", sqlStr, args)
	_, err = q.Exec(ctx, sqlStr, args...)
	return err
}

// UpdateConference locks the conference row, lets fn modify it and writes it
// back in the same transaction. An error from fn rolls everything back.
func (s *Postgres) UpdateConference(ctx context.Context, key string, fn func(*model.Conference) error) (*model.Conference, error) {
	var out *model.Conference
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		c, err := getConference(ctx, tx, key, true)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		c.Key = key
		if err := writeConference(ctx, tx, c); err != nil {
			return fmt.Errorf("update conference: %w", err)
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Postgres) ConferencesByOrganizer(ctx context.Context, userID string) ([]model.Conference, error) {
	sqlStr, args, err := psql.Select(conferenceColumns...).
		From("conferences").
		Where(squirrel.Eq{"organizer_user_id": userID}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("conferences by organizer: %w", err)
	}
	return collectConferences(rows)
}

// ConferencesByKeys returns the conferences in the order of keys; unknown
// keys are skipped.
func (s *Postgres) ConferencesByKeys(ctx context.Context, keys []string) ([]model.Conference, error) {
	valid := make([]string, 0, len(keys))
	for _, k := range keys {
		if validKey(k) {
			valid = append(valid, k)
		}
	}
	if len(valid) == 0 {
		return []model.Conference{}, nil
	}
	sqlStr, args, err := psql.Select(conferenceColumns...).
		From("conferences").
		Where(squirrel.Expr("id = ANY(?::uuid[])", valid)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("conferences by keys: %w", err)
	}
	found, err := collectConferences(rows)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]model.Conference, len(found))
	for _, c := range found {
		byKey[c.Key] = c
	}
	out := make([]model.Conference, 0, len(found))
	for _, k := range valid {
		if c, ok := byKey[k]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// QueryConferences executes a filter plan built by the conference registry.
func (s *Postgres) QueryConferences(ctx context.Context, plan filter.Plan) ([]model.Conference, error) {
	reg, err := s.registry(filter.EntityConference)
	if err != nil {
		return nil, err
	}
	sb, err := reg.Apply(psql.Select(conferenceColumns...).From("conferences"), plan)
	if err != nil {
		return nil, err
	}
	sqlStr, args, err := sb.ToSql()
	if err != nil {
		return nil, err
	}
	logSQL("query_conferences", sqlStr, args)
	rows, err := s.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query conferences: %w", err)
	}
	return collectConferences(rows)
}

// NearlySoldOut lists names of conferences with 0 < seats <= maxSeats.
func (s *Postgres) NearlySoldOut(ctx context.Context, maxSeats int) ([]string, error) {
	sqlStr, args, err := psql.Select("name").
		From("conferences").
		Where(squirrel.And{
			squirrel.LtOrEq{"seats_available": maxSeats},
			squirrel.Gt{"seats_available": 0},
		}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("nearly sold out: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// ConferenceNames maps conference keys to names.
func (s *Postgres) ConferenceNames(ctx context.Context, keys []string) (map[string]string, error) {
	confs, err := s.ConferencesByKeys(ctx, dedupe(keys))
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(confs))
	for _, c := range confs {
		names[c.Key] = c.Name
	}
	return names, nil
}
