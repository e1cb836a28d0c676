package store

import (
	"context"
	"errors"
	"fmt"

	"ConferenceAPI/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

func (s *Postgres) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	var size string
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, display_name, main_email, tee_shirt_size FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.DisplayName, &p.MainEmail, &size)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.TeeShirtSize = model.TeeShirtSize(size)

	if p.ConferenceKeysToAttend, err = s.keyList(ctx,
		`SELECT conference_id::text FROM registrations WHERE user_id = $1 ORDER BY conference_id`, userID); err != nil {
		return nil, fmt.Errorf("profile registrations: %w", err)
	}
	if p.SessionKeysWishlist, err = s.keyList(ctx,
		`SELECT session_id::text FROM wishlists WHERE user_id = $1 ORDER BY session_id`, userID); err != nil {
		return nil, fmt.Errorf("profile wishlist: %w", err)
	}
	return &p, nil
}

func (s *Postgres) keyList(ctx context.Context, sql string, userID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// CreateProfile inserts p unless a profile for the same user already exists.
func (s *Postgres) CreateProfile(ctx context.Context, p *model.Profile) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, display_name, main_email, tee_shirt_size)
		 VALUES ($1, $2, $3, $4) ON CONFLICT (user_id) DO NOTHING`,
		p.UserID, p.DisplayName, p.MainEmail, string(p.TeeShirtSize),
	)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *Postgres) UpdateProfile(ctx context.Context, p *model.Profile) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE profiles SET display_name = $2, tee_shirt_size = $3 WHERE user_id = $1`,
		p.UserID, p.DisplayName, string(p.TeeShirtSize),
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ProfileNames returns display names keyed by user id in one round trip.
func (s *Postgres) ProfileNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return names, nil
	}
	sqlStr, args, err := psql.Select("user_id", "display_name").
		From("profiles").
		Where(squirrel.Eq{"user_id": dedupe(userIDs)}).
		ToSql()
	if err != nil {
		return nil, err
	}
	logSQL("profile_names", sqlStr, args)

	rows, err := s.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("profile names: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
