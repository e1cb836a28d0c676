package store

import (
	"context"
	"fmt"

	"ConferenceAPI/internal/model"

	"github.com/jackc/pgx/v5"
)

// ChangeRegistration locks the conference row and passes it to decide with
// the caller's current registration state. decide returns the wanted state;
// the registration row and the seat count follow it in the same transaction.
// The result reports whether anything changed.
func (s *Postgres) ChangeRegistration(
	ctx context.Context,
	userID, confKey string,
	decide func(c *model.Conference, registered bool) (bool, error),
) (bool, error) {
	changed := false
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		c, err := getConference(ctx, tx, confKey, true)
		if err != nil {
			return err
		}
		var registered bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM registrations WHERE user_id = $1 AND conference_id = $2)`,
			userID, confKey,
		).Scan(&registered); err != nil {
			return fmt.Errorf("registration lookup: %w", err)
		}

		want, err := decide(c, registered)
		if err != nil {
			return err
		}
		if want == registered {
			return nil
		}

		delta := 1
		stmt := `DELETE FROM registrations WHERE user_id = $1 AND conference_id = $2`
		if want {
			delta = -1
			stmt = `INSERT INTO registrations (user_id, conference_id) VALUES ($1, $2)`
		}
		if _, err := tx.Exec(ctx, stmt, userID, confKey); err != nil {
			return fmt.Errorf("registration write: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE conferences SET seats_available = seats_available + $2 WHERE id = $1`,
			confKey, delta,
		); err != nil {
			return fmt.Errorf("seat update: %w", err)
		}
		logSQL("registration_change", stmt, []any{userID, confKey, delta})
		changed = true
		return nil
	})
	return changed, err
}

// ChangeWishlist is the wishlist counterpart of ChangeRegistration; it has no
// counter to maintain. The session row lock serializes concurrent changes.
func (s *Postgres) ChangeWishlist(
	ctx context.Context,
	userID, sessionKey string,
	decide func(sess *model.Session, listed bool) (bool, error),
) (bool, error) {
	changed := false
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		sess, err := getSession(ctx, tx, sessionKey, true)
		if err != nil {
			return err
		}
		var listed bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM wishlists WHERE user_id = $1 AND session_id = $2)`,
			userID, sessionKey,
		).Scan(&listed); err != nil {
			return fmt.Errorf("wishlist lookup: %w", err)
		}

		want, err := decide(sess, listed)
		if err != nil {
			return err
		}
		if want == listed {
			return nil
		}

		stmt := `DELETE FROM wishlists WHERE user_id = $1 AND session_id = $2`
		if want {
			stmt = `INSERT INTO wishlists (user_id, session_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
		}
		tag, err := tx.Exec(ctx, stmt, userID, sessionKey)
		if err != nil {
			return fmt.Errorf("wishlist write: %w", err)
		}
		changed = tag.RowsAffected() > 0
		return nil
	})
	return changed, err
}
