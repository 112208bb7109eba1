package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mailintel/internal/model"
)

type PreferencesRepository struct {
	db *pgxpool.Pool
}

func NewPreferencesRepository(db *pgxpool.Pool) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// GetByUserID returns the stored preferences for a user, or nil when the
// user has never saved any. The analyzer treats nil as "defaults only".
func (r *PreferencesRepository) GetByUserID(ctx context.Context, userID int) (*model.UserEmailPreferences, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT prefs FROM user_email_preferences WHERE user_id = $1`, userID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var prefs model.UserEmailPreferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	return &prefs, nil
}

// Upsert stores the user's preferences as a single document.
func (r *PreferencesRepository) Upsert(ctx context.Context, userID int, prefs *model.UserEmailPreferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	query := `
        INSERT INTO user_email_preferences (user_id, prefs, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id) DO UPDATE SET prefs = EXCLUDED.prefs, updated_at = NOW()
    `
	_, err = r.db.Exec(ctx, query, userID, raw)
	return err
}
