package repo

import (
	"context"
	"fmt"
	"time"

	"wellnest/internal/models"
)

const healthColumns = `id, user_id, date, steps, water_glasses, sleep_hours, exercise_minutes, created_at, updated_at`

// UpsertHealthEntry saves one day's metrics. (user_id, date) is the natural
// key: a second save for the same date replaces the first, never duplicates.
func (r *Repo) UpsertHealthEntry(ctx context.Context, e *models.HealthEntry) (*models.HealthEntry, error) {
	var saved models.HealthEntry
	err := r.Pool.QueryRow(ctx, `INSERT INTO health_entries (user_id, date, steps, water_glasses, sleep_hours, exercise_minutes)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (user_id, date) DO UPDATE SET
			steps=EXCLUDED.steps,
			water_glasses=EXCLUDED.water_glasses,
			sleep_hours=EXCLUDED.sleep_hours,
			exercise_minutes=EXCLUDED.exercise_minutes,
			updated_at=now()
		RETURNING `+healthColumns,
		e.UserID, e.Date, e.Steps, e.WaterGlasses, e.SleepHours, e.ExerciseMinutes).
		Scan(&saved.ID, &saved.UserID, &saved.Date, &saved.Steps, &saved.WaterGlasses, &saved.SleepHours, &saved.ExerciseMinutes, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert health entry: %w", err)
	}
	return &saved, nil
}

func (r *Repo) ListHealthEntries(ctx context.Context, userID string) ([]models.HealthEntry, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+healthColumns+` FROM health_entries WHERE user_id=$1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []models.HealthEntry
	for rows.Next() {
		var e models.HealthEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Steps, &e.WaterGlasses, &e.SleepHours, &e.ExerciseMinutes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *Repo) HasHealthEntry(ctx context.Context, userID string, date time.Time) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM health_entries WHERE user_id=$1 AND date=$2)`, userID, date).Scan(&exists)
	return exists, err
}
