package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"wellnest/internal/models"
)

const settingsColumns = `id, user_id, daily_water_goal, daily_step_goal, daily_exercise_goal, daily_sleep_goal, monthly_expense_budget, reminder_frequency, created_at, updated_at`

func scanSettings(row pgx.Row) (*models.UserSettings, error) {
	var s models.UserSettings
	err := row.Scan(&s.ID, &s.UserID, &s.DailyWaterGoal, &s.DailyStepGoal, &s.DailyExerciseGoal, &s.DailySleepGoal, &s.MonthlyExpenseBudget, &s.ReminderFrequency, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	return scanSettings(r.Pool.QueryRow(ctx, `SELECT `+settingsColumns+` FROM user_settings WHERE user_id=$1`, userID))
}

// EnsureSettings returns the user's settings row, creating it with the column
// defaults on first access.
func (r *Repo) EnsureSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	if _, err := r.Pool.Exec(ctx, `INSERT INTO user_settings (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
		return nil, fmt.Errorf("ensure settings: %w", err)
	}
	return r.GetSettings(ctx, userID)
}

func (r *Repo) UpdateSettings(ctx context.Context, s *models.UserSettings) (*models.UserSettings, error) {
	row := r.Pool.QueryRow(ctx, `INSERT INTO user_settings (user_id, daily_water_goal, daily_step_goal, daily_exercise_goal, daily_sleep_goal, monthly_expense_budget, reminder_frequency)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (user_id) DO UPDATE SET
			daily_water_goal=EXCLUDED.daily_water_goal,
			daily_step_goal=EXCLUDED.daily_step_goal,
			daily_exercise_goal=EXCLUDED.daily_exercise_goal,
			daily_sleep_goal=EXCLUDED.daily_sleep_goal,
			monthly_expense_budget=EXCLUDED.monthly_expense_budget,
			reminder_frequency=EXCLUDED.reminder_frequency,
			updated_at=now()
		RETURNING `+settingsColumns,
		s.UserID, s.DailyWaterGoal, s.DailyStepGoal, s.DailyExerciseGoal, s.DailySleepGoal, s.MonthlyExpenseBudget, s.ReminderFrequency)
	return scanSettings(row)
}
