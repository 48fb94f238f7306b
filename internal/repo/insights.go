package repo

import (
	"context"
	"fmt"
	"time"

	"wellnest/internal/models"
)

const insightColumns = `id, user_id, title, content, insight_type, priority, is_read, created_at`

func (r *Repo) CreateInsight(ctx context.Context, in *models.Insight) (*models.Insight, error) {
	var created models.Insight
	err := r.Pool.QueryRow(ctx, `INSERT INTO ai_insights (user_id, title, content, insight_type, priority)
		VALUES ($1,$2,$3,$4,$5) RETURNING `+insightColumns,
		in.UserID, in.Title, in.Content, in.InsightType, in.Priority).
		Scan(&created.ID, &created.UserID, &created.Title, &created.Content, &created.InsightType, &created.Priority, &created.IsRead, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create insight: %w", err)
	}
	return &created, nil
}

func (r *Repo) ListInsights(ctx context.Context, userID string) ([]models.Insight, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+insightColumns+` FROM ai_insights WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var insights []models.Insight
	for rows.Next() {
		var in models.Insight
		if err := rows.Scan(&in.ID, &in.UserID, &in.Title, &in.Content, &in.InsightType, &in.Priority, &in.IsRead, &in.CreatedAt); err != nil {
			return nil, err
		}
		insights = append(insights, in)
	}
	return insights, rows.Err()
}

func (r *Repo) MarkInsightRead(ctx context.Context, userID, insightID string) error {
	cmd, err := r.Pool.Exec(ctx, `UPDATE ai_insights SET is_read=true WHERE id=$1 AND user_id=$2`, insightID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// HasInsightBetween reports whether any insight for the user was created in
// [from, to). The generator uses it as the same-day suppression guard.
func (r *Repo) HasInsightBetween(ctx context.Context, userID string, from, to time.Time) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM ai_insights WHERE user_id=$1 AND created_at >= $2 AND created_at < $3)`,
		userID, from, to).Scan(&exists)
	return exists, err
}

// ClaimInsightRun records a generation run for (user, day). It returns false
// when another run already claimed the day; the unique key makes two
// near-simultaneous runs resolve to exactly one winner.
func (r *Repo) ClaimInsightRun(ctx context.Context, userID string, day time.Time) (bool, error) {
	cmd, err := r.Pool.Exec(ctx, `INSERT INTO insight_runs (user_id, run_date) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, day)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}
