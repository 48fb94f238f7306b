package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"wellnest/internal/models"
)

const taskColumns = `id, user_id, title, description, completed, priority, category, due_date, created_at, updated_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.Priority, &t.Category, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) CreateTask(ctx context.Context, t *models.Task) (*models.Task, error) {
	row := r.Pool.QueryRow(ctx, `INSERT INTO tasks (user_id, title, description, priority, category, due_date)
		VALUES ($1,$2,$3,$4,$5,$6) RETURNING `+taskColumns,
		t.UserID, t.Title, t.Description, t.Priority, t.Category, t.DueDate)
	created, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

func (r *Repo) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.Priority, &t.Category, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *Repo) ListIncompleteTasks(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id=$1 AND completed=false ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.Priority, &t.Category, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *Repo) UpdateTask(ctx context.Context, t *models.Task) (*models.Task, error) {
	row := r.Pool.QueryRow(ctx, `UPDATE tasks SET title=$1, description=$2, completed=$3, priority=$4, category=$5, due_date=$6, updated_at=now()
		WHERE id=$7 AND user_id=$8 RETURNING `+taskColumns,
		t.Title, t.Description, t.Completed, t.Priority, t.Category, t.DueDate, t.ID, t.UserID)
	return scanTask(row)
}

// SetTaskCompleted flips the completion flag and returns the updated row.
func (r *Repo) SetTaskCompleted(ctx context.Context, userID, taskID string, completed bool) (*models.Task, error) {
	row := r.Pool.QueryRow(ctx, `UPDATE tasks SET completed=$1, updated_at=now()
		WHERE id=$2 AND user_id=$3 RETURNING `+taskColumns, completed, taskID, userID)
	return scanTask(row)
}

func (r *Repo) DeleteTask(ctx context.Context, userID, taskID string) error {
	cmd, err := r.Pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1 AND user_id=$2`, taskID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
