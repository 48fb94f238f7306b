package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"wellnest/internal/models"
)

const expenseColumns = `id, user_id, amount, description, category, date, created_at`

func (r *Repo) CreateExpense(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	var created models.Expense
	err := r.Pool.QueryRow(ctx, `INSERT INTO expenses (user_id, amount, description, category, date)
		VALUES ($1,$2,$3,$4,$5) RETURNING `+expenseColumns,
		e.UserID, e.Amount, e.Description, e.Category, e.Date).
		Scan(&created.ID, &created.UserID, &created.Amount, &created.Description, &created.Category, &created.Date, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return &created, nil
}

func (r *Repo) ListExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Description, &e.Category, &e.Date, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *Repo) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	cmd, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE id=$1 AND user_id=$2`, expenseID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SumExpensesBetween totals amounts with date in [from, to).
func (r *Repo) SumExpensesBetween(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id=$1 AND date >= $2 AND date < $3`,
		userID, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
