package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"wellnest/internal/models"
)

func setupTestRepo(t *testing.T) (*Repo, func()) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	schema := fmt.Sprintf("test_%d", time.Now().UnixNano())
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", schema))
		return err
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := pool.Exec(ctx, fmt.Sprintf("CREATE SCHEMA %s", schema)); err != nil {
		pool.Close()
		t.Fatalf("create schema: %v", err)
	}
	if err := createTestTables(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("create tables: %v", err)
	}
	repo := New(pool)
	return repo, func() {
		_, _ = pool.Exec(ctx, fmt.Sprintf("DROP SCHEMA %s CASCADE", schema))
		pool.Close()
	}
}

func createTestTables(ctx context.Context, pool *pgxpool.Pool) error {
	queries := []string{
		`CREATE TABLE users (id uuid PRIMARY KEY DEFAULT gen_random_uuid(), email text UNIQUE, password_hash text, created_at timestamptz DEFAULT now(), updated_at timestamptz DEFAULT now())`,
		`CREATE TABLE sessions (id uuid PRIMARY KEY DEFAULT gen_random_uuid(), user_id uuid, token text, expires_at timestamptz, created_at timestamptz DEFAULT now())`,
		`CREATE TABLE tasks (id uuid PRIMARY KEY DEFAULT gen_random_uuid(), user_id uuid, title text, description text, completed boolean DEFAULT false, priority text DEFAULT 'medium', category text DEFAULT '', due_date date, created_at timestamptz DEFAULT now(), updated_at timestamptz DEFAULT now())`,
		`CREATE TABLE expenses (id uuid PRIMARY KEY DEFAULT gen_random_uuid(), user_id uuid, amount numeric(12,2), description text DEFAULT '', category text DEFAULT '', date date, created_at timestamptz DEFAULT now())`,
		`CREATE TABLE health_entries (id uuid PRIMARY KEY DEFAULT gen_random_uuid(), user_id uuid, date date, steps int DEFAULT 0, water_glasses int DEFAULT 0, sleep_hours double precision DEFAULT 0, exercise_minutes int DEFAULT 0, created_at timestamptz DEFAULT now(), updated_at timestamptz DEFAULT now(), UNIQUE (user_id, date))`,
		`CREATE TABLE user_settings (id uuid PRIMARY KEY DEFAULT gen_random_uuid(), user_id uuid UNIQUE, daily_water_goal int DEFAULT 8, daily_step_goal int DEFAULT 8000, daily_exercise_goal int DEFAULT 30, daily_sleep_goal double precision DEFAULT 8, monthly_expense_budget numeric(12,2) DEFAULT 1000, reminder_frequency text DEFAULT 'daily', created_at timestamptz DEFAULT now(), updated_at timestamptz DEFAULT now())`,
		`CREATE TABLE ai_insights (id uuid PRIMARY KEY DEFAULT gen_random_uuid(), user_id uuid, title text, content text, insight_type text DEFAULT 'other', priority int DEFAULT 2, is_read boolean DEFAULT false, created_at timestamptz DEFAULT now())`,
		`CREATE TABLE insight_runs (user_id uuid, run_date date, created_at timestamptz DEFAULT now(), PRIMARY KEY (user_id, run_date))`,
	}
	for _, query := range queries {
		if _, err := pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func createTestUser(t *testing.T, repo *Repo, email string) string {
	t.Helper()
	id, err := repo.CreateUser(context.Background(), email, "x")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}

func TestHealthEntryUpsertReplaces(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	userID := createTestUser(t, repo, "a@b.com")
	day := time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)

	first, err := repo.UpsertHealthEntry(ctx, &models.HealthEntry{UserID: userID, Date: day, Steps: 1000, WaterGlasses: 2})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := repo.UpsertHealthEntry(ctx, &models.HealthEntry{UserID: userID, Date: day, Steps: 9000, WaterGlasses: 8})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("upsert should replace the same row, got ids %s and %s", first.ID, second.ID)
	}
	entries, err := repo.ListHealthEntries(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Steps != 9000 {
		t.Fatalf("expected one entry with new values, got %+v", entries)
	}
}

func TestClaimInsightRunOncePerDay(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	userID := createTestUser(t, repo, "claim@b.com")
	day := time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)

	claimed, err := repo.ClaimInsightRun(ctx, userID, day)
	if err != nil || !claimed {
		t.Fatalf("first claim should win: claimed=%v err=%v", claimed, err)
	}
	claimed, err = repo.ClaimInsightRun(ctx, userID, day)
	if err != nil || claimed {
		t.Fatalf("second claim should lose: claimed=%v err=%v", claimed, err)
	}
	claimed, err = repo.ClaimInsightRun(ctx, userID, day.AddDate(0, 0, 1))
	if err != nil || !claimed {
		t.Fatalf("next day should claim fresh: claimed=%v err=%v", claimed, err)
	}
}

func TestSumExpensesBetweenBounds(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	userID := createTestUser(t, repo, "sum@b.com")
	add := func(amount int64, on time.Time) {
		t.Helper()
		if _, err := repo.CreateExpense(ctx, &models.Expense{UserID: userID, Amount: decimal.NewFromInt(amount), Date: on}); err != nil {
			t.Fatalf("create expense: %v", err)
		}
	}
	add(100, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	add(200, time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC))
	add(300, time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC))
	add(400, time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC))

	from := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	total, err := repo.SumExpensesBetween(ctx, userID, from, to)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected 300 inside [from, to), got %s", total)
	}
}

func TestHasInsightBetween(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	userID := createTestUser(t, repo, "guard@b.com")

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	exists, err := repo.HasInsightBetween(ctx, userID, from, to)
	if err != nil || exists {
		t.Fatalf("expected no insight yet: exists=%v err=%v", exists, err)
	}
	if _, err := repo.CreateInsight(ctx, &models.Insight{UserID: userID, Title: "t", Content: "c", InsightType: models.InsightTypeHealth, Priority: 2}); err != nil {
		t.Fatalf("create insight: %v", err)
	}
	exists, err = repo.HasInsightBetween(ctx, userID, from, to)
	if err != nil || !exists {
		t.Fatalf("expected insight inside today's window: exists=%v err=%v", exists, err)
	}
}

func TestEnsureSettingsIsIdempotent(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	userID := createTestUser(t, repo, "settings@b.com")

	if _, err := repo.GetSettings(ctx, userID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first access, got %v", err)
	}
	first, err := repo.EnsureSettings(ctx, userID)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if first.ReminderFrequency != models.ReminderDaily || first.DailyStepGoal != 8000 {
		t.Fatalf("expected defaults, got %+v", first)
	}
	second, err := repo.EnsureSettings(ctx, userID)
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("ensure must not create a second row: %s vs %s", first.ID, second.ID)
	}
}

func TestTaskToggleAndDelete(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	userID := createTestUser(t, repo, "tasks@b.com")
	task, err := repo.CreateTask(ctx, &models.Task{UserID: userID, Title: "write report", Priority: models.PriorityHigh})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	toggled, err := repo.SetTaskCompleted(ctx, userID, task.ID, true)
	if err != nil || !toggled.Completed {
		t.Fatalf("toggle: completed=%v err=%v", toggled != nil && toggled.Completed, err)
	}

	pending, err := repo.ListIncompleteTasks(ctx, userID)
	if err != nil {
		t.Fatalf("list incomplete: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("completed task must not appear as incomplete, got %d", len(pending))
	}

	if err := repo.DeleteTask(ctx, userID, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteTask(ctx, userID, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}
}

func TestUserScopingOnReads(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	alice := createTestUser(t, repo, "alice@b.com")
	bert := createTestUser(t, repo, "bert@b.com")

	if _, err := repo.CreateTask(ctx, &models.Task{UserID: alice, Title: "hers"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	tasks, err := repo.ListTasks(ctx, bert)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("rows must be scoped to their owner, got %d", len(tasks))
	}
}
