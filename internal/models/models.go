package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Task priorities as stored and displayed.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Insight type tags.
const (
	InsightTypeHealth       = "health"
	InsightTypeProductivity = "productivity"
	InsightTypeFinance      = "finance"
	InsightTypeOther        = "other"
)

// Reminder frequency values. Only "none" is ever special-cased: it disables
// automated insight generation entirely. Anything else means daily.
const (
	ReminderNone  = "none"
	ReminderDaily = "daily"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Expense rows are immutable once created: there is insert, list and delete,
// but no update path.
type Expense struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// HealthEntry holds one day's metrics. (user_id, date) is a natural key;
// saving for an existing date replaces the row.
type HealthEntry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Date            time.Time `json:"date"`
	Steps           int       `json:"steps"`
	WaterGlasses    int       `json:"water_glasses"`
	SleepHours      float64   `json:"sleep_hours"`
	ExerciseMinutes int       `json:"exercise_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserSettings is a per-user singleton, created lazily with defaults.
type UserSettings struct {
	ID                   string          `json:"id"`
	UserID               string          `json:"user_id"`
	DailyWaterGoal       int             `json:"daily_water_goal"`
	DailyStepGoal        int             `json:"daily_step_goal"`
	DailyExerciseGoal    int             `json:"daily_exercise_goal"`
	DailySleepGoal       float64         `json:"daily_sleep_goal"`
	MonthlyExpenseBudget decimal.Decimal `json:"monthly_expense_budget"`
	ReminderFrequency    string          `json:"reminder_frequency"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// Insight is an advisory message shown to the user. Lower priority is more
// urgent; the generator only ever writes 1 and 2.
type Insight struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	InsightType string    `json:"insight_type"`
	Priority    int       `json:"priority"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}
