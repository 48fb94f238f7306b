// Package stats derives display aggregates from already-fetched rows. All
// functions are pure and treat empty inputs as zero.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"wellnest/internal/models"
)

// Default daily goals, used when a user has no settings row yet.
const (
	DefaultWaterGoal    = 8
	DefaultStepGoal     = 8000
	DefaultExerciseGoal = 30
	DefaultSleepGoal    = 8.0
)

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MonthBounds returns the half-open interval [first of t's month, first of the
// next month). AddDate handles year rollover, so every month length is right.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	year, month, _ := t.Date()
	from := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 1, 0)
}

// MonthExpenseTotal sums amounts of expenses dated within t's calendar month.
func MonthExpenseTotal(expenses []models.Expense, t time.Time) decimal.Decimal {
	from, to := MonthBounds(t)
	total := decimal.Zero
	for _, e := range expenses {
		if !e.Date.Before(from) && e.Date.Before(to) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// TodayExpenseTotal sums amounts of expenses dated on t's calendar date.
func TodayExpenseTotal(expenses []models.Expense, t time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if SameDay(e.Date, t) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// BudgetPercent returns spent/budget as a percentage. A non-positive budget
// yields 0 rather than a division error.
func BudgetPercent(spent, budget decimal.Decimal) float64 {
	if !budget.IsPositive() {
		return 0
	}
	return spent.Div(budget).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// TaskCounts reports completed and total counts over a task list.
func TaskCounts(tasks []models.Task) (completed, total int) {
	for _, t := range tasks {
		total++
		if t.Completed {
			completed++
		}
	}
	return completed, total
}

// CountHighPriorityPending counts incomplete tasks with priority "high".
func CountHighPriorityPending(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed && t.Priority == models.PriorityHigh {
			n++
		}
	}
	return n
}

// EntryForDate finds the health entry dated on t, if any.
func EntryForDate(entries []models.HealthEntry, t time.Time) *models.HealthEntry {
	for i := range entries {
		if SameDay(entries[i].Date, t) {
			return &entries[i]
		}
	}
	return nil
}

// HealthScore is the weighted average of the four goal ratios, each capped at
// 100% and weighted equally, rounded to the nearest integer. A nil settings
// row falls back to the default goals.
func HealthScore(entry models.HealthEntry, settings *models.UserSettings) int {
	waterGoal := float64(DefaultWaterGoal)
	stepGoal := float64(DefaultStepGoal)
	exerciseGoal := float64(DefaultExerciseGoal)
	sleepGoal := DefaultSleepGoal
	if settings != nil {
		waterGoal = float64(settings.DailyWaterGoal)
		stepGoal = float64(settings.DailyStepGoal)
		exerciseGoal = float64(settings.DailyExerciseGoal)
		sleepGoal = settings.DailySleepGoal
	}
	score := goalRatio(float64(entry.WaterGlasses), waterGoal) +
		goalRatio(float64(entry.Steps), stepGoal) +
		goalRatio(float64(entry.ExerciseMinutes), exerciseGoal) +
		goalRatio(entry.SleepHours, sleepGoal)
	return int(math.Round(score / 4))
}

func goalRatio(current, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	ratio := current / goal * 100
	if ratio > 100 {
		return 100
	}
	return ratio
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// CategoryBreakdown groups expenses by category, summing amounts per group,
// largest first; categories tie-break alphabetically for stable output.
func CategoryBreakdown(expenses []models.Expense) []CategoryTotal {
	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}
	totals := make([]CategoryTotal, 0, len(byCategory))
	for category, total := range byCategory {
		totals = append(totals, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		if !totals[i].Total.Equal(totals[j].Total) {
			return totals[i].Total.GreaterThan(totals[j].Total)
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}
