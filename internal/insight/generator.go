// Package insight decides, at most once per calendar day per user, whether to
// synthesize advisory rows for unmet health, task and budget conditions.
package insight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"wellnest/internal/models"
	"wellnest/internal/notice"
	"wellnest/internal/repo"
	"wellnest/internal/stats"
)

// Store is the slice of the repository the generator needs. *repo.Repo
// satisfies it; tests use in-memory fakes.
type Store interface {
	GetSettings(ctx context.Context, userID string) (*models.UserSettings, error)
	HasInsightBetween(ctx context.Context, userID string, from, to time.Time) (bool, error)
	ClaimInsightRun(ctx context.Context, userID string, day time.Time) (bool, error)
	HasHealthEntry(ctx context.Context, userID string, date time.Time) (bool, error)
	ListIncompleteTasks(ctx context.Context, userID string) ([]models.Task, error)
	SumExpensesBetween(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error)
	CreateInsight(ctx context.Context, in *models.Insight) (*models.Insight, error)
}

// Notifier surfaces an ephemeral user-visible message. Posting must not block.
type Notifier interface {
	Post(userID string, severity notice.Severity, message string, ttl time.Duration)
}

// Budget thresholds: above warnPercent an insight fires; above urgentPercent
// it fires at the higher urgency.
const (
	warnPercent   = 80
	urgentPercent = 95
)

type Generator struct {
	store   Store
	notices Notifier
	now     func() time.Time
}

func NewGenerator(store Store, notices Notifier) *Generator {
	return &Generator{store: store, notices: notices, now: time.Now}
}

// Run performs one generation run for the user. It returns nil both when
// insights were written and when generation was legitimately skipped (reminders
// disabled, already ran today, lost the run claim). Condition-check failures
// are isolated: one failing check never prevents the others from running, and
// the joined error is reported for logging only.
func (g *Generator) Run(ctx context.Context, userID string) error {
	now := g.now()

	settings, err := g.store.GetSettings(ctx, userID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("load settings: %w", err)
	}
	if settings != nil && settings.ReminderFrequency == models.ReminderNone {
		return nil
	}

	day := stats.StartOfDay(now)
	exists, err := g.store.HasInsightBetween(ctx, userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("check today's insights: %w", err)
	}
	if exists {
		return nil
	}

	claimed, err := g.store.ClaimInsightRun(ctx, userID, day)
	if err != nil {
		return fmt.Errorf("claim run: %w", err)
	}
	if !claimed {
		return nil
	}

	// Order matters: health, then tasks, then finance. It fixes insertion
	// order of the rows, not their urgency.
	var errs []error
	if err := g.checkHealth(ctx, userID, day); err != nil {
		errs = append(errs, fmt.Errorf("health check: %w", err))
	}
	if err := g.checkTasks(ctx, userID); err != nil {
		errs = append(errs, fmt.Errorf("task check: %w", err))
	}
	if err := g.checkBudget(ctx, userID, settings, now); err != nil {
		errs = append(errs, fmt.Errorf("budget check: %w", err))
	}
	return errors.Join(errs...)
}

func (g *Generator) checkHealth(ctx context.Context, userID string, day time.Time) error {
	logged, err := g.store.HasHealthEntry(ctx, userID, day)
	if err != nil {
		return err
	}
	if logged {
		return nil
	}
	_, err = g.store.CreateInsight(ctx, &models.Insight{
		UserID:      userID,
		Title:       "💧 Time for your daily health check!",
		Content:     "Don't forget to log your water intake, steps, and exercise today. Small consistent actions lead to big results!",
		InsightType: models.InsightTypeHealth,
		Priority:    2,
	})
	if err != nil {
		return err
	}
	g.notices.Post(userID, notice.SeverityInfo, "💧 Remember to log your health data today!", notice.DefaultTTL)
	return nil
}

func (g *Generator) checkTasks(ctx context.Context, userID string) error {
	tasks, err := g.store.ListIncompleteTasks(ctx, userID)
	if err != nil {
		return err
	}
	pending := stats.CountHighPriorityPending(tasks)
	if pending == 0 {
		return nil
	}
	_, err = g.store.CreateInsight(ctx, &models.Insight{
		UserID:      userID,
		Title:       "⚡ High priority tasks need attention!",
		Content:     fmt.Sprintf("You have %d high-priority task(s) pending. Tackle them first for maximum productivity!", pending),
		InsightType: models.InsightTypeProductivity,
		Priority:    2,
	})
	if err != nil {
		return err
	}
	g.notices.Post(userID, notice.SeverityInfo, fmt.Sprintf("⚡ You have %d high-priority tasks!", pending), notice.DefaultTTL)
	return nil
}

func (g *Generator) checkBudget(ctx context.Context, userID string, settings *models.UserSettings, now time.Time) error {
	// No settings row means no budget to compare against; silent skip.
	if settings == nil || !settings.MonthlyExpenseBudget.IsPositive() {
		return nil
	}
	from, to := stats.MonthBounds(now)
	spent, err := g.store.SumExpensesBetween(ctx, userID, from, to)
	if err != nil {
		return err
	}
	percent := stats.BudgetPercent(spent, settings.MonthlyExpenseBudget)
	if percent <= warnPercent {
		return nil
	}
	priority := 2
	if percent > urgentPercent {
		priority = 1
	}
	_, err = g.store.CreateInsight(ctx, &models.Insight{
		UserID:      userID,
		Title:       "💰 Budget Alert!",
		Content:     fmt.Sprintf("You've used %.1f%% of your monthly budget. Consider reviewing your spending to stay on track.", percent),
		InsightType: models.InsightTypeFinance,
		Priority:    priority,
	})
	if err != nil {
		return err
	}
	g.notices.Post(userID, notice.SeverityWarning, fmt.Sprintf("💰 Budget alert: %.1f%% used!", percent), notice.DefaultTTL)
	return nil
}
