package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"wellnest/internal/models"
	"wellnest/internal/repo"
)

func day(d int) time.Time {
	return time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
}

func TestCollectionPrepend(t *testing.T) {
	t.Parallel()
	c := NewCollection(func(t models.Task) string { return t.ID })
	c.Reset([]models.Task{{ID: "b"}, {ID: "a"}})
	c.Prepend(models.Task{ID: "c"})

	items := c.Items()
	if len(items) != 3 || items[0].ID != "c" {
		t.Fatalf("expected new item first, got %+v", items)
	}
}

func TestCollectionReplaceInPlace(t *testing.T) {
	t.Parallel()
	c := NewCollection(func(t models.Task) string { return t.ID })
	c.Reset([]models.Task{{ID: "a", Title: "old"}, {ID: "b"}})

	if !c.Replace(models.Task{ID: "a", Title: "new"}) {
		t.Fatal("expected replace to find the row")
	}
	items := c.Items()
	if items[0].ID != "a" || items[0].Title != "new" {
		t.Fatalf("expected in-place update preserving order, got %+v", items)
	}
	if c.Replace(models.Task{ID: "zz"}) {
		t.Fatal("replace of unknown id should report false")
	}
	if c.Len() != 2 {
		t.Fatalf("replace must never change length, got %d", c.Len())
	}
}

func TestCollectionRemove(t *testing.T) {
	t.Parallel()
	c := NewCollection(func(e models.Expense) string { return e.ID })
	c.Reset([]models.Expense{{ID: "x"}, {ID: "y"}, {ID: "z"}})

	if !c.Remove("y") {
		t.Fatal("expected remove to find the row")
	}
	items := c.Items()
	if len(items) != 2 || items[0].ID != "x" || items[1].ID != "z" {
		t.Fatalf("expected x,z after removal, got %+v", items)
	}
	if c.Remove("y") {
		t.Fatal("second remove of same id should report false")
	}
}

func TestCollectionItemsIsACopy(t *testing.T) {
	t.Parallel()
	c := NewCollection(func(t models.Task) string { return t.ID })
	c.Reset([]models.Task{{ID: "a", Title: "orig"}})

	items := c.Items()
	items[0].Title = "mutated"
	if c.Items()[0].Title != "orig" {
		t.Fatal("Items must return a copy, not the backing slice")
	}
}

func TestSaveHealthEntryReplacesSameDate(t *testing.T) {
	t.Parallel()
	d := NewUserData()
	d.Health.Reset([]models.HealthEntry{
		{ID: "h2", Date: day(14), Steps: 3000},
		{ID: "h1", Date: day(13), Steps: 1000},
	})

	d.SaveHealthEntry(models.HealthEntry{ID: "h3", Date: day(14), Steps: 9000})

	entries := d.Health.Items()
	if len(entries) != 2 {
		t.Fatalf("expected still two entries, got %d", len(entries))
	}
	count := 0
	for _, e := range entries {
		if e.Date.Equal(day(14)) {
			count++
			if e.Steps != 9000 {
				t.Fatalf("expected replaced values, got %+v", e)
			}
		}
	}
	if count != 1 {
		t.Fatalf("exactly one entry per date expected, got %d", count)
	}
	if !entries[0].Date.After(entries[1].Date) {
		t.Fatalf("entries should stay sorted newest first, got %+v", entries)
	}
}

func TestSaveHealthEntryNewDateSortsIn(t *testing.T) {
	t.Parallel()
	d := NewUserData()
	d.Health.Reset([]models.HealthEntry{
		{ID: "h2", Date: day(14)},
		{ID: "h1", Date: day(10)},
	})

	d.SaveHealthEntry(models.HealthEntry{ID: "h3", Date: day(12)})

	entries := d.Health.Items()
	if len(entries) != 3 {
		t.Fatalf("expected three entries, got %d", len(entries))
	}
	if !entries[0].Date.Equal(day(14)) || !entries[1].Date.Equal(day(12)) || !entries[2].Date.Equal(day(10)) {
		t.Fatalf("expected 14,12,10 order, got %+v", entries)
	}
}

func TestMarkInsightRead(t *testing.T) {
	t.Parallel()
	d := NewUserData()
	d.Insights.Reset([]models.Insight{
		{ID: "i1", IsRead: false},
		{ID: "i2", IsRead: false},
	})

	d.MarkInsightRead("i2")

	items := d.Insights.Items()
	if items[0].IsRead || !items[1].IsRead {
		t.Fatalf("expected only i2 read, got %+v", items)
	}
}

type fakeSource struct {
	tasks    []models.Task
	expenses []models.Expense
	entries  []models.HealthEntry
	insights []models.Insight
	settings *models.UserSettings
}

func (f *fakeSource) ListTasks(context.Context, string) ([]models.Task, error) {
	return f.tasks, nil
}
func (f *fakeSource) ListExpenses(context.Context, string) ([]models.Expense, error) {
	return f.expenses, nil
}
func (f *fakeSource) ListHealthEntries(context.Context, string) ([]models.HealthEntry, error) {
	return f.entries, nil
}
func (f *fakeSource) ListInsights(context.Context, string) ([]models.Insight, error) {
	return f.insights, nil
}
func (f *fakeSource) GetSettings(context.Context, string) (*models.UserSettings, error) {
	if f.settings == nil {
		return nil, repo.ErrNotFound
	}
	return f.settings, nil
}

func TestLoadPopulatesAllCollections(t *testing.T) {
	t.Parallel()
	src := &fakeSource{
		tasks:    []models.Task{{ID: "t1"}},
		expenses: []models.Expense{{ID: "e1", Amount: decimal.NewFromInt(5)}},
		entries:  []models.HealthEntry{{ID: "h1", Date: day(14)}},
		insights: []models.Insight{{ID: "i1"}},
	}
	d, err := Load(context.Background(), src, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Tasks.Len() != 1 || d.Expenses.Len() != 1 || d.Health.Len() != 1 || d.Insights.Len() != 1 {
		t.Fatalf("unexpected collection sizes: %d %d %d %d", d.Tasks.Len(), d.Expenses.Len(), d.Health.Len(), d.Insights.Len())
	}
	if d.Settings != nil {
		t.Fatal("missing settings row should leave Settings nil, not error")
	}
}
