// Package store models the in-memory view of a user's collections with the
// optimistic merge rules applied on successful writes: prepend on insert,
// replace-in-place on update, filter-out on delete. It is deliberately
// separate from the remote client so the merge rules are testable on their
// own; on a failed write the caller simply never merges, leaving the view
// untouched.
package store

import (
	"context"
	"errors"
	"sort"

	"wellnest/internal/models"
	"wellnest/internal/repo"
)

// Collection is an ordered slice of rows, newest first, keyed for merges.
type Collection[T any] struct {
	items []T
	id    func(T) string
}

func NewCollection[T any](id func(T) string) *Collection[T] {
	return &Collection[T]{id: id}
}

// Reset replaces the contents with freshly fetched rows.
func (c *Collection[T]) Reset(items []T) {
	c.items = append(c.items[:0:0], items...)
}

// Prepend merges a freshly inserted row to the front.
func (c *Collection[T]) Prepend(item T) {
	c.items = append([]T{item}, c.items...)
}

// Replace swaps the row with a matching ID in place, preserving order. It
// reports whether a match was found.
func (c *Collection[T]) Replace(item T) bool {
	key := c.id(item)
	for i := range c.items {
		if c.id(c.items[i]) == key {
			c.items[i] = item
			return true
		}
	}
	return false
}

// Remove filters out the row with the given ID.
func (c *Collection[T]) Remove(id string) bool {
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Collection[T]) Len() int { return len(c.items) }

// Items returns a copy of the current contents.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Source is the read surface needed to populate a user's view. *repo.Repo
// satisfies it.
type Source interface {
	ListTasks(ctx context.Context, userID string) ([]models.Task, error)
	ListExpenses(ctx context.Context, userID string) ([]models.Expense, error)
	ListHealthEntries(ctx context.Context, userID string) ([]models.HealthEntry, error)
	ListInsights(ctx context.Context, userID string) ([]models.Insight, error)
	GetSettings(ctx context.Context, userID string) (*models.UserSettings, error)
}

// UserData is one user's fetched collections plus their singleton settings.
type UserData struct {
	Tasks    *Collection[models.Task]
	Expenses *Collection[models.Expense]
	Health   *Collection[models.HealthEntry]
	Insights *Collection[models.Insight]
	Settings *models.UserSettings
}

func NewUserData() *UserData {
	return &UserData{
		Tasks:    NewCollection(func(t models.Task) string { return t.ID }),
		Expenses: NewCollection(func(e models.Expense) string { return e.ID }),
		Health:   NewCollection(func(h models.HealthEntry) string { return h.ID }),
		Insights: NewCollection(func(i models.Insight) string { return i.ID }),
	}
}

// Load fetches all five collections for the user. A missing settings row is
// not an error; Settings stays nil. Any other failure aborts the load.
func Load(ctx context.Context, src Source, userID string) (*UserData, error) {
	d := NewUserData()
	tasks, err := src.ListTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.Tasks.Reset(tasks)

	expenses, err := src.ListExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.Expenses.Reset(expenses)

	entries, err := src.ListHealthEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.Health.Reset(entries)

	insights, err := src.ListInsights(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.Insights.Reset(insights)

	settings, err := src.GetSettings(ctx, userID)
	switch {
	case err == nil:
		d.Settings = settings
	case !errors.Is(err, repo.ErrNotFound):
		return nil, err
	}
	return d, nil
}

// SaveHealthEntry applies the upsert-by-date merge: any existing entry for the
// saved date is dropped, the server's row is added, and the collection is
// re-sorted newest date first. After the merge exactly one entry exists for
// that date.
func (d *UserData) SaveHealthEntry(saved models.HealthEntry) {
	kept := d.Health.Items()
	merged := make([]models.HealthEntry, 0, len(kept)+1)
	merged = append(merged, saved)
	for _, h := range kept {
		if !h.Date.Equal(saved.Date) {
			merged = append(merged, h)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})
	d.Health.Reset(merged)
}

// MarkInsightRead flips the read flag on the cached row, if present.
func (d *UserData) MarkInsightRead(id string) {
	for _, in := range d.Insights.Items() {
		if in.ID == id {
			in.IsRead = true
			d.Insights.Replace(in)
			return
		}
	}
}
