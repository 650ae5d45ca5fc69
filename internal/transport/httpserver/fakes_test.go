package httpserver

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	goalsdomain "smartbudget-go/internal/domain/goals"
	incomedomain "smartbudget-go/internal/domain/income"
	spendingdomain "smartbudget-go/internal/domain/spending"
)

type memoryIncome struct {
	mu      sync.Mutex
	entries map[string]incomedomain.Entry
	sources []incomedomain.Source
}

func (m *memoryIncome) ListEntries(ctx context.Context, userID string) ([]incomedomain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]incomedomain.Entry, 0)
	for _, entry := range m.entries {
		if entry.UserID == userID {
			items = append(items, entry)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return items, nil
}

func (m *memoryIncome) GetEntryByID(ctx context.Context, userID, entryID string) (*incomedomain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[entryID]
	if !ok || entry.UserID != userID {
		return nil, incomedomain.ErrEntryNotFound
	}
	return &entry, nil
}

func (m *memoryIncome) CreateEntry(ctx context.Context, entry *incomedomain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = *entry
	return nil
}

func (m *memoryIncome) UpdateEntry(ctx context.Context, entry *incomedomain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return incomedomain.ErrEntryNotFound
	}
	m.entries[entry.ID] = *entry
	return nil
}

func (m *memoryIncome) DeleteEntry(ctx context.Context, userID, entryID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[entryID]
	if !ok || entry.UserID != userID {
		return false, nil
	}
	delete(m.entries, entryID)
	return true, nil
}

func (m *memoryIncome) ListSources(ctx context.Context) ([]incomedomain.Source, error) {
	return m.sources, nil
}

func (m *memoryIncome) SourceExists(ctx context.Context, sourceID string) (bool, error) {
	for _, source := range m.sources {
		if source.ID == sourceID {
			return true, nil
		}
	}
	return false, nil
}

type memorySpending struct {
	mu         sync.Mutex
	entries    map[string]spendingdomain.Entry
	categories map[string]spendingdomain.Category
}

func (m *memorySpending) ListEntries(ctx context.Context, userID string) ([]spendingdomain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]spendingdomain.Entry, 0)
	for _, entry := range m.entries {
		if entry.UserID == userID {
			items = append(items, entry)
		}
	}
	return items, nil
}

func (m *memorySpending) GetEntryByID(ctx context.Context, userID, entryID string) (*spendingdomain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[entryID]
	if !ok || entry.UserID != userID {
		return nil, spendingdomain.ErrEntryNotFound
	}
	return &entry, nil
}

func (m *memorySpending) CreateEntry(ctx context.Context, entry *spendingdomain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = *entry
	return nil
}

func (m *memorySpending) UpdateEntry(ctx context.Context, entry *spendingdomain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return spendingdomain.ErrEntryNotFound
	}
	m.entries[entry.ID] = *entry
	return nil
}

func (m *memorySpending) DeleteEntry(ctx context.Context, userID, entryID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[entryID]
	if !ok || entry.UserID != userID {
		return false, nil
	}
	delete(m.entries, entryID)
	return true, nil
}

func (m *memorySpending) visible(category spendingdomain.Category, userID string) bool {
	return category.UserID == nil || *category.UserID == userID
}

func (m *memorySpending) ListCategories(ctx context.Context, userID string) ([]spendingdomain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]spendingdomain.Category, 0)
	for _, category := range m.categories {
		if m.visible(category, userID) {
			items = append(items, category)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (m *memorySpending) GetCategoryByID(ctx context.Context, userID, categoryID string) (*spendingdomain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	category, ok := m.categories[categoryID]
	if !ok || !m.visible(category, userID) {
		return nil, spendingdomain.ErrCategoryNotFound
	}
	return &category, nil
}

func (m *memorySpending) CreateCategory(ctx context.Context, category *spendingdomain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = *category
	return nil
}

func (m *memorySpending) UpdateCategory(ctx context.Context, category *spendingdomain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = *category
	return nil
}

func (m *memorySpending) DeleteCategory(ctx context.Context, userID, categoryID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	category, ok := m.categories[categoryID]
	if !ok || category.UserID == nil || *category.UserID != userID {
		return false, nil
	}
	delete(m.categories, categoryID)
	return true, nil
}

func (m *memorySpending) CountCategoriesByName(ctx context.Context, userID, name, excludeID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, category := range m.categories {
		if category.ID != excludeID && category.Name == name && m.visible(category, userID) {
			count++
		}
	}
	return count, nil
}

func (m *memorySpending) CountEntriesByCategoryID(ctx context.Context, userID, categoryID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, entry := range m.entries {
		if entry.UserID == userID && entry.CategoryID != nil && *entry.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

type memoryGoals struct {
	tx       sync.Mutex
	mu       sync.Mutex
	goals    map[string]goalsdomain.Goal
	income   *memoryIncome
	spending *memorySpending
}

func (m *memoryGoals) Transaction(ctx context.Context, fn func(goalsdomain.Repository) error) error {
	m.tx.Lock()
	defer m.tx.Unlock()
	return fn(m)
}

func (m *memoryGoals) LockFunds(ctx context.Context, userID string) error {
	return nil
}

func (m *memoryGoals) AvailableFunds(ctx context.Context, userID string) (decimal.Decimal, error) {
	available := decimal.Zero
	incomeEntries, _ := m.income.ListEntries(ctx, userID)
	for _, entry := range incomeEntries {
		available = available.Add(entry.Amount)
	}
	spendingEntries, _ := m.spending.ListEntries(ctx, userID)
	for _, entry := range spendingEntries {
		available = available.Sub(entry.Amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, goal := range m.goals {
		if goal.UserID == userID {
			available = available.Sub(goal.CurrentAmount)
		}
	}
	return available, nil
}

func (m *memoryGoals) GetGoalForUpdate(ctx context.Context, userID, goalID string) (*goalsdomain.Goal, error) {
	return m.GetGoalByID(ctx, userID, goalID)
}

func (m *memoryGoals) ListGoals(ctx context.Context, userID string) ([]goalsdomain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]goalsdomain.Goal, 0)
	for _, goal := range m.goals {
		if goal.UserID == userID {
			items = append(items, goal)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (m *memoryGoals) GetGoalByID(ctx context.Context, userID, goalID string) (*goalsdomain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	goal, ok := m.goals[goalID]
	if !ok || goal.UserID != userID {
		return nil, goalsdomain.ErrGoalNotFound
	}
	return &goal, nil
}

func (m *memoryGoals) CreateGoal(ctx context.Context, goal *goalsdomain.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[goal.ID] = *goal
	return nil
}

func (m *memoryGoals) UpdateGoal(ctx context.Context, goal *goalsdomain.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[goal.ID]; !ok {
		return goalsdomain.ErrGoalNotFound
	}
	m.goals[goal.ID] = *goal
	return nil
}

func (m *memoryGoals) DeleteGoal(ctx context.Context, userID, goalID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	goal, ok := m.goals[goalID]
	if !ok || goal.UserID != userID {
		return false, nil
	}
	delete(m.goals, goalID)
	return true, nil
}
