package spending

import (
	"context"
	"time"
)

type Repository interface {
	ListEntries(ctx context.Context, userID string) ([]Entry, error)
	GetEntryByID(ctx context.Context, userID, entryID string) (*Entry, error)
	CreateEntry(ctx context.Context, entry *Entry) error
	UpdateEntry(ctx context.Context, entry *Entry) error
	DeleteEntry(ctx context.Context, userID, entryID string) (bool, error)

	// ListCategories returns the user's own categories followed by the defaults.
	ListCategories(ctx context.Context, userID string) ([]Category, error)
	GetCategoryByID(ctx context.Context, userID, categoryID string) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, userID, categoryID string) (bool, error)
	CountCategoriesByName(ctx context.Context, userID, name, excludeID string) (int64, error)
	CountEntriesByCategoryID(ctx context.Context, userID, categoryID string) (int64, error)
}

type CategoriesCache interface {
	GetByUserID(userID string) ([]Category, bool)
	SetByUserID(userID string, categories []Category, ttl time.Duration)
	DeleteByUserID(userID string)
}

type noopCategoriesCache struct{}

func (noopCategoriesCache) GetByUserID(string) ([]Category, bool) {
	return nil, false
}

func (noopCategoriesCache) SetByUserID(string, []Category, time.Duration) {}

func (noopCategoriesCache) DeleteByUserID(string) {}
