package inmemory

import (
	"sync"
	"time"

	spendingdomain "smartbudget-go/internal/domain/spending"
)

// CategoriesCache keeps each user's visible categories (own + defaults).
type CategoriesCache struct {
	mu    sync.RWMutex
	items map[string]categoriesItem
	now   func() time.Time
}

type categoriesItem struct {
	value     []spendingdomain.Category
	expiresAt time.Time
}

func NewCategoriesCache() *CategoriesCache {
	return &CategoriesCache{
		items: make(map[string]categoriesItem),
		now:   time.Now,
	}
}

func (c *CategoriesCache) GetByUserID(userID string) ([]spendingdomain.Category, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[userID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[userID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, userID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneCategories(item.value), true
}

func (c *CategoriesCache) SetByUserID(userID string, categories []spendingdomain.Category, ttl time.Duration) {
	if ttl <= 0 {
		c.DeleteByUserID(userID)
		return
	}

	c.mu.Lock()
	c.items[userID] = categoriesItem{
		value:     cloneCategories(categories),
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *CategoriesCache) DeleteByUserID(userID string) {
	c.mu.Lock()
	delete(c.items, userID)
	c.mu.Unlock()
}

func cloneCategories(categories []spendingdomain.Category) []spendingdomain.Category {
	if categories == nil {
		return nil
	}
	cloned := make([]spendingdomain.Category, len(categories))
	for i := range categories {
		cloned[i] = categories[i]
		if categories[i].UserID != nil {
			userID := *categories[i].UserID
			cloned[i].UserID = &userID
		}
	}
	return cloned
}
