package spending

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smartbudget-go/internal/domain/money"
	"smartbudget-go/internal/domain/period"
	"smartbudget-go/internal/events"
)

const (
	uncategorizedName  = "Uncategorized"
	uncategorizedColor = "#6B7280"
	uncategorizedIcon  = "tag"

	defaultCategoryColor = "#3b82f6"
	defaultCategoryIcon  = "tag"

	maxDescriptionLen  = 200
	maxCategoryNameLen = 50
)

// Periods accepted by the spending list and stats views.
var Periods = []period.Filter{period.All, period.Today, period.Week, period.Month}

var categoryIcons = map[string]struct{}{
	"tag": {}, "utensils": {}, "car": {}, "shopping-bag": {}, "film": {}, "receipt": {},
	"heart": {}, "home": {}, "briefcase": {}, "plane": {}, "coffee": {}, "book": {},
	"gamepad": {}, "music": {}, "camera": {}, "gift": {}, "tool": {}, "more-horizontal": {},
}

var categoryColorRegex = regexp.MustCompile(`^#[0-9a-f]{6}$`)

type Service struct {
	repo     Repository
	cache    CategoriesCache
	cacheTTL time.Duration
	events   events.Publisher
	now      func() time.Time
}

func NewService(repo Repository, cache CategoriesCache, cacheTTL time.Duration, publisher events.Publisher) *Service {
	if cache == nil {
		cache = noopCategoriesCache{}
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		events:   publisher,
		now:      time.Now,
	}
}

// AllEntries returns every spending entry of the user, newest first.
func (s *Service) AllEntries(ctx context.Context, userID string) ([]Entry, error) {
	return s.repo.ListEntries(ctx, userID)
}

func (s *Service) ListEntries(ctx context.Context, userID string, filter ListFilter) ([]Entry, error) {
	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FilterEntries(entries, filter, s.now()), nil
}

func (s *Service) Stats(ctx context.Context, userID string, filter ListFilter) (Stats, error) {
	entries, err := s.ListEntries(ctx, userID, filter)
	if err != nil {
		return Stats{}, err
	}
	categories, err := s.ListCategories(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(entries, categories), nil
}

func (s *Service) CreateEntry(ctx context.Context, input CreateEntryInput) (*Entry, error) {
	description, err := validateDescription(input.Description)
	if err != nil {
		return nil, err
	}
	if err := money.RequirePositive(input.Amount); err != nil {
		return nil, err
	}
	categoryID, err := s.checkCategory(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	entry := Entry{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Amount:      money.Normalize(input.Amount),
		Description: description,
		CategoryID:  categoryID,
		Date:        period.StartOfDay(input.Date),
	}

	if err := s.repo.CreateEntry(ctx, &entry); err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, events.New(events.SpendingCreated, entry.UserID, entry.ID, map[string]any{
		"amount": entry.Amount.String(),
		"date":   entry.Date.Format("2006-01-02"),
	}))
	return &entry, nil
}

func (s *Service) UpdateEntry(ctx context.Context, input UpdateEntryInput) (*Entry, error) {
	description, err := validateDescription(input.Description)
	if err != nil {
		return nil, err
	}
	if err := money.RequirePositive(input.Amount); err != nil {
		return nil, err
	}
	categoryID, err := s.checkCategory(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.GetEntryByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	entry.Amount = money.Normalize(input.Amount)
	entry.Description = description
	entry.CategoryID = categoryID
	entry.Date = period.StartOfDay(input.Date)

	if err := s.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, events.New(events.SpendingUpdated, entry.UserID, entry.ID, map[string]any{
		"amount": entry.Amount.String(),
	}))
	return entry, nil
}

func (s *Service) DeleteEntry(ctx context.Context, userID, entryID string) error {
	deleted, err := s.repo.DeleteEntry(ctx, userID, entryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEntryNotFound
	}
	_ = s.events.Publish(ctx, events.New(events.SpendingDeleted, userID, entryID, nil))
	return nil
}

func (s *Service) ListCategories(ctx context.Context, userID string) ([]Category, error) {
	if cached, ok := s.cache.GetByUserID(userID); ok {
		return cached, nil
	}
	categories, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.SetByUserID(userID, categories, s.cacheTTL)
	return categories, nil
}

func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	name, err := validateCategoryName(input.Name)
	if err != nil {
		return nil, err
	}

	color := defaultCategoryColor
	if input.Color != nil {
		if color, err = normalizeCategoryColor(*input.Color); err != nil {
			return nil, err
		}
	}
	icon := defaultCategoryIcon
	if input.Icon != nil {
		if icon, err = normalizeCategoryIcon(*input.Icon); err != nil {
			return nil, err
		}
	}

	count, err := s.repo.CountCategoriesByName(ctx, input.UserID, name, "")
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameTaken
	}

	userID := input.UserID
	category := Category{
		ID:     uuid.NewString(),
		UserID: &userID,
		Name:   name,
		Color:  color,
		Icon:   icon,
	}

	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}
	s.cache.DeleteByUserID(input.UserID)

	return &category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.IsDefault() {
		return nil, ErrDefaultCategoryReadOnly
	}

	if input.Name != nil {
		name, err := validateCategoryName(*input.Name)
		if err != nil {
			return nil, err
		}
		count, err := s.repo.CountCategoriesByName(ctx, input.UserID, name, category.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrCategoryNameTaken
		}
		category.Name = name
	}
	if input.Color != nil {
		color, err := normalizeCategoryColor(*input.Color)
		if err != nil {
			return nil, err
		}
		category.Color = color
	}
	if input.Icon != nil {
		icon, err := normalizeCategoryIcon(*input.Icon)
		if err != nil {
			return nil, err
		}
		category.Icon = icon
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	s.cache.DeleteByUserID(input.UserID)

	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	category, err := s.repo.GetCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if category.IsDefault() {
		return ErrDefaultCategoryReadOnly
	}

	inUse, err := s.repo.CountEntriesByCategoryID(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	deleted, err := s.repo.DeleteCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}
	s.cache.DeleteByUserID(userID)
	return nil
}

func (s *Service) checkCategory(ctx context.Context, userID string, categoryID *string) (*string, error) {
	if categoryID == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*categoryID)
	if value == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(value); err != nil {
		return nil, ErrCategoryNotFound
	}
	if _, err := s.repo.GetCategoryByID(ctx, userID, value); err != nil {
		return nil, err
	}
	return &value, nil
}

// FilterEntries keeps entries matching the category and the period window.
// An empty or "all" category matches every entry.
func FilterEntries(entries []Entry, filter ListFilter, now time.Time) []Entry {
	window := period.Filter(filter.Period)
	categoryID := strings.TrimSpace(filter.CategoryID)

	result := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if categoryID != "" && categoryID != "all" {
			if entry.CategoryID == nil || *entry.CategoryID != categoryID {
				continue
			}
		}
		if !window.Matches(entry.Date, now) {
			continue
		}
		result = append(result, entry)
	}
	return result
}

// ComputeStats totals the entries and breaks them down by category, largest
// first. Entries without a known category land in "Uncategorized".
func ComputeStats(entries []Entry, categories []Category) Stats {
	categoriesByID := make(map[string]Category, len(categories))
	for _, category := range categories {
		categoriesByID[category.ID] = category
	}

	stats := Stats{Total: decimal.Zero, Count: len(entries)}
	byCategory := make(map[string]*CategoryTotal)

	for _, entry := range entries {
		stats.Total = stats.Total.Add(entry.Amount)

		key := ""
		total := CategoryTotal{Name: uncategorizedName, Color: uncategorizedColor, Icon: uncategorizedIcon}
		if entry.CategoryID != nil {
			if category, ok := categoriesByID[*entry.CategoryID]; ok {
				key = category.ID
				total = CategoryTotal{CategoryID: category.ID, Name: category.Name, Color: category.Color, Icon: category.Icon}
			}
		}

		current, ok := byCategory[key]
		if !ok {
			total.Total = decimal.Zero
			current = &total
			byCategory[key] = current
		}
		current.Total = current.Total.Add(entry.Amount)
		current.Count++
	}

	stats.AvgPerTransaction = money.Average(stats.Total, stats.Count)

	stats.ByCategory = make([]CategoryTotal, 0, len(byCategory))
	for _, total := range byCategory {
		total.Percent = money.Percent(total.Total, stats.Total).Round(1)
		stats.ByCategory = append(stats.ByCategory, *total)
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool {
		if cmp := stats.ByCategory[i].Total.Cmp(stats.ByCategory[j].Total); cmp != 0 {
			return cmp > 0
		}
		return stats.ByCategory[i].Name < stats.ByCategory[j].Name
	})

	return stats
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", ErrDescriptionRequired
	}
	if len([]rune(description)) > maxDescriptionLen {
		return "", ErrDescriptionTooLong
	}
	return description, nil
}

func validateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrCategoryNameRequired
	}
	if len([]rune(name)) > maxCategoryNameLen {
		return "", ErrCategoryNameTooLong
	}
	return name, nil
}

func normalizeCategoryColor(value string) (string, error) {
	color := strings.ToLower(strings.TrimSpace(value))
	if !categoryColorRegex.MatchString(color) {
		return "", ErrInvalidCategoryColor
	}
	return color, nil
}

func normalizeCategoryIcon(value string) (string, error) {
	icon := strings.ToLower(strings.TrimSpace(value))
	if _, ok := categoryIcons[icon]; !ok {
		return "", ErrInvalidCategoryIcon
	}
	return icon, nil
}
