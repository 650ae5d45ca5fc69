package spending

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	spendingdomain "smartbudget-go/internal/domain/spending"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListEntries(ctx context.Context, userID string) ([]spendingdomain.Entry, error) {
	var entries []spendingdomain.Entry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc, created_at desc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresRepository) GetEntryByID(ctx context.Context, userID, entryID string) (*spendingdomain.Entry, error) {
	var entry spendingdomain.Entry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, entryID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, spendingdomain.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *PostgresRepository) CreateEntry(ctx context.Context, entry *spendingdomain.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PostgresRepository) UpdateEntry(ctx context.Context, entry *spendingdomain.Entry) error {
	result := r.db.WithContext(ctx).
		Model(&spendingdomain.Entry{}).
		Where("id = ? AND user_id = ?", entry.ID, entry.UserID).
		Updates(map[string]interface{}{
			"amount":      entry.Amount,
			"description": entry.Description,
			"category_id": entry.CategoryID,
			"date":        entry.Date,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return spendingdomain.ErrEntryNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteEntry(ctx context.Context, userID, entryID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&spendingdomain.Entry{}, "user_id = ? AND id = ?", userID, entryID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListCategories(ctx context.Context, userID string) ([]spendingdomain.Category, error) {
	var categories []spendingdomain.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("user_id IS NULL, name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PostgresRepository) GetCategoryByID(ctx context.Context, userID, categoryID string) (*spendingdomain.Category, error) {
	var category spendingdomain.Category
	if err := r.db.WithContext(ctx).
		Where("id = ? AND (user_id = ? OR user_id IS NULL)", categoryID, userID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, spendingdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *spendingdomain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *spendingdomain.Category) error {
	return r.db.WithContext(ctx).
		Model(&spendingdomain.Category{}).
		Where("id = ? AND user_id = ?", category.ID, category.UserID).
		Updates(map[string]interface{}{
			"name":  category.Name,
			"color": category.Color,
			"icon":  category.Icon,
		}).Error
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, userID, categoryID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&spendingdomain.Category{}, "user_id = ? AND id = ?", userID, categoryID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountCategoriesByName(ctx context.Context, userID, name, excludeID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&spendingdomain.Category{}).
		Where("(user_id = ? OR user_id IS NULL) AND lower(name) = lower(?)", userID, name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountEntriesByCategoryID(ctx context.Context, userID, categoryID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&spendingdomain.Entry{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
