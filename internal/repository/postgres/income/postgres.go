package income

import (
	"context"
	"errors"

	"gorm.io/gorm"

	incomedomain "smartbudget-go/internal/domain/income"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListEntries(ctx context.Context, userID string) ([]incomedomain.Entry, error) {
	var entries []incomedomain.Entry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc, created_at desc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresRepository) GetEntryByID(ctx context.Context, userID, entryID string) (*incomedomain.Entry, error) {
	var entry incomedomain.Entry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, entryID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, incomedomain.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *PostgresRepository) CreateEntry(ctx context.Context, entry *incomedomain.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PostgresRepository) UpdateEntry(ctx context.Context, entry *incomedomain.Entry) error {
	result := r.db.WithContext(ctx).
		Model(&incomedomain.Entry{}).
		Where("id = ? AND user_id = ?", entry.ID, entry.UserID).
		Updates(map[string]interface{}{
			"amount":              entry.Amount,
			"description":         entry.Description,
			"source_id":           entry.SourceID,
			"date":                entry.Date,
			"is_recurring":        entry.IsRecurring,
			"recurring_frequency": entry.RecurringFrequency,
			"updated_at":          entry.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return incomedomain.ErrEntryNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteEntry(ctx context.Context, userID, entryID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&incomedomain.Entry{}, "user_id = ? AND id = ?", userID, entryID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListSources(ctx context.Context) ([]incomedomain.Source, error) {
	var sources []incomedomain.Source
	if err := r.db.WithContext(ctx).Order("name asc").Find(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}

func (r *PostgresRepository) SourceExists(ctx context.Context, sourceID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&incomedomain.Source{}).
		Where("id = ?", sourceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
