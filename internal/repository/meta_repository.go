package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"event-notifier/internal/model"
)

// MetaKeySeedVersion stores the fingerprint of the seed catalog the store
// was last reconciled against.
const MetaKeySeedVersion = "seed_version"

// MetaRepository reads and writes small key/value markers about the store
// itself, such as the seed version.
type MetaRepository struct {
	db *gorm.DB
}

func NewMetaRepository(db *gorm.DB) *MetaRepository {
	return &MetaRepository{db: db}
}

// Get returns the value for key, or the empty string when the key was never
// written.
func (r *MetaRepository) Get(ctx context.Context, key string) (string, error) {
	var meta model.Meta
	err := r.db.WithContext(ctx).First(&meta, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get meta %q: %w", key, err)
	}
	return meta.Value, nil
}

// Set writes key to value, replacing any previous value.
func (r *MetaRepository) Set(ctx context.Context, key, value string) error {
	meta := model.Meta{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&meta).Error
	if err != nil {
		return fmt.Errorf("set meta %q: %w", key, err)
	}
	return nil
}
