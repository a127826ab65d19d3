package policy

import (
	"context"

	"gorm.io/gorm"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

// Provider yields the policy snapshot in effect at decision time.
type Provider interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// Store is a read-through policy store over the session_policies table.
type Store struct {
	db *gorm.DB
}

var _ Provider = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Snapshot loads every known policy key and resolves it into a typed
// Snapshot. Unknown rows are ignored; missing rows fall back to Defaults.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	var rows []models.SessionPolicy
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return ParseSnapshot(nil), err
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}

	return ParseSnapshot(values), nil
}

// Get returns one raw value with default fallback.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var row models.SessionPolicy
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return Defaults[key], nil
		}
		return Defaults[key], err
	}
	return row.Value, nil
}

// Set upserts one policy value. Admin-only at the API edge.
func (s *Store) Set(ctx context.Context, key, value string) error {
	var row models.SessionPolicy
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return s.db.WithContext(ctx).Create(&models.SessionPolicy{
			Key:   key,
			Value: value,
		}).Error
	}
	if err != nil {
		return err
	}

	row.Value = value
	return s.db.WithContext(ctx).Save(&row).Error
}

// List returns the effective value for every known key, stored or default.
func (s *Store) List(ctx context.Context) (map[string]string, error) {
	var rows []models.SessionPolicy
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	effective := make(map[string]string, len(Defaults))
	for key, def := range Defaults {
		effective[key] = def
	}
	for _, row := range rows {
		effective[row.Key] = row.Value
	}

	return effective, nil
}
