package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// entry is one persisted cache row.
type entry struct {
	CacheKey  string `gorm:"primaryKey;column:cache_key;size:255"`
	Value     []byte
	ExpiresAt *time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (entry) TableName() string {
	return "efaktura_cache_entries"
}

// SQLiteStore persists entries in a SQLite database so reference data
// survives process restarts.
type SQLiteStore struct {
	db  *gorm.DB
	now func() time.Time
}

// OpenSQLite opens (or creates) the database file at path.
func OpenSQLite(path string, opts ...Option) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open cache database %s: %w", path, err)
	}
	return NewSQLiteStore(db, opts...)
}

// NewSQLiteStore uses an existing connection and migrates the cache table.
func NewSQLiteStore(db *gorm.DB, opts ...Option) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate cache table: %w", err)
	}
	return &SQLiteStore{db: db, now: applyOptions(opts).now}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e entry
	err := s.db.WithContext(ctx).Where("cache_key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache key %s: %w", key, err)
	}

	if e.ExpiresAt != nil && !s.now().Before(*e.ExpiresAt) {
		if err := s.db.WithContext(ctx).Where("cache_key = ?", key).Delete(&entry{}).Error; err != nil {
			return nil, false, fmt.Errorf("expire cache key %s: %w", key, err)
		}
		return nil, false, nil
	}
	return e.Value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{
		CacheKey:  key,
		Value:     value,
		UpdatedAt: s.now(),
	}
	if ttl > 0 {
		expires := s.now().Add(ttl)
		e.ExpiresAt = &expires
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("write cache key %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("cache_key IN ?", keys).Delete(&entry{}).Error; err != nil {
		return fmt.Errorf("delete cache keys: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
