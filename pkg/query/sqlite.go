package query

import (
	"context"
	"fmt"
	"time"

	driver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ Persister = (*SQLiteStore)(nil)

type snapshotRow struct {
	Key       string `gorm:"primaryKey;type:varchar(255)"`
	Data      []byte
	UpdatedAt time.Time
}

func (snapshotRow) TableName() string {
	return "query_cache"
}

// SQLiteStore persists cache snapshots in a local SQLite database.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) the snapshot database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(driver.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshot database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Persist replaces the stored snapshot with entries.
func (s *SQLiteStore) Persist(ctx context.Context, entries []PersistedEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&snapshotRow{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		rows := make([]snapshotRow, len(entries))
		for i, e := range entries {
			rows[i] = snapshotRow{Key: e.Key, Data: e.Data, UpdatedAt: e.UpdatedAt}
		}
		return tx.Create(&rows).Error
	})
}

// Restore returns the stored snapshot.
func (s *SQLiteStore) Restore(ctx context.Context) ([]PersistedEntry, error) {
	var rows []snapshotRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]PersistedEntry, len(rows))
	for i, row := range rows {
		entries[i] = PersistedEntry{Key: row.Key, Data: row.Data, UpdatedAt: row.UpdatedAt}
	}
	return entries, nil
}
