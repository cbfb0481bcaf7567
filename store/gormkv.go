package store

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is the GORM model behind the persistent key-value area.
type KVEntry struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"type:text"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// GormKV implements KV over a relational table, SQLite by default so
// the fallback works with no server reachable at all.
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("migrate kv table: %w", err)
	}
	return &GormKV{db: db}, nil
}

func (g *GormKV) Get(key string) (string, bool) {
	var entry KVEntry
	if err := g.db.First(&entry, "key = ?", key).Error; err != nil {
		return "", false
	}
	return entry.Value, true
}

func (g *GormKV) Set(key, value string) error {
	entry := KVEntry{Key: key, Value: value}
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
}
