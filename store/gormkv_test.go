package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestKV(t *testing.T) *GormKV {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	kv, err := NewGormKV(db)
	require.NoError(t, err)
	return kv
}

func TestGormKVGetMissingKey(t *testing.T) {
	kv := newTestKV(t)

	_, ok := kv.Get("missing")
	assert.False(t, ok)
}

func TestGormKVSetAndGet(t *testing.T) {
	kv := newTestKV(t)

	require.NoError(t, kv.Set("restaurant_cart", `[{"itemId":"i1"}]`))

	value, ok := kv.Get("restaurant_cart")
	require.True(t, ok)
	assert.Equal(t, `[{"itemId":"i1"}]`, value)
}

func TestGormKVSetOverwrites(t *testing.T) {
	kv := newTestKV(t)

	require.NoError(t, kv.Set("k", "first"))
	require.NoError(t, kv.Set("k", "second"))

	value, ok := kv.Get("k")
	require.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestGormKVKeysAreIndependent(t *testing.T) {
	kv := newTestKV(t)

	require.NoError(t, kv.Set("restaurant_menu_items", "[]"))
	require.NoError(t, kv.Set("restaurant_categories", `[{"id":"osh"}]`))

	menu, ok := kv.Get("restaurant_menu_items")
	require.True(t, ok)
	assert.Equal(t, "[]", menu)

	categories, ok := kv.Get("restaurant_categories")
	require.True(t, ok)
	assert.Equal(t, `[{"id":"osh"}]`, categories)
}
