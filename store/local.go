package store

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ipakyoli/menu-service/models"
)

// Fixed keys the fallback collections are stored under.
const (
	menuItemsKey  = "restaurant_menu_items"
	categoriesKey = "restaurant_categories"
	cartKey       = "restaurant_cart"
)

// KV is the process-local persistent key-value area backing the
// fallback data. Get reports absence with false; Set overwrites.
type KV interface {
	Get(key string) (value string, ok bool)
	Set(key, value string) error
}

// LocalStore keeps the fallback copies of the menu collections and
// the cart as JSON blobs under fixed keys. A single mutex serializes
// all access, so concurrent writers degrade to last-write-wins
// without tearing. Serialization failures are logged and swallowed: a
// broken blob reads as absent, a failed save costs durability but
// never correctness.
type LocalStore struct {
	mu  sync.Mutex
	kv  KV
	log *slog.Logger
}

func NewLocalStore(kv KV, log *slog.Logger) *LocalStore {
	return &LocalStore{kv: kv, log: log}
}

func (s *LocalStore) SaveMenuItems(items []models.MenuItem) {
	s.save(menuItemsKey, items)
}

func (s *LocalStore) LoadMenuItems() ([]models.MenuItem, bool) {
	var items []models.MenuItem
	ok := s.load(menuItemsKey, &items)
	return items, ok
}

func (s *LocalStore) SaveCategories(categories []models.Category) {
	s.save(categoriesKey, categories)
}

func (s *LocalStore) LoadCategories() ([]models.Category, bool) {
	var categories []models.Category
	ok := s.load(categoriesKey, &categories)
	return categories, ok
}

func (s *LocalStore) SaveCart(items []models.CartItem) {
	s.save(cartKey, items)
}

func (s *LocalStore) LoadCart() ([]models.CartItem, bool) {
	var items []models.CartItem
	ok := s.load(cartKey, &items)
	return items, ok
}

func (s *LocalStore) save(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error("marshal local collection", "key", key, "error", err)
		return
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		s.log.Error("write local collection", "key", key, "error", err)
	}
}

func (s *LocalStore) load(key string, v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.kv.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.log.Warn("corrupt local collection, treating as absent", "key", key, "error", err)
		return false
	}
	return true
}
