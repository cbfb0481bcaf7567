package store

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/ipakyoli/menu-service/models"
)

// Facade is the data-access contract the rest of the application
// consumes. Every operation attempts the remote store exactly once
// and falls back to the local copy on failure; callers cannot tell
// which backend served them. CheckAccess is the only place the
// distinction leaks, as a boolean display hint.
type Facade struct {
	remote RemoteStore
	local  *LocalStore
	log    *slog.Logger
	now    func() time.Time
}

func NewFacade(remote RemoteStore, local *LocalStore, log *slog.Logger) *Facade {
	return &Facade{
		remote: remote,
		local:  local,
		log:    log,
		now:    time.Now,
	}
}

// --- Menu items ---

// CreateMenuItem inserts the item and returns its assigned id. On a
// remote failure the item lands in the local fallback under a
// time-based id with client-assigned timestamps.
func (f *Facade) CreateMenuItem(ctx context.Context, item models.MenuItem) string {
	if id, err := f.remote.CreateMenuItem(ctx, item); err == nil {
		return id
	} else {
		f.log.Warn("remote create failed, storing menu item locally", "error", err)
	}

	now := f.now()
	item.ID = strconv.FormatInt(now.UnixMilli(), 10)
	item.CreatedAt = now
	item.UpdatedAt = now

	items, _ := f.local.LoadMenuItems()
	f.local.SaveMenuItems(append(items, item))
	return item.ID
}

// UpdateMenuItem merges the patch into the record at id. Fields the
// patch does not list stay untouched in either backend.
func (f *Facade) UpdateMenuItem(ctx context.Context, id string, patch models.MenuItemPatch) {
	err := f.remote.UpdateMenuItem(ctx, id, patch)
	if err == nil {
		return
	}
	f.log.Warn("remote update failed, patching local menu item", "id", id, "error", err)

	items, _ := f.local.LoadMenuItems()
	for i := range items {
		if items[i].ID == id {
			patch.Apply(&items[i])
			items[i].UpdatedAt = f.now()
		}
	}
	f.local.SaveMenuItems(items)
}

// ToggleAvailability sets only the availability flag.
func (f *Facade) ToggleAvailability(ctx context.Context, id string, available bool) {
	f.UpdateMenuItem(ctx, id, models.MenuItemPatch{IsAvailable: &available})
}

// DeleteMenuItem removes the record at id. Deleting an unknown id is
// a no-op in both backends.
func (f *Facade) DeleteMenuItem(ctx context.Context, id string) {
	err := f.remote.DeleteMenuItem(ctx, id)
	if err == nil {
		return
	}
	f.log.Warn("remote delete failed, removing local menu item", "id", id, "error", err)

	items, _ := f.local.LoadMenuItems()
	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	f.local.SaveMenuItems(kept)
}

// ListMenuItems returns the menu newest-first. A successful remote
// read refreshes the local cache; an unreachable remote serves the
// local snapshot, seeded with the built-in defaults when empty.
func (f *Facade) ListMenuItems(ctx context.Context) []models.MenuItem {
	items, err := f.remote.ListMenuItems(ctx)
	if err == nil {
		f.cacheMenuItems(items)
		return items
	}
	f.log.Warn("remote list failed, serving local menu items", "error", err)
	return f.localMenuItems()
}

// SubscribeMenuItems registers callback for live menu snapshots. If
// the feed cannot be established, or breaks later, callback fires
// exactly once with the seeded local snapshot instead. The returned
// handle is idempotent; after a setup failure it is a no-op.
func (f *Facade) SubscribeMenuItems(ctx context.Context, callback func([]models.MenuItem)) Unsubscribe {
	var fallbackOnce sync.Once
	fallback := func(err error) {
		fallbackOnce.Do(func() {
			f.log.Warn("menu feed unavailable, serving local snapshot", "error", err)
			callback(f.localMenuItems())
		})
	}

	stop, err := f.remote.WatchMenuItems(ctx,
		func(items []models.MenuItem) {
			f.cacheMenuItems(items)
			callback(items)
		},
		fallback,
	)
	if err != nil {
		fallback(err)
		return func() {}
	}

	var once sync.Once
	return func() { once.Do(stop) }
}

// cacheMenuItems is the write-through step: every snapshot observed
// from the remote store refreshes the local fallback copy.
func (f *Facade) cacheMenuItems(items []models.MenuItem) {
	f.local.SaveMenuItems(items)
}

// localMenuItems returns the local snapshot, seeding the built-in
// defaults when it is empty.
func (f *Facade) localMenuItems() []models.MenuItem {
	items, _ := f.local.LoadMenuItems()
	if len(items) > 0 {
		return items
	}
	items = models.DefaultMenuItems()
	f.local.SaveMenuItems(items)
	return items
}

// --- Categories ---

// CreateCategory inserts the category and returns its assigned id.
// The local fallback derives the id from the name instead of using a
// store-assigned one.
func (f *Facade) CreateCategory(ctx context.Context, category models.Category) string {
	if id, err := f.remote.CreateCategory(ctx, category); err == nil {
		return id
	} else {
		f.log.Warn("remote create failed, storing category locally", "error", err)
	}

	category.ID = models.CategorySlug(category.Name)
	category.CreatedAt = f.now()

	categories, _ := f.local.LoadCategories()
	f.local.SaveCategories(append(categories, category))
	return category.ID
}

// UpdateCategory merges the patch into the category at id.
func (f *Facade) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) {
	err := f.remote.UpdateCategory(ctx, id, patch)
	if err == nil {
		return
	}
	f.log.Warn("remote update failed, patching local category", "id", id, "error", err)

	categories, _ := f.local.LoadCategories()
	for i := range categories {
		if categories[i].ID == id {
			patch.Apply(&categories[i])
		}
	}
	f.local.SaveCategories(categories)
}

// DeleteCategory removes the category at id. Items referencing its
// name are left alone. Deleting an unknown id is a no-op.
func (f *Facade) DeleteCategory(ctx context.Context, id string) {
	err := f.remote.DeleteCategory(ctx, id)
	if err == nil {
		return
	}
	f.log.Warn("remote delete failed, removing local category", "id", id, "error", err)

	categories, _ := f.local.LoadCategories()
	kept := categories[:0]
	for _, category := range categories {
		if category.ID != id {
			kept = append(kept, category)
		}
	}
	f.local.SaveCategories(kept)
}

// ListCategories returns the categories in creation order, with the
// same caching and fallback behavior as ListMenuItems.
func (f *Facade) ListCategories(ctx context.Context) []models.Category {
	categories, err := f.remote.ListCategories(ctx)
	if err == nil {
		f.cacheCategories(categories)
		return categories
	}
	f.log.Warn("remote list failed, serving local categories", "error", err)
	return f.localCategories()
}

// SubscribeCategories mirrors SubscribeMenuItems for the category
// collection.
func (f *Facade) SubscribeCategories(ctx context.Context, callback func([]models.Category)) Unsubscribe {
	var fallbackOnce sync.Once
	fallback := func(err error) {
		fallbackOnce.Do(func() {
			f.log.Warn("category feed unavailable, serving local snapshot", "error", err)
			callback(f.localCategories())
		})
	}

	stop, err := f.remote.WatchCategories(ctx,
		func(categories []models.Category) {
			f.cacheCategories(categories)
			callback(categories)
		},
		fallback,
	)
	if err != nil {
		fallback(err)
		return func() {}
	}

	var once sync.Once
	return func() { once.Do(stop) }
}

func (f *Facade) cacheCategories(categories []models.Category) {
	f.local.SaveCategories(categories)
}

func (f *Facade) localCategories() []models.Category {
	categories, _ := f.local.LoadCategories()
	if len(categories) > 0 {
		return categories
	}
	categories = models.DefaultCategories()
	f.local.SaveCategories(categories)
	return categories
}

// EnsureDefaultCategories seeds the built-in categories on first run
// so the storefront always has something to group by.
func (f *Facade) EnsureDefaultCategories(ctx context.Context) {
	if len(f.ListCategories(ctx)) > 0 {
		return
	}
	for _, category := range models.DefaultCategories() {
		f.CreateCategory(ctx, category)
	}
}

// --- Reachability and sync ---

// CheckAccess probes the remote store. It never fails; any error
// means "unreachable" and the UI shows the offline banner.
func (f *Facade) CheckAccess(ctx context.Context) bool {
	if err := f.remote.Ping(ctx); err != nil {
		f.log.Info("remote store unreachable", "error", err)
		return false
	}
	return true
}

// SyncLocalToRemote replays local records the remote store does not
// know about yet. Records are isolated from each other: one failed
// replay is logged and skipped while the rest still go through. The
// result is false when the remote snapshots could not be read at all
// or any individual record failed.
func (f *Facade) SyncLocalToRemote(ctx context.Context) bool {
	if err := f.remote.Ping(ctx); err != nil {
		f.log.Warn("sync skipped, remote unreachable", "error", err)
		return false
	}

	ok := true

	remoteCategories, err := f.remote.ListCategories(ctx)
	if err != nil {
		f.log.Warn("sync aborted, cannot read remote categories", "error", err)
		return false
	}
	knownCategories := make(map[string]bool, len(remoteCategories))
	for _, c := range remoteCategories {
		knownCategories[c.ID] = true
	}
	localCategories, _ := f.local.LoadCategories()
	for _, c := range localCategories {
		if knownCategories[c.ID] {
			continue
		}
		if _, err := f.remote.CreateCategory(ctx, c); err != nil {
			f.log.Warn("sync: replaying category failed", "id", c.ID, "error", err)
			ok = false
		}
	}

	remoteItems, err := f.remote.ListMenuItems(ctx)
	if err != nil {
		f.log.Warn("sync aborted, cannot read remote menu items", "error", err)
		return false
	}
	knownItems := make(map[string]bool, len(remoteItems))
	for _, item := range remoteItems {
		knownItems[item.ID] = true
	}
	localItems, _ := f.local.LoadMenuItems()
	for _, item := range localItems {
		if knownItems[item.ID] {
			continue
		}
		if _, err := f.remote.CreateMenuItem(ctx, item); err != nil {
			f.log.Warn("sync: replaying menu item failed", "id", item.ID, "error", err)
			ok = false
		}
	}

	return ok
}
