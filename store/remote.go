package store

import (
	"context"
	"errors"

	"github.com/ipakyoli/menu-service/models"
)

// ErrRemoteUnavailable marks a remote-store failure. The facade turns
// it, like any other remote error, into a local-fallback action.
var ErrRemoteUnavailable = errors.New("remote store unavailable")

// Unsubscribe tears down a live feed. Handles returned by this
// package are safe to invoke repeatedly or not at all.
type Unsubscribe func()

// RemoteStore is the managed document-collection API backing the menu
// when reachable. Lists are ordered by creation time: menu items
// descending, categories ascending. Watch delivers full collection
// snapshots in feed order to onNext until the returned handle is
// invoked, and reports feed breakdown through onErr.
type RemoteStore interface {
	// Ping is the lightweight reachability probe behind checkAccess.
	Ping(ctx context.Context) error

	CreateMenuItem(ctx context.Context, item models.MenuItem) (string, error)
	UpdateMenuItem(ctx context.Context, id string, patch models.MenuItemPatch) error
	DeleteMenuItem(ctx context.Context, id string) error
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	WatchMenuItems(ctx context.Context, onNext func([]models.MenuItem), onErr func(error)) (Unsubscribe, error)

	CreateCategory(ctx context.Context, category models.Category) (string, error)
	UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) error
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	WatchCategories(ctx context.Context, onNext func([]models.Category), onErr func(error)) (Unsubscribe, error)
}

// Unavailable is the RemoteStore used when no remote project is
// configured. Every call fails, so the facade serves local data only.
type Unavailable struct{}

func (Unavailable) Ping(context.Context) error { return ErrRemoteUnavailable }

func (Unavailable) CreateMenuItem(context.Context, models.MenuItem) (string, error) {
	return "", ErrRemoteUnavailable
}

func (Unavailable) UpdateMenuItem(context.Context, string, models.MenuItemPatch) error {
	return ErrRemoteUnavailable
}

func (Unavailable) DeleteMenuItem(context.Context, string) error {
	return ErrRemoteUnavailable
}

func (Unavailable) ListMenuItems(context.Context) ([]models.MenuItem, error) {
	return nil, ErrRemoteUnavailable
}

func (Unavailable) WatchMenuItems(context.Context, func([]models.MenuItem), func(error)) (Unsubscribe, error) {
	return nil, ErrRemoteUnavailable
}

func (Unavailable) CreateCategory(context.Context, models.Category) (string, error) {
	return "", ErrRemoteUnavailable
}

func (Unavailable) UpdateCategory(context.Context, string, models.CategoryPatch) error {
	return ErrRemoteUnavailable
}

func (Unavailable) DeleteCategory(context.Context, string) error {
	return ErrRemoteUnavailable
}

func (Unavailable) ListCategories(context.Context) ([]models.Category, error) {
	return nil, ErrRemoteUnavailable
}

func (Unavailable) WatchCategories(context.Context, func([]models.Category), func(error)) (Unsubscribe, error) {
	return nil, ErrRemoteUnavailable
}
