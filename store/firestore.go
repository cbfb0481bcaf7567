package store

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"github.com/ipakyoli/menu-service/models"
)

// Remote collection names.
const (
	menuItemsCollection  = "menuItems"
	categoriesCollection = "categories"
)

// FirestoreStore implements RemoteStore against Cloud Firestore.
// Documents carry server-assigned timestamps and float64 prices;
// decimals are converted at this boundary.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Document shapes. The serverTimestamp option makes Firestore assign
// the zero-valued timestamps on write.

type variantDoc struct {
	ID          string  `firestore:"id"`
	Name        string  `firestore:"name"`
	Price       float64 `firestore:"price"`
	Image       string  `firestore:"image,omitempty"`
	IsAvailable bool    `firestore:"isAvailable"`
}

type menuItemDoc struct {
	Name            string       `firestore:"name"`
	Description     string       `firestore:"description"`
	Price           float64      `firestore:"price"`
	Category        string       `firestore:"category"`
	Image           string       `firestore:"image"`
	IsAvailable     bool         `firestore:"isAvailable"`
	PreparationTime int          `firestore:"preparationTime"`
	Rating          float64      `firestore:"rating"`
	Variants        []variantDoc `firestore:"variants,omitempty"`
	CreatedAt       time.Time    `firestore:"createdAt,serverTimestamp"`
	UpdatedAt       time.Time    `firestore:"updatedAt,serverTimestamp"`
}

type categoryDoc struct {
	Name      string    `firestore:"name"`
	Color     string    `firestore:"color"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}

// Ping performs a minimal read against a throwaway collection; any
// failure means the project is unreachable.
func (s *FirestoreStore) Ping(ctx context.Context) error {
	iter := s.client.Collection("test").Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func (s *FirestoreStore) CreateMenuItem(ctx context.Context, item models.MenuItem) (string, error) {
	ref, _, err := s.client.Collection(menuItemsCollection).Add(ctx, itemToDoc(item))
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (s *FirestoreStore) UpdateMenuItem(ctx context.Context, id string, patch models.MenuItemPatch) error {
	updates := []firestore.Update{{Path: "updatedAt", Value: firestore.ServerTimestamp}}
	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *patch.Name})
	}
	if patch.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *patch.Description})
	}
	if patch.Price != nil {
		updates = append(updates, firestore.Update{Path: "price", Value: patch.Price.InexactFloat64()})
	}
	if patch.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: *patch.Category})
	}
	if patch.Image != nil {
		updates = append(updates, firestore.Update{Path: "image", Value: *patch.Image})
	}
	if patch.IsAvailable != nil {
		updates = append(updates, firestore.Update{Path: "isAvailable", Value: *patch.IsAvailable})
	}
	if patch.PreparationTime != nil {
		updates = append(updates, firestore.Update{Path: "preparationTime", Value: *patch.PreparationTime})
	}
	if patch.Rating != nil {
		updates = append(updates, firestore.Update{Path: "rating", Value: *patch.Rating})
	}
	if patch.Variants != nil {
		updates = append(updates, firestore.Update{Path: "variants", Value: variantsToDocs(*patch.Variants)})
	}
	_, err := s.client.Collection(menuItemsCollection).Doc(id).Update(ctx, updates)
	return err
}

func (s *FirestoreStore) DeleteMenuItem(ctx context.Context, id string) error {
	_, err := s.client.Collection(menuItemsCollection).Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return readMenuItems(s.menuItemsQuery().Documents(ctx))
}

func (s *FirestoreStore) WatchMenuItems(ctx context.Context, onNext func([]models.MenuItem), onErr func(error)) (Unsubscribe, error) {
	return watch(ctx, s.menuItemsQuery(), readMenuItems, onNext, onErr)
}

func (s *FirestoreStore) CreateCategory(ctx context.Context, category models.Category) (string, error) {
	ref, _, err := s.client.Collection(categoriesCollection).Add(ctx, categoryDoc{
		Name:  category.Name,
		Color: category.Color,
	})
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (s *FirestoreStore) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) error {
	var updates []firestore.Update
	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *patch.Name})
	}
	if patch.Color != nil {
		updates = append(updates, firestore.Update{Path: "color", Value: *patch.Color})
	}
	if len(updates) == 0 {
		return nil
	}
	_, err := s.client.Collection(categoriesCollection).Doc(id).Update(ctx, updates)
	return err
}

func (s *FirestoreStore) DeleteCategory(ctx context.Context, id string) error {
	_, err := s.client.Collection(categoriesCollection).Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	return readCategories(s.categoriesQuery().Documents(ctx))
}

func (s *FirestoreStore) WatchCategories(ctx context.Context, onNext func([]models.Category), onErr func(error)) (Unsubscribe, error) {
	return watch(ctx, s.categoriesQuery(), readCategories, onNext, onErr)
}

// Menu items display newest first, categories in creation order.

func (s *FirestoreStore) menuItemsQuery() firestore.Query {
	return s.client.Collection(menuItemsCollection).OrderBy("createdAt", firestore.Desc)
}

func (s *FirestoreStore) categoriesQuery() firestore.Query {
	return s.client.Collection(categoriesCollection).OrderBy("createdAt", firestore.Asc)
}

// watch pumps query snapshots into onNext until the context is
// cancelled via the returned handle. A broken feed is reported to
// onErr once and the pump exits.
func watch[T any](ctx context.Context, q firestore.Query, read func(*firestore.DocumentIterator) ([]T, error), onNext func([]T), onErr func(error)) (Unsubscribe, error) {
	ctx, cancel := context.WithCancel(ctx)
	snaps := q.Snapshots(ctx)
	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if ctx.Err() == nil {
					onErr(err)
				}
				return
			}
			records, err := read(snap.Documents)
			if err != nil {
				if ctx.Err() == nil {
					onErr(err)
				}
				return
			}
			onNext(records)
		}
	}()
	return Unsubscribe(cancel), nil
}

func readMenuItems(iter *firestore.DocumentIterator) ([]models.MenuItem, error) {
	defer iter.Stop()
	items := []models.MenuItem{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var d menuItemDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, err
		}
		items = append(items, docToItem(doc.Ref.ID, d))
	}
	return items, nil
}

func readCategories(iter *firestore.DocumentIterator) ([]models.Category, error) {
	defer iter.Stop()
	categories := []models.Category{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var d categoryDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, err
		}
		categories = append(categories, models.Category{
			ID:        doc.Ref.ID,
			Name:      d.Name,
			Color:     d.Color,
			CreatedAt: d.CreatedAt,
		})
	}
	return categories, nil
}

// itemToDoc leaves both timestamps zero so the server assigns them.
func itemToDoc(m models.MenuItem) menuItemDoc {
	return menuItemDoc{
		Name:            m.Name,
		Description:     m.Description,
		Price:           m.Price.InexactFloat64(),
		Category:        m.Category,
		Image:           m.Image,
		IsAvailable:     m.IsAvailable,
		PreparationTime: m.PreparationTime,
		Rating:          m.Rating,
		Variants:        variantsToDocs(m.Variants),
	}
}

func docToItem(id string, d menuItemDoc) models.MenuItem {
	item := models.MenuItem{
		ID:              id,
		Name:            d.Name,
		Description:     d.Description,
		Price:           decimal.NewFromFloat(d.Price),
		Category:        d.Category,
		Image:           d.Image,
		IsAvailable:     d.IsAvailable,
		PreparationTime: d.PreparationTime,
		Rating:          d.Rating,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	for _, v := range d.Variants {
		item.Variants = append(item.Variants, models.MenuItemVariant{
			ID:          v.ID,
			Name:        v.Name,
			Price:       decimal.NewFromFloat(v.Price),
			Image:       v.Image,
			IsAvailable: v.IsAvailable,
		})
	}
	return item
}

func variantsToDocs(variants []models.MenuItemVariant) []variantDoc {
	var docs []variantDoc
	for _, v := range variants {
		docs = append(docs, variantDoc{
			ID:          v.ID,
			Name:        v.Name,
			Price:       v.Price.InexactFloat64(),
			Image:       v.Image,
			IsAvailable: v.IsAvailable,
		})
	}
	return docs
}
