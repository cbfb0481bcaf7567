package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Defaults substituted when an admin leaves an optional field blank.
const (
	DefaultDescription     = "No description provided"
	DefaultImage           = "/placeholder.svg?height=200&width=300"
	DefaultPreparationTime = 10
)

// MenuItem represents a single orderable dish on the menu.
// Category holds the referenced Category's name; the match is
// case-insensitive and an orphaned name degrades to a plain label.
type MenuItem struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Price           decimal.Decimal   `json:"price"`
	Category        string            `json:"category"`
	Image           string            `json:"image"`
	IsAvailable     bool              `json:"isAvailable"`
	PreparationTime int               `json:"preparationTime"`
	Rating          float64           `json:"rating"`
	Variants        []MenuItemVariant `json:"variants,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// MenuItemVariant is an alternate priced presentation of an item
// (portion size, side option). It is owned by its parent item and the
// slice order is the display order.
type MenuItemVariant struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	IsAvailable bool            `json:"isAvailable"`
}

// InCategory reports whether the item belongs to the named category,
// compared case-insensitively.
func (m *MenuItem) InCategory(name string) bool {
	return strings.EqualFold(m.Category, name)
}

// Variant returns the variant with the given id, or nil.
func (m *MenuItem) Variant(id string) *MenuItemVariant {
	for i := range m.Variants {
		if m.Variants[i].ID == id {
			return &m.Variants[i]
		}
	}
	return nil
}

// MenuItemPatch describes a partial update. Nil fields are left
// untouched by the merge.
type MenuItemPatch struct {
	Name            *string            `json:"name,omitempty"`
	Description     *string            `json:"description,omitempty"`
	Price           *decimal.Decimal   `json:"price,omitempty"`
	Category        *string            `json:"category,omitempty"`
	Image           *string            `json:"image,omitempty"`
	IsAvailable     *bool              `json:"isAvailable,omitempty"`
	PreparationTime *int               `json:"preparationTime,omitempty"`
	Rating          *float64           `json:"rating,omitempty"`
	Variants        *[]MenuItemVariant `json:"variants,omitempty"`
}

// Apply merges the patch into the item. UpdatedAt is the caller's
// responsibility since the authoritative timestamp depends on which
// backend served the write.
func (p MenuItemPatch) Apply(m *MenuItem) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Image != nil {
		m.Image = *p.Image
	}
	if p.IsAvailable != nil {
		m.IsAvailable = *p.IsAvailable
	}
	if p.PreparationTime != nil {
		m.PreparationTime = *p.PreparationTime
	}
	if p.Rating != nil {
		m.Rating = *p.Rating
	}
	if p.Variants != nil {
		m.Variants = *p.Variants
	}
}
