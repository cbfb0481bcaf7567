package models

import "github.com/shopspring/decimal"

// LineKey identifies a cart line: either an item ordered as-is or one
// of its variants. Keys are comparable, so two lines belong together
// exactly when their keys are equal.
type LineKey struct {
	ItemID    string
	VariantID string // empty on an original (no-variant) line
}

// OriginalLine keys an item ordered without a variant.
func OriginalLine(itemID string) LineKey {
	return LineKey{ItemID: itemID}
}

// VariantLine keys an item ordered as a specific variant.
func VariantLine(itemID, variantID string) LineKey {
	return LineKey{ItemID: itemID, VariantID: variantID}
}

// CartItem is one distinct orderable entry in a cart. Name, Image and
// Price are snapshotted at add-time and do not track later menu edits.
type CartItem struct {
	ItemID          string           `json:"itemId"`
	Name            string           `json:"name"`
	Image           string           `json:"image"`
	Price           decimal.Decimal  `json:"price"`
	Quantity        int              `json:"quantity"`
	SelectedVariant *MenuItemVariant `json:"selectedVariant,omitempty"`
	IsOriginal      bool             `json:"isOriginal"`
}

// Key returns the line's merge identity.
func (c *CartItem) Key() LineKey {
	if c.SelectedVariant != nil {
		return VariantLine(c.ItemID, c.SelectedVariant.ID)
	}
	return OriginalLine(c.ItemID)
}

// LineTotal is the snapshotted price multiplied by the quantity.
func (c *CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
