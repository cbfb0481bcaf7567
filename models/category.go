package models

import (
	"strings"
	"time"
)

// Category groups menu items for display.
// MenuItem.Category references Name rather than ID, so deleting a
// category does not cascade to the items that mention it.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultCategoryColor is the palette entry used when an admin does
// not pick one.
const DefaultCategoryColor = "bg-gray-100 text-gray-800"

// CategoryColors is the fixed palette a category's display style is
// chosen from.
var CategoryColors = []string{
	DefaultCategoryColor,
	"bg-red-100 text-red-800",
	"bg-orange-100 text-orange-800",
	"bg-yellow-100 text-yellow-800",
	"bg-green-100 text-green-800",
	"bg-blue-100 text-blue-800",
	"bg-purple-100 text-purple-800",
	"bg-pink-100 text-pink-800",
}

// CategoryPatch describes a partial category update. Nil fields are
// left untouched by the merge.
type CategoryPatch struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Apply merges the patch into the category.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
}

// CategorySlug derives the deterministic identifier used when a
// category is created against the local fallback: lower-cased, runs
// of whitespace collapsed to single hyphens.
func CategorySlug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
