package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValidationError reports the first form rule an input violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MenuItemForm carries raw admin input for creating or editing a menu
// item. Numeric fields arrive as strings exactly as submitted.
type MenuItemForm struct {
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Price           string        `json:"price"`
	Category        string        `json:"category"`
	Image           string        `json:"image"`
	PreparationTime string        `json:"preparationTime"`
	Variants        []VariantForm `json:"variants,omitempty"`
}

// VariantForm is the raw input for one variant row.
type VariantForm struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
}

// Validate checks the rules in submission order and stops at the
// first failure, so the caller reports exactly one error at a time.
func (f *MenuItemForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil || !price.IsPositive() {
		return &ValidationError{Field: "price", Message: "price must be a positive number"}
	}
	if strings.TrimSpace(f.Category) == "" {
		return &ValidationError{Field: "category", Message: "category is required"}
	}
	if !ValidImageURL(f.Image) {
		return &ValidationError{Field: "image", Message: "image must be an http(s) URL or a local path"}
	}
	for _, v := range f.Variants {
		if strings.TrimSpace(v.Name) == "" {
			return &ValidationError{Field: "variants", Message: "variant name is required"}
		}
		vp, err := decimal.NewFromString(strings.TrimSpace(v.Price))
		if err != nil || !vp.IsPositive() {
			return &ValidationError{Field: "variants", Message: "variant price must be a positive number"}
		}
	}
	return nil
}

// ValidImageURL accepts an empty value, an absolute http(s) URL, or
// the local-path conventions the UI uses for bundled assets.
func ValidImageURL(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return true
	}
	if u, err := url.Parse(s); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return true
	}
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "./") || strings.Contains(s, "placeholder.svg")
}

// Item materializes the validated form into a MenuItem, substituting
// the documented defaults for blank optional fields. Validate must
// have passed; a malformed price comes out as zero here.
func (f *MenuItemForm) Item(now time.Time) MenuItem {
	price, _ := decimal.NewFromString(strings.TrimSpace(f.Price))

	description := strings.TrimSpace(f.Description)
	if description == "" {
		description = DefaultDescription
	}
	image := strings.TrimSpace(f.Image)
	if image == "" {
		image = DefaultImage
	}
	preparation := DefaultPreparationTime
	if n, err := strconv.Atoi(strings.TrimSpace(f.PreparationTime)); err == nil && n > 0 {
		preparation = n
	}

	var variants []MenuItemVariant
	for i, v := range f.Variants {
		vp, _ := decimal.NewFromString(strings.TrimSpace(v.Price))
		id := strings.TrimSpace(v.ID)
		if id == "" {
			id = strconv.FormatInt(now.Add(time.Duration(i)*time.Millisecond).UnixMilli(), 10)
		}
		variants = append(variants, MenuItemVariant{
			ID:          id,
			Name:        strings.TrimSpace(v.Name),
			Price:       vp,
			Image:       strings.TrimSpace(v.Image),
			IsAvailable: true,
		})
	}

	return MenuItem{
		Name:            strings.TrimSpace(f.Name),
		Description:     description,
		Price:           price,
		Category:        strings.ToLower(strings.TrimSpace(f.Category)),
		Image:           image,
		IsAvailable:     true,
		PreparationTime: preparation,
		Rating:          0,
		Variants:        variants,
	}
}
