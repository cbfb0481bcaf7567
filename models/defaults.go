package models

import "github.com/shopspring/decimal"

// DefaultCategories is the built-in category set a fresh install is
// seeded with when neither backend has any data. Callers get a fresh
// slice so seeded copies can be mutated safely.
func DefaultCategories() []Category {
	return []Category{
		{ID: "osh", Name: "Osh", Color: "bg-orange-100 text-orange-800"},
		{ID: "lagmon", Name: "Lagmon", Color: "bg-yellow-100 text-yellow-800"},
		{ID: "shashlik", Name: "Shashlik", Color: "bg-red-100 text-red-800"},
		{ID: "somsa", Name: "Somsa", Color: "bg-green-100 text-green-800"},
	}
}

// DefaultMenuItems is the built-in menu served alongside
// DefaultCategories.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{
			ID:              "default-osh",
			Name:            "Choyxona osh",
			Description:     "Classic plov with lamb, carrots and chickpeas",
			Price:           decimal.NewFromInt(35000),
			Category:        "osh",
			Image:           DefaultImage,
			IsAvailable:     true,
			PreparationTime: 25,
		},
		{
			ID:              "default-lagmon",
			Name:            "Uyghur lagmon",
			Description:     "Hand-pulled noodles with beef and peppers",
			Price:           decimal.NewFromInt(30000),
			Category:        "lagmon",
			Image:           DefaultImage,
			IsAvailable:     true,
			PreparationTime: 20,
		},
		{
			ID:              "default-shashlik",
			Name:            "Lamb shashlik",
			Description:     "Charcoal-grilled skewer, one portion",
			Price:           decimal.NewFromInt(18000),
			Category:        "shashlik",
			Image:           DefaultImage,
			IsAvailable:     true,
			PreparationTime: 15,
			Variants: []MenuItemVariant{
				{ID: "default-shashlik-double", Name: "Double portion", Price: decimal.NewFromInt(34000), IsAvailable: true},
			},
		},
		{
			ID:              "default-somsa",
			Name:            "Tandir somsa",
			Description:     "Oven-baked pastry with lamb and onion",
			Price:           decimal.NewFromInt(8000),
			Category:        "somsa",
			Image:           DefaultImage,
			IsAvailable:     true,
			PreparationTime: 10,
		},
	}
}
