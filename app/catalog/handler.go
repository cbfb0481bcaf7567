package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ipakyoli/menu-service/models"
)

// MenuProvider is the slice of the data layer the storefront reads.
// Implementations never fail: an unreachable backend degrades to
// cached data, which is why none of the methods return an error.
type MenuProvider interface {
	ListMenuItems(ctx context.Context) []models.MenuItem
	ListCategories(ctx context.Context) []models.Category
	CheckAccess(ctx context.Context) bool
}

type VariantResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
}

type ItemResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Price           float64           `json:"price"`
	Category        string            `json:"category"`
	Image           string            `json:"image"`
	PreparationTime int               `json:"preparationTime"`
	Rating          float64           `json:"rating"`
	Variants        []VariantResponse `json:"variants,omitempty"`
}

type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type MenuResponse struct {
	Total int            `json:"total"`
	Items []ItemResponse `json:"items"`
}

type CatalogHandler struct {
	provider MenuProvider
}

func NewCatalogHandler(p MenuProvider) *CatalogHandler {
	return &CatalogHandler{provider: p}
}

// HandleGetMenu lists the available items, optionally filtered by
// category name (case-insensitive) and a search term matched against
// name and description.
func (h *CatalogHandler) HandleGetMenu(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := strings.ToLower(r.URL.Query().Get("q"))

	var items []ItemResponse
	for _, item := range h.provider.ListMenuItems(r.Context()) {
		if !item.IsAvailable {
			continue
		}
		if category != "" && category != "all" && !item.InCategory(category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.Description), search) {
			continue
		}
		items = append(items, toItemResponse(item))
	}
	if items == nil {
		items = []ItemResponse{}
	}

	writeJSON(w, http.StatusOK, MenuResponse{Total: len(items), Items: items})
}

// HandleGetCategories lists the categories in creation order.
func (h *CatalogHandler) HandleGetCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.provider.ListCategories(r.Context())

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			ID:    c.ID,
			Name:  c.Name,
			Color: c.Color,
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// HandleGetStatus reports whether the live backend is reachable, for
// the "live" vs "local" banner.
func (h *CatalogHandler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	mode := "local"
	if h.provider.CheckAccess(r.Context()) {
		mode = "live"
	}
	writeJSON(w, http.StatusOK, map[string]string{"mode": mode})
}

func toItemResponse(item models.MenuItem) ItemResponse {
	resp := ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Description:     item.Description,
		Price:           item.Price.InexactFloat64(),
		Category:        item.Category,
		Image:           item.Image,
		PreparationTime: item.PreparationTime,
		Rating:          item.Rating,
	}
	for _, v := range item.Variants {
		resp.Variants = append(resp.Variants, VariantResponse{
			ID:          v.ID,
			Name:        v.Name,
			Price:       v.Price.InexactFloat64(),
			Image:       v.Image,
			IsAvailable: v.IsAvailable,
		})
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
