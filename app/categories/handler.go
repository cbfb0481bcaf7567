package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ipakyoli/menu-service/models"
)

// CategoryProvider is the data-layer slice the admin category screen
// uses. Writes never fail at this boundary: a remote failure falls
// back to the local store inside the provider.
type CategoryProvider interface {
	ListCategories(ctx context.Context) []models.Category
	CreateCategory(ctx context.Context, category models.Category) string
	DeleteCategory(ctx context.Context, id string)
}

type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type CategoryHandler struct {
	provider CategoryProvider
}

func NewCategoryHandler(p CategoryProvider) *CategoryHandler {
	return &CategoryHandler{provider: p}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories := h.provider.ListCategories(r.Context())

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			ID:    c.ID,
			Name:  c.Name,
			Color: c.Color,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		http.Error(w, "Missing category name", http.StatusBadRequest)
		return
	}
	color := input.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}

	id := h.provider.CreateCategory(r.Context(), models.Category{
		Name:  name,
		Color: color,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id})
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Missing category id", http.StatusBadRequest)
		return
	}

	h.provider.DeleteCategory(r.Context(), id)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Category deleted"})
}
