package menu

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ipakyoli/menu-service/models"
)

// StoreProvider is the data-layer slice the admin menu screen uses.
// Writes never fail at this boundary: a remote failure falls back to
// the local store inside the provider.
type StoreProvider interface {
	ListMenuItems(ctx context.Context) []models.MenuItem
	CreateMenuItem(ctx context.Context, item models.MenuItem) string
	UpdateMenuItem(ctx context.Context, id string, patch models.MenuItemPatch)
	ToggleAvailability(ctx context.Context, id string, available bool)
	DeleteMenuItem(ctx context.Context, id string)
	SyncLocalToRemote(ctx context.Context) bool
}

type ItemResponse struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	Description     string                   `json:"description"`
	Price           float64                  `json:"price"`
	Category        string                   `json:"category"`
	Image           string                   `json:"image"`
	IsAvailable     bool                     `json:"isAvailable"`
	PreparationTime int                      `json:"preparationTime"`
	Rating          float64                  `json:"rating"`
	Variants        []models.MenuItemVariant `json:"variants,omitempty"`
}

type MenuHandler struct {
	store StoreProvider
}

func NewMenuHandler(s StoreProvider) *MenuHandler {
	return &MenuHandler{store: s}
}

// HandleList lists every item, available or not, with an optional
// available=true|false filter for the dashboard toggle.
func (h *MenuHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("available")

	var response []ItemResponse
	for _, item := range h.store.ListMenuItems(r.Context()) {
		if filter == "true" && !item.IsAvailable {
			continue
		}
		if filter == "false" && item.IsAvailable {
			continue
		}
		response = append(response, toItemResponse(item))
	}
	if response == nil {
		response = []ItemResponse{}
	}

	writeJSON(w, http.StatusOK, response)
}

// HandleCreate validates the submitted form and creates the item.
// The first failing rule is reported alone, as an inline message.
func (h *MenuHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var form models.MenuItemForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := form.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	id := h.store.CreateMenuItem(r.Context(), form.Item(time.Now()))
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// HandleUpdate validates the edited form and patches every field of
// the item at {id}. Rating is not editable from the form.
func (h *MenuHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Missing item id", http.StatusBadRequest)
		return
	}

	var form models.MenuItemForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := form.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	item := form.Item(time.Now())
	h.store.UpdateMenuItem(r.Context(), id, models.MenuItemPatch{
		Name:            &item.Name,
		Description:     &item.Description,
		Price:           &item.Price,
		Category:        &item.Category,
		Image:           &item.Image,
		PreparationTime: &item.PreparationTime,
		Variants:        &item.Variants,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Menu item updated"})
}

// HandleToggleAvailability flips only the availability flag.
func (h *MenuHandler) HandleToggleAvailability(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Missing item id", http.StatusBadRequest)
		return
	}

	var input struct {
		IsAvailable bool `json:"isAvailable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	h.store.ToggleAvailability(r.Context(), id, input.IsAvailable)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Availability updated"})
}

func (h *MenuHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Missing item id", http.StatusBadRequest)
		return
	}

	h.store.DeleteMenuItem(r.Context(), id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Menu item deleted"})
}

// HandleSync replays locally stored records to the remote store.
func (h *MenuHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	synced := h.store.SyncLocalToRemote(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"synced": synced})
}

func toItemResponse(item models.MenuItem) ItemResponse {
	return ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Description:     item.Description,
		Price:           item.Price.InexactFloat64(),
		Category:        item.Category,
		Image:           item.Image,
		IsAvailable:     item.IsAvailable,
		PreparationTime: item.PreparationTime,
		Rating:          item.Rating,
		Variants:        item.Variants,
	}
}

func writeValidationError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"field": verr.Field,
			"error": verr.Message,
		})
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
