package cart

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ipakyoli/menu-service/models"
)

// CartProvider is the cart aggregate the kiosk mutates.
type CartProvider interface {
	AddItem(item models.MenuItem, variant *models.MenuItemVariant)
	RemoveItem(item models.MenuItem, variant *models.MenuItemVariant)
	RemoveLine(line models.CartItem)
	Clear()
	Lines() []models.CartItem
	TotalItems() int
	Subtotal() decimal.Decimal
	ServiceFee() decimal.Decimal
	DeliveryFee() decimal.Decimal
	FinalTotal() decimal.Decimal
}

// MenuProvider resolves item ids against the current menu so the cart
// can snapshot price and image at add-time.
type MenuProvider interface {
	ListMenuItems(ctx context.Context) []models.MenuItem
}

type LineResponse struct {
	ItemID      string  `json:"itemId"`
	VariantID   string  `json:"variantId,omitempty"`
	Name        string  `json:"name"`
	VariantName string  `json:"variantName,omitempty"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"lineTotal"`
}

type CartResponse struct {
	Lines       []LineResponse `json:"lines"`
	TotalItems  int            `json:"totalItems"`
	Subtotal    float64        `json:"subtotal"`
	ServiceFee  float64        `json:"serviceFee"`
	DeliveryFee float64        `json:"deliveryFee"`
	FinalTotal  float64        `json:"finalTotal"`
}

type lineRequest struct {
	ItemID    string `json:"itemId"`
	VariantID string `json:"variantId"`
}

type CartHandler struct {
	cart CartProvider
	menu MenuProvider
}

func NewCartHandler(cart CartProvider, menu MenuProvider) *CartHandler {
	return &CartHandler{cart: cart, menu: menu}
}

func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// HandleAddItem adds one unit of the referenced item or variant,
// snapshotting its current menu state into the line.
func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLineRequest(w, r)
	if !ok {
		return
	}

	item := h.findItem(r.Context(), req.ItemID)
	if item == nil {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}
	if !item.IsAvailable {
		http.Error(w, "Item is not available", http.StatusConflict)
		return
	}

	var variant *models.MenuItemVariant
	if req.VariantID != "" {
		variant = item.Variant(req.VariantID)
		if variant == nil {
			http.Error(w, "Variant not found", http.StatusNotFound)
			return
		}
	}

	h.cart.AddItem(*item, variant)
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// HandleRemoveItem removes one unit of the referenced line. Only the
// identity matters here, so the item is not resolved against the menu
// and removing an item that was since deleted still works.
func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLineRequest(w, r)
	if !ok {
		return
	}

	var variant *models.MenuItemVariant
	if req.VariantID != "" {
		variant = &models.MenuItemVariant{ID: req.VariantID}
	}
	h.cart.RemoveItem(models.MenuItem{ID: req.ItemID}, variant)
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// HandleRemoveLine drops the whole line regardless of quantity.
func (h *CartHandler) HandleRemoveLine(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLineRequest(w, r)
	if !ok {
		return
	}

	line := models.CartItem{ItemID: req.ItemID, IsOriginal: req.VariantID == ""}
	if req.VariantID != "" {
		line.SelectedVariant = &models.MenuItemVariant{ID: req.VariantID}
	}
	h.cart.RemoveLine(line)
	writeJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	writeJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) findItem(ctx context.Context, id string) *models.MenuItem {
	for _, item := range h.menu.ListMenuItems(ctx) {
		if item.ID == id {
			return &item
		}
	}
	return nil
}

func (h *CartHandler) cartResponse() CartResponse {
	lines := h.cart.Lines()
	response := CartResponse{
		Lines:       make([]LineResponse, len(lines)),
		TotalItems:  h.cart.TotalItems(),
		Subtotal:    h.cart.Subtotal().InexactFloat64(),
		ServiceFee:  h.cart.ServiceFee().InexactFloat64(),
		DeliveryFee: h.cart.DeliveryFee().InexactFloat64(),
		FinalTotal:  h.cart.FinalTotal().InexactFloat64(),
	}
	for i, line := range lines {
		lr := LineResponse{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Image:     line.Image,
			Price:     line.Price.InexactFloat64(),
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal().InexactFloat64(),
		}
		if line.SelectedVariant != nil {
			lr.VariantID = line.SelectedVariant.ID
			lr.VariantName = line.SelectedVariant.Name
		}
		response.Lines[i] = lr
	}
	return response
}

func decodeLineRequest(w http.ResponseWriter, r *http.Request) (lineRequest, bool) {
	var req lineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return req, false
	}
	if req.ItemID == "" {
		http.Error(w, "Missing item id", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
