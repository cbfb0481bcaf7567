package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipakyoli/menu-service/models"
)

type mockMenu struct {
	items []models.MenuItem
}

func (m *mockMenu) ListMenuItems(context.Context) []models.MenuItem { return m.items }

type noopSaver struct{}

func (noopSaver) SaveCart([]models.CartItem)          {}
func (noopSaver) LoadCart() ([]models.CartItem, bool) { return nil, false }

func testItems() []models.MenuItem {
	return []models.MenuItem{
		{
			ID:          "i1",
			Name:        "Lamb shashlik",
			Price:       decimal.NewFromInt(18000),
			Image:       "/items/shashlik.jpg",
			IsAvailable: true,
			Variants: []models.MenuItemVariant{
				{ID: "v1", Name: "Double", Price: decimal.NewFromInt(34000), IsAvailable: true},
			},
		},
		{
			ID:          "i2",
			Name:        "Seasonal plov",
			Price:       decimal.NewFromInt(40000),
			IsAvailable: false,
		},
	}
}

func newTestHandler() *CartHandler {
	cart := models.NewCart(models.DefaultFeePolicy(), noopSaver{}, slog.New(slog.DiscardHandler))
	return NewCartHandler(cart, &mockMenu{items: testItems()})
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) (*httptest.ResponseRecorder, CartResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	var resp CartResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	}
	return rec, resp
}

func TestHandleGetEmptyCart(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	handler.HandleGet(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Lines)
	assert.Zero(t, resp.TotalItems)
	assert.Zero(t, resp.FinalTotal)
}

func TestHandleAddItem(t *testing.T) {
	handler := newTestHandler()

	rec, resp := postJSON(t, handler.HandleAddItem, "/cart/items", `{"itemId":"i1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "i1", resp.Lines[0].ItemID)
	assert.Equal(t, "Lamb shashlik", resp.Lines[0].Name)
	assert.Equal(t, float64(18000), resp.Lines[0].Price)
	assert.Equal(t, 1, resp.TotalItems)
	assert.Equal(t, float64(18000), resp.Subtotal)
	// 2% service fee plus delivery below the free threshold.
	assert.Equal(t, float64(360), resp.ServiceFee)
	assert.Equal(t, float64(5000), resp.DeliveryFee)
	assert.Equal(t, float64(23360), resp.FinalTotal)
}

func TestHandleAddItemVariant(t *testing.T) {
	handler := newTestHandler()

	_, resp := postJSON(t, handler.HandleAddItem, "/cart/items", `{"itemId":"i1","variantId":"v1"}`)

	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "v1", resp.Lines[0].VariantID)
	assert.Equal(t, "Double", resp.Lines[0].VariantName)
	assert.Equal(t, float64(34000), resp.Lines[0].Price)
}

func TestHandleAddItemKeepsVariantLinesSeparate(t *testing.T) {
	handler := newTestHandler()

	postJSON(t, handler.HandleAddItem, "/cart/items", `{"itemId":"i1"}`)
	_, resp := postJSON(t, handler.HandleAddItem, "/cart/items", `{"itemId":"i1","variantId":"v1"}`)

	require.Len(t, resp.Lines, 2)
	assert.Equal(t, 2, resp.TotalItems)
}

func TestHandleAddItemErrors(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "unknown item", body: `{"itemId":"missing"}`, wantStatus: http.StatusNotFound},
		{name: "unavailable item", body: `{"itemId":"i2"}`, wantStatus: http.StatusConflict},
		{name: "unknown variant", body: `{"itemId":"i1","variantId":"missing"}`, wantStatus: http.StatusNotFound},
		{name: "missing item id", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "invalid body", body: `{not json`, wantStatus: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestHandler()
			rec, _ := postJSON(t, handler.HandleAddItem, "/cart/items", tc.body)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestHandleRemoveItemWorksWithoutMenuLookup(t *testing.T) {
	handler := newTestHandler()
	postJSON(t, handler.HandleAddItem, "/cart/items", `{"itemId":"i1"}`)
	postJSON(t, handler.HandleAddItem, "/cart/items", `{"itemId":"i1"}`)

	// Shrink the menu so the removal has to work off the line identity.
	handler.menu = &mockMenu{}

	_, resp := postJSON(t, handler.HandleRemoveItem, "/cart/items", `{"itemId":"i1"}`)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 1, resp.Lines[0].Quantity)

	_, resp = postJSON(t, handler.HandleRemoveItem, "/cart/items", `{"itemId":"i1"}`)
	assert.Empty(t, resp.Lines)
}

func TestHandleRemoveLine(t *testing.T) {
	handler := newTestHandler()
	postJSON(t, handler.HandleAddItem, "/cart/items", `{"itemId":"i1","variantId":"v1"}`)
	postJSON(t, handler.HandleAddItem, "/cart/items", `{"itemId":"i1","variantId":"v1"}`)
	postJSON(t, handler.HandleAddItem, "/cart/items", `{"itemId":"i1"}`)

	_, resp := postJSON(t, handler.HandleRemoveLine, "/cart/lines", `{"itemId":"i1","variantId":"v1"}`)

	require.Len(t, resp.Lines, 1)
	assert.Empty(t, resp.Lines[0].VariantID)
}

func TestHandleClear(t *testing.T) {
	handler := newTestHandler()
	postJSON(t, handler.HandleAddItem, "/cart/items", `{"itemId":"i1"}`)

	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	rec := httptest.NewRecorder()
	handler.HandleClear(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Lines)
	assert.Zero(t, resp.FinalTotal)
}
