package menu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipakyoli/menu-service/models"
)

type mockStore struct {
	items []models.MenuItem

	created       []models.MenuItem
	patchedID     string
	patched       models.MenuItemPatch
	toggledID     string
	toggledTo     bool
	deletedIDs    []string
	syncResult    bool
	syncRequested bool
}

func (m *mockStore) ListMenuItems(context.Context) []models.MenuItem { return m.items }

func (m *mockStore) CreateMenuItem(_ context.Context, item models.MenuItem) string {
	m.created = append(m.created, item)
	return "new-id"
}

func (m *mockStore) UpdateMenuItem(_ context.Context, id string, patch models.MenuItemPatch) {
	m.patchedID = id
	m.patched = patch
}

func (m *mockStore) ToggleAvailability(_ context.Context, id string, available bool) {
	m.toggledID = id
	m.toggledTo = available
}

func (m *mockStore) DeleteMenuItem(_ context.Context, id string) {
	m.deletedIDs = append(m.deletedIDs, id)
}

func (m *mockStore) SyncLocalToRemote(context.Context) bool {
	m.syncRequested = true
	return m.syncResult
}

func TestHandleList(t *testing.T) {
	items := []models.MenuItem{
		{ID: "i1", Name: "Osh", Price: decimal.NewFromInt(35000), IsAvailable: true},
		{ID: "i2", Name: "Lagmon", Price: decimal.NewFromInt(30000), IsAvailable: false},
	}

	cases := []struct {
		name    string
		target  string
		wantIDs []string
	}{
		{name: "all items", target: "/admin/menu", wantIDs: []string{"i1", "i2"}},
		{name: "available only", target: "/admin/menu?available=true", wantIDs: []string{"i1"}},
		{name: "unavailable only", target: "/admin/menu?available=false", wantIDs: []string{"i2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewMenuHandler(&mockStore{items: items})

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			rec := httptest.NewRecorder()
			handler.HandleList(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			var got []ItemResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			ids := make([]string, len(got))
			for i, item := range got {
				ids[i] = item.ID
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestHandleCreate(t *testing.T) {
	store := &mockStore{}
	handler := NewMenuHandler(store)

	body := `{
		"name": "Tandir somsa",
		"price": "8000",
		"category": "Somsa",
		"variants": [{"name": "Double", "price": "15000"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/admin/menu", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "new-id", got["id"])

	require.Len(t, store.created, 1)
	created := store.created[0]
	assert.Equal(t, "Tandir somsa", created.Name)
	assert.True(t, created.Price.Equal(decimal.NewFromInt(8000)))
	assert.Equal(t, "somsa", created.Category)
	assert.Equal(t, models.DefaultDescription, created.Description)
	assert.True(t, created.IsAvailable)
	require.Len(t, created.Variants, 1)
	assert.Equal(t, "Double", created.Variants[0].Name)
}

func TestHandleCreateValidation(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "missing name",
			body:      `{"price":"8000","category":"somsa"}`,
			wantField: "name",
		},
		{
			name:      "non-positive price",
			body:      `{"name":"Somsa","price":"0","category":"somsa"}`,
			wantField: "price",
		},
		{
			name:      "bad image",
			body:      `{"name":"Somsa","price":"8000","category":"somsa","image":"ftp://x"}`,
			wantField: "image",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockStore{}
			handler := NewMenuHandler(store)

			req := httptest.NewRequest(http.MethodPost, "/admin/menu", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.HandleCreate(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, store.created)

			var got map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tc.wantField, got["field"])
			assert.NotEmpty(t, got["error"])
		})
	}
}

func TestHandleCreateInvalidBody(t *testing.T) {
	handler := NewMenuHandler(&mockStore{})

	req := httptest.NewRequest(http.MethodPost, "/admin/menu", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUpdate(t *testing.T) {
	store := &mockStore{}
	handler := NewMenuHandler(store)

	body := `{"name":"Osh","description":"With quail eggs","price":"38000","category":"Osh","image":"/images/osh.jpg","preparationTime":"40"}`
	req := httptest.NewRequest(http.MethodPut, "/admin/menu/i1", strings.NewReader(body))
	req.SetPathValue("id", "i1")
	rec := httptest.NewRecorder()
	handler.HandleUpdate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "i1", store.patchedID)

	patch := store.patched
	require.NotNil(t, patch.Name)
	assert.Equal(t, "Osh", *patch.Name)
	require.NotNil(t, patch.Price)
	assert.True(t, patch.Price.Equal(decimal.NewFromInt(38000)))
	require.NotNil(t, patch.Category)
	assert.Equal(t, "osh", *patch.Category)
	require.NotNil(t, patch.PreparationTime)
	assert.Equal(t, 40, *patch.PreparationTime)
	assert.Nil(t, patch.Rating, "rating is not editable from the form")
	assert.Nil(t, patch.IsAvailable)
}

func TestHandleUpdateRejectsInvalidForm(t *testing.T) {
	store := &mockStore{}
	handler := NewMenuHandler(store)

	req := httptest.NewRequest(http.MethodPut, "/admin/menu/i1", strings.NewReader(`{"name":"","price":"8000","category":"somsa"}`))
	req.SetPathValue("id", "i1")
	rec := httptest.NewRecorder()
	handler.HandleUpdate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.patchedID)
}

func TestHandleToggleAvailability(t *testing.T) {
	store := &mockStore{}
	handler := NewMenuHandler(store)

	req := httptest.NewRequest(http.MethodPatch, "/admin/menu/i1/availability", strings.NewReader(`{"isAvailable":false}`))
	req.SetPathValue("id", "i1")
	rec := httptest.NewRecorder()
	handler.HandleToggleAvailability(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "i1", store.toggledID)
	assert.False(t, store.toggledTo)
}

func TestHandleDelete(t *testing.T) {
	store := &mockStore{}
	handler := NewMenuHandler(store)

	req := httptest.NewRequest(http.MethodDelete, "/admin/menu/i1", nil)
	req.SetPathValue("id", "i1")
	rec := httptest.NewRecorder()
	handler.HandleDelete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"i1"}, store.deletedIDs)
}

func TestHandleSync(t *testing.T) {
	cases := []struct {
		name   string
		result bool
	}{
		{name: "sync succeeded", result: true},
		{name: "sync failed", result: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockStore{syncResult: tc.result}
			handler := NewMenuHandler(store)

			req := httptest.NewRequest(http.MethodPost, "/admin/sync", nil)
			rec := httptest.NewRecorder()
			handler.HandleSync(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, store.syncRequested)

			var got map[string]bool
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tc.result, got["synced"])
		})
	}
}
