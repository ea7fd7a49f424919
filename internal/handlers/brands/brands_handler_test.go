package brands

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/neataffiliates/signup-feed-service/internal/adapters/supabase"
)

type fakeObjectStore struct {
	data []byte
	err  error
}

func (s *fakeObjectStore) Download(_ context.Context, bucket, object string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

const catalogJSON = `[
	{"id": 1, "name": "Jackburst", "logo_url": "https://cdn.example.com/jackburst.png", "group": "Realm", "order": 1, "is_visible": true},
	{"id": 2, "name": "Bluffbet", "logo_url": "https://cdn.example.com/bluffbet.png", "group": "Bluffbet", "order": 1, "is_visible": true},
	{"id": 3, "name": "Hidden", "logo_url": "https://cdn.example.com/hidden.png", "group": "Realm", "order": 2, "is_visible": false}
]`

func setupBrandsTest(store *fakeObjectStore) *Handler {
	catalog := supabase.NewBrandCatalog(store, zap.NewNop(), "brands", "brands.json", time.Minute)
	return NewHandler(catalog, zap.NewNop())
}

func getBrands(t *testing.T, h *Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.HandleBrands(rec, req)
	return rec
}

func TestHandleBrands_ListsVisibleBrands(t *testing.T) {
	h := setupBrandsTest(&fakeObjectStore{data: []byte(catalogJSON)})

	rec := getBrands(t, h, "/api/brands")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK     bool `json:"ok"`
		Brands []struct {
			Name  string `json:"name"`
			Group string `json:"group"`
		} `json:"brands"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	require.Len(t, resp.Brands, 2)

	// Internal group names are replaced with display labels.
	assert.Equal(t, "Instance 1", resp.Brands[0].Group)
}

func TestHandleBrands_FiltersByGroup(t *testing.T) {
	h := setupBrandsTest(&fakeObjectStore{data: []byte(catalogJSON)})

	rec := getBrands(t, h, "/api/brands?group=Bluffbet")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Brands []struct {
			Name string `json:"name"`
		} `json:"brands"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Brands, 1)
	assert.Equal(t, "Bluffbet", resp.Brands[0].Name)
}

func TestHandleBrands_CatalogUnavailable(t *testing.T) {
	h := setupBrandsTest(&fakeObjectStore{err: errors.New("bucket down")})

	rec := getBrands(t, h, "/api/brands")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope["ok"])
}

func TestHandleBrands_MethodNotAllowed(t *testing.T) {
	h := setupBrandsTest(&fakeObjectStore{data: []byte(catalogJSON)})

	req := httptest.NewRequest(http.MethodPost, "/api/brands", nil)
	rec := httptest.NewRecorder()
	h.HandleBrands(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
