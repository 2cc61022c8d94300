package seller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/attachr/internal/api"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/vendor/regions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"regions":[{"id":"reg_us","name":"US","currency_code":"usd"},{"id":"reg_eu","name":"EU","currency_code":"eur"}]}`))
	})
	mux.HandleFunc("/vendor/stock-locations", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"stock_locations":[{"id":"loc_1","name":"Main Warehouse"}]}`))
	})
	mux.HandleFunc("/vendor/configuration", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"configuration":{"global_product_catalog":true}}`))
	})
	mux.HandleFunc("/vendor/products", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") != "0" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"products":[{"id":"p1","title":"Mine","status":"published","variants_count":2}],"count":1,"limit":10,"offset":0}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewService(api.NewClient(api.Direct{BaseURL: srv.URL}, "", "", time.Second))
}

func TestService_Regions(t *testing.T) {
	s := newTestService(t)
	regions, err := s.Regions(context.Background())
	require.NoError(t, err)
	require.Len(t, regions, 2)
	require.Equal(t, "usd", regions[0].CurrencyCode)
}

func TestService_StockLocations(t *testing.T) {
	s := newTestService(t)
	locations, err := s.StockLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 1)
	require.Equal(t, "Main Warehouse", locations[0].Name)
}

func TestService_CatalogEnabled(t *testing.T) {
	s := newTestService(t)
	enabled, err := s.CatalogEnabled(context.Background())
	require.NoError(t, err)
	require.True(t, enabled)
}

func TestService_ListProducts(t *testing.T) {
	s := newTestService(t)
	list, err := s.ListProducts(context.Background(), ListQuery{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	require.Equal(t, "Mine", list.Products[0].Title)

	_, err = s.ListProducts(context.Background(), ListQuery{Limit: 10, Offset: 10})
	require.Error(t, err)
}
