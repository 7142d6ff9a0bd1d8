package inventory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Sourcing/internal/scoring"
)

func TestGetRealtimeInventory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/inventory/SKU 1", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"item_id":"SKU 1","location_inventories":[
			{"inventory_location_id":1,"available_inventory":4},
			{"inventory_location_id":2,"available_inventory":0}]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret", time.Second)
	got, err := c.GetRealtimeInventory(context.Background(), "SKU 1")
	require.NoError(t, err)
	assert.Equal(t, []scoring.InventoryRecord{
		{LocationID: 1, Available: 4},
		{LocationID: 2, Available: 0},
	}, got)
}

func TestGetRealtimeInventoryNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	got, err := NewHTTPClient(srv.URL, "", 0).GetRealtimeInventory(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetRealtimeInventoryServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, "", 0).GetRealtimeInventory(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestGetRealtimeInventoryBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, "", 0).GetRealtimeInventory(context.Background(), "x")
	assert.Error(t, err)
}

func TestStaticService(t *testing.T) {
	s := StaticService{"A": {{LocationID: 1, Available: 2}}}

	got, err := s.GetRealtimeInventory(context.Background(), "A")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.GetRealtimeInventory(context.Background(), "B")
	require.NoError(t, err)
	assert.Nil(t, got)
}
