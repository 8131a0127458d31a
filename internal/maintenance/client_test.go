package maintenance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate_Empty(t *testing.T) {
	assert.True(t, Update{}.Empty())

	mileage := int64(120000)
	assert.False(t, Update{Mileage: &mileage}.Empty())
	assert.False(t, Update{Comment: "serviced"}.Empty())
}

func TestClient_UpdateByVehicle(t *testing.T) {
	var gotPath string
	var gotBody Update

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	err := client.UpdateByVehicle(context.Background(), 17, Update{
		NextServiceDue: &due,
		Comment:        "brakes done",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/maintenance/by-vehicle/17", gotPath)
	assert.Equal(t, "brakes done", gotBody.Comment)
	require.NotNil(t, gotBody.NextServiceDue)
	assert.True(t, due.Equal(*gotBody.NextServiceDue))
}

func TestClient_UpdateByVehicle_NonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "vehicle not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.UpdateByVehicle(context.Background(), 99, Update{Comment: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "vehicle not found")
}

func TestClient_UpdateByVehicle_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down immediately

	client := NewClient(srv.URL)
	err := client.UpdateByVehicle(context.Background(), 1, Update{Comment: "x"})
	assert.Error(t, err)
}
