package sender

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
)

func TestSendPostsInventory(t *testing.T) {
	var (
		gotKey string
		gotInv collector.Inventory
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, submitPath, r.URL.Path)
		gotKey = r.Header.Get("X-API-Key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotInv))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"stored_at":"2026-10-01T09:00:00Z"}`))
	}))
	defer ts.Close()

	inv := &collector.Inventory{
		ID:          "snap-1",
		CollectedAt: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
		Hostname:    "ws-01",
	}

	id, err := Send(context.Background(), ts.URL, "s3cret", inv)
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)
	assert.Equal(t, "s3cret", gotKey)
	assert.Equal(t, "ws-01", gotInv.Hostname)
	assert.Equal(t, "snap-1", gotInv.ID)
}

func TestSendReportsServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":401,"reason":"","message":"missing X-API-Key header"}`))
	}))
	defer ts.Close()

	_, err := Send(context.Background(), ts.URL, "", &collector.Inventory{ID: "x", Hostname: "ws-01"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submit inventory")
}
