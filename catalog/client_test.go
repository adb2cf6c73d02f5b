package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mutuel/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/races/race-1/entries", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"program_number": 1, "horse_id": "h-1", "scratched": false},
			{"program_number": 2, "horse_id": "h-2", "scratched": true}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	entries, err := client.GetEntries(context.Background(), "race-1")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].ProgramNumber)
	assert.False(t, entries[0].Scratched)
	assert.True(t, entries[1].Scratched)
}

func TestClient_GetRaceResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/races/race-1/result", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"finalized": true,
			"positions": [4, 7, 2],
			"payouts": {
				"win": {"4": "4.80"},
				"exacta": {"4-7": "13.40"}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.GetRaceResult(context.Background(), "race-1")

	require.NoError(t, err)
	assert.Equal(t, "race-1", result.RaceID)
	assert.True(t, result.Finalized)
	assert.Equal(t, []int{4, 7, 2}, result.Positions)
	assert.Equal(t, "4.8", result.Payout(models.PoolWin, "4").String())
	assert.Equal(t, "13.4", result.Payout(models.PoolExacta, "4-7").String())
	assert.True(t, result.Payout(models.PoolTrifecta, "4-7-2").IsZero())
}

func TestClient_NotFinalizedResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"finalized": false}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.GetRaceResult(context.Background(), "race-9")

	require.NoError(t, err)
	assert.False(t, result.Finalized)
	assert.Equal(t, "race-9", result.RaceID)
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.GetEntries(context.Background(), "missing")
	assert.Error(t, err)

	_, err = client.GetRaceResult(context.Background(), "missing")
	assert.Error(t, err)
}

func TestClient_EscapesRaceID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.GetEntries(context.Background(), "race/2026 A")

	require.NoError(t, err)
	assert.Equal(t, "/races/race%2F2026%20A/entries", gotPath)
}
