package activities_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fittrack/go-fitness-client/activities"
	"github.com/fittrack/go-fitness-client/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *activities.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return activities.NewClient(api.NewClient(server.URL + "/api"))
}

func TestList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/activities", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]activities.Activity{
			{ID: "a1", Type: activities.TypeRunning, Duration: 30, CaloriesBurned: 300},
			{ID: "a2", Type: activities.TypeYoga, Duration: 60, CaloriesBurned: 150},
		})
	})

	list, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, activities.TypeRunning, list[0].Type)
}

func TestCreateValidatesBeforeSending(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.Create(context.Background(), activities.CreateRequest{Duration: 0})
	require.Error(t, err)
	require.False(t, called)
}

func TestCreate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/activities", r.URL.Path)

		var req activities.CreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, activities.TypeCycling, req.Type)

		_ = json.NewEncoder(w).Encode(activities.Activity{
			ID: "a3", Type: req.Type, Duration: req.Duration, CaloriesBurned: req.CaloriesBurned,
		})
	})

	created, err := c.Create(context.Background(), activities.CreateRequest{
		Type: activities.TypeCycling, Duration: 45, CaloriesBurned: 500,
	})
	require.NoError(t, err)
	require.Equal(t, "a3", created.ID)
}

func TestStatistics(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/activities/statistics", r.URL.Path)
		_ = json.NewEncoder(w).Encode(activities.Stats{
			TotalActivities: 12, TotalDuration: 480, MostCommonType: activities.TypeGym,
		})
	})

	stats, err := c.Statistics(context.Background())
	require.NoError(t, err)
	require.Equal(t, 12, stats.TotalActivities)
	require.Equal(t, activities.TypeGym, stats.MostCommonType)
}

func TestDelete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/activities/a1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Delete(context.Background(), "a1"))
}

func TestFilterByType(t *testing.T) {
	list := []activities.Activity{
		{ID: "a1", Type: activities.TypeRunning},
		{ID: "a2", Type: activities.TypeYoga},
		{ID: "a3", Type: activities.TypeRunning},
	}

	running := activities.FilterByType(list, activities.TypeRunning)
	require.Len(t, running, 2)
	require.Equal(t, "a1", running[0].ID)
	require.Equal(t, "a3", running[1].ID)
}
