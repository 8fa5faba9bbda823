package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/metrics"
	"alcyxob/workout-tracker/internal/repository/memory"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func newTestRouter(t *testing.T) (*gin.Engine, *service.Store) {
	t.Helper()
	metricsManager, registry := metrics.NewTestManagerAndRegistry()
	store := service.NewStore(context.Background(), memory.NewStore(), service.WithMetrics(metricsManager))
	router := gin.New()
	SetupRoutes(router, store, nil, metricsManager, registry)
	return router, store
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestPingAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doRequest(t, router, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "pong")

	rr = doRequest(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "request_duration")
}

func TestExerciseEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doRequest(t, router, http.MethodPost, "/api/v1/exercises", gin.H{
		"name":         "Hip Thrust",
		"muscleGroups": []string{"Legs"},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[domain.Exercise](t, rr)
	assert.True(t, created.IsCustom)
	assert.NotEmpty(t, created.ID)

	rr = doRequest(t, router, http.MethodPost, "/api/v1/exercises", gin.H{
		"name":         "Mystery",
		"muscleGroups": []string{"Neck"},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/v1/exercises?muscleGroup=Legs", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	for _, ex := range decode[[]domain.Exercise](t, rr) {
		assert.True(t, ex.HasMuscleGroup(domain.MuscleLegs), ex.Name)
	}

	rr = doRequest(t, router, http.MethodGet, "/api/v1/exercises?muscleGroup=Neck", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/v1/exercises/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, router, http.MethodPatch, "/api/v1/exercises/unknown", gin.H{"name": "X"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/v1/exercises/"+created.ID+"/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", strings.TrimSpace(rr.Body.String()))

	rr = doRequest(t, router, http.MethodDelete, "/api/v1/exercises/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestDeleteReferencedExercise_Conflict(t *testing.T) {
	router, store := newTestRouter(t)
	exerciseID := store.Exercises()[0].ID

	rr := doRequest(t, router, http.MethodPost, "/api/v1/workouts", gin.H{
		"name": "Push",
		"date": "2024-01-10",
		"exercises": []gin.H{{
			"exerciseId": exerciseID,
			"sets":       []gin.H{{"weight": 60, "weightUnit": "kg", "reps": 8}},
		}},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doRequest(t, router, http.MethodDelete, "/api/v1/exercises/"+exerciseID, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	_, ok := store.ExerciseByID(exerciseID)
	assert.True(t, ok)
}

func TestWorkoutEndpoints(t *testing.T) {
	router, store := newTestRouter(t)
	exerciseID := store.Exercises()[0].ID

	rr := doRequest(t, router, http.MethodPost, "/api/v1/workouts", gin.H{"name": "Bad", "date": "10.01.2024"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodPost, "/api/v1/workouts", gin.H{"name": "Leg Day", "date": "2024-01-10"})
	require.Equal(t, http.StatusCreated, rr.Code)
	workout := decode[domain.Workout](t, rr)

	rr = doRequest(t, router, http.MethodPost, "/api/v1/workouts/"+workout.ID+"/exercises", gin.H{"exerciseId": exerciseID})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doRequest(t, router, http.MethodGet, "/api/v1/workouts/"+workout.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[WorkoutResponse](t, rr)
	assert.NotEmpty(t, got.MuscleGroups)
	require.Len(t, got.Exercises, 1)

	rr = doRequest(t, router, http.MethodGet, "/api/v1/views/next?today=2024-01-09", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, workout.ID, decode[domain.Workout](t, rr).ID)

	rr = doRequest(t, router, http.MethodGet, "/api/v1/views/next?today=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodPost, "/api/v1/workouts/"+workout.ID+"/duplicate", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Leg Day (Copy)", decode[domain.Workout](t, rr).Name)

	rr = doRequest(t, router, http.MethodPost, "/api/v1/workouts/"+workout.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[domain.Workout](t, rr).IsCompleted)

	rr = doRequest(t, router, http.MethodGet, "/api/v1/views/dashboard?today=2024-01-10", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	dashboard := decode[service.Dashboard](t, rr)
	assert.Equal(t, 1, dashboard.CompletedCount)
	assert.Equal(t, 1, dashboard.UpcomingCount)

	for _, path := range []string{"/duplicate", "/toggle-complete", "/complete"} {
		rr = doRequest(t, router, http.MethodPost, "/api/v1/workouts/unknown"+path, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}

func TestSessionEndpoints(t *testing.T) {
	router, store := newTestRouter(t)
	exercises := store.Exercises()
	w, err := store.AddWorkout(context.Background(), service.NewWorkout{Name: "Session", Date: "2024-01-10"})
	require.NoError(t, err)
	base := "/api/v1/workouts/" + w.ID + "/exercises"

	for _, ex := range exercises[:2] {
		rr := doRequest(t, router, http.MethodPost, base, gin.H{"exerciseId": ex.ID})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := doRequest(t, router, http.MethodPost, base+"/1/move", gin.H{"delta": -1})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	moved := decode[domain.Workout](t, rr)
	assert.Equal(t, exercises[1].ID, moved.Exercises[0].ExerciseID)

	rr = doRequest(t, router, http.MethodPost, base+"/1/move", gin.H{"delta": 2})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodPost, base+"/0/sets", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	withSet := decode[domain.Workout](t, rr)
	require.Len(t, withSet.Exercises[0].Sets, 2)
	setID := withSet.Exercises[0].Sets[1].ID

	rr = doRequest(t, router, http.MethodPatch, base+"/0/sets/"+setID, gin.H{"weight": 40, "reps": 12})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 40.0, decode[domain.Workout](t, rr).Exercises[0].Sets[1].Weight)

	rr = doRequest(t, router, http.MethodPatch, base+"/0/sets/missing", gin.H{"reps": 1})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, router, http.MethodDelete, base+"/0/sets/"+setID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, router, http.MethodDelete, base+"/9", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodDelete, base+"/x", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodPut, base+"/0", gin.H{"exerciseId": "unknown"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSettingsEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doRequest(t, router, http.MethodPatch, "/api/v1/settings", gin.H{"defaultWeightUnit": "lb"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/v1/settings", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.Pounds, decode[domain.Settings](t, rr).DefaultWeightUnit)

	rr = doRequest(t, router, http.MethodPatch, "/api/v1/settings", gin.H{"defaultWeightUnit": "stone"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBackupEndpoints(t *testing.T) {
	router, store := newTestRouter(t)
	_, err := store.AddWorkout(context.Background(), service.NewWorkout{Name: "Backed up", Date: "2024-01-10"})
	require.NoError(t, err)

	rr := doRequest(t, router, http.MethodGet, "/api/v1/backup/export", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "fitness-backup-")
	exported := rr.Body.String()

	rr = doRequest(t, router, http.MethodPost, "/api/v1/backup/import", `{"data":{"exercises":[]}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Len(t, store.Workouts(), 1)

	rr = doRequest(t, router, http.MethodPost, "/api/v1/backup/reset", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, store.Workouts())

	rr = doRequest(t, router, http.MethodPost, "/api/v1/backup/import", exported)
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())
	assert.Len(t, store.Workouts(), 1)

	for _, r := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/backup/remote"},
		{http.MethodPost, "/api/v1/backup/remote/pull"},
		{http.MethodGet, "/api/v1/backup/remote/url"},
		{http.MethodDelete, "/api/v1/backup/remote?key=x"},
	} {
		rr = doRequest(t, router, r.method, r.path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code, r.path)
	}
}
