package api

import (
	"net/http"

	"alcyxob/workout-tracker/internal/metrics"
	"alcyxob/workout-tracker/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service is everything the HTTP API needs from the entity store.
type Service interface {
	ExerciseService
	WorkoutService
	SessionService
	ViewService
	SettingsService
	BackupService
}

// SetupRoutes registers every endpoint on router. backups may be nil when
// remote backups are not configured; gatherer may be nil to skip /metrics.
func SetupRoutes(
	router *gin.Engine,
	svc Service,
	backups storage.BackupStorage,
	metricsManager *metrics.Manager,
	gatherer prometheus.Gatherer,
) {
	exerciseHandler := NewExerciseHandler(svc)
	workoutHandler := NewWorkoutHandler(svc)
	sessionHandler := NewSessionHandler(svc)
	viewHandler := NewViewHandler(svc)
	settingsHandler := NewSettingsHandler(svc)
	backupHandler := NewBackupHandler(svc, backups)

	router.Use(RequestMetricsMiddleware(metricsManager))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")
	{
		exerciseGroup := apiV1.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PATCH("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
			exerciseGroup.GET("/:id/stats", exerciseHandler.GetExerciseStats)
			exerciseGroup.GET("/:id/history", exerciseHandler.GetExerciseHistory)
			exerciseGroup.GET("/:id/last", exerciseHandler.GetLastPerformance)
		}
		apiV1.GET("/stats/exercises", exerciseHandler.GetAllExerciseStats)

		workoutGroup := apiV1.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PATCH("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
			workoutGroup.POST("/:id/duplicate", workoutHandler.DuplicateWorkout)
			workoutGroup.POST("/:id/toggle-complete", workoutHandler.ToggleComplete)
			workoutGroup.POST("/:id/complete", workoutHandler.CompleteWorkout)

			// --- Session editing ---
			workoutGroup.POST("/:id/exercises", sessionHandler.AddExercise)
			workoutGroup.PUT("/:id/exercises/:index", sessionHandler.ReplaceExercise)
			workoutGroup.DELETE("/:id/exercises/:index", sessionHandler.RemoveExercise)
			workoutGroup.POST("/:id/exercises/:index/move", sessionHandler.MoveExercise)
			workoutGroup.POST("/:id/exercises/:index/sets", sessionHandler.AddSet)
			workoutGroup.PATCH("/:id/exercises/:index/sets/:setId", sessionHandler.UpdateSet)
			workoutGroup.DELETE("/:id/exercises/:index/sets/:setId", sessionHandler.RemoveSet)
		}

		viewGroup := apiV1.Group("/views")
		{
			viewGroup.GET("/upcoming", viewHandler.Upcoming)
			viewGroup.GET("/completed", viewHandler.Completed)
			viewGroup.GET("/next", viewHandler.Next)
			viewGroup.GET("/dashboard", viewHandler.Dashboard)
		}

		apiV1.GET("/settings", settingsHandler.GetSettings)
		apiV1.PATCH("/settings", settingsHandler.UpdateSettings)

		backupGroup := apiV1.Group("/backup")
		{
			backupGroup.GET("/export", backupHandler.Export)
			backupGroup.POST("/import", backupHandler.Import)
			backupGroup.POST("/reset", backupHandler.Reset)
			backupGroup.POST("/remote", backupHandler.PushRemote)
			backupGroup.POST("/remote/pull", backupHandler.PullRemote)
			backupGroup.GET("/remote/url", backupHandler.RemoteURL)
			backupGroup.DELETE("/remote", backupHandler.DeleteRemote)
		}
	}
}
