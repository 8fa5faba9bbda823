package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/metrics"
	"alcyxob/workout-tracker/internal/service"
	"alcyxob/workout-tracker/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestMetricsMiddleware logs every request and records its status and
// duration.
func RequestMetricsMiddleware(metricsManager *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		if metricsManager != nil {
			metricsManager.CounterRequests.WithLabelValues(c.Request.Method, strconv.Itoa(status)).Inc()
			metricsManager.HistRequestDuration.Observe(elapsed.Seconds())
		}

		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  status,
			"elapsed": elapsed.String(),
		}).Trace("request handled")
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondWithError maps store errors to HTTP statuses. Unexpected errors are
// logged and hidden behind a generic message.
func respondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, service.ErrImportFormat):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrSetNotFound),
		errors.Is(err, storage.ErrObjectNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExerciseInUse):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		log.Errorf("%s %s: %s", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, "internal error")
	}
}

// indexParam parses the :index path parameter.
func indexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "index must be an integer")
		return 0, false
	}
	return index, true
}
