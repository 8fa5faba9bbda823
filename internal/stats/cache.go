package stats

import (
	"encoding/json"
	"fmt"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/metrics"

	"github.com/cespare/xxhash/v2"
	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte           = 1024 * 1024
	cacheExpireSeconds = 60 * 60
)

// Cache memoises engine results keyed by a content hash of the workout
// collection (see HashWorkouts). A changed collection hashes differently, so
// stale entries are simply never hit again. Callers hash once per change and
// pass the hash in; results are identical to the direct functions as long as
// the hash belongs to the workouts passed alongside it.
type Cache struct {
	cache   *freecache.Cache
	metrics *metrics.Manager
}

func NewCache(sizeMB int, metricsManager *metrics.Manager) *Cache {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	return &Cache{
		cache:   freecache.NewCache(sizeMB * megabyte),
		metrics: metricsManager,
	}
}

// HashWorkouts is the content hash the cache keys on.
func HashWorkouts(workouts []domain.Workout) (uint64, error) {
	payload, err := json.Marshal(workouts)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(payload), nil
}

// ExerciseStats is the memoised ComputeExerciseStats.
func (c *Cache) ExerciseStats(exerciseID string, workoutsHash uint64, workouts []domain.Workout) *domain.ExerciseStats {
	key := cacheKey("stats", exerciseID, workoutsHash)
	var cached *domain.ExerciseStats
	if c.lookup(key, &cached) {
		return cached
	}

	result := ComputeExerciseStats(exerciseID, workouts)
	c.store(key, result)
	return result
}

// ExerciseHistory is the memoised ComputeExerciseHistory.
func (c *Cache) ExerciseHistory(exerciseID string, workoutsHash uint64, workouts []domain.Workout) []domain.WorkoutHistory {
	key := cacheKey("history", exerciseID, workoutsHash)
	var cached []domain.WorkoutHistory
	if c.lookup(key, &cached) {
		return cached
	}

	result := ComputeExerciseHistory(exerciseID, workouts)
	c.store(key, result)
	return result
}

func (c *Cache) Clear() {
	c.cache.Clear()
}

func cacheKey(kind, exerciseID string, workoutsHash uint64) string {
	return fmt.Sprintf("%s::%s::%x", kind, exerciseID, workoutsHash)
}

func (c *Cache) lookup(key string, dest any) bool {
	raw, err := c.cache.Get([]byte(key))
	if err != nil {
		c.observe("miss")
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Errorf("stats cache: unmarshal %s: %s", key, err)
		c.observe("miss")
		return false
	}
	c.observe("hit")
	return true
}

func (c *Cache) store(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Errorf("stats cache: marshal %s: %s", key, err)
		return
	}
	if err := c.cache.Set([]byte(key), raw, cacheExpireSeconds); err != nil {
		log.Debugf("stats cache: set %s: %s", key, err)
	}
}

func (c *Cache) observe(result string) {
	if c.metrics != nil {
		c.metrics.CounterStatsCache.WithLabelValues(result).Inc()
	}
}
