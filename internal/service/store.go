package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/metrics"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/stats"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// IDGenerator produces unique entity and set identifiers.
type IDGenerator func() string

// Clock returns the current instant used for created/updated/completed timestamps.
type Clock func() time.Time

// Store is the single in-process authority over exercises, workouts and
// settings. Reads return deep copies; writes go through the mutators, each of
// which persists the whole affected collection. Persistence failures are
// logged and counted but never returned: the in-memory state stays
// authoritative for the session.
//
// A key whose stored document could not be read at startup is held: it is
// never written back, so a transient backend error cannot replace the stored
// collection. Import and Reset replace every key and release the hold.
type Store struct {
	mu sync.RWMutex

	exercises []domain.Exercise
	workouts  []domain.Workout
	settings  domain.Settings

	// content hash of workouts, refreshed on every change; zero when hashing failed
	workoutsHash uint64

	db         *repository.Adapter
	held       map[string]bool
	newID      IDGenerator
	now        Clock
	metrics    *metrics.Manager
	statsCache *stats.Cache
}

type Option func(*Store)

func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) { s.newID = gen }
}

func WithClock(clock Clock) Option {
	return func(s *Store) { s.now = clock }
}

func WithMetrics(m *metrics.Manager) Option {
	return func(s *Store) { s.metrics = m }
}

// WithStatsCache memoises statistics reads. Without it every read recomputes.
func WithStatsCache(c *stats.Cache) Option {
	return func(s *Store) { s.statsCache = c }
}

// NewStore loads the persisted collections from kv, seeding the exercise
// catalog when no exercises are stored yet.
func NewStore(ctx context.Context, kv repository.KVStore, opts ...Option) *Store {
	s := &Store{
		held:  map[string]bool{},
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewManager("workouts", "store", prometheus.NewRegistry())
	}
	s.db = repository.NewAdapter(kv, func(perr *repository.PersistenceError) {
		s.metrics.CounterPersistenceFailures.WithLabelValues(perr.Op).Inc()
	})

	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	s.exercises, err = repository.Load(ctx, s.db, repository.KeyExercises, []domain.Exercise{})
	s.holdUnreadable(repository.KeyExercises, err)
	s.workouts, err = repository.Load(ctx, s.db, repository.KeyWorkouts, []domain.Workout{})
	s.holdUnreadable(repository.KeyWorkouts, err)
	s.settings, err = repository.Load(ctx, s.db, repository.KeySettings, domain.DefaultSettings())
	s.holdUnreadable(repository.KeySettings, err)

	if !s.settings.DefaultWeightUnit.Valid() {
		s.settings = domain.DefaultSettings()
	}
	if s.exercises == nil {
		s.exercises = []domain.Exercise{}
	}
	if s.workouts == nil {
		s.workouts = []domain.Workout{}
	}
	s.rehashWorkouts()

	switch {
	case s.held[repository.KeyExercises]:
		log.Errorf("exercises could not be loaded, starting without a catalog")
	case len(s.exercises) == 0:
		s.exercises = s.seedExercises()
		log.Infof("seeded %d exercises", len(s.exercises))
		s.saveExercises(ctx)
	default:
		log.Debugf("loaded %d exercises, %d workouts", len(s.exercises), len(s.workouts))
	}
}

// holdUnreadable marks key as held when loading it failed for any reason
// other than the key being absent.
func (s *Store) holdUnreadable(key string, err error) {
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.held[key] = true
		log.Warnf("%s is unreadable and will not be overwritten this session", key)
	}
}

// Today is the local calendar day according to the store clock.
func (s *Store) Today() string {
	return domain.DateOf(s.now())
}

// --- Reads ---

func (s *Store) Exercises() []domain.Exercise {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneExercises(s.exercises)
}

func (s *Store) ExerciseByID(id string) (*domain.Exercise, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.exerciseIndex(id)
	if i < 0 {
		return nil, false
	}
	e := s.exercises[i].Clone()
	return &e, true
}

func (s *Store) Workouts() []domain.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWorkouts(s.workouts)
}

func (s *Store) WorkoutByID(id string) (*domain.Workout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.workoutIndex(id)
	if i < 0 {
		return nil, false
	}
	w := s.workouts[i].Clone()
	return &w, true
}

func (s *Store) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// --- Persistence ---

func (s *Store) saveExercises(ctx context.Context) {
	s.save(ctx, repository.KeyExercises, s.exercises)
}

// saveWorkouts also refreshes the workouts hash, so every workouts mutation
// must go through it.
func (s *Store) saveWorkouts(ctx context.Context) {
	s.rehashWorkouts()
	s.save(ctx, repository.KeyWorkouts, s.workouts)
}

func (s *Store) saveSettings(ctx context.Context) {
	s.save(ctx, repository.KeySettings, s.settings)
}

func (s *Store) save(ctx context.Context, key string, value any) {
	if s.held[key] {
		log.Warnf("skip writing held key %s", key)
		s.metrics.CounterPersistenceFailures.WithLabelValues("held").Inc()
		return
	}
	_ = s.db.Save(ctx, key, value)
}

// release drops every hold; used once all keys are about to be replaced.
func (s *Store) release() {
	clear(s.held)
}

func (s *Store) rehashWorkouts() {
	hash, err := stats.HashWorkouts(s.workouts)
	if err != nil {
		log.Errorf("hash workouts: %s", err)
		hash = 0
	}
	s.workoutsHash = hash
}

func (s *Store) mutated(op string) {
	s.metrics.CounterMutations.WithLabelValues(op).Inc()
}

// --- helpers, callers hold the lock ---

func (s *Store) exerciseIndex(id string) int {
	for i := range s.exercises {
		if s.exercises[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) workoutIndex(id string) int {
	for i := range s.workouts {
		if s.workouts[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneExercises(in []domain.Exercise) []domain.Exercise {
	out := make([]domain.Exercise, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func cloneWorkouts(in []domain.Workout) []domain.Workout {
	out := make([]domain.Workout, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
