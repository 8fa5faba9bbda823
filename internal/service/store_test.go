package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/metrics"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/repository/memory"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

// testClock returns testNow and advances one minute per call.
type testClock struct {
	mutex sync.Mutex
	now   time.Time
}

func (c *testClock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	now := c.now
	c.now = c.now.Add(time.Minute)
	return now
}

func sequentialIDs() IDGenerator {
	var (
		mutex sync.Mutex
		n     int
	)
	return func() string {
		mutex.Lock()
		defer mutex.Unlock()
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func newTestStore(t *testing.T, kv repository.KVStore, opts ...Option) (*Store, *metrics.Manager) {
	t.Helper()
	if kv == nil {
		kv = memory.NewStore()
	}
	m := metrics.NewTestManager()
	clock := &testClock{now: testNow}
	opts = append([]Option{
		WithIDGenerator(sequentialIDs()),
		WithClock(clock.Now),
		WithMetrics(m),
	}, opts...)
	return NewStore(context.Background(), kv, opts...), m
}

func mustAddExercise(t *testing.T, s *Store, name string, groups ...domain.MuscleGroup) *domain.Exercise {
	t.Helper()
	ex, err := s.AddExercise(context.Background(), NewExercise{Name: name, MuscleGroups: groups, IsCustom: true})
	require.NoError(t, err)
	return ex
}

func mustAddWorkout(t *testing.T, s *Store, in NewWorkout) *domain.Workout {
	t.Helper()
	w, err := s.AddWorkout(context.Background(), in)
	require.NoError(t, err)
	return w
}

func TestNewStore_SeedsCatalog(t *testing.T) {
	kv := memory.NewStore()
	s, _ := newTestStore(t, kv)

	exercises := s.Exercises()
	require.Len(t, exercises, 15)
	ids := map[string]bool{}
	for _, ex := range exercises {
		assert.False(t, ex.IsCustom, ex.Name)
		assert.Equal(t, testNow, ex.CreatedAt)
		assert.NoError(t, ex.Validate())
		ids[ex.ID] = true
	}
	assert.Len(t, ids, 15)
	assert.Empty(t, s.Workouts())
	assert.Equal(t, domain.DefaultSettings(), s.Settings())

	_, err := kv.Get(context.Background(), repository.KeyExercises)
	require.NoError(t, err, "seeded catalog is persisted")

	// a second start loads the stored catalog instead of reseeding
	again, _ := newTestStore(t, kv)
	assert.Equal(t, exercises, again.Exercises())
}

func TestNewStore_LoadsPersistedState(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	require.NoError(t, kv.Set(ctx, repository.KeyExercises, []byte(`[{"id":"e1","name":"Squats","muscleGroups":["Legs"],"isCustom":true,"createdAt":"2024-01-01T00:00:00Z"}]`)))
	require.NoError(t, kv.Set(ctx, repository.KeySettings, []byte(`{not json`)))

	s, m := newTestStore(t, kv)

	require.Len(t, s.Exercises(), 1)
	assert.Equal(t, "Squats", s.Exercises()[0].Name)
	assert.Equal(t, domain.Kilograms, s.Settings().DefaultWeightUnit)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterPersistenceFailures.WithLabelValues("decode")))
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ex := mustAddExercise(t, s, "Curl", domain.MuscleArms)
	w := mustAddWorkout(t, s, NewWorkout{
		Name: "Arms", Date: "2024-01-10",
		Exercises: []domain.WorkoutExercise{{ExerciseID: ex.ID, Sets: []domain.Set{{WeightUnit: domain.Kilograms, Reps: 10}}}},
	})

	got, ok := s.WorkoutByID(w.ID)
	require.True(t, ok)
	got.Exercises[0].Sets[0].Reps = 99
	got.Name = "changed"

	again, _ := s.WorkoutByID(w.ID)
	assert.Equal(t, 10, again.Exercises[0].Sets[0].Reps)
	assert.Equal(t, "Arms", again.Name)

	list := s.Exercises()
	list[0].MuscleGroups[0] = domain.MuscleLegs
	assert.Equal(t, domain.MuscleChest, s.Exercises()[0].MuscleGroups[0])
}

// flakyKV fails the first read of each listed key, then behaves like memory.Store.
type flakyKV struct {
	*memory.Store
	mutex   sync.Mutex
	failing map[string]bool
}

func newFlakyKV(keys ...string) *flakyKV {
	kv := &flakyKV{Store: memory.NewStore(), failing: map[string]bool{}}
	for _, key := range keys {
		kv.failing[key] = true
	}
	return kv
}

func (kv *flakyKV) Get(ctx context.Context, key string) ([]byte, error) {
	kv.mutex.Lock()
	fail := kv.failing[key]
	delete(kv.failing, key)
	kv.mutex.Unlock()
	if fail {
		return nil, errors.New("connection reset by peer")
	}
	return kv.Store.Get(ctx, key)
}

func TestNewStore_UnreadableExercisesAreNotReseeded(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV(repository.KeyExercises)
	storedExercises := []byte(`[{"id":"e1","name":"Zercher Squat","muscleGroups":["Legs"],"isCustom":true,"createdAt":"2024-01-01T00:00:00Z"}]`)
	require.NoError(t, kv.Store.Set(ctx, repository.KeyExercises, storedExercises))
	require.NoError(t, kv.Store.Set(ctx, repository.KeyWorkouts, []byte(`[{"id":"w1","name":"Legs","date":"2024-01-05","exercises":[{"exerciseId":"e1","sets":[],"order":0}],"isCompleted":false}]`)))

	s, m := newTestStore(t, kv)

	assert.Empty(t, s.Exercises(), "no seed catalog on a failed read")
	assert.Len(t, s.Workouts(), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterPersistenceFailures.WithLabelValues("get")))

	// later exercise writes must not replace the stored document
	_, err := s.AddExercise(ctx, NewExercise{Name: "Hip Thrust", MuscleGroups: []domain.MuscleGroup{domain.MuscleLegs}})
	require.NoError(t, err)
	raw, err := kv.Store.Get(ctx, repository.KeyExercises)
	require.NoError(t, err)
	assert.JSONEq(t, string(storedExercises), string(raw))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterPersistenceFailures.WithLabelValues("held")))

	// other keys are still written
	_, err = s.AddWorkout(ctx, NewWorkout{Name: "Push", Date: "2024-01-10"})
	require.NoError(t, err)
	raw, err = kv.Store.Get(ctx, repository.KeyWorkouts)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Push"`)

	// the next start reads the untouched document
	again, _ := newTestStore(t, kv)
	require.Len(t, again.Exercises(), 1)
	assert.Equal(t, "e1", again.Exercises()[0].ID)
}

func TestNewStore_ResetReleasesHeldKeys(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV(repository.KeyExercises)
	require.NoError(t, kv.Store.Set(ctx, repository.KeyExercises, []byte(`[{"id":"e1","name":"Squat","muscleGroups":["Legs"]}]`)))

	s, _ := newTestStore(t, kv)
	require.Empty(t, s.Exercises())

	s.Reset(ctx)
	require.Len(t, s.Exercises(), 15)
	raw, err := kv.Store.Get(ctx, repository.KeyExercises)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"e1"`)
}

// brokenKV accepts reads of nothing and fails every write.
type brokenKV struct{}

func (brokenKV) Get(context.Context, string) ([]byte, error) { return nil, repository.ErrNotFound }
func (brokenKV) Set(context.Context, string, []byte) error { return errors.New("disk full") }
func (brokenKV) Remove(context.Context, string) error { return errors.New("disk full") }

func TestStore_PersistenceFailureSwallowed(t *testing.T) {
	s, m := newTestStore(t, brokenKV{})
	require.Len(t, s.Exercises(), 15)

	ex, err := s.AddExercise(context.Background(), NewExercise{Name: "Hip Thrust", MuscleGroups: []domain.MuscleGroup{domain.MuscleLegs}})
	require.NoError(t, err)
	require.NotNil(t, ex)

	_, ok := s.ExerciseByID(ex.ID)
	assert.True(t, ok, "in-memory state stays authoritative")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterPersistenceFailures.WithLabelValues("set")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterMutations.WithLabelValues("add_exercise")))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ex := mustAddExercise(t, s, "Row", domain.MuscleBack)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := s.AddWorkout(context.Background(), NewWorkout{
				Name:        fmt.Sprintf("w%d", i),
				Date:        "2024-01-10",
				Exercises:   []domain.WorkoutExercise{{ExerciseID: ex.ID}},
				IsCompleted: i%2 == 0,
			})
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			_ = s.ExerciseStats(ex.ID)
			_ = s.UpcomingWorkouts()
		}()
	}
	wg.Wait()

	assert.Len(t, s.Workouts(), 20)
}
