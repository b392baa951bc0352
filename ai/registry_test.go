package ai

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"jobshield/errors"
)

type stubStore struct {
	mu         sync.Mutex
	loads      atomic.Int64
	models     map[string]Model
	vectorizer *Vectorizer
	vecErr     error
}

func (s *stubStore) LoadArtifact(name string) (Model, error) {
	s.loads.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrModelMissing, name)
	}
	return m, nil
}

func (s *stubStore) LoadVectorizer() (*Vectorizer, error) {
	if s.vecErr != nil {
		return nil, s.vecErr
	}
	return s.vectorizer, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testVectorizer(t *testing.T, dim int) *Vectorizer {
	t.Helper()
	terms := make([]string, dim)
	idf := make([]float64, dim)
	for i := range terms {
		terms[i] = fmt.Sprintf("term%d", i)
		idf[i] = 1
	}
	v, err := NewVectorizer(terms, idf, "v1")
	require.NoError(t, err)
	return v
}

func TestRegistry_CurrentLoadsOnce(t *testing.T) {
	req := require.New(t)

	store := &stubStore{
		models: map[string]Model{
			PrimaryModelName: NewProbabilisticModel(PrimaryModelName, []float64{1, 1}, 0, "v1"),
		},
		vectorizer: testVectorizer(t, 2),
	}
	registry := NewRegistry(store, "", testLogger())

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			set, err := registry.Current()
			req.NoError(err)
			req.NotNil(set.Primary)
			req.NotNil(set.Vectorizer)
		}()
	}
	wg.Wait()

	// One artifact load, no shadow configured.
	req.Equal(int64(1), store.loads.Load())
}

func TestRegistry_MissingPrimary(t *testing.T) {
	req := require.New(t)

	store := &stubStore{models: map[string]Model{}, vectorizer: testVectorizer(t, 2)}
	registry := NewRegistry(store, "", testLogger())

	_, err := registry.Current()
	req.Error(err)
	req.True(errors.IsUnavailable(err))
	req.ErrorIs(err, errors.ErrModelMissing)
}

func TestRegistry_DimensionMismatchIsFatal(t *testing.T) {
	req := require.New(t)

	store := &stubStore{
		models: map[string]Model{
			PrimaryModelName: NewProbabilisticModel(PrimaryModelName, []float64{1, 1, 1}, 0, "v1"),
		},
		vectorizer: testVectorizer(t, 2),
	}
	registry := NewRegistry(store, "", testLogger())

	_, err := registry.Current()
	req.Error(err)
	req.True(errors.IsUnavailable(err))
	req.ErrorIs(err, errors.ErrDimensionMismatch)
}

func TestRegistry_VocabularyVersionMismatchIsFatal(t *testing.T) {
	req := require.New(t)

	store := &stubStore{
		models: map[string]Model{
			PrimaryModelName: NewProbabilisticModel(PrimaryModelName, []float64{1, 1}, 0, "v2"),
		},
		vectorizer: testVectorizer(t, 2),
	}
	registry := NewRegistry(store, "", testLogger())

	_, err := registry.Current()
	req.ErrorIs(err, errors.ErrDimensionMismatch)
}

func TestRegistry_ShadowFailuresAreIsolated(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		description string
		shadow      Model
	}{
		{
			"Should load without shadow when the artifact is missing",
			nil,
		},
		{
			"Should drop an incompatible shadow",
			NewProbabilisticModel("model_b", []float64{1, 1, 1}, 0, "v1"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			models := map[string]Model{
				PrimaryModelName: NewProbabilisticModel(PrimaryModelName, []float64{1, 1}, 0, "v1"),
			}
			if tt.shadow != nil {
				models["model_b"] = tt.shadow
			}
			store := &stubStore{models: models, vectorizer: testVectorizer(t, 2)}
			registry := NewRegistry(store, "model_b", testLogger())

			set, err := registry.Current()
			req.NoError(err)
			req.NotNil(set.Primary)
			req.Nil(set.Shadow)
		})
	}
}

func TestRegistry_ReloadSwapsAtomically(t *testing.T) {
	req := require.New(t)

	first := NewProbabilisticModel(PrimaryModelName, []float64{1, 1}, 0, "v1")
	store := &stubStore{
		models:     map[string]Model{PrimaryModelName: first},
		vectorizer: testVectorizer(t, 2),
	}
	registry := NewRegistry(store, "", testLogger())

	before, err := registry.Current()
	req.NoError(err)
	req.Same(first, before.Primary)

	second := NewProbabilisticModel(PrimaryModelName, []float64{2, 2}, 1, "v1")
	store.mu.Lock()
	store.models[PrimaryModelName] = second
	store.mu.Unlock()

	req.NoError(registry.Reload())

	after, err := registry.Current()
	req.NoError(err)
	req.Same(second, after.Primary)
	// The set handed out before the reload is untouched.
	req.Same(first, before.Primary)
}

func TestRegistry_ReloadFailureKeepsCurrent(t *testing.T) {
	req := require.New(t)

	model := NewProbabilisticModel(PrimaryModelName, []float64{1}, 0, "v1")
	store := &stubStore{
		models:     map[string]Model{PrimaryModelName: model},
		vectorizer: testVectorizer(t, 1),
	}
	registry := NewRegistry(store, "", testLogger())

	_, err := registry.Current()
	req.NoError(err)

	store.vecErr = fmt.Errorf("disk gone")
	req.Error(registry.Reload())

	set, err := registry.Current()
	req.NoError(err)
	req.Same(model, set.Primary)
}
