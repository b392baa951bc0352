package ai

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"jobshield/errors"
)

// PrimaryModelName is the artifact scored for the user-facing verdict.
const PrimaryModelName = "model_a"

// Store is the model-store collaborator: it materializes trained artifacts.
// Implementations must return errors.ErrModelMissing (wrapped or not) when
// the named artifact does not exist.
type Store interface {
	LoadArtifact(name string) (Model, error)
	LoadVectorizer() (*Vectorizer, error)
}

// ArtifactSet is one immutable generation of inference state. Vectorizer
// and models always travel together so a request can never score a vector
// from one generation against a classifier from another.
type ArtifactSet struct {
	Vectorizer *Vectorizer
	Primary    Model
	Shadow     Model
}

// Registry is the explicitly-owned inference context handle. It is
// constructed once at startup and passed to pipeline operations; Reload is
// an atomic wholesale swap, never a partial mutation.
type Registry struct {
	store      Store
	shadowName string
	log        *slog.Logger

	mu      sync.Mutex
	current atomic.Pointer[ArtifactSet]
}

// NewRegistry builds a registry backed by store. shadowName may be empty to
// disable shadow scoring entirely.
func NewRegistry(store Store, shadowName string, log *slog.Logger) *Registry {
	return &Registry{store: store, shadowName: shadowName, log: log}
}

// Current returns the active artifact set, loading it on first use.
// Concurrent first calls load exactly once.
func (r *Registry) Current() (*ArtifactSet, error) {
	if set := r.current.Load(); set != nil {
		return set, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if set := r.current.Load(); set != nil {
		return set, nil
	}
	set, err := r.load()
	if err != nil {
		return nil, err
	}
	r.current.Store(set)
	return set, nil
}

// Reload loads a fresh artifact set and swaps it in atomically. In-flight
// requests keep the set they already hold.
func (r *Registry) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, err := r.load()
	if err != nil {
		return err
	}
	r.current.Store(set)
	r.log.Info("model artifacts reloaded",
		"primary", set.Primary.Name(),
		"capability", string(set.Primary.Capability()),
		"shadow", r.shadowName != "" && set.Shadow != nil)
	return nil
}

func (r *Registry) load() (*ArtifactSet, error) {
	vectorizer, err := r.store.LoadVectorizer()
	if err != nil {
		return nil, errors.Unavailable(errors.StageInference, err)
	}

	primary, err := r.store.LoadArtifact(PrimaryModelName)
	if err != nil {
		return nil, errors.Unavailable(errors.StageInference, err)
	}
	if err := checkCompatible(primary, vectorizer); err != nil {
		return nil, errors.Unavailable(errors.StageInference, err)
	}

	set := &ArtifactSet{Vectorizer: vectorizer, Primary: primary}

	// A broken shadow never blocks the primary path.
	if r.shadowName != "" {
		shadow, err := r.store.LoadArtifact(r.shadowName)
		switch {
		case err != nil:
			r.log.Warn("shadow model unavailable, continuing without it",
				"model", r.shadowName, "error", err)
		case checkCompatible(shadow, vectorizer) != nil:
			r.log.Warn("shadow model incompatible with vectorizer, continuing without it",
				"model", r.shadowName, "dim", shadow.Dim(), "expected", vectorizer.Dim())
		default:
			set.Shadow = shadow
		}
	}
	return set, nil
}

// checkCompatible is the fatal-configuration gate: a dimension or
// vocabulary-version mismatch is never silently truncated or padded.
func checkCompatible(m Model, v *Vectorizer) error {
	if m.Dim() != v.Dim() {
		return fmt.Errorf("%w: model %s expects %d features, vectorizer has %d",
			errors.ErrDimensionMismatch, m.Name(), m.Dim(), v.Dim())
	}
	if mv := m.VocabularyVersion(); mv != "" && mv != v.Version() {
		return fmt.Errorf("%w: model %s trained on vocabulary %q, vectorizer is %q",
			errors.ErrDimensionMismatch, m.Name(), mv, v.Version())
	}
	return nil
}
