package modelstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"jobshield/ai"
	"jobshield/errors"
)

// artifact mirrors the on-disk JSON layout produced by the training
// pipeline. Only the fields relevant to the declared capability are read.
type artifact struct {
	Name              string    `json:"name"`
	Capability        string    `json:"capability"`
	VocabularyVersion string    `json:"vocabulary_version"`
	Weights           []float64 `json:"weights,omitempty"`
	Bias              float64   `json:"bias,omitempty"`
	Importances       []float64 `json:"importances,omitempty"`
	Trees             []ai.Tree `json:"trees,omitempty"`
}

type vectorizerFile struct {
	Version string    `json:"version"`
	Terms   []string  `json:"terms"`
	IDF     []float64 `json:"idf"`
}

// DiskStore loads artifacts from a directory: <dir>/<name>.json per model
// plus <dir>/vectorizer.json. It implements ai.Store.
type DiskStore struct {
	dir                string
	fallbackConfidence float64
	log                *slog.Logger
}

// NewDiskStore builds a store rooted at dir. fallbackConfidence is the
// documented confidence used by model variants without probability output.
func NewDiskStore(dir string, fallbackConfidence float64, log *slog.Logger) *DiskStore {
	return &DiskStore{dir: dir, fallbackConfidence: fallbackConfidence, log: log}
}

func (s *DiskStore) LoadArtifact(name string) (ai.Model, error) {
	path := filepath.Join(s.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrModelMissing, name)
		}
		return nil, fmt.Errorf("reading artifact %s: %w", name, err)
	}

	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("decoding artifact %s: %w", name, err)
	}
	if art.Name == "" {
		art.Name = name
	}

	model, err := s.build(art)
	if err != nil {
		return nil, err
	}
	s.log.Info("model artifact loaded",
		"name", art.Name,
		"capability", string(model.Capability()),
		"dim", model.Dim(),
		"vocabulary", art.VocabularyVersion)
	return model, nil
}

func (s *DiskStore) build(art artifact) (ai.Model, error) {
	switch ai.Capability(art.Capability) {
	case ai.CapabilityProbabilistic:
		return ai.NewProbabilisticModel(art.Name, art.Weights, art.Bias, art.VocabularyVersion), nil
	case ai.CapabilityLinear:
		return ai.NewLinearModel(art.Name, art.Weights, art.Bias, art.VocabularyVersion, s.fallbackConfidence), nil
	case ai.CapabilityTree:
		if len(art.Trees) == 0 {
			return nil, fmt.Errorf("artifact %s declares capability tree but carries no trees", art.Name)
		}
		return ai.NewTreeModel(art.Name, art.Trees, art.Importances, art.VocabularyVersion), nil
	case ai.CapabilityOpaque:
		return ai.NewOpaqueModel(art.Name, art.Weights, art.Bias, art.VocabularyVersion, s.fallbackConfidence), nil
	default:
		return nil, fmt.Errorf("artifact %s has unknown capability %q", art.Name, art.Capability)
	}
}

func (s *DiskStore) LoadVectorizer() (*ai.Vectorizer, error) {
	path := filepath.Join(s.dir, "vectorizer.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrVectorizerMissing
		}
		return nil, fmt.Errorf("reading vectorizer: %w", err)
	}

	var vf vectorizerFile
	if err := json.Unmarshal(data, &vf); err != nil {
		return nil, fmt.Errorf("decoding vectorizer: %w", err)
	}
	return ai.NewVectorizer(vf.Terms, vf.IDF, vf.Version)
}
