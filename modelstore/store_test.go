package modelstore

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"jobshield/ai"
	"jobshield/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDiskStore_LoadArtifact(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	store := NewDiskStore(dir, 0.85, testLogger())

	tests := []struct {
		description string
		file        string
		content     string
		capability  ai.Capability
		wantErr     bool
	}{
		{
			"Should load a probabilistic artifact",
			"model_a.json",
			`{"name":"model_a","capability":"probabilistic","vocabulary_version":"v1","weights":[0.5,-0.2],"bias":0.1}`,
			ai.CapabilityProbabilistic,
			false,
		},
		{
			"Should load a linear artifact",
			"model_b.json",
			`{"capability":"linear","vocabulary_version":"v1","weights":[1,2],"bias":-1}`,
			ai.CapabilityLinear,
			false,
		},
		{
			"Should load a tree artifact",
			"model_t.json",
			`{"capability":"tree","vocabulary_version":"v1","importances":[0.7,0.3],"trees":[{"nodes":[{"feature":0,"threshold":0.5,"left":-1,"right":-1,"value":[1,3]}]}]}`,
			ai.CapabilityTree,
			false,
		},
		{
			"Should load an opaque artifact",
			"model_o.json",
			`{"capability":"opaque","vocabulary_version":"v1","weights":[1,1]}`,
			ai.CapabilityOpaque,
			false,
		},
		{
			"Should fail on an unknown capability",
			"model_x.json",
			`{"capability":"quantum","weights":[1]}`,
			"",
			true,
		},
		{
			"Should fail on a tree artifact without trees",
			"model_e.json",
			`{"capability":"tree","importances":[1]}`,
			"",
			true,
		},
		{
			"Should fail on malformed JSON",
			"model_j.json",
			`{"capability":`,
			"",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			writeArtifact(t, dir, tt.file, tt.content)
			name := tt.file[:len(tt.file)-len(".json")]
			model, err := store.LoadArtifact(name)
			if tt.wantErr {
				req.Error(err)
				return
			}
			req.NoError(err)
			req.Equal(name, model.Name())
			req.Equal(tt.capability, model.Capability())
			req.Equal("v1", model.VocabularyVersion())
			req.Equal(2, model.Dim())
		})
	}
}

func TestDiskStore_MissingArtifact(t *testing.T) {
	req := require.New(t)
	store := NewDiskStore(t.TempDir(), 0.85, testLogger())

	_, err := store.LoadArtifact("model_a")
	req.ErrorIs(err, errors.ErrModelMissing)
}

func TestDiskStore_LoadVectorizer(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	store := NewDiskStore(dir, 0.85, testLogger())

	writeArtifact(t, dir, "vectorizer.json",
		`{"version":"v1","terms":["fee","urgent"],"idf":[1.5,0.7]}`)

	v, err := store.LoadVectorizer()
	req.NoError(err)
	req.Equal(2, v.Dim())
	req.Equal("v1", v.Version())
	req.Equal("fee", v.FeatureName(0))
}

func TestDiskStore_MissingVectorizer(t *testing.T) {
	req := require.New(t)
	store := NewDiskStore(t.TempDir(), 0.85, testLogger())

	_, err := store.LoadVectorizer()
	req.ErrorIs(err, errors.ErrVectorizerMissing)
}

func TestDiskStore_FallbackConfidenceIsApplied(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	store := NewDiskStore(dir, 0.7, testLogger())

	writeArtifact(t, dir, "model_b.json",
		`{"capability":"linear","weights":[1],"bias":1}`)

	model, err := store.LoadArtifact("model_b")
	req.NoError(err)

	p := model.Predict(ai.FeatureVector{Dim: 1, Values: map[int]float64{0: 1}})
	req.Equal(0.7, p.Confidence)
	req.True(p.Degraded)
}
