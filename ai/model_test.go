package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"jobshield/domain"
)

func vecOf(values map[int]float64, dim int) FeatureVector {
	return FeatureVector{Dim: dim, Values: values}
}

func TestProbabilisticModel_Predict(t *testing.T) {
	req := require.New(t)
	model := NewProbabilisticModel("model_a", []float64{2, -1}, 0, "v1")

	tests := []struct {
		description string
		vec         FeatureVector
		wantLabel   domain.Label
	}{
		{
			"Should predict Fake on positive logit",
			vecOf(map[int]float64{0: 1}, 2),
			domain.LabelFake,
		},
		{
			"Should predict Real on negative logit",
			vecOf(map[int]float64{1: 1}, 2),
			domain.LabelReal,
		},
		{
			"Should predict Fake on zero logit",
			vecOf(map[int]float64{}, 2),
			domain.LabelFake,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			p := model.Predict(tt.vec)
			req.Equal(tt.wantLabel, p.Label)
			req.GreaterOrEqual(p.Confidence, 0.5)
			req.LessOrEqual(p.Confidence, 1.0)
			req.False(p.Degraded)
		})
	}
}

func TestProbabilisticModel_ConfidenceIsMaxPosterior(t *testing.T) {
	req := require.New(t)
	model := NewProbabilisticModel("model_a", []float64{2}, 0, "v1")

	p := model.Predict(vecOf(map[int]float64{0: 1}, 1))
	// sigmoid(2) ~ 0.8808
	req.InDelta(0.8808, p.Confidence, 0.0001)

	p = model.Predict(vecOf(map[int]float64{0: -1}, 1))
	// sigmoid(-2) ~ 0.1192, confidence flips to the Real posterior.
	req.Equal(domain.LabelReal, p.Label)
	req.InDelta(0.8808, p.Confidence, 0.0001)
}

func TestLinearModel_Predict(t *testing.T) {
	req := require.New(t)
	model := NewLinearModel("model_a", []float64{1}, -0.5, "v1", 0.85)

	fake := model.Predict(vecOf(map[int]float64{0: 1}, 1))
	req.Equal(domain.LabelFake, fake.Label)
	req.Equal(0.85, fake.Confidence)
	req.True(fake.Degraded)

	real := model.Predict(vecOf(map[int]float64{}, 1))
	req.Equal(domain.LabelReal, real.Label)
	req.Equal(0.85, real.Confidence)
	req.True(real.Degraded)
}

func TestTreeModel_Predict(t *testing.T) {
	req := require.New(t)

	// One split on feature 0: low values land on a mostly-real leaf,
	// high values on an all-fake leaf.
	tree := Tree{Nodes: []TreeNode{
		{Feature: 0, Threshold: 0.5, Left: 1, Right: 2},
		{Left: -1, Right: -1, Value: [2]float64{3, 1}},
		{Left: -1, Right: -1, Value: [2]float64{0, 4}},
	}}
	model := NewTreeModel("model_a", []Tree{tree}, []float64{0.9}, "v1")

	fake := model.Predict(vecOf(map[int]float64{0: 0.8}, 1))
	req.Equal(domain.LabelFake, fake.Label)
	req.InDelta(1.0, fake.Confidence, 1e-9)
	req.False(fake.Degraded)

	real := model.Predict(vecOf(map[int]float64{}, 1))
	req.Equal(domain.LabelReal, real.Label)
	req.InDelta(0.75, real.Confidence, 1e-9)
}

func TestTreeModel_ForestAveragesTrees(t *testing.T) {
	req := require.New(t)

	fakeLeaf := Tree{Nodes: []TreeNode{{Left: -1, Right: -1, Value: [2]float64{0, 1}}}}
	realLeaf := Tree{Nodes: []TreeNode{{Left: -1, Right: -1, Value: [2]float64{1, 0}}}}

	model := NewTreeModel("model_a", []Tree{fakeLeaf, fakeLeaf, realLeaf, realLeaf}, []float64{1}, "v1")
	p := model.Predict(vecOf(map[int]float64{}, 1))
	// Split forest, fakeProb 0.5 rounds toward Fake.
	req.Equal(domain.LabelFake, p.Label)
	req.InDelta(0.5, p.Confidence, 1e-9)
}

func TestTreeModel_EmptyForest(t *testing.T) {
	req := require.New(t)
	model := NewTreeModel("model_a", nil, []float64{1}, "v1")

	p := model.Predict(vecOf(map[int]float64{0: 1}, 1))
	req.Equal(domain.LabelReal, p.Label)
	req.True(p.Degraded)
}

func TestOpaqueModel_Predict(t *testing.T) {
	req := require.New(t)
	model := NewOpaqueModel("model_c", []float64{1}, 0, "v1", 0.85)

	p := model.Predict(vecOf(map[int]float64{0: 2}, 1))
	req.Equal(domain.LabelFake, p.Label)
	req.Equal(0.85, p.Confidence)
	req.True(p.Degraded)

	weights, ok := model.Explain()
	req.False(ok)
	req.Nil(weights)
}
