package ai

import (
	"math"

	"jobshield/domain"
)

// Capability is the closed set of model variants. The variant is selected
// once at load time; there is no call-time probing of model abilities.
type Capability string

const (
	CapabilityProbabilistic Capability = "probabilistic"
	CapabilityLinear        Capability = "linear"
	CapabilityTree          Capability = "tree"
	CapabilityOpaque        Capability = "opaque"
)

type Prediction struct {
	Label      domain.Label
	Confidence float64
	// Degraded is set when the confidence is the configured fallback
	// rather than a posterior probability.
	Degraded bool
}

// Model is a loaded classifier. Implementations are immutable after load;
// concurrent Predict calls are safe.
type Model interface {
	Name() string
	Capability() Capability
	Dim() int
	VocabularyVersion() string
	Predict(vec FeatureVector) Prediction
	// Explain returns per-feature weights for attribution: linear
	// coefficients, or tree importances as a lower-fidelity substitute.
	// ok is false when the model exposes no introspection.
	Explain() (weights []float64, ok bool)
}

func dot(vec FeatureVector, weights []float64) float64 {
	var sum float64
	for idx, val := range vec.Values {
		if idx < len(weights) {
			sum += val * weights[idx]
		}
	}
	return sum
}

func sigmoid(z float64) float64 { return 1 / (1 + math.Exp(-z)) }

func labelFor(fakeProb float64) domain.Label {
	if fakeProb >= 0.5 {
		return domain.LabelFake
	}
	return domain.LabelReal
}

// ProbabilisticModel is a logistic-regression classifier: coefficients plus
// bias, posterior via sigmoid. Confidence is the maximum class posterior.
type ProbabilisticModel struct {
	name         string
	weights      []float64
	bias         float64
	vocabVersion string
}

func NewProbabilisticModel(name string, weights []float64, bias float64, vocabVersion string) *ProbabilisticModel {
	return &ProbabilisticModel{name: name, weights: weights, bias: bias, vocabVersion: vocabVersion}
}

func (m *ProbabilisticModel) Name() string              { return m.name }
func (m *ProbabilisticModel) Capability() Capability    { return CapabilityProbabilistic }
func (m *ProbabilisticModel) Dim() int                  { return len(m.weights) }
func (m *ProbabilisticModel) VocabularyVersion() string { return m.vocabVersion }

func (m *ProbabilisticModel) Predict(vec FeatureVector) Prediction {
	p := sigmoid(dot(vec, m.weights) + m.bias)
	return Prediction{Label: labelFor(p), Confidence: math.Max(p, 1-p)}
}

func (m *ProbabilisticModel) Explain() ([]float64, bool) { return m.weights, true }

// LinearModel is a margin classifier (SVM-style): it exposes coefficients
// for attribution but no posterior, so confidence is the configured
// fallback value and the prediction is flagged degraded.
type LinearModel struct {
	name         string
	weights      []float64
	bias         float64
	vocabVersion string
	fallback     float64
}

func NewLinearModel(name string, weights []float64, bias float64, vocabVersion string, fallback float64) *LinearModel {
	return &LinearModel{name: name, weights: weights, bias: bias, vocabVersion: vocabVersion, fallback: fallback}
}

func (m *LinearModel) Name() string              { return m.name }
func (m *LinearModel) Capability() Capability    { return CapabilityLinear }
func (m *LinearModel) Dim() int                  { return len(m.weights) }
func (m *LinearModel) VocabularyVersion() string { return m.vocabVersion }

func (m *LinearModel) Predict(vec FeatureVector) Prediction {
	margin := dot(vec, m.weights) + m.bias
	label := domain.LabelReal
	if margin > 0 {
		label = domain.LabelFake
	}
	return Prediction{Label: label, Confidence: m.fallback, Degraded: true}
}

func (m *LinearModel) Explain() ([]float64, bool) { return m.weights, true }

// TreeNode is one node of a decision tree. Left == -1 marks a leaf, whose
// Value holds the [real, fake] class distribution.
type TreeNode struct {
	Feature   int        `json:"feature"`
	Threshold float64    `json:"threshold"`
	Left      int        `json:"left"`
	Right     int        `json:"right"`
	Value     [2]float64 `json:"value"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t Tree) fakeProb(vec FeatureVector) float64 {
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.Left < 0 {
			total := node.Value[0] + node.Value[1]
			if total == 0 {
				return 0
			}
			return node.Value[1] / total
		}
		if vec.Values[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// TreeModel is a forest whose posterior is the mean of per-tree leaf
// distributions. Explain returns feature importances, a lower-fidelity
// substitute for coefficients.
type TreeModel struct {
	name         string
	trees        []Tree
	importances  []float64
	vocabVersion string
}

func NewTreeModel(name string, trees []Tree, importances []float64, vocabVersion string) *TreeModel {
	return &TreeModel{name: name, trees: trees, importances: importances, vocabVersion: vocabVersion}
}

func (m *TreeModel) Name() string              { return m.name }
func (m *TreeModel) Capability() Capability    { return CapabilityTree }
func (m *TreeModel) Dim() int                  { return len(m.importances) }
func (m *TreeModel) VocabularyVersion() string { return m.vocabVersion }

func (m *TreeModel) Predict(vec FeatureVector) Prediction {
	if len(m.trees) == 0 {
		return Prediction{Label: domain.LabelReal, Confidence: 0.5, Degraded: true}
	}
	var sum float64
	for _, t := range m.trees {
		sum += t.fakeProb(vec)
	}
	p := sum / float64(len(m.trees))
	return Prediction{Label: labelFor(p), Confidence: math.Max(p, 1-p)}
}

func (m *TreeModel) Explain() ([]float64, bool) { return m.importances, true }

// OpaqueModel wraps a decision rule with no introspection at all. It is the
// designed degraded branch: fallback confidence, empty attribution.
type OpaqueModel struct {
	name         string
	weights      []float64
	bias         float64
	vocabVersion string
	fallback     float64
}

func NewOpaqueModel(name string, weights []float64, bias float64, vocabVersion string, fallback float64) *OpaqueModel {
	return &OpaqueModel{name: name, weights: weights, bias: bias, vocabVersion: vocabVersion, fallback: fallback}
}

func (m *OpaqueModel) Name() string              { return m.name }
func (m *OpaqueModel) Capability() Capability    { return CapabilityOpaque }
func (m *OpaqueModel) Dim() int                  { return len(m.weights) }
func (m *OpaqueModel) VocabularyVersion() string { return m.vocabVersion }

func (m *OpaqueModel) Predict(vec FeatureVector) Prediction {
	label := domain.LabelReal
	if dot(vec, m.weights)+m.bias > 0 {
		label = domain.LabelFake
	}
	return Prediction{Label: label, Confidence: m.fallback, Degraded: true}
}

func (m *OpaqueModel) Explain() ([]float64, bool) { return nil, false }
