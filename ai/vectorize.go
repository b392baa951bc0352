package ai

import (
	"fmt"
	"strings"
	"unicode"
)

// FeatureVector is a sparse numeric vector over a fixed vocabulary.
// Dim always equals the owning vectorizer's vocabulary size.
type FeatureVector struct {
	Dim    int
	Values map[int]float64
}

// Vectorizer maps normalized text onto TF-IDF features using a pre-fitted
// vocabulary. It holds no mutable state: the same input always produces the
// same vector. Vocabulary terms may be unigrams or bigrams.
type Vectorizer struct {
	vocabulary map[string]int
	terms      []string
	idf        []float64
	version    string
}

func NewVectorizer(terms []string, idf []float64, version string) (*Vectorizer, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("vectorizer vocabulary is empty")
	}
	if len(idf) != len(terms) {
		return nil, fmt.Errorf("idf table has %d entries for %d terms", len(idf), len(terms))
	}
	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}
	return &Vectorizer{vocabulary: vocab, terms: terms, idf: idf, version: version}, nil
}

func (v *Vectorizer) Dim() int        { return len(v.terms) }
func (v *Vectorizer) Version() string { return v.version }

// FeatureName returns the vocabulary term at idx, used by attribution to
// turn contributing indices back into phrases.
func (v *Vectorizer) FeatureName(idx int) string {
	if idx < 0 || idx >= len(v.terms) {
		return ""
	}
	return v.terms[idx]
}

// Transform converts text into its feature vector. Tokens are lowercased
// letter/digit runs; unigrams and adjacent bigrams are looked up against
// the vocabulary, weighted tf * idf.
func (v *Vectorizer) Transform(text string) FeatureVector {
	tokens := tokenize(text)
	vec := FeatureVector{Dim: len(v.terms), Values: make(map[int]float64)}
	if len(tokens) == 0 {
		return vec
	}

	counts := make(map[string]float64)
	for i, tok := range tokens {
		counts[tok]++
		if i > 0 {
			counts[tokens[i-1]+" "+tok]++
		}
	}

	total := float64(len(tokens))
	for term, count := range counts {
		idx, ok := v.vocabulary[term]
		if !ok {
			continue
		}
		vec.Values[idx] = (count / total) * v.idf[idx]
	}
	return vec
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '$'
	})
}
