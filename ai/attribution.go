package ai

import (
	"sort"
	"strings"

	"jobshield/domain"
)

const (
	attributionCandidates = 15
	maxRiskFactors        = 8
)

// taxonomy maps phrases to categories. Order matters: the first category
// whose keyword appears inside the phrase wins.
var taxonomy = []struct {
	category domain.RiskCategory
	keywords []string
}{
	{domain.CategoryFinancial, []string{
		"fee", "payment", "bank", "wire", "money", "cost", "invest",
		"pay", "cash", "earn", "salary", "income", "profit", "dollar", "price",
	}},
	{domain.CategoryUrgency, []string{
		"urgent", "immediately", "hurry", "limited", "act now", "fast",
		"asap", "deadline", "expire", "quick", "rush", "today",
	}},
	{domain.CategoryIdentity, []string{
		"ssn", "social security", "bank detail", "personal info",
		"passport", "id card", "credit card", "account number", "dob",
	}},
	{domain.CategoryVague, []string{
		"easy", "anyone", "no experience", "no skill", "simple",
		"work from home", "guaranteed", "unlimited",
	}},
}

func categorize(phrase string) domain.RiskCategory {
	lower := strings.ToLower(phrase)
	for _, entry := range taxonomy {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}
	return domain.CategorySuspicious
}

// Attribute explains a verdict: per-feature contribution = value * weight,
// top candidates by contribution descending, only risk-increasing signals,
// deduplicated by phrase, capped at maxRiskFactors. Ties keep the
// vectorizer's native feature order. Models without introspection yield an
// empty list rather than an error.
func Attribute(model Model, vectorizer *Vectorizer, vec FeatureVector) []domain.RiskFactor {
	weights, ok := model.Explain()
	if !ok {
		return nil
	}

	type contribution struct {
		idx   int
		value float64
	}
	contribs := make([]contribution, 0, len(vec.Values))
	for idx, val := range vec.Values {
		if idx >= len(weights) {
			continue
		}
		if c := val * weights[idx]; c > 0 {
			contribs = append(contribs, contribution{idx: idx, value: c})
		}
	}

	// Native feature order first, then a stable sort by contribution so
	// equal contributions keep that order.
	sort.Slice(contribs, func(i, j int) bool { return contribs[i].idx < contribs[j].idx })
	sort.SliceStable(contribs, func(i, j int) bool { return contribs[i].value > contribs[j].value })
	if len(contribs) > attributionCandidates {
		contribs = contribs[:attributionCandidates]
	}

	factors := make([]domain.RiskFactor, 0, maxRiskFactors)
	seen := make(map[string]struct{}, len(contribs))
	for _, c := range contribs {
		phrase := vectorizer.FeatureName(c.idx)
		if len(phrase) < 2 {
			continue
		}
		if _, dup := seen[phrase]; dup {
			continue
		}
		seen[phrase] = struct{}{}

		factors = append(factors, domain.RiskFactor{
			Phrase:   phrase,
			Category: categorize(phrase),
			Weight:   c.value,
		})
		if len(factors) == maxRiskFactors {
			break
		}
	}
	return factors
}
