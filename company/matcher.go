package company

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"

	"jobshield/domain"
	"jobshield/errors"
)

const (
	partialThreshold = 0.8
	similarThreshold = 0.6
)

const (
	similarWarning = "Company name is similar to a known company but not an exact match. Verify independently."
	noneWarning    = "Company not found in our database. This doesn't necessarily mean it's fake - verify through official channels."
)

// Matcher checks employer names against a static registry of known
// legitimate companies. The registry is loaded once and never mutated.
type Matcher struct {
	companies []domain.KnownCompany
	log       *slog.Logger
}

func NewMatcher(companies []domain.KnownCompany, log *slog.Logger) *Matcher {
	return &Matcher{companies: companies, log: log}
}

// NewMatcherFromFile loads the registry from a JSON file: an ordered list
// of {name, ...} records whose schema is owned externally.
func NewMatcherFromFile(path string, log *slog.Logger) (*Matcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading company registry: %w", err)
	}
	var companies []domain.KnownCompany
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, fmt.Errorf("decoding company registry: %w", err)
	}
	log.Info("company registry loaded", "companies", len(companies))
	return NewMatcher(companies, log), nil
}

// Verify matches name against the registry. Case-insensitive equality
// short-circuits to an exact match; otherwise the single best edit-based
// similarity decides the band.
func (m *Matcher) Verify(name string) (domain.CompanyVerdict, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return domain.CompanyVerdict{}, errors.Input(errors.StageCompany, errors.ErrEmptyCompanyName)
	}
	query := strings.ToLower(trimmed)

	var best *domain.KnownCompany
	bestScore := 0.0
	for i := range m.companies {
		candidate := strings.ToLower(m.companies[i].Name)
		if query == candidate {
			return domain.CompanyVerdict{
				Verified:       true,
				MatchType:      domain.MatchExact,
				Confidence:     100,
				MatchedCompany: &m.companies[i],
			}, nil
		}
		if score := similarity(query, candidate); score > bestScore {
			bestScore = score
			best = &m.companies[i]
		}
	}

	confidence := math.Round(bestScore*1000) / 10
	switch {
	case bestScore >= partialThreshold:
		return domain.CompanyVerdict{
			Verified:       true,
			MatchType:      domain.MatchPartial,
			Confidence:     confidence,
			MatchedCompany: best,
		}, nil
	case bestScore >= similarThreshold:
		return domain.CompanyVerdict{
			Verified:       false,
			MatchType:      domain.MatchSimilar,
			Confidence:     confidence,
			MatchedCompany: best,
			Warning:        similarWarning,
		}, nil
	default:
		return domain.CompanyVerdict{
			Verified:  false,
			MatchType: domain.MatchNone,
			Warning:   noneWarning,
		}, nil
	}
}

// similarity is an edit-based ratio in [0,1]: 1 minus the normalized
// levenshtein distance.
func similarity(a, b string) float64 {
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	if a == b {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
