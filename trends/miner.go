package trends

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"

	"jobshield/domain"
	"jobshield/errors"
)

const (
	maxWindowDays   = 90
	defaultDays     = 30
	maxDocuments    = 500
	maxPatterns     = 10
	maxKeywords     = 15
	dailyWindowDays = 7
	severityHighPct = 30.0
	severityMedPct  = 10.0
)

// VerdictSource is the slice of the storage collaborator trend mining
// needs: recent Fake verdicts, most recent first, bounded.
type VerdictSource interface {
	RecentFake(ctx context.Context, windowDays, limit int) ([]domain.VerdictRecord, error)
	DailyFakeCounts(ctx context.Context, sinceDays int) ([]domain.DailyCount, error)
}

// Miner aggregates historical Fake verdicts into ranked scam statistics.
// One Aho-Corasick pass per document finds every keyword; the declared
// pattern and keyword order then decides which hit counts.
type Miner struct {
	source   VerdictSource
	patterns []ScamPattern
	matcher  *goahocorasick.Machine
	log      *slog.Logger
}

func NewMiner(source VerdictSource, log *slog.Logger) (*Miner, error) {
	var dict [][]rune
	for _, p := range ScamPatterns {
		for _, kw := range p.Keywords {
			dict = append(dict, []rune(strings.ToLower(kw)))
		}
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(dict); err != nil {
		return nil, err
	}
	return &Miner{source: source, patterns: ScamPatterns, matcher: m, log: log}, nil
}

// Mine reads the most recent Fake verdicts within the window (capped at
// maxWindowDays, maxDocuments) and ranks patterns and keywords. A window
// with zero fake documents yields an explicit empty report.
func (m *Miner) Mine(ctx context.Context, days int) (domain.TrendReport, error) {
	if days <= 0 {
		days = defaultDays
	}
	window := days
	if window > maxWindowDays {
		window = maxWindowDays
	}

	docs, err := m.source.RecentFake(ctx, window, maxDocuments)
	if err != nil {
		return domain.TrendReport{}, errors.Unavailable(errors.StageTrends, err)
	}

	report := domain.TrendReport{
		PeriodDays:        days,
		TotalFakeDetected: len(docs),
		Patterns:          []domain.PatternStat{},
		TopKeywords:       []domain.KeywordStat{},
		DailyTrend:        []domain.DailyCount{},
	}
	if len(docs) == 0 {
		return report, nil
	}

	patternCounts := make([]int, len(m.patterns))
	keywordCounts := make(map[string]int)

	for _, doc := range docs {
		present := m.keywordsIn(doc.Text)
		// First present keyword per pattern counts; one document
		// increments a pattern at most once.
		for i, pattern := range m.patterns {
			for _, kw := range pattern.Keywords {
				if present[kw] {
					patternCounts[i]++
					keywordCounts[kw]++
					break
				}
			}
		}
	}

	total := float64(len(docs))
	order := make([]int, 0, len(m.patterns))
	for i, count := range patternCounts {
		if count > 0 {
			order = append(order, i)
		}
	}
	// Declaration order breaks count ties.
	sort.SliceStable(order, func(a, b int) bool {
		return patternCounts[order[a]] > patternCounts[order[b]]
	})
	if len(order) > maxPatterns {
		order = order[:maxPatterns]
	}
	for _, i := range order {
		pct := float64(patternCounts[i]) / total * 100
		report.Patterns = append(report.Patterns, domain.PatternStat{
			Pattern:    m.patterns[i].Name,
			Count:      patternCounts[i],
			Percentage: math.Round(pct*10) / 10,
			Severity:   severityFor(pct),
		})
	}

	report.TopKeywords = rankKeywords(m.patterns, keywordCounts)

	daily, err := m.source.DailyFakeCounts(ctx, dailyWindowDays)
	if err != nil {
		return domain.TrendReport{}, errors.Unavailable(errors.StageTrends, err)
	}
	report.DailyTrend = daily

	m.log.Debug("trend report mined",
		"window_days", window, "documents", len(docs), "patterns", len(report.Patterns))
	return report, nil
}

// keywordsIn runs one automaton pass over the lowercased text and reports
// which catalog keywords occur at least once.
func (m *Miner) keywordsIn(text string) map[string]bool {
	hits := m.matcher.MultiPatternSearch([]rune(strings.ToLower(text)), false)
	present := make(map[string]bool, len(hits))
	for _, hit := range hits {
		present[string(hit.Word)] = true
	}
	return present
}

func rankKeywords(patterns []ScamPattern, counts map[string]int) []domain.KeywordStat {
	// Catalog order makes tie ranking deterministic.
	stats := make([]domain.KeywordStat, 0, len(counts))
	for _, p := range patterns {
		for _, kw := range p.Keywords {
			if c := counts[kw]; c > 0 {
				stats = append(stats, domain.KeywordStat{Keyword: kw, Count: c})
			}
		}
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	if len(stats) > maxKeywords {
		stats = stats[:maxKeywords]
	}
	return stats
}

func severityFor(pct float64) domain.Severity {
	switch {
	case pct > severityHighPct:
		return domain.SeverityHigh
	case pct > severityMedPct:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}
