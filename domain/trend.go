package domain

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

type PatternStat struct {
	Pattern    string   `json:"pattern"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
	Severity   Severity `json:"severity"`
}

type KeywordStat struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// DailyCount is one day of fake-verdict volume, date formatted 2006-01-02.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TrendReport aggregates recent Fake verdicts into ranked scam statistics.
type TrendReport struct {
	PeriodDays        int           `json:"period_days"`
	TotalFakeDetected int           `json:"total_fake_detected"`
	Patterns          []PatternStat `json:"patterns"`
	TopKeywords       []KeywordStat `json:"top_keywords"`
	DailyTrend        []DailyCount  `json:"daily_trend"`
}
