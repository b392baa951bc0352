package domain

// DailyBreakdown is one day of verdict volume split by label.
type DailyBreakdown struct {
	Date  string `json:"date"`
	Total int    `json:"total"`
	Fake  int    `json:"fake"`
	Real  int    `json:"real"`
}

// StatsReport summarizes the whole verdict history for dashboards.
type StatsReport struct {
	TotalPredictions int              `json:"total_predictions"`
	TotalFake        int              `json:"total_fake"`
	TotalReal        int              `json:"total_real"`
	FakePercentage   float64          `json:"fake_percentage"`
	DailyTrend       []DailyBreakdown `json:"daily_trend"`
}

// SearchHit is one full-text search result over stored verdicts.
type SearchHit struct {
	ID         string  `json:"id"`
	Label      Label   `json:"prediction"`
	Preview    string  `json:"preview"`
	Confidence float64 `json:"confidence"`
}
