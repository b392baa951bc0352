package domain

// BatchRowStatus is the per-row outcome of a bulk analysis.
// Skipped rows are excluded from fraud-rate totals.
const (
	BatchSkipped = "Skipped"
)

type BatchRow struct {
	Row        int     `json:"row"`
	Preview    string  `json:"preview"`
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
}

type BatchResult struct {
	TotalAnalyzed int        `json:"total_analyzed"`
	TotalFake     int        `json:"total_fake"`
	TotalReal     int        `json:"total_real"`
	FraudRate     float64    `json:"fraud_rate"`
	Rows          []BatchRow `json:"results"`
}
