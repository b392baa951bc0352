package domain

// KnownCompany is one record of the static legitimacy registry.
// The registry file schema is owned externally; unknown fields are ignored.
type KnownCompany struct {
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	Country  string `json:"country,omitempty"`
	Website  string `json:"website,omitempty"`
}

type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchPartial MatchType = "partial"
	MatchSimilar MatchType = "similar"
	MatchNone    MatchType = "none"
)

// CompanyVerdict is the outcome of checking an employer name against
// the registry. Confidence is a 0-100 similarity percentage.
type CompanyVerdict struct {
	Verified       bool          `json:"verified"`
	MatchType      MatchType     `json:"match_type"`
	Confidence     float64       `json:"confidence"`
	MatchedCompany *KnownCompany `json:"matched_company"`
	Warning        string        `json:"warning,omitempty"`
}
