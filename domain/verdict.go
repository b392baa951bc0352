package domain

import (
	"time"

	"github.com/google/uuid"
)

type Label string

const (
	LabelFake Label = "Fake"
	LabelReal Label = "Real"
)

// RiskCategory is the fixed taxonomy a risk factor phrase maps into.
type RiskCategory string

const (
	CategoryFinancial  RiskCategory = "Financial Red Flag"
	CategoryUrgency    RiskCategory = "Urgency Pressure"
	CategoryIdentity   RiskCategory = "Identity Harvesting"
	CategoryVague      RiskCategory = "Vague Description"
	CategorySuspicious RiskCategory = "Suspicious Pattern"
)

// RiskFactor is one phrase that contributed positively to a Fake verdict.
type RiskFactor struct {
	Phrase   string       `json:"phrase"`
	Category RiskCategory `json:"category"`
	Weight   float64      `json:"weight"`
}

// ShadowResult carries the secondary model's opinion. It is strictly
// observational and never influences the primary label or confidence.
type ShadowResult struct {
	Prediction Label   `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Model      string  `json:"model"`
}

// Verdict is the pipeline output for a single document.
type Verdict struct {
	ID          uuid.UUID    `json:"id"`
	Label       Label        `json:"prediction"`
	Confidence  float64      `json:"confidence"`
	ModelUsed   string       `json:"model_used"`
	RiskFactors []RiskFactor `json:"risk_factors"`
	AnalyzedAt  time.Time    `json:"analyzed_at"`

	DetectedLanguage  string `json:"detected_language,omitempty"`
	WasTranslated     bool   `json:"was_translated,omitempty"`
	TranslatedPreview string `json:"translated_text_preview,omitempty"`

	// Source metadata filled by the URL and image adapters.
	ScrapedTitle     string `json:"scraped_title,omitempty"`
	ScrapedCompany   string `json:"scraped_company,omitempty"`
	ExtractedPreview string `json:"extracted_text_preview,omitempty"`

	Shadow *ShadowResult `json:"shadow_result,omitempty"`

	// Warnings lists degraded-mode conditions the request survived
	// (no translation service, fallback confidence, missing attribution).
	Warnings []string `json:"warnings,omitempty"`
}

// NormalizedDocument is the canonical form fed to the vectorizer.
// It is immutable once produced and discarded after inference.
type NormalizedDocument struct {
	Text             string
	DetectedLanguage string
	WasTranslated    bool
	Warnings         []string
}

// VerdictRecord is what the storage collaborator persists per verdict.
type VerdictRecord struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	Text       string    `json:"job_text"`
	Label      Label     `json:"prediction"`
	Confidence float64   `json:"confidence"`
	ModelUsed  string    `json:"model_used"`
	CreatedAt  time.Time `json:"created_at"`
}
