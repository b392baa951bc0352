//go:generate go run go.uber.org/mock/mockgen -source=detection_service.go -destination=../mocks/mock_detection_service.go -package=mocks
package services

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"jobshield/ai"
	"jobshield/company"
	"jobshield/domain"
	"jobshield/errors"
	"jobshield/ingest"
	"jobshield/normalize"
	"jobshield/repositories"
	"jobshield/trends"
)

const (
	minTextChars    = 10
	previewChars    = 500
	rowPreviewChars = 100
)

type IDetectionService interface {
	Analyze(ctx context.Context, text, userID string) (domain.Verdict, error)
	AnalyzeURL(ctx context.Context, url, userID string) (domain.Verdict, error)
	AnalyzeImage(ctx context.Context, img []byte, contentType, userID string) (domain.Verdict, error)
	AnalyzeBatch(ctx context.Context, file []byte, userID string) (domain.BatchResult, error)
	MineTrends(ctx context.Context, days int) (domain.TrendReport, error)
	VerifyCompany(name string) (domain.CompanyVerdict, error)
	Stats(ctx context.Context) (domain.StatsReport, error)
	SearchVerdicts(ctx context.Context, query string, limit int) ([]domain.SearchHit, error)
	RecentByUser(ctx context.Context, userID string, limit int) ([]domain.VerdictRecord, error)
	Reload(ctx context.Context) error
}

// DetectionService wires the full scoring pipeline: ingestion adapter,
// normalizer, vectorizer, models, attribution, persistence.
type DetectionService struct {
	registry   *ai.Registry
	normalizer *normalize.Normalizer
	urls       *ingest.URLAdapter
	images     *ingest.ImageAdapter
	repository repositories.IVerdictRepository
	miner      *trends.Miner
	companies  *company.Matcher
	log        *slog.Logger
}

func NewDetectionService(
	registry *ai.Registry,
	normalizer *normalize.Normalizer,
	urls *ingest.URLAdapter,
	images *ingest.ImageAdapter,
	repository repositories.IVerdictRepository,
	miner *trends.Miner,
	companies *company.Matcher,
	log *slog.Logger,
) *DetectionService {
	return &DetectionService{
		registry:   registry,
		normalizer: normalizer,
		urls:       urls,
		images:     images,
		repository: repository,
		miner:      miner,
		companies:  companies,
		log:        log,
	}
}

// Analyze scores raw job-posting text. Text shorter than minTextChars is
// rejected before any model work happens.
func (s *DetectionService) Analyze(ctx context.Context, text, userID string) (domain.Verdict, error) {
	if len(strings.TrimSpace(text)) < minTextChars {
		return domain.Verdict{}, errors.Input(errors.StageNormalize, errors.ErrTextTooShort)
	}
	return s.run(ctx, text, userID)
}

// AnalyzeURL scrapes a posting page and scores the extracted body.
func (s *DetectionService) AnalyzeURL(ctx context.Context, url, userID string) (domain.Verdict, error) {
	posting, err := s.urls.Fetch(ctx, url)
	if err != nil {
		return domain.Verdict{}, err
	}
	verdict, err := s.run(ctx, posting.Text, userID)
	if err != nil {
		return domain.Verdict{}, err
	}
	verdict.ScrapedTitle = posting.Title
	verdict.ScrapedCompany = posting.Company
	verdict.ExtractedPreview = preview(posting.Text, previewChars)
	return verdict, nil
}

// AnalyzeImage OCRs an uploaded screenshot and scores the extracted text.
func (s *DetectionService) AnalyzeImage(ctx context.Context, img []byte, contentType, userID string) (domain.Verdict, error) {
	extracted, err := s.images.Extract(ctx, img, contentType)
	if err != nil {
		return domain.Verdict{}, err
	}
	verdict, err := s.run(ctx, extracted.Text, userID)
	if err != nil {
		return domain.Verdict{}, err
	}
	verdict.ExtractedPreview = preview(extracted.Text, previewChars)
	return verdict, nil
}

// run is the shared inference path.
func (s *DetectionService) run(ctx context.Context, text, userID string) (domain.Verdict, error) {
	set, err := s.registry.Current()
	if err != nil {
		return domain.Verdict{}, err
	}

	doc := s.normalizer.Normalize(ctx, text)
	if doc.Text == "" {
		return domain.Verdict{}, errors.Input(errors.StageNormalize, errors.ErrEmptyText)
	}

	vector := set.Vectorizer.Transform(doc.Text)
	prediction := set.Primary.Predict(vector)

	verdict := domain.Verdict{
		ID:               uuid.New(),
		Label:            prediction.Label,
		Confidence:       round4(prediction.Confidence),
		ModelUsed:        set.Primary.Name(),
		AnalyzedAt:       time.Now().UTC(),
		DetectedLanguage: doc.DetectedLanguage,
		WasTranslated:    doc.WasTranslated,
		Warnings:         doc.Warnings,
	}
	if doc.WasTranslated {
		verdict.TranslatedPreview = preview(doc.Text, previewChars)
	}
	if prediction.Degraded {
		verdict.Warnings = append(verdict.Warnings,
			"model provides no probability estimates, confidence is a fixed fallback")
	}

	verdict.RiskFactors = ai.Attribute(set.Primary, set.Vectorizer, vector)
	if verdict.RiskFactors == nil {
		if _, ok := set.Primary.Explain(); !ok {
			verdict.Warnings = append(verdict.Warnings,
				"model exposes no feature attribution, risk factors unavailable")
		}
		verdict.RiskFactors = []domain.RiskFactor{}
	}

	// The shadow opinion is attached for comparison only; it never gates
	// the primary result.
	if set.Shadow != nil {
		shadow := set.Shadow.Predict(vector)
		verdict.Shadow = lo.ToPtr(domain.ShadowResult{
			Prediction: shadow.Label,
			Confidence: round4(shadow.Confidence),
			Model:      set.Shadow.Name(),
		})
	}

	s.persist(ctx, &verdict, text, userID)
	return verdict, nil
}

// persist appends the verdict after successful inference. Storage failure
// is reported on the verdict, not as a request failure: the classification
// itself already succeeded.
func (s *DetectionService) persist(ctx context.Context, verdict *domain.Verdict, text, userID string) {
	record := domain.VerdictRecord{
		ID:         verdict.ID,
		UserID:     userID,
		Text:       text,
		Label:      verdict.Label,
		Confidence: verdict.Confidence,
		ModelUsed:  verdict.ModelUsed,
		CreatedAt:  verdict.AnalyzedAt,
	}
	if err := s.repository.Append(ctx, record); err != nil {
		s.log.Error("verdict persistence failed", "id", verdict.ID, "error", err)
		verdict.Warnings = append(verdict.Warnings, "verdict could not be persisted")
	}
}

// AnalyzeBatch scores every usable row of a delimited file. Skipped rows
// are excluded from the fraud-rate denominator.
func (s *DetectionService) AnalyzeBatch(ctx context.Context, file []byte, userID string) (domain.BatchResult, error) {
	rows, err := ingest.ParseBatch(file)
	if err != nil {
		return domain.BatchResult{}, err
	}
	// Surface a missing model before reporting per-row outcomes.
	if _, err := s.registry.Current(); err != nil {
		return domain.BatchResult{}, err
	}

	var result domain.BatchResult
	for _, row := range rows {
		if len(row.Text) < ingest.MinRowChars {
			result.Rows = append(result.Rows, skippedRow(row, "Text too short"))
			continue
		}

		verdict, err := s.run(ctx, row.Text, userID)
		if err != nil {
			if errors.IsInput(err) {
				result.Rows = append(result.Rows, skippedRow(row, "Empty after preprocessing"))
				continue
			}
			return domain.BatchResult{}, err
		}

		if verdict.Label == domain.LabelFake {
			result.TotalFake++
		} else {
			result.TotalReal++
		}
		result.Rows = append(result.Rows, domain.BatchRow{
			Row:        row.Row,
			Preview:    preview(row.Text, rowPreviewChars),
			Prediction: string(verdict.Label),
			Confidence: round2(verdict.Confidence * 100),
		})
	}

	result.TotalAnalyzed = result.TotalFake + result.TotalReal
	if result.TotalAnalyzed > 0 {
		result.FraudRate = round1(float64(result.TotalFake) / float64(result.TotalAnalyzed) * 100)
	}
	return result, nil
}

func skippedRow(row ingest.BatchRowText, reason string) domain.BatchRow {
	p := preview(row.Text, rowPreviewChars)
	if p == "" {
		p = "(empty)"
	}
	return domain.BatchRow{
		Row:        row.Row,
		Preview:    p,
		Prediction: domain.BatchSkipped,
		Reason:     reason,
	}
}

// RenderBatchCSV renders a batch result as a downloadable CSV.
func (s *DetectionService) RenderBatchCSV(result domain.BatchResult) ([]byte, error) {
	return ingest.RenderBatchCSV(result)
}

func (s *DetectionService) MineTrends(ctx context.Context, days int) (domain.TrendReport, error) {
	return s.miner.Mine(ctx, days)
}

func (s *DetectionService) VerifyCompany(name string) (domain.CompanyVerdict, error) {
	return s.companies.Verify(name)
}

// Stats summarizes the stored history for dashboards.
func (s *DetectionService) Stats(ctx context.Context) (domain.StatsReport, error) {
	fake, realCount, err := s.repository.CountByLabel(ctx)
	if err != nil {
		return domain.StatsReport{}, errors.Unavailable(errors.StageStorage, err)
	}
	daily, err := s.repository.DailyBreakdown(ctx, 30)
	if err != nil {
		return domain.StatsReport{}, errors.Unavailable(errors.StageStorage, err)
	}

	report := domain.StatsReport{
		TotalPredictions: fake + realCount,
		TotalFake:        fake,
		TotalReal:        realCount,
		DailyTrend:       daily,
	}
	if report.TotalPredictions > 0 {
		report.FakePercentage = round2(float64(fake) / float64(report.TotalPredictions) * 100)
	}
	return report, nil
}

func (s *DetectionService) SearchVerdicts(ctx context.Context, query string, limit int) ([]domain.SearchHit, error) {
	hits, err := s.repository.Search(ctx, query, limit)
	if err != nil {
		return nil, errors.Unavailable(errors.StageStorage, err)
	}
	return hits, nil
}

func (s *DetectionService) RecentByUser(ctx context.Context, userID string, limit int) ([]domain.VerdictRecord, error) {
	records, err := s.repository.RecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, errors.Unavailable(errors.StageStorage, err)
	}
	return records, nil
}

// Reload swaps in a fresh artifact generation atomically.
func (s *DetectionService) Reload(ctx context.Context) error {
	return s.registry.Reload()
}

func preview(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
