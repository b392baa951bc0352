//go:generate go run go.uber.org/mock/mockgen -source=normalize.go -destination=../mocks/mock_translator.go -package=mocks
package normalize

import (
	"context"
	"html"
	"log/slog"
	"regexp"
	"strings"

	"github.com/abadojack/whatlanggo"

	"jobshield/domain"
)

const targetLanguage = "en"

// Translator converts text into the target language. Implementations do
// blocking network I/O and must honor the context.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// Normalizer canonicalizes raw submissions before vectorization. The
// translator is optional: a nil or failing translator degrades gracefully,
// it never fails a request.
type Normalizer struct {
	translator Translator
	log        *slog.Logger
}

func NewNormalizer(translator Translator, log *slog.Logger) *Normalizer {
	return &Normalizer{translator: translator, log: log}
}

var (
	tagRe = regexp.MustCompile(`<[^>]+>`)
	wsRe  = regexp.MustCompile(`\s+`)
)

func canonicalize(raw string) string {
	text := html.UnescapeString(tagRe.ReplaceAllString(raw, " "))
	text = wsRe.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

// Normalize strips markup and whitespace noise, case-folds, detects the
// dominant language and, when it is not the target language, attempts
// translation. Detection or translation failure leaves the original text
// in place; the caller decides what an empty result means.
func (n *Normalizer) Normalize(ctx context.Context, raw string) domain.NormalizedDocument {
	doc := domain.NormalizedDocument{Text: canonicalize(raw)}
	if doc.Text == "" {
		return doc
	}

	info := whatlanggo.Detect(doc.Text)
	if !info.IsReliable() {
		return doc
	}
	doc.DetectedLanguage = info.Lang.Iso6391()
	if doc.DetectedLanguage == "" || doc.DetectedLanguage == targetLanguage {
		return doc
	}

	if n.translator == nil {
		doc.Warnings = append(doc.Warnings, "translation service not configured, analyzing original text")
		return doc
	}
	translated, err := n.translator.Translate(ctx, doc.Text, targetLanguage)
	if err != nil {
		n.log.Debug("translation failed, analyzing original text",
			"language", doc.DetectedLanguage, "error", err)
		doc.Warnings = append(doc.Warnings, "translation unavailable, analyzing original text")
		return doc
	}

	doc.Text = canonicalize(translated)
	doc.WasTranslated = true
	return doc
}
