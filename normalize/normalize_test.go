package normalize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"jobshield/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// spanishPosting is long enough for reliable language detection.
const spanishPosting = "Buscamos un asistente de datos para trabajar desde casa. " +
	"El candidato ideal debe enviar una tarifa inicial para recibir el equipo " +
	"de trabajo y comenzar inmediatamente con el puesto ofrecido."

func TestCanonicalize(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		description string
		raw         string
		want        string
	}{
		{
			"Should strip HTML tags",
			"<p>Earn <b>money</b> fast</p>",
			"earn money fast",
		},
		{
			"Should decode HTML entities",
			"Sales &amp; Marketing",
			"sales & marketing",
		},
		{
			"Should collapse whitespace and lowercase",
			"  URGENT\n\t hiring   NOW ",
			"urgent hiring now",
		},
		{
			"Should return empty for markup-only input",
			"<div><br/></div>",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req.Equal(tt.want, canonicalize(tt.raw))
		})
	}
}

func TestNormalizer_EnglishPassesThrough(t *testing.T) {
	req := require.New(t)
	normalizer := NewNormalizer(nil, testLogger())

	doc := normalizer.Normalize(context.Background(),
		"We are hiring a remote data entry assistant to start immediately with our growing team.")

	req.Equal("en", doc.DetectedLanguage)
	req.False(doc.WasTranslated)
	req.Empty(doc.Warnings)
	req.Contains(doc.Text, "data entry assistant")
}

func TestNormalizer_TranslatesForeignText(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	translator := mocks.NewMockTranslator(ctrl)
	translator.EXPECT().
		Translate(gomock.Any(), gomock.Any(), "en").
		Return("We are looking for a data assistant to work from home.", nil)

	normalizer := NewNormalizer(translator, testLogger())
	doc := normalizer.Normalize(context.Background(), spanishPosting)

	req.Equal("es", doc.DetectedLanguage)
	req.True(doc.WasTranslated)
	req.Equal("we are looking for a data assistant to work from home.", doc.Text)
	req.Empty(doc.Warnings)
}

func TestNormalizer_TranslationFailureKeepsOriginal(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	translator := mocks.NewMockTranslator(ctrl)
	translator.EXPECT().
		Translate(gomock.Any(), gomock.Any(), "en").
		Return("", fmt.Errorf("endpoint down"))

	normalizer := NewNormalizer(translator, testLogger())
	doc := normalizer.Normalize(context.Background(), spanishPosting)

	req.Equal("es", doc.DetectedLanguage)
	req.False(doc.WasTranslated)
	req.Contains(doc.Text, "asistente de datos")
	req.Len(doc.Warnings, 1)
	req.Contains(doc.Warnings[0], "translation unavailable")
}

func TestNormalizer_NoTranslatorConfigured(t *testing.T) {
	req := require.New(t)
	normalizer := NewNormalizer(nil, testLogger())

	doc := normalizer.Normalize(context.Background(), spanishPosting)

	req.Equal("es", doc.DetectedLanguage)
	req.False(doc.WasTranslated)
	req.Len(doc.Warnings, 1)
	req.Contains(doc.Warnings[0], "not configured")
}

func TestNormalizer_EmptyInput(t *testing.T) {
	req := require.New(t)
	normalizer := NewNormalizer(nil, testLogger())

	doc := normalizer.Normalize(context.Background(), "   <p></p>  ")
	req.Empty(doc.Text)
	req.Empty(doc.DetectedLanguage)
}
