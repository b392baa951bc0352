package ingest

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os/exec"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gabriel-vasile/mimetype"

	"jobshield/errors"
)

const (
	maxImageBytes     = 10 << 20
	minExtractedChars = 20
)

var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
	"image/bmp":  {},
	"image/tiff": {},
}

// Engine extracts text from an image. Availability is probed once so an
// absent engine is a designed degraded branch, not a per-call surprise.
type Engine interface {
	Available() bool
	ExtractText(ctx context.Context, img []byte) (string, error)
}

// TesseractEngine shells out to the tesseract binary when present.
type TesseractEngine struct {
	binary string
}

func NewTesseractEngine() *TesseractEngine {
	path, err := exec.LookPath("tesseract")
	if err != nil {
		return &TesseractEngine{}
	}
	return &TesseractEngine{binary: path}
}

func (e *TesseractEngine) Available() bool { return e.binary != "" }

func (e *TesseractEngine) ExtractText(ctx context.Context, img []byte) (string, error) {
	if e.binary == "" {
		return "", fmt.Errorf("tesseract binary not found")
	}
	cmd := exec.CommandContext(ctx, e.binary, "stdin", "stdout")
	cmd.Stdin = bytes.NewReader(img)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ExtractedImage is the OCR adapter output. Degraded marks the stub path
// where no OCR engine produced the text.
type ExtractedImage struct {
	Text     string
	Width    int
	Height   int
	Degraded bool
}

type ImageAdapter struct {
	engine Engine
	log    *slog.Logger
}

func NewImageAdapter(engine Engine, log *slog.Logger) *ImageAdapter {
	return &ImageAdapter{engine: engine, log: log}
}

// Extract validates the upload and attempts OCR. The content type is
// sniffed from the bytes, never trusted from the caller. When the engine is
// unavailable the adapter falls back to a dimension stub instead of
// failing; the stub is short enough that the minimum-length gate below
// rejects it with guidance.
func (a *ImageAdapter) Extract(ctx context.Context, data []byte, declaredType string) (ExtractedImage, error) {
	if len(data) > maxImageBytes {
		return ExtractedImage{}, errors.Input(errors.StageIngestImage,
			fmt.Errorf("%w: max %d MB", errors.ErrImageTooLarge, maxImageBytes>>20))
	}

	detected := mimetype.Detect(data)
	base := strings.Split(detected.String(), ";")[0]
	if _, ok := allowedImageTypes[base]; !ok {
		return ExtractedImage{}, errors.Input(errors.StageIngestImage,
			fmt.Errorf("%w: %s (declared %s), use PNG, JPEG, WebP, BMP or TIFF",
				errors.ErrUnsupportedImage, base, declaredType))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ExtractedImage{}, errors.Input(errors.StageIngestImage,
			fmt.Errorf("could not process image: %w", err))
	}
	extracted := ExtractedImage{Width: cfg.Width, Height: cfg.Height}

	if a.engine != nil && a.engine.Available() {
		text, err := a.engine.ExtractText(ctx, data)
		if err == nil {
			extracted.Text = text
		} else {
			a.log.Warn("ocr extraction failed, using fallback stub", "error", err)
		}
	}
	if extracted.Text == "" {
		extracted.Text = fmt.Sprintf("[image %dx%d]", cfg.Width, cfg.Height)
		extracted.Degraded = true
	}

	if len(strings.TrimSpace(extracted.Text)) < minExtractedChars {
		reason := errors.ErrExtractionTooShort
		if extracted.Degraded {
			return ExtractedImage{}, errors.Input(errors.StageIngestImage,
				fmt.Errorf("%w: no OCR engine installed (%s), install tesseract or paste the text manually",
					reason, extracted.Text))
		}
		return ExtractedImage{}, errors.Input(errors.StageIngestImage,
			fmt.Errorf("%w: try a clearer screenshot or paste the text manually", reason))
	}
	return extracted, nil
}
