package errors

import (
	stderrors "errors"
	"fmt"
)

// Stage identifies the pipeline step an error originated from.
// It is part of the error contract so a transport layer can map failures
// without this core knowing anything about status codes.
type Stage string

const (
	StageNormalize   Stage = "normalize"
	StageInference   Stage = "inference"
	StageAttribution Stage = "attribution"
	StageIngestURL   Stage = "ingest_url"
	StageIngestImage Stage = "ingest_image"
	StageIngestBatch Stage = "ingest_batch"
	StageTrends      Stage = "trends"
	StageCompany     Stage = "company"
	StageStorage     Stage = "storage"
)

// Kind classifies an error independently of where it happened.
type Kind string

const (
	// KindInput covers malformed or insufficient caller input. Recovered
	// locally, never retried.
	KindInput Kind = "input"
	// KindFetch covers remote fetch failures (network, non-success status).
	KindFetch Kind = "fetch"
	// KindUnavailable covers missing required artifacts. Remediation is
	// administrative, not request correction.
	KindUnavailable Kind = "unavailable"
)

var (
	ErrEmptyText          = fmt.Errorf("text is empty after normalization")
	ErrTextTooShort       = fmt.Errorf("text is too short to analyze")
	ErrContentTooShort    = fmt.Errorf("could not extract enough text from the page")
	ErrExtractionTooShort = fmt.Errorf("could not extract enough text from the image")
	ErrImageTooLarge      = fmt.Errorf("image exceeds the maximum upload size")
	ErrUnsupportedImage   = fmt.Errorf("unsupported image type")
	ErrMalformedBatch     = fmt.Errorf("batch file is malformed")
	ErrEmptyCompanyName   = fmt.Errorf("company name is required")
	ErrModelMissing       = fmt.Errorf("model artifact not available")
	ErrVectorizerMissing  = fmt.Errorf("vectorizer artifact not available")
	ErrDimensionMismatch  = fmt.Errorf("vectorizer dimension does not match model input dimension")
)

// StageError wraps a cause with the stage and kind needed by callers.
type StageError struct {
	Stage Stage
	Kind  Kind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func Input(stage Stage, err error) error {
	return &StageError{Stage: stage, Kind: KindInput, Err: err}
}

func Fetch(stage Stage, err error) error {
	return &StageError{Stage: stage, Kind: KindFetch, Err: err}
}

func Unavailable(stage Stage, err error) error {
	return &StageError{Stage: stage, Kind: KindUnavailable, Err: err}
}

// KindOf extracts the classification of err, if it carries one.
func KindOf(err error) (Kind, bool) {
	var se *StageError
	if stderrors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}

// StageOf extracts the originating stage of err, if it carries one.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if stderrors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

func IsInput(err error) bool       { k, ok := KindOf(err); return ok && k == KindInput }
func IsFetch(err error) bool       { k, ok := KindOf(err); return ok && k == KindFetch }
func IsUnavailable(err error) bool { k, ok := KindOf(err); return ok && k == KindUnavailable }
