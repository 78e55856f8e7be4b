package errorx

import (
	"errors"
	"fmt"
)

// ErrScalerParamsMissing is returned when mean/scale are absent at use time.
var ErrScalerParamsMissing = errors.New("scaler parameters not found")

// AssetLoadError is fatal: the service refuses to start without its assets.
type AssetLoadError struct {
	Asset string // model, scaler, features
	Path  string
	Err   error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("load %s asset %s: %v", e.Asset, e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// NewAssetLoadError wraps a cause with the asset kind and path.
func NewAssetLoadError(asset, path string, err error) *AssetLoadError {
	return &AssetLoadError{Asset: asset, Path: path, Err: err}
}

// FieldErrorKind tags which validation rule rejected a field.
type FieldErrorKind int

const (
	KindMissing FieldErrorKind = iota + 1
	KindNonNumeric
	KindOutOfRange
)

func (k FieldErrorKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNonNumeric:
		return "non_numeric"
	case KindOutOfRange:
		return "out_of_range"
	default:
		return "unknown"
	}
}

// FieldError is a recoverable per-request validation failure.
// Min and Max are only meaningful for KindOutOfRange.
type FieldError struct {
	Kind  FieldErrorKind
	Field string
	Min   float64
	Max   float64
}

func (e *FieldError) Error() string {
	switch e.Kind {
	case KindMissing:
		return fmt.Sprintf("Field '%s' is required.", e.Field)
	case KindNonNumeric:
		return fmt.Sprintf("Field '%s' must be numeric.", e.Field)
	case KindOutOfRange:
		return fmt.Sprintf("'%s' must be between %g and %g.", e.Field, e.Min, e.Max)
	default:
		return fmt.Sprintf("Field '%s' is invalid.", e.Field)
	}
}

// MissingField builds a KindMissing error.
func MissingField(field string) *FieldError {
	return &FieldError{Kind: KindMissing, Field: field}
}

// NonNumericField builds a KindNonNumeric error.
func NonNumericField(field string) *FieldError {
	return &FieldError{Kind: KindNonNumeric, Field: field}
}

// OutOfRange builds a KindOutOfRange error carrying the configured bounds.
func OutOfRange(field string, min, max float64) *FieldError {
	return &FieldError{Kind: KindOutOfRange, Field: field, Min: min, Max: max}
}

// ScalerConfigError signals systemic misconfiguration detected at request time.
type ScalerConfigError struct {
	Err error
}

func (e *ScalerConfigError) Error() string {
	return "scaler config: " + e.Err.Error()
}

func (e *ScalerConfigError) Unwrap() error {
	return e.Err
}

// InferenceError wraps any classifier failure.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return "inference failed: " + e.Err.Error()
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text shown to the end user for a per-request error.
// Validation errors are surfaced verbatim; everything else gets a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Error()
	}

	var scalerErr *ScalerConfigError
	if errors.As(err, &scalerErr) {
		return "The service is misconfigured. Please try again later."
	}

	return "Prediction failed. Please check your input and try again."
}
