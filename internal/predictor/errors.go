package predictor

import (
	"errors"
	"fmt"
)

var (
	// ErrEncodingNotLoaded is returned when assembling without an encoding table.
	ErrEncodingNotLoaded = errors.New("encoding table not loaded")
	// ErrScalerNotLoaded is returned when scaling without a scaler.
	ErrScalerNotLoaded = errors.New("scaler not loaded")
	// ErrModelNotLoaded is returned when predicting without a model.
	ErrModelNotLoaded = errors.New("model not loaded")
	// ErrEmptyDataset is returned by FitAll for a dataset with no rows.
	ErrEmptyDataset = errors.New("dataset is empty")
	// ErrUnknownField is returned for a field the schema or table does not know.
	ErrUnknownField = errors.New("unknown field")
)

// UnknownCategoryError reports a label that was not seen during fitting.
// There is no fallback code.
type UnknownCategoryError struct {
	Field Field
	Label string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q for field %s", e.Label, e.Field)
}

// InvalidNumericInputError reports a numeric field that is not a finite number.
type InvalidNumericInputError struct {
	Field Field
	Value string
	Err   error
}

func (e *InvalidNumericInputError) Error() string {
	return fmt.Sprintf("invalid numeric value %q for field %s", e.Value, e.Field)
}

func (e *InvalidNumericInputError) Unwrap() error { return e.Err }

// MissingFieldError reports a record without a value for a schema column.
type MissingFieldError struct {
	Field Field
}

func (e *MissingFieldError) Error() string { return "missing field " + string(e.Field) }

// VectorWidthError reports a vector whose length does not match the schema.
type VectorWidthError struct {
	Got, Want int
}

func (e *VectorWidthError) Error() string {
	return fmt.Sprintf("feature vector has %d slots, want %d", e.Got, e.Want)
}

// IsUnknownCategory reports whether err is an UnknownCategoryError.
func IsUnknownCategory(err error) bool {
	var e *UnknownCategoryError
	return errors.As(err, &e)
}

// IsInvalidNumeric reports whether err is an InvalidNumericInputError.
func IsInvalidNumeric(err error) bool {
	var e *InvalidNumericInputError
	return errors.As(err, &e)
}

// IsMissingField reports whether err is a MissingFieldError.
func IsMissingField(err error) bool {
	var e *MissingFieldError
	return errors.As(err, &e)
}

// IsInputError reports whether err was caused by the request input rather
// than by the artifacts.
func IsInputError(err error) bool {
	return IsUnknownCategory(err) || IsInvalidNumeric(err) || IsMissingField(err) || errors.Is(err, ErrUnknownField)
}

// IsNotLoaded reports whether err means an artifact is absent.
func IsNotLoaded(err error) bool {
	return errors.Is(err, ErrEncodingNotLoaded) || errors.Is(err, ErrScalerNotLoaded) || errors.Is(err, ErrModelNotLoaded)
}

// FieldOf extracts the offending field from an input error, if any.
func FieldOf(err error) (Field, bool) {
	var uc *UnknownCategoryError
	if errors.As(err, &uc) {
		return uc.Field, true
	}
	var in *InvalidNumericInputError
	if errors.As(err, &in) {
		return in.Field, true
	}
	var mf *MissingFieldError
	if errors.As(err, &mf) {
		return mf.Field, true
	}
	return "", false
}
