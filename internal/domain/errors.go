package domain

import "errors"

var (
	// ErrMissingField is returned when a required input field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidField is returned when a numeric field cannot be read as a number.
	ErrInvalidField = errors.New("invalid field value")

	// ErrSchemaMismatch is returned when a vector does not fit a scaler or model.
	ErrSchemaMismatch = errors.New("feature schema mismatch")

	// ErrEmptyPrediction is returned when a model produces no output.
	ErrEmptyPrediction = errors.New("model returned no prediction")

	// ErrInvalidPrediction is returned when a model output is not a usable premium.
	ErrInvalidPrediction = errors.New("model returned an invalid prediction")
)
