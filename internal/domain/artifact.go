package domain

import "context"

// Model is a pretrained regressor over the FeatureColumns schema.
type Model interface {
	// Infer runs single-row inference and returns the model's raw outputs
	Infer(ctx context.Context, features FeatureVector) ([]float64, error)
}

// Scaler is a fitted column transform.
type Scaler interface {
	// Columns returns the ordered column names the transform was fitted on
	Columns() []string

	// Transform scales one row whose values follow the given column order
	Transform(columns []string, row []float64) ([]float64, error)
}

// ScalingParams pairs a fitted scaler with the columns it is applied to.
type ScalingParams struct {
	ColumnsToScale []string
	Scaler         Scaler
}
