package artifact

import (
	"fmt"

	"github.com/healthpremium/backend/internal/domain"
)

// Scaler kinds
const (
	KindMinMax   = "min_max"
	KindStandard = "standard"
)

// ColumnScaler is a fitted per-column affine transform.
//
// min_max follows scikit-learn's MinMaxScaler export: x*scale + min.
// standard follows StandardScaler: (x-mean)/scale.
type ColumnScaler struct {
	Kind         string    `json:"type"`
	FeatureNames []string  `json:"feature_names"`
	Min          []float64 `json:"min,omitempty"`
	Mean         []float64 `json:"mean,omitempty"`
	Scale        []float64 `json:"scale"`
}

// Columns returns the fitted feature names
func (s *ColumnScaler) Columns() []string {
	return s.FeatureNames
}

// Transform scales a row whose columns must equal the fitted names, in order
func (s *ColumnScaler) Transform(columns []string, row []float64) ([]float64, error) {
	if len(columns) != len(s.FeatureNames) || len(row) != len(columns) {
		return nil, fmt.Errorf("scaler: fitted on %d columns, got %d columns and %d values: %w",
			len(s.FeatureNames), len(columns), len(row), domain.ErrSchemaMismatch)
	}
	for i, col := range columns {
		if col != s.FeatureNames[i] {
			return nil, fmt.Errorf("scaler: column %d is %q, fitted as %q: %w",
				i, col, s.FeatureNames[i], domain.ErrSchemaMismatch)
		}
	}
	if len(s.Scale) != len(s.FeatureNames) {
		return nil, fmt.Errorf("scaler: %d scale values for %d columns: %w",
			len(s.Scale), len(s.FeatureNames), domain.ErrSchemaMismatch)
	}

	out := make([]float64, len(row))
	switch s.Kind {
	case KindMinMax:
		if len(s.Min) != len(s.FeatureNames) {
			return nil, fmt.Errorf("scaler: %d min values for %d columns: %w",
				len(s.Min), len(s.FeatureNames), domain.ErrSchemaMismatch)
		}
		for i, x := range row {
			out[i] = x*s.Scale[i] + s.Min[i]
		}
	case KindStandard:
		if len(s.Mean) != len(s.FeatureNames) {
			return nil, fmt.Errorf("scaler: %d mean values for %d columns: %w",
				len(s.Mean), len(s.FeatureNames), domain.ErrSchemaMismatch)
		}
		for i, x := range row {
			out[i] = (x - s.Mean[i]) / s.Scale[i]
		}
	default:
		return nil, fmt.Errorf("scaler: unsupported type %q", s.Kind)
	}

	return out, nil
}

// ScalerBundle is the on-disk scaling parameters for one age band
type ScalerBundle struct {
	ColsToScale []string     `json:"cols_to_scale"`
	Scaler      ColumnScaler `json:"scaler"`
}

// Params adapts the bundle to domain.ScalingParams
func (b *ScalerBundle) Params() domain.ScalingParams {
	return domain.ScalingParams{
		ColumnsToScale: b.ColsToScale,
		Scaler:         &b.Scaler,
	}
}
