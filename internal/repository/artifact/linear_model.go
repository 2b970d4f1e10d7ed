package artifact

import (
	"context"
	"fmt"

	"github.com/healthpremium/backend/internal/domain"
)

// LinearModel is a fitted linear regressor exported from training.
// It implements domain.Model.
type LinearModel struct {
	Type         string    `json:"type"`
	FeatureNames []string  `json:"feature_names"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// Infer computes intercept + coefficients·features over the fitted feature names.
// Features are matched by name, so the fitted order may differ from
// domain.FeatureColumns, but every fitted name must exist in the vector.
func (m *LinearModel) Infer(_ context.Context, features domain.FeatureVector) ([]float64, error) {
	if len(m.Coefficients) != len(m.FeatureNames) {
		return nil, fmt.Errorf("linear model: %d coefficients for %d features: %w",
			len(m.Coefficients), len(m.FeatureNames), domain.ErrSchemaMismatch)
	}

	sum := m.Intercept
	for i, name := range m.FeatureNames {
		value, ok := features.Get(name)
		if !ok {
			return nil, fmt.Errorf("linear model: feature %q not in vector: %w", name, domain.ErrSchemaMismatch)
		}
		sum += m.Coefficients[i] * value
	}

	return []float64{sum}, nil
}
