package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/healthpremium/backend/internal/domain"
)

// mockModel is a testify mock for domain.Model
type mockModel struct {
	mock.Mock
}

func (m *mockModel) Infer(ctx context.Context, features domain.FeatureVector) ([]float64, error) {
	args := m.Called(ctx, features)
	out, _ := args.Get(0).([]float64)
	return out, args.Error(1)
}

// affineScaler multiplies by factor and adds offset, recording every row it sees.
type affineScaler struct {
	columns []string
	factor  float64
	offset  float64
	err     error

	mu   sync.Mutex
	seen []map[string]float64
}

func newAffineScaler(factor, offset float64, columns ...string) *affineScaler {
	return &affineScaler{columns: columns, factor: factor, offset: offset}
}

func (s *affineScaler) Columns() []string { return s.columns }

func (s *affineScaler) Transform(columns []string, row []float64) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(columns) != len(s.columns) {
		return nil, fmt.Errorf("fitted on %d columns, got %d: %w", len(s.columns), len(columns), domain.ErrSchemaMismatch)
	}
	for i, col := range columns {
		if col != s.columns[i] {
			return nil, fmt.Errorf("column %d is %q, fitted %q: %w", i, col, s.columns[i], domain.ErrSchemaMismatch)
		}
	}

	s.mu.Lock()
	seen := make(map[string]float64, len(columns))
	for i, col := range columns {
		seen[col] = row[i]
	}
	s.seen = append(s.seen, seen)
	s.mu.Unlock()

	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = v*s.factor + s.offset
	}
	return out, nil
}

func (s *affineScaler) lastSeen() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.seen) == 0 {
		return nil
	}
	return s.seen[len(s.seen)-1]
}

// scaledColumns mirrors the fitted scaler bundles, including the
// income_level column that feature vectors never carry.
var scaledColumns = []string{
	domain.ColAge, domain.ColDependants, "income_level", domain.ColIncomeLakhs,
	domain.ColInsurancePlan, domain.ColGeneticalRisk,
}

func scalingParams(s *affineScaler) domain.ScalingParams {
	return domain.ScalingParams{ColumnsToScale: s.columns, Scaler: s}
}

// identityParams scales nothing observable
func identityParams() domain.ScalingParams {
	return scalingParams(newAffineScaler(1, 0, scaledColumns...))
}

func scenarioA() domain.InputRecord {
	return domain.InputRecord{
		"Age":                  22,
		"Gender":               "Male",
		"Region":               "Southeast",
		"Medical History":      "diabetes",
		"Insurance Plan":       "Gold",
		"Income in Lakhs":      5,
		"Number of Dependants": 0,
		"Genetical Risk":       2,
	}
}
