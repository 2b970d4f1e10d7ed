package service

import (
	"fmt"

	"github.com/healthpremium/backend/internal/domain"
)

// Frame is one named row handed to a scaler. It holds the feature vector's
// columns plus any padding the scaler's fitted schema demands.
type Frame map[string]float64

// PadToSchema copies the vector into a Frame and adds every schema column
// the vector lacks with value 0. The vector itself is never modified.
func PadToSchema(v domain.FeatureVector, schema []string) Frame {
	frame := Frame(v.Map())
	for _, col := range schema {
		if _, ok := frame[col]; !ok {
			frame[col] = 0
		}
	}
	return frame
}

// ScaleDispatcher applies the age band's fitted scaler to a feature vector
type ScaleDispatcher struct {
	young domain.ScalingParams
	rest  domain.ScalingParams
}

// NewScaleDispatcher creates a scale dispatcher over the two band scalers
func NewScaleDispatcher(young, rest domain.ScalingParams) *ScaleDispatcher {
	return &ScaleDispatcher{young: young, rest: rest}
}

func (d *ScaleDispatcher) paramsFor(band domain.AgeBand) (domain.ScalingParams, error) {
	switch band {
	case domain.AgeBandYoung:
		return d.young, nil
	case domain.AgeBandRest:
		return d.rest, nil
	default:
		return domain.ScalingParams{}, fmt.Errorf("scale: unknown age band %d", int(band))
	}
}

// Scale returns a copy of v with the band's columns transformed.
// Padding columns exist only for the duration of the transform.
func (d *ScaleDispatcher) Scale(band domain.AgeBand, v domain.FeatureVector) (domain.FeatureVector, error) {
	params, err := d.paramsFor(band)
	if err != nil {
		return v, err
	}
	if params.Scaler == nil {
		return v, fmt.Errorf("scale: no %s scaler configured", band)
	}

	frame := PadToSchema(v, params.Scaler.Columns())

	row := make([]float64, len(params.ColumnsToScale))
	for i, col := range params.ColumnsToScale {
		value, ok := frame[col]
		if !ok {
			return v, fmt.Errorf("scale: %s scaler wants column %q: %w", band, col, domain.ErrSchemaMismatch)
		}
		row[i] = value
	}

	scaled, err := params.Scaler.Transform(params.ColumnsToScale, row)
	if err != nil {
		return v, fmt.Errorf("scale: %s transform: %w", band, err)
	}
	if len(scaled) != len(row) {
		return v, fmt.Errorf("scale: %s transform returned %d values for %d columns: %w",
			band, len(scaled), len(row), domain.ErrSchemaMismatch)
	}

	out := v
	for i, col := range params.ColumnsToScale {
		out.Set(col, scaled[i])
	}
	return out, nil
}
