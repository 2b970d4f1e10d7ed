package service

import (
	"context"
	"fmt"
	"math"

	"github.com/healthpremium/backend/internal/domain"
	"github.com/healthpremium/backend/pkg/utils"
)

// ModelDispatcher routes a scaled vector to the age band's model
type ModelDispatcher struct {
	young domain.Model
	rest  domain.Model
}

// NewModelDispatcher creates a model dispatcher over the two band models
func NewModelDispatcher(young, rest domain.Model) *ModelDispatcher {
	return &ModelDispatcher{young: young, rest: rest}
}

func (d *ModelDispatcher) modelFor(band domain.AgeBand) (domain.Model, error) {
	var model domain.Model
	switch band {
	case domain.AgeBandYoung:
		model = d.young
	case domain.AgeBandRest:
		model = d.rest
	default:
		return nil, fmt.Errorf("model: unknown age band %d", int(band))
	}
	if model == nil {
		return nil, fmt.Errorf("model: no %s model configured", band)
	}
	return model, nil
}

// Predict runs the band's model and returns its first output truncated to an integer.
// Outputs that are not finite or do not fit an int are rejected.
func (d *ModelDispatcher) Predict(ctx context.Context, band domain.AgeBand, v domain.FeatureVector) (int, error) {
	model, err := d.modelFor(band)
	if err != nil {
		return 0, err
	}

	out, err := model.Infer(ctx, v)
	if err != nil {
		return 0, fmt.Errorf("model: %s inference: %w", band, err)
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("model: %s: %w", band, domain.ErrEmptyPrediction)
	}

	premium := math.Trunc(out[0])
	if !utils.IsFinite(premium) || premium < math.MinInt || premium >= -math.MinInt {
		return 0, fmt.Errorf("model: %s output %v: %w", band, out[0], domain.ErrInvalidPrediction)
	}

	return int(premium), nil
}
