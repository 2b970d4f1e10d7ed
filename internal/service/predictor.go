package service

import (
	"context"

	"github.com/healthpremium/backend/internal/domain"
)

// Predictor is the encode, scale and dispatch pipeline.
// It holds only read-only artifacts and is safe for concurrent use.
type Predictor struct {
	encoder *FeatureEncoder
	models  *ModelDispatcher
}

// NewPredictor creates a predictor
func NewPredictor(encoder *FeatureEncoder, models *ModelDispatcher) *Predictor {
	return &Predictor{encoder: encoder, models: models}
}

// NewPredictorFromArtifacts wires the full pipeline from the four band artifacts
func NewPredictorFromArtifacts(modelYoung, modelRest domain.Model, scalerYoung, scalerRest domain.ScalingParams) *Predictor {
	encoder := NewFeatureEncoder(NewScaleDispatcher(scalerYoung, scalerRest))
	return NewPredictor(encoder, NewModelDispatcher(modelYoung, modelRest))
}

// Preprocess encodes and scales input without running a model
func (p *Predictor) Preprocess(input domain.InputRecord) (domain.Encoded, error) {
	return p.encoder.Encode(input)
}

// Predict returns the premium predicted for input
func (p *Predictor) Predict(ctx context.Context, input domain.InputRecord) (int, error) {
	_, premium, err := p.Run(ctx, input)
	return premium, err
}

// Run is Predict that also returns the encoded applicant. Errors that are
// not input errors come with the resolved band in the returned value.
func (p *Predictor) Run(ctx context.Context, input domain.InputRecord) (domain.Encoded, int, error) {
	encoded, err := p.encoder.Encode(input)
	if err != nil {
		return encoded, 0, err
	}

	premium, err := p.models.Predict(ctx, encoded.Band, encoded.Vector)
	if err != nil {
		return encoded, 0, err
	}

	return encoded, premium, nil
}
