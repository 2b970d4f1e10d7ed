package service

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthpremium/backend/internal/domain"
	"github.com/healthpremium/backend/internal/metrics"
	"github.com/healthpremium/backend/pkg/utils"
)

// PremiumService serves predictions and keeps their audit trail
type PremiumService struct {
	predictor *Predictor
	repo      PredictionRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger

	wgBg sync.WaitGroup // tracks background audit writes for graceful shutdown
}

// NewPremiumService creates a new premium service
func NewPremiumService(
	predictor *Predictor,
	repo PredictionRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *PremiumService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PremiumService{
		predictor: predictor,
		repo:      repo,
		metrics:   m,
		logger:    logger,
	}
}

// WaitBackground blocks until all background audit writes complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *PremiumService) WaitBackground() {
	s.wgBg.Wait()
}

// Predict runs the pipeline for one applicant and records the result
func (s *PremiumService) Predict(ctx context.Context, input domain.InputRecord) (domain.PredictionResponse, error) {
	start := time.Now()

	encoded, premium, err := s.predictor.Run(ctx, input)
	if err != nil {
		// Input errors may stop before the band is resolved
		outcome, band := metrics.OutcomeError, encoded.Band.String()
		if IsInputError(err) {
			outcome, band = metrics.OutcomeInvalidInput, "unknown"
		}
		s.metrics.ObservePrediction(band, outcome, time.Since(start))
		s.logger.Warn("prediction failed", zap.String("age_band", band), zap.String("outcome", outcome), zap.Error(err))
		return domain.PredictionResponse{}, err
	}

	s.metrics.ObservePrediction(encoded.Band.String(), metrics.OutcomeSuccess, time.Since(start))
	s.metrics.ObserveRiskScore(encoded.RiskScore)

	entry := domain.PredictionLog{
		ID:        uuid.New(),
		AgeBand:   encoded.Band.String(),
		Premium:   premium,
		RiskScore: encoded.RiskScore,
		Input:     maps.Clone(input),
		Features:  encoded.Vector.Map(),
		CreatedAt: time.Now().UTC(),
	}

	s.logger.Debug("prediction served",
		zap.Stringer("id", entry.ID),
		zap.String("age_band", entry.AgeBand),
		zap.Int("premium", premium),
		zap.Float64("risk_score", encoded.RiskScore),
	)

	// Persist audit entry asynchronously (tracked for graceful shutdown)
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.SavePrediction(bgCtx, entry); err != nil {
			s.logger.Error("failed to save prediction log", zap.Stringer("id", entry.ID), zap.Error(err))
		}
	}()

	return domain.PredictionResponse{
		ID:        entry.ID,
		Premium:   premium,
		AgeBand:   encoded.Band,
		RiskScore: utils.RoundTo(encoded.RiskScore, 4),
	}, nil
}

// Features returns the scaled vector for input without running a model
func (s *PremiumService) Features(input domain.InputRecord) (domain.FeaturesResponse, error) {
	encoded, err := s.predictor.Preprocess(input)
	if err != nil {
		return domain.FeaturesResponse{}, err
	}
	return domain.FeaturesResponse{
		AgeBand:  encoded.Band,
		Columns:  append([]string(nil), domain.FeatureColumns[:]...),
		Features: encoded.Vector.Map(),
	}, nil
}

// History returns the most recent prediction audit entries
func (s *PremiumService) History(ctx context.Context, limit int) ([]domain.PredictionLog, error) {
	return s.repo.ListPredictions(ctx, limit)
}

// Health checks the audit store
func (s *PremiumService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}

// IsInputError reports whether err was caused by the applicant record itself
func IsInputError(err error) bool {
	return errors.Is(err, domain.ErrMissingField) || errors.Is(err, domain.ErrInvalidField)
}
