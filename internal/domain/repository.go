package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PredictionLog is an audit entry for one served prediction
type PredictionLog struct {
	ID        uuid.UUID          `json:"id"`
	AgeBand   string             `json:"age_band"`
	Premium   int                `json:"premium"`
	RiskScore float64            `json:"normalized_risk_score"`
	Input     InputRecord        `json:"input"`
	Features  map[string]float64 `json:"features"`
	CreatedAt time.Time          `json:"created_at"`
}

// PredictionResponse represents the premium returned to API callers
type PredictionResponse struct {
	ID        uuid.UUID `json:"id"`
	Premium   int       `json:"premium"`
	AgeBand   AgeBand   `json:"age_band"`
	RiskScore float64   `json:"normalized_risk_score"`
}

// FeaturesResponse exposes a preprocessed vector without running a model
type FeaturesResponse struct {
	AgeBand  AgeBand            `json:"age_band"`
	Columns  []string           `json:"columns"`
	Features map[string]float64 `json:"features"`
}

// PredictionRepository defines the interface for prediction audit persistence
type PredictionRepository interface {
	// SavePrediction persists an audit entry
	SavePrediction(ctx context.Context, entry PredictionLog) error

	// ListPredictions returns the most recent entries, newest first.
	// A limit of zero or less returns every entry.
	ListPredictions(ctx context.Context, limit int) ([]PredictionLog, error)

	// Health checks storage connectivity
	Health(ctx context.Context) error
}
