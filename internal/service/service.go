package service

import (
	"github.com/healthpremium/backend/internal/domain"
)

// PredictionRepository is the audit store PremiumService writes to and reads
// history from
type PredictionRepository = domain.PredictionRepository
