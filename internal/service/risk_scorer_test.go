package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizedRiskScore(t *testing.T) {
	tests := []struct {
		history string
		want    float64
	}{
		{history: "no disease", want: 0},
		{history: "none", want: 0},
		{history: "diabetes", want: 6.0 / 14.0},
		{history: "Diabetes", want: 6.0 / 14.0},
		{history: "thyroid", want: 5.0 / 14.0},
		{history: "heart disease & diabetes", want: 1},
		{history: "High blood pressure & Heart disease", want: 1},
		{history: "Diabetes & Thyroid", want: 11.0 / 14.0},
		{history: " diabetes  & thyroid", want: 11.0 / 14.0},
		{history: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.history, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizedRiskScore(tt.history), 1e-9)
		})
	}
}

func TestNormalizedRiskScore_UnknownConditions(t *testing.T) {
	for _, history := range []string{"asthma", "cancer", "diabetes&thyroid", "heart-disease"} {
		assert.Equal(t, 0.0, NormalizedRiskScore(history), history)
	}
}

func TestNormalizedRiskScore_KnownPairsStayInRange(t *testing.T) {
	conditions := []string{"diabetes", "heart disease", "high blood pressure", "thyroid", "no disease", "none"}

	for _, a := range conditions {
		assert.GreaterOrEqual(t, NormalizedRiskScore(a), 0.0)
		assert.LessOrEqual(t, NormalizedRiskScore(a), 1.0)
		for _, b := range conditions {
			if a == b {
				continue
			}
			history := a + " & " + b
			score := NormalizedRiskScore(history)
			assert.GreaterOrEqual(t, score, 0.0, history)
			assert.LessOrEqual(t, score, 1.0, history)
			assert.Equal(t, score, NormalizedRiskScore(history), "deterministic for %q", history)
		}
	}
}

func TestNormalizedRiskScore_Unclamped(t *testing.T) {
	// Three severe conditions exceed the two-condition convention.
	score := NormalizedRiskScore("heart disease & diabetes & high blood pressure")
	assert.InDelta(t, 20.0/14.0, score, 1e-9)
}
