package service

import "strings"

// conditionSeparator joins up to two conditions in a medical history entry
const conditionSeparator = " & "

// maxRiskScore is the combined severity of the two most severe conditions
const maxRiskScore = 14.0

// conditionSeverity maps a lower-cased condition to its severity points.
// Conditions not listed contribute nothing.
var conditionSeverity = map[string]float64{
	"diabetes":            6,
	"heart disease":       8,
	"high blood pressure": 6,
	"thyroid":             5,
	"no disease":          0,
	"none":                0,
}

// NormalizedRiskScore converts a free-text medical history such as
// "Diabetes & Heart disease" into a comorbidity score.
//
// The result is the summed severity divided by maxRiskScore. It is not
// clamped: histories are expected to carry at most two conditions, which
// keeps the score within [0, 1].
func NormalizedRiskScore(history string) float64 {
	var total float64
	for _, condition := range strings.Split(strings.ToLower(history), conditionSeparator) {
		total += conditionSeverity[strings.TrimSpace(condition)]
	}
	return total / maxRiskScore
}
