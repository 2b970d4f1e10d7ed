package service

import (
	"fmt"

	"github.com/healthpremium/backend/internal/domain"
	"github.com/healthpremium/backend/pkg/utils"
)

// indicatorGroup maps a categorical variant to the indicator column it sets.
// The baseline variant has no column.
type indicatorGroup map[string]string

var categoricalGroups = map[string]indicatorGroup{
	// baseline: Female
	domain.FieldGender: {
		"Male": domain.ColGenderMale,
	},
	// baseline: Northeast
	domain.FieldRegion: {
		"Northwest": domain.ColRegionNorthwest,
		"Southeast": domain.ColRegionSoutheast,
		"Southwest": domain.ColRegionSouthwest,
	},
	// baseline: Married
	domain.FieldMaritalStatus: {
		"Unmarried": domain.ColMaritalUnmarried,
	},
	// baseline: Normal
	domain.FieldBMICategory: {
		"Obesity":     domain.ColBMIObesity,
		"Overweight":  domain.ColBMIOverweight,
		"Underweight": domain.ColBMIUnderweight,
	},
	// baseline: No Smoking
	domain.FieldSmokingStatus: {
		"Occasional": domain.ColSmokingOccasional,
		"Regular":    domain.ColSmokingRegular,
	},
	// baseline: Freelancer
	domain.FieldEmploymentStatus: {
		"Salaried":      domain.ColEmploymentSalaried,
		"Self-Employed": domain.ColEmploymentSelfEmployed,
	},
}

// numericFields are copied straight into their columns
var numericFields = map[string]string{
	domain.FieldAge:           domain.ColAge,
	domain.FieldDependants:    domain.ColDependants,
	domain.FieldIncomeLakhs:   domain.ColIncomeLakhs,
	domain.FieldGeneticalRisk: domain.ColGeneticalRisk,
}

var insurancePlanEncoding = map[string]float64{
	"Bronze": 1,
	"Silver": 2,
	"Gold":   3,
}

const defaultInsurancePlan = 1

// FeatureEncoder turns an applicant record into a scaled feature vector
type FeatureEncoder struct {
	scaler *ScaleDispatcher
}

// NewFeatureEncoder creates an encoder that scales through the given dispatcher
func NewFeatureEncoder(scaler *ScaleDispatcher) *FeatureEncoder {
	return &FeatureEncoder{scaler: scaler}
}

// Encode builds the vector for input, resolves its age band once and
// applies the band's scaler. On a scaling failure the returned value still
// carries the resolved band.
func (e *FeatureEncoder) Encode(input domain.InputRecord) (domain.Encoded, error) {
	age, err := requiredAge(input)
	if err != nil {
		return domain.Encoded{}, err
	}
	band := domain.AgeBandFor(age)

	vector, riskScore, err := encodeVector(input)
	if err != nil {
		return domain.Encoded{}, err
	}

	scaled, err := e.scaler.Scale(band, vector)
	if err != nil {
		return domain.Encoded{Band: band, RiskScore: riskScore}, err
	}

	return domain.Encoded{
		Vector:    scaled,
		Band:      band,
		RiskScore: riskScore,
	}, nil
}

func requiredAge(input domain.InputRecord) (float64, error) {
	raw, ok := input[domain.FieldAge]
	if !ok {
		return 0, fmt.Errorf("encode: %q: %w", domain.FieldAge, domain.ErrMissingField)
	}
	age, err := utils.ToFloat(raw)
	if err != nil {
		return 0, fmt.Errorf("encode: %q: %v: %w", domain.FieldAge, err, domain.ErrInvalidField)
	}
	return age, nil
}

// encodeVector populates the unscaled vector and returns the risk score
// written into it.
func encodeVector(input domain.InputRecord) (domain.FeatureVector, float64, error) {
	var v domain.FeatureVector

	for key, value := range input {
		if group, ok := categoricalGroups[key]; ok {
			variant, _ := value.(string)
			if col, ok := group[variant]; ok {
				v.Set(col, 1)
			}
			continue
		}

		if col, ok := numericFields[key]; ok {
			n, err := utils.ToFloat(value)
			if err != nil {
				return v, 0, fmt.Errorf("encode: %q: %v: %w", key, err, domain.ErrInvalidField)
			}
			v.Set(col, n)
			continue
		}

		if key == domain.FieldInsurancePlan {
			plan, _ := value.(string)
			code, ok := insurancePlanEncoding[plan]
			if !ok {
				code = defaultInsurancePlan
			}
			v.Set(domain.ColInsurancePlan, code)
		}
	}

	history, err := medicalHistory(input)
	if err != nil {
		return v, 0, err
	}
	riskScore := NormalizedRiskScore(history)
	v.Set(domain.ColRiskScore, riskScore)

	return v, riskScore, nil
}

func medicalHistory(input domain.InputRecord) (string, error) {
	raw, ok := input[domain.FieldMedicalHistory]
	if !ok || raw == nil {
		return domain.DefaultMedicalHistory, nil
	}
	history, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("encode: %q: expected text, got %T: %w",
			domain.FieldMedicalHistory, raw, domain.ErrInvalidField)
	}
	return history, nil
}
