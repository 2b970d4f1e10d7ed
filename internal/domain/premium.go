package domain

// Input field names as submitted by the applicant form
const (
	FieldAge              = "Age"
	FieldGender           = "Gender"
	FieldRegion           = "Region"
	FieldMaritalStatus    = "Marital Status"
	FieldBMICategory      = "BMI Category"
	FieldSmokingStatus    = "Smoking Status"
	FieldEmploymentStatus = "Employment Status"
	FieldInsurancePlan    = "Insurance Plan"
	FieldDependants       = "Number of Dependants"
	FieldIncomeLakhs      = "Income in Lakhs"
	FieldGeneticalRisk    = "Genetical Risk"
	FieldMedicalHistory   = "Medical History"
	DefaultMedicalHistory = "none"
)

// InputRecord is a loosely typed applicant record keyed by form field name.
// Values are numbers or strings; unknown keys are ignored.
type InputRecord map[string]any

// Feature column names in model order
const (
	ColAge                    = "age"
	ColDependants             = "number_of_dependants"
	ColIncomeLakhs            = "income_lakhs"
	ColInsurancePlan          = "insurance_plan"
	ColGeneticalRisk          = "genetical_risk"
	ColRiskScore              = "normalized_risk_score"
	ColGenderMale             = "gender_Male"
	ColRegionNorthwest        = "region_Northwest"
	ColRegionSoutheast        = "region_Southeast"
	ColRegionSouthwest        = "region_Southwest"
	ColMaritalUnmarried       = "marital_status_Unmarried"
	ColBMIObesity             = "bmi_category_Obesity"
	ColBMIOverweight          = "bmi_category_Overweight"
	ColBMIUnderweight         = "bmi_category_Underweight"
	ColSmokingOccasional      = "smoking_status_Occasional"
	ColSmokingRegular         = "smoking_status_Regular"
	ColEmploymentSalaried     = "employment_status_Salaried"
	ColEmploymentSelfEmployed = "employment_status_Self-Employed"
)

// NumFeatures is the width of every feature vector.
const NumFeatures = 18

// FeatureColumns is the fixed column order consumed by the models.
var FeatureColumns = [NumFeatures]string{
	ColAge, ColDependants, ColIncomeLakhs, ColInsurancePlan, ColGeneticalRisk, ColRiskScore,
	ColGenderMale, ColRegionNorthwest, ColRegionSoutheast, ColRegionSouthwest, ColMaritalUnmarried,
	ColBMIObesity, ColBMIOverweight, ColBMIUnderweight,
	ColSmokingOccasional, ColSmokingRegular,
	ColEmploymentSalaried, ColEmploymentSelfEmployed,
}

var columnIndex = func() map[string]int {
	idx := make(map[string]int, NumFeatures)
	for i, name := range FeatureColumns {
		idx[name] = i
	}
	return idx
}()

// ColumnIndex returns the position of a named column in FeatureColumns.
func ColumnIndex(name string) (int, bool) {
	i, ok := columnIndex[name]
	return i, ok
}

// FeatureVector is a single model-ready row. The zero value has every column at 0.
// Being an array, it is copied on assignment, so callers never share rows.
type FeatureVector [NumFeatures]float64

// Get returns the value of a named column; unknown names report false.
func (v FeatureVector) Get(name string) (float64, bool) {
	i, ok := columnIndex[name]
	if !ok {
		return 0, false
	}
	return v[i], true
}

// Set writes a named column and reports whether the column exists.
func (v *FeatureVector) Set(name string, value float64) bool {
	i, ok := columnIndex[name]
	if !ok {
		return false
	}
	v[i] = value
	return true
}

// Map returns the vector keyed by column name.
func (v FeatureVector) Map() map[string]float64 {
	m := make(map[string]float64, NumFeatures)
	for i, name := range FeatureColumns {
		m[name] = v[i]
	}
	return m
}

// Values returns the vector as a slice in column order.
func (v FeatureVector) Values() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}

// Encoded is a preprocessed applicant: the scaled vector plus the facts
// that drove it.
type Encoded struct {
	Vector    FeatureVector
	Band      AgeBand
	RiskScore float64
}
