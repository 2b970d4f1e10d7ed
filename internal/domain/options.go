package domain

// FormOptions lists the categorical choices offered to applicants.
// Values outside these lists are accepted and encoded as the group baseline.
type FormOptions struct {
	Genders            []string `json:"genders"`
	Regions            []string `json:"regions"`
	MaritalStatuses    []string `json:"marital_statuses"`
	BMICategories      []string `json:"bmi_categories"`
	SmokingStatuses    []string `json:"smoking_statuses"`
	EmploymentStatuses []string `json:"employment_statuses"`
	InsurancePlans     []string `json:"insurance_plans"`
	MedicalHistories   []string `json:"medical_histories"`
}

// DefaultFormOptions returns the choices the applicant form presents.
func DefaultFormOptions() FormOptions {
	return FormOptions{
		Genders:            []string{"Male", "Female"},
		Regions:            []string{"Northwest", "Southeast", "Northeast", "Southwest"},
		MaritalStatuses:    []string{"Unmarried", "Married"},
		BMICategories:      []string{"Normal", "Obesity", "Overweight", "Underweight"},
		SmokingStatuses:    []string{"No Smoking", "Regular", "Occasional"},
		EmploymentStatuses: []string{"Salaried", "Self-Employed", "Freelancer"},
		InsurancePlans:     []string{"Bronze", "Silver", "Gold"},
		MedicalHistories: []string{
			"No Disease", "Diabetes", "High blood pressure", "Diabetes & High blood pressure",
			"Thyroid", "Heart disease", "High blood pressure & Heart disease",
			"Diabetes & Thyroid", "Diabetes & Heart disease",
		},
	}
}
