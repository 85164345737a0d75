package visit

import (
	"github.com/cliniq/cliniq/internal/domain/worklist"
	"github.com/cliniq/cliniq/internal/platform/apperr"
)

// Visit is a clinical encounter. Lab and imaging orders live in the two
// embedded JSON arrays on the row itself; medicines and vital signs are
// child tables.
type Visit struct {
	ID             int64   `json:"id"`
	PatientID      int64   `json:"patient_id"`
	VisitDate      string  `json:"visit_date"`
	ChiefComplaint *string `json:"chief_complaint"`
	Diagnosis      *string `json:"diagnosis"`
	Problems       *string `json:"problems"`
	TreatmentPlan  *string `json:"treatment_plan"`
	Notes          *string `json:"notes"`
	DoctorName     *string `json:"doctor_name"`
	AISummary      *string `json:"ai_summary"`
	CreatedAt      string  `json:"created_at"`

	// Joined from patients.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	LabTests     []worklist.TestRecord `json:"lab_tests"`
	ImagingTests []worklist.TestRecord `json:"imaging_tests"`
	Medicines    []Medicine            `json:"medicines"`
	VitalSigns   []VitalSigns          `json:"vital_signs"`
}

// Medicine is one prescription line of a visit.
type Medicine struct {
	ID           int64   `json:"id"`
	VisitID      int64   `json:"visit_id"`
	MedicineName string  `json:"medicine_name"`
	Dosage       *string `json:"dosage"`
	Frequency    *string `json:"frequency"`
	Duration     *string `json:"duration"`
	Instructions *string `json:"instructions"`
}

// VitalSigns is one set of measurements taken during a visit.
type VitalSigns struct {
	ID                     int64    `json:"id"`
	VisitID                int64    `json:"visit_id"`
	Temperature            *float64 `json:"temperature"`
	BloodPressureSystolic  *int     `json:"blood_pressure_systolic"`
	BloodPressureDiastolic *int     `json:"blood_pressure_diastolic"`
	HeartRate              *int     `json:"heart_rate"`
	RespiratoryRate        *int     `json:"respiratory_rate"`
	OxygenSaturation       *float64 `json:"oxygen_saturation"`
	Weight                 *float64 `json:"weight"`
	Height                 *float64 `json:"height"`
	BMI                    *float64 `json:"bmi"`
	RecordedAt             string   `json:"recorded_at"`
}

// MedicineInput is a prescription line in a create request.
type MedicineInput struct {
	MedicineName string `json:"medicine_name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

// VitalSignsInput carries measurements in a create request.
type VitalSignsInput struct {
	Temperature            *float64 `json:"temperature"`
	BloodPressureSystolic  *int     `json:"blood_pressure_systolic"`
	BloodPressureDiastolic *int     `json:"blood_pressure_diastolic"`
	HeartRate              *int     `json:"heart_rate"`
	RespiratoryRate        *int     `json:"respiratory_rate"`
	OxygenSaturation       *float64 `json:"oxygen_saturation"`
	Weight                 *float64 `json:"weight"`
	Height                 *float64 `json:"height"`
	BMI                    *float64 `json:"bmi"`
}

// CreateInput is the POST /visits payload.
type CreateInput struct {
	PatientID      int64                 `json:"patient_id"`
	ChiefComplaint string                `json:"chief_complaint"`
	Diagnosis      string                `json:"diagnosis"`
	Problems       string                `json:"problems"`
	TreatmentPlan  string                `json:"treatment_plan"`
	Notes          string                `json:"notes"`
	DoctorName     string                `json:"doctor_name"`
	Medicines      []MedicineInput       `json:"medicines"`
	LabTests       []worklist.TestRecord `json:"lab_tests"`
	ImagingTests   []worklist.TestRecord `json:"imaging_tests"`
	VitalSigns     *VitalSignsInput      `json:"vital_signs"`
}

// Validate checks the create payload.
func (in *CreateInput) Validate() error {
	if in.PatientID == 0 {
		return apperr.Invalid("Patient ID is required")
	}
	return nil
}
