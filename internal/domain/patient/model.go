package patient

import "github.com/cliniq/cliniq/internal/platform/apperr"

// Patient holds demographics and the intake history fields.
type Patient struct {
	ID               int64   `json:"id"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	DateOfBirth      *string `json:"date_of_birth"`
	Gender           *string `json:"gender"`
	Address          *string `json:"address"`
	EmergencyContact *string `json:"emergency_contact"`
	EmergencyPhone   *string `json:"emergency_phone"`
	MedicalHistory   *string `json:"medical_history"`
	Allergies        *string `json:"allergies"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// Input is the create/update payload.
type Input struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	DateOfBirth      string `json:"date_of_birth"`
	Gender           string `json:"gender"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone"`
	MedicalHistory   string `json:"medical_history"`
	Allergies        string `json:"allergies"`
}

func (in *Input) Validate() error {
	if in.FirstName == "" {
		return apperr.Invalid("Field 'first_name' is required")
	}
	if in.LastName == "" {
		return apperr.Invalid("Field 'last_name' is required")
	}
	return nil
}
