package scheduling

import "github.com/cliniq/cliniq/internal/platform/apperr"

// Appointment carries the booking plus patient identity denormalized
// for list views.
type Appointment struct {
	ID               int64   `json:"id"`
	PatientID        int64   `json:"patient_id"`
	AppointmentDate  string  `json:"appointment_date"`
	AppointmentTime  string  `json:"appointment_time"`
	AppointmentType  string  `json:"appointment_type"`
	DoctorName       *string `json:"doctor_name"`
	Notes            *string `json:"notes"`
	Status           string  `json:"status"`
	PatientFirstName *string `json:"patient_first_name"`
	PatientLastName  *string `json:"patient_last_name"`
	PatientPhone     *string `json:"patient_phone"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// Input is the create/update payload.
type Input struct {
	PatientID       int64  `json:"patient_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	AppointmentType string `json:"appointment_type"`
	DoctorName      string `json:"doctor_name"`
	Notes           string `json:"notes"`
	Status          string `json:"status"`
}

func (in *Input) Validate() error {
	if in.PatientID == 0 || in.AppointmentDate == "" || in.AppointmentTime == "" {
		return apperr.Invalid("Patient ID, date, and time are required")
	}
	return nil
}

// ApplyDefaults fills type and status the way new bookings start.
func (in *Input) ApplyDefaults() {
	if in.AppointmentType == "" {
		in.AppointmentType = "consultation"
	}
	if in.Status == "" {
		in.Status = "scheduled"
	}
}
