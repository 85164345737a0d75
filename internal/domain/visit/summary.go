package visit

import (
	"fmt"
	"strings"

	"github.com/cliniq/cliniq/internal/domain/worklist"
)

// GenerateSummary renders the visit summary narrative stored in ai_summary.
// It is a pure function of the create payload: the same input always yields
// the same text, which keeps visit creation reproducible and testable.
func GenerateSummary(in *CreateInput) string {
	var b strings.Builder
	b.WriteString("Visit Summary:\n\n")

	if in.ChiefComplaint != "" {
		fmt.Fprintf(&b, "Chief Complaint: %s\n", in.ChiefComplaint)
	}
	if in.Diagnosis != "" {
		fmt.Fprintf(&b, "Diagnosis: %s\n", in.Diagnosis)
	}
	if in.Problems != "" {
		fmt.Fprintf(&b, "Problems Identified: %s\n", in.Problems)
	}

	if meds := namedMedicines(in.Medicines); len(meds) > 0 {
		b.WriteString("\nMedications Prescribed:\n")
		for _, m := range meds {
			fmt.Fprintf(&b, "- %s (%s) - %s for %s\n", m.MedicineName, m.Dosage, m.Frequency, m.Duration)
		}
	}

	if tests := namedTests(in.LabTests); len(tests) > 0 {
		b.WriteString("\nLab Tests Ordered:\n")
		for _, t := range tests {
			fmt.Fprintf(&b, "- %s (%s)\n", t.TestName, statusOrPending(t.Status))
		}
	}

	if tests := namedTests(in.ImagingTests); len(tests) > 0 {
		b.WriteString("\nImaging Tests:\n")
		for _, t := range tests {
			fmt.Fprintf(&b, "- %s of %s (%s)\n", t.TestName, t.BodyPart, statusOrPending(t.Status))
		}
	}

	if v := in.VitalSigns; v != nil {
		b.WriteString("\nVital Signs:\n")
		if v.Temperature != nil {
			fmt.Fprintf(&b, "- Temperature: %s°F\n", trimFloat(*v.Temperature))
		}
		if v.BloodPressureSystolic != nil && v.BloodPressureDiastolic != nil {
			fmt.Fprintf(&b, "- Blood Pressure: %d/%d mmHg\n", *v.BloodPressureSystolic, *v.BloodPressureDiastolic)
		}
		if v.HeartRate != nil {
			fmt.Fprintf(&b, "- Heart Rate: %d bpm\n", *v.HeartRate)
		}
		if v.Weight != nil {
			fmt.Fprintf(&b, "- Weight: %s kg\n", trimFloat(*v.Weight))
		}
	}

	if in.TreatmentPlan != "" {
		fmt.Fprintf(&b, "\nTreatment Plan: %s\n", in.TreatmentPlan)
	}

	b.WriteString("\nRecommendations for next visit:\n")
	b.WriteString("- Follow up on prescribed medications\n")
	b.WriteString("- Review lab test results if pending\n")
	b.WriteString("- Monitor symptoms and vital signs\n")

	return b.String()
}

// InterpretVitals flags readings outside the clinic's alerting thresholds:
// fever above 100.4°F, blood pressure at or above 140/90, heart rate above
// 100 or below 60.
func InterpretVitals(v *VitalSignsInput) []string {
	if v == nil {
		return nil
	}
	var flags []string
	if v.Temperature != nil && *v.Temperature > 100.4 {
		flags = append(flags, "fever")
	}
	if v.BloodPressureSystolic != nil && v.BloodPressureDiastolic != nil &&
		(*v.BloodPressureSystolic >= 140 || *v.BloodPressureDiastolic >= 90) {
		flags = append(flags, "elevated blood pressure")
	}
	if v.HeartRate != nil {
		if *v.HeartRate > 100 {
			flags = append(flags, "tachycardia")
		} else if *v.HeartRate < 60 {
			flags = append(flags, "bradycardia")
		}
	}
	return flags
}

func namedMedicines(meds []MedicineInput) []MedicineInput {
	var out []MedicineInput
	for _, m := range meds {
		if m.MedicineName != "" {
			out = append(out, m)
		}
	}
	return out
}

func namedTests(tests []worklist.TestRecord) []worklist.TestRecord {
	var out []worklist.TestRecord
	for _, t := range tests {
		if t.TestName != "" {
			out = append(out, t)
		}
	}
	return out
}

func statusOrPending(s string) string {
	if s == "" {
		return "pending"
	}
	return s
}

// trimFloat renders a measurement without trailing zeros (98.6 not 98.60).
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
