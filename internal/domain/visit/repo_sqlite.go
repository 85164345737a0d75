package visit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/cliniq/cliniq/internal/domain/worklist"
)

type sqliteRepo struct {
	conn *sql.DB
}

func NewSQLiteRepo(conn *sql.DB) Repository {
	return &sqliteRepo{conn: conn}
}

func (r *sqliteRepo) Create(ctx context.Context, nv *NewVisit) (int64, error) {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning visit transaction: %w", err)
	}
	defer tx.Rollback()

	in := nv.Input
	res, err := tx.ExecContext(ctx, `
		INSERT INTO visits (patient_id, chief_complaint, diagnosis, problems,
		                    treatment_plan, notes, doctor_name,
		                    lab_tests, imaging_tests, ai_summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.PatientID, nullable(in.ChiefComplaint), nullable(in.Diagnosis),
		nullable(in.Problems), nullable(in.TreatmentPlan), nullable(in.Notes),
		nullable(in.DoctorName), nv.LabJSON, nv.ImageJSON, nv.AISummary)
	if err != nil {
		return 0, fmt.Errorf("inserting visit: %w", err)
	}
	visitID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading visit id: %w", err)
	}

	for _, m := range in.Medicines {
		if m.MedicineName == "" {
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO medicines (visit_id, medicine_name, dosage, frequency, duration, instructions)
			VALUES (?, ?, ?, ?, ?, ?)`,
			visitID, m.MedicineName, nullable(m.Dosage), nullable(m.Frequency),
			nullable(m.Duration), nullable(m.Instructions))
		if err != nil {
			return 0, fmt.Errorf("inserting medicine: %w", err)
		}
	}

	if v := in.VitalSigns; v != nil {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO vital_signs (visit_id, temperature, blood_pressure_systolic,
			                         blood_pressure_diastolic, heart_rate, respiratory_rate,
			                         oxygen_saturation, weight, height, bmi)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			visitID, v.Temperature, v.BloodPressureSystolic, v.BloodPressureDiastolic,
			v.HeartRate, v.RespiratoryRate, v.OxygenSaturation, v.Weight, v.Height, v.BMI)
		if err != nil {
			return 0, fmt.Errorf("inserting vital signs: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing visit: %w", err)
	}
	return visitID, nil
}

const visitCols = `v.id, v.patient_id, v.visit_date,
	v.chief_complaint, v.diagnosis, v.problems, v.treatment_plan,
	v.notes, v.doctor_name, v.ai_summary, v.created_at,
	COALESCE(v.lab_tests, ''), COALESCE(v.imaging_tests, ''),
	COALESCE(p.first_name, ''), COALESCE(p.last_name, '')`

func (r *sqliteRepo) scanVisit(rows interface{ Scan(...interface{}) error }) (*Visit, error) {
	var v Visit
	var lab, imaging string
	err := rows.Scan(&v.ID, &v.PatientID, &v.VisitDate,
		&v.ChiefComplaint, &v.Diagnosis, &v.Problems, &v.TreatmentPlan,
		&v.Notes, &v.DoctorName, &v.AISummary, &v.CreatedAt,
		&lab, &imaging, &v.FirstName, &v.LastName)
	if err != nil {
		return nil, err
	}
	v.LabTests = decodeTests(lab)
	v.ImagingTests = decodeTests(imaging)
	return &v, nil
}

func (r *sqliteRepo) List(ctx context.Context) ([]Visit, error) {
	return r.query(ctx, fmt.Sprintf(`
		SELECT %s FROM visits v
		LEFT JOIN patients p ON v.patient_id = p.id
		ORDER BY v.visit_date DESC`, visitCols))
}

func (r *sqliteRepo) ListByPatient(ctx context.Context, patientID int64) ([]Visit, error) {
	return r.query(ctx, fmt.Sprintf(`
		SELECT %s FROM visits v
		LEFT JOIN patients p ON v.patient_id = p.id
		WHERE v.patient_id = ?
		ORDER BY v.visit_date DESC`, visitCols), patientID)
}

func (r *sqliteRepo) query(ctx context.Context, sqlStr string, args ...interface{}) ([]Visit, error) {
	rows, err := r.conn.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("querying visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		v, err := r.scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}
		visits = append(visits, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range visits {
		if err := r.attachChildren(ctx, &visits[i]); err != nil {
			return nil, err
		}
	}
	return visits, nil
}

func (r *sqliteRepo) GetByID(ctx context.Context, id int64) (*Visit, error) {
	row := r.conn.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s FROM visits v
		LEFT JOIN patients p ON v.patient_id = p.id
		WHERE v.id = ?`, visitCols), id)

	v, err := r.scanVisit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying visit %d: %w", id, err)
	}
	if err := r.attachChildren(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *sqliteRepo) attachChildren(ctx context.Context, v *Visit) error {
	mrows, err := r.conn.QueryContext(ctx, `
		SELECT id, visit_id, medicine_name, dosage, frequency, duration, instructions
		FROM medicines WHERE visit_id = ?`, v.ID)
	if err != nil {
		return fmt.Errorf("querying medicines: %w", err)
	}
	defer mrows.Close()
	v.Medicines = []Medicine{}
	for mrows.Next() {
		var m Medicine
		if err := mrows.Scan(&m.ID, &m.VisitID, &m.MedicineName,
			&m.Dosage, &m.Frequency, &m.Duration, &m.Instructions); err != nil {
			return fmt.Errorf("scanning medicine: %w", err)
		}
		v.Medicines = append(v.Medicines, m)
	}
	if err := mrows.Err(); err != nil {
		return err
	}

	vrows, err := r.conn.QueryContext(ctx, `
		SELECT id, visit_id, temperature, blood_pressure_systolic, blood_pressure_diastolic,
		       heart_rate, respiratory_rate, oxygen_saturation, weight, height, bmi, recorded_at
		FROM vital_signs WHERE visit_id = ?`, v.ID)
	if err != nil {
		return fmt.Errorf("querying vital signs: %w", err)
	}
	defer vrows.Close()
	v.VitalSigns = []VitalSigns{}
	for vrows.Next() {
		var vs VitalSigns
		if err := vrows.Scan(&vs.ID, &vs.VisitID, &vs.Temperature,
			&vs.BloodPressureSystolic, &vs.BloodPressureDiastolic, &vs.HeartRate,
			&vs.RespiratoryRate, &vs.OxygenSaturation, &vs.Weight, &vs.Height,
			&vs.BMI, &vs.RecordedAt); err != nil {
			return fmt.Errorf("scanning vital signs: %w", err)
		}
		v.VitalSigns = append(v.VitalSigns, vs)
	}
	return vrows.Err()
}

// decodeTests tolerates empty and malformed columns; a visit with a corrupt
// test column still lists, just without that column's records.
func decodeTests(raw string) []worklist.TestRecord {
	if raw == "" {
		return []worklist.TestRecord{}
	}
	var records []worklist.TestRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return []worklist.TestRecord{}
	}
	return records
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
