package record

import "github.com/hms/hms/internal/platform/storage"

// MedicalRecord maps to the medical_records table.
type MedicalRecord struct {
	RecordID     int64
	PatientID    int64
	DoctorID     int64
	Diagnosis    string
	Prescription string
	VisitDate    string
}

func (m *MedicalRecord) Table() string { return "medical_records" }

func (m *MedicalRecord) ID() int64 { return m.RecordID }

func (m *MedicalRecord) SetID(id int64) { m.RecordID = id }

func (m *MedicalRecord) Validate() (bool, string) {
	if isBlank(m.Diagnosis) {
		return false, "Diagnosis is required"
	}
	if isBlank(m.VisitDate) {
		return false, "Visit date is required"
	}
	return true, "Valid"
}

func (m *MedicalRecord) Row() storage.Row {
	return storage.Row{
		"id":           m.RecordID,
		"patient_id":   m.PatientID,
		"doctor_id":    m.DoctorID,
		"diagnosis":    m.Diagnosis,
		"prescription": m.Prescription,
		"visit_date":   m.VisitDate,
	}
}

// MedicalRecordFromRow decodes a medical_records row; missing keys
// default to empty.
func MedicalRecordFromRow(r storage.Row) *MedicalRecord {
	return &MedicalRecord{
		RecordID:     rowInt64(r, "id"),
		PatientID:    rowInt64(r, "patient_id"),
		DoctorID:     rowInt64(r, "doctor_id"),
		Diagnosis:    rowString(r, "diagnosis"),
		Prescription: rowString(r, "prescription"),
		VisitDate:    rowString(r, "visit_date"),
	}
}
