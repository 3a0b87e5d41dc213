package record

import "github.com/hms/hms/internal/platform/storage"

// Appointment status values.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Appointment maps to the appointments table. PatientID and DoctorID are
// foreign keys by convention; nothing enforces them.
type Appointment struct {
	AppointmentID   int64
	PatientID       int64
	DoctorID        int64
	AppointmentDate string
	Status          string
}

func (a *Appointment) Table() string { return "appointments" }

func (a *Appointment) ID() int64 { return a.AppointmentID }

func (a *Appointment) SetID(id int64) { a.AppointmentID = id }

func (a *Appointment) Validate() (bool, string) {
	if isBlank(a.AppointmentDate) {
		return false, "Appointment date is required"
	}
	switch a.Status {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true, "Valid"
	}
	return false, "Invalid status"
}

func (a *Appointment) Row() storage.Row {
	return storage.Row{
		"id":               a.AppointmentID,
		"patient_id":       a.PatientID,
		"doctor_id":        a.DoctorID,
		"appointment_date": a.AppointmentDate,
		"status":           a.Status,
	}
}

// AppointmentFromRow decodes an appointments row. A missing status key
// defaults to Scheduled; other missing keys default to empty.
func AppointmentFromRow(r storage.Row) *Appointment {
	status := StatusScheduled
	if _, ok := r["status"]; ok {
		status = rowString(r, "status")
	}
	return &Appointment{
		AppointmentID:   rowInt64(r, "id"),
		PatientID:       rowInt64(r, "patient_id"),
		DoctorID:        rowInt64(r, "doctor_id"),
		AppointmentDate: rowString(r, "appointment_date"),
		Status:          status,
	}
}
