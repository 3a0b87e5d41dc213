package record

import "github.com/hms/hms/internal/platform/storage"

// Doctor maps to the doctors table.
type Doctor struct {
	DoctorID       int64
	Name           string
	Specialization string
	Contact        string
	Email          string
}

func (d *Doctor) Table() string { return "doctors" }

func (d *Doctor) ID() int64 { return d.DoctorID }

func (d *Doctor) SetID(id int64) { d.DoctorID = id }

func (d *Doctor) Validate() (bool, string) {
	if isBlank(d.Name) {
		return false, "Name is required"
	}
	if isBlank(d.Specialization) {
		return false, "Specialization is required"
	}
	if isBlank(d.Email) {
		return false, "Email is required"
	}
	return true, "Valid"
}

func (d *Doctor) Row() storage.Row {
	return storage.Row{
		"id":             d.DoctorID,
		"name":           d.Name,
		"specialization": d.Specialization,
		"contact":        d.Contact,
		"email":          d.Email,
	}
}

// DoctorFromRow decodes a doctors row; missing keys default to empty.
func DoctorFromRow(r storage.Row) *Doctor {
	return &Doctor{
		DoctorID:       rowInt64(r, "id"),
		Name:           rowString(r, "name"),
		Specialization: rowString(r, "specialization"),
		Contact:        rowString(r, "contact"),
		Email:          rowString(r, "email"),
	}
}
