package record

import "github.com/hms/hms/internal/platform/storage"

// Patient maps to the patients table.
type Patient struct {
	PatientID int64
	Name      string
	DOB       string
	Gender    string
	Contact   string
	Address   string
}

func (p *Patient) Table() string { return "patients" }

func (p *Patient) ID() int64 { return p.PatientID }

func (p *Patient) SetID(id int64) { p.PatientID = id }

func (p *Patient) Validate() (bool, string) {
	if isBlank(p.Name) {
		return false, "Name is required"
	}
	if isBlank(p.Contact) {
		return false, "Contact is required"
	}
	return true, "Valid"
}

func (p *Patient) Row() storage.Row {
	return storage.Row{
		"id":      p.PatientID,
		"name":    p.Name,
		"dob":     p.DOB,
		"gender":  p.Gender,
		"contact": p.Contact,
		"address": p.Address,
	}
}

// PatientFromRow decodes a patients row; missing keys default to empty.
func PatientFromRow(r storage.Row) *Patient {
	return &Patient{
		PatientID: rowInt64(r, "id"),
		Name:      rowString(r, "name"),
		DOB:       rowString(r, "dob"),
		Gender:    rowString(r, "gender"),
		Contact:   rowString(r, "contact"),
		Address:   rowString(r, "address"),
	}
}
