package record

import "github.com/hms/hms/internal/platform/storage"

// Bill payment status values.
const (
	PaymentUnpaid = "Unpaid"
	PaymentPaid   = "Paid"
)

// Bill maps to the billing table.
type Bill struct {
	BillID        int64
	PatientID     int64
	Amount        float64
	Description   string
	PaymentStatus string
	DateIssued    string
	PaymentDate   string
}

func (b *Bill) Table() string { return "billing" }

func (b *Bill) ID() int64 { return b.BillID }

func (b *Bill) SetID(id int64) { b.BillID = id }

func (b *Bill) Validate() (bool, string) {
	if b.PatientID == 0 {
		return false, "Patient is required"
	}
	if b.Amount <= 0 {
		return false, "Amount must be positive"
	}
	if isBlank(b.DateIssued) {
		return false, "Date issued is required"
	}
	return true, "Valid"
}

func (b *Bill) Row() storage.Row {
	return storage.Row{
		"id":             b.BillID,
		"patient_id":     b.PatientID,
		"amount":         b.Amount,
		"description":    b.Description,
		"payment_status": b.PaymentStatus,
		"date_issued":    b.DateIssued,
		"payment_date":   b.PaymentDate,
	}
}

// BillFromRow decodes a billing row. A missing payment_status key
// defaults to Unpaid; other missing keys default to empty.
func BillFromRow(r storage.Row) *Bill {
	status := PaymentUnpaid
	if _, ok := r["payment_status"]; ok {
		status = rowString(r, "payment_status")
	}
	return &Bill{
		BillID:        rowInt64(r, "id"),
		PatientID:     rowInt64(r, "patient_id"),
		Amount:        rowFloat64(r, "amount"),
		Description:   rowString(r, "description"),
		PaymentStatus: status,
		DateIssued:    rowString(r, "date_issued"),
		PaymentDate:   rowString(r, "payment_date"),
	}
}
