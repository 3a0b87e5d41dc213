package storage

import (
	"context"
	"errors"
	"fmt"
)

// Row is one record keyed by column name. Values are int64 for ids and
// foreign keys, float64 for amounts, and string for everything else.
type Row map[string]any

// ErrNotFound is returned by SelectByID when no row has the given id.
var ErrNotFound = errors.New("row not found")

// UnknownTableError signals an operation against a table the store does
// not manage.
type UnknownTableError struct {
	Table string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("unknown table %q", e.Table)
}

// tableColumns is the schema registry shared by both store variants: the
// mutable columns of each table, in statement order. The surrogate "id"
// column is always store-assigned and never listed here.
var tableColumns = map[string][]string{
	"patients":        {"name", "dob", "gender", "contact", "address"},
	"doctors":         {"name", "specialization", "contact", "email"},
	"appointments":    {"patient_id", "doctor_id", "appointment_date", "status"},
	"medical_records": {"patient_id", "doctor_id", "diagnosis", "prescription", "visit_date"},
	"billing":         {"patient_id", "amount", "description", "payment_status", "date_issued", "payment_date"},
	"users":           {"username", "password", "role"},
}

// Columns returns the mutable column list for a table.
func Columns(table string) ([]string, bool) {
	cols, ok := tableColumns[table]
	return cols, ok
}

// BillFilter narrows the one supported join, billing rows with the owning
// patient's name attached.
type BillFilter struct {
	PatientID   int64  // 0 matches any patient
	Status      string // "" matches any payment status
	OldestFirst bool   // order by date_issued ascending instead of descending
}

// Store is the persistence gateway. Both variants assign surrogate ids on
// insert, keep select-all in insertion order, and wrap every mutation in a
// unit of work that is rolled back and re-signaled on failure.
//
// Stores are driven synchronously from a single caller and perform no
// internal locking.
type Store interface {
	// Insert stores a new row and returns the generated id. Any "id" key
	// in the given row is ignored.
	Insert(ctx context.Context, table string, row Row) (int64, error)

	// SelectAll returns every row of the table in insertion order.
	SelectAll(ctx context.Context, table string) ([]Row, error)

	// SelectByID returns the row with the given id, or ErrNotFound.
	SelectByID(ctx context.Context, table string, id int64) (Row, error)

	// Update replaces all mutable columns of the row with the given id and
	// returns the affected count (0 when the id does not exist).
	Update(ctx context.Context, table string, id int64, row Row) (int64, error)

	// Delete removes the row with the given id and returns the affected
	// count (0 when the id does not exist).
	Delete(ctx context.Context, table string, id int64) (int64, error)

	// SelectBills returns billing rows joined to patients, each with an
	// extra "patient_name" column, ordered by date_issued.
	SelectBills(ctx context.Context, f BillFilter) ([]Row, error)

	// Close releases the backing connection, if any.
	Close()
}
