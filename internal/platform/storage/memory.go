package storage

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
)

// MemoryStore is the in-memory store variant. It is seeded with the fixed
// sample rows used when no external database is reachable.
type MemoryStore struct {
	tables map[string][]Row
	log    zerolog.Logger
}

// NewMemory returns a seeded in-memory store.
func NewMemory(log zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		tables: seedRows(),
		log:    log.With().Str("store", "memory").Logger(),
	}
}

// seedRows builds the fixed demo dataset: 2 patients, 2 doctors,
// 1 appointment, 1 bill.
func seedRows() map[string][]Row {
	rows := map[string][]Row{
		"patients": {
			{"id": int64(1), "name": "John Doe", "dob": "1990-01-15", "gender": "M", "contact": "123-456-7890", "address": "123 Main St"},
			{"id": int64(2), "name": "Jane Smith", "dob": "1985-03-22", "gender": "F", "contact": "987-654-3210", "address": "456 Oak Ave"},
		},
		"doctors": {
			{"id": int64(1), "name": "Dr. Alice Johnson", "specialization": "Cardiology", "contact": "555-0101", "email": "alice@hospital.com"},
			{"id": int64(2), "name": "Dr. Bob Wilson", "specialization": "Neurology", "contact": "555-0102", "email": "bob@hospital.com"},
		},
		"appointments": {
			{"id": int64(1), "patient_id": int64(1), "doctor_id": int64(1), "appointment_date": "2025-01-20 09:00:00", "status": "Scheduled"},
		},
		"billing": {
			{"id": int64(1), "patient_id": int64(1), "amount": 150.00, "description": "Consultation fee", "payment_status": "Unpaid", "date_issued": "2025-01-15", "payment_date": ""},
		},
	}
	for table := range tableColumns {
		if _, ok := rows[table]; !ok {
			rows[table] = nil
		}
	}
	return rows
}

func (s *MemoryStore) Insert(_ context.Context, table string, row Row) (int64, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return 0, &UnknownTableError{Table: table}
	}

	id := s.nextID(table)
	stored := Row{"id": id}
	for _, col := range cols {
		if v, ok := row[col]; ok {
			stored[col] = v
		}
	}
	s.tables[table] = append(s.tables[table], stored)
	return id, nil
}

func (s *MemoryStore) SelectAll(_ context.Context, table string) ([]Row, error) {
	rows, ok := s.tables[table]
	if !ok {
		return nil, &UnknownTableError{Table: table}
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, copyRow(r))
	}
	return out, nil
}

func (s *MemoryStore) SelectByID(_ context.Context, table string, id int64) (Row, error) {
	rows, ok := s.tables[table]
	if !ok {
		return nil, &UnknownTableError{Table: table}
	}

	for _, r := range rows {
		if r["id"] == id {
			return copyRow(r), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Update(_ context.Context, table string, id int64, row Row) (int64, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return 0, &UnknownTableError{Table: table}
	}

	for i, r := range s.tables[table] {
		if r["id"] != id {
			continue
		}
		stored := Row{"id": id}
		for _, col := range cols {
			if v, ok := row[col]; ok {
				stored[col] = v
			}
		}
		s.tables[table][i] = stored
		return 1, nil
	}
	return 0, nil
}

func (s *MemoryStore) Delete(_ context.Context, table string, id int64) (int64, error) {
	rows, ok := s.tables[table]
	if !ok {
		return 0, &UnknownTableError{Table: table}
	}

	for i, r := range rows {
		if r["id"] == id {
			s.tables[table] = append(rows[:i:i], rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *MemoryStore) SelectBills(_ context.Context, f BillFilter) ([]Row, error) {
	names := make(map[int64]string)
	for _, p := range s.tables["patients"] {
		if id, ok := p["id"].(int64); ok {
			names[id], _ = p["name"].(string)
		}
	}

	var out []Row
	for _, b := range s.tables["billing"] {
		patientID, _ := b["patient_id"].(int64)
		status, _ := b["payment_status"].(string)
		if f.PatientID != 0 && patientID != f.PatientID {
			continue
		}
		if f.Status != "" && status != f.Status {
			continue
		}
		joined := copyRow(b)
		joined["patient_name"] = names[patientID]
		out = append(out, joined)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i]["date_issued"].(string)
		b, _ := out[j]["date_issued"].(string)
		if f.OldestFirst {
			return a < b
		}
		return a > b
	})
	return out, nil
}

func (s *MemoryStore) Close() {}

// nextID implements the per-table id policy: max existing id + 1.
func (s *MemoryStore) nextID(table string) int64 {
	var max int64
	for _, r := range s.tables[table] {
		if id, ok := r["id"].(int64); ok && id > max {
			max = id
		}
	}
	return max + 1
}

func copyRow(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
