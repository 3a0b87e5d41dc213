package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestMemorySeed(t *testing.T) {
	s := NewMemory(zerolog.Nop())
	ctx := context.Background()

	patients, err := s.SelectAll(ctx, "patients")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patients) != 2 {
		t.Fatalf("expected 2 seeded patients, got %d", len(patients))
	}
	if patients[0]["name"] != "John Doe" || patients[1]["name"] != "Jane Smith" {
		t.Errorf("unexpected seed order: %v, %v", patients[0]["name"], patients[1]["name"])
	}

	doctors, _ := s.SelectAll(ctx, "doctors")
	if len(doctors) != 2 {
		t.Errorf("expected 2 seeded doctors, got %d", len(doctors))
	}
	appointments, _ := s.SelectAll(ctx, "appointments")
	if len(appointments) != 1 {
		t.Errorf("expected 1 seeded appointment, got %d", len(appointments))
	}
	bills, _ := s.SelectAll(ctx, "billing")
	if len(bills) != 1 {
		t.Errorf("expected 1 seeded bill, got %d", len(bills))
	}
}

func TestMemoryInsert_GeneratesNextID(t *testing.T) {
	s := NewMemory(zerolog.Nop())
	ctx := context.Background()

	id, err := s.Insert(ctx, "patients", Row{"name": "Sam", "contact": "555-0000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 3 {
		t.Errorf("expected id 3 after seed ids 1 and 2, got %d", id)
	}

	all, _ := s.SelectAll(ctx, "patients")
	if len(all) != 3 {
		t.Fatalf("expected 3 patients, got %d", len(all))
	}
	if all[2]["id"] != int64(3) {
		t.Errorf("expected the new row last in insertion order, got id %v", all[2]["id"])
	}
}

func TestMemoryInsert_IgnoresCallerID(t *testing.T) {
	s := NewMemory(zerolog.Nop())

	id, err := s.Insert(context.Background(), "patients", Row{"id": int64(50), "name": "Sam", "contact": "555-0000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 3 {
		t.Errorf("expected the store to assign id 3, got %d", id)
	}
}

func TestMemoryInsert_IDsNotReusedAfterDelete(t *testing.T) {
	s := NewMemory(zerolog.Nop())
	ctx := context.Background()

	if _, err := s.Delete(ctx, "patients", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, err := s.Insert(ctx, "patients", Row{"name": "Sam", "contact": "555-0000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 2 {
		// max existing id + 1: deleting id 2 makes 2 free again
		t.Errorf("expected id 2, got %d", id)
	}
}

func TestMemorySelectByID(t *testing.T) {
	s := NewMemory(zerolog.Nop())

	row, err := s.SelectByID(context.Background(), "doctors", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row["name"] != "Dr. Bob Wilson" {
		t.Errorf("expected Dr. Bob Wilson, got %v", row["name"])
	}
}

func TestMemorySelectByID_NotFound(t *testing.T) {
	s := NewMemory(zerolog.Nop())

	_, err := s.SelectByID(context.Background(), "patients", 99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemorySelectAll_ReturnsCopies(t *testing.T) {
	s := NewMemory(zerolog.Nop())
	ctx := context.Background()

	rows, _ := s.SelectAll(ctx, "patients")
	rows[0]["name"] = "Mutated"

	again, _ := s.SelectAll(ctx, "patients")
	if again[0]["name"] != "John Doe" {
		t.Error("expected store rows to be isolated from returned copies")
	}
}

func TestMemoryUpdate(t *testing.T) {
	s := NewMemory(zerolog.Nop())
	ctx := context.Background()

	count, err := s.Update(ctx, "patients", 1, Row{"name": "John Q. Doe", "contact": "123-456-7890"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected affected count 1, got %d", count)
	}

	row, _ := s.SelectByID(ctx, "patients", 1)
	if row["name"] != "John Q. Doe" {
		t.Errorf("expected updated name, got %v", row["name"])
	}
	if row["id"] != int64(1) {
		t.Errorf("expected id to survive the update, got %v", row["id"])
	}
}

func TestMemoryUpdate_MissingID(t *testing.T) {
	s := NewMemory(zerolog.Nop())

	count, err := s.Update(context.Background(), "patients", 99, Row{"name": "Nobody"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected affected count 0, got %d", count)
	}
}

func TestMemoryDelete_MissingID(t *testing.T) {
	s := NewMemory(zerolog.Nop())

	count, err := s.Delete(context.Background(), "patients", 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected affected count 0, got %d", count)
	}
}

func TestMemoryUnknownTable(t *testing.T) {
	s := NewMemory(zerolog.Nop())
	ctx := context.Background()

	var terr *UnknownTableError
	if _, err := s.Insert(ctx, "nope", Row{}); !errors.As(err, &terr) {
		t.Errorf("expected UnknownTableError from Insert, got %v", err)
	}
	if _, err := s.SelectAll(ctx, "nope"); !errors.As(err, &terr) {
		t.Errorf("expected UnknownTableError from SelectAll, got %v", err)
	}
	if _, err := s.Update(ctx, "nope", 1, Row{}); !errors.As(err, &terr) {
		t.Errorf("expected UnknownTableError from Update, got %v", err)
	}
	if _, err := s.Delete(ctx, "nope", 1); !errors.As(err, &terr) {
		t.Errorf("expected UnknownTableError from Delete, got %v", err)
	}
}

func TestMemorySelectBills_FilterAndJoin(t *testing.T) {
	s := NewMemory(zerolog.Nop())
	ctx := context.Background()

	rows, err := s.SelectBills(ctx, BillFilter{PatientID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 bill for patient 1, got %d", len(rows))
	}
	if rows[0]["patient_name"] != "John Doe" {
		t.Errorf("expected joined patient name, got %v", rows[0]["patient_name"])
	}

	rows, err = s.SelectBills(ctx, BillFilter{PatientID: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no bills for patient 2, got %d", len(rows))
	}

	rows, err = s.SelectBills(ctx, BillFilter{Status: "Paid"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no paid bills in the seed, got %d", len(rows))
	}
}

func TestMemorySelectBills_Ordering(t *testing.T) {
	s := NewMemory(zerolog.Nop())
	ctx := context.Background()

	if _, err := s.Insert(ctx, "billing", Row{"patient_id": int64(2), "amount": 30.0, "description": "X-ray", "payment_status": "Unpaid", "date_issued": "2025-01-10"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, _ := s.SelectBills(ctx, BillFilter{OldestFirst: true})
	if rows[0]["date_issued"] != "2025-01-10" {
		t.Errorf("expected oldest first, got %v", rows[0]["date_issued"])
	}

	rows, _ = s.SelectBills(ctx, BillFilter{})
	if rows[0]["date_issued"] != "2025-01-15" {
		t.Errorf("expected newest first, got %v", rows[0]["date_issued"])
	}
}
