package record

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/storage"
)

func newTestBilling() *BillingService {
	return NewBillingService(storage.NewMemory(zerolog.Nop()), zerolog.Nop())
}

func TestCreateBill(t *testing.T) {
	svc := newTestBilling()

	bill, err := svc.CreateBill(context.Background(), 2, 75.50, "Blood test", "2025-02-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.BillID == 0 {
		t.Error("expected generated id to be set")
	}
	if bill.PaymentStatus != PaymentUnpaid {
		t.Errorf("expected new bill to be Unpaid, got %q", bill.PaymentStatus)
	}
}

func TestCreateBill_DefaultsDateIssued(t *testing.T) {
	svc := newTestBilling()

	bill, err := svc.CreateBill(context.Background(), 2, 75.50, "Blood test", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.DateIssued == "" {
		t.Error("expected date issued to default to today")
	}
}

func TestCreateBill_RequiresPositiveAmount(t *testing.T) {
	svc := newTestBilling()

	_, err := svc.CreateBill(context.Background(), 2, 0, "Blood test", "")
	if err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestPatientBills_JoinsPatientName(t *testing.T) {
	svc := newTestBilling()

	lines, err := svc.PatientBills(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 seeded bill for patient 1, got %d", len(lines))
	}
	if lines[0].PatientName != "John Doe" {
		t.Errorf("expected patient name 'John Doe', got %q", lines[0].PatientName)
	}
	if lines[0].Description != "Consultation fee" {
		t.Errorf("expected seeded description, got %q", lines[0].Description)
	}
}

func TestPatientBills_NewestFirst(t *testing.T) {
	svc := newTestBilling()
	ctx := context.Background()

	if _, err := svc.CreateBill(ctx, 1, 20, "Follow-up", "2025-03-01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines, err := svc.PatientBills(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(lines))
	}
	if lines[0].DateIssued != "2025-03-01" {
		t.Errorf("expected newest bill first, got %q", lines[0].DateIssued)
	}
}

func TestUnpaidBills_OldestFirst(t *testing.T) {
	svc := newTestBilling()
	ctx := context.Background()

	if _, err := svc.CreateBill(ctx, 2, 30, "X-ray", "2025-01-10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines, err := svc.UnpaidBills(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 unpaid bills, got %d", len(lines))
	}
	if lines[0].DateIssued != "2025-01-10" {
		t.Errorf("expected oldest unpaid bill first, got %q", lines[0].DateIssued)
	}
}

func TestMarkPaid(t *testing.T) {
	svc := newTestBilling()
	ctx := context.Background()

	paid, err := svc.MarkPaid(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !paid {
		t.Fatal("expected the seeded bill to be marked paid")
	}

	bill, found, err := svc.GetByID(ctx, 1)
	if err != nil || !found {
		t.Fatalf("expected to find bill 1, got found=%v err=%v", found, err)
	}
	if bill.PaymentStatus != PaymentPaid {
		t.Errorf("expected status Paid, got %q", bill.PaymentStatus)
	}
	if bill.PaymentDate == "" {
		t.Error("expected payment date to be stamped")
	}

	unpaid, err := svc.UnpaidBills(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unpaid) != 0 {
		t.Errorf("expected no unpaid bills, got %d", len(unpaid))
	}
}

func TestMarkPaid_MissingBill(t *testing.T) {
	svc := newTestBilling()

	paid, err := svc.MarkPaid(context.Background(), 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid {
		t.Error("expected no bill to be marked")
	}
}
