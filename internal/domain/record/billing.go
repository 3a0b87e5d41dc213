package record

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/storage"
	"github.com/hms/hms/pkg/format"
)

// BillLine is one row of the billing/patients join, a bill with the
// owning patient's name attached. Display only.
type BillLine struct {
	Bill
	PatientName string
}

// BillingService layers the bill-to-patient listings and payment
// transitions over the generic billing CRUD service.
type BillingService struct {
	*Service[*Bill]
	store storage.Store
	log   zerolog.Logger
}

func NewBillingService(store storage.Store, log zerolog.Logger) *BillingService {
	return &BillingService{
		Service: NewService(store, "billing", BillFromRow, log),
		store:   store,
		log:     log.With().Str("service", "billing").Logger(),
	}
}

// CreateBill issues a new unpaid bill. An empty dateIssued defaults to
// today.
func (s *BillingService) CreateBill(ctx context.Context, patientID int64, amount float64, description, dateIssued string) (*Bill, error) {
	if dateIssued == "" {
		dateIssued = format.Today()
	}
	bill := &Bill{
		PatientID:     patientID,
		Amount:        amount,
		Description:   description,
		PaymentStatus: PaymentUnpaid,
		DateIssued:    dateIssued,
	}
	return s.Add(ctx, bill)
}

// PatientBills returns all bills for one patient, newest first.
func (s *BillingService) PatientBills(ctx context.Context, patientID int64) ([]BillLine, error) {
	return s.selectBills(ctx, storage.BillFilter{PatientID: patientID})
}

// UnpaidBills returns every unpaid bill, oldest first.
func (s *BillingService) UnpaidBills(ctx context.Context) ([]BillLine, error) {
	return s.selectBills(ctx, storage.BillFilter{Status: PaymentUnpaid, OldestFirst: true})
}

// MarkPaid flips a bill to Paid and stamps the payment date. It reports
// whether a bill was actually updated.
func (s *BillingService) MarkPaid(ctx context.Context, billID int64) (bool, error) {
	bill, found, err := s.GetByID(ctx, billID)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	bill.PaymentStatus = PaymentPaid
	bill.PaymentDate = format.Today()
	count, err := s.Update(ctx, bill)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *BillingService) selectBills(ctx context.Context, f storage.BillFilter) ([]BillLine, error) {
	rows, err := s.store.SelectBills(ctx, f)
	if err != nil {
		s.log.Error().Err(err).Msg("bill join failed")
		return nil, &PersistenceError{Op: "select billing join", Err: err}
	}

	out := make([]BillLine, 0, len(rows))
	for _, r := range rows {
		out = append(out, BillLine{
			Bill:        *BillFromRow(r),
			PatientName: rowString(r, "patient_name"),
		})
	}
	return out, nil
}
