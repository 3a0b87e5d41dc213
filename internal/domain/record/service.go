package record

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/storage"
)

// Service implements the uniform CRUD contract for one entity type. All
// five entity services share this implementation, parameterized by the
// table name and the row decoder.
type Service[T Entity] struct {
	store  storage.Store
	table  string
	decode func(storage.Row) T
	log    zerolog.Logger
}

func NewService[T Entity](store storage.Store, table string, decode func(storage.Row) T, log zerolog.Logger) *Service[T] {
	return &Service[T]{
		store:  store,
		table:  table,
		decode: decode,
		log:    log.With().Str("service", table).Logger(),
	}
}

// Add validates the record and inserts it. On success the generated id is
// set on the record. Validation failures are reported before any
// persistence call is attempted.
func (s *Service[T]) Add(ctx context.Context, e T) (T, error) {
	if ok, msg := e.Validate(); !ok {
		return e, &ValidationError{Message: msg}
	}

	id, err := s.store.Insert(ctx, s.table, e.Row())
	if err != nil {
		s.log.Error().Err(err).Msg("insert failed")
		return e, &PersistenceError{Op: "insert " + s.table, Err: err}
	}
	e.SetID(id)
	return e, nil
}

// GetAll returns every record of the table in insertion order.
func (s *Service[T]) GetAll(ctx context.Context) ([]T, error) {
	rows, err := s.store.SelectAll(ctx, s.table)
	if err != nil {
		s.log.Error().Err(err).Msg("select failed")
		return nil, &PersistenceError{Op: "select " + s.table, Err: err}
	}

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, s.decode(r))
	}
	return out, nil
}

// GetByID looks up one record. A missing id is a normal outcome reported
// through the second return value, not an error.
func (s *Service[T]) GetByID(ctx context.Context, id int64) (T, bool, error) {
	var zero T

	row, err := s.store.SelectByID(ctx, s.table, id)
	if errors.Is(err, storage.ErrNotFound) {
		return zero, false, nil
	}
	if err != nil {
		s.log.Error().Err(err).Msg("select failed")
		return zero, false, &PersistenceError{Op: "select " + s.table, Err: err}
	}
	return s.decode(row), true, nil
}

// Update validates the record and replaces all fields except the id. The
// affected count distinguishes a missing id (0) from success (1).
func (s *Service[T]) Update(ctx context.Context, e T) (int64, error) {
	if ok, msg := e.Validate(); !ok {
		return 0, &ValidationError{Message: msg}
	}

	count, err := s.store.Update(ctx, s.table, e.ID(), e.Row())
	if err != nil {
		s.log.Error().Err(err).Msg("update failed")
		return 0, &PersistenceError{Op: "update " + s.table, Err: err}
	}
	return count, nil
}

// Delete removes a record by id and returns the affected count. Deleting
// a missing id returns 0 and no error.
func (s *Service[T]) Delete(ctx context.Context, id int64) (int64, error) {
	count, err := s.store.Delete(ctx, s.table, id)
	if err != nil {
		s.log.Error().Err(err).Msg("delete failed")
		return 0, &PersistenceError{Op: "delete " + s.table, Err: err}
	}
	return count, nil
}

// Per-entity constructors, one service for each table.

func NewPatientService(store storage.Store, log zerolog.Logger) *Service[*Patient] {
	return NewService(store, "patients", PatientFromRow, log)
}

func NewDoctorService(store storage.Store, log zerolog.Logger) *Service[*Doctor] {
	return NewService(store, "doctors", DoctorFromRow, log)
}

func NewAppointmentService(store storage.Store, log zerolog.Logger) *Service[*Appointment] {
	return NewService(store, "appointments", AppointmentFromRow, log)
}

func NewMedicalRecordService(store storage.Store, log zerolog.Logger) *Service[*MedicalRecord] {
	return NewService(store, "medical_records", MedicalRecordFromRow, log)
}

func NewUserService(store storage.Store, log zerolog.Logger) *Service[*User] {
	return NewService(store, "users", UserFromRow, log)
}
