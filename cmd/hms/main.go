package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/record"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/storage"
	"github.com/hms/hms/pkg/format"
)

// app wires the core for one command invocation: config, logger, store,
// auth gate, and the entity services. The console front end stands in for
// the desktop presentation layer.
type app struct {
	cfg          *config.Config
	log          zerolog.Logger
	store        storage.Store
	gate         *auth.Gate
	patients     *record.Service[*record.Patient]
	doctors      *record.Service[*record.Doctor]
	appointments *record.Service[*record.Appointment]
	records      *record.Service[*record.MedicalRecord]
	billing      *record.BillingService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	store := storage.Open(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, logger)

	return &app{
		cfg:          cfg,
		log:          logger,
		store:        store,
		gate:         auth.NewGate(auth.DefaultCredentials(), logger),
		patients:     record.NewPatientService(store, logger),
		doctors:      record.NewDoctorService(store, logger),
		appointments: record.NewAppointmentService(store, logger),
		records:      record.NewMedicalRecordService(store, logger),
		billing:      record.NewBillingService(store, logger),
	}, nil
}

func (a *app) close() {
	a.store.Close()
}

// login establishes the session from the persistent --user/--password
// flags and checks the role gate of the invoked command.
func (a *app) login(user, password string, roles ...string) error {
	if _, ok := a.gate.Login(user, password); !ok {
		return fmt.Errorf("invalid username or password")
	}
	if !a.gate.HasAnyRole(roles...) {
		return fmt.Errorf("requires role %s", strings.Join(roles, " or "))
	}
	return nil
}

func main() {
	var user, password string

	rootCmd := &cobra.Command{
		Use:           "hms",
		Short:         "Hospital administration console",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&user, "user", "", "username")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "password")

	// run bootstraps the app, logs in with the command's role gate, and
	// hands off to fn.
	run := func(roles []string, fn func(ctx context.Context, a *app) error) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.login(user, password, roles...); err != nil {
				return err
			}
			defer a.gate.Logout()
			return fn(ctx, a)
		}
	}

	anyRole := []string{record.RoleAdmin, record.RoleDoctor, record.RoleReceptionist}
	frontDesk := []string{record.RoleAdmin, record.RoleReceptionist}
	clinical := []string{record.RoleAdmin, record.RoleDoctor}
	adminOnly := []string{record.RoleAdmin}

	rootCmd.AddCommand(whoamiCmd(run, anyRole))
	rootCmd.AddCommand(patientsCmd(run, frontDesk))
	rootCmd.AddCommand(doctorsCmd(run, adminOnly))
	rootCmd.AddCommand(appointmentsCmd(run, frontDesk))
	rootCmd.AddCommand(recordsCmd(run, clinical))
	rootCmd.AddCommand(billsCmd(run, frontDesk))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type runFunc func(roles []string, fn func(ctx context.Context, a *app) error) func(cmd *cobra.Command, args []string) error

func whoamiCmd(run runFunc, roles []string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: run(roles, func(_ context.Context, a *app) error {
			session, ok := a.gate.Current()
			if !ok {
				fmt.Println("anonymous")
				return nil
			}
			fmt.Printf("%s (%s), session %s\n", session.User.Username, session.User.Role, session.ID)
			return nil
		}),
	}
}

func patientsCmd(run runFunc, roles []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Manage patients",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all patients",
		RunE: run(roles, func(ctx context.Context, a *app) error {
			patients, err := a.patients.GetAll(ctx)
			if err != nil {
				return err
			}
			w := newTable("ID", "NAME", "DOB", "GENDER", "CONTACT", "ADDRESS")
			for _, p := range patients {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", p.PatientID, p.Name, p.DOB, p.Gender, p.Contact, p.Address)
			}
			return w.Flush()
		}),
	})

	var p record.Patient
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a patient",
		RunE: run(roles, func(ctx context.Context, a *app) error {
			if p.DOB != "" {
				normalized, ok := format.Date(p.DOB)
				if !ok {
					return fmt.Errorf("invalid date of birth %q", p.DOB)
				}
				p.DOB = normalized
			}
			added, err := a.patients.Add(ctx, &p)
			if err != nil {
				return err
			}
			fmt.Printf("patient %d registered\n", added.PatientID)
			return nil
		}),
	}
	addCmd.Flags().StringVar(&p.Name, "name", "", "patient name")
	addCmd.Flags().StringVar(&p.DOB, "dob", "", "date of birth (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&p.Gender, "gender", "", "gender")
	addCmd.Flags().StringVar(&p.Contact, "contact", "", "contact number")
	addCmd.Flags().StringVar(&p.Address, "address", "", "address")
	cmd.AddCommand(addCmd)

	var deleteID int64
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a patient by id",
		RunE: run(roles, func(ctx context.Context, a *app) error {
			count, err := a.patients.Delete(ctx, deleteID)
			if err != nil {
				return err
			}
			if count == 0 {
				fmt.Printf("no patient with id %d\n", deleteID)
				return nil
			}
			fmt.Printf("patient %d deleted\n", deleteID)
			return nil
		}),
	}
	deleteCmd.Flags().Int64Var(&deleteID, "id", 0, "patient id")
	cmd.AddCommand(deleteCmd)

	return cmd
}

func doctorsCmd(run runFunc, roles []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Manage doctors",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all doctors",
		RunE: run(roles, func(ctx context.Context, a *app) error {
			doctors, err := a.doctors.GetAll(ctx)
			if err != nil {
				return err
			}
			w := newTable("ID", "NAME", "SPECIALIZATION", "CONTACT", "EMAIL")
			for _, d := range doctors {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", d.DoctorID, d.Name, d.Specialization, d.Contact, d.Email)
			}
			return w.Flush()
		}),
	})

	var d record.Doctor
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a doctor",
		RunE: run(roles, func(ctx context.Context, a *app) error {
			if d.Email != "" && !format.ValidEmail(d.Email) {
				return fmt.Errorf("invalid email %q", d.Email)
			}
			added, err := a.doctors.Add(ctx, &d)
			if err != nil {
				return err
			}
			fmt.Printf("doctor %d added\n", added.DoctorID)
			return nil
		}),
	}
	addCmd.Flags().StringVar(&d.Name, "name", "", "doctor name")
	addCmd.Flags().StringVar(&d.Specialization, "specialization", "", "specialization")
	addCmd.Flags().StringVar(&d.Contact, "contact", "", "contact number")
	addCmd.Flags().StringVar(&d.Email, "email", "", "email address")
	cmd.AddCommand(addCmd)

	return cmd
}

func appointmentsCmd(run runFunc, roles []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "Manage appointments",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all appointments",
		RunE: run(roles, func(ctx context.Context, a *app) error {
			appointments, err := a.appointments.GetAll(ctx)
			if err != nil {
				return err
			}
			w := newTable("ID", "PATIENT", "DOCTOR", "DATE", "STATUS")
			for _, appt := range appointments {
				fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\n", appt.AppointmentID, appt.PatientID, appt.DoctorID, appt.AppointmentDate, appt.Status)
			}
			return w.Flush()
		}),
	})

	var appt record.Appointment
	bookCmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment",
		RunE: run(roles, func(ctx context.Context, a *app) error {
			appt.Status = record.StatusScheduled
			added, err := a.appointments.Add(ctx, &appt)
			if err != nil {
				return err
			}
			fmt.Printf("appointment %d booked\n", added.AppointmentID)
			return nil
		}),
	}
	bookCmd.Flags().Int64Var(&appt.PatientID, "patient", 0, "patient id")
	bookCmd.Flags().Int64Var(&appt.DoctorID, "doctor", 0, "doctor id")
	bookCmd.Flags().StringVar(&appt.AppointmentDate, "date", "", "appointment date and time")
	cmd.AddCommand(bookCmd)

	var cancelID int64
	cancelCmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel an appointment",
		RunE: run(roles, func(ctx context.Context, a *app) error {
			appt, found, err := a.appointments.GetByID(ctx, cancelID)
			if err != nil {
				return err
			}
			if !found {
				fmt.Printf("no appointment with id %d\n", cancelID)
				return nil
			}
			appt.Status = record.StatusCancelled
			if _, err := a.appointments.Update(ctx, appt); err != nil {
				return err
			}
			fmt.Printf("appointment %d cancelled\n", cancelID)
			return nil
		}),
	}
	cancelCmd.Flags().Int64Var(&cancelID, "id", 0, "appointment id")
	cmd.AddCommand(cancelCmd)

	return cmd
}

func recordsCmd(run runFunc, roles []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Manage medical records",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all medical records",
		RunE: run(roles, func(ctx context.Context, a *app) error {
			records, err := a.records.GetAll(ctx)
			if err != nil {
				return err
			}
			w := newTable("ID", "PATIENT", "DOCTOR", "DIAGNOSIS", "PRESCRIPTION", "VISIT")
			for _, m := range records {
				fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\n", m.RecordID, m.PatientID, m.DoctorID, m.Diagnosis, m.Prescription, m.VisitDate)
			}
			return w.Flush()
		}),
	})

	var m record.MedicalRecord
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a medical record",
		RunE: run(roles, func(ctx context.Context, a *app) error {
			if m.VisitDate == "" {
				m.VisitDate = format.Today()
			}
			added, err := a.records.Add(ctx, &m)
			if err != nil {
				return err
			}
			fmt.Printf("medical record %d added\n", added.RecordID)
			return nil
		}),
	}
	addCmd.Flags().Int64Var(&m.PatientID, "patient", 0, "patient id")
	addCmd.Flags().Int64Var(&m.DoctorID, "doctor", 0, "doctor id")
	addCmd.Flags().StringVar(&m.Diagnosis, "diagnosis", "", "diagnosis")
	addCmd.Flags().StringVar(&m.Prescription, "prescription", "", "prescription")
	addCmd.Flags().StringVar(&m.VisitDate, "visit-date", "", "visit date (defaults to today)")
	cmd.AddCommand(addCmd)

	return cmd
}

func billsCmd(run runFunc, roles []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Manage billing",
	}

	var patientID int64
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List bills for a patient",
		RunE: run(roles, func(ctx context.Context, a *app) error {
			lines, err := a.billing.PatientBills(ctx, patientID)
			if err != nil {
				return err
			}
			printBills(lines)
			return nil
		}),
	}
	listCmd.Flags().Int64Var(&patientID, "patient", 0, "patient id")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "unpaid",
		Short: "List all unpaid bills",
		RunE: run(roles, func(ctx context.Context, a *app) error {
			lines, err := a.billing.UnpaidBills(ctx)
			if err != nil {
				return err
			}
			printBills(lines)
			return nil
		}),
	})

	var bill struct {
		patientID   int64
		amount      float64
		description string
		dateIssued  string
	}
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Issue a bill",
		RunE: run(roles, func(ctx context.Context, a *app) error {
			added, err := a.billing.CreateBill(ctx, bill.patientID, bill.amount, bill.description, bill.dateIssued)
			if err != nil {
				return err
			}
			fmt.Printf("bill %d issued for %s\n", added.BillID, format.Currency(added.Amount))
			return nil
		}),
	}
	newCmd.Flags().Int64Var(&bill.patientID, "patient", 0, "patient id")
	newCmd.Flags().Float64Var(&bill.amount, "amount", 0, "amount")
	newCmd.Flags().StringVar(&bill.description, "description", "", "description")
	newCmd.Flags().StringVar(&bill.dateIssued, "date", "", "date issued (defaults to today)")
	cmd.AddCommand(newCmd)

	var payID int64
	payCmd := &cobra.Command{
		Use:   "pay",
		Short: "Mark a bill as paid",
		RunE: run(roles, func(ctx context.Context, a *app) error {
			paid, err := a.billing.MarkPaid(ctx, payID)
			if err != nil {
				return err
			}
			if !paid {
				fmt.Printf("no bill with id %d\n", payID)
				return nil
			}
			fmt.Printf("bill %d marked as paid\n", payID)
			return nil
		}),
	}
	payCmd.Flags().Int64Var(&payID, "id", 0, "bill id")
	cmd.AddCommand(payCmd)

	return cmd
}

func printBills(lines []record.BillLine) {
	w := newTable("ID", "PATIENT", "AMOUNT", "DESCRIPTION", "STATUS", "ISSUED")
	for _, l := range lines {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			l.BillID, l.PatientName, format.Currency(l.Amount), l.Description, l.PaymentStatus, l.DateIssued)
	}
	w.Flush()
}

func newTable(headers ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	return w
}
