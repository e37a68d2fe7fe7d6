package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/smartclinic/clinic-ops/internal/api"
	"github.com/smartclinic/clinic-ops/internal/appointments"
	"github.com/smartclinic/clinic-ops/internal/chat"
	"github.com/smartclinic/clinic-ops/internal/collection"
	appconfig "github.com/smartclinic/clinic-ops/internal/config"
	"github.com/smartclinic/clinic-ops/internal/dashboard"
	"github.com/smartclinic/clinic-ops/internal/editor"
	"github.com/smartclinic/clinic-ops/internal/observability/metrics"
	"github.com/smartclinic/clinic-ops/internal/patients"
	"github.com/smartclinic/clinic-ops/pkg/logging"
)

// app bundles the controllers the command loop dispatches to.
type app struct {
	patients  *collection.Controller[patients.Patient, patients.CreatePatient, patients.UpdatePatient]
	appts     *collection.Controller[appointments.Appointment, appointments.CreateAppointment, appointments.UpdateAppointment]
	patEditor *editor.Session[patients.Patient, patients.CreatePatient, patients.UpdatePatient]
	apptForm  *appointments.Form
	apptEdit  *editor.Session[appointments.Appointment, appointments.CreateAppointment, appointments.UpdateAppointment]
	chat      *chat.Session
	in        *bufio.Scanner
	out       *os.File
}

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := openLogger(cfg.LogLevel)

	reg := prometheus.NewRegistry()
	client, err := api.NewClient(api.ClientConfig{
		BaseURL: cfg.APIBaseURL,
		Token:   cfg.APIToken,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
		Metrics: metrics.NewGatewayMetrics(reg),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "client init failed:", err)
		os.Exit(1)
	}

	patientsGW := api.NewResource[patients.Patient, patients.CreatePatient, patients.UpdatePatient](client, "/patients", "patients")
	apptsGW := api.NewResource[appointments.Appointment, appointments.CreateAppointment, appointments.UpdateAppointment](client, "/appointments", "appointments")

	a := &app{
		patients: collection.New[patients.Patient, patients.CreatePatient, patients.UpdatePatient](
			"patients", patientsGW, patients.SearchFields, logger),
		appts: collection.New[appointments.Appointment, appointments.CreateAppointment, appointments.UpdateAppointment](
			"appointments", apptsGW, appointments.SearchFields, logger),
		chat:     chat.NewSession(api.NewChatClient(client), logger, metrics.NewChatMetrics(reg)),
		in:       bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
	}
	a.patEditor = editor.NewSession[patients.Patient, patients.CreatePatient, patients.UpdatePatient](patients.NewForm(), a.patients)
	a.apptForm = appointments.NewForm()
	a.apptEdit = editor.NewSession[appointments.Appointment, appointments.CreateAppointment, appointments.UpdateAppointment](a.apptForm, a.appts)

	ctx := context.Background()
	if err := collection.RefreshAll(ctx, a.patients, a.appts); err != nil {
		fmt.Fprintln(a.out, "warning: initial load failed:", err)
	}

	fmt.Fprintln(a.out, "SmartClinic operations console. Type 'help' for commands.")
	a.loop(ctx)
}

func openLogger(level string) *logging.Logger {
	f, err := os.OpenFile("clinicops.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return logging.NewWithWriter(level, os.Stderr)
	}
	return logging.NewWithWriter(level, f)
}

func (a *app) loop(ctx context.Context) {
	for {
		fmt.Fprint(a.out, "> ")
		if !a.in.Scan() {
			return
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			a.printHelp()
		case "patients":
			a.patients.SetFilter(strings.Join(args, " "))
			a.printPatients()
		case "patient":
			a.patientCmd(ctx, args)
		case "appts":
			a.appts.SetFilter(strings.Join(args, " "))
			a.printAppointments()
		case "appt":
			a.apptCmd(ctx, args)
		case "chat":
			a.chatCmd(ctx, strings.TrimSpace(strings.TrimPrefix(line, "chat")))
		case "stats":
			a.printStats()
		case "refresh":
			if err := collection.RefreshAll(ctx, a.patients, a.appts); err != nil {
				fmt.Fprintln(a.out, "refresh failed:", err)
			}
		case "quit", "exit":
			return
		default:
			fmt.Fprintf(a.out, "unknown command %q, try 'help'\n", cmd)
		}
	}
}

func (a *app) printHelp() {
	fmt.Fprint(a.out, `commands:
  patients [query]          list patients, optionally filtered
  patient add               create a patient
  patient edit <id>         edit a patient
  patient rm <id>           delete a patient (asks for confirmation)
  appts [query]             list appointments, optionally filtered
  appt add                  schedule an appointment
  appt edit <id>            edit an appointment
  appt status <id> <value>  set status (scheduled, completed, cancelled)
  appt rm <id>              cancel and delete an appointment
  chat <message>            talk to the assistant
  stats                     clinic overview
  refresh                   reload both collections
  quit
`)
}

func (a *app) printPatients() {
	view := a.patients.View()
	if len(view) == 0 {
		fmt.Fprintln(a.out, "no patients")
		return
	}
	for _, p := range view {
		fmt.Fprintf(a.out, "%s  %-24s %-28s %s\n", p.ID, p.FullName(), p.Email, p.Phone)
	}
}

func (a *app) printAppointments() {
	view := a.appts.View()
	if len(view) == 0 {
		fmt.Fprintln(a.out, "no appointments")
		return
	}
	for _, ap := range view {
		fmt.Fprintf(a.out, "%s  %s %s  %-24s %-20s [%s] %s\n",
			ap.ID, ap.Date, ap.Time, ap.PatientName, ap.DoctorName, ap.Status, ap.Reason)
	}
}

func (a *app) patientCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "usage: patient add|edit|rm")
		return
	}
	switch args[0] {
	case "add":
		a.patEditor.BeginCreate()
		a.fillPatientForm()
		a.submit(ctx, a.patEditor.Submit)
	case "edit":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "usage: patient edit <id>")
			return
		}
		p, ok := findByID(a.patients.Items(), args[1])
		if !ok {
			fmt.Fprintln(a.out, "no such patient")
			return
		}
		a.patEditor.BeginEdit(p)
		a.fillPatientForm()
		a.submit(ctx, a.patEditor.Submit)
	case "rm":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "usage: patient rm <id>")
			return
		}
		a.remove(ctx, args[1], a.patients.Remove)
	default:
		fmt.Fprintln(a.out, "usage: patient add|edit|rm")
	}
}

func (a *app) apptCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "usage: appt add|edit|status|rm")
		return
	}
	switch args[0] {
	case "add":
		a.apptEdit.BeginCreate()
		if !a.selectPatient() {
			a.apptEdit.Cancel()
			return
		}
		a.fillApptForm()
		a.submit(ctx, a.apptEdit.Submit)
	case "edit":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "usage: appt edit <id>")
			return
		}
		ap, ok := findByID(a.appts.Items(), args[1])
		if !ok {
			fmt.Fprintln(a.out, "no such appointment")
			return
		}
		a.apptEdit.BeginEdit(ap)
		a.fillApptForm()
		a.submit(ctx, a.apptEdit.Submit)
	case "status":
		if len(args) < 3 {
			fmt.Fprintln(a.out, "usage: appt status <id> <scheduled|completed|cancelled>")
			return
		}
		if err := a.appts.Update(ctx, args[1], appointments.StatusOnly(args[2])); err != nil {
			fmt.Fprintln(a.out, "error:", err)
		}
	case "rm":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "usage: appt rm <id>")
			return
		}
		a.remove(ctx, args[1], a.appts.Remove)
	default:
		fmt.Fprintln(a.out, "usage: appt add|edit|status|rm")
	}
}

// selectPatient resolves a patient choice and stamps both the reference and
// the display name on the draft in one step.
func (a *app) selectPatient() bool {
	a.printPatients()
	id := a.prompt("patient id")
	p, ok := findByID(a.patients.Items(), id)
	if !ok {
		fmt.Fprintln(a.out, "no such patient")
		return false
	}
	a.apptForm.SelectPatient(p)
	return true
}

func (a *app) fillPatientForm() {
	for _, field := range []string{
		"first_name", "last_name", "email", "phone",
		"date_of_birth", "gender", "address", "medical_history",
	} {
		a.promptField(a.patEditor.SetField, field)
	}
}

func (a *app) fillApptForm() {
	for _, field := range []string{
		"doctor_name", "appointment_date", "appointment_time", "reason", "notes",
	} {
		a.promptField(a.apptEdit.SetField, field)
	}
}

// promptField reads one value; empty input leaves the draft field unchanged.
func (a *app) promptField(set func(name, value string) error, field string) {
	value := a.prompt(field)
	if value == "" {
		return
	}
	if err := set(field, value); err != nil {
		fmt.Fprintln(a.out, "error:", err)
	}
}

func (a *app) prompt(label string) string {
	fmt.Fprintf(a.out, "%s: ", label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) submit(ctx context.Context, submit func(context.Context) error) {
	if err := submit(ctx); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		fmt.Fprintln(a.out, "draft kept, fix the fields and submit again")
	}
}

func (a *app) remove(ctx context.Context, id string, remove func(ctx context.Context, id string, confirmed bool) error) {
	confirmed := strings.EqualFold(a.prompt("delete "+id+"? [y/N]"), "y")
	if err := remove(ctx, id, confirmed); err != nil {
		fmt.Fprintln(a.out, "error:", err)
	}
}

func (a *app) chatCmd(ctx context.Context, message string) {
	if message == "" {
		fmt.Fprintln(a.out, "usage: chat <message>")
		return
	}
	err := a.chat.Send(ctx, message)
	transcript := a.chat.Transcript()
	if len(transcript) > 0 {
		last := transcript[len(transcript)-1]
		fmt.Fprintf(a.out, "[%s] %s\n", last.Role, last.Text)
	}
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
	}
}

func (a *app) printStats() {
	s := dashboard.Compute(a.patients.Items(), a.appts.Items(), time.Now())
	fmt.Fprintf(a.out, "patients: %d\nappointments: %d (today: %d)\nscheduled: %d  completed: %d  cancelled: %d\n",
		s.TotalPatients, s.TotalAppointments, s.TodayAppointments,
		s.Scheduled, s.Completed, s.Cancelled)
	if recent := dashboard.Recent(a.appts.Items(), 5); len(recent) > 0 {
		fmt.Fprintln(a.out, "recent:")
		for _, ap := range recent {
			fmt.Fprintf(a.out, "  %s %s  %s with %s [%s]\n", ap.Date, ap.Time, ap.PatientName, ap.DoctorName, ap.Status)
		}
	}
}

func findByID[T collection.Entity](items []T, id string) (T, bool) {
	for _, item := range items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
