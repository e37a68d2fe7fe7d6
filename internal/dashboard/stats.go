package dashboard

import (
	"time"

	"github.com/smartclinic/clinic-ops/internal/appointments"
	"github.com/smartclinic/clinic-ops/internal/patients"
)

// Stats are the headline numbers shown on the overview screen.
type Stats struct {
	TotalPatients     int
	TotalAppointments int
	TodayAppointments int
	Scheduled         int
	Completed         int
	Cancelled         int
}

// Compute derives Stats from the current collection snapshots. Today's count
// covers scheduled appointments dated now's calendar day.
func Compute(pts []patients.Patient, appts []appointments.Appointment, now time.Time) Stats {
	today := now.Format("2006-01-02")
	s := Stats{
		TotalPatients:     len(pts),
		TotalAppointments: len(appts),
	}
	for _, a := range appts {
		switch a.Status {
		case appointments.StatusScheduled:
			s.Scheduled++
			if a.Date == today {
				s.TodayAppointments++
			}
		case appointments.StatusCompleted:
			s.Completed++
		case appointments.StatusCancelled:
			s.Cancelled++
		}
	}
	return s
}

// Recent returns the last n appointments in server order, newest last.
func Recent(appts []appointments.Appointment, n int) []appointments.Appointment {
	if n <= 0 || len(appts) == 0 {
		return nil
	}
	if len(appts) > n {
		appts = appts[len(appts)-n:]
	}
	return append([]appointments.Appointment(nil), appts...)
}
