package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smartclinic/clinic-ops/internal/appointments"
	"github.com/smartclinic/clinic-ops/internal/patients"
)

func TestCompute(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	pts := []patients.Patient{{ID: "p-1"}, {ID: "p-2"}}
	appts := []appointments.Appointment{
		{ID: "a-1", Status: appointments.StatusScheduled, Date: "2026-09-01"},
		{ID: "a-2", Status: appointments.StatusScheduled, Date: "2026-09-02"},
		{ID: "a-3", Status: appointments.StatusCompleted, Date: "2026-09-01"},
		{ID: "a-4", Status: appointments.StatusCancelled, Date: "2026-08-30"},
	}

	s := Compute(pts, appts, now)

	assert.Equal(t, 2, s.TotalPatients)
	assert.Equal(t, 4, s.TotalAppointments)
	assert.Equal(t, 1, s.TodayAppointments)
	assert.Equal(t, 2, s.Scheduled)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.Cancelled)
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, nil, time.Now())
	assert.Zero(t, s)
}

func TestRecent(t *testing.T) {
	appts := []appointments.Appointment{{ID: "a-1"}, {ID: "a-2"}, {ID: "a-3"}}

	got := Recent(appts, 2)
	assert.Equal(t, []string{"a-2", "a-3"}, []string{got[0].ID, got[1].ID})

	assert.Len(t, Recent(appts, 5), 3)
	assert.Nil(t, Recent(appts, 0))
	assert.Nil(t, Recent(nil, 3))
}
