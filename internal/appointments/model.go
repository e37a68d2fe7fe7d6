package appointments

import (
	"strings"
	"time"

	"github.com/smartclinic/clinic-ops/internal/collection"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the appointment status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a remotely-owned appointment record. PatientName is a
// point-in-time snapshot taken when the patient was selected, not a live
// join: it keeps the name the booking was made under even if the patient
// record is later renamed.
type Appointment struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	DoctorName  string    `json:"doctor_name"`
	Date        string    `json:"appointment_date"`
	Time        string    `json:"appointment_time"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a Appointment) EntityID() string { return a.ID }

// SearchFields lists the fields the collection filter matches against.
func SearchFields(a Appointment) []string {
	return []string{a.PatientName, a.DoctorName, a.Reason}
}

// CreateAppointment is the field set submitted when scheduling. Notes are
// optional; the server defaults status to scheduled.
type CreateAppointment struct {
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"appointment_date"`
	Time        string `json:"appointment_time"`
	Reason      string `json:"reason"`
	Notes       string `json:"notes"`
}

func (c CreateAppointment) Validate() error {
	required := []struct{ name, value string }{
		{"patient_id", c.PatientID},
		{"patient_name", c.PatientName},
		{"doctor_name", c.DoctorName},
		{"appointment_date", c.Date},
		{"appointment_time", c.Time},
		{"reason", c.Reason},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &collection.ValidationError{Field: f.name}
		}
	}
	return nil
}

// UpdateAppointment is a partial field set: nil pointers are omitted from
// the request body and left untouched server-side. A status-only update is
// the common case.
type UpdateAppointment struct {
	PatientID   *string `json:"patient_id,omitempty"`
	PatientName *string `json:"patient_name,omitempty"`
	DoctorName  *string `json:"doctor_name,omitempty"`
	Date        *string `json:"appointment_date,omitempty"`
	Time        *string `json:"appointment_time,omitempty"`
	Reason      *string `json:"reason,omitempty"`
	Status      *string `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// Validate rejects supplied-but-blank required fields and unknown status
// values. Omitted fields are fine; notes may be cleared.
func (u UpdateAppointment) Validate() error {
	supplied := []struct {
		name  string
		value *string
	}{
		{"patient_id", u.PatientID},
		{"patient_name", u.PatientName},
		{"doctor_name", u.DoctorName},
		{"appointment_date", u.Date},
		{"appointment_time", u.Time},
		{"reason", u.Reason},
	}
	for _, f := range supplied {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return &collection.ValidationError{Field: f.name}
		}
	}
	if u.Status != nil && !ValidStatus(*u.Status) {
		return &collection.ValidationError{Field: "status"}
	}
	return nil
}

// StatusOnly builds the partial payload for the status quick-update path.
func StatusOnly(status string) UpdateAppointment {
	return UpdateAppointment{Status: &status}
}
