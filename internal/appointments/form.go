package appointments

import (
	"github.com/smartclinic/clinic-ops/internal/editor"
	"github.com/smartclinic/clinic-ops/internal/patients"
)

// Form is the editable appointment field set.
type Form struct {
	PatientID   string
	PatientName string
	DoctorName  string
	Date        string
	Time        string
	Reason      string
	Notes       string
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) Reset() {
	*f = Form{}
}

func (f *Form) Load(a Appointment) {
	*f = Form{
		PatientID:   a.PatientID,
		PatientName: a.PatientName,
		DoctorName:  a.DoctorName,
		Date:        a.Date,
		Time:        a.Time,
		Reason:      a.Reason,
		Notes:       a.Notes,
	}
}

// SelectPatient sets the patient reference and the denormalized name
// snapshot together. The two fields are never set independently, so the
// draft cannot hold a reference/snapshot pair from different patients.
func (f *Form) SelectPatient(p patients.Patient) {
	f.PatientID = p.ID
	f.PatientName = p.FullName()
}

// Set mutates one draft field. The patient reference is excluded: it is only
// set through SelectPatient so the id and name snapshot stay paired.
func (f *Form) Set(name, value string) error {
	switch name {
	case "doctor_name":
		f.DoctorName = value
	case "appointment_date":
		f.Date = value
	case "appointment_time":
		f.Time = value
	case "reason":
		f.Reason = value
	case "notes":
		f.Notes = value
	default:
		return &editor.UnknownFieldError{Field: name}
	}
	return nil
}

func (f *Form) CreatePayload() CreateAppointment {
	return CreateAppointment{
		PatientID:   f.PatientID,
		PatientName: f.PatientName,
		DoctorName:  f.DoctorName,
		Date:        f.Date,
		Time:        f.Time,
		Reason:      f.Reason,
		Notes:       f.Notes,
	}
}

// UpdatePayload supplies every editable field so an unchanged submit
// round-trips the record verbatim. Status is not part of the form; it is
// changed through the quick-update path.
func (f *Form) UpdatePayload() UpdateAppointment {
	return UpdateAppointment{
		PatientID:   ptr(f.PatientID),
		PatientName: ptr(f.PatientName),
		DoctorName:  ptr(f.DoctorName),
		Date:        ptr(f.Date),
		Time:        ptr(f.Time),
		Reason:      ptr(f.Reason),
		Notes:       ptr(f.Notes),
	}
}

func ptr(s string) *string { return &s }
