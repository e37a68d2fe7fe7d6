package emulator

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartclinic/clinic-ops/internal/api"
	"github.com/smartclinic/clinic-ops/internal/appointments"
	"github.com/smartclinic/clinic-ops/internal/patients"
)

// Store holds the emulated backend state in memory. Records keep insertion
// order, which is the "server order" the clients see.
type Store struct {
	mu           sync.RWMutex
	patientIDs   []string
	patients     map[string]patients.Patient
	apptIDs      []string
	appointments map[string]appointments.Appointment
	history      map[string][]api.ChatExchange

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		patients:     make(map[string]patients.Patient),
		appointments: make(map[string]appointments.Appointment),
		history:      make(map[string][]api.ChatExchange),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) CreatePatient(fields patients.CreatePatient) patients.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	p := patients.Patient{
		ID:             uuid.NewString(),
		FirstName:      fields.FirstName,
		LastName:       fields.LastName,
		Email:          fields.Email,
		Phone:          fields.Phone,
		DateOfBirth:    fields.DateOfBirth,
		Gender:         fields.Gender,
		Address:        fields.Address,
		MedicalHistory: fields.MedicalHistory,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.patientIDs = append(s.patientIDs, p.ID)
	s.patients[p.ID] = p
	return p
}

func (s *Store) ListPatients() []patients.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]patients.Patient, 0, len(s.patientIDs))
	for _, id := range s.patientIDs {
		out = append(out, s.patients[id])
	}
	return out
}

func (s *Store) UpdatePatient(id string, fields patients.UpdatePatient) (patients.Patient, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients[id]
	if !ok {
		return patients.Patient{}, false
	}
	apply(&p.FirstName, fields.FirstName)
	apply(&p.LastName, fields.LastName)
	apply(&p.Email, fields.Email)
	apply(&p.Phone, fields.Phone)
	apply(&p.DateOfBirth, fields.DateOfBirth)
	apply(&p.Gender, fields.Gender)
	apply(&p.Address, fields.Address)
	apply(&p.MedicalHistory, fields.MedicalHistory)
	p.UpdatedAt = s.now()
	s.patients[id] = p
	return p, true
}

func (s *Store) DeletePatient(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[id]; !ok {
		return false
	}
	delete(s.patients, id)
	s.patientIDs = removeID(s.patientIDs, id)
	return true
}

func (s *Store) CreateAppointment(fields appointments.CreateAppointment) appointments.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := appointments.Appointment{
		ID:          uuid.NewString(),
		PatientID:   fields.PatientID,
		PatientName: fields.PatientName,
		DoctorName:  fields.DoctorName,
		Date:        fields.Date,
		Time:        fields.Time,
		Reason:      fields.Reason,
		Status:      appointments.StatusScheduled,
		Notes:       fields.Notes,
		CreatedAt:   s.now(),
	}
	s.apptIDs = append(s.apptIDs, a.ID)
	s.appointments[a.ID] = a
	return a
}

func (s *Store) ListAppointments() []appointments.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]appointments.Appointment, 0, len(s.apptIDs))
	for _, id := range s.apptIDs {
		out = append(out, s.appointments[id])
	}
	return out
}

func (s *Store) UpdateAppointment(id string, fields appointments.UpdateAppointment) (appointments.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		return appointments.Appointment{}, false
	}
	apply(&a.PatientID, fields.PatientID)
	apply(&a.PatientName, fields.PatientName)
	apply(&a.DoctorName, fields.DoctorName)
	apply(&a.Date, fields.Date)
	apply(&a.Time, fields.Time)
	apply(&a.Reason, fields.Reason)
	apply(&a.Status, fields.Status)
	apply(&a.Notes, fields.Notes)
	s.appointments[id] = a
	return a, true
}

func (s *Store) DeleteAppointment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[id]; !ok {
		return false
	}
	delete(s.appointments, id)
	s.apptIDs = removeID(s.apptIDs, id)
	return true
}

// AppendExchange stores one question/answer pair for a session.
func (s *Store) AppendExchange(sessionID, message, response string) api.ChatExchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	ex := api.ChatExchange{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Message:   message,
		Response:  response,
		Timestamp: s.now(),
	}
	s.history[sessionID] = append(s.history[sessionID], ex)
	return ex
}

// History returns the stored exchanges for a session in insertion order.
func (s *Store) History(sessionID string) []api.ChatExchange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]api.ChatExchange(nil), s.history[sessionID]...)
}

func apply(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
