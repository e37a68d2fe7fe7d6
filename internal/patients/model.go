package patients

import (
	"strings"
	"time"

	"github.com/smartclinic/clinic-ops/internal/collection"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Patient is a remotely-owned patient record. The id is assigned by the
// server and immutable once set.
type Patient struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	DateOfBirth    string    `json:"date_of_birth"`
	Gender         string    `json:"gender"`
	Address        string    `json:"address"`
	MedicalHistory string    `json:"medical_history"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p Patient) EntityID() string { return p.ID }

// FullName is the display name used when snapshotting a patient reference
// onto an appointment.
func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// SearchFields lists the fields the collection filter matches against.
func SearchFields(p Patient) []string {
	return []string{p.FirstName, p.LastName, p.Email}
}

// CreatePatient is the field set submitted when creating a patient. Every
// field except the medical history is required.
type CreatePatient struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medical_history"`
}

func (c CreatePatient) Validate() error {
	required := []struct{ name, value string }{
		{"first_name", c.FirstName},
		{"last_name", c.LastName},
		{"email", c.Email},
		{"phone", c.Phone},
		{"date_of_birth", c.DateOfBirth},
		{"gender", c.Gender},
		{"address", c.Address},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &collection.ValidationError{Field: f.name}
		}
	}
	return nil
}

// UpdatePatient is a partial field set: nil pointers are omitted from the
// request body and left untouched server-side.
type UpdatePatient struct {
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	DateOfBirth    *string `json:"date_of_birth,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	Address        *string `json:"address,omitempty"`
	MedicalHistory *string `json:"medical_history,omitempty"`
}

// Validate rejects supplied-but-blank required fields. Omitted fields are
// fine; the medical history may be cleared.
func (u UpdatePatient) Validate() error {
	supplied := []struct {
		name  string
		value *string
	}{
		{"first_name", u.FirstName},
		{"last_name", u.LastName},
		{"email", u.Email},
		{"phone", u.Phone},
		{"date_of_birth", u.DateOfBirth},
		{"gender", u.Gender},
		{"address", u.Address},
	}
	for _, f := range supplied {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return &collection.ValidationError{Field: f.name}
		}
	}
	return nil
}
