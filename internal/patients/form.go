package patients

import "github.com/smartclinic/clinic-ops/internal/editor"

// Form is the editable patient field set. The zero value is not ready to
// use; call Reset (or editor.Session.BeginCreate) first so gender carries
// its default.
type Form struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	DateOfBirth    string
	Gender         string
	Address        string
	MedicalHistory string
}

func NewForm() *Form {
	f := &Form{}
	f.Reset()
	return f
}

func (f *Form) Reset() {
	*f = Form{Gender: GenderMale}
}

func (f *Form) Load(p Patient) {
	*f = Form{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		DateOfBirth:    p.DateOfBirth,
		Gender:         p.Gender,
		Address:        p.Address,
		MedicalHistory: p.MedicalHistory,
	}
}

func (f *Form) Set(name, value string) error {
	switch name {
	case "first_name":
		f.FirstName = value
	case "last_name":
		f.LastName = value
	case "email":
		f.Email = value
	case "phone":
		f.Phone = value
	case "date_of_birth":
		f.DateOfBirth = value
	case "gender":
		f.Gender = value
	case "address":
		f.Address = value
	case "medical_history":
		f.MedicalHistory = value
	default:
		return &editor.UnknownFieldError{Field: name}
	}
	return nil
}

func (f *Form) CreatePayload() CreatePatient {
	return CreatePatient{
		FirstName:      f.FirstName,
		LastName:       f.LastName,
		Email:          f.Email,
		Phone:          f.Phone,
		DateOfBirth:    f.DateOfBirth,
		Gender:         f.Gender,
		Address:        f.Address,
		MedicalHistory: f.MedicalHistory,
	}
}

// UpdatePayload supplies every field: the form was loaded with the entity's
// full field set, so an unchanged submit round-trips the record verbatim.
func (f *Form) UpdatePayload() UpdatePatient {
	return UpdatePatient{
		FirstName:      ptr(f.FirstName),
		LastName:       ptr(f.LastName),
		Email:          ptr(f.Email),
		Phone:          ptr(f.Phone),
		DateOfBirth:    ptr(f.DateOfBirth),
		Gender:         ptr(f.Gender),
		Address:        ptr(f.Address),
		MedicalHistory: ptr(f.MedicalHistory),
	}
}

func ptr(s string) *string { return &s }
