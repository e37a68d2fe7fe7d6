package patients

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartclinic/clinic-ops/internal/collection"
)

func validCreate() CreatePatient {
	return CreatePatient{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Phone:       "555-0100",
		DateOfBirth: "1990-12-10",
		Gender:      GenderFemale,
		Address:     "12 Analytical Way",
	}
}

func TestCreateValidate(t *testing.T) {
	require.NoError(t, validCreate().Validate())

	c := validCreate()
	c.Email = "  "
	err := c.Validate()
	var verr *collection.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
}

func TestCreateMedicalHistoryOptional(t *testing.T) {
	c := validCreate()
	c.MedicalHistory = ""
	assert.NoError(t, c.Validate())
}

func TestUpdateValidate(t *testing.T) {
	assert.NoError(t, UpdatePatient{}.Validate())

	phone := "555-0199"
	assert.NoError(t, UpdatePatient{Phone: &phone}.Validate())

	blank := ""
	err := UpdatePatient{Phone: &blank}.Validate()
	var verr *collection.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "phone", verr.Field)

	// The medical history is clearable.
	assert.NoError(t, UpdatePatient{MedicalHistory: &blank}.Validate())
}

func TestUpdateOmitsNilFields(t *testing.T) {
	email := "ada@example.com"
	raw, err := json.Marshal(UpdatePatient{Email: &email})
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"ada@example.com"}`, string(raw))
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Patient{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", Patient{FirstName: "Ada"}.FullName())
}

func TestFormRoundTripsEntity(t *testing.T) {
	p := Patient{
		ID:             "p-1",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		Phone:          "555-0100",
		DateOfBirth:    "1990-12-10",
		Gender:         GenderFemale,
		Address:        "12 Analytical Way",
		MedicalHistory: "none",
	}

	f := NewForm()
	f.Load(p)
	u := f.UpdatePayload()

	require.NotNil(t, u.FirstName)
	assert.Equal(t, p.FirstName, *u.FirstName)
	require.NotNil(t, u.Gender)
	assert.Equal(t, p.Gender, *u.Gender)
	require.NotNil(t, u.MedicalHistory)
	assert.Equal(t, p.MedicalHistory, *u.MedicalHistory)
}

func TestFormResetDefaultsGender(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.Set("gender", GenderOther))
	f.Reset()
	assert.Equal(t, GenderMale, f.Gender)
	assert.Equal(t, "", f.FirstName)
}
