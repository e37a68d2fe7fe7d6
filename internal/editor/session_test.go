package editor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartclinic/clinic-ops/internal/editor"
	"github.com/smartclinic/clinic-ops/internal/patients"
)

// fakeSubmitter records what the session dispatches.
type fakeSubmitter struct {
	created  []patients.CreatePatient
	updated  map[string]patients.UpdatePatient
	failNext error
}

func (f *fakeSubmitter) Create(_ context.Context, fields patients.CreatePatient) error {
	if err := f.failNext; err != nil {
		f.failNext = nil
		return err
	}
	f.created = append(f.created, fields)
	return nil
}

func (f *fakeSubmitter) Update(_ context.Context, id string, fields patients.UpdatePatient) error {
	if err := f.failNext; err != nil {
		f.failNext = nil
		return err
	}
	if f.updated == nil {
		f.updated = make(map[string]patients.UpdatePatient)
	}
	f.updated[id] = fields
	return nil
}

func newPatientSession(sub *fakeSubmitter) *editor.Session[patients.Patient, patients.CreatePatient, patients.UpdatePatient] {
	return editor.NewSession[patients.Patient, patients.CreatePatient, patients.UpdatePatient](patients.NewForm(), sub)
}

func TestCreateFlow(t *testing.T) {
	sub := &fakeSubmitter{}
	s := newPatientSession(sub)

	s.BeginCreate()
	assert.True(t, s.Open())
	assert.False(t, s.Editing())

	require.NoError(t, s.SetField("first_name", "Ada"))
	require.NoError(t, s.SetField("last_name", "Lovelace"))
	require.NoError(t, s.Submit(context.Background()))

	require.Len(t, sub.created, 1)
	assert.Equal(t, "Ada", sub.created[0].FirstName)
	assert.Equal(t, patients.GenderMale, sub.created[0].Gender)
	assert.False(t, s.Open())
}

func TestEditFlowSnapshotsEntity(t *testing.T) {
	sub := &fakeSubmitter{}
	s := newPatientSession(sub)

	s.BeginEdit(patients.Patient{
		ID:        "p-1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Gender:    patients.GenderFemale,
	})
	assert.True(t, s.Editing())
	assert.Equal(t, "p-1", s.Target())

	require.NoError(t, s.SetField("email", "lovelace@example.com"))
	require.NoError(t, s.Submit(context.Background()))

	fields, ok := sub.updated["p-1"]
	require.True(t, ok)
	require.NotNil(t, fields.Email)
	assert.Equal(t, "lovelace@example.com", *fields.Email)
	require.NotNil(t, fields.FirstName)
	assert.Equal(t, "Ada", *fields.FirstName)
	require.NotNil(t, fields.Gender)
	assert.Equal(t, patients.GenderFemale, *fields.Gender)
	assert.False(t, s.Open())
	assert.False(t, s.Editing())
}

func TestSubmitFailurePreservesDraft(t *testing.T) {
	sub := &fakeSubmitter{failNext: errors.New("backend down")}
	s := newPatientSession(sub)

	s.BeginEdit(patients.Patient{ID: "p-1", FirstName: "Ada"})
	require.NoError(t, s.SetField("first_name", "Augusta"))

	require.Error(t, s.Submit(context.Background()))
	assert.True(t, s.Open())
	assert.Equal(t, "p-1", s.Target())

	require.NoError(t, s.Submit(context.Background()))
	fields := sub.updated["p-1"]
	require.NotNil(t, fields.FirstName)
	assert.Equal(t, "Augusta", *fields.FirstName)
}

func TestCancelDiscardsDraft(t *testing.T) {
	sub := &fakeSubmitter{}
	s := newPatientSession(sub)

	s.BeginEdit(patients.Patient{ID: "p-1", FirstName: "Ada"})
	require.NoError(t, s.SetField("first_name", "Augusta"))
	s.Cancel()
	assert.False(t, s.Open())
	assert.Equal(t, "", s.Target())

	s.BeginCreate()
	require.NoError(t, s.SetField("last_name", "Byron"))
	require.NoError(t, s.Submit(context.Background()))
	require.Len(t, sub.created, 1)
	assert.Equal(t, "", sub.created[0].FirstName)
}

func TestSetUnknownField(t *testing.T) {
	s := newPatientSession(&fakeSubmitter{})
	s.BeginCreate()

	err := s.SetField("favorite_color", "blue")
	var uerr *editor.UnknownFieldError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "favorite_color", uerr.Field)
}
