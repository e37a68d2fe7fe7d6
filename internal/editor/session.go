package editor

import (
	"context"
	"fmt"

	"github.com/smartclinic/clinic-ops/internal/collection"
)

// UnknownFieldError reports a SetField call naming a field the form does not
// carry.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("editor: unknown form field %q", e.Field)
}

// Form is the editable field set behind a create/edit dialog. Implementations
// are entity-specific; they default absent optional fields to the empty
// string so the presentation layer always sees a fully-populated shape.
type Form[T collection.Entity, C, U collection.Payload] interface {
	// Reset restores the entity-type default shape.
	Reset()
	// Load snapshots the entity's current fields verbatim. The snapshot is
	// taken once; later changes to the entity do not flow into the form.
	Load(entity T)
	// Set mutates exactly one field. No validation happens here; required
	// fields are checked by the collection controller at submit time.
	Set(name, value string) error
	// CreatePayload returns the full field set for a create call.
	CreatePayload() C
	// UpdatePayload returns the field set for an update of the loaded entity.
	UpdatePayload() U
}

// Submitter is the slice of a collection controller the session dispatches to.
type Submitter[C, U collection.Payload] interface {
	Create(ctx context.Context, fields C) error
	Update(ctx context.Context, id string, fields U) error
}

// Session tracks the editing-versus-creating duality for one form: which
// entity (if any) is being edited, and the draft field state. Controller
// operations are invoked from UI callbacks one at a time, so the session
// carries no internal locking.
type Session[T collection.Entity, C, U collection.Payload] struct {
	form       Form[T, C, U]
	collection Submitter[C, U]
	target     string
	open       bool
}

// NewSession creates an edit session bound to a form and the collection
// controller that owns the entity type.
func NewSession[T collection.Entity, C, U collection.Payload](form Form[T, C, U], col Submitter[C, U]) *Session[T, C, U] {
	return &Session[T, C, U]{form: form, collection: col}
}

// BeginCreate starts a fresh "creating new" session with default fields.
func (s *Session[T, C, U]) BeginCreate() {
	s.target = ""
	s.form.Reset()
	s.open = true
}

// BeginEdit starts editing an existing entity, snapshotting its fields.
func (s *Session[T, C, U]) BeginEdit(entity T) {
	s.target = entity.EntityID()
	s.form.Load(entity)
	s.open = true
}

// SetField mutates one draft field.
func (s *Session[T, C, U]) SetField(name, value string) error {
	return s.form.Set(name, value)
}

// Submit dispatches the draft: create when no target is set, update of the
// target otherwise. On success the session resets so the dialog closes; on
// failure the draft is preserved so the user can retry without re-entering
// data.
func (s *Session[T, C, U]) Submit(ctx context.Context) error {
	var err error
	if s.target == "" {
		err = s.collection.Create(ctx, s.form.CreatePayload())
	} else {
		err = s.collection.Update(ctx, s.target, s.form.UpdatePayload())
	}
	if err != nil {
		return err
	}
	s.target = ""
	s.form.Reset()
	s.open = false
	return nil
}

// Cancel discards the draft and closes the session.
func (s *Session[T, C, U]) Cancel() {
	s.target = ""
	s.form.Reset()
	s.open = false
}

// Editing reports whether the session targets an existing entity.
func (s *Session[T, C, U]) Editing() bool { return s.target != "" }

// Target returns the id of the entity being edited, or "" when creating.
func (s *Session[T, C, U]) Target() string { return s.target }

// Open reports whether the presentation affordance (dialog) should be shown.
func (s *Session[T, C, U]) Open() bool { return s.open }
