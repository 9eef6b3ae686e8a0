// Package gating decides, for every assignment a student could attempt,
// whether it is locked, unlocked, completed or failed. It is a pure
// computation over already-fetched collections: it performs no I/O, never
// mutates its inputs, and resolves every missing datum to the conservative
// (locked / not passed) interpretation.
package gating

import (
	"time"

	"brainink_backend/internal/model"
)

// SyntheticUserID marks a pseudo StudentAssignment synthesized from a bare
// definition. Real user ids start at 1.
const SyntheticUserID uint = 0

// Record is a tagged union over the two shapes the engine evaluates: a real
// StudentAssignment from the ledger, or a bare definition the student has
// never been assigned. Construct via Real or Synthetic.
type Record struct {
	real *model.StudentAssignment
	def  *model.Assignment
}

func Real(sa *model.StudentAssignment) Record {
	return Record{real: sa, def: sa.Assignment}
}

func Synthetic(def *model.Assignment) Record {
	return Record{def: def}
}

func (r Record) IsSynthetic() bool {
	return r.real == nil || r.real.UserID == SyntheticUserID
}

// DefinitionID resolves the governing assignment definition id: the embedded
// definition first, else the record's own assignment_id.
func (r Record) DefinitionID() uint {
	if r.def != nil {
		return r.def.ID
	}
	if r.real != nil {
		return r.real.AssignmentID
	}
	return 0
}

// Definition returns the embedded definition, if any.
func (r Record) Definition() *model.Assignment {
	return r.def
}

func (r Record) Status() model.AssignmentStatus {
	if r.real != nil && r.real.Status != "" {
		return r.real.Status
	}
	return model.StatusAssigned
}

func (r Record) Grade() *float64 {
	if r.real != nil {
		return r.real.Grade
	}
	return nil
}

func (r Record) RequiredAssignmentID() *uint {
	if r.real != nil {
		return r.real.RequiredAssignmentID
	}
	return nil
}

// LockedFlag reports the backend override. Absent means no override.
func (r Record) LockedFlag() bool {
	return r.real != nil && r.real.Locked != nil && *r.real.Locked
}

// blockID resolves the governing block: the embedded definition wins, then a
// lookup by definition id in the caller-supplied definition list. nil means
// the block gate is open.
func (r Record) blockID(definitions []model.Assignment) *uint {
	if r.def != nil && r.def.BlockID != nil {
		return r.def.BlockID
	}
	if d := findDefinition(definitions, r.DefinitionID()); d != nil {
		return d.BlockID
	}
	return nil
}

// PseudoAssignment converts a never-assigned definition into an ephemeral
// "assigned" record so it can flow through the engine and the rendering path
// uniformly. Never persisted. Callers must filter out definitions already
// present in the student's real ledger first.
func PseudoAssignment(def *model.Assignment) *model.StudentAssignment {
	due := def.CreatedAt
	if def.DueDaysAfterAssignment != nil {
		due = due.Add(time.Duration(*def.DueDaysAfterAssignment) * 24 * time.Hour)
	}
	return &model.StudentAssignment{
		BaseModel:    model.BaseModel{ID: def.ID, CreatedAt: def.CreatedAt},
		UserID:       SyntheticUserID,
		AssignmentID: def.ID,
		CourseID:     def.CourseID,
		AssignedAt:   def.CreatedAt,
		DueDate:      due,
		Status:       model.StatusAssigned,
		Assignment:   def,
	}
}

func findDefinition(definitions []model.Assignment, id uint) *model.Assignment {
	if id == 0 {
		return nil
	}
	for i := range definitions {
		if definitions[i].ID == id {
			return &definitions[i]
		}
	}
	return nil
}
