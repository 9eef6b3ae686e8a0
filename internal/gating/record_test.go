package gating

import (
	"testing"
	"time"

	"brainink_backend/internal/model"
)

func TestPseudoAssignmentShape(t *testing.T) {
	created := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	days := 7
	d := model.Assignment{
		BaseModel:              model.BaseModel{ID: 21, CreatedAt: created},
		CourseID:               3,
		Title:                  "Essay Draft",
		DueDaysAfterAssignment: &days,
	}

	sa := PseudoAssignment(&d)
	if sa.UserID != SyntheticUserID {
		t.Fatalf("expected sentinel user id, got %d", sa.UserID)
	}
	if sa.ID != 21 || sa.AssignmentID != 21 || sa.CourseID != 3 {
		t.Fatalf("ids not carried over: %+v", sa)
	}
	if sa.Status != model.StatusAssigned {
		t.Fatalf("status must be forced to assigned, got %s", sa.Status)
	}
	if !sa.AssignedAt.Equal(created) {
		t.Fatalf("assignedAt should equal created_at")
	}
	if want := created.Add(7 * 24 * time.Hour); !sa.DueDate.Equal(want) {
		t.Fatalf("dueDate %v, want %v", sa.DueDate, want)
	}
	if sa.Assignment == nil || sa.Assignment.ID != 21 {
		t.Fatalf("definition must be embedded")
	}
}

func TestPseudoAssignmentNoDueDays(t *testing.T) {
	created := time.Now()
	d := model.Assignment{BaseModel: model.BaseModel{ID: 5, CreatedAt: created}, CourseID: 1}

	sa := PseudoAssignment(&d)
	if !sa.DueDate.Equal(created) {
		t.Fatalf("without due_days_after_assignment the due date equals created_at")
	}
}

func TestRecordDefinitionIDFallback(t *testing.T) {
	sa := &model.StudentAssignment{AssignmentID: 8}
	if got := Real(sa).DefinitionID(); got != 8 {
		t.Fatalf("expected assignment_id fallback, got %d", got)
	}

	d := model.Assignment{BaseModel: model.BaseModel{ID: 9}}
	sa.Assignment = &d
	if got := Real(sa).DefinitionID(); got != 9 {
		t.Fatalf("embedded definition must win, got %d", got)
	}
}

func TestRecordSynthetic(t *testing.T) {
	d := model.Assignment{BaseModel: model.BaseModel{ID: 2}}
	rec := Synthetic(&d)
	if !rec.IsSynthetic() {
		t.Fatalf("expected synthetic record")
	}
	if rec.Status() != model.StatusAssigned {
		t.Fatalf("synthetic status defaults to assigned")
	}
	if rec.LockedFlag() {
		t.Fatalf("synthetic record has no backend override")
	}
}
