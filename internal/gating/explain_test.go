package gating

import (
	"testing"

	"brainink_backend/internal/model"
)

func TestExplainPrerequisiteDefinitionWinsOverBlock(t *testing.T) {
	prereq := &model.Assignment{
		BaseModel: model.BaseModel{ID: 2},
		Title:     "Fractions Quiz",
	}
	blockID := uint(1)
	res := Result{
		Locked:                 true,
		Reason:                 ReasonPrerequisiteUnmet,
		BlockingPrerequisite:   prereq,
		BlockingPrerequisiteID: 2,
		BlockingBlockID:        &blockID,
	}

	blocks := map[uint]*model.CourseBlock{
		1: {BaseModel: model.BaseModel{ID: 1}, Order: 1, Title: "Numbers"},
	}
	got := Explain(res, blocks)
	want := "Complete \"Fractions Quiz\" to unlock."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExplainBareRequiredID(t *testing.T) {
	res := Result{
		Locked:                 true,
		Reason:                 ReasonPrerequisiteUnmet,
		BlockingPrerequisiteID: 17,
	}
	if got := Explain(res, nil); got != "Unlock by completing #17." {
		t.Fatalf("got %q", got)
	}
}

func TestExplainBlockMessages(t *testing.T) {
	blockID := uint(4)
	res := Result{Locked: true, Reason: ReasonBlockIncomplete, BlockingBlockID: &blockID}

	blocks := map[uint]*model.CourseBlock{
		4: {BaseModel: model.BaseModel{ID: 4}, Order: 2, Title: "Algebra Basics"},
	}
	if got := Explain(res, blocks); got != "Complete Module 2 • Algebra Basics to unlock this assignment." {
		t.Fatalf("got %q", got)
	}

	// block record not resolvable
	if got := Explain(res, nil); got != "Complete the module to unlock." {
		t.Fatalf("got %q", got)
	}
}

func TestExplainGenericFallback(t *testing.T) {
	res := Result{Locked: true, Reason: ReasonBackendFlag}
	if got := Explain(res, nil); got != "Prerequisite incomplete." {
		t.Fatalf("got %q", got)
	}
}

func TestExplainUnlocked(t *testing.T) {
	if got := Explain(Result{}, nil); got != "" {
		t.Fatalf("unlocked result should have no explanation, got %q", got)
	}
}
