package gating

import (
	"testing"
	"time"

	"brainink_backend/internal/model"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func studentAssignment(id, defID uint, status model.AssignmentStatus, grade *float64) *model.StudentAssignment {
	return &model.StudentAssignment{
		BaseModel:    model.BaseModel{ID: id},
		UserID:       42,
		AssignmentID: defID,
		CourseID:     1,
		Status:       status,
		Grade:        grade,
	}
}

func TestEvaluateNoBlockNoPredecessor(t *testing.T) {
	sa := studentAssignment(1, 1, model.StatusAssigned, nil)
	res := Evaluate(Real(sa), Inputs{})

	if res.Locked || res.Passed || res.Failed {
		t.Fatalf("expected fully open result, got %+v", res)
	}
	if res.Reason != ReasonNone {
		t.Fatalf("expected no reason, got %s", res.Reason)
	}
	if res.StatusLabel != "Assigned" {
		t.Fatalf("expected Assigned, got %s", res.StatusLabel)
	}
}

func TestEvaluateAbsentBlockEntryLocks(t *testing.T) {
	block := uintPtr(3)
	d := def(1, block, time.Now())
	sa := studentAssignment(1, 1, model.StatusAssigned, nil)
	sa.Assignment = &d

	// key absent, not explicit false
	res := Evaluate(Real(sa), Inputs{Definitions: []model.Assignment{d}, BlockDone: map[uint]bool{}})
	if !res.Locked {
		t.Fatalf("absent completion entry must lock")
	}
	if res.Reason != ReasonBlockIncomplete {
		t.Fatalf("expected block-incomplete, got %s", res.Reason)
	}
	if res.BlockingBlockID == nil || *res.BlockingBlockID != 3 {
		t.Fatalf("expected blocking block 3, got %v", res.BlockingBlockID)
	}

	// explicit false behaves identically
	res2 := Evaluate(Real(sa), Inputs{Definitions: []model.Assignment{d}, BlockDone: map[uint]bool{3: false}})
	if res2.Locked != res.Locked || res2.Reason != res.Reason {
		t.Fatalf("explicit false must behave like absence")
	}
}

func TestEvaluateBlockIDFallsBackToDefinitionList(t *testing.T) {
	block := uintPtr(9)
	d := def(5, block, time.Now())
	// no embedded definition on the record
	sa := studentAssignment(1, 5, model.StatusAssigned, nil)

	res := Evaluate(Real(sa), Inputs{Definitions: []model.Assignment{d}})
	if !res.Locked || res.BlockingBlockID == nil || *res.BlockingBlockID != 9 {
		t.Fatalf("block id should resolve via the definition list: %+v", res)
	}
}

func TestEvaluateImmediatePredecessorBlocks(t *testing.T) {
	block := uintPtr(1)
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	a := def(1, block, base)
	b := def(2, block, base.Add(time.Hour))
	c := def(3, block, base.Add(2*time.Hour))
	defs := []model.Assignment{a, b, c}

	in := Inputs{
		Definitions: defs,
		Previous:    ResolveOrder(defs),
		BlockDone:   map[uint]bool{1: true},
		Ledger: map[uint]*model.StudentAssignment{
			// A unpassed, B unattempted
			1: studentAssignment(11, 1, model.StatusNeedsRetry, floatPtr(50)),
		},
	}

	cRec := studentAssignment(13, 3, model.StatusAssigned, nil)
	cRec.Assignment = &c
	res := Evaluate(Real(cRec), in)

	if !res.Locked || res.Reason != ReasonPrerequisiteUnmet {
		t.Fatalf("expected prerequisite-unmet lock, got %+v", res)
	}
	// only the immediate predecessor B is surfaced, not A
	if res.BlockingPrerequisite == nil || res.BlockingPrerequisite.ID != 2 {
		t.Fatalf("expected blocking prerequisite B(2), got %+v", res.BlockingPrerequisite)
	}
}

func TestEvaluateStalePreviousMapRecomputes(t *testing.T) {
	block := uintPtr(1)
	base := time.Now()
	a := def(1, block, base)
	b := def(2, block, base.Add(time.Hour))
	defs := []model.Assignment{a, b}

	bRec := studentAssignment(20, 2, model.StatusAssigned, nil)
	bRec.Assignment = &b

	// previous map built from a smaller set: no entry for B
	in := Inputs{
		Definitions: defs,
		Previous:    PreviousMap{},
		BlockDone:   map[uint]bool{1: true},
		Ledger:      map[uint]*model.StudentAssignment{},
	}
	res := Evaluate(Real(bRec), in)
	if !res.Locked || res.BlockingPrerequisiteID != 1 {
		t.Fatalf("stale map should be recomputed from the block, got %+v", res)
	}
}

func TestEvaluateChainBeatsBackendOverride(t *testing.T) {
	block := uintPtr(1)
	base := time.Now()
	a := def(1, block, base)
	b := def(2, block, base.Add(time.Hour))
	defs := []model.Assignment{a, b}

	bRec := studentAssignment(20, 2, model.StatusAssigned, nil)
	bRec.Assignment = &b
	bRec.RequiredAssignmentID = uintPtr(99)

	in := Inputs{
		Definitions: defs,
		Previous:    ResolveOrder(defs),
		BlockDone:   map[uint]bool{1: true},
		Ledger:      map[uint]*model.StudentAssignment{},
	}
	res := Evaluate(Real(bRec), in)

	// chain predecessor A is unmet first; #99 is never consulted
	if res.BlockingPrerequisiteID != 1 {
		t.Fatalf("expected chain predecessor to win, got %d", res.BlockingPrerequisiteID)
	}

	// once A passes, the backend-declared prerequisite is consulted
	in.Ledger[1] = studentAssignment(30, 1, model.StatusPassed, nil)
	res = Evaluate(Real(bRec), in)
	if res.BlockingPrerequisiteID != 99 {
		t.Fatalf("expected backend prerequisite 99, got %d", res.BlockingPrerequisiteID)
	}
	if res.BlockingPrerequisite != nil {
		t.Fatalf("unresolvable prerequisite should have no definition")
	}
}

func TestEvaluateBackendLockedFlag(t *testing.T) {
	sa := studentAssignment(1, 1, model.StatusAssigned, nil)
	sa.Locked = boolPtr(true)

	res := Evaluate(Real(sa), Inputs{})
	if !res.Locked {
		t.Fatalf("backend flag must force locked")
	}
	if res.Reason != ReasonBackendFlag {
		t.Fatalf("expected backend-flag reason, got %s", res.Reason)
	}
	if res.StatusLabel != "Locked" {
		t.Fatalf("expected Locked label, got %s", res.StatusLabel)
	}
}

func TestEvaluateGradeThresholdBoundary(t *testing.T) {
	below := studentAssignment(1, 1, model.StatusGraded, floatPtr(79))
	res := Evaluate(Real(below), Inputs{})
	if res.Passed || !res.Failed {
		t.Fatalf("grade 79 must fail: %+v", res)
	}
	if res.StatusLabel != "Needs Retry" {
		t.Fatalf("expected Needs Retry, got %s", res.StatusLabel)
	}

	at := studentAssignment(2, 2, model.StatusGraded, floatPtr(80))
	res = Evaluate(Real(at), Inputs{})
	if !res.Passed || res.Failed {
		t.Fatalf("grade 80 must pass (inclusive boundary): %+v", res)
	}
	if res.StatusLabel != "Completed" {
		t.Fatalf("expected Completed, got %s", res.StatusLabel)
	}
}

func TestEvaluatePassedBeatsLockOnlyWhenUnlocked(t *testing.T) {
	sa := studentAssignment(1, 1, model.StatusPassed, nil)
	sa.Locked = boolPtr(true)

	res := Evaluate(Real(sa), Inputs{})
	if !res.Passed {
		t.Fatalf("passed state must be reported")
	}
	if res.StatusLabel != "Locked" {
		t.Fatalf("Locked outranks Completed in the label, got %s", res.StatusLabel)
	}
}

func TestEvaluateInProgressLabel(t *testing.T) {
	sa := studentAssignment(1, 1, model.StatusSubmitted, nil)
	res := Evaluate(Real(sa), Inputs{})
	if res.StatusLabel != "In Progress" {
		t.Fatalf("submitted without grade should be In Progress, got %s", res.StatusLabel)
	}
	if res.Failed {
		t.Fatalf("submitted without grade is not failed")
	}
}

func TestEvaluateSyntheticNeverFailed(t *testing.T) {
	block := uintPtr(1)
	d := def(4, block, time.Now())

	res := Evaluate(Real(PseudoAssignment(&d)), Inputs{
		Definitions: []model.Assignment{d},
		BlockDone:   map[uint]bool{1: true},
	})
	if res.Failed {
		t.Fatalf("a never-attempted synthetic record cannot be failed")
	}
	if res.Passed {
		t.Fatalf("a never-attempted synthetic record cannot be passed")
	}
}

func TestEvaluateEndToEndIncompleteBlock(t *testing.T) {
	block := uintPtr(1)
	x := def(7, block, time.Now())
	defs := []model.Assignment{x}

	res := Evaluate(Real(PseudoAssignment(&x)), Inputs{
		Definitions: defs,
		Previous:    ResolveOrder(defs),
	})

	if !res.Locked {
		t.Fatalf("expected locked")
	}
	if res.StatusLabel != "Locked" {
		t.Fatalf("expected Locked label, got %s", res.StatusLabel)
	}
	if res.BlockingBlockID == nil || *res.BlockingBlockID != 1 {
		t.Fatalf("expected blocking block 1, got %v", res.BlockingBlockID)
	}
}

func TestNavigation(t *testing.T) {
	locked := studentAssignment(1, 1, model.StatusAssigned, nil)
	locked.Locked = boolPtr(true)
	if got := Navigation(Real(locked), Evaluate(Real(locked), Inputs{})); got != ActionExplainLock {
		t.Fatalf("locked should route to the lock explanation, got %s", got)
	}

	graded := studentAssignment(2, 2, model.StatusGraded, floatPtr(91))
	if got := Navigation(Real(graded), Evaluate(Real(graded), Inputs{})); got != ActionGradeDetail {
		t.Fatalf("graded should route to the grade detail, got %s", got)
	}

	fresh := studentAssignment(3, 3, model.StatusAssigned, nil)
	if got := Navigation(Real(fresh), Evaluate(Real(fresh), Inputs{})); got != ActionAttempt {
		t.Fatalf("unlocked unattempted should route to the attempt flow, got %s", got)
	}
}
