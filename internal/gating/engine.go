package gating

import "brainink_backend/internal/model"

// PassThreshold is the inclusive grade percentage an assignment needs to
// count as passed when no explicit "passed" status is present.
const PassThreshold = 80.0

type Reason string

const (
	ReasonNone              Reason = "none"
	ReasonBackendFlag       Reason = "backend-flag"
	ReasonBlockIncomplete   Reason = "block-incomplete"
	ReasonPrerequisiteUnmet Reason = "prerequisite-unmet"
)

// Inputs is one consistent snapshot of the collections the engine reads.
// Callers must swap all of them in together; mixing a fresh completion map
// with a stale previous map yields a transient wrong result.
type Inputs struct {
	Definitions   []model.Assignment
	Ledger        map[uint]*model.StudentAssignment
	BlockDone     map[uint]bool
	Previous      PreviousMap
	PassThreshold float64
}

func (in Inputs) threshold() float64 {
	if in.PassThreshold > 0 {
		return in.PassThreshold
	}
	return PassThreshold
}

// Result is derived per assignment on every query, never persisted.
type Result struct {
	Locked bool `json:"locked"`
	Passed bool `json:"passed"`
	Failed bool `json:"failed"`

	StatusLabel string `json:"statusLabel"`
	Icon        string `json:"icon"`
	Reason      Reason `json:"reason"`

	// BlockingBlockID is set whenever the block gate is closed, even if a
	// more specific prerequisite reason wins the Reason field.
	BlockingBlockID *uint `json:"blockingBlockId"`
	// BlockingPrerequisite is the first unmet prerequisite's definition,
	// when it could be resolved against the visible definition set.
	BlockingPrerequisite *model.Assignment `json:"blockingPrerequisite"`
	// BlockingPrerequisiteID is the first unmet prerequisite's id; set even
	// when no definition could be resolved (backend-declared ids may point
	// outside the visible set).
	BlockingPrerequisiteID uint `json:"blockingPrerequisiteId"`
}

// Evaluate computes the gating state of one assignment record against a
// snapshot. Missing data never grants access: an absent block-completion
// entry reads as incomplete, an unattempted prerequisite as not passed.
func Evaluate(rec Record, in Inputs) Result {
	res := Result{Reason: ReasonNone}

	// 1-2. block gate
	blockID := rec.blockID(in.Definitions)
	blockLocked := false
	if blockID != nil && !in.BlockDone[*blockID] {
		blockLocked = true
		res.BlockingBlockID = blockID
	}

	// 3. chain predecessor, with on-demand re-sort when the map is stale
	defID := rec.DefinitionID()
	prevID, ok := in.Previous[defID]
	if (!ok || prevID == 0) && blockID != nil {
		prevID = previousInBlock(defID, *blockID, in.Definitions)
	}

	// 4. candidate predecessors: chain first, then the backend-declared
	// override if distinct. The first candidate not passed wins and the
	// rest are never consulted.
	var candidates []uint
	if prevID != 0 {
		candidates = append(candidates, prevID)
	}
	if req := rec.RequiredAssignmentID(); req != nil && *req != 0 && (len(candidates) == 0 || candidates[0] != *req) {
		candidates = append(candidates, *req)
	}

	prereqUnmet := false
	for _, cand := range candidates {
		if recordPassed(in.Ledger[cand], in.threshold()) {
			continue
		}
		prereqUnmet = true
		res.BlockingPrerequisiteID = cand
		res.BlockingPrerequisite = findDefinition(in.Definitions, cand)
		if res.BlockingPrerequisite == nil {
			if sa := in.Ledger[cand]; sa != nil && sa.Assignment != nil {
				res.BlockingPrerequisite = sa.Assignment
			}
		}
		break
	}

	// 5-8. final lock: the backend flag forces locked but does not replace
	// a more specific reason already found.
	override := rec.LockedFlag()
	res.Locked = override || blockLocked || prereqUnmet

	switch {
	case prereqUnmet:
		res.Reason = ReasonPrerequisiteUnmet
	case blockLocked:
		res.Reason = ReasonBlockIncomplete
	case override:
		res.Reason = ReasonBackendFlag
	}

	// 6-7. pass/fail of the record itself
	res.Passed = passed(rec.Status(), rec.Grade(), in.threshold())
	res.Failed = failed(rec.Status(), rec.Grade(), in.threshold())

	// 9. label priority: Locked > Completed > Needs Retry > Assigned > In Progress
	switch {
	case res.Locked:
		res.StatusLabel = "Locked"
		res.Icon = "lock"
	case res.Passed:
		res.StatusLabel = "Completed"
		res.Icon = "check-circle"
	case res.Failed:
		res.StatusLabel = "Needs Retry"
		res.Icon = "refresh"
	case rec.Status() == model.StatusAssigned:
		res.StatusLabel = "Assigned"
		res.Icon = "clipboard"
	default:
		res.StatusLabel = "In Progress"
		res.Icon = "clock"
	}

	return res
}

// recordPassed is the pass test for a prerequisite candidate: a ledger entry
// that does not exist is never passed.
func recordPassed(sa *model.StudentAssignment, threshold float64) bool {
	if sa == nil {
		return false
	}
	return passed(sa.Status, sa.Grade, threshold)
}

func passed(status model.AssignmentStatus, grade *float64, threshold float64) bool {
	if status == model.StatusPassed {
		return true
	}
	return grade != nil && *grade >= threshold
}

func failed(status model.AssignmentStatus, grade *float64, threshold float64) bool {
	if !attempted(status) {
		return false
	}
	if passed(status, grade, threshold) {
		return false
	}
	if status == model.StatusFailed || status == model.StatusNeedsRetry {
		return true
	}
	return grade != nil && *grade < threshold
}

func attempted(status model.AssignmentStatus) bool {
	switch status {
	case model.StatusSubmitted, model.StatusGraded, model.StatusNeedsRetry, model.StatusFailed, model.StatusPassed:
		return true
	}
	return false
}

// Action is the navigation the client should take for an assignment.
type Action string

const (
	ActionExplainLock Action = "explain_lock"
	ActionGradeDetail Action = "grade_detail"
	ActionAttempt     Action = "attempt"
)

// Navigation picks one of the three client routes: the lock-explanation
// dialog, the grade-detail view, or the attempt workflow.
func Navigation(rec Record, res Result) Action {
	switch {
	case res.Locked:
		return ActionExplainLock
	case res.Passed || res.Failed || attempted(rec.Status()):
		return ActionGradeDetail
	default:
		return ActionAttempt
	}
}
