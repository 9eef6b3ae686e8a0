package gating

import (
	"fmt"

	"brainink_backend/internal/model"
)

// Explain turns a locked Result into the single unlock instruction shown to
// the student. Priority mirrors the engine's evaluation order: a resolved
// prerequisite definition beats a bare prerequisite id, which beats the
// block, which beats the generic fallback. Returns "" when not locked.
func Explain(res Result, blocks map[uint]*model.CourseBlock) string {
	if !res.Locked {
		return ""
	}
	if res.BlockingPrerequisite != nil {
		return fmt.Sprintf("Complete \"%s\" to unlock.", res.BlockingPrerequisite.Title)
	}
	if res.BlockingPrerequisiteID != 0 {
		return fmt.Sprintf("Unlock by completing #%d.", res.BlockingPrerequisiteID)
	}
	if res.BlockingBlockID != nil {
		if b := blocks[*res.BlockingBlockID]; b != nil {
			return fmt.Sprintf("Complete Module %d • %s to unlock this assignment.", b.Order, b.Title)
		}
		return "Complete the module to unlock."
	}
	return "Prerequisite incomplete."
}
