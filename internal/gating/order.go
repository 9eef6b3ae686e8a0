package gating

import (
	"sort"

	"brainink_backend/internal/model"
)

// PreviousMap maps an assignment definition id to the id of the definition
// immediately before it within the same block. First-in-block maps to 0; a
// missing key means the same thing (no chain predecessor). Definitions
// without a block never appear.
type PreviousMap map[uint]uint

// ResolveOrder builds the linear prerequisite chain for every block: sort by
// creation time ascending, ties broken by ascending id, so the order is
// reproducible regardless of fetch ordering. Pure function of its input.
func ResolveOrder(definitions []model.Assignment) PreviousMap {
	byBlock := make(map[uint][]model.Assignment)
	for _, d := range definitions {
		if d.BlockID == nil {
			continue
		}
		byBlock[*d.BlockID] = append(byBlock[*d.BlockID], d)
	}

	prev := make(PreviousMap, len(definitions))
	for _, group := range byBlock {
		sortDefinitions(group)
		for i := range group {
			if i == 0 {
				prev[group[i].ID] = 0
			} else {
				prev[group[i].ID] = group[i-1].ID
			}
		}
	}
	return prev
}

func sortDefinitions(defs []model.Assignment) {
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].CreatedAt.Equal(defs[j].CreatedAt) {
			return defs[i].ID < defs[j].ID
		}
		return defs[i].CreatedAt.Before(defs[j].CreatedAt)
	})
}

// previousInBlock recomputes the predecessor of defID by resorting just that
// block's definitions. Fallback for a PreviousMap built from a smaller
// definition set than is currently visible.
func previousInBlock(defID, blockID uint, definitions []model.Assignment) uint {
	var group []model.Assignment
	for _, d := range definitions {
		if d.BlockID != nil && *d.BlockID == blockID {
			group = append(group, d)
		}
	}
	sortDefinitions(group)
	for i := range group {
		if group[i].ID == defID {
			if i == 0 {
				return 0
			}
			return group[i-1].ID
		}
	}
	return 0
}
