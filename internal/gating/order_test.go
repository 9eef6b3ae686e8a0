package gating

import (
	"reflect"
	"testing"
	"time"

	"brainink_backend/internal/model"
)

func def(id uint, blockID *uint, createdAt time.Time) model.Assignment {
	return model.Assignment{
		BaseModel: model.BaseModel{ID: id, CreatedAt: createdAt},
		CourseID:  1,
		BlockID:   blockID,
		Title:     "assignment",
	}
}

func uintPtr(v uint) *uint { return &v }

func TestResolveOrderChain(t *testing.T) {
	block := uintPtr(10)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	prev := ResolveOrder([]model.Assignment{
		def(3, block, base.Add(2*time.Hour)),
		def(1, block, base),
		def(2, block, base.Add(time.Hour)),
	})

	if got := prev[1]; got != 0 {
		t.Fatalf("first in block should have no predecessor, got %d", got)
	}
	if got := prev[2]; got != 1 {
		t.Fatalf("expected predecessor of 2 to be 1, got %d", got)
	}
	if got := prev[3]; got != 2 {
		t.Fatalf("expected predecessor of 3 to be 2, got %d", got)
	}
}

func TestResolveOrderExcludesBlocklessDefinitions(t *testing.T) {
	base := time.Now()
	prev := ResolveOrder([]model.Assignment{
		def(1, nil, base),
		def(2, uintPtr(5), base),
	})

	if _, ok := prev[1]; ok {
		t.Fatalf("blockless definition must be absent from the map")
	}
	if _, ok := prev[2]; !ok {
		t.Fatalf("blocked definition missing from the map")
	}
}

func TestResolveOrderTieBreaksByID(t *testing.T) {
	block := uintPtr(7)
	same := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	defs := []model.Assignment{
		def(9, block, same),
		def(4, block, same),
		def(6, block, same),
	}

	// stable across repeated calls with differently-ordered input
	for i := 0; i < 3; i++ {
		prev := ResolveOrder(defs)
		if prev[4] != 0 || prev[6] != 4 || prev[9] != 6 {
			t.Fatalf("tie-break order wrong on pass %d: %v", i, prev)
		}
		defs[0], defs[2] = defs[2], defs[0]
	}
}

func TestResolveOrderEmptyInput(t *testing.T) {
	prev := ResolveOrder(nil)
	if len(prev) != 0 {
		t.Fatalf("expected empty map, got %v", prev)
	}
}

func TestOrderCacheReusesMapForSameSet(t *testing.T) {
	block := uintPtr(1)
	base := time.Now()
	defs := []model.Assignment{
		def(1, block, base),
		def(2, block, base.Add(time.Minute)),
	}

	var cache OrderCache
	first := cache.Resolve(defs)

	// same set, different order: must hit the cache
	swapped := []model.Assignment{defs[1], defs[0]}
	second := cache.Resolve(swapped)
	if reflect.ValueOf(first).Pointer() != reflect.ValueOf(second).Pointer() {
		t.Fatalf("expected cache hit for the same definition set")
	}
	if second[2] != 1 {
		t.Fatalf("expected predecessor of 2 to be 1, got %d", second[2])
	}

	// changed set: must recompute
	grown := append(swapped, def(3, block, base.Add(2*time.Minute)))
	third := cache.Resolve(grown)
	if third[3] != 2 {
		t.Fatalf("expected predecessor of 3 to be 2, got %d", third[3])
	}
}
