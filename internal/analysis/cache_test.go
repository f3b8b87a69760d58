package analysis_test

import (
	"testing"

	"github.com/alichraghi/shady/internal/analysis"
)

func TestCacheSummarizeHitsMemoryOnSecondCall(t *testing.T) {
	fn := buildBranchyFunction(t)

	cache, err := analysis.OpenCache(t.TempDir(), 16)
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	defer cache.Close()

	first, err := cache.Summarize(fn)
	if err != nil {
		t.Fatalf("Summarize (cold): %v", err)
	}
	second, err := cache.Summarize(fn)
	if err != nil {
		t.Fatalf("Summarize (warm): %v", err)
	}
	if first != second {
		t.Fatalf("cached summary differs across calls: %+v != %+v", first, second)
	}
	if !first.HasStructured {
		t.Errorf("expected HasStructured for a function containing an If (StructuredEnterBody edges)")
	}
	if first.CFGNodeCount == 0 {
		t.Errorf("expected a non-zero CFG node count for a branchy function")
	}
}

func TestCacheKeyStableAcrossIdenticalDumps(t *testing.T) {
	fnA := buildBranchyFunction(t)
	fnB := buildBranchyFunction(t)
	if analysis.Key(fnA) != analysis.Key(fnB) {
		t.Errorf("two structurally identical functions built in separate arenas should hash to the same key")
	}
}
