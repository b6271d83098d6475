package unionfind

import (
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	uf := New(5)

	if uf.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", uf.Size())
	}
	// Each element should be its own root.
	for i := int32(0); i < 5; i++ {
		if root := uf.Find(i); root != i {
			t.Errorf("Find(%d) = %d, want %d", i, root, i)
		}
	}
}

func TestUnite_TwoElements(t *testing.T) {
	uf := New(5)
	uf.Unite(1, 3)

	if uf.Find(1) != uf.Find(3) {
		t.Error("after Unite(1,3), Find(1) != Find(3)")
	}
	// Elements outside the set are untouched.
	if uf.Find(0) != 0 || uf.Find(2) != 2 || uf.Find(4) != 4 {
		t.Error("Unite(1,3) disturbed unrelated elements")
	}
}

func TestUnite_IdempotentAndCommutative(t *testing.T) {
	uf := New(4)
	uf.Unite(0, 1)
	root := uf.Find(0)

	uf.Unite(0, 1)
	uf.Unite(1, 0)

	if uf.Find(0) != root || uf.Find(1) != root {
		t.Error("redundant Unite calls changed the component")
	}
	if uf.Find(2) == root {
		t.Error("redundant Unite calls leaked into another component")
	}
}

func TestUnite_Chain(t *testing.T) {
	uf := New(8)

	// Two components: {0..3} and {4..7}.
	for i := int32(0); i < 3; i++ {
		uf.Unite(i, i+1)
	}
	for i := int32(4); i < 7; i++ {
		uf.Unite(i, i+1)
	}

	if uf.Find(0) != uf.Find(3) {
		t.Error("0 and 3 should share a representative")
	}
	if uf.Find(4) != uf.Find(7) {
		t.Error("4 and 7 should share a representative")
	}
	if uf.Find(0) == uf.Find(4) {
		t.Error("the two chains should be distinct components")
	}

	uf.Unite(3, 4)
	root := uf.Find(0)
	for i := int32(1); i < 8; i++ {
		if uf.Find(i) != root {
			t.Errorf("after joining chains, Find(%d) != Find(0)", i)
		}
	}
}

func TestConcurrentUnite_DisjointPairs(t *testing.T) {
	const n = 2048
	uf := New(n)

	var wg sync.WaitGroup
	for i := int32(0); i < n; i += 2 {
		wg.Add(1)
		go func(a int32) {
			defer wg.Done()
			uf.Unite(a, a+1)
		}(i)
	}
	wg.Wait()

	for i := int32(0); i < n; i += 2 {
		if uf.Find(i) != uf.Find(i+1) {
			t.Fatalf("pair (%d,%d) not united", i, i+1)
		}
		if i+2 < n && uf.Find(i) == uf.Find(i+2) {
			t.Fatalf("pairs (%d,%d) and (%d,%d) merged unexpectedly", i, i+1, i+2, i+3)
		}
	}
}

func TestConcurrentUnite_OverlappingChain(t *testing.T) {
	// Every goroutine unites an overlapping link of one long chain, so the
	// CAS retry path is exercised. The final structure must be a single
	// component regardless of interleaving.
	const n = 4096
	uf := New(n)

	var wg sync.WaitGroup
	for i := int32(0); i < n-1; i++ {
		wg.Add(1)
		go func(a int32) {
			defer wg.Done()
			uf.Unite(a, a+1)
		}(i)
	}
	wg.Wait()

	root := uf.Find(0)
	for i := int32(1); i < n; i++ {
		if uf.Find(i) != root {
			t.Fatalf("Find(%d) = %d, want %d", i, uf.Find(i), root)
		}
	}
}

func TestConcurrentFindDuringUnite(t *testing.T) {
	// Finds racing with Unites may observe stale representatives but must
	// never panic or corrupt the structure.
	const n = 1024
	uf := New(n)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := int32(0); i < n-1; i++ {
			uf.Unite(i, i+1)
		}
	}()
	go func() {
		defer wg.Done()
		for pass := 0; pass < 4; pass++ {
			for i := int32(0); i < n; i++ {
				uf.Find(i)
			}
		}
	}()
	wg.Wait()

	root := uf.Find(0)
	for i := int32(1); i < n; i++ {
		if uf.Find(i) != root {
			t.Fatalf("Find(%d) = %d, want %d", i, uf.Find(i), root)
		}
	}
}
