// Package unionfind implements a concurrency-safe disjoint-set (union-find)
// structure over a fixed universe of int32 identifiers.
//
// All operations are lock-free: parent links are updated with compare-and-
// swap, so any number of goroutines may call Unite and Find concurrently.
// Individual operations are linearizable, but a Find that races with a
// Unite may return a stale representative; once all Unite calls have
// completed (e.g. after a fork-join barrier), Find results are consistent
// with every union performed.
package unionfind

import "sync/atomic"

// UnionFind is a lock-free disjoint-set over the universe [0, size).
// Initially every element is its own singleton set.
type UnionFind struct {
	parent []atomic.Int32
}

// New creates a UnionFind over the universe [0, size).
func New(size int32) *UnionFind {
	parent := make([]atomic.Int32, size)
	for i := range parent {
		parent[i].Store(int32(i))
	}
	return &UnionFind{parent: parent}
}

// Size returns the universe size.
func (u *UnionFind) Size() int32 {
	return int32(len(u.parent))
}

// Find returns the representative of the set containing x, compressing the
// path by halving as it walks. A racing Unite can make the result stale;
// see the package comment.
func (u *UnionFind) Find(x int32) int32 {
	for {
		p := u.parent[x].Load()
		if p == x {
			return p
		}
		// Path halving: point x at its grandparent. Losing this CAS is
		// fine; a concurrent walk already shortened the path.
		gp := u.parent[p].Load()
		u.parent[x].CompareAndSwap(p, gp)
		x = gp
	}
}

// Unite merges the sets containing a and b. It is idempotent and
// commutative; redundant calls are no-ops. Roots are linked by identifier
// order (larger root under smaller), which gives CAS retries a consistent
// direction and rules out link cycles.
func (u *UnionFind) Unite(a, b int32) {
	for {
		ra := u.Find(a)
		rb := u.Find(b)
		if ra == rb {
			return
		}
		if ra < rb {
			ra, rb = rb, ra
		}
		if u.parent[ra].CompareAndSwap(ra, rb) {
			return
		}
		// Another goroutine linked ra first; re-resolve the roots.
	}
}
