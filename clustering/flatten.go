package clustering

import (
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/yushangdi/graph-mining/parallel"
	"github.com/yushangdi/graph-mining/unionfind"
)

// Assignment maps a base node to the representative id of its flat cluster.
// Representative ids are arbitrary ids in [0, 2*numNodes-1); they carry no
// meaning beyond group equality.
type Assignment struct {
	Node    NodeID
	Cluster NodeID
}

// UnionFind is the disjoint-set capability the flattening queries need. Any
// implementation whose Unite is idempotent and commutative and whose
// operations are safe under concurrent use satisfies it.
type UnionFind interface {
	Unite(a, b NodeID)
	Find(x NodeID) NodeID
}

// Tolerances for comparing a merge similarity against the cut threshold.
// An edge whose similarity is within this distance of the threshold is
// preserved, so a similarity that is numerically equal to the threshold up
// to rounding is never excluded at the boundary.
const (
	thresholdAbsTol = 1e-12
	thresholdRelTol = 1e-9
)

// passesThreshold reports whether an edge with the given merge similarity
// survives a cut at threshold. The near-equality comparison is symmetric in
// its operands.
func passesThreshold(similarity, threshold float64) bool {
	return similarity > threshold ||
		scalar.EqualWithinAbsOrRel(similarity, threshold, thresholdAbsTol, thresholdRelTol)
}

// GetClustering cuts the dendrogram at the given similarity threshold and
// returns one Assignment per base node, in node-id order. Two nodes share a
// representative iff they are connected through a chain of merge edges each
// with similarity >= threshold (up to the boundary tolerance).
//
// This assumes leaf-to-root paths have non-increasing merge similarities,
// in which case every emitted group is a subtree of the dendrogram. With
// non-monotone paths the result is still a valid partition, but a group may
// span unrelated subtrees; use GetSubtreeClustering in that case.
//
// The query is read-only: it may run concurrently with other queries
// against the same built dendrogram, but not with the build phase.
func (d *Dendrogram) GetClustering(threshold float64) []Assignment {
	var uf UnionFind = unionfind.New(d.MaxClusterID())

	// Preserve every parent edge at or above the threshold.
	parallel.For(len(d.parents), func(i int) {
		edge := d.parents[i]
		if edge.Parent != InvalidClusterID && passesThreshold(edge.MergeSimilarity, threshold) {
			uf.Unite(NodeID(i), edge.Parent)
		}
	})

	return d.emit(uf)
}

// GetSubtreeClustering cuts the dendrogram at the given similarity
// threshold while guaranteeing that every emitted group is a subtree of the
// dendrogram, even when leaf-to-root merge similarities are non-monotone.
// Each base node is assigned to the subtree rooted at the last ancestor on
// its leaf-to-root path whose creating merge has similarity >= threshold
// (up to the boundary tolerance); a node with no such ancestor stays a
// singleton.
//
// Output shape and the read-only contract match GetClustering. The work of
// the per-leaf walks is proportional to the sum of all leaf-to-root path
// lengths, which can be superlinear for skewed trees.
// TODO: pointer-jump the walks to bring the work back to near-linear.
func (d *Dendrogram) GetSubtreeClustering(threshold float64) []Assignment {
	var uf UnionFind = unionfind.New(d.MaxClusterID())

	// Phase 1: the dendrogram may be k-ary and children may record
	// different similarities into one parent, so reduce each cluster's
	// direct child edges to a single merge similarity via scatter-max.
	// Only immediate children are inspected, never whole subtrees.
	mergeSimilarities := make([]atomic.Uint64, len(d.parents))
	parallel.For(len(d.parents), func(i int) {
		edge := d.parents[i]
		if edge.Parent != InvalidClusterID {
			storeMax(&mergeSimilarities[edge.Parent], edge.MergeSimilarity)
		}
	})

	// uniteAlongPath unites every node on the dendrogram path from child
	// up to ancestor into one component. If the two endpoints already
	// share a representative the whole path has been handled before.
	uniteAlongPath := func(child, ancestor NodeID) {
		if uf.Find(child) == uf.Find(ancestor) {
			return
		}
		for child != ancestor {
			uf.Unite(child, ancestor)
			child = d.parents[child].Parent
		}
	}

	// Phase 2: walk each leaf-to-root path, tracking the last ancestor
	// confirmed to pass the threshold, and unite the pending path segment
	// whenever a new qualifying ancestor is found.
	parallel.For(int(d.numNodes), func(i int) {
		child := NodeID(i)
		lastRoot := NodeID(i)
		for d.parents[child].Parent != InvalidClusterID {
			parent := d.parents[child].Parent
			similarity := loadFloat(&mergeSimilarities[parent])
			// Concurrent walks may have united child and parent already;
			// the two Finds can also disagree transiently while another
			// walk is mid-union. That race only costs extra work: Unite
			// is idempotent, so the final partition is unaffected.
			if uf.Find(child) != uf.Find(parent) {
				if passesThreshold(similarity, threshold) {
					uniteAlongPath(lastRoot, parent)
					lastRoot = parent
				}
				child = parent
			} else {
				// Another walk resolved everything from child upward.
				// Attach the pending segment below child and stop.
				uniteAlongPath(lastRoot, child)
				break
			}
		}
	})

	return d.emit(uf)
}

// emit produces the dense per-node output by resolving each base node's
// representative.
func (d *Dendrogram) emit(uf UnionFind) []Assignment {
	assignments := make([]Assignment, d.numNodes)
	parallel.For(int(d.numNodes), func(i int) {
		assignments[i] = Assignment{Node: NodeID(i), Cluster: uf.Find(NodeID(i))}
	})
	return assignments
}

// loadFloat reads a float64 stored as bits in an atomic word.
func loadFloat(word *atomic.Uint64) float64 {
	return math.Float64frombits(word.Load())
}

// storeMax atomically raises the float64 held in word to v if v is larger.
func storeMax(word *atomic.Uint64, v float64) {
	for {
		old := word.Load()
		if math.Float64frombits(old) >= v {
			return
		}
		if word.CompareAndSwap(old, math.Float64bits(v)) {
			return
		}
	}
}
