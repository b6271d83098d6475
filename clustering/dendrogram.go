package clustering

import (
	"fmt"
	"math"
)

// NodeID identifies a node in the dendrogram. Base nodes (leaves) occupy
// [0, numNodes) and merged clusters occupy [numNodes, 2*numNodes-1); both
// ranges share the one id space.
type NodeID = int32

// InvalidClusterID is the sentinel parent id meaning "no parent yet". It is
// the maximum representable NodeID, which NewDendrogram guarantees is
// strictly above every valid cluster id.
const InvalidClusterID NodeID = math.MaxInt32

// ParentEdge is the directed edge from a cluster to the cluster it merged
// into, labeled with the similarity of that merge event.
type ParentEdge struct {
	Parent          NodeID
	MergeSimilarity float64
}

// Dendrogram records the merge history of numNodes base nodes as parent
// pointers: one ParentEdge slot per id in [0, 2*numNodes-1), each written
// at most once by MergeToParent. Slots that never receive a parent are
// permanent roots, so the structure may describe a forest.
//
// The store has no internal synchronization. MergeToParent may be called
// concurrently for distinct children only, and no query may overlap the
// build phase; both are contracts on the caller.
type Dendrogram struct {
	parents  []ParentEdge
	numNodes NodeID
}

// NewDendrogram creates a dendrogram for numNodes base nodes, allocating
// 2*numNodes-1 parent-edge slots. It panics if numNodes < 1 or if the
// derived id space would not fit below InvalidClusterID.
func NewDendrogram(numNodes NodeID) *Dendrogram {
	if numNodes < 1 {
		panic(fmt.Sprintf("clustering: numNodes must be >= 1, got %d", numNodes))
	}
	maxClusterID := 2*int64(numNodes) - 1
	if maxClusterID >= int64(InvalidClusterID) {
		panic(fmt.Sprintf("clustering: %d nodes need cluster ids up to %d, which does not fit below the sentinel %d",
			numNodes, maxClusterID-1, InvalidClusterID))
	}
	parents := make([]ParentEdge, maxClusterID)
	for i := range parents {
		parents[i].Parent = InvalidClusterID
	}
	return &Dendrogram{parents: parents, numNodes: numNodes}
}

// MergeToParent records that child merged into parent at the given
// similarity. For a k-ary merge creating one new cluster, call this k
// times, once per child (twice for a binary merge). The driver must assign
// parent ids in [numNodes, 2*numNodes-1).
//
// Each child slot is written exactly once; a second merge for the same
// child is a contract violation and panics. Concurrent calls are safe for
// distinct children only.
func (d *Dendrogram) MergeToParent(child, parent NodeID, similarity float64) {
	if d.parents[child].Parent != InvalidClusterID {
		panic(fmt.Sprintf("clustering: node %d is already merged into %d", child, d.parents[child].Parent))
	}
	d.parents[child] = ParentEdge{Parent: parent, MergeSimilarity: similarity}
}

// GetParent returns the parent edge of the given node. For a node that has
// not been merged, the edge's Parent is InvalidClusterID.
func (d *Dendrogram) GetParent(node NodeID) ParentEdge {
	return d.parents[node]
}

// HasValidParent reports whether the given node has been merged into a
// parent cluster.
func (d *Dendrogram) HasValidParent(node NodeID) bool {
	return d.parents[node].Parent != InvalidClusterID
}

// NumNodes returns the number of base nodes the dendrogram was built for.
func (d *Dendrogram) NumNodes() NodeID {
	return d.numNodes
}

// MaxClusterID returns the exclusive upper bound of the id space,
// 2*NumNodes()-1. Every valid node or cluster id is below it.
func (d *Dendrogram) MaxClusterID() NodeID {
	return NodeID(len(d.parents))
}

// Roots returns, in ascending id order, every node or cluster with no
// parent edge: base nodes that were never merged plus merged clusters that
// were never merged further. Cluster ids no merge has pointed at do not
// exist in the tree and are not reported. A fully merged dendrogram has a
// single root; a forest has one per tree.
func (d *Dendrogram) Roots() []NodeID {
	referenced := make([]bool, len(d.parents))
	for _, edge := range d.parents {
		if edge.Parent != InvalidClusterID {
			referenced[edge.Parent] = true
		}
	}
	var roots []NodeID
	for id := NodeID(0); id < d.MaxClusterID(); id++ {
		if d.parents[id].Parent != InvalidClusterID {
			continue
		}
		if id < d.numNodes || referenced[id] {
			roots = append(roots, id)
		}
	}
	return roots
}
