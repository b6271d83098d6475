package clustering

import (
	"sort"

	"github.com/yushangdi/graph-mining/unionfind"
)

// AssignmentsToClustering converts the dense (node, representative) output
// of a flattening query into a list of groups. Groups appear in order of
// their lowest member; members appear in ascending node-id order.
func AssignmentsToClustering(assignments []Assignment) [][]NodeID {
	index := make(map[NodeID]int)
	var groups [][]NodeID
	for _, a := range assignments {
		g, ok := index[a.Cluster]
		if !ok {
			g = len(groups)
			index[a.Cluster] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], a.Node)
	}
	return groups
}

// WeightedEdge is an undirected graph edge with a similarity weight, the
// input to SingleLinkage.
type WeightedEdge struct {
	U, V       NodeID
	Similarity float64
}

// SingleLinkage builds a dendrogram over numNodes base nodes by greedy
// single-linkage agglomeration: edges are processed in order of decreasing
// similarity, and each edge that joins two distinct clusters creates a new
// merged cluster with ids assigned sequentially from numNodes. Edges inside
// an already-merged cluster are skipped, so at most numNodes-1 merges occur
// and disconnected inputs yield a forest.
//
// This is a convenience driver; any clustering algorithm can build a
// dendrogram directly through MergeToParent.
func SingleLinkage(edges []WeightedEdge, numNodes NodeID) *Dendrogram {
	d := NewDendrogram(numNodes)

	sorted := make([]WeightedEdge, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Similarity > sorted[j].Similarity
	})

	uf := unionfind.New(d.MaxClusterID())
	// cluster[r] is the dendrogram cluster currently represented by
	// union-find root r.
	cluster := make([]NodeID, d.MaxClusterID())
	for i := range cluster {
		cluster[i] = NodeID(i)
	}

	next := numNodes
	for _, e := range sorted {
		ru := uf.Find(e.U)
		rv := uf.Find(e.V)
		if ru == rv {
			continue
		}
		d.MergeToParent(cluster[ru], next, e.Similarity)
		d.MergeToParent(cluster[rv], next, e.Similarity)
		uf.Unite(ru, rv)
		cluster[uf.Find(ru)] = next
		next++
	}
	return d
}
