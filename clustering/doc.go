// Package clustering implements a parallel dendrogram: a node-weighted
// merge tree (or forest) built incrementally by a bottom-up hierarchical
// clustering algorithm, together with the flat-cut queries that turn the
// tree into a partition of the base nodes.
//
// The clustering driver registers merges during a build phase:
//
//	d := clustering.NewDendrogram(numNodes)
//	// A k-ary merge into a new cluster id is k MergeToParent calls.
//	d.MergeToParent(a, parent, similarity)
//	d.MergeToParent(b, parent, similarity)
//
// New cluster ids must lie in [numNodes, 2*numNodes-1) and are assigned by
// the driver. Once the build phase is complete, the dendrogram can be cut
// at a similarity threshold:
//
//	assignments := d.GetClustering(0.5)
//	groups := clustering.AssignmentsToClustering(assignments)
//
// GetClustering assumes leaf-to-root paths have non-increasing merge
// similarities; GetSubtreeClustering handles non-monotone paths and
// guarantees every emitted group is a subtree of the dendrogram. Queries
// are read-only and may run concurrently with each other, but never with
// the build phase.
package clustering
