package framegraph

// resourceNode is one version of a resource entry. Nodes are append-only:
// renaming a resource adds a new node at the advanced version and leaves
// the old one in place so stale handles can be recognized.
type resourceNode struct {
	name       string
	id         NodeID
	resourceID uint32
	version    uint32

	// producer is the index of the pass that declared a write of this
	// version, set during compile; none for a node no pass writes, such as
	// the initial node of an imported resource.
	producer int32

	// refCount is the number of passes reading this node, seeded during
	// compile and consumed by culling.
	refCount int32
}
