package framegraph

import "fmt"

// PassResources is the bounded view of the graph a pass sees while its exec
// closure runs. Lookups succeed only for nodes the pass declared via
// create, read or write; references it lends must not outlive the closure.
type PassResources struct {
	graph *FrameGraph
	pass  *passNode
}

// Get returns the backing object of a declared resource.
func Get[R any](res *PassResources, id NodeID) (*R, error) {
	e, err := res.entry(id)
	if err != nil {
		return nil, err
	}
	r, ok := e.box.resourceAny().(*R)
	if !ok {
		var zero *R
		return nil, fmt.Errorf("%w: node %d holds %T, not %T",
			ErrWrongKind, id, e.box.resourceAny(), zero)
	}
	return r, nil
}

// GetDescriptor returns the descriptor of a declared resource.
func GetDescriptor[D any](res *PassResources, id NodeID) (D, error) {
	e, err := res.entry(id)
	if err != nil {
		var zero D
		return zero, err
	}
	return descriptorOf[D](e)
}

func (res *PassResources) entry(id NodeID) (*resourceEntry, error) {
	if !res.pass.declared(id) {
		return nil, fmt.Errorf("%w: pass %q never declared node %d",
			ErrUndeclaredAccess, res.pass.name, id)
	}
	return res.graph.entryOf(id), nil
}
