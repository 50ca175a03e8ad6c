package config

import (
	"github.com/hashicorp/hcl/v2"
)

// Model is the unified representation of one frame declaration: the
// transient and imported resources plus the ordered pass list.
type Model struct {
	Frame *Frame
}

// Frame holds everything a single frame file (or directory of files)
// declared. Pass order is declaration order and is preserved verbatim.
type Frame struct {
	Resources []*Resource
	Imports   []*Import
	Passes    []*Pass
}

// Resource is a transient resource declaration: a kind label, a unique
// name, the name of the pass that produces it, and the raw descriptor body
// left undecoded until the kind is known.
type Resource struct {
	Kind string
	Name string
	Pass string
	Body hcl.Body
}

// Import is a caller-backed resource declaration. Handle is the opaque
// backing identifier handed to the kind's import hook.
type Import struct {
	Kind   string
	Name   string
	Handle uint32
	Body   hcl.Body
}

// Pass is one pass declaration. Reads and Writes reference resources and
// imports by name; creation is implied by Resource.Pass.
type Pass struct {
	Name       string
	Reads      []string
	Writes     []string
	SideEffect bool
}
