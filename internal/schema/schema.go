// Package schema holds the HCL-facing structs a frame file decodes into.
// They are translated into the format-agnostic config model by the hcl
// package and never leak past the loader.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Resource represents a `resource "<kind>" "<name>"` block: a transient
// resource produced by the pass named in its `pass` attribute. Everything
// else in the block body is the kind-specific descriptor.
type Resource struct {
	Kind   string   `hcl:"kind,label"`
	Name   string   `hcl:"name,label"`
	Pass   string   `hcl:"pass"`
	Remain hcl.Body `hcl:",remain"`
}

// Import represents an `import "<kind>" "<name>"` block: a caller-backed
// resource the graph will never create or destroy. The `handle` attribute
// is the opaque backing identifier.
type Import struct {
	Kind   string   `hcl:"kind,label"`
	Name   string   `hcl:"name,label"`
	Handle uint32   `hcl:"handle"`
	Remain hcl.Body `hcl:",remain"`
}

// Pass represents a `pass "<name>"` block. Block order across the file set
// defines declaration (and therefore execution) order.
type Pass struct {
	Name       string   `hcl:"name,label"`
	Reads      []string `hcl:"reads,optional"`
	Writes     []string `hcl:"writes,optional"`
	SideEffect bool     `hcl:"side_effect,optional"`
}

// FrameConfig is the top-level structure of a frame file.
type FrameConfig struct {
	Resources []*Resource `hcl:"resource,block"`
	Imports   []*Import   `hcl:"import,block"`
	Passes    []*Pass     `hcl:"pass,block"`
}
