package framegraph

// NodeID identifies one version of a virtual resource. Handles are cheap,
// copyable and comparable; a handle goes stale the moment a later pass
// writes the resource it points at.
type NodeID uint32

// AccessFlags are opaque, caller-defined bits attached to a read or write
// declaration and forwarded verbatim to the kind's PreRead/PreWrite hooks.
type AccessFlags uint32

// FlagsIgnored is the flag value used by the flag-less Read/Write variants.
const FlagsIgnored = ^AccessFlags(0)

// accessDecl is one read or write declaration of a pass. Flags are part of
// the declaration's identity: the same node may be declared once per
// distinct flag value within a single pass.
type accessDecl struct {
	id    NodeID
	flags AccessFlags
}
