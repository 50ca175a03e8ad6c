package framegraph

import (
	"context"
	"fmt"
)

// Virtual is the contract a resource kind must satisfy to be managed by the
// graph. D is the kind's descriptor: a copyable value fully describing the
// resource so that Create can realize it and Destroy can release it. The
// allocator is whatever was passed to Execute, forwarded untouched.
type Virtual[D any] interface {
	Create(ctx context.Context, desc D, allocator any) error
	Destroy(ctx context.Context, desc D, allocator any) error
}

// virtualPtr constrains PR to the pointer type of R, which must implement
// Virtual[D]. It lets Create default-construct the backing object while the
// kind keeps pointer-receiver methods.
type virtualPtr[R any, D any] interface {
	*R
	Virtual[D]
}

// preReader is an optional hook a kind may implement; it runs before the
// exec closure of every pass that declared a read of the resource.
type preReader[D any] interface {
	PreRead(ctx context.Context, desc D, flags AccessFlags)
}

// preWriter is the write-side counterpart of preReader.
type preWriter[D any] interface {
	PreWrite(ctx context.Context, desc D, flags AccessFlags)
}

// boxedResource erases the concrete kind of a (descriptor, resource) pair
// so entries of different kinds can share one registry.
type boxedResource interface {
	create(ctx context.Context, allocator any) error
	destroy(ctx context.Context, allocator any) error
	preRead(ctx context.Context, flags AccessFlags)
	preWrite(ctx context.Context, flags AccessFlags)
	label() string
	resourceAny() any
	descriptorAny() any
}

type boxed[R any, D any, PR virtualPtr[R, D]] struct {
	descriptor D
	resource   R
}

func newBoxed[R any, D any, PR virtualPtr[R, D]](desc D, resource R) *boxed[R, D, PR] {
	return &boxed[R, D, PR]{descriptor: desc, resource: resource}
}

func (b *boxed[R, D, PR]) create(ctx context.Context, allocator any) error {
	return PR(&b.resource).Create(ctx, b.descriptor, allocator)
}

func (b *boxed[R, D, PR]) destroy(ctx context.Context, allocator any) error {
	return PR(&b.resource).Destroy(ctx, b.descriptor, allocator)
}

func (b *boxed[R, D, PR]) preRead(ctx context.Context, flags AccessFlags) {
	if h, ok := any(&b.resource).(preReader[D]); ok {
		h.PreRead(ctx, b.descriptor, flags)
	}
}

func (b *boxed[R, D, PR]) preWrite(ctx context.Context, flags AccessFlags) {
	if h, ok := any(&b.resource).(preWriter[D]); ok {
		h.PreWrite(ctx, b.descriptor, flags)
	}
}

func (b *boxed[R, D, PR]) label() string {
	if s, ok := any(b.descriptor).(fmt.Stringer); ok {
		return s.String()
	}
	return ""
}

func (b *boxed[R, D, PR]) resourceAny() any   { return &b.resource }
func (b *boxed[R, D, PR]) descriptorAny() any { return b.descriptor }

type entryType uint8

const (
	transient entryType = iota
	imported
)

// initialVersion is the version every entry starts at; the first rename
// advances it to 2.
const initialVersion uint32 = 1

// none marks an unset pass back-reference on entries and nodes.
const none int32 = -1

// resourceEntry is the physical side of a virtual resource: one per
// create/import declaration, shared by every renamed version of it.
type resourceEntry struct {
	typ     entryType
	id      uint32
	version uint32
	box     boxedResource

	// producer and last are indexes into the pass table, computed during
	// compile. producer is the earliest live pass that needs the backing
	// store realized, last the latest pass still touching any version.
	producer int32
	last     int32

	// realized tracks whether the transient backing store currently
	// exists, so a mid-walk failure only destroys what was created.
	realized bool
}

func (e *resourceEntry) isTransient() bool { return e.typ == transient }
func (e *resourceEntry) isImported() bool  { return e.typ == imported }

func (e *resourceEntry) create(ctx context.Context, allocator any) error {
	if !e.isTransient() {
		panic(fmt.Sprintf("framegraph: create called on imported entry %d", e.id))
	}
	if err := e.box.create(ctx, allocator); err != nil {
		return err
	}
	e.realized = true
	return nil
}

func (e *resourceEntry) destroy(ctx context.Context, allocator any) error {
	if !e.isTransient() {
		panic(fmt.Sprintf("framegraph: destroy called on imported entry %d", e.id))
	}
	e.realized = false
	return e.box.destroy(ctx, allocator)
}

// descriptorOf is the shared typed-descriptor accessor behind both the
// graph-level and the pass-level lookups.
func descriptorOf[D any](e *resourceEntry) (D, error) {
	d, ok := e.box.descriptorAny().(D)
	if !ok {
		var zero D
		return zero, fmt.Errorf("%w: entry %d holds a %T descriptor, not %T",
			ErrWrongKind, e.id, e.box.descriptorAny(), zero)
	}
	return d, nil
}
