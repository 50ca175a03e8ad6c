// Package buffer provides the raw buffer resource kind for frame files.
package buffer

import (
	"context"
	"fmt"

	"github.com/vk/framegraphgo/internal/arena"
	"github.com/vk/framegraphgo/internal/ctxlog"
)

// Desc describes a raw buffer.
type Desc struct {
	Size uint32 `hcl:"size"`
}

func (d Desc) String() string {
	return fmt.Sprintf("buffer %dB", d.Size)
}

// Buffer is a graph-managed linear allocation backed by an arena slot.
type Buffer struct {
	Handle uint32
}

func (b *Buffer) Create(ctx context.Context, desc Desc, allocator any) error {
	a, ok := allocator.(*arena.Arena)
	if !ok {
		return fmt.Errorf("buffer: unsupported allocator %T", allocator)
	}
	b.Handle = a.Acquire(desc.String())
	ctxlog.FromContext(ctx).Debug("Buffer realized.", "desc", desc.String(), "handle", b.Handle)
	return nil
}

func (b *Buffer) Destroy(ctx context.Context, desc Desc, allocator any) error {
	a, ok := allocator.(*arena.Arena)
	if !ok {
		return fmt.Errorf("buffer: unsupported allocator %T", allocator)
	}
	a.Release(desc.String(), b.Handle)
	b.Handle = 0
	return nil
}
