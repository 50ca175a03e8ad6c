// Package texture provides the 2D texture resource kind for frame files.
package texture

import (
	"context"
	"fmt"

	"github.com/vk/framegraphgo/internal/arena"
	"github.com/vk/framegraphgo/internal/ctxlog"
	"github.com/vk/framegraphgo/internal/framegraph"
)

// Desc describes a 2D texture.
type Desc struct {
	Width  uint32 `hcl:"width"`
	Height uint32 `hcl:"height"`
	Format string `hcl:"format,optional"`
}

func (d Desc) String() string {
	format := d.Format
	if format == "" {
		format = "rgba8"
	}
	return fmt.Sprintf("texture %dx%d %s", d.Width, d.Height, format)
}

// Texture is a graph-managed 2D texture backed by an arena slot. Imported
// textures carry a caller-supplied handle instead.
type Texture struct {
	Handle uint32
}

// Create realizes the texture against the arena, reusing a pooled slot of
// the same shape when one exists.
func (t *Texture) Create(ctx context.Context, desc Desc, allocator any) error {
	a, ok := allocator.(*arena.Arena)
	if !ok {
		return fmt.Errorf("texture: unsupported allocator %T", allocator)
	}
	t.Handle = a.Acquire(desc.String())
	ctxlog.FromContext(ctx).Debug("Texture realized.", "desc", desc.String(), "handle", t.Handle)
	return nil
}

// Destroy returns the backing slot to the arena pool.
func (t *Texture) Destroy(ctx context.Context, desc Desc, allocator any) error {
	a, ok := allocator.(*arena.Arena)
	if !ok {
		return fmt.Errorf("texture: unsupported allocator %T", allocator)
	}
	a.Release(desc.String(), t.Handle)
	ctxlog.FromContext(ctx).Debug("Texture released.", "desc", desc.String(), "handle", t.Handle)
	t.Handle = 0
	return nil
}

// PreRead logs the sampling access before the consuming pass runs.
func (t *Texture) PreRead(ctx context.Context, desc Desc, flags framegraph.AccessFlags) {
	ctxlog.FromContext(ctx).Debug("Texture bound for sampling.", "desc", desc.String(), "handle", t.Handle, "flags", uint32(flags))
}

// PreWrite logs the attachment access before the producing pass runs.
func (t *Texture) PreWrite(ctx context.Context, desc Desc, flags framegraph.AccessFlags) {
	ctxlog.FromContext(ctx).Debug("Texture bound as target.", "desc", desc.String(), "handle", t.Handle, "flags", uint32(flags))
}
