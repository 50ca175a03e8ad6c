package framegraph

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSideEffectPassExecutes(t *testing.T) {
	type passData struct {
		foo, bar NodeID
	}
	g := New()
	data := AddPass(g, "Test",
		func(b *Builder, d *passData) {
			d.foo = Create[texture2D](b, "foo", textureDesc{128, 128})
			d.bar = Create[texture2D](b, "bar", textureDesc{256, 256})
			d.foo = b.Write(d.foo)
			d.bar = b.Write(d.bar)
			b.SetSideEffect()
		},
		func(ctx context.Context, d *passData, res *PassResources) error {
			foo, err := Get[texture2D](res, d.foo)
			require.NoError(t, err)
			bar, err := Get[texture2D](res, d.bar)
			require.NoError(t, err)
			assert.Equal(t, uint32(1), foo.id)
			assert.Equal(t, uint32(2), bar.id)
			return nil
		})

	ctx := testContext()
	require.NoError(t, g.Compile(ctx))
	require.NoError(t, g.Execute(ctx, &recordingAllocator{}))

	_ = data
}

func TestImportedResourceRename(t *testing.T) {
	type passData struct {
		bb NodeID
	}
	g := New()
	backbuffer := Import(g, "Backbuffer", textureDesc{1280, 720}, texture2D{id: 777})
	temp := backbuffer

	ran := false
	data := AddPass(g, "Present",
		func(b *Builder, d *passData) {
			d.bb = b.Write(backbuffer)
		},
		func(ctx context.Context, d *passData, res *PassResources) error {
			ran = true
			bb, err := Get[texture2D](res, d.bb)
			require.NoError(t, err)
			assert.Equal(t, uint32(777), bb.id)
			return nil
		})

	assert.True(t, g.IsValid(data.bb))
	assert.False(t, g.IsValid(temp), "the pre-write handle must be stale")

	ctx := testContext()
	alloc := &recordingAllocator{}
	require.NoError(t, g.Compile(ctx))
	require.NoError(t, g.Execute(ctx, alloc))

	assert.True(t, ran, "writing an imported resource forces a side effect")
	assert.Empty(t, alloc.events, "imported resources are never created or destroyed")
}

func TestRenameChainBetweenPasses(t *testing.T) {
	type passData struct {
		handle NodeID
	}
	g := New()

	ran1, ran2 := false, false
	d1 := AddPass(g, "Pass1",
		func(b *Builder, d *passData) {
			d.handle = Create[texture2D](b, "foo", textureDesc{32, 32})
			d.handle = b.Write(d.handle)
		},
		func(ctx context.Context, d *passData, res *PassResources) error {
			ran1 = true
			return nil
		})
	d2 := AddPass(g, "Pass2",
		func(b *Builder, d *passData) {
			b.Read(d1.handle)
			d.handle = b.Write(d1.handle)
			b.SetSideEffect()
		},
		func(ctx context.Context, d *passData, res *PassResources) error {
			ran2 = true
			return nil
		})

	assert.False(t, g.IsValid(d1.handle))
	assert.True(t, g.IsValid(d2.handle))

	ctx := testContext()
	require.NoError(t, g.Compile(ctx))
	require.NoError(t, g.Execute(ctx, &recordingAllocator{}))
	assert.True(t, ran1)
	assert.True(t, ran2)
}

func TestDeferredPipelineCullsDummy(t *testing.T) {
	type gbufferData struct {
		depth, albedo, normal NodeID
	}
	g := New()
	backbuffer := Import(g, "Backbuffer", textureDesc{1280, 720}, texture2D{id: 1})

	var order []string
	var depth NodeID
	AddPass(g, "Depth",
		func(b *Builder, d *struct{ out NodeID }) {
			depth = Create[texture2D](b, "depth", textureDesc{1280, 720})
			depth = b.Write(depth)
		},
		func(ctx context.Context, _ *struct{ out NodeID }, res *PassResources) error {
			order = append(order, "Depth")
			return nil
		})

	gb := AddPass(g, "GBuffer",
		func(b *Builder, d *gbufferData) {
			d.depth = b.Read(depth)
			d.albedo = Create[texture2D](b, "albedo", textureDesc{1280, 720})
			d.normal = Create[texture2D](b, "normal", textureDesc{1280, 720})
			d.albedo = b.Write(d.albedo)
			d.normal = b.Write(d.normal)
		},
		func(ctx context.Context, d *gbufferData, res *PassResources) error {
			order = append(order, "GBuffer")
			return nil
		})

	AddPass(g, "Lighting",
		func(b *Builder, d *struct{ out NodeID }) {
			b.Read(gb.albedo)
			b.Read(gb.normal)
			d.out = b.Write(backbuffer)
		},
		func(ctx context.Context, _ *struct{ out NodeID }, res *PassResources) error {
			order = append(order, "Lighting")
			return nil
		})

	AddPass(g, "Dummy",
		func(b *Builder, _ *struct{}) {},
		func(ctx context.Context, _ *struct{}, res *PassResources) error {
			order = append(order, "Dummy")
			return nil
		})

	ctx := testContext()
	require.NoError(t, g.Compile(ctx))
	require.NoError(t, g.Execute(ctx, &recordingAllocator{}))
	assert.Equal(t, []string{"Depth", "GBuffer", "Lighting"}, order)
}

func TestWrongKindAccess(t *testing.T) {
	g := New()
	var foo NodeID
	AddPass(g, "producer",
		func(b *Builder, _ *struct{}) {
			foo = Create[texture2D](b, "foo", textureDesc{16, 16})
			foo = b.Write(foo)
			b.SetSideEffect()
		},
		func(ctx context.Context, _ *struct{}, res *PassResources) error {
			_, err := Get[stagingBuffer](res, foo)
			require.ErrorIs(t, err, ErrWrongKind)

			_, err = GetDescriptor[bufferDesc](res, foo)
			require.ErrorIs(t, err, ErrWrongKind)
			return nil
		})

	ctx := testContext()
	require.NoError(t, g.Compile(ctx))
	require.NoError(t, g.Execute(ctx, &recordingAllocator{}))
}

func TestUndeclaredAccessIsRejected(t *testing.T) {
	g := New()
	var foo, bar NodeID
	AddPass(g, "producer",
		func(b *Builder, _ *struct{}) {
			foo = Create[texture2D](b, "foo", textureDesc{16, 16})
			bar = Create[texture2D](b, "bar", textureDesc{16, 16})
			foo = b.Write(foo)
			bar = b.Write(bar)
		},
		nil)

	AddPass(g, "consumer",
		func(b *Builder, _ *struct{}) {
			b.Read(foo)
			b.SetSideEffect()
		},
		func(ctx context.Context, _ *struct{}, res *PassResources) error {
			_, err := Get[texture2D](res, foo)
			require.NoError(t, err)

			_, err = Get[texture2D](res, bar)
			require.ErrorIs(t, err, ErrUndeclaredAccess)

			_, err = GetDescriptor[textureDesc](res, bar)
			require.ErrorIs(t, err, ErrUndeclaredAccess)
			return nil
		})

	ctx := testContext()
	require.NoError(t, g.Compile(ctx))
	require.NoError(t, g.Execute(ctx, &recordingAllocator{}))
}

func TestTransientLifetimesAreTight(t *testing.T) {
	g := New()
	alloc := &recordingAllocator{}
	var foo, bar NodeID

	AddPass(g, "P1",
		func(b *Builder, _ *struct{}) {
			foo = Create[texture2D](b, "foo", textureDesc{64, 64})
			foo = b.Write(foo)
		},
		func(ctx context.Context, _ *struct{}, res *PassResources) error {
			alloc.record("exec P1")
			return nil
		})
	AddPass(g, "P2",
		func(b *Builder, _ *struct{}) {
			b.Read(foo)
			bar = Create[texture2D](b, "bar", textureDesc{32, 32})
			bar = b.Write(bar)
		},
		func(ctx context.Context, _ *struct{}, res *PassResources) error {
			alloc.record("exec P2")
			return nil
		})
	AddPass(g, "P3",
		func(b *Builder, _ *struct{}) {
			b.Read(bar)
			b.SetSideEffect()
		},
		func(ctx context.Context, _ *struct{}, res *PassResources) error {
			alloc.record("exec P3")
			return nil
		})

	ctx := testContext()
	require.NoError(t, g.Compile(ctx))
	require.NoError(t, g.Execute(ctx, alloc))

	assert.Equal(t, []string{
		"create 64x64",
		"exec P1",
		"create 32x32",
		"exec P2",
		"destroy 64x64",
		"exec P3",
		"destroy 32x32",
	}, alloc.events)
}

func TestPreAccessHooksFire(t *testing.T) {
	g := New()
	var foo NodeID
	AddPass(g, "producer",
		func(b *Builder, _ *struct{}) {
			foo = Create[texture2D](b, "foo", textureDesc{16, 16})
			foo = b.Write(foo)
		},
		nil)

	AddPass(g, "consumer",
		func(b *Builder, _ *struct{}) {
			b.Read(foo)
			b.SetSideEffect()
		},
		func(ctx context.Context, _ *struct{}, res *PassResources) error {
			tex, err := Get[texture2D](res, foo)
			require.NoError(t, err)
			assert.Equal(t, 1, tex.preReads, "PreRead runs before the exec closure")
			return nil
		})

	ctx := testContext()
	require.NoError(t, g.Compile(ctx))
	require.NoError(t, g.Execute(ctx, &recordingAllocator{}))

	tex := g.entryOf(foo).box.resourceAny().(*texture2D)
	assert.Equal(t, 1, tex.preWrites, "the producing pass declared one write")
	assert.Equal(t, 1, tex.preReads)
}

func TestExecFailureReleasesRealizedTransients(t *testing.T) {
	g := New()
	alloc := &recordingAllocator{}
	bang := fmt.Errorf("shader compilation failed")
	var foo NodeID
	ranP3 := false

	AddPass(g, "P1",
		func(b *Builder, _ *struct{}) {
			foo = Create[texture2D](b, "foo", textureDesc{64, 64})
			foo = b.Write(foo)
		},
		nil)
	AddPass(g, "P2",
		func(b *Builder, _ *struct{}) {
			b.Read(foo)
			b.SetSideEffect()
		},
		func(ctx context.Context, _ *struct{}, res *PassResources) error {
			return bang
		})
	AddPass(g, "P3",
		func(b *Builder, _ *struct{}) {
			b.Read(foo)
			b.SetSideEffect()
		},
		func(ctx context.Context, _ *struct{}, res *PassResources) error {
			ranP3 = true
			return nil
		})

	ctx := testContext()
	require.NoError(t, g.Compile(ctx))
	err := g.Execute(ctx, alloc)
	require.ErrorIs(t, err, bang)

	assert.False(t, ranP3, "the walk stops at the failing pass")
	assert.Equal(t, []string{"create 64x64", "destroy 64x64"}, alloc.events,
		"realized transients are released during unwind")
}

func TestCreateFailureAborts(t *testing.T) {
	g := New()
	ran := false
	AddPass(g, "P1",
		func(b *Builder, _ *struct{}) {
			id := Create[brokenTexture](b, "foo", textureDesc{64, 64})
			b.Write(id)
			b.SetSideEffect()
		},
		func(ctx context.Context, _ *struct{}, res *PassResources) error {
			ran = true
			return nil
		})

	ctx := testContext()
	require.NoError(t, g.Compile(ctx))
	err := g.Execute(ctx, &recordingAllocator{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of device memory")
	assert.False(t, ran, "a pass whose resources cannot be realized must not run")
}
