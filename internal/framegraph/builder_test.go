package framegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicateReadIsIdempotent(t *testing.T) {
	g := New()
	var id NodeID
	AddPass(g, "producer",
		func(b *Builder, _ *struct{}) {
			id = Create[texture2D](b, "foo", textureDesc{32, 32})
			b.Write(id)
		},
		nil)

	AddPass(g, "consumer",
		func(b *Builder, _ *struct{}) {
			first := b.Read(id)
			second := b.Read(id)
			assert.Equal(t, first, second)
			assert.Len(t, b.pass.reads, 1)
		},
		nil)
}

func TestReadsWithDistinctFlagsAreSeparateDeclarations(t *testing.T) {
	g := New()
	var id NodeID
	AddPass(g, "producer",
		func(b *Builder, _ *struct{}) {
			id = Create[texture2D](b, "foo", textureDesc{32, 32})
			b.Write(id)
		},
		nil)

	AddPass(g, "consumer",
		func(b *Builder, _ *struct{}) {
			b.ReadWithFlags(id, 1)
			b.ReadWithFlags(id, 2)
			b.ReadWithFlags(id, 1)
			assert.Len(t, b.pass.reads, 2)
		},
		nil)
}

func TestReadOfStaleHandlePanics(t *testing.T) {
	g := New()
	var id NodeID
	AddPass(g, "producer",
		func(b *Builder, _ *struct{}) {
			id = Create[texture2D](b, "foo", textureDesc{32, 32})
			b.Write(id)
		},
		nil)
	AddPass(g, "mutator",
		func(b *Builder, _ *struct{}) {
			b.Write(id)
		},
		nil)

	AddPass(g, "late reader",
		func(b *Builder, _ *struct{}) {
			requirePanicsWithErr(t, ErrInvalidHandle, func() { b.Read(id) })
		},
		nil)
}

func TestWriteOfStaleHandlePanics(t *testing.T) {
	g := New()
	var id NodeID
	AddPass(g, "producer",
		func(b *Builder, _ *struct{}) {
			id = Create[texture2D](b, "foo", textureDesc{32, 32})
			b.Write(id)
		},
		nil)
	AddPass(g, "mutator",
		func(b *Builder, _ *struct{}) {
			b.Write(id)
		},
		nil)

	AddPass(g, "late writer",
		func(b *Builder, _ *struct{}) {
			requirePanicsWithErr(t, ErrInvalidHandle, func() { b.Write(id) })
		},
		nil)
}

func TestReadAfterWriteInSamePassPanics(t *testing.T) {
	g := New()
	AddPass(g, "p",
		func(b *Builder, _ *struct{}) {
			id := Create[texture2D](b, "foo", textureDesc{32, 32})
			b.Write(id)
			require.Panics(t, func() { b.Read(id) })
		},
		nil)
}

func TestBuilderSealedAfterSetup(t *testing.T) {
	g := New()
	var escaped *Builder
	var id NodeID
	AddPass(g, "p",
		func(b *Builder, _ *struct{}) {
			id = Create[texture2D](b, "foo", textureDesc{32, 32})
			b.Write(id)
			escaped = b
		},
		nil)

	requirePanicsWithErr(t, ErrWrongPhase, func() { escaped.SetSideEffect() })
	requirePanicsWithErr(t, ErrWrongPhase, func() { escaped.Read(id) })
}

func TestWriteRecordsReadOfOldVersion(t *testing.T) {
	g := New()
	var id NodeID
	AddPass(g, "producer",
		func(b *Builder, _ *struct{}) {
			id = Create[texture2D](b, "foo", textureDesc{32, 32})
			b.Write(id)
		},
		nil)

	AddPass(g, "mutator",
		func(b *Builder, d *struct{ out NodeID }) {
			d.out = b.Write(id)
			// The rename leaves the old handle in reads and the fresh
			// one in writes, chaining the mutator after the producer.
			assert.True(t, b.pass.hasRead(id))
			assert.True(t, b.pass.hasWrite(d.out))
			assert.False(t, b.pass.hasWrite(id))
		},
		nil)
}
