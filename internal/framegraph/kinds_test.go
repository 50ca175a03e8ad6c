package framegraph

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/framegraphgo/internal/ctxlog"
)

// recordingAllocator hands out monotonically increasing ids and records
// every lifecycle event in order, so tests can assert exact create/destroy
// bracketing.
type recordingAllocator struct {
	serial uint32
	events []string
}

func (a *recordingAllocator) record(format string, args ...any) {
	a.events = append(a.events, fmt.Sprintf(format, args...))
}

type textureDesc struct {
	width, height uint32
}

func (d textureDesc) String() string {
	return fmt.Sprintf("%dx%d", d.width, d.height)
}

// texture2D is the full-featured test kind: it counts hook invocations and
// takes its id from the allocator.
type texture2D struct {
	id        uint32
	preReads  int
	preWrites int
}

func (t *texture2D) Create(_ context.Context, desc textureDesc, allocator any) error {
	a := allocator.(*recordingAllocator)
	a.serial++
	t.id = a.serial
	a.record("create %s", desc)
	return nil
}

func (t *texture2D) Destroy(_ context.Context, desc textureDesc, allocator any) error {
	allocator.(*recordingAllocator).record("destroy %s", desc)
	return nil
}

func (t *texture2D) PreRead(_ context.Context, _ textureDesc, _ AccessFlags) {
	t.preReads++
}

func (t *texture2D) PreWrite(_ context.Context, _ textureDesc, _ AccessFlags) {
	t.preWrites++
}

type bufferDesc struct {
	size int
}

// stagingBuffer implements only the required surface; the tests use it as
// the mismatched kind in wrong-kind lookups.
type stagingBuffer struct {
	data []byte
}

func (b *stagingBuffer) Create(_ context.Context, desc bufferDesc, _ any) error {
	b.data = make([]byte, desc.size)
	return nil
}

func (b *stagingBuffer) Destroy(_ context.Context, _ bufferDesc, _ any) error {
	b.data = nil
	return nil
}

// brokenTexture fails to realize, for create-failure unwind tests.
type brokenTexture struct{}

func (brokenTexture) fail() error { return fmt.Errorf("out of device memory") }

func (t *brokenTexture) Create(_ context.Context, _ textureDesc, _ any) error {
	return t.fail()
}

func (t *brokenTexture) Destroy(_ context.Context, _ textureDesc, _ any) error {
	return nil
}

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

// requirePanicsWithErr asserts that fn panics with an error value matching
// target via errors.Is.
func requirePanicsWithErr(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.ErrorIs(t, err, target)
	}()
	fn()
}
