package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRunCapturesBridgeEscape(t *testing.T) {
	s := newSession()
	defer s.destroy()

	err := s.run(func() error {
		s.begin(bytes.NewReader(nil))
		s.bridge.fatalf("engine exploded")
		return nil
	})

	require.Error(t, err)
	assert.True(t, IsKind(err, KindLibrary))
	assert.Contains(t, err.Error(), "engine exploded")
}

func TestSessionRunEscalatesWarnings(t *testing.T) {
	s := newSession()
	defer s.destroy()

	err := s.run(func() error {
		s.begin(bytes.NewReader(nil))
		s.bridge.warnf("corrupt data: %d extraneous bytes", 12)
		return nil
	})

	require.Error(t, err)
	assert.True(t, IsKind(err, KindLibrary))
	assert.Contains(t, err.Error(), "extraneous bytes")
}

func TestSessionRunCapturesForeignPanic(t *testing.T) {
	s := newSession()
	defer s.destroy()

	err := s.run(func() error {
		s.begin(bytes.NewReader(nil))
		panic("runtime error: index out of range [8] with length 8")
	})

	require.Error(t, err)
	assert.True(t, IsKind(err, KindLibrary))
	assert.Contains(t, err.Error(), "index out of range")
}

func TestSessionRunPassesNormalErrorsThrough(t *testing.T) {
	s := newSession()
	defer s.destroy()

	want := newFormatError("Couldn't read JPEG header")
	err := s.run(func() error {
		s.begin(bytes.NewReader(nil))
		return want
	})
	assert.Equal(t, want, err)
}

func TestSessionDestroyWithPendingErrorPanics(t *testing.T) {
	s := newSession()
	s.begin(bytes.NewReader(nil))
	s.bridge.pending = newLibraryError("never propagated")

	assert.Panics(t, func() { s.destroy() })
}

func TestSessionPropagateRejectsForeignBridge(t *testing.T) {
	s := newSession()
	defer s.destroy()
	s.begin(bytes.NewReader(nil))

	other := newErrorBridge()
	assert.Panics(t, func() {
		s.propagateError(bridgeEscape{bridge: other})
	})
}

func TestSessionDestroySafeOnEveryPath(t *testing.T) {
	// fresh session, never begun
	s := newSession()
	assert.NotPanics(t, func() { s.destroy() })

	// begun and run normally
	s = newSession()
	_ = s.run(func() error {
		s.begin(bytes.NewReader(nil))
		return nil
	})
	assert.NotPanics(t, func() { s.destroy() })

	// begun and escaped through the bridge
	s = newSession()
	_ = s.run(func() error {
		s.begin(bytes.NewReader(nil))
		s.bridge.fatalf("mid-decode failure")
		return nil
	})
	assert.NotPanics(t, func() { s.destroy() })
}
