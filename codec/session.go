package codec

import (
	"fmt"
	"io"
)

// session owns one decompression context: the engine state, the installed
// error bridge and the bound source reader. A session belongs exclusively to
// the probe or decode call that created it and is destroyed before that call
// returns, on every exit path.
type session struct {
	bridge *errorBridge
	eng    *engine
}

// newSession allocates an empty session. No I/O happens until begin.
func newSession() *session {
	return &session{}
}

// begin installs the error bridge and initialises the engine state bound to
// r. It must be called inside run, so that nothing the engine does afterwards
// can fail outside the recovery boundary.
func (s *session) begin(r io.ReadSeeker) {
	s.bridge = newErrorBridge()
	s.eng = newEngine(s.bridge, r)
}

// run is the recovery boundary: it executes fn and converts a bridge escape
// out of engine code back into an ordinary error return. A panic out of the
// engine that did not come through the bridge is captured verbatim as a
// library error rather than crossing the API boundary.
func (s *session) run(fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if esc, ok := r.(bridgeEscape); ok {
			err = s.propagateError(esc)
			return
		}
		err = newLibraryError("JPEG engine panic: %v", r)
	}()
	return fn()
}

// propagateError moves the captured error out of the bridge. The escape must
// have come from this session's own bridge; anything else means some other
// handler was substituted, which is a programming error.
func (s *session) propagateError(esc bridgeEscape) error {
	if s.bridge == nil || esc.bridge != s.bridge {
		panic(fmt.Sprintf("codec: escape from foreign error bridge %p", esc.bridge))
	}
	err := s.bridge.take()
	if err == nil {
		return newLibraryError("JPEG engine signalled failure without a message")
	}
	return err
}

// destroy releases the engine state and the bridge. Safe on every exit path,
// including after the recovery boundary was taken. A pending error at this
// point means run's result was never propagated, which is a programming
// error, not a decode failure.
func (s *session) destroy() {
	if s.eng != nil {
		s.eng.release()
		s.eng = nil
	}
	if s.bridge != nil {
		if s.bridge.pending != nil {
			panic("codec: session destroyed with pending error: " + s.bridge.pending.Message)
		}
		s.bridge = nil
	}
}
