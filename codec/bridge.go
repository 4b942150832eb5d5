package codec

// errorBridge converts the engine's fatal-error signalling into an ordinary
// error result. Engine entry points that hit an unrecoverable condition call
// fatal, which records the error and transfers control straight back to the
// session boundary established by session.run. The boundary moves the
// pending error out exactly once; a bridge must be empty again before the
// session is destroyed.
type errorBridge struct {
	pending *Error
}

// bridgeEscape is the panic value carrying the non-local transfer. It names
// its bridge so the boundary can verify the escape came from the bridge this
// session installed and not some substituted handler.
type bridgeEscape struct {
	bridge *errorBridge
}

func newErrorBridge() *errorBridge {
	return &errorBridge{}
}

// fatal records err as the pending error and escapes to the session
// boundary. If an error is already pending the first one wins, matching the
// rule that at most one error is ever captured per escape. Never returns.
func (b *errorBridge) fatal(err *Error) {
	if b.pending == nil {
		b.pending = err
	}
	panic(bridgeEscape{bridge: b})
}

func (b *errorBridge) fatalf(format string, args ...any) {
	b.fatal(newLibraryError(format, args...))
}

// warnf escalates an engine warning to a fatal error. The engine's own model
// treats these as recoverable and would carry on producing degraded output;
// decoded slide data that the engine itself is unsure about is worthless, so
// warnings terminate the decode instead. Never returns.
func (b *errorBridge) warnf(format string, args ...any) {
	b.fatalf(format, args...)
}

// take moves the pending error out, leaving the bridge empty for reuse or
// destruction.
func (b *errorBridge) take() *Error {
	err := b.pending
	b.pending = nil
	return err
}
