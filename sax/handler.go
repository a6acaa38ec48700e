package sax

// Handler receives parse events in document order. Each method returns
// an error to abort the parse with that error; a nil return continues.
// Some SAX-style APIs instead return a bool and set an error code
// separately; an error return here IS the abort signal, so there's no
// separate code to stash.
//
// No method may re-enter the Parser that is calling it: a handler that
// needs to inspect parser state should capture depth/offset before
// parsing, not query the parser mid-callback.
type Handler interface {
	OnDocumentBegin() error
	OnDocumentEnd() error

	OnObjectBegin() error
	OnObjectEnd(size int) error
	OnArrayBegin() error
	OnArrayEnd(size int) error

	// OnKeyPart is called for each chunk of an object key that arrives
	// before the key is complete (the key spans a write_some boundary).
	// total is the cumulative byte count including chunk.
	OnKeyPart(chunk []byte, total int) error
	// OnKey is called once with the final chunk of a key; total is the
	// key's full length.
	OnKey(chunk []byte, total int) error

	OnStringPart(chunk []byte, total int) error
	OnString(chunk []byte, total int) error

	// OnNumberPart is called with the raw token text when Options.Numbers
	// is ModeNone, in lieu of OnInt64/OnUint64/OnDouble.
	OnNumberPart(text []byte) error

	OnInt64(i int64, text []byte) error
	OnUint64(u uint64, text []byte) error
	OnDouble(d float64, text []byte) error

	OnBool(b bool) error
	OnNull() error

	OnCommentPart(text []byte) error
	OnComment(text []byte) error
}

// NopHandler implements Handler with every method a no-op, useful for
// validate-only parsing (cmd/domjson's `validate` subcommand) where only
// the parser's own error return matters.
type NopHandler struct{}

func (NopHandler) OnDocumentBegin() error                  { return nil }
func (NopHandler) OnDocumentEnd() error                     { return nil }
func (NopHandler) OnObjectBegin() error                     { return nil }
func (NopHandler) OnObjectEnd(int) error                    { return nil }
func (NopHandler) OnArrayBegin() error                      { return nil }
func (NopHandler) OnArrayEnd(int) error                     { return nil }
func (NopHandler) OnKeyPart(chunk []byte, total int) error  { return nil }
func (NopHandler) OnKey(chunk []byte, total int) error      { return nil }
func (NopHandler) OnStringPart(chunk []byte, total int) error { return nil }
func (NopHandler) OnString(chunk []byte, total int) error   { return nil }
func (NopHandler) OnNumberPart(text []byte) error           { return nil }
func (NopHandler) OnInt64(i int64, text []byte) error       { return nil }
func (NopHandler) OnUint64(u uint64, text []byte) error     { return nil }
func (NopHandler) OnDouble(d float64, text []byte) error    { return nil }
func (NopHandler) OnBool(b bool) error                      { return nil }
func (NopHandler) OnNull() error                            { return nil }
func (NopHandler) OnCommentPart(text []byte) error          { return nil }
func (NopHandler) OnComment(text []byte) error              { return nil }
