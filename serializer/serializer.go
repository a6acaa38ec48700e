// Package serializer implements a resumable canonical-JSON encoder:
// Read(dest) fills as much of dest as it can and may be called repeatedly
// to drain one value, suspending mid-token when dest runs out. Like the
// SAX parser, recursion is replaced with an explicit stack of resume
// frames — one per pending array/object — parked on a rawstack.RawStack
// and cleared between documents, the same discipline the parser uses for
// container nesting.
package serializer

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/mcvoid/domjson/rawstack"
	"github.com/mcvoid/domjson/value"
)

// ErrNonFiniteFloat is returned by Read/Marshal when asked to render a
// NaN or +/-Inf double: JSON's number grammar has no literal for either,
// so there is no canonical text to emit.
var ErrNonFiniteFloat = errors.New("serializer: cannot render NaN or Inf as JSON")

type frameKind uint8

const (
	frameArray frameKind = iota
	frameObject
)

// subState names the sub-position within a container's resume frame:
// pre-open-brace, pre-key, pre-colon, pre-value, pre-comma, or
// pre-close-brace.
type subState uint8

const (
	subOpen subState = iota
	subElemOrClose
	subComma
	subKey
	subColon
	subValue
)

type frame struct {
	kind  frameKind
	sub   subState
	idx   int
	items []value.Value // frameArray
	pairs []value.Pair  // frameObject
}

// Serializer renders one value.Value as canonical JSON, a chunk at a
// time, into caller-supplied buffers via Read.
type Serializer struct {
	stack   *rawstack.RawStack
	root    value.Value
	started bool
	done    bool
	failed  error  // sticky: once produce fails, every subsequent Read reports it
	pending []byte // fully-rendered bytes not yet copied out to a caller
}

// New returns a Serializer with nothing loaded; call Reset before the
// first Read.
func New() *Serializer {
	return &Serializer{stack: rawstack.New()}
}

// Reset loads v as the value to serialize, discarding any prior state, so
// one Serializer can be reused across consecutive values without
// reallocating its frame stack.
func (s *Serializer) Reset(v value.Value) {
	s.stack.Clear()
	s.root = v
	s.started = false
	s.done = false
	s.failed = nil
	s.pending = s.pending[:0]
}

// Done reports whether the current value has been fully serialized.
func (s *Serializer) Done() bool { return s.done && len(s.pending) == 0 }

// Read copies as many rendered bytes as fit into dest, rendering more of
// the tree on demand. It returns 0, nil once Done reports true.
func (s *Serializer) Read(dest []byte) (n int, err error) {
	if s.failed != nil {
		return 0, s.failed
	}
	for len(s.pending) == 0 && !s.done {
		if err := s.produce(); err != nil {
			s.failed = err
			return n, err
		}
	}
	n = copy(dest, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

// produce renders the next token's worth of output into pending. Each
// call advances the walk by exactly one grammar position, mirroring the
// parser's step-by-step state machine in reverse.
func (s *Serializer) produce() error {
	if !s.started {
		s.started = true
		return s.emitValue(s.root)
	}

	top, ok := s.stack.PeekNontrivial().(*frame)
	if !ok {
		s.done = true
		return nil
	}

	switch top.kind {
	case frameArray:
		return s.stepArray(top)
	case frameObject:
		return s.stepObject(top)
	}
	return nil
}

func (s *Serializer) stepArray(f *frame) error {
	switch f.sub {
	case subOpen:
		s.append('[')
		f.sub = subElemOrClose
	case subElemOrClose:
		if f.idx >= len(f.items) {
			s.append(']')
			s.stack.PopNontrivial()
			s.checkDone()
			return nil
		}
		if err := s.emitValue(f.items[f.idx]); err != nil {
			return err
		}
		f.idx++
		f.sub = subComma
	case subComma:
		if f.idx >= len(f.items) {
			s.append(']')
			s.stack.PopNontrivial()
			s.checkDone()
			return nil
		}
		s.append(',')
		f.sub = subElemOrClose
	}
	return nil
}

func (s *Serializer) stepObject(f *frame) error {
	switch f.sub {
	case subOpen:
		s.append('{')
		f.sub = subKey
	case subKey:
		if f.idx >= len(f.pairs) {
			s.append('}')
			s.stack.PopNontrivial()
			s.checkDone()
			return nil
		}
		s.appendString(f.pairs[f.idx].Key)
		f.sub = subColon
	case subColon:
		s.append(':')
		f.sub = subValue
	case subValue:
		if err := s.emitValue(f.pairs[f.idx].Value); err != nil {
			return err
		}
		f.idx++
		f.sub = subComma
	case subComma:
		if f.idx >= len(f.pairs) {
			s.append('}')
			s.stack.PopNontrivial()
			s.checkDone()
			return nil
		}
		s.append(',')
		f.sub = subKey
	}
	return nil
}

// checkDone finishes the document once the resume-frame stack empties,
// whether that happens after a container closes or after a bare
// top-level scalar renders.
func (s *Serializer) checkDone() {
	if s.stack.NontrivialLen() == 0 {
		s.done = true
	}
}

// emitValue renders a scalar directly into pending, or pushes a resume
// frame and renders its opening token for a container. It returns
// ErrNonFiniteFloat for a NaN or +/-Inf double, since JSON's number
// grammar has no literal for either.
func (s *Serializer) emitValue(v value.Value) error {
	switch v.Kind() {
	case value.KindNull:
		s.appendLiteral("null")
	case value.KindBool:
		b, _ := v.AsBool()
		if b {
			s.appendLiteral("true")
		} else {
			s.appendLiteral("false")
		}
	case value.KindInt64:
		i, _ := v.AsInt64()
		s.pending = strconv.AppendInt(s.pending, i, 10)
	case value.KindUint64:
		u, _ := v.AsUint64()
		s.pending = strconv.AppendUint(s.pending, u, 10)
	case value.KindDouble:
		d, _ := v.AsDouble()
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: %v", ErrNonFiniteFloat, d)
		}
		s.pending = strconv.AppendFloat(s.pending, d, 'g', -1, 64)
	case value.KindString:
		str, _ := v.AsString()
		s.appendString(str)
	case value.KindArray:
		arr, _ := v.AsArray()
		s.stack.PushNontrivial(&frame{kind: frameArray, items: arr.Slice()})
		return s.stepArray(s.stack.PeekNontrivial().(*frame))
	case value.KindObject:
		obj, _ := v.AsObject()
		s.stack.PushNontrivial(&frame{kind: frameObject, pairs: obj.Pairs()})
		return s.stepObject(s.stack.PeekNontrivial().(*frame))
	}
	s.checkDone()
	return nil
}

func (s *Serializer) append(b byte) { s.pending = append(s.pending, b) }

func (s *Serializer) appendLiteral(lit string) { s.pending = append(s.pending, lit...) }

// appendString renders str as a canonical JSON string literal: minimal
// required escapes only (control characters, `"`, `\`).
func (s *Serializer) appendString(str string) {
	s.pending = append(s.pending, '"')
	for i := 0; i < len(str); i++ {
		c := str[i]
		switch {
		case c == '"' || c == '\\':
			s.pending = append(s.pending, '\\', c)
		case c == '\n':
			s.pending = append(s.pending, '\\', 'n')
		case c == '\r':
			s.pending = append(s.pending, '\\', 'r')
		case c == '\t':
			s.pending = append(s.pending, '\\', 't')
		case c < 0x20:
			s.pending = append(s.pending, '\\', 'u')
			const hex = "0123456789abcdef"
			s.pending = append(s.pending, '0', '0', hex[c>>4], hex[c&0xF])
		default:
			s.pending = append(s.pending, c)
		}
	}
	s.pending = append(s.pending, '"')
}

// Marshal serializes v in one call, for callers that don't need the
// chunked Read interface.
func Marshal(v value.Value) ([]byte, error) {
	s := New()
	s.Reset(v)
	var out []byte
	buf := make([]byte, 4096)
	for !s.Done() {
		n, err := s.Read(buf)
		if err != nil {
			return nil, err
		}
		out = append(out, buf[:n]...)
	}
	return out, nil
}
