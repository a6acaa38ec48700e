// Package builder implements sax.Handler, reifying parse events into a
// value.Value DOM tree. It parks in-progress containers on a
// rawstack.RawStack exactly the way the SAX parser parks its own
// array/object frames, so a builder can be driven by a resumable parse
// without holding its own growable call stack.
package builder

import (
	"fmt"

	"github.com/mcvoid/domjson/memres"
	"github.com/mcvoid/domjson/rawstack"
	"github.com/mcvoid/domjson/sax"
	"github.com/mcvoid/domjson/value"
)

// containerFrame parks one in-progress array or object, along with the
// pending key for an in-progress object (set by OnKey, consumed by the
// next value callback).
type containerFrame struct {
	arr       *value.Array
	obj       *value.Object
	pendingKey string
}

// Builder accumulates SAX events into a single value.Value. Zero value is
// not usable; construct with New.
type Builder struct {
	sax.NopHandler

	res   memres.Resource
	stack *rawstack.RawStack
	root  value.Value
	has   bool

	keyBuf []byte
	strBuf []byte
}

// New returns a Builder that allocates every DOM node against res.
func New(res memres.Resource) *Builder {
	return &Builder{res: res, stack: rawstack.New()}
}

// Reset discards any partially built tree so the Builder can be reused
// for the next document.
func (b *Builder) Reset() {
	b.stack.Clear()
	b.root = value.Value{}
	b.has = false
	b.keyBuf = b.keyBuf[:0]
	b.strBuf = b.strBuf[:0]
}

// Value returns the completed tree. Only meaningful after OnDocumentEnd
// has fired without error.
func (b *Builder) Value() (value.Value, error) {
	if !b.has {
		return value.Value{}, fmt.Errorf("builder: no document parsed")
	}
	return b.root, nil
}

func (b *Builder) topFrame() *containerFrame {
	f, _ := b.stack.PeekNontrivial().(*containerFrame)
	return f
}

// emit delivers a completed scalar (or just-closed container) value to
// its parent array/object, or stores it as the document root if there is
// no open container.
func (b *Builder) emit(v value.Value) error {
	top := b.topFrame()
	if top == nil {
		b.root = v
		b.has = true
		return nil
	}
	if top.arr != nil {
		return top.arr.Append(v)
	}
	_, err := top.obj.Emplace(top.pendingKey, v)
	top.pendingKey = ""
	return err
}

func (b *Builder) OnObjectBegin() error {
	o := value.NewObject(b.res)
	b.stack.PushNontrivial(&containerFrame{obj: &o})
	return nil
}

func (b *Builder) OnObjectEnd(size int) error {
	f, _ := b.stack.PopNontrivial().(*containerFrame)
	return b.emit(value.Obj(*f.obj))
}

func (b *Builder) OnArrayBegin() error {
	a := value.NewArray(b.res)
	b.stack.PushNontrivial(&containerFrame{arr: &a})
	return nil
}

func (b *Builder) OnArrayEnd(size int) error {
	f, _ := b.stack.PopNontrivial().(*containerFrame)
	return b.emit(value.Arr(*f.arr))
}

func (b *Builder) OnKeyPart(chunk []byte, total int) error {
	b.keyBuf = append(b.keyBuf, chunk...)
	return nil
}

func (b *Builder) OnKey(chunk []byte, total int) error {
	b.keyBuf = append(b.keyBuf, chunk...)
	top := b.topFrame()
	top.pendingKey = string(b.keyBuf)
	b.keyBuf = b.keyBuf[:0]
	return nil
}

func (b *Builder) OnStringPart(chunk []byte, total int) error {
	b.strBuf = append(b.strBuf, chunk...)
	return nil
}

func (b *Builder) OnString(chunk []byte, total int) error {
	b.strBuf = append(b.strBuf, chunk...)
	s := string(b.strBuf)
	b.strBuf = b.strBuf[:0]
	return b.emit(value.Str(b.res, s))
}

func (b *Builder) OnInt64(i int64, text []byte) error {
	return b.emit(value.Int64(i))
}

func (b *Builder) OnUint64(u uint64, text []byte) error {
	return b.emit(value.Uint64(u))
}

func (b *Builder) OnDouble(d float64, text []byte) error {
	return b.emit(value.Double(d))
}

func (b *Builder) OnBool(v bool) error { return b.emit(value.Bool(v)) }
func (b *Builder) OnNull() error       { return b.emit(value.Null()) }

// Parse is a convenience entry point that drives a fresh sax.Parser over
// data with a Builder handler and returns the resulting tree. Callers
// needing incremental/chunked input should drive sax.Parser and Builder
// directly instead.
func Parse(res memres.Resource, opts sax.Options, data []byte) (value.Value, error) {
	b := New(res)
	p := sax.NewParser(b, opts)
	if err := p.Finish(data); err != nil {
		return value.Value{}, err
	}
	return b.Value()
}
