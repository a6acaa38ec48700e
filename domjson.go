// Package domjson is the facade the rest of the module sits behind: parse
// bytes into a value.Value tree, or render a value.Value back out to
// canonical JSON. It exposes the familiar Parse/ParseString/ParseReader
// entry points, while delegating the actual grammar work to the
// resumable sax, builder and serializer packages underneath.
package domjson

import (
	"fmt"
	"io"

	"github.com/mcvoid/domjson/builder"
	"github.com/mcvoid/domjson/memres"
	"github.com/mcvoid/domjson/sax"
	"github.com/mcvoid/domjson/serializer"
	"github.com/mcvoid/domjson/value"
)

// Parse decodes a complete JSON document from data using the default
// host-allocator resource and default grammar options. Most callers want
// this; ParseOpts is for callers that need a specific memres.Resource or
// sax.Options (e.g. AllowComments, AllowTrailingCommas).
func Parse(data []byte) (value.Value, error) {
	return ParseOpts(memres.Default, sax.Options{}, data)
}

// ParseOpts decodes data against res, under opts.
func ParseOpts(res memres.Resource, opts sax.Options, data []byte) (value.Value, error) {
	return builder.Parse(res, opts, data)
}

// ParseString is a convenience wrapper over Parse for string input.
func ParseString(s string) (value.Value, error) {
	return Parse([]byte(s))
}

// ParseReader decodes a complete JSON document read to EOF from r. It
// buffers the whole document in memory before parsing; callers that want
// to parse as bytes arrive without buffering the entire input should use
// StreamParse instead.
func ParseReader(r io.Reader) (value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return value.Value{}, fmt.Errorf("domjson: reading input: %w", err)
	}
	return Parse(data)
}

// Serialize renders v as canonical JSON text: no insignificant
// whitespace, minimal string escapes.
func Serialize(v value.Value) (string, error) {
	out, err := serializer.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// SerializeToWriter renders v as canonical JSON directly into w, without
// building the whole output string first.
func SerializeToWriter(w io.Writer, v value.Value) error {
	return StreamSerialize(v, w)
}
