package sax

import "github.com/mcvoid/domjson/numlex"

// DefaultMaxDepth bounds array/object nesting when the caller hasn't
// configured a different limit. Max depth is caller-configurable, but
// ships with a sane default rather than unbounded.
const DefaultMaxDepth = 1024

// Options configures extension grammar and numeric handling.
type Options struct {
	// AllowComments accepts `//` and `/* */` wherever whitespace is
	// permitted.
	AllowComments bool
	// AllowTrailingCommas accepts one trailing comma before `]` or `}`.
	AllowTrailingCommas bool
	// AllowInvalidUTF8 skips UTF-8 validity checking on string payloads
	// and keys.
	AllowInvalidUTF8 bool
	// AllowInvalidUTF16 replaces malformed surrogate pairs with U+FFFD
	// instead of erroring.
	AllowInvalidUTF16 bool
	// Numbers selects fast/precise/none numeric conversion (see
	// package numlex).
	Numbers numlex.Mode
}
