// Package value implements the DOM: a tagged-union JSON value together
// with its array, object, and short-string container types, all built
// against a pluggable memres.Resource.
package value

// Kind discriminates the eight possibilities a Value may hold. Some
// JSON DOMs pack a discriminator like this into a few bits alongside a
// C++-style union; Go has no such packing to exploit, so Kind is a plain
// tagged enum living beside, not inside, Value's payload fields.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindUint64
	KindDouble
	KindString
	KindArray
	KindObject

	numKinds
)

var kindStrings = [numKinds]string{
	"null", "bool", "int64", "uint64", "double", "string", "array", "object",
}

func (k Kind) String() string {
	if k >= numKinds {
		return "<unknown kind>"
	}
	return kindStrings[k]
}
