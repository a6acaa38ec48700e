package value

import (
	"math/rand/v2"

	"github.com/mcvoid/domjson/memres"
)

// MaxObjectLen is the largest number of key-value pairs an Object
// accepts.
const MaxObjectLen = 1<<31 - 2

// loadFactor is the occupancy ratio that triggers a rehash.
const loadFactor = 0.75

const nullIndex int32 = -1

// Pair is one key-value entry of an Object, exposed in insertion order.
type Pair struct {
	Key   string
	Value Value
}

type objEntry struct {
	key  string
	val  Value
	hash uint64
}

// Object is an open-addressed hash table that preserves insertion order:
// entries are packed into a dense slice in the order they were first
// inserted, with a separate bucket-chain index for O(1) average lookup.
// Hashing is FNV-1a salted per instance to deter hash-flooding attacks
// built against a fixed hash function.
type Object struct {
	handle  memres.Handle
	entries []objEntry
	buckets []int32 // bucket head -> index into entries, or nullIndex
	chain   []int32 // parallel to entries: next entry in same bucket, or nullIndex
	salt    uint64
}

// NewObject returns an empty object backed by res.
func NewObject(res memres.Resource) Object {
	return Object{handle: memres.New(res), salt: rand.Uint64()}
}

// NewObjectFrom builds an object in one pass from pairs, keeping only the
// last value for any repeated key — the same "keep last" policy the
// parser applies for duplicate keys in parsed documents.
func NewObjectFrom(res memres.Resource, pairs ...Pair) Object {
	o := NewObject(res)
	if len(pairs) == 0 {
		return o
	}
	o.reserve(len(pairs))
	for _, p := range pairs {
		// Caller-assembled pairs are bounded by the varargs slice length,
		// never large enough to hit MaxObjectLen.
		_, _ = o.Emplace(p.Key, p.Value)
	}
	return o
}

// Len reports the number of key-value pairs.
func (o *Object) Len() int { return len(o.entries) }

// Pairs returns the object's contents in insertion order. Callers must
// not retain the slice past the next mutation of o.
func (o *Object) Pairs() []Pair {
	out := make([]Pair, len(o.entries))
	for i, e := range o.entries {
		out[i] = Pair{Key: e.key, Value: e.val}
	}
	return out
}

func (o *Object) hashKey(key string) uint64 {
	h := uint64(14695981039346656037) ^ o.salt
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= 1099511628211
	}
	return h
}

func (o *Object) bucketFor(hash uint64) int {
	if len(o.buckets) == 0 {
		return 0
	}
	return int(hash % uint64(len(o.buckets)))
}

// find returns the index of key in insertion order, or -1 if absent.
func (o *Object) find(key string) int {
	if len(o.buckets) == 0 {
		return -1
	}
	hash := o.hashKey(key)
	idx := o.buckets[o.bucketFor(hash)]
	for idx != nullIndex {
		if o.entries[idx].hash == hash && o.entries[idx].key == key {
			return int(idx)
		}
		idx = o.chain[idx]
	}
	return -1
}

// Contains reports whether key is present.
func (o *Object) Contains(key string) bool { return o.find(key) >= 0 }

// Find returns the value for key and whether it was present.
func (o *Object) Find(key string) (Value, bool) {
	i := o.find(key)
	if i < 0 {
		return Value{}, false
	}
	return o.entries[i].val, true
}

// Lookup is a non-throwing find, an alias for Find under the name some
// JSON libraries use for the same non-panicking lookup.
func (o *Object) Lookup(key string) (Value, bool) { return o.Find(key) }

// Emplace inserts key/val, or overwrites the existing value if key is
// already present ("keep last" duplicate-key policy). It reports whether
// a new entry was inserted, and returns ErrTooLarge instead of growing
// past MaxObjectLen pairs.
func (o *Object) Emplace(key string, val Value) (inserted bool, err error) {
	if i := o.find(key); i >= 0 {
		o.entries[i].val = val
		return false, nil
	}
	if len(o.entries) >= MaxObjectLen {
		return false, tooLarge("object", len(o.entries)+1, MaxObjectLen)
	}
	hash := o.hashKey(key)
	idx := int32(len(o.entries))
	o.entries = append(o.entries, objEntry{key: key, val: val, hash: hash})

	targetLoad := float64(len(o.entries)) / float64(max(len(o.buckets), 1))
	if len(o.buckets) == 0 || targetLoad > loadFactor {
		o.rehash(nextPrimeAtLeast(int(float64(len(o.entries))/loadFactor) + 1))
	} else {
		o.chain = append(o.chain, nullIndex)
		b := o.bucketFor(hash)
		o.chain[idx] = o.buckets[b]
		o.buckets[b] = idx
	}
	return true, nil
}

func (o *Object) reserve(n int) {
	if n > len(o.buckets) {
		o.rehash(nextPrimeAtLeast(int(float64(n)/loadFactor) + 1))
	}
}

func (o *Object) rehash(bucketCount int) {
	o.buckets = make([]int32, bucketCount)
	for i := range o.buckets {
		o.buckets[i] = nullIndex
	}
	o.chain = make([]int32, len(o.entries))
	for i, e := range o.entries {
		b := o.bucketFor(e.hash)
		o.chain[i] = o.buckets[b]
		o.buckets[b] = int32(i)
	}
}

// unlink removes idx from its bucket's chain without touching o.entries.
func (o *Object) unlink(idx int32) {
	hash := o.entries[idx].hash
	b := o.bucketFor(hash)
	cur := o.buckets[b]
	if cur == idx {
		o.buckets[b] = o.chain[idx]
		return
	}
	for cur != nullIndex {
		next := o.chain[cur]
		if next == idx {
			o.chain[cur] = o.chain[idx]
			return
		}
		cur = next
	}
}

// relink repoints any bucket head or chain entry referencing `from` to
// `to`, used after compacting the entries slice on erase so the moved
// pair's bucket chain stays correct.
func (o *Object) relink(from, to int32) {
	hash := o.entries[to].hash
	b := o.bucketFor(hash)
	if o.buckets[b] == from {
		o.buckets[b] = to
		return
	}
	for _, head := range o.buckets {
		cur := head
		for cur != nullIndex {
			if o.chain[cur] == from {
				o.chain[cur] = to
				return
			}
			cur = o.chain[cur]
		}
	}
}

// Erase removes key, if present, compacting the entries slice by moving
// the last entry into the erased slot. It reports whether key was
// present.
func (o *Object) Erase(key string) bool {
	idx := o.find(key)
	if idx < 0 {
		return false
	}
	o.unlink(int32(idx))
	last := int32(len(o.entries) - 1)
	if int32(idx) != last {
		o.entries[idx] = o.entries[last]
		o.chain[idx] = o.chain[last]
		o.relink(last, int32(idx))
	}
	o.entries = o.entries[:last]
	o.chain = o.chain[:last]
	return true
}

// Clear empties the object without releasing its bucket storage.
func (o *Object) Clear() {
	o.entries = o.entries[:0]
	o.chain = o.chain[:0]
	for i := range o.buckets {
		o.buckets[i] = nullIndex
	}
}

// Resource returns the memory resource backing this object.
func (o *Object) Resource() memres.Resource { return o.handle.Resource() }

// Equal reports structural equality: same set of keys, with equal values,
// independent of insertion order (object equality is not order-sensitive
// even though iteration is).
func (o *Object) Equal(other *Object) bool {
	if len(o.entries) != len(other.entries) {
		return false
	}
	for _, e := range o.entries {
		ov, ok := other.Find(e.key)
		if !ok || !e.val.Equal(ov) {
			return false
		}
	}
	return true
}

// primes is a table of bucket counts, each roughly double the previous,
// used to pick the smallest prime at least as large as a requested
// capacity. Beyond the table's range, nextPrimeAtLeast falls back to
// trial division so very large objects still get a prime bucket count
// rather than an error.
var primes = []int{
	1, 3, 7, 13, 23, 47, 97, 193, 389, 769, 1543, 3079, 6151, 12289,
	24593, 49157, 98317, 196613, 393241, 786433, 1572869, 3145739,
	6291469, 12582917, 25165843, 50331653, 100663319, 201326611,
	402653189, 805306457, 1610612741,
}

func nextPrimeAtLeast(n int) int {
	if n < 1 {
		n = 1
	}
	for _, p := range primes {
		if p >= n {
			return p
		}
	}
	for p := primes[len(primes)-1] | 1; ; p += 2 {
		if isPrime(p) {
			return p
		}
	}
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
