package gplist

import (
	"time"
)

// Kind identifies which of the property-list value variants a Value holds.
type Kind uint

const (
	Invalid Kind = iota
	NullKind
	BoolKind
	IntKind
	RealKind
	DateKind
	DataKind
	StringKind
	UIDKind
	ArrayKind
	DictKind
)

var kindNames = map[Kind]string{
	Invalid:    "invalid",
	NullKind:   "null",
	BoolKind:   "boolean",
	IntKind:    "integer",
	RealKind:   "real",
	DateKind:   "date",
	DataKind:   "data",
	StringKind: "string",
	UIDKind:    "uid",
	ArrayKind:  "array",
	DictKind:   "dictionary",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// Value is the common interface implemented by every property-list value
// variant: Null, Bool, Int, Real, Date, Data, String, UID, *Array, *Dict.
//
// hash returns a comparable key used by the binary encoder to deduplicate
// repeated scalar occurrences (see bplist_encode.go); it is unexported
// because deduplication is an encoder-internal concern, not part of the
// value model's public contract.
type Value interface {
	Kind() Kind
	hash() interface{}
}

// Null is the property-list null value (binary token 0x00).
type Null struct{}

func (Null) Kind() Kind      { return NullKind }
func (Null) hash() interface{} { return nil }

// Bool is a property-list boolean.
type Bool bool

func (Bool) Kind() Kind         { return BoolKind }
func (b Bool) hash() interface{} { return bool(b) }

// Int is a property-list integer. Binary widths 1, 2, and 4 bytes are
// unsigned on disk; width 8 is signed two's complement. Both are
// represented here as a single int64, which is lossless for every value
// either width can carry.
type Int int64

func (Int) Kind() Kind         { return IntKind }
func (i Int) hash() interface{} { return int64(i) }

// Real is a property-list floating point number. Wide marks whether it was
// (or should be, on encode) stored as a 64-bit double rather than a 32-bit
// float; Apple's tools always emit doubles. NewReal sets Wide to true; a
// Real literal that omits Wide is a 32-bit float.
type Real struct {
	Value float64
	Wide  bool
}

func (Real) Kind() Kind { return RealKind }
func (r Real) hash() interface{} {
	if r.Wide {
		return r.Value
	}
	return float32(r.Value)
}

// NewReal constructs a wide (64-bit) Real.
func NewReal(v float64) Real { return Real{Value: v, Wide: true} }

// Date is a property-list date, an absolute instant. On the wire it is
// seconds (a float64, full precision) relative to the Mac epoch,
// 2001-01-01T00:00:00Z.
type Date time.Time

func (Date) Kind() Kind { return DateKind }
func (d Date) hash() interface{} { return time.Time(d) }

// macEpoch is the Date zero point, 2001-01-01T00:00:00Z.
var macEpoch = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

// Data is an opaque byte sequence.
type Data []byte

func (Data) Kind() Kind { return DataKind }

// hash converts the content to a string for use as a map key. The teacher's
// cf.Data.Hash instead uses a CRC32 checksum of the content; we use the
// exact bytes instead since a checksum collision would wrongly dedup two
// distinct Data values into one shared object.
func (d Data) hash() interface{} { return string(d) }

// String is property-list text. On disk it is either one byte per
// character (ASCII) or UTF-16BE; in memory it is always a Go string.
type String string

func (String) Kind() Kind           { return StringKind }
func (s String) hash() interface{}   { return string(s) }

// UID is an archived-object-graph identifier. It is semantically distinct
// from Int even when the numeric values coincide (spec invariant 4).
type UID uint64

func (UID) Kind() Kind          { return UIDKind }
func (u UID) hash() interface{} { return u }
