package gplist

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
	"unicode/utf16"
)

// scalarKey tags a scalar's hash() with its Kind so that two different
// variants whose hash() values happen to compare equal as interface{} (for
// example a String and a Data holding the same bytes, both hashing to the
// same Go string) never collide in scalarID.
type scalarKey struct {
	kind Kind
	hash interface{}
}

// bplistEncoder mirrors the teacher's bplistGenerator: a first pass
// (flatten) assigns every distinct object an index and records emission
// order, then a second pass (write) serializes each object's body and
// records its offset, and a third step writes the offset table and
// trailer.
type bplistEncoder struct {
	buf      bytes.Buffer
	objs     []Value              // index -> value, in first-encounter order
	scalarID map[scalarKey]uint64 // (kind, hash()) -> index, for deduplicated scalars
	contID   map[Value]uint64     // container identity -> index
}

// EncodeBinary serializes doc's value tree to bplist00 bytes. It is the
// inverse of DecodeBinary.
func EncodeBinary(doc *Document) (out []byte, err error) {
	defer recoverError(&err)
	if doc == nil || doc.Root == nil {
		fail(UnsupportedValue, "cannot encode a nil document")
	}

	e := &bplistEncoder{
		scalarID: make(map[scalarKey]uint64),
		contID:   make(map[Value]uint64),
	}
	e.flatten(doc.Root)

	numObjects := uint64(len(e.objs))
	refSize := minimumWidthForCount(numObjects)

	e.buf.WriteString("bplist00")
	offsets := make([]uint64, numObjects)
	for i, v := range e.objs {
		offsets[i] = uint64(e.buf.Len())
		e.writeValue(v, refSize)
	}

	offsetTableStart := uint64(e.buf.Len())
	offsetIntSize := minimumWidthForCount(offsetTableStart + 1)
	for _, off := range offsets {
		writeSizedUint(&e.buf, off, offsetIntSize)
	}

	var trailer [32]byte
	trailer[6] = byte(offsetIntSize)
	trailer[7] = byte(refSize)
	binary.BigEndian.PutUint64(trailer[8:16], numObjects)
	binary.BigEndian.PutUint64(trailer[16:24], 0) // top object is always index 0
	binary.BigEndian.PutUint64(trailer[24:32], offsetTableStart)
	e.buf.Write(trailer[:])

	return e.buf.Bytes(), nil
}

// minimumWidthForCount returns the smallest of {1,2,4,8} such that n fits
// in that many bytes, matching the teacher's minimumSizeForInt.
func minimumWidthForCount(n uint64) int {
	switch {
	case n <= 0xFF:
		return 1
	case n <= 0xFFFF:
		return 2
	case n <= 0xFFFFFFFF:
		return 4
	default:
		return 8
	}
}

func writeSizedUint(buf *bytes.Buffer, v uint64, width int) {
	var b [8]byte
	switch width {
	case 1:
		b[0] = byte(v)
		buf.Write(b[:1])
	case 2:
		binary.BigEndian.PutUint16(b[:2], uint16(v))
		buf.Write(b[:2])
	case 4:
		binary.BigEndian.PutUint32(b[:4], uint32(v))
		buf.Write(b[:4])
	case 8:
		binary.BigEndian.PutUint64(b[:8], v)
		buf.Write(b[:8])
	default:
		fail(ValueOutOfRange, "illegal integer width %d", width)
	}
}

// isDedupedScalar reports whether v's variant is deduplicated by the
// encoder: every scalar except Bool (which is singleton-token anyway;
// flatten gives each Bool occurrence an object of its own).
func isDedupedScalar(v Value) bool {
	switch v.(type) {
	case Null, String, Int, Real, Data, Date, UID:
		return true
	default:
		return false
	}
}

// flatten assigns object indices depth-first in order of first encounter,
// deduplicating scalars (spec.md 4.3) but not containers or booleans.
func (e *bplistEncoder) flatten(v Value) uint64 {
	if isDedupedScalar(v) {
		key := scalarKey{kind: v.Kind(), hash: v.hash()}
		if id, ok := e.scalarID[key]; ok {
			return id
		}
		id := uint64(len(e.objs))
		e.objs = append(e.objs, v)
		e.scalarID[key] = id
		return id
	}

	switch vv := v.(type) {
	case *Dict:
		if id, ok := e.contID[vv]; ok {
			return id
		}
		id := uint64(len(e.objs))
		e.objs = append(e.objs, v)
		e.contID[vv] = id
		for _, k := range vv.keys {
			e.flatten(String(k))
		}
		for _, val := range vv.values {
			e.flatten(val)
		}
		return id
	case *Array:
		if id, ok := e.contID[vv]; ok {
			return id
		}
		id := uint64(len(e.objs))
		e.objs = append(e.objs, v)
		e.contID[vv] = id
		for _, val := range vv.Values {
			e.flatten(val)
		}
		return id
	case Bool:
		// Every Bool occurrence gets its own object; references to a Bool
		// resolve to the most recent object of the same value.
		id := uint64(len(e.objs))
		e.objs = append(e.objs, v)
		e.scalarID[scalarKey{kind: v.Kind(), hash: v.hash()}] = id
		return id
	default:
		fail(UnsupportedValue, "cannot encode value of kind %s", v.Kind())
		return 0
	}
}

func (e *bplistEncoder) idFor(v Value) uint64 {
	if isDedupedScalar(v) || v.Kind() == BoolKind {
		return e.scalarID[scalarKey{kind: v.Kind(), hash: v.hash()}]
	}
	switch vv := v.(type) {
	case *Dict:
		return e.contID[vv]
	case *Array:
		return e.contID[vv]
	}
	fail(UnsupportedValue, "cannot locate object index for value of kind %s", v.Kind())
	return 0
}

func (e *bplistEncoder) writeValue(v Value, refSize int) {
	switch vv := v.(type) {
	case Null:
		e.buf.WriteByte(bpTagNull)
	case Bool:
		if vv {
			e.buf.WriteByte(bpTagBoolTrue)
		} else {
			e.buf.WriteByte(bpTagBoolFalse)
		}
	case Int:
		e.writeInt(int64(vv))
	case Real:
		e.writeReal(vv)
	case Date:
		e.writeDate(vv)
	case Data:
		e.writeCountedTag(bpTagData, uint64(len(vv)))
		e.buf.Write(vv)
	case String:
		e.writeString(vv)
	case UID:
		e.writeUID(vv)
	case *Array:
		e.writeCountedTag(bpTagArray, uint64(len(vv.Values)))
		for _, item := range vv.Values {
			writeSizedUint(&e.buf, e.idFor(item), refSize)
		}
	case *Dict:
		e.writeCountedTag(bpTagDictionary, uint64(len(vv.keys)))
		for _, k := range vv.keys {
			writeSizedUint(&e.buf, e.idFor(String(k)), refSize)
		}
		for _, val := range vv.values {
			writeSizedUint(&e.buf, e.idFor(val), refSize)
		}
	default:
		fail(UnsupportedValue, "cannot encode value of kind %s", v.Kind())
	}
}

// writeCountedTag emits tag|count in the token's low nibble, or tag|0xF
// followed by a packed integer escape when count is too large, per
// spec.md 4.3.
func (e *bplistEncoder) writeCountedTag(tag uint8, count uint64) {
	if count < 0xF {
		e.buf.WriteByte(tag | uint8(count))
		return
	}
	e.buf.WriteByte(tag | 0x0F)
	e.writeIntTagForLength(count)
}

// writeIntTagForLength writes a bare packed-integer object (tag 0x1n plus
// its big-endian value) used as a size-escape prefix.
func (e *bplistEncoder) writeIntTagForLength(n uint64) {
	width := minimumWidthForCount(n)
	nibble := map[int]uint8{1: 0, 2: 1, 4: 2, 8: 3}[width]
	e.buf.WriteByte(bpTagInteger | nibble)
	writeSizedUint(&e.buf, n, width)
}

func (e *bplistEncoder) writeInt(n int64) {
	if n >= 0 && uint64(n) <= 0xFFFFFFFF {
		width := minimumWidthForCount(uint64(n))
		nibble := map[int]uint8{1: 0, 2: 1, 4: 2}[width]
		e.buf.WriteByte(bpTagInteger | nibble)
		writeSizedUint(&e.buf, uint64(n), width)
		return
	}
	e.buf.WriteByte(bpTagInteger | 0x3)
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(n))
	e.buf.Write(b[:])
}

func (e *bplistEncoder) writeReal(r Real) {
	if r.Wide {
		e.buf.WriteByte(bpTagReal | 0x3)
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(r.Value))
		e.buf.Write(b[:])
		return
	}
	e.buf.WriteByte(bpTagReal | 0x2)
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], math.Float32bits(float32(r.Value)))
	e.buf.Write(b[:])
}

func (e *bplistEncoder) writeDate(d Date) {
	e.buf.WriteByte(bpTagDate | 0x3)
	delta := time.Time(d).Sub(macEpoch).Seconds()
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(delta))
	e.buf.Write(b[:])
}

func (e *bplistEncoder) writeUID(u UID) {
	width := minimumWidthForCount(uint64(u))
	e.buf.WriteByte(bpTagUID | uint8(width-1))
	writeSizedUint(&e.buf, uint64(u), width)
}

func (e *bplistEncoder) writeString(s String) {
	str := string(s)
	isASCII := true
	for i := 0; i < len(str); i++ {
		if str[i] > 0x7F {
			isASCII = false
			break
		}
	}
	if isASCII {
		e.writeCountedTag(bpTagASCIIString, uint64(len(str)))
		e.buf.WriteString(str)
		return
	}
	runes := utf16.Encode([]rune(str))
	e.writeCountedTag(bpTagUTF16String, uint64(len(runes)))
	var b [2]byte
	for _, u := range runes {
		binary.BigEndian.PutUint16(b[:], u)
		e.buf.Write(b[:])
	}
}
