package gplist

import "time"

// Equal reports whether a and b are structurally equal: same variant, same
// content, and — for Dict — the same key order (spec.md property 1 & 2).
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Int:
		return av == b.(Int)
	case Real:
		bv := b.(Real)
		return av.Value == bv.Value && av.Wide == bv.Wide
	case Date:
		return time.Time(av).Equal(time.Time(b.(Date)))
	case Data:
		bv := b.(Data)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case String:
		return av == b.(String)
	case UID:
		return av == b.(UID)
	case *Array:
		bv := b.(*Array)
		if len(av.Values) != len(bv.Values) {
			return false
		}
		for i := range av.Values {
			if !Equal(av.Values[i], bv.Values[i]) {
				return false
			}
		}
		return true
	case *Dict:
		bv := b.(*Dict)
		if len(av.keys) != len(bv.keys) {
			return false
		}
		for i := range av.keys {
			if av.keys[i] != bv.keys[i] {
				return false
			}
			if !Equal(av.values[i], bv.values[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
