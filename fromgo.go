package gplist

import (
	"fmt"
	"time"
)

// FromMapping converts a native Go value — built from map[string]interface{},
// []interface{}, string, bool, the numeric kinds, []byte, and time.Time — into
// a Value tree, adapting the recursive type-switch shape of the teacher's
// marshal.go without its full arbitrary-struct reflection machinery: the
// mutation API and JSON front-end only ever need to round-trip plain
// mappings, not tagged structs.
func FromMapping(v interface{}) (Value, error) {
	switch vv := v.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(vv), nil
	case int:
		return Int(int64(vv)), nil
	case int8:
		return Int(int64(vv)), nil
	case int16:
		return Int(int64(vv)), nil
	case int32:
		return Int(int64(vv)), nil
	case int64:
		return Int(vv), nil
	case uint:
		return Int(int64(vv)), nil
	case uint8:
		return Int(int64(vv)), nil
	case uint16:
		return Int(int64(vv)), nil
	case uint32:
		return Int(int64(vv)), nil
	case uint64:
		return Int(int64(vv)), nil
	case float32:
		return Real{Value: float64(vv), Wide: false}, nil
	case float64:
		return NewReal(vv), nil
	case string:
		return String(vv), nil
	case []byte:
		return Data(append([]byte(nil), vv...)), nil
	case time.Time:
		return Date(vv), nil
	case UID:
		return vv, nil
	case map[string]interface{}:
		dict := NewDict()
		for k, item := range vv {
			val, err := FromMapping(item)
			if err != nil {
				return nil, err
			}
			dict.Set(k, val)
		}
		return dict, nil
	case []interface{}:
		arr := &Array{Values: make([]Value, len(vv))}
		for i, item := range vv {
			val, err := FromMapping(item)
			if err != nil {
				return nil, err
			}
			arr.Values[i] = val
		}
		return arr, nil
	default:
		return nil, newError(UnsupportedValue, "cannot convert Go value of type %T to a plist Value", v)
	}
}

// ToMapping converts a Value tree back into native Go values, the inverse
// of FromMapping and the narrow counterpart to the teacher's unmarshal.go.
func ToMapping(v Value) interface{} {
	switch vv := v.(type) {
	case Null:
		return nil
	case Bool:
		return bool(vv)
	case Int:
		return int64(vv)
	case Real:
		return vv.Value
	case String:
		return string(vv)
	case Data:
		return []byte(vv)
	case Date:
		return time.Time(vv)
	case UID:
		return vv
	case *Array:
		out := make([]interface{}, len(vv.Values))
		for i, item := range vv.Values {
			out[i] = ToMapping(item)
		}
		return out
	case *Dict:
		out := make(map[string]interface{}, vv.Len())
		vv.Range(func(k string, item Value) bool {
			out[k] = ToMapping(item)
			return true
		})
		return out
	default:
		panic(fmt.Sprintf("gplist: unreachable Value kind %T", v))
	}
}
