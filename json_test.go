package gplist

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJSONScalarRendering(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null{}, "null"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"int", Int(42), "42"},
		{"negative int", Int(-7), "-7"},
		{"real", NewReal(1.5), "1.5"},
		{"string", String("hi"), `"hi"`},
		{"uid", UID(9), "9"},
		{"data", Data([]byte{0xDE, 0xAD}), `"dead"`},
	}
	for _, c := range cases {
		out, err := json.Marshal(c.v)
		require.NoError(t, err)
		require.Equal(t, c.want, string(out), c.name)
	}
}

func TestJSONDateIsISO8601(t *testing.T) {
	when := time.Date(2023, 11, 2, 13, 45, 6, 0, time.UTC)
	out, err := json.Marshal(Date(when))
	require.NoError(t, err)
	require.Equal(t, `"2023-11-02T13:45:06Z"`, string(out))
}

func TestJSONArrayPreservesOrder(t *testing.T) {
	arr := NewArray(Int(1), String("two"), Bool(true))
	out, err := json.Marshal(arr)
	require.NoError(t, err)
	require.JSONEq(t, `[1, "two", true]`, string(out))
}

func TestJSONDictPreservesInsertionOrder(t *testing.T) {
	d := NewDict()
	d.Set("z", Int(1))
	d.Set("a", Int(2))
	d.Set("m", Int(3))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `{"z":1,"a":2,"m":3}`, string(out))
}

func TestJSONNestedDocument(t *testing.T) {
	inner := NewDict()
	inner.Set("b", Int(2))
	outer := NewDict()
	outer.Set("a", Int(1))
	outer.Set("nested", inner)
	outer.Set("list", NewArray(String("x"), String("y")))

	out, err := json.Marshal(outer)
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1,"nested":{"b":2},"list":["x","y"]}`, string(out))

	var roundTrip map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &roundTrip))
	require.Equal(t, float64(1), roundTrip["a"])
}
