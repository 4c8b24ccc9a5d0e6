package gplist

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"
)

// Each Value variant implements json.Marshaler itself, so encoding/json's
// own recursion handles nesting while Dict keeps insertion order (a plain
// map[string]interface{} would not) and each scalar gets the CLI's
// domain-specific rendering: ISO-8601 dates, hex-encoded data, decimal
// UIDs.

func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

func (b Bool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

func (i Int) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(i), 10)), nil
}

func (r Real) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value)
}

func (s String) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// MarshalJSON renders d as an ISO-8601 string, per the CLI's JSON contract
// (spec.md § 6: "JSON output encodes Dates as ISO-8601 YYYY-MM-DDTHH:MM:SSZ").
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).UTC().Format("2006-01-02T15:04:05Z"))
}

// MarshalJSON renders v as a hex string (spec.md § 6: "Data as hex-encoded
// ASCII"), unlike the XML encoder's base64 representation.
func (v Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString([]byte(v)))
}

// MarshalJSON renders u as a plain decimal number; there is no Apple-defined
// JSON convention for UID, so it is rendered the same way Int is.
func (u UID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(u), 10)), nil
}

// MarshalJSON renders a as a JSON array in order.
func (a *Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range a.Values {
		if i > 0 {
			buf.WriteByte(',')
		}
		enc, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(enc)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalJSON renders d as a JSON object preserving insertion order, which
// Go's map marshaling (key-sorted) cannot do.
func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := json.Marshal(d.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
