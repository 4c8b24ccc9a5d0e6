package gplist

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestXMLRoundTrip(t *testing.T) {
	doc := sampleDoc()

	out, err := EncodeXML(doc)
	require.NoError(t, err)
	require.Contains(t, string(out), `<?xml version="1.0" encoding="UTF-8"?>`)
	require.Contains(t, string(out), "<plist version=\"1.0\">")

	decoded, err := DecodeXML(out)
	require.NoError(t, err)
	require.True(t, Equal(doc.Root, decoded.Root))
}

func TestXMLIndentOption(t *testing.T) {
	doc := &Document{Root: NewDict()}
	doc.Root.(*Dict).Set("k", String("v"))

	plain, err := EncodeXML(doc)
	require.NoError(t, err)
	pretty, err := EncodeXML(doc, Indent("  "))
	require.NoError(t, err)

	require.NotContains(t, string(plain), "\n  <key>")
	require.Contains(t, string(pretty), "\n  <key>")
}

func TestXMLRejectsUID(t *testing.T) {
	doc := &Document{Root: UID(5)}
	_, err := EncodeXML(doc)
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, UnsupportedValue, gerr.Kind)
}

func TestXMLRealSpecialValues(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		doc := &Document{Root: NewReal(v)}
		out, err := EncodeXML(doc)
		require.NoError(t, err)
		decoded, err := DecodeXML(out)
		require.NoError(t, err)
		r := decoded.Root.(Real)
		if math.IsNaN(v) {
			require.True(t, math.IsNaN(r.Value))
		} else {
			require.Equal(t, v, r.Value)
		}
	}
}

func TestXMLDateFormat(t *testing.T) {
	when := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	doc := &Document{Root: Date(when)}
	out, err := EncodeXML(doc)
	require.NoError(t, err)
	require.Contains(t, string(out), "<date>2021-03-04T05:06:07Z</date>")
}

func TestXMLBase64Data(t *testing.T) {
	doc := &Document{Root: Data([]byte("hi"))}
	out, err := EncodeXML(doc)
	require.NoError(t, err)
	decoded, err := DecodeXML(out)
	require.NoError(t, err)
	require.Equal(t, Data([]byte("hi")), decoded.Root)
}

func TestXMLRejectsBadRoot(t *testing.T) {
	_, err := DecodeXML([]byte("not xml at all"))
	require.Error(t, err)
}
