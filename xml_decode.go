package gplist

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"strconv"
	"time"
)

// xmlDecoder walks an encoding/xml token stream, grounded on the teacher's
// xmlPlistParser: a hand-rolled recursive descent that dispatches on each
// element's tag name.
type xmlDecoder struct {
	dec *xml.Decoder
}

// DecodeXML parses an XML property list (a <plist version="1.0"> document
// containing one element) into a Document.
func DecodeXML(data []byte) (doc *Document, err error) {
	defer recoverError(&err)

	d := &xmlDecoder{dec: xml.NewDecoder(bytes.NewReader(data))}
	for {
		tok, terr := d.dec.Token()
		if terr != nil {
			fail(InvalidHeader, "no root element found: %v", terr)
		}
		if start, ok := tok.(xml.StartElement); ok {
			if start.Name.Local != "plist" {
				fail(InvalidHeader, "unexpected root element <%s>", start.Name.Local)
			}
			root := d.parsePlist(start)
			return &Document{Root: root}, nil
		}
	}
}

func (d *xmlDecoder) parsePlist(start xml.StartElement) Value {
	for {
		tok, err := d.dec.Token()
		if err != nil {
			fail(BadToken, "malformed <plist>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "plist" {
				fail(BadToken, "<plist> has no content")
			}
		case xml.StartElement:
			return d.parseElement(t)
		}
	}
}

func (d *xmlDecoder) parseElement(el xml.StartElement) Value {
	switch el.Name.Local {
	case "dict":
		return d.parseDict(el)
	case "array":
		return d.parseArray(el)
	case "string":
		return String(d.charData(el))
	case "integer":
		s := d.charData(el)
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			fail(BadToken, "malformed <integer>%s</integer>: %v", s, err)
		}
		return Int(n)
	case "real":
		s := d.charData(el)
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			fail(BadToken, "malformed <real>%s</real>: %v", s, err)
		}
		return NewReal(n)
	case "true":
		d.dec.Skip()
		return Bool(true)
	case "false":
		d.dec.Skip()
		return Bool(false)
	case "data":
		s := d.charData(el)
		raw, err := base64.StdEncoding.DecodeString(collapseWhitespace(s))
		if err != nil {
			fail(EncodingError, "malformed base64 in <data>: %v", err)
		}
		return Data(raw)
	case "date":
		s := d.charData(el)
		t, err := time.ParseInLocation("2006-01-02T15:04:05Z", s, time.UTC)
		if err != nil {
			fail(BadToken, "malformed <date>%s</date>: %v", s, err)
		}
		return Date(t)
	}
	fail(BadToken, "unrecognized element <%s>", el.Name.Local)
	return nil
}

func (d *xmlDecoder) charData(el xml.StartElement) string {
	var buf bytes.Buffer
	depth := 1
	for depth > 0 {
		tok, err := d.dec.Token()
		if err != nil {
			fail(BadToken, "unterminated <%s>: %v", el.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return buf.String()
}

func (d *xmlDecoder) parseDict(start xml.StartElement) *Dict {
	dict := NewDict()
	var pendingKey *string
	for {
		tok, err := d.dec.Token()
		if err != nil {
			fail(BadToken, "unterminated <dict>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "dict" {
				if pendingKey != nil {
					fail(BadToken, "dictionary key %q has no value", *pendingKey)
				}
				return dict
			}
		case xml.StartElement:
			if t.Name.Local == "key" {
				if pendingKey != nil {
					fail(BadToken, "dictionary key %q has no value", *pendingKey)
				}
				k := d.charData(t)
				pendingKey = &k
				continue
			}
			if pendingKey == nil {
				fail(BadToken, "dictionary value <%s> has no preceding key", t.Name.Local)
			}
			dict.Set(*pendingKey, d.parseElement(t))
			pendingKey = nil
		}
	}
}

func (d *xmlDecoder) parseArray(start xml.StartElement) *Array {
	arr := &Array{}
	for {
		tok, err := d.dec.Token()
		if err != nil {
			fail(BadToken, "unterminated <array>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "array" {
				return arr
			}
		case xml.StartElement:
			arr.Values = append(arr.Values, d.parseElement(t))
		}
	}
}

// collapseWhitespace strips the newlines Apple's own XML generator wraps
// base64 data in.
func collapseWhitespace(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
