package gplist

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"time"
)

const xmlDoctype = `DOCTYPE plist PUBLIC "-//Apple Computer//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd"`

// EncodeXML serializes doc's value tree to the XML property-list format,
// grounded on the teacher's xmlPlistGenerator (xml.go): leaf elements go
// through an encoding/xml Encoder's EncodeElement for escaping, while
// container tags are written straight to the buffer so container nesting
// and dict key order are under our control.
func EncodeXML(doc *Document, opts ...XMLOption) (out []byte, err error) {
	defer recoverError(&err)
	if doc == nil || doc.Root == nil {
		fail(UnsupportedValue, "cannot encode a nil document")
	}

	o := defaultXMLOptions()
	for _, apply := range opts {
		apply(&o)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<?xml version=\"1.0\" encoding=\"%s\"?>\n", o.encoding)
	buf.WriteString("<!" + xmlDoctype + ">\n")
	buf.WriteString(`<plist version="1.0">`)
	if o.indent != "" {
		buf.WriteByte('\n')
	}

	enc := xml.NewEncoder(&buf)
	e := &xmlEncoder{enc: enc, buf: &buf, indent: o.indent}
	e.writeValue(doc.Root, 0)
	if err := enc.Flush(); err != nil {
		fail(UnsupportedValue, "xml flush failed: %v", err)
	}

	if o.indent != "" {
		buf.WriteByte('\n')
	}
	buf.WriteString("</plist>")

	return buf.Bytes(), nil
}

type xmlEncoder struct {
	enc    *xml.Encoder
	buf    *bytes.Buffer
	indent string
}

func (e *xmlEncoder) nl(depth int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.buf.WriteString(e.indent)
	}
}

func (e *xmlEncoder) writeValue(v Value, depth int) {
	switch vv := v.(type) {
	case *Dict:
		e.enc.Flush()
		e.nl(depth)
		e.buf.WriteString("<dict>")
		for i, k := range vv.keys {
			_ = i
			e.nl(depth + 1)
			e.enc.EncodeElement(k, xml.StartElement{Name: xml.Name{Local: "key"}})
			e.enc.Flush()
			e.writeValue(vv.values[i], depth+1)
		}
		e.nl(depth)
		e.buf.WriteString("</dict>")
	case *Array:
		e.enc.Flush()
		e.nl(depth)
		e.buf.WriteString("<array>")
		for _, item := range vv.Values {
			e.writeValue(item, depth+1)
		}
		e.nl(depth)
		e.buf.WriteString("</array>")
	case Null:
		e.nl(depth)
		e.buf.WriteString("<null/>")
	case Bool:
		e.nl(depth)
		if vv {
			e.buf.WriteString("<true/>")
		} else {
			e.buf.WriteString("<false/>")
		}
	case String:
		e.nl(depth)
		e.enc.EncodeElement(string(vv), xml.StartElement{Name: xml.Name{Local: "string"}})
		e.enc.Flush()
	case Int:
		e.nl(depth)
		e.enc.EncodeElement(int64(vv), xml.StartElement{Name: xml.Name{Local: "integer"}})
		e.enc.Flush()
	case Real:
		e.nl(depth)
		var text string
		switch {
		case math.IsInf(vv.Value, 1):
			text = "inf"
		case math.IsInf(vv.Value, -1):
			text = "-inf"
		case math.IsNaN(vv.Value):
			text = "nan"
		default:
			text = strconv.FormatFloat(vv.Value, 'g', -1, 64)
		}
		e.enc.EncodeElement(text, xml.StartElement{Name: xml.Name{Local: "real"}})
		e.enc.Flush()
	case Data:
		e.nl(depth)
		encoded := base64.StdEncoding.EncodeToString(vv)
		e.enc.EncodeElement(encoded, xml.StartElement{Name: xml.Name{Local: "data"}})
		e.enc.Flush()
	case Date:
		e.nl(depth)
		formatted := time.Time(vv).In(time.UTC).Format("2006-01-02T15:04:05Z")
		e.enc.EncodeElement(formatted, xml.StartElement{Name: xml.Name{Local: "date"}})
		e.enc.Flush()
	case UID:
		fail(UnsupportedValue, "XML plists have no representation for UID")
	default:
		fail(UnsupportedValue, "cannot encode value of kind %s to XML", v.Kind())
	}
}
