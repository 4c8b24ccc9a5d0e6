package gplist

// xmlOptions holds the knobs an XMLOption can set, carried over from the
// teacher's functional-option pattern (options.go's Option type) but
// narrowed to what the XML encoder actually exposes: binary has no
// equivalent knobs to expose.
type xmlOptions struct {
	indent   string
	encoding string
}

// XMLOption configures EncodeXML.
type XMLOption func(*xmlOptions)

// Indent turns on indented ("pretty") output using the given per-level
// indent string.
func Indent(indent string) XMLOption {
	return func(o *xmlOptions) { o.indent = indent }
}

// Encoding sets the value of the XML declaration's encoding attribute.
// Defaults to "UTF-8".
func Encoding(encoding string) XMLOption {
	return func(o *xmlOptions) { o.encoding = encoding }
}

func defaultXMLOptions() xmlOptions {
	return xmlOptions{encoding: "UTF-8"}
}
