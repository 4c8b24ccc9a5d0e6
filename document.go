package gplist

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
)

// Document is a decoded property list: its root Value plus the bits of
// on-disk framing that round-trip through re-encoding. RefSize is the
// object-reference width recorded in a binary plist's trailer (spec.md
// 4.2); it is zero for documents that were never decoded from bplist00 and
// is ignored by EncodeBinary, which always recomputes a minimal width.
type Document struct {
	Root    Value
	RefSize int
}

// Decode parses data as either a binary (bplist00) or XML property list,
// sniffing the format from its header the way the teacher's NewDecoder
// peeks at the first bytes before choosing bplistParser or xmlPlistParser.
func Decode(data []byte) (*Document, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	switch {
	case bytes.HasPrefix(data, []byte("bplist00")):
		return DecodeBinary(data)
	case bytes.HasPrefix(trimmed, []byte("<?xml")), bytes.HasPrefix(trimmed, []byte("<plist")):
		return DecodeXML(data)
	default:
		return nil, newError(InvalidHeader, "unrecognized property list format")
	}
}

// Encode serializes doc back to binary bplist00 form. XML output requires
// calling EncodeXML directly since it takes XMLOptions.
func Encode(doc *Document) ([]byte, error) {
	return EncodeBinary(doc)
}

// FromApp reads the Info.plist embedded in the .ipa archive at path,
// grounded on the original implementation's get_ipa_app/unzip/from_app: an
// .ipa is a zip archive containing exactly one top-level Payload/*.app/
// directory, whose Info.plist is the document of interest. FromApp reads
// the first Payload/*.app/Info.plist entry it finds; a path ending in .app
// (an extracted bundle) or .plist is rejected with an error.
func FromApp(pathToApp string) (doc *Document, err error) {
	defer recoverError(&err)

	if strings.HasSuffix(pathToApp, ".plist") {
		fail(UnsupportedValue, "FromApp expects an .ipa or .app bundle, not a plist file")
	}

	if strings.HasSuffix(pathToApp, ".app") {
		fail(UnsupportedValue, "FromApp on an extracted .app directory is not supported; pass the .ipa")
	}

	zr, err := zip.OpenReader(pathToApp)
	if err != nil {
		fail(InvalidHeader, "open %s: %v", pathToApp, err)
	}
	defer zr.Close()

	var infoPlist *zip.File
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "Payload/") {
			continue
		}
		rest := strings.TrimPrefix(f.Name, "Payload/")
		appDir, tail := splitFirstSegment(rest)
		if !strings.HasSuffix(appDir, ".app") {
			continue
		}
		if tail == "Info.plist" {
			infoPlist = f
			break
		}
	}
	if infoPlist == nil {
		fail(InvalidHeader, "%s: no Payload/*.app/Info.plist entry found", pathToApp)
	}

	rc, err := infoPlist.Open()
	if err != nil {
		fail(Truncated, "open %s: %v", infoPlist.Name, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		fail(Truncated, "read %s: %v", infoPlist.Name, err)
	}

	return Decode(raw)
}

func splitFirstSegment(p string) (head, tail string) {
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i], p[i+1:]
	}
	return p, ""
}
