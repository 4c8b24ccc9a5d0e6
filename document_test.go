package gplist

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeSniffsBinary(t *testing.T) {
	doc := sampleDoc()
	bin, err := EncodeBinary(doc)
	require.NoError(t, err)

	decoded, err := Decode(bin)
	require.NoError(t, err)
	require.True(t, Equal(doc.Root, decoded.Root))
}

func TestDecodeSniffsXML(t *testing.T) {
	doc := sampleDoc()
	xmlBytes, err := EncodeXML(doc)
	require.NoError(t, err)

	decoded, err := Decode(xmlBytes)
	require.NoError(t, err)
	require.True(t, Equal(doc.Root, decoded.Root))
}

func TestDecodeRejectsUnrecognizedInput(t *testing.T) {
	_, err := Decode([]byte("definitely not a plist"))
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, InvalidHeader, gerr.Kind)
}

func TestFromAppExtractsInfoPlist(t *testing.T) {
	info := NewDict()
	info.Set("CFBundleIdentifier", String("com.example.widget"))
	bin, err := EncodeBinary(&Document{Root: info})
	require.NoError(t, err)

	ipaPath := filepath.Join(t.TempDir(), "widget.ipa")
	f, err := os.Create(ipaPath)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	w, err := zw.Create("Payload/Widget.app/Info.plist")
	require.NoError(t, err)
	_, err = w.Write(bin)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	doc, err := FromApp(ipaPath)
	require.NoError(t, err)
	v, ok := Get(doc, "CFBundleIdentifier")
	require.True(t, ok)
	require.Equal(t, String("com.example.widget"), v)
}

func TestFromAppMissingInfoPlist(t *testing.T) {
	ipaPath := filepath.Join(t.TempDir(), "empty.ipa")
	f, err := os.Create(ipaPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = FromApp(ipaPath)
	require.Error(t, err)
}
