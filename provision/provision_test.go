package provision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/guyingzhao/gplist"
)

func wrapInCMS(xmlPayload []byte) []byte {
	var out []byte
	out = append(out, []byte("\x30\x82\x01\x00garbage-cms-header-bytes")...)
	out = append(out, xmlPayload...)
	out = append(out, []byte("trailing-signature-bytes")...)
	return out
}

func sampleProfileXML(t *testing.T, expiration time.Time, allDevices bool, udids []gplist.Value) []byte {
	t.Helper()
	d := gplist.NewDict()
	d.Set("ExpirationDate", gplist.Date(expiration))
	if allDevices {
		d.Set("ProvisionsAllDevices", gplist.Bool(true))
	} else {
		d.Set("ProvisionedDevices", gplist.NewArray(udids...))
	}
	out, err := gplist.EncodeXML(&gplist.Document{Root: d})
	require.NoError(t, err)
	return out
}

func TestParseExtractsXMLFromCMSWrapper(t *testing.T) {
	xmlPayload := sampleProfileXML(t, time.Now().Add(24*time.Hour), false, []gplist.Value{gplist.String("udid-1")})
	wrapped := wrapInCMS(xmlPayload)

	p, err := Parse(wrapped)
	require.NoError(t, err)
	require.False(t, p.IsExpired())
}

func TestParseRejectsWithoutXMLMarker(t *testing.T) {
	_, err := Parse([]byte("no xml here at all"))
	require.Error(t, err)
}

func TestIsExpired(t *testing.T) {
	past := sampleProfileXML(t, time.Now().Add(-24*time.Hour), false, nil)
	p, err := Parse(wrapInCMS(past))
	require.NoError(t, err)
	require.True(t, p.IsExpired())
}

func TestHasUDIDProvisionsAllDevices(t *testing.T) {
	xmlPayload := sampleProfileXML(t, time.Now().Add(time.Hour), true, nil)
	p, err := Parse(wrapInCMS(xmlPayload))
	require.NoError(t, err)
	require.True(t, p.HasUDID("anything"))
}

func TestHasUDIDInProvisionedDevicesList(t *testing.T) {
	xmlPayload := sampleProfileXML(t, time.Now().Add(time.Hour), false,
		[]gplist.Value{gplist.String("udid-a"), gplist.String("udid-b")})
	p, err := Parse(wrapInCMS(xmlPayload))
	require.NoError(t, err)

	require.True(t, p.HasUDID("udid-b"))
	require.False(t, p.HasUDID("udid-c"))
}

func TestCertificatesEmptyWhenAbsent(t *testing.T) {
	xmlPayload := sampleProfileXML(t, time.Now().Add(time.Hour), true, nil)
	p, err := Parse(wrapInCMS(xmlPayload))
	require.NoError(t, err)

	certs, err := p.Certificates()
	require.NoError(t, err)
	require.Empty(t, certs)
}
