// Package provision reads iOS Mobile Provisioning Profiles, a CMS/PKCS#7
// signed container whose payload is an embedded property list, grounded on
// the original implementation's gplist/mobileprovision.py.
package provision

import (
	"bytes"
	"time"

	"github.com/guyingzhao/gplist"
)

var (
	xmlOpenTag  = []byte("<?xml")
	plistCloser = []byte("</plist>")
)

// Profile wraps the plist payload of a .mobileprovision file.
type Profile struct {
	doc   *gplist.Document
	certs []*Certificate
}

// Parse locates the `<?xml ... </plist>` slice within raw (ignoring the
// CMS/PKCS#7 signature wrapper around it, per spec.md § 4.6) and decodes it
// as an XML property list.
func Parse(raw []byte) (*Profile, error) {
	start := bytes.Index(raw, xmlOpenTag)
	if start < 0 {
		return nil, gplist.NewError(gplist.InvalidHeader, "no <?xml marker found in provisioning profile")
	}
	closeAt := bytes.Index(raw[start:], plistCloser)
	if closeAt < 0 {
		return nil, gplist.NewError(gplist.Truncated, "no closing </plist> found after <?xml marker")
	}
	end := start + closeAt + len(plistCloser)

	doc, err := gplist.DecodeXML(raw[start:end])
	if err != nil {
		return nil, err
	}
	return &Profile{doc: doc}, nil
}

// Document returns the decoded plist payload of the provisioning profile.
func (p *Profile) Document() *gplist.Document {
	return p.doc
}

func (p *Profile) root() *gplist.Dict {
	d, ok := p.doc.Root.(*gplist.Dict)
	if !ok {
		return gplist.NewDict()
	}
	return d
}

// IsExpired reports whether the current time is past the profile's
// ExpirationDate field.
func (p *Profile) IsExpired() bool {
	v, ok := p.root().Get("ExpirationDate")
	if !ok {
		return true
	}
	d, ok := v.(gplist.Date)
	if !ok {
		return true
	}
	return time.Now().UTC().After(time.Time(d))
}

// HasUDID reports whether udid is authorized by this profile: true
// unconditionally if ProvisionsAllDevices is present and true, else true
// iff udid appears in the ProvisionedDevices array.
func (p *Profile) HasUDID(udid string) bool {
	if v, ok := p.root().Get("ProvisionsAllDevices"); ok {
		if b, ok := v.(gplist.Bool); ok && bool(b) {
			return true
		}
	}
	v, ok := p.root().Get("ProvisionedDevices")
	if !ok {
		return false
	}
	arr, ok := v.(*gplist.Array)
	if !ok {
		return false
	}
	for _, item := range arr.Values {
		if s, ok := item.(gplist.String); ok && string(s) == udid {
			return true
		}
	}
	return false
}

// Certificates lazily DER-decodes every entry of DeveloperCertificates,
// caching the result on the Profile the way the original's `certs`
// property memoizes into self._certs.
func (p *Profile) Certificates() ([]*Certificate, error) {
	if p.certs != nil {
		return p.certs, nil
	}
	v, ok := p.root().Get("DeveloperCertificates")
	if !ok {
		return nil, nil
	}
	arr, ok := v.(*gplist.Array)
	if !ok {
		return nil, gplist.NewError(gplist.UnsupportedValue, "DeveloperCertificates is not an array")
	}

	certs := make([]*Certificate, 0, len(arr.Values))
	for _, item := range arr.Values {
		data, ok := item.(gplist.Data)
		if !ok {
			return nil, gplist.NewError(gplist.UnsupportedValue, "DeveloperCertificates entry is not Data")
		}
		cert, err := parseCertificate([]byte(data))
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	p.certs = certs
	return certs, nil
}
