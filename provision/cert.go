package provision

import (
	"crypto/sha1"
	"crypto/x509"
	"fmt"
	"strings"
	"time"

	"github.com/guyingzhao/gplist"
)

// Certificate wraps a parsed X.509 certificate from a provisioning
// profile's DeveloperCertificates array. X.509 parsing and SHA-1
// fingerprinting are an external "black-box capability" (spec.md § 1);
// there is no third-party X.509 library anywhere in the retrieved pack, so
// the standard library's crypto/x509 and crypto/sha1 fill that role.
type Certificate struct {
	cert *x509.Certificate
}

func parseCertificate(der []byte) (*Certificate, error) {
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, gplist.NewError(gplist.BadToken, "parse DeveloperCertificates entry: %v", err)
	}
	return &Certificate{cert: cert}, nil
}

// SHA1 returns the uppercase hex SHA-1 fingerprint of the raw certificate,
// mirroring the original's Cert.sha1 property.
func (c *Certificate) SHA1() string {
	sum := sha1.Sum(c.cert.Raw)
	return strings.ToUpper(fmt.Sprintf("%x", sum))
}

// Serial returns the uppercase hex serial number.
func (c *Certificate) Serial() string {
	return strings.ToUpper(c.cert.SerialNumber.Text(16))
}

// CommonName returns the subject's common name.
func (c *Certificate) CommonName() string {
	return c.cert.Subject.CommonName
}

// OrganizationUnitName returns the first subject organizational unit, or
// "" if none is present.
func (c *Certificate) OrganizationUnitName() string {
	if len(c.cert.Subject.OrganizationalUnit) == 0 {
		return ""
	}
	return c.cert.Subject.OrganizationalUnit[0]
}

// OrganizationName returns the first subject organization, or "" if none
// is present.
func (c *Certificate) OrganizationName() string {
	if len(c.cert.Subject.Organization) == 0 {
		return ""
	}
	return c.cert.Subject.Organization[0]
}

// CountryName returns the first subject country, or "" if none is present.
func (c *Certificate) CountryName() string {
	if len(c.cert.Subject.Country) == 0 {
		return ""
	}
	return c.cert.Subject.Country[0]
}

// IsExpired reports whether the current time lies outside the certificate's
// validity window (before NotBefore or after NotAfter), mirroring the
// original's Cert.is_expired.
func (c *Certificate) IsExpired() bool {
	now := time.Now().UTC()
	return now.Before(c.cert.NotBefore) || now.After(c.cert.NotAfter)
}
