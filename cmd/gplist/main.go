// Command gplist inspects Apple property lists and iOS mobile provisioning
// profiles, printing their contents as JSON. See spec.md § 6 for the exact
// CLI surface; the three-mode dispatch (plain parse / --cert / --has-udid)
// is grounded on the original implementation's gplist/__main__.py.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/guyingzhao/gplist"
	"github.com/guyingzhao/gplist/provision"
)

// errNotAuthorized is returned by run when --has-udid fails to authorize
// the given UDID. The "no" line on stdout is the whole diagnostic, so main
// exits 1 for it without also printing an error to stderr.
var errNotAuthorized = errors.New("udid not authorized")

type options struct {
	Cert bool   `long:"cert" description:"output certificate information of a mobile provisioning profile"`
	UDID string `long:"has-udid" description:"check whether a mobile provisioning profile authorizes the given UDID"`
	Args struct {
		File string `positional-arg-name:"file"`
	} `positional-args:"yes" required:"yes"`
}

type certInfo struct {
	Serial string `json:"serial"`
	Name   string `json:"name"`
	SHA1   string `json:"sha1"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	if err := run(os.Stdout, opts); err != nil {
		if !errors.Is(err, errNotAuthorized) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// run implements the three-mode dispatch (plain parse / --cert /
// --has-udid) against stdout, returning a plain error for every failure
// mode instead of calling os.Exit itself, so the dispatch logic can be
// driven directly from a test.
func run(stdout io.Writer, opts options) error {
	raw, err := os.ReadFile(opts.Args.File)
	if err != nil {
		return fmt.Errorf("file=%s is not a valid file", opts.Args.File)
	}

	if doc, derr := gplist.Decode(raw); derr == nil {
		if opts.Cert || opts.UDID != "" {
			return fmt.Errorf("file=%s is not recognized as a mobile provisioning profile", opts.Args.File)
		}
		return printJSON(stdout, doc.Root)
	}

	profile, perr := provision.Parse(raw)
	if perr != nil {
		return fmt.Errorf("file=%s is not a valid plist or provisioning profile", opts.Args.File)
	}

	switch {
	case opts.Cert:
		return printCerts(stdout, profile)
	case opts.UDID != "":
		if profile.HasUDID(opts.UDID) {
			fmt.Fprintln(stdout, "yes")
			return nil
		}
		fmt.Fprintln(stdout, "no")
		return errNotAuthorized
	default:
		return printJSON(stdout, profile.Document().Root)
	}
}

func printJSON(stdout io.Writer, v gplist.Value) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(out))
	return nil
}

func printCerts(stdout io.Writer, profile *provision.Profile) error {
	certs, err := profile.Certificates()
	if err != nil {
		return err
	}
	info := make([]certInfo, len(certs))
	for i, c := range certs {
		info[i] = certInfo{Serial: c.Serial(), Name: c.CommonName(), SHA1: c.SHA1()}
	}
	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(out))
	return nil
}
