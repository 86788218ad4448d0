package client

import (
	stderrors "errors"
	"net/url"
	"strconv"
	"strings"

	"limeade/pkg/errors"
	"limeade/pkg/transport"
)

// DefaultTarget is the server address used when none is configured.
const DefaultTarget = "localhost:" + transport.DefaultPort

// Endpoint identifies a limeade server. It is immutable once parsed.
type Endpoint struct {
	base *url.URL
}

// ParseEndpoint normalizes addr into an Endpoint. An address without an
// http:// or https:// scheme is reached over plain HTTP.
func ParseEndpoint(addr string) (Endpoint, error) {
	raw := addr
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Endpoint{}, errors.AddressError(addr, err)
	}
	if u.Hostname() == "" {
		return Endpoint{}, errors.AddressError(addr, stderrors.New("missing host"))
	}
	if port := u.Port(); port != "" {
		if _, err := strconv.ParseUint(port, 10, 16); err != nil {
			return Endpoint{}, errors.AddressError(addr, stderrors.New("invalid port number"))
		}
	}
	return Endpoint{base: u}, nil
}

func (e Endpoint) String() string {
	if e.base == nil {
		return ""
	}
	return e.base.String()
}

// ClipboardURL returns the absolute URL of the clipboard resource.
func (e Endpoint) ClipboardURL() string {
	return e.base.ResolveReference(&url.URL{Path: transport.ClipboardPath}).String()
}
