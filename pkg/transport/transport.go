// Package transport holds the HTTP wire contract shared by the limeade
// server and client.
package transport

import (
	"net/http"

	"limeade/pkg/errors"
)

const (
	DefaultPort = "2490"

	// ClipboardPath accepts POST (copy) and GET (paste).
	ClipboardPath = "/clipboard"

	ContentType = "application/octet-stream"

	RequestIDHeader = "X-Request-Id"
)

// CodeForStatus maps a non-200 response status back to the error taxonomy.
func CodeForStatus(status int) errors.ExitCode {
	switch status {
	case http.StatusOK:
		return errors.ExitCodeSuccess
	case http.StatusServiceUnavailable:
		return errors.ExitCodeBusy
	case http.StatusInternalServerError:
		return errors.ExitCodeAccess
	default:
		return errors.ExitCodeTransport
	}
}
