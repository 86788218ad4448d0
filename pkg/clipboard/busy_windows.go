//go:build windows

package clipboard

import (
	"errors"
	"syscall"
)

// OpenClipboard fails with ERROR_ACCESS_DENIED while another window owns
// the clipboard.
func isBusy(err error) bool {
	return errors.Is(err, syscall.ERROR_ACCESS_DENIED)
}
