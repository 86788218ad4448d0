// Package clipboard adapts the host clipboard into a single logical resource
// holding an opaque byte payload. Implementations are not reentrant: callers
// serialize Read and Write themselves.
package clipboard

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrBusy means another local process currently holds the clipboard.
	ErrBusy = errors.New("clipboard occupied by another application")
	// ErrUnavailable means the platform offers no usable clipboard, for
	// example a headless session without xclip, xsel or wl-clipboard.
	ErrUnavailable = errors.New("clipboard unavailable on this host")
)

// Resource is the clipboard as seen by the server.
type Resource interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// IsBusy reports whether err is a transient busy condition.
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}

// classify tags a platform error with ErrBusy when the platform reports
// the clipboard as held elsewhere.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isBusy(err) {
		return fmt.Errorf("clipboard %s: %w: %w", op, ErrBusy, err)
	}
	return fmt.Errorf("clipboard %s: %w", op, err)
}

// Memory is an in-process clipboard for hosts without a display session.
type Memory struct {
	mu   sync.Mutex
	data []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *Memory) Write(data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	m.mu.Lock()
	m.data = buf
	m.mu.Unlock()
	return nil
}
