package clipboard

import (
	atotto "github.com/atotto/clipboard"
)

// System is the OS clipboard, reached through pbcopy/pbpaste, the Win32
// clipboard API, or xclip/xsel/wl-clipboard depending on the platform.
type System struct{}

// NewSystem returns ErrUnavailable when no clipboard backend exists.
func NewSystem() (*System, error) {
	if atotto.Unsupported {
		return nil, ErrUnavailable
	}
	return &System{}, nil
}

func (s *System) Read() ([]byte, error) {
	text, err := atotto.ReadAll()
	if err != nil {
		return nil, classify("read", err)
	}
	return []byte(text), nil
}

// Write needs the whole payload up front: the platform tools take one
// complete buffer per ownership change.
func (s *System) Write(data []byte) error {
	return classify("write", atotto.WriteAll(string(data)))
}
