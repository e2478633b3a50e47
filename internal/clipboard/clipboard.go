package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

var ErrUnsupported = errors.New("no clipboard utility available")

// Writer puts text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	return nil
}
