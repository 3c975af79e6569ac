// Package clipboard wraps the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Available reports whether a clipboard facility exists on this host.
// Headless Linux machines without xclip/xsel have none.
func Available() bool {
	return !clipboard.Unsupported
}

// Copy places text on the system clipboard.
func Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}
