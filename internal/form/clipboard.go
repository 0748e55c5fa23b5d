package form

import "github.com/atotto/clipboard"

// Copier places plain text on the host clipboard.
type Copier func(text string) error

// SystemClipboard copies through the operating system clipboard.
func SystemClipboard(text string) error {
	return clipboard.WriteAll(text)
}
