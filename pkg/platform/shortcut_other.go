//go:build !windows

package platform

import "github.com/glorpus-work/senget/pkg/errors"

type unsupportedShortcuts struct{}

// NewShortcuts returns the shortcut accessor for this platform.
func NewShortcuts() Shortcuts {
	return unsupportedShortcuts{}
}

func (unsupportedShortcuts) Resolve(string) (string, error) {
	return "", errors.ErrUnsupportedPlatform
}

func (unsupportedShortcuts) Create(string, string) error {
	return errors.ErrUnsupportedPlatform
}
