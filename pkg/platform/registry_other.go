//go:build !windows

package platform

import "github.com/glorpus-work/senget/pkg/errors"

type unsupportedRegistry struct{}

// NewRegistry returns the registry accessor for this platform.
func NewRegistry() Registry {
	return unsupportedRegistry{}
}

func (unsupportedRegistry) SubkeyNames(Hive) ([]string, error) {
	return nil, errors.ErrUnsupportedPlatform
}

func (unsupportedRegistry) ReadString(Hive, string, string) (string, error) {
	return "", errors.ErrUnsupportedPlatform
}
