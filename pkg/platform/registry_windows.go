//go:build windows

package platform

import (
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sys/windows/registry"
)

// WindowsRegistry reads uninstall entries from the Windows registry.
type WindowsRegistry struct{}

// NewRegistry returns the registry accessor for this platform.
func NewRegistry() Registry {
	return WindowsRegistry{}
}

func rootKey(hive Hive) (registry.Key, error) {
	switch hive {
	case CurrentUser:
		return registry.CURRENT_USER, nil
	case LocalMachine:
		return registry.LOCAL_MACHINE, nil
	default:
		return 0, fmt.Errorf("unknown registry hive %d", hive)
	}
}

// SubkeyNames lists the subkeys under UninstallKey in enumeration order.
func (WindowsRegistry) SubkeyNames(hive Hive) ([]string, error) {
	root, err := rootKey(hive)
	if err != nil {
		return nil, err
	}
	k, err := registry.OpenKey(root, UninstallKey, registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s\\%s: %w", hive, UninstallKey, err)
	}
	defer func() { _ = k.Close() }()

	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s\\%s: %w", hive, UninstallKey, err)
	}
	return names, nil
}

// ReadString reads a string value of an uninstall entry.
func (WindowsRegistry) ReadString(hive Hive, subkey, name string) (string, error) {
	root, err := rootKey(hive)
	if err != nil {
		return "", err
	}
	k, err := registry.OpenKey(root, UninstallKey+`\`+subkey, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", fs.ErrNotExist
		}
		return "", fmt.Errorf("failed to open uninstall entry %s: %w", subkey, err)
	}
	defer func() { _ = k.Close() }()

	value, _, err := k.GetStringValue(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", fs.ErrNotExist
		}
		return "", fmt.Errorf("failed to read %s of %s: %w", name, subkey, err)
	}
	return value, nil
}
