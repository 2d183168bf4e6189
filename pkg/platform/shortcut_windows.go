//go:build windows

package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/glorpus-work/senget/pkg/fsutil"
)

// sFalse is returned by CoInitializeEx when COM is already initialised on
// the thread.
const sFalse = 0x00000001

// ShellShortcuts reads and writes .lnk files through the WScript.Shell
// automation object.
type ShellShortcuts struct{}

// NewShortcuts returns the shortcut accessor for this platform.
func NewShortcuts() Shortcuts {
	return ShellShortcuts{}
}

// Resolve returns the target path of the shortcut at linkPath.
func (ShellShortcuts) Resolve(linkPath string) (string, error) {
	var target string
	err := withShortcut(linkPath, func(link *ole.IDispatch) error {
		v, err := oleutil.GetProperty(link, "TargetPath")
		if err != nil {
			return err
		}
		defer func() { _ = v.Clear() }()
		target = v.ToString()
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to resolve shortcut %s: %w", linkPath, err)
	}
	if target == "" {
		return "", fmt.Errorf("shortcut %s has no target", linkPath)
	}
	return target, nil
}

// Create writes a shortcut at linkPath pointing to targetPath.
func (ShellShortcuts) Create(targetPath, linkPath string) error {
	if err := os.MkdirAll(filepath.Dir(linkPath), fsutil.DirModeDefault); err != nil {
		return fmt.Errorf("failed to create shortcut folder: %w", err)
	}
	err := withShortcut(linkPath, func(link *ole.IDispatch) error {
		if _, err := oleutil.PutProperty(link, "TargetPath", targetPath); err != nil {
			return err
		}
		if _, err := oleutil.PutProperty(link, "WorkingDirectory", filepath.Dir(targetPath)); err != nil {
			return err
		}
		_, err := oleutil.CallMethod(link, "Save")
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create shortcut %s: %w", linkPath, err)
	}
	return nil
}

func withShortcut(linkPath string, fn func(link *ole.IDispatch) error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			return err
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return err
	}
	defer unknown.Release()

	shell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return err
	}
	defer shell.Release()

	v, err := oleutil.CallMethod(shell, "CreateShortcut", linkPath)
	if err != nil {
		return err
	}
	link := v.ToIDispatch()
	defer link.Release()

	return fn(link)
}
