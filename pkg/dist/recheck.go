package dist

import (
	"bytes"
	"io"
	"os"
)

// sniffSize is how much of a file LooksLikeInstaller inspects.
const sniffSize = 1 << 20

var (
	installerSignatures = [][]byte{
		[]byte("Inno Setup"),
		[]byte("Nullsoft"),
		[]byte("NSIS Error"),
	}
	// OLE compound document header used by .msi files.
	msiMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// LooksLikeInstaller reports whether the file at path carries the marks of a
// setup program even though its name did not say so.
func LooksLikeInstaller(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	head, err := io.ReadAll(io.LimitReader(f, sniffSize))
	if err != nil {
		return false, err
	}
	if bytes.HasPrefix(head, msiMagic) {
		return true, nil
	}
	for _, sig := range installerSignatures {
		if bytes.Contains(head, sig) {
			return true, nil
		}
	}
	return false, nil
}

// Recheck re-tags a Standalone whose downloaded file at path is really an
// installer. Other kinds are returned unchanged.
func Recheck(d Distributable, path string) (Distributable, error) {
	standalone, ok := d.(Standalone)
	if !ok {
		return d, nil
	}
	installer, err := LooksLikeInstaller(path)
	if err != nil {
		return nil, err
	}
	if installer {
		return ThirdPartyInstaller(standalone), nil
	}
	return d, nil
}
