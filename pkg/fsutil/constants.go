// Package fsutil provides file system helpers shared by the installers,
// the downloader and the cache.
package fsutil

// File and directory permission constants.
const (
	FileModeDefault = 0o644 // -rw-r--r--
	FileModeSecure  = 0o640 // -rw-r-----
	FileModeExec    = 0o755 // -rwxr-xr-x

	DirModeDefault = 0o755 // drwxr-xr-x
	DirModeSecure  = 0o750 // drwxr-x---
	DirModePrivate = 0o700 // drwx------

	// BytesPerMB converts byte counts to the MB figures shown to users.
	BytesPerMB = 1024 * 1024
)
