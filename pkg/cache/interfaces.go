// Package cache manages the folder downloaded distributables are kept in
// before, and with keep_downloads after, installation.
package cache

// Manager defines the interface for cache management operations.
type Manager interface {
	Clean() (*CleanResult, error)
	GetInfo() (*Info, error)
	SizeMB() (int64, error)
	GetDirectory() string
}

// CleanResult contains information about what was cleaned.
type CleanResult struct {
	TotalFreed   int64
	FilesRemoved int
}

// Info represents cache information.
type Info struct {
	Directory string
	TotalSize int64
	Files     int
}
