package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glorpus-work/senget/pkg/fsutil"
)

// DefaultManager implements the Manager interface for cache operations.
type DefaultManager struct {
	directory string
}

// NewManager creates a new cache manager over directory.
func NewManager(directory string) *DefaultManager {
	return &DefaultManager{
		directory: directory,
	}
}

// Clean removes the cached files. Only files directly inside the cache
// directory are removed; sub folders are left alone.
func (cm *DefaultManager) Clean() (*CleanResult, error) {
	result := &CleanResult{}
	err := cm.eachFile(func(path string, size int64) error {
		if err := os.Remove(path); err != nil {
			return err
		}
		result.TotalFreed += size
		result.FilesRemoved++
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrCacheClean, err)
	}
	return result, nil
}

// GetInfo returns information about the cache.
func (cm *DefaultManager) GetInfo() (*Info, error) {
	info := &Info{Directory: cm.directory}
	err := cm.eachFile(func(_ string, size int64) error {
		info.TotalSize += size
		info.Files++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheInfo, err)
	}
	return info, nil
}

// GetDirectory returns the cache directory path.
func (cm *DefaultManager) GetDirectory() string {
	return cm.directory
}

// eachFile calls fn for every regular file directly inside the cache
// directory. A missing directory holds no files.
func (cm *DefaultManager) eachFile(fn func(path string, size int64) error) error {
	entries, err := os.ReadDir(cm.directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			return err
		}
		if err := fn(filepath.Join(cm.directory, entry.Name()), fi.Size()); err != nil {
			return err
		}
	}
	return nil
}

// SizeMB returns the size of the cache in whole MBs.
func (cm *DefaultManager) SizeMB() (int64, error) {
	size, err := fsutil.DirSize(cm.directory)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCacheInfo, err)
	}
	return size / fsutil.BytesPerMB, nil
}
