package cache

import (
	"fmt"

	"github.com/glorpus-work/senget/internal/logger"
	"github.com/glorpus-work/senget/pkg/fsutil"
)

// CacheOperation represents an operation that can be performed on the cache.
type CacheOperation struct {
	manager Manager
}

// NewCacheOperation creates a new cache operation instance.
func NewCacheOperation(manager Manager) *CacheOperation {
	return &CacheOperation{
		manager: manager,
	}
}

// Clean empties the cache and returns a message reporting the freed space.
func (op *CacheOperation) Clean() (string, error) {
	logger.Debug("Cleaning cache", logger.Fields{"directory": op.manager.GetDirectory()})

	result, err := op.manager.Clean()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Cleared %d MBs", result.TotalFreed/fsutil.BytesPerMB), nil
}

// GetInfo returns information about the cache.
func (op *CacheOperation) GetInfo() (string, error) {
	info, err := op.manager.GetInfo()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Cache Information:
  Directory:  %s
  Total Size: %s
  Files:      %d`,
		info.Directory,
		formatBytes(info.TotalSize),
		info.Files,
	), nil
}

// SizeWarning returns a hint to clear the cache once it reaches thresholdMB,
// and an empty string below that. A non-positive threshold disables it.
func (op *CacheOperation) SizeWarning(thresholdMB int64) (string, error) {
	if thresholdMB <= 0 {
		return "", nil
	}
	size, err := op.manager.SizeMB()
	if err != nil {
		return "", err
	}
	if size < thresholdMB {
		return "", nil
	}
	return fmt.Sprintf("Distributables cache folder is %d MBs, run \"senget clear-cache\" to clean it up", size), nil
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	if exp < len(units) {
		return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), units[exp])
	}
	return fmt.Sprintf("%d B", bytes)
}
