package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), DirModeDefault))
	require.NoError(t, os.WriteFile(path, []byte(content), FileModeDefault))
}

func TestMove_File(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "source.exe")
	dst := filepath.Join(tempDir, "Packages", "app", "app.exe")
	writeFile(t, src, "binary")

	require.NoError(t, Move(src, dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "binary", string(content))
	assert.NoFileExists(t, src)
}

func TestMove_Directory(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "source_dir")
	dst := filepath.Join(tempDir, "destination_dir")
	writeFile(t, filepath.Join(src, "file1.txt"), "content1")
	writeFile(t, filepath.Join(src, "subdir", "file2.txt"), "content2")

	require.NoError(t, Move(src, dst))

	assert.FileExists(t, filepath.Join(dst, "file1.txt"))
	assert.FileExists(t, filepath.Join(dst, "subdir", "file2.txt"))
	assert.NoDirExists(t, src)
}

func TestMove_InvalidInput(t *testing.T) {
	assert.Error(t, Move("", "dst"))
	assert.Error(t, Move("src", ""))
	assert.Error(t, Move(filepath.Join(t.TempDir(), "missing"), filepath.Join(t.TempDir(), "dst")))
}

func TestIsCrossDeviceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"exdev", &os.LinkError{Op: "rename", Old: "a", New: "b", Err: syscall.EXDEV}, true},
		{"windows text", errors.New("The system cannot move the file to a different disk drive."), true},
		{"other", &os.LinkError{Op: "rename", Old: "a", New: "b", Err: syscall.ENOENT}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isCrossDeviceError(tt.err))
		})
	}
}

func TestCopyAndCopyDir(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "src")
	writeFile(t, filepath.Join(src, "a.txt"), "a")
	writeFile(t, filepath.Join(src, "nested", "b.txt"), "b")

	require.NoError(t, Copy(filepath.Join(src, "a.txt"), filepath.Join(tempDir, "copy", "a.txt")))
	assert.FileExists(t, filepath.Join(src, "a.txt"))
	assert.FileExists(t, filepath.Join(tempDir, "copy", "a.txt"))

	dst := filepath.Join(tempDir, "dst")
	require.NoError(t, CopyDir(src, dst))
	content, err := os.ReadFile(filepath.Join(dst, "nested", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(content))
}

func TestMoveContents(t *testing.T) {
	root := t.TempDir()
	wrapper := filepath.Join(root, "wrapper")
	writeFile(t, filepath.Join(wrapper, "app.exe"), "exe")
	writeFile(t, filepath.Join(wrapper, "lib", "dep.dll"), "dll")

	require.NoError(t, MoveContents(wrapper, root))

	assert.FileExists(t, filepath.Join(root, "app.exe"))
	assert.FileExists(t, filepath.Join(root, "lib", "dep.dll"))
	entries, err := os.ReadDir(wrapper)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one.exe"), "12345")
	writeFile(t, filepath.Join(dir, "two.zip"), "123")
	writeFile(t, filepath.Join(dir, "nested", "ignored.bin"), "1234567890")

	size, err := DirSize(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(8), size)

	size, err = DirSize(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	writeFile(t, file, "x")

	assert.True(t, IsFile(file))
	assert.False(t, IsFile(dir))
	assert.False(t, IsFile(filepath.Join(dir, "missing")))
}

func TestCreateFilePerm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perm.txt")
	f, err := CreateFilePerm(path, FileModeSecure)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}
