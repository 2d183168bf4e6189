package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/senget/pkg/platform"
)

func TestDifference(t *testing.T) {
	tests := []struct {
		name   string
		before []string
		after  []string
		want   []string
	}{
		{"one added", []string{"A", "B"}, []string{"A", "B", "C"}, []string{"C"}},
		{"nothing added", []string{"A", "B"}, []string{"B", "A"}, nil},
		{"removed items ignored", []string{"A", "B"}, []string{"C"}, []string{"C"}},
		{"order follows after", nil, []string{"Z", "A", "M"}, []string{"Z", "A", "M"}},
		{"empty", nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, after := NewSet(tt.before...), NewSet(tt.after...)
			diff := Difference(before, after)

			assert.Equal(t, len(tt.want), diff.Len())
			if tt.want != nil {
				assert.Equal(t, tt.want, diff.Items())
			}
			for _, item := range diff.Items() {
				assert.True(t, after.Contains(item))
				assert.False(t, before.Contains(item))
			}
		})
	}
}

func TestSet_ImmutableItems(t *testing.T) {
	s := NewSet("a", "b", "a")
	assert.Equal(t, 2, s.Len())

	items := s.Items()
	items[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, s.Items())
}

type fakeRegistry struct {
	keys map[platform.Hive][]string
	err  error
}

func (f fakeRegistry) SubkeyNames(h platform.Hive) ([]string, error) {
	return f.keys[h], f.err
}

func (f fakeRegistry) ReadString(platform.Hive, string, string) (string, error) {
	return "", nil
}

func TestRegistries(t *testing.T) {
	reg := fakeRegistry{keys: map[platform.Hive][]string{
		platform.CurrentUser:  {"{GUID-1}", "Foo"},
		platform.LocalMachine: {"Bar"},
	}}
	snaps, err := Registries(reg)
	require.NoError(t, err)
	assert.True(t, snaps[platform.CurrentUser].Contains("Foo"))
	assert.True(t, snaps[platform.LocalMachine].Contains("Bar"))
	assert.False(t, snaps[platform.LocalMachine].Contains("Foo"))

	_, err = Registries(fakeRegistry{err: fmt.Errorf("denied")})
	assert.Error(t, err)
}

func TestShortcuts(t *testing.T) {
	user := t.TempDir()
	machine := t.TempDir()
	for _, p := range []string{
		filepath.Join(user, "Foo.lnk"),
		filepath.Join(user, "Tools", "Bar.LNK"),
		filepath.Join(user, "readme.txt"),
		filepath.Join(machine, "Baz", "Baz.lnk"),
	} {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}

	set, err := Shortcuts(user, machine, filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Contains(filepath.Join(user, "Tools", "Bar.LNK")))
	assert.True(t, set.Contains(filepath.Join(machine, "Baz", "Baz.lnk")))
	assert.False(t, set.Contains(filepath.Join(user, "readme.txt")))
}
