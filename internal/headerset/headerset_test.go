package headerset

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	perrors "github.com/UriNeri/pyraseq/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func TestNewTrimsAndDeduplicates(t *testing.T) {
	s := New([]string{" id1 ", "id2", "", "id1", "\t"})
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("id1"))
	assert.True(t, s.Contains("id2"))
	assert.False(t, s.Contains(" id1 "))
	assert.Equal(t, []string{"id1", "id2"}, s.IDs())
}

func TestNilSetContainsNothing(t *testing.T) {
	var s *Set
	assert.False(t, s.Contains("x"))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.IDs())
}

func TestLoadFileDropsBlankAndTrims(t *testing.T) {
	fn := writeFile(t, "h.txt", " id1 \n\nid2\n")
	ids, err := LoadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, []string{"id1", "id2"}, ids)
}

func TestLoadFileKeepsOrderAndDuplicates(t *testing.T) {
	fn := writeFile(t, "h.txt", "b\r\na\r\nb\r\n")
	ids, err := LoadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "b"}, ids)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, perrors.ErrConfig)
}

func TestResolveCommaList(t *testing.T) {
	s, err := Resolve("seq1, seq3,,seq5")
	require.NoError(t, err)
	assert.Equal(t, []string{"seq1", "seq3", "seq5"}, s.IDs())
}

func TestResolveExistingFileWinsOverCommas(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "a,b")
	require.NoError(t, os.WriteFile(fn, []byte("fromfile\n"), 0o644))

	s, err := Resolve(fn)
	require.NoError(t, err)
	assert.Equal(t, []string{"fromfile"}, s.IDs())
}

func TestResolveAtPrefix(t *testing.T) {
	fn := writeFile(t, "ids.txt", "x\ny\n")
	s, err := Resolve("@" + fn)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	_, err = Resolve("@" + filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, perrors.ErrConfig)
}

func TestResolveEmpty(t *testing.T) {
	_, err := Resolve("  ")
	assert.ErrorIs(t, err, perrors.ErrConfig)
}

func TestConcurrentReads(t *testing.T) {
	s := New([]string{"a", "b", "c"})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				assert.True(t, s.Contains("b"))
				assert.False(t, s.Contains("z"))
			}
		}()
	}
	wg.Wait()
}
