package scratch

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndClose(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	m := New(dir)

	f1, err := m.Create("action")
	require.NoError(t, err)
	f2, err := m.Create("union")
	require.NoError(t, err)
	path1, path2 := f1.Name(), f2.Name()
	f1.Close()
	f2.Close()

	_, err = os.Stat(path1)
	assert.NoError(err, "scratch file should exist before Close")

	assert.NoError(m.Close())

	_, err = os.Stat(path1)
	assert.True(os.IsNotExist(err), "scratch file 1 should be removed after Close")
	_, err = os.Stat(path2)
	assert.True(os.IsNotExist(err), "scratch file 2 should be removed after Close")
}

func TestCloseIsIdempotent(t *testing.T) {
	m := New(t.TempDir())
	_, err := m.Create("x")
	require.NoError(t, err)
	require.NoError(t, m.Close())
	assert.NoError(t, m.Close(), "second Close should be a no-op")
}

func TestCreateNamesAreUnique(t *testing.T) {
	m := New(t.TempDir())
	f1, err := m.Create("action")
	require.NoError(t, err)
	f2, err := m.Create("action")
	require.NoError(t, err)
	assert.NotEqual(t, f1.Name(), f2.Name(), "two scratch files with the same label must still get distinct names")
	f1.Close()
	f2.Close()
	m.Close()
}
