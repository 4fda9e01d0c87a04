package photo

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_SniffsJPEG(t *testing.T) {
	path := writeFile(t, "dog.jpg", jpegHeader)

	ref, err := New(path)
	require.NoError(t, err)
	require.False(t, ref.IsZero())
	require.Equal(t, "image/jpeg", ref.ContentType)
	require.True(t, filepath.IsAbs(ref.URI))
	require.Equal(t, "dog.jpg", ref.Name())
}

func TestNew_EachSelectionGetsNewID(t *testing.T) {
	path := writeFile(t, "dog.jpg", jpegHeader)

	a, err := New(path)
	require.NoError(t, err)
	b, err := New(path)
	require.NoError(t, err)

	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, a.URI, b.URI)
}

func TestNew_RejectsNonImage(t *testing.T) {
	path := writeFile(t, "notes.jpg", []byte("just some text, not a picture"))

	_, err := New(path)
	require.ErrorIs(t, err, ErrNotImage)
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "gone.jpg"))
	require.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
}

func TestOpenAndDigest(t *testing.T) {
	path := writeFile(t, "dog.jpg", jpegHeader)
	ref, err := New(path)
	require.NoError(t, err)

	rc, err := ref.Open()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, jpegHeader, data)

	other, err := New(writeFile(t, "copy.jpg", jpegHeader))
	require.NoError(t, err)

	d1, err := ref.Digest()
	require.NoError(t, err)
	d2, err := other.Digest()
	require.NoError(t, err)
	require.Equal(t, d1, d2)
	require.Len(t, d1, 64)
}

func TestZeroReference(t *testing.T) {
	var ref Reference
	require.True(t, ref.IsZero())
	require.Equal(t, "<none>", ref.String())
	_, err := ref.Open()
	require.Error(t, err)
}

func TestHasImageExtension(t *testing.T) {
	require.True(t, HasImageExtension("/a/b/C.JPG"))
	require.True(t, HasImageExtension("x.png"))
	require.False(t, HasImageExtension("x.txt"))
	require.False(t, HasImageExtension("jpg"))
}
