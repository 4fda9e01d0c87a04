package testutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/petsense/internal/classify"
	"github.com/zjrosen/petsense/internal/photo"
)

func TestWritePhoto_Defaults(t *testing.T) {
	path := WritePhoto(t)
	assert.Equal(t, "pet.jpg", filepath.Base(path))

	ref, err := photo.New(path)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ref.ContentType)
}

func TestWritePhoto_Options(t *testing.T) {
	dir := t.TempDir()
	path := WritePhoto(t, InDir(dir), WithName("cat.png"), WithContent(PNG), WithMode(0o644))
	assert.Equal(t, filepath.Join(dir, "cat.png"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	assert.Equal(t, "image/png", NewPhoto(t, WithName("x.png"), WithContent(PNG)).ContentType)
}

func TestRef_Unique(t *testing.T) {
	a, b := Ref("a.jpg"), Ref("a.jpg")
	assert.False(t, a.IsZero())
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "/photos/a.jpg", a.URI)
}

func TestClock_Advance(t *testing.T) {
	c := NewClock()
	start := c.Now()
	c.Advance(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, c.Now().Sub(start))
}

func TestClassifier_Records(t *testing.T) {
	c := &Classifier{Result: classify.Result{Label: "Beagle", Probability: 71}}
	ref := Ref("b.jpg")

	got, err := c.Classify(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "Beagle", got.Label)
	assert.Equal(t, int32(1), c.Calls())
	assert.Equal(t, []photo.Reference{ref}, c.Seen())

	failing := &Classifier{Err: errors.New("boom")}
	_, err = failing.Classify(context.Background(), ref)
	assert.EqualError(t, err, "boom")
}
