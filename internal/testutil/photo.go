// Package testutil provides fixtures shared by package tests: photo files on
// disk, a controllable clock and a scripted classifier.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/petsense/internal/photo"
)

// JPEG is enough of a JFIF file for content sniffing.
var JPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0xFF, 0xD9}

// PNG is the PNG signature followed by an empty IHDR chunk header.
var PNG = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R'}

// photoData holds everything needed to write one photo file.
type photoData struct {
	dir     string
	name    string
	content []byte
	mode    os.FileMode
}

// PhotoOption configures WritePhoto.
type PhotoOption func(*photoData)

// InDir writes the photo into dir instead of a fresh temp dir.
func InDir(dir string) PhotoOption {
	return func(p *photoData) { p.dir = dir }
}

// WithName sets the file name.
func WithName(name string) PhotoOption {
	return func(p *photoData) { p.name = name }
}

// WithContent replaces the JPEG bytes.
func WithContent(b []byte) PhotoOption {
	return func(p *photoData) { p.content = b }
}

// WithMode sets the file permissions.
func WithMode(mode os.FileMode) PhotoOption {
	return func(p *photoData) { p.mode = mode }
}

// WritePhoto writes a small JPEG and returns its path.
func WritePhoto(t testing.TB, opts ...PhotoOption) string {
	t.Helper()
	p := photoData{name: "pet.jpg", content: JPEG, mode: 0o600}
	for _, opt := range opts {
		opt(&p)
	}
	if p.dir == "" {
		p.dir = t.TempDir()
	}
	path := filepath.Join(p.dir, p.name)
	require.NoError(t, os.WriteFile(path, p.content, p.mode))
	return path
}

// NewPhoto writes a JPEG and resolves it like a library pick.
func NewPhoto(t testing.TB, opts ...PhotoOption) photo.Reference {
	t.Helper()
	ref, err := photo.New(WritePhoto(t, opts...))
	require.NoError(t, err)
	return ref
}

// Ref returns an in-memory reference that is never read from disk.
func Ref(name string) photo.Reference {
	return photo.Reference{ID: uuid.New(), URI: "/photos/" + name, ContentType: "image/jpeg"}
}
