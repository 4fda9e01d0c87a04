// Package photo defines the immutable handle to a locally available image.
package photo

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrNotImage is returned when the file content is not a recognised image.
var ErrNotImage = errors.New("not an image")

// Reference points at one image on local storage. A Reference is never
// mutated; choosing another image produces a new Reference with a new ID.
type Reference struct {
	ID          uuid.UUID
	URI         string
	ContentType string
}

// IsZero reports whether r is the empty reference.
func (r Reference) IsZero() bool {
	return r.ID == uuid.Nil
}

// Name returns the base name of the referenced file.
func (r Reference) Name() string {
	return filepath.Base(r.URI)
}

// String is used in log fields.
func (r Reference) String() string {
	if r.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%s(%s)", r.Name(), r.ID.String()[:8])
}

// Extensions lists the file suffixes offered by the library picker.
var Extensions = []string{".jpg", ".jpeg", ".png", ".webp", ".heic", ".bmp", ".gif"}

// HasImageExtension reports whether path ends in one of Extensions.
func HasImageExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// New sniffs the file at path and returns a fresh Reference for it.
// Errors from opening the file are returned unwrapped enough for
// errors.Is(err, fs.ErrPermission) and errors.Is(err, fs.ErrNotExist).
func New(path string) (Reference, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Reference{}, fmt.Errorf("resolving %s: %w", path, err)
	}

	mt, err := mimetype.DetectFile(abs)
	if err != nil {
		return Reference{}, fmt.Errorf("reading %s: %w", abs, err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return Reference{}, fmt.Errorf("%s is %s: %w", abs, mt.String(), ErrNotImage)
	}

	return Reference{
		ID:          uuid.New(),
		URI:         abs,
		ContentType: mt.String(),
	}, nil
}

// Open returns a reader for the referenced bytes.
func (r Reference) Open() (io.ReadCloser, error) {
	if r.IsZero() {
		return nil, errors.New("open: empty photo reference")
	}
	f, err := os.Open(r.URI)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", r.URI, err)
	}
	return f, nil
}

// Digest returns the hex sha256 of the referenced bytes. Two references to
// identical files share a digest even though their IDs differ.
func (r Reference) Digest() (string, error) {
	rc, err := r.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, rc); err != nil {
		return "", fmt.Errorf("hashing %s: %w", r.URI, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
