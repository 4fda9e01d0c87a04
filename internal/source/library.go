package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/zjrosen/petsense/internal/log"
	"github.com/zjrosen/petsense/internal/photo"
)

// Library resolves a path chosen in the library picker into a Reference.
// The picker itself is interactive and lives in the UI; Library is the part
// that checks permission and validates the chosen file.
type Library struct {
	Dir         string
	Permissions Permissions
}

// NewLibrary returns a Library rooted at dir.
func NewLibrary(dir string, perms Permissions) Library {
	if perms == nil {
		perms = AllowAll
	}
	return Library{Dir: dir, Permissions: perms}
}

// Authorize asks for library access before the picker opens.
func (l Library) Authorize(ctx context.Context) error {
	perms := l.Permissions
	if perms == nil {
		perms = AllowAll
	}
	if err := perms.Request(ctx, KindLibrary); err != nil {
		log.Warn(log.CatSource, "library permission refused", "dir", l.Dir, "error", err)
		return err
	}
	return nil
}

// Resolve checks permission and turns path into a Reference.
// An empty path means the picker was dismissed and yields ErrCancelled.
func (l Library) Resolve(ctx context.Context, path string) (photo.Reference, error) {
	if err := l.Authorize(ctx); err != nil {
		return photo.Reference{}, err
	}
	if path == "" {
		return photo.Reference{}, ErrCancelled
	}
	if err := ctx.Err(); err != nil {
		return photo.Reference{}, ErrCancelled
	}

	ref, err := photo.New(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return photo.Reference{}, fmt.Errorf("%s: %w", path, ErrPermissionDenied)
		}
		return photo.Reference{}, err
	}
	log.Info(log.CatSource, "library image selected", "photo", ref, "type", ref.ContentType)
	return ref, nil
}

// Choice binds a picked path to a Provider so the workflow can treat library
// and camera acquisitions the same way.
func (l Library) Choice(path string) Provider {
	return ProviderFunc(func(ctx context.Context) (photo.Reference, error) {
		return l.Resolve(ctx, path)
	})
}
