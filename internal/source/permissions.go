package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
)

// Permissions is asked before every acquisition. It returns nil when access
// is granted and an error wrapping ErrPermissionDenied when it is refused.
type Permissions interface {
	Request(ctx context.Context, kind Kind) error
}

// PermissionsFunc adapts a function to Permissions.
type PermissionsFunc func(ctx context.Context, kind Kind) error

// Request calls f.
func (f PermissionsFunc) Request(ctx context.Context, kind Kind) error {
	return f(ctx, kind)
}

// AllowAll grants every request.
var AllowAll = PermissionsFunc(func(context.Context, Kind) error { return nil })

// FSPermissions derives access from the filesystem: the library directory
// must be listable, and the camera needs either a listable watch directory
// or a capture command found on PATH.
type FSPermissions struct {
	LibraryDir     string
	CameraWatchDir string
	CameraCommand  string
}

// Request implements Permissions.
func (p FSPermissions) Request(ctx context.Context, kind Kind) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch kind {
	case KindLibrary:
		return checkListable(p.LibraryDir)
	case KindCamera:
		if p.CameraCommand != "" {
			if _, err := exec.LookPath(firstField(p.CameraCommand)); err != nil {
				if errors.Is(err, fs.ErrPermission) {
					return fmt.Errorf("camera command: %w", ErrPermissionDenied)
				}
				return fmt.Errorf("camera command %q: %w", p.CameraCommand, ErrUnavailable)
			}
			return nil
		}
		if p.CameraWatchDir == "" {
			return fmt.Errorf("no capture command or watch directory configured: %w", ErrUnavailable)
		}
		return checkListable(p.CameraWatchDir)
	default:
		return fmt.Errorf("unknown source %s: %w", kind, ErrUnavailable)
	}
}

func checkListable(dir string) error {
	if dir == "" {
		return nil
	}
	f, err := os.Open(dir) //nolint:gosec // G304: user-configured directory
	if err != nil {
		return mapAccessError(dir, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return mapAccessError(dir, err)
	}
	return nil
}

func mapAccessError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s: %w", path, ErrPermissionDenied)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s does not exist: %w", path, ErrUnavailable)
	default:
		return fmt.Errorf("checking %s: %w", path, err)
	}
}

func firstField(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
