package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/zjrosen/petsense/internal/log"
	"github.com/zjrosen/petsense/internal/photo"
	"github.com/zjrosen/petsense/internal/watcher"
)

// outputPlaceholder is replaced with the capture file path in Camera.Command.
const outputPlaceholder = "{output}"

// Camera captures a new photo, either by running a capture command or by
// waiting for the next image to land in a watched directory (a phone sync
// folder, a tethering tool's drop directory).
type Camera struct {
	// Command is split on whitespace; "{output}" is replaced with the target
	// file. When the placeholder is absent the path is appended.
	Command     string
	WatchDir    string
	TempDir     string
	Permissions Permissions
}

// Request implements Provider.
func (c Camera) Request(ctx context.Context) (photo.Reference, error) {
	perms := c.Permissions
	if perms == nil {
		perms = AllowAll
	}
	if err := perms.Request(ctx, KindCamera); err != nil {
		log.Warn(log.CatSource, "camera permission refused", "error", err)
		return photo.Reference{}, err
	}

	var (
		path string
		err  error
	)
	if c.Command != "" {
		path, err = c.capture(ctx)
	} else {
		path, err = c.waitForDrop(ctx)
	}
	if err != nil {
		return photo.Reference{}, err
	}

	ref, err := photo.New(path)
	if err != nil {
		return photo.Reference{}, fmt.Errorf("captured file: %w", err)
	}
	log.Info(log.CatSource, "camera image captured", "photo", ref)
	return ref, nil
}

func (c Camera) capture(ctx context.Context) (string, error) {
	dir := c.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	f, err := os.CreateTemp(dir, "petsense-capture-*.jpg")
	if err != nil {
		return "", fmt.Errorf("creating capture file: %w", err)
	}
	target := f.Name()
	_ = f.Close()

	args := expandCommand(c.Command, target)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // G204: user-configured capture command
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Debug(log.CatSource, "running capture command", "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		_ = os.Remove(target)
		if ctx.Err() != nil {
			return "", ErrCancelled
		}
		if strings.Contains(strings.ToLower(stderr.String()), "permission denied") {
			return "", fmt.Errorf("capture command: %w", ErrPermissionDenied)
		}
		return "", fmt.Errorf("capture command failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	info, err := os.Stat(target)
	if err != nil || info.Size() == 0 {
		// The tool exited cleanly without writing a frame: treat as the user backing out.
		_ = os.Remove(target)
		return "", ErrCancelled
	}
	return target, nil
}

func (c Camera) waitForDrop(ctx context.Context) (string, error) {
	w, err := watcher.New(watcher.DefaultConfig(c.WatchDir))
	if err != nil {
		return "", err
	}
	defer func() { _ = w.Stop() }()

	if err := w.Start(); err != nil {
		return "", err
	}
	path, err := w.NextImage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", ErrCancelled
		}
		return "", err
	}
	return path, nil
}

func expandCommand(command, target string) []string {
	fields := strings.Fields(command)
	replaced := false
	for i, f := range fields {
		if strings.Contains(f, outputPlaceholder) {
			fields[i] = strings.ReplaceAll(f, outputPlaceholder, target)
			replaced = true
		}
	}
	if !replaced {
		fields = append(fields, filepath.Clean(target))
	}
	return fields
}
