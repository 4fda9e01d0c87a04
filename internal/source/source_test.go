package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/petsense/internal/testutil"
)

func writeJPEG(t *testing.T, dir, name string) string {
	return testutil.WritePhoto(t, testutil.InDir(dir), testutil.WithName(name))
}

func deny(context.Context, Kind) error {
	return fmt.Errorf("user said no: %w", ErrPermissionDenied)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Outcome
	}{
		{nil, OutcomeSelected},
		{ErrCancelled, OutcomeCancelled},
		{context.Canceled, OutcomeCancelled},
		{fmt.Errorf("wrapped: %w", ErrPermissionDenied), OutcomeDenied},
		{errors.New("disk on fire"), OutcomeFailed},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Classify(tt.err), "err=%v", tt.err)
	}
}

func TestKindString(t *testing.T) {
	require.Equal(t, "camera", KindCamera.String())
	require.Equal(t, "library", KindLibrary.String())
	require.Equal(t, "source(9)", Kind(9).String())
}

func TestLibrary_Resolve(t *testing.T) {
	dir := t.TempDir()
	path := writeJPEG(t, dir, "cat.jpg")

	lib := NewLibrary(dir, nil)
	ref, err := lib.Resolve(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, path, ref.URI)
	require.Equal(t, "image/jpeg", ref.ContentType)
}

func TestLibrary_EmptyPathIsCancel(t *testing.T) {
	lib := NewLibrary(t.TempDir(), nil)
	_, err := lib.Resolve(context.Background(), "")
	require.ErrorIs(t, err, ErrCancelled)
}

func TestLibrary_PermissionAskedEveryCall(t *testing.T) {
	dir := t.TempDir()
	path := writeJPEG(t, dir, "cat.jpg")

	calls := 0
	lib := NewLibrary(dir, PermissionsFunc(func(_ context.Context, kind Kind) error {
		calls++
		require.Equal(t, KindLibrary, kind)
		return nil
	}))

	provider := lib.Choice(path)
	_, err := provider.Request(context.Background())
	require.NoError(t, err)
	_, err = provider.Request(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestLibrary_PermissionDenied(t *testing.T) {
	dir := t.TempDir()
	lib := NewLibrary(dir, PermissionsFunc(deny))

	_, err := lib.Resolve(context.Background(), writeJPEG(t, dir, "cat.jpg"))
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestLibrary_Authorize(t *testing.T) {
	require.NoError(t, NewLibrary(t.TempDir(), nil).Authorize(context.Background()))
	require.ErrorIs(t, NewLibrary(t.TempDir(), PermissionsFunc(deny)).Authorize(context.Background()), ErrPermissionDenied)
}

func TestLibrary_UnreadableFileIsPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file modes")
	}
	dir := t.TempDir()
	path := writeJPEG(t, dir, "locked.jpg")
	require.NoError(t, os.Chmod(path, 0o000))
	t.Cleanup(func() { _ = os.Chmod(path, 0o600) })

	_, err := NewLibrary(dir, nil).Resolve(context.Background(), path)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCamera_CommandCapture(t *testing.T) {
	src := writeJPEG(t, t.TempDir(), "frame.jpg")
	cam := Camera{Command: "cp " + src + " {output}", TempDir: t.TempDir()}

	ref, err := cam.Request(context.Background())
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", ref.ContentType)
	require.NotEqual(t, src, ref.URI)
}

func TestCamera_CommandWithoutFrameIsCancel(t *testing.T) {
	cam := Camera{Command: "true", TempDir: t.TempDir()}

	_, err := cam.Request(context.Background())
	require.ErrorIs(t, err, ErrCancelled)
}

func TestCamera_CommandFailure(t *testing.T) {
	cam := Camera{Command: "false", TempDir: t.TempDir()}

	_, err := cam.Request(context.Background())
	require.Error(t, err)
	require.Equal(t, OutcomeFailed, Classify(err))
}

func TestCamera_WatchDir(t *testing.T) {
	dir := t.TempDir()
	cam := Camera{WatchDir: dir}

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "IMG_0001.jpg"), testutil.JPEG, 0o600)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	ref, err := cam.Request(ctx)
	require.NoError(t, err)
	require.Equal(t, "IMG_0001.jpg", ref.Name())
}

func TestCamera_WatchDirCancelled(t *testing.T) {
	cam := Camera{WatchDir: t.TempDir()}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := cam.Request(ctx)
	require.ErrorIs(t, err, ErrCancelled)
}

func TestCamera_PermissionDenied(t *testing.T) {
	cam := Camera{WatchDir: t.TempDir(), Permissions: PermissionsFunc(deny)}

	_, err := cam.Request(context.Background())
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestFSPermissions(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")
	ctx := context.Background()

	require.NoError(t, FSPermissions{LibraryDir: dir}.Request(ctx, KindLibrary))
	require.ErrorIs(t, FSPermissions{LibraryDir: missing}.Request(ctx, KindLibrary), ErrUnavailable)

	require.NoError(t, FSPermissions{CameraWatchDir: dir}.Request(ctx, KindCamera))
	require.NoError(t, FSPermissions{CameraCommand: "cp a b"}.Request(ctx, KindCamera))
	require.ErrorIs(t, FSPermissions{CameraCommand: "no-such-capture-tool-xyz"}.Request(ctx, KindCamera), ErrUnavailable)
	require.ErrorIs(t, FSPermissions{}.Request(ctx, KindCamera), ErrUnavailable)
}

func TestExpandCommand(t *testing.T) {
	require.Equal(t,
		[]string{"fswebcam", "--no-banner", "/tmp/x.jpg"},
		expandCommand("fswebcam --no-banner {output}", "/tmp/x.jpg"))
	require.Equal(t,
		[]string{"imagesnap", "/tmp/x.jpg"},
		expandCommand("imagesnap", "/tmp/x.jpg"))
	require.Equal(t,
		[]string{"libcamera-still", "-o=/tmp/x.jpg"},
		expandCommand("libcamera-still -o={output}", "/tmp/x.jpg"))
}
