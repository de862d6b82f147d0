package backup_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-roster/internal/backup"
	"go-roster/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSnapshotter plays the sheet store: CopyTo writes the current
// workbook bytes, RestoreFrom reads them back.
type fakeSnapshotter struct {
	content    string
	copyErr    error
	restoreErr error
	restored   string
}

func (f *fakeSnapshotter) CopyTo(dst string) error {
	if f.copyErr != nil {
		return f.copyErr
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, []byte(f.content), 0o644)
}

func (f *fakeSnapshotter) RestoreFrom(src string) error {
	if f.restoreErr != nil {
		return f.restoreErr
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	f.restored = string(data)
	f.content = string(data)
	return nil
}

func TestBackupService_CreateAndList(t *testing.T) {
	dir := t.TempDir()
	snap := &fakeSnapshotter{content: "workbook-v1"}
	svc := backup.NewService(snap, dir)
	ctx := context.Background()

	info, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(info.ID, "roster-"))
	assert.True(t, strings.HasSuffix(info.ID, ".xlsx"))
	assert.Equal(t, int64(len("workbook-v1")), info.SizeBytes)
	assert.NotEmpty(t, info.CreatedAt)

	infos, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, info.ID, infos[0].ID)
}

func TestBackupService_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prerestore-20260101T000000.xlsx"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roster-20260101T000000-abcd1234.xlsx"), []byte("x"), 0o644))

	svc := backup.NewService(&fakeSnapshotter{}, dir)

	infos, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 1, "only roster-*.xlsx files are backups")
	assert.Equal(t, "roster-20260101T000000-abcd1234.xlsx", infos[0].ID)
}

func TestBackupService_ListMissingDirIsEmpty(t *testing.T) {
	svc := backup.NewService(&fakeSnapshotter{}, filepath.Join(t.TempDir(), "never-created"))

	infos, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestBackupService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip with safety copy", func(t *testing.T) {
		dir := t.TempDir()
		snap := &fakeSnapshotter{content: "workbook-v1"}
		svc := backup.NewService(snap, dir)

		info, err := svc.Create(ctx)
		require.NoError(t, err)

		// the live workbook drifts after the snapshot
		snap.content = "workbook-v2"

		restored, err := svc.Restore(ctx, backup.RestoreRequest{ID: info.ID})
		require.NoError(t, err)
		assert.Equal(t, info.ID, restored.ID)
		assert.Equal(t, "workbook-v1", snap.restored)

		// the pre-restore state was snapshotted before the overwrite
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		var safety string
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), "prerestore-") {
				safety = e.Name()
			}
		}
		require.NotEmpty(t, safety, "restore must leave a prerestore-* copy")
		data, err := os.ReadFile(filepath.Join(dir, safety))
		require.NoError(t, err)
		assert.Equal(t, "workbook-v2", string(data))
	})

	t.Run("path traversal ids are rejected", func(t *testing.T) {
		svc := backup.NewService(&fakeSnapshotter{}, t.TempDir())

		for _, id := range []string{
			"../../etc/passwd",
			"roster-../../x.xlsx",
			"whatever.xlsx",
			"roster-123.zip",
			"",
		} {
			_, err := svc.Restore(ctx, backup.RestoreRequest{ID: id})
			require.Error(t, err, "id %q", id)
			assert.Equal(t, apperror.CodeInvalidInput, apperror.ToHTTP(err).Code, "id %q", id)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := backup.NewService(&fakeSnapshotter{}, t.TempDir())

		_, err := svc.Restore(ctx, backup.RestoreRequest{ID: "roster-20260101T000000-deadbeef.xlsx"})
		require.Error(t, err)
		assert.Equal(t, apperror.CodeNotFound, apperror.ToHTTP(err).Code)
	})

	t.Run("failed safety copy aborts the restore", func(t *testing.T) {
		dir := t.TempDir()
		snap := &fakeSnapshotter{content: "workbook-v1"}
		svc := backup.NewService(snap, dir)

		info, err := svc.Create(ctx)
		require.NoError(t, err)

		snap.copyErr = errors.New("disk full")
		_, err = svc.Restore(ctx, backup.RestoreRequest{ID: info.ID})
		require.Error(t, err)
		assert.Empty(t, snap.restored, "workbook must not be overwritten without a safety copy")
	})
}

func TestBackupService_CreateFailure(t *testing.T) {
	svc := backup.NewService(&fakeSnapshotter{copyErr: errors.New("disk full")}, t.TempDir())

	_, err := svc.Create(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperror.CodeStoreError, apperror.ToHTTP(err).Code)
}
