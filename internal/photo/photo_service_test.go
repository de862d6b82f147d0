package photo_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-roster/internal/employee"
	"go-roster/internal/photo"
	"go-roster/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	employees []employee.Employee
	findErr   error
	urls      map[string]string
}

func newFakeDirectory(emps ...employee.Employee) *fakeDirectory {
	return &fakeDirectory{employees: emps, urls: map[string]string{}}
}

func (f *fakeDirectory) FindAll(_ context.Context) ([]employee.Employee, error) {
	return f.employees, f.findErr
}

func (f *fakeDirectory) FindByID(_ context.Context, empID string) (*employee.Employee, error) {
	for i := range f.employees {
		if f.employees[i].EmpID == empID {
			return &f.employees[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeDirectory) SetPhotoURL(_ context.Context, empID, photoURL string) error {
	if _, err := f.FindByID(context.Background(), empID); err != nil {
		return err
	}
	f.urls[empID] = photoURL
	return nil
}

func TestPhotoService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		dir := t.TempDir()
		directory := newFakeDirectory(employee.Employee{EmpID: "B1"})
		svc := photo.NewService(directory, dir, "/photos")

		resp, err := svc.Upload(ctx, "B1", "face.PNG", 4, strings.NewReader("data"))
		require.NoError(t, err)

		assert.Equal(t, "B1", resp.EmpID)
		assert.True(t, strings.HasPrefix(resp.PhotoURL, "/photos/"))
		assert.True(t, strings.HasSuffix(resp.PhotoURL, ".png"), "extension is lowercased")
		assert.Equal(t, resp.PhotoURL, directory.urls["B1"])

		data, err := os.ReadFile(filepath.Join(dir, filepath.Base(resp.PhotoURL)))
		require.NoError(t, err)
		assert.Equal(t, "data", string(data))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		svc := photo.NewService(newFakeDirectory(employee.Employee{EmpID: "B1"}), t.TempDir(), "/photos")

		for _, name := range []string{"virus.exe", "doc.pdf", "noext", "photo.gif"} {
			_, err := svc.Upload(ctx, "B1", name, 4, strings.NewReader("data"))
			require.Error(t, err, "file %q", name)
			assert.Equal(t, apperror.CodeInvalidInput, apperror.ToHTTP(err).Code)
		}
	})

	t.Run("declared size over the cap", func(t *testing.T) {
		svc := photo.NewService(newFakeDirectory(employee.Employee{EmpID: "B1"}), t.TempDir(), "/photos")

		_, err := svc.Upload(ctx, "B1", "big.jpg", photo.MaxPhotoSize+1, strings.NewReader("x"))
		require.Error(t, err)
		assert.Equal(t, apperror.CodeInvalidInput, apperror.ToHTTP(err).Code)
	})

	t.Run("unknown employee leaves no file behind", func(t *testing.T) {
		dir := t.TempDir()
		svc := photo.NewService(newFakeDirectory(), dir, "/photos")

		_, err := svc.Upload(ctx, "ghost", "face.png", 4, strings.NewReader("data"))
		require.Error(t, err)
		assert.Equal(t, apperror.CodeNotFound, apperror.ToHTTP(err).Code)

		entries, readErr := os.ReadDir(dir)
		if readErr == nil {
			assert.Empty(t, entries)
		}
	})
}

func TestPhotoService_CleanupStale(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writePhoto := func(name string, age time.Duration) {
		t.Helper()
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))
		stamp := time.Now().Add(-age)
		require.NoError(t, os.Chtimes(path, stamp, stamp))
	}

	writePhoto("referenced-old.png", 48*time.Hour)
	writePhoto("orphan-old.png", 48*time.Hour)
	writePhoto("orphan-fresh.png", time.Minute)

	directory := newFakeDirectory(employee.Employee{
		EmpID:    "B1",
		PhotoURL: "/photos/referenced-old.png",
	})
	svc := photo.NewService(directory, dir, "/photos")

	removed, err := svc.CleanupStale(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(filepath.Join(dir, "referenced-old.png"))
	assert.NoError(t, err, "referenced files survive regardless of age")
	_, err = os.Stat(filepath.Join(dir, "orphan-fresh.png"))
	assert.NoError(t, err, "fresh orphans get a grace period")
	_, err = os.Stat(filepath.Join(dir, "orphan-old.png"))
	assert.True(t, os.IsNotExist(err), "old orphans are removed")
}

func TestPhotoService_CleanupStale_EdgeCases(t *testing.T) {
	ctx := context.Background()

	t.Run("missing photo dir is a no-op", func(t *testing.T) {
		svc := photo.NewService(newFakeDirectory(), filepath.Join(t.TempDir(), "nope"), "/photos")

		removed, err := svc.CleanupStale(ctx, time.Hour)
		require.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("unreadable roster aborts without deleting", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "orphan-old.png")
		require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))
		old := time.Now().Add(-48 * time.Hour)
		require.NoError(t, os.Chtimes(path, old, old))

		directory := newFakeDirectory()
		directory.findErr = errors.New("workbook gone")
		svc := photo.NewService(directory, dir, "/photos")

		_, err := svc.CleanupStale(ctx, time.Hour)
		require.Error(t, err)

		_, statErr := os.Stat(path)
		assert.NoError(t, statErr, "nothing may be deleted when the roster is unreadable")
	})
}
