package preference_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go-roster/internal/employee"
	"go-roster/internal/preference"
	"go-roster/internal/shared/apperror"
	"go-roster/internal/sheetstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	known map[string]bool
}

func (f *fakeDirectory) FindByID(_ context.Context, empID string) (*employee.Employee, error) {
	if f.known[empID] {
		return &employee.Employee{EmpID: empID}, nil
	}
	return nil, errors.New("not found")
}

func newMarkerService(t *testing.T, known ...string) preference.Service {
	t.Helper()
	store, err := sheetstore.Open(filepath.Join(t.TempDir(), "roster.xlsx"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	dir := &fakeDirectory{known: map[string]bool{}}
	for _, id := range known {
		dir.known[id] = true
	}
	return preference.NewService(preference.NewRepository(store), dir)
}

func TestPreferenceService_Lifecycle(t *testing.T) {
	svc := newMarkerService(t, "B1", "B2")
	ctx := context.Background()

	// unset marker reads as empty, not as an error
	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", got.EmpID)

	_, err = svc.Set(ctx, preference.SetMarkerRequest{EmpID: " B1 "})
	require.NoError(t, err)

	got, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "B1", got.EmpID, "marker is trimmed before storing")

	// re-set overwrites instead of stacking rows
	_, err = svc.Set(ctx, preference.SetMarkerRequest{EmpID: "B2"})
	require.NoError(t, err)

	got, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "B2", got.EmpID)

	_, err = svc.Clear(ctx)
	require.NoError(t, err)

	got, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", got.EmpID)
}

func TestPreferenceService_SetRejectsUnknownEmployee(t *testing.T) {
	svc := newMarkerService(t, "B1")
	ctx := context.Background()

	_, err := svc.Set(ctx, preference.SetMarkerRequest{EmpID: "ghost"})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeNotFound, apperror.ToHTTP(err).Code)

	// rejection leaves the marker untouched
	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", got.EmpID)
}

func TestPreferenceService_ClearUnsetIsNoOp(t *testing.T) {
	svc := newMarkerService(t)
	ctx := context.Background()

	got, err := svc.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", got.EmpID)
}

func TestPreferenceRepository_SharesSettingsSheet(t *testing.T) {
	store, err := sheetstore.Open(filepath.Join(t.TempDir(), "roster.xlsx"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	// a foreign settings row must survive marker writes untouched
	require.NoError(t, store.AppendRow(sheetstore.SheetSettings, []string{"theme", "dark"}))

	repo := preference.NewRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "B1"))
	require.NoError(t, repo.Clear(ctx))

	rows, err := store.Rows(sheetstore.SheetSettings)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "theme", sheetstore.CellValue(rows[0], 0))
	assert.Equal(t, "dark", sheetstore.CellValue(rows[0], 1))
}
