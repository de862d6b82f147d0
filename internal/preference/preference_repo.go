package preference

import (
	"context"
	"strings"

	"go-roster/internal/sheetstore"
)

// markerKey is the Settings row holding the "current user" employee id.
const markerKey = "current_user_id"

//go:generate mockgen -source=preference_repo.go -destination=mock/preference_repo_mock.go -package=mock
type Repository interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, empID string) error
	Clear(ctx context.Context) error
}

type repository struct {
	store *sheetstore.Store
}

func NewRepository(store *sheetstore.Store) Repository {
	return &repository{store: store}
}

// Get returns the marker value, or "" when unset. A missing row is not an
// error: the marker is an optional preference.
func (r *repository) Get(_ context.Context) (string, error) {
	rows, err := r.store.Rows(sheetstore.SheetSettings)
	if err != nil {
		return "", err
	}
	for _, row := range rows {
		if sheetstore.CellValue(row, 0) == markerKey {
			return sheetstore.CellValue(row, 1), nil
		}
	}
	return "", nil
}

func (r *repository) Set(_ context.Context, empID string) error {
	rows, err := r.store.Rows(sheetstore.SheetSettings)
	if err != nil {
		return err
	}
	value := strings.TrimSpace(empID)
	for i, row := range rows {
		if sheetstore.CellValue(row, 0) == markerKey {
			return r.store.UpdateRow(sheetstore.SheetSettings, i+1, []string{markerKey, value})
		}
	}
	return r.store.AppendRow(sheetstore.SheetSettings, []string{markerKey, value})
}

func (r *repository) Clear(_ context.Context) error {
	rows, err := r.store.Rows(sheetstore.SheetSettings)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if sheetstore.CellValue(row, 0) == markerKey {
			return r.store.DeleteRow(sheetstore.SheetSettings, i+1)
		}
	}
	return nil // clearing an unset marker is a no-op
}
