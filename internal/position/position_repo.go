package position

import (
	"context"

	"go-roster/internal/sheetstore"
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Position, error)
	ReplaceAll(ctx context.Context, positions []Position) error
}

type repository struct {
	store *sheetstore.Store
}

func NewRepository(store *sheetstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) FindAll(_ context.Context) ([]Position, error) {
	rows, err := r.store.Rows(sheetstore.SheetPositions)
	if err != nil {
		return nil, err
	}

	positions := make([]Position, 0, len(rows))
	for _, row := range rows {
		name := sheetstore.CellValue(row, 0)
		if name == "" {
			continue
		}
		positions = append(positions, Position{
			Name: name,
			Icon: sheetstore.CellValue(row, 1),
		})
	}
	return positions, nil
}

func (r *repository) ReplaceAll(_ context.Context, positions []Position) error {
	rows := make([][]string, len(positions))
	for i, p := range positions {
		rows[i] = []string{p.Name, p.Icon}
	}
	return r.store.ReplaceRows(sheetstore.SheetPositions, rows)
}
