package position_test

import (
	"context"
	"errors"
	"testing"

	"go-roster/internal/position"
	"go-roster/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	positions []position.Position
	findErr   error
	saveErr   error
	saved     []position.Position
}

func (f *fakeRepo) FindAll(_ context.Context) ([]position.Position, error) {
	return f.positions, f.findErr
}

func (f *fakeRepo) ReplaceAll(_ context.Context, positions []position.Position) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = positions
	f.positions = positions
	return nil
}

func TestPositionService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored positions", func(t *testing.T) {
		repo := &fakeRepo{positions: []position.Position{
			{Name: "Barback", Icon: "🍺"},
		}}
		svc := position.NewService(repo)

		got, err := svc.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Barback", got[0].Name)
	})

	t.Run("empty sheet falls back to defaults", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := position.NewService(repo)

		got, err := svc.GetAll(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.Equal(t, "Bartender", got[0].Name)
		assert.Equal(t, "🍸", got[0].Icon)
		assert.Nil(t, repo.saved, "defaults are served, never written back")
	})

	t.Run("store failure", func(t *testing.T) {
		repo := &fakeRepo{findErr: errors.New("workbook gone")}
		svc := position.NewService(repo)

		_, err := svc.GetAll(ctx)
		require.Error(t, err)
		assert.Equal(t, apperror.CodeStoreError, apperror.ToHTTP(err).Code)
	})
}

func TestPositionService_ReplaceAll(t *testing.T) {
	ctx := context.Background()

	t.Run("trims names and drops blanks", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := position.NewService(repo)

		got, err := svc.ReplaceAll(ctx, position.ReplaceAllPositionsRequest{
			Positions: []position.PositionRecord{
				{Name: "  Bartender ", Icon: " 🍸 "},
				{Name: "   ", Icon: "👻"},
				{Name: "Cook", Icon: "🔥"},
			},
		})

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Bartender", got[0].Name)
		assert.Equal(t, "🍸", got[0].Icon)
		assert.Equal(t, "Cook", got[1].Name)
		require.Len(t, repo.saved, 2)
	})

	t.Run("empty list clears the sheet", func(t *testing.T) {
		repo := &fakeRepo{positions: []position.Position{{Name: "Old"}}}
		svc := position.NewService(repo)

		got, err := svc.ReplaceAll(ctx, position.ReplaceAllPositionsRequest{
			Positions: []position.PositionRecord{},
		})

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Empty(t, repo.positions)
	})

	t.Run("persist failure", func(t *testing.T) {
		repo := &fakeRepo{saveErr: errors.New("disk full")}
		svc := position.NewService(repo)

		_, err := svc.ReplaceAll(ctx, position.ReplaceAllPositionsRequest{
			Positions: []position.PositionRecord{{Name: "Bartender"}},
		})
		require.Error(t, err)
		assert.Equal(t, apperror.CodeStoreError, apperror.ToHTTP(err).Code)
	})
}
