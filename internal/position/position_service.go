package position

import (
	"context"
	"net/http"
	"strings"

	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const positionsAllKey = "positions:all"

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]PositionResponse, error)
	ReplaceAll(ctx context.Context, req ReplaceAllPositionsRequest) ([]PositionResponse, error)
}

type service struct {
	repo   Repository
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("position.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("position.service")
	}
	return &service{repo: repo, sf: &singleflight.Group{}, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]PositionResponse, error) {
	v, err, _ := s.sf.Do(positionsAllKey, func() (interface{}, error) {
		positions, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		if len(positions) == 0 {
			// empty sheet falls back to the built-in list
			positions = defaultPositions
		}
		return mapToListResponse(positions), nil
	})
	if err != nil {
		s.logger.Error("get all positions failed", zap.Error(err))
		return nil, err
	}
	return v.([]PositionResponse), nil
}

func (s *service) ReplaceAll(ctx context.Context, req ReplaceAllPositionsRequest) ([]PositionResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	positions := make([]Position, 0, len(req.Positions))
	for _, rec := range req.Positions {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			continue // blank names are dropped, not an error
		}
		positions = append(positions, Position{
			Name: name,
			Icon: strings.TrimSpace(rec.Icon),
		})
	}

	if err := s.repo.ReplaceAll(ctx, positions); err != nil {
		s.logger.Error("replace all positions persist failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}

	s.logger.Info("replace all positions success",
		zap.String("request_id", rid),
		zap.Int("count", len(positions)),
	)
	return mapToListResponse(positions), nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	return apperror.Wrap(err, apperror.CodeStoreError,
		"The roster workbook could not be read or written",
		http.StatusInternalServerError,
	)
}

func mapToListResponse(positions []Position) []PositionResponse {
	res := make([]PositionResponse, len(positions))
	for i, p := range positions {
		res[i] = PositionResponse{Name: p.Name, Icon: p.Icon}
	}
	return res
}
