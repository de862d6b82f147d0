package preference

import (
	"context"
	"net/http"
	"strings"

	"go-roster/internal/employee"
	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/contextutil"

	"go.uber.org/zap"
)

// EmployeeDirectory is the slice of the employee module needed here: the
// marker must point at a real roster row.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, empID string) (*employee.Employee, error)
}

type MarkerResponse struct {
	EmpID string `json:"empId"`
}

type SetMarkerRequest struct {
	EmpID string `json:"empId" binding:"required"`
}

//go:generate mockgen -source=preference_service.go -destination=mock/preference_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context) (MarkerResponse, error)
	Set(ctx context.Context, req SetMarkerRequest) (MarkerResponse, error)
	Clear(ctx context.Context) (MarkerResponse, error)
}

type service struct {
	repo      Repository
	directory EmployeeDirectory
	logger    *zap.Logger
}

func NewService(repo Repository, directory EmployeeDirectory, logger ...*zap.Logger) Service {
	l := zap.L().Named("preference.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("preference.service")
	}
	return &service{repo: repo, directory: directory, logger: l}
}

func (s *service) Get(ctx context.Context) (MarkerResponse, error) {
	empID, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("get marker failed", zap.Error(err))
		return MarkerResponse{}, mapRepositoryError(err)
	}
	return MarkerResponse{EmpID: empID}, nil
}

func (s *service) Set(ctx context.Context, req SetMarkerRequest) (MarkerResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	empID := strings.TrimSpace(req.EmpID)

	if s.directory != nil {
		if _, err := s.directory.FindByID(ctx, empID); err != nil {
			s.logger.Warn("set marker rejected: unknown employee",
				zap.String("request_id", rid),
				zap.String("employee_id", empID),
			)
			return MarkerResponse{}, ErrMarkerEmployeeUnknown
		}
	}

	if err := s.repo.Set(ctx, empID); err != nil {
		s.logger.Error("set marker persist failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return MarkerResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("marker set",
		zap.String("request_id", rid),
		zap.String("employee_id", empID),
	)
	return MarkerResponse{EmpID: empID}, nil
}

func (s *service) Clear(ctx context.Context) (MarkerResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Error("clear marker failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return MarkerResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("marker cleared", zap.String("request_id", rid))
	return MarkerResponse{EmpID: ""}, nil
}

var ErrMarkerEmployeeUnknown = apperror.New(
	apperror.CodeNotFound,
	"Marker does not match any employee",
	http.StatusNotFound,
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	return apperror.Wrap(err, apperror.CodeStoreError,
		"The roster workbook could not be read or written",
		http.StatusInternalServerError,
	)
}
