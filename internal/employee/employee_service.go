package employee

import (
	"context"
	"strings"
	"time"

	"go-roster/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const employeesAllKey = "employees:all"

// MarkerReader is the slice of the preference module the employee service
// needs: the current-user id used to derive the isMe flag.
type MarkerReader interface {
	Get(ctx context.Context) (string, error)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	ReplaceAll(ctx context.Context, req ReplaceAllEmployeesRequest) (ReplaceAllResult, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, empID string) error
}

type service struct {
	repo   Repository
	marker MarkerReader
	sf     *singleflight.Group
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, marker MarkerReader, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		marker: marker,
		sf:     &singleflight.Group{},
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")

	// Singleflight: whole-table reads are the hot path and every call loads
	// the full sheet, so concurrent lists collapse into one workbook read.
	v, err, _ := s.sf.Do(employeesAllKey, func() (interface{}, error) {
		emps, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		me := ""
		if s.marker != nil {
			if id, markerErr := s.marker.Get(ctx); markerErr == nil {
				me = id
			}
		}

		resp := make([]EmployeeResponse, len(emps))
		for i, emp := range emps {
			resp[i] = mapToResponse(emp, me)
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) ReplaceAll(ctx context.Context, req ReplaceAllEmployeesRequest) (ReplaceAllResult, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("replace all employees requested",
		zap.String("request_id", rid),
		zap.Int("records", len(req.Employees)),
	)

	valid := make([]Employee, 0, len(req.Employees))
	skipped := make([]RecordError, 0)
	seen := make(map[string]struct{}, len(req.Employees))

	for i, rec := range req.Employees {
		empID := strings.TrimSpace(rec.EmpID)
		if empID == "" {
			skipped = append(skipped, RecordError{
				Index:  i,
				Reason: "missing employee id",
			})
			continue
		}

		key := strings.ToLower(empID)
		if _, dup := seen[key]; dup {
			// Duplicate keys poison the whole import: there is no right
			// answer for which row wins, so nothing is written.
			s.logger.Warn("replace all employees rejected: duplicate id",
				zap.String("request_id", rid),
				zap.String("employee_id", empID),
			)
			return ReplaceAllResult{}, duplicateIDError(empID, i)
		}
		seen[key] = struct{}{}

		valid = append(valid, s.recordToEntity(rec, empID))
	}

	if len(valid) == 0 {
		s.logger.Warn("replace all employees rejected: no valid records",
			zap.String("request_id", rid),
			zap.Int("skipped", len(skipped)),
		)
		return ReplaceAllResult{}, noValidRecordsError(skipped)
	}

	if err := s.repo.ReplaceAll(ctx, valid); err != nil {
		s.logger.Error("replace all employees persist failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return ReplaceAllResult{}, mapRepositoryError(err)
	}

	s.logger.Info("replace all employees success",
		zap.String("request_id", rid),
		zap.Int("imported", len(valid)),
		zap.Int("skipped", len(skipped)),
	)
	return ReplaceAllResult{Imported: len(valid), Skipped: skipped}, nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmpID),
	)

	now := s.now()
	emp := Employee{
		EmpID:              strings.TrimSpace(req.EmpID),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Phone:              req.Phone,
		Email:              req.Email,
		Position:           req.Position,
		Status:             defaultStatus(req.Status),
		Note:               req.Note,
		PhotoURL:           req.PhotoURL,
		CreatedDate:        now,
		LastModified:       now,
		IsManager:          req.IsManager,
		IsAssistantManager: req.IsAssistantManager,
	}

	if err := s.repo.Create(ctx, &emp); err != nil {
		s.logger.Warn("create employee persist failed",
			zap.String("request_id", rid),
			zap.String("employee_id", emp.EmpID),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", emp.EmpID),
	)
	return mapToResponse(emp, ""), nil
}

func (s *service) Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("original_id", req.OriginalID),
		zap.String("employee_id", req.Employee.EmpID),
	)

	existing, err := s.repo.FindByID(ctx, req.OriginalID)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed",
			zap.String("request_id", rid),
			zap.String("original_id", req.OriginalID),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empID := strings.TrimSpace(req.Employee.EmpID)
	if empID == "" {
		empID = existing.EmpID // key rename is optional
	}

	emp := s.recordToEntity(req.Employee, empID)
	emp.CreatedDate = existing.CreatedDate // creation timestamp survives updates
	emp.LastModified = s.now()

	if err := s.repo.Update(ctx, req.OriginalID, &emp); err != nil {
		s.logger.Warn("update employee persist failed",
			zap.String("request_id", rid),
			zap.String("original_id", req.OriginalID),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", emp.EmpID),
	)
	return mapToResponse(emp, ""), nil
}

func (s *service) Delete(ctx context.Context, empID string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", empID),
	)

	if err := s.repo.Delete(ctx, empID); err != nil {
		s.logger.Warn("delete employee failed",
			zap.String("request_id", rid),
			zap.String("employee_id", empID),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empID),
	)
	return nil
}

// recordToEntity normalizes one wire record: trimmed key, defaulted status,
// date fields parsed with fallback to now (unparsable timestamps must not
// sink an import).
func (s *service) recordToEntity(rec EmployeeRecord, empID string) Employee {
	return Employee{
		EmpID:              empID,
		FirstName:          rec.FirstName,
		LastName:           rec.LastName,
		Phone:              rec.Phone,
		Email:              rec.Email,
		Position:           rec.Position,
		Status:             defaultStatus(rec.Status),
		Note:               rec.Note,
		PhotoURL:           rec.PhotoURL,
		CreatedDate:        s.parseOrNow(rec.CreatedDate),
		LastModified:       s.parseOrNow(rec.LastModified),
		IsManager:          rec.IsManager,
		IsAssistantManager: rec.IsAssistantManager,
	}
}

func (s *service) parseOrNow(value string) time.Time {
	if t := parseSheetTime(value); !t.IsZero() {
		return t
	}
	return s.now()
}

func defaultStatus(status string) string {
	switch strings.TrimSpace(status) {
	case "":
		return StatusActive
	case StatusInactive:
		return StatusInactive
	case StatusActive:
		return StatusActive
	default:
		// free-text statuses from old sheets pass through untouched
		return strings.TrimSpace(status)
	}
}

func mapToResponse(emp Employee, markerID string) EmployeeResponse {
	return EmployeeResponse{
		EmpID:              emp.EmpID,
		FirstName:          emp.FirstName,
		LastName:           emp.LastName,
		Phone:              emp.Phone,
		Email:              emp.Email,
		Position:           emp.Position,
		Status:             emp.Status,
		Note:               emp.Note,
		PhotoURL:           emp.PhotoURL,
		CreatedDate:        formatSheetTime(emp.CreatedDate),
		LastModified:       formatSheetTime(emp.LastModified),
		IsManager:          emp.IsManager,
		IsAssistantManager: emp.IsAssistantManager,
		IsMe:               markerID != "" && strings.EqualFold(emp.EmpID, markerID),
	}
}
