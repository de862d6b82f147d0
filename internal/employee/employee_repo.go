package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-roster/internal/sheetstore"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, empID string) (*Employee, error)
	Create(ctx context.Context, emp *Employee) error
	Update(ctx context.Context, originalID string, emp *Employee) error
	Delete(ctx context.Context, empID string) error
	ReplaceAll(ctx context.Context, emps []Employee) error
	SetPhotoURL(ctx context.Context, empID, photoURL string) error
}

type repository struct {
	store *sheetstore.Store
}

func NewRepository(store *sheetstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) FindAll(_ context.Context) ([]Employee, error) {
	rows, err := r.store.Rows(sheetstore.SheetEmployees)
	if err != nil {
		return nil, err
	}

	emps := make([]Employee, 0, len(rows))
	for _, row := range rows {
		if sheetstore.CellValue(row, sheetstore.ColEmpID) == "" {
			continue // rows without a key are invisible
		}
		emps = append(emps, fromRow(row))
	}
	return emps, nil
}

func (r *repository) FindByID(_ context.Context, empID string) (*Employee, error) {
	_, emp, err := r.findRow(empID)
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (r *repository) Create(_ context.Context, emp *Employee) error {
	if _, _, err := r.findRow(emp.EmpID); err == nil {
		return fmt.Errorf("employee %q: %w", emp.EmpID, sheetstore.ErrDuplicateKey)
	}
	return r.store.AppendRow(sheetstore.SheetEmployees, toRow(emp))
}

func (r *repository) Update(_ context.Context, originalID string, emp *Employee) error {
	rowIdx, _, err := r.findRow(originalID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(emp.EmpID, originalID) {
		if _, _, err := r.findRow(emp.EmpID); err == nil {
			return fmt.Errorf("employee %q: %w", emp.EmpID, sheetstore.ErrDuplicateKey)
		}
	}
	return r.store.UpdateRow(sheetstore.SheetEmployees, rowIdx, toRow(emp))
}

func (r *repository) Delete(_ context.Context, empID string) error {
	rowIdx, _, err := r.findRow(empID)
	if err != nil {
		return err
	}
	return r.store.DeleteRow(sheetstore.SheetEmployees, rowIdx)
}

func (r *repository) ReplaceAll(_ context.Context, emps []Employee) error {
	rows := make([][]string, len(emps))
	for i := range emps {
		rows[i] = toRow(&emps[i])
	}
	return r.store.ReplaceRows(sheetstore.SheetEmployees, rows)
}

func (r *repository) SetPhotoURL(_ context.Context, empID, photoURL string) error {
	rowIdx, emp, err := r.findRow(empID)
	if err != nil {
		return err
	}
	emp.PhotoURL = photoURL
	emp.LastModified = time.Now().UTC()
	return r.store.UpdateRow(sheetstore.SheetEmployees, rowIdx, toRow(emp))
}

// findRow scans for an employee by trimmed, case-insensitive key and
// returns its 1-based data row index. Rows with blank keys still occupy an
// index, so the scan walks the raw rows.
func (r *repository) findRow(empID string) (int, *Employee, error) {
	key := strings.TrimSpace(empID)
	if key == "" {
		return 0, nil, fmt.Errorf("empty employee id: %w", sheetstore.ErrRowNotFound)
	}

	rows, err := r.store.Rows(sheetstore.SheetEmployees)
	if err != nil {
		return 0, nil, err
	}
	for i, row := range rows {
		if strings.EqualFold(sheetstore.CellValue(row, sheetstore.ColEmpID), key) {
			emp := fromRow(row)
			return i + 1, &emp, nil
		}
	}
	return 0, nil, fmt.Errorf("employee %q: %w", key, sheetstore.ErrRowNotFound)
}

// --- row codec ---

func fromRow(row []string) Employee {
	status := sheetstore.CellValue(row, sheetstore.ColStatus)
	if status == "" {
		status = StatusActive
	}
	return Employee{
		EmpID:              sheetstore.CellValue(row, sheetstore.ColEmpID),
		FirstName:          sheetstore.CellValue(row, sheetstore.ColFirstName),
		LastName:           sheetstore.CellValue(row, sheetstore.ColLastName),
		Phone:              sheetstore.CellValue(row, sheetstore.ColPhone),
		Email:              sheetstore.CellValue(row, sheetstore.ColEmail),
		Position:           sheetstore.CellValue(row, sheetstore.ColPosition),
		Status:             status,
		Note:               sheetstore.CellValue(row, sheetstore.ColNote),
		PhotoURL:           sheetstore.CellValue(row, sheetstore.ColPhotoURL),
		CreatedDate:        parseSheetTime(sheetstore.CellValue(row, sheetstore.ColCreatedDate)),
		LastModified:       parseSheetTime(sheetstore.CellValue(row, sheetstore.ColLastModified)),
		IsManager:          parseSheetBool(sheetstore.CellValue(row, sheetstore.ColIsManager)),
		IsAssistantManager: parseSheetBool(sheetstore.CellValue(row, sheetstore.ColIsAssistantManager)),
	}
}

func toRow(emp *Employee) []string {
	return []string{
		strings.TrimSpace(emp.EmpID),
		strings.TrimSpace(emp.FirstName),
		strings.TrimSpace(emp.LastName),
		strings.TrimSpace(emp.Phone),
		strings.TrimSpace(emp.Email),
		strings.TrimSpace(emp.Position),
		emp.Status,
		emp.Note,
		strings.TrimSpace(emp.PhotoURL),
		formatSheetTime(emp.CreatedDate),
		formatSheetTime(emp.LastModified),
		formatSheetBool(emp.IsManager),
		formatSheetBool(emp.IsAssistantManager),
	}
}

var sheetTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseSheetTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range sheetTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatSheetTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseSheetBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func formatSheetBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
