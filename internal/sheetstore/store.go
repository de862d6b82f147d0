package sheetstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Sentinel errors shared by every repository that scans workbook rows.
var (
	ErrRowNotFound  = errors.New("sheetstore: row not found")
	ErrDuplicateKey = errors.New("sheetstore: duplicate key")
)

// Store owns the roster workbook. Every repository goes through one Store
// handle, and the mutex is the only thing serializing access to the file
// (satu file, satu proses).
type Store struct {
	mu     sync.Mutex
	path   string
	file   *excelize.File
	logger *zap.Logger
}

// Open loads the workbook at path, creating and initializing it when it does
// not exist yet. Existing workbooks get their sheets and the Employees
// header verified; a header that drifted from the schema is migrated by
// matching recognized columns by name.
func Open(path string, logger ...*zap.Logger) (*Store, error) {
	l := zap.L().Named("sheetstore")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sheetstore")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create workbook dir: %w", err)
	}

	s := &Store{path: path, logger: l}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.initWorkbook(); err != nil {
			return nil, err
		}
		l.Info("workbook created", zap.String("path", path))
		return s, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	s.file = f

	if err := s.ensureSchema(); err != nil {
		return nil, err
	}

	l.Info("workbook opened", zap.String("path", path))
	return s, nil
}

func (s *Store) initWorkbook() error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetEmployees)
	for _, sheet := range []string{SheetPositions, SheetSettings} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
	}
	for _, sheet := range []string{SheetEmployees, SheetPositions, SheetSettings} {
		if err := f.SetSheetRow(sheet, "A1", rowToAny(headerFor(sheet))); err != nil {
			return fmt.Errorf("write %s header: %w", sheet, err)
		}
	}
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save new workbook: %w", err)
	}
	s.file = f
	return nil
}

// ensureSchema makes the three sheets exist and migrates the Employees
// header when it does not match exactly.
func (s *Store) ensureSchema() error {
	dirty := false

	for _, sheet := range []string{SheetEmployees, SheetPositions, SheetSettings} {
		idx, err := s.file.GetSheetIndex(sheet)
		if err != nil {
			return fmt.Errorf("lookup sheet %s: %w", sheet, err)
		}
		if idx < 0 {
			if _, err := s.file.NewSheet(sheet); err != nil {
				return fmt.Errorf("create missing sheet %s: %w", sheet, err)
			}
			if err := s.file.SetSheetRow(sheet, "A1", rowToAny(headerFor(sheet))); err != nil {
				return fmt.Errorf("write %s header: %w", sheet, err)
			}
			s.logger.Warn("missing sheet reinitialized", zap.String("sheet", sheet))
			dirty = true
		}
	}

	migrated, err := s.migrateEmployeeHeader()
	if err != nil {
		return err
	}

	if dirty || migrated {
		if err := s.file.Save(); err != nil {
			return fmt.Errorf("save migrated workbook: %w", err)
		}
	}
	return nil
}

// migrateEmployeeHeader rebuilds the Employees sheet when the header row
// drifted. Recognized columns (matched by normalized name) keep their data,
// unknown columns are dropped, missing ones come back empty.
func (s *Store) migrateEmployeeHeader() (bool, error) {
	rows, err := s.file.GetRows(SheetEmployees)
	if err != nil {
		return false, fmt.Errorf("read employees sheet: %w", err)
	}
	if len(rows) > 0 && headerMatches(rows[0], employeeHeader) {
		return false, nil
	}

	var remapped [][]string
	if len(rows) > 1 {
		oldIndex := make(map[string]int, len(rows[0]))
		for i, name := range rows[0] {
			oldIndex[normalizeHeader(name)] = i
		}
		for _, old := range rows[1:] {
			fresh := make([]string, len(employeeHeader))
			for col, name := range employeeHeader {
				if i, ok := oldIndex[normalizeHeader(name)]; ok {
					fresh[col] = CellValue(old, i)
				}
			}
			remapped = append(remapped, fresh)
		}
	}

	if err := s.resetSheet(SheetEmployees, remapped); err != nil {
		return false, err
	}
	s.logger.Warn("employees header migrated",
		zap.Int("rows_carried", len(remapped)),
	)
	return true, nil
}

// Path returns the workbook location on disk.
func (s *Store) Path() string {
	return s.path
}

// Ping reports whether the backing file is still reachable.
func (s *Store) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("workbook unreachable: %w", err)
	}
	return nil
}

// Rows returns the data rows of a sheet, header excluded.
func (s *Store) Rows(sheet string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

// ReplaceRows rewrites a sheet's data rows wholesale and persists.
func (s *Store) ReplaceRows(sheet string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.resetSheet(sheet, rows); err != nil {
		return err
	}
	return s.save()
}

// AppendRow adds one data row at the bottom of a sheet and persists.
func (s *Store) AppendRow(sheet string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.file.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	next := len(rows) + 1
	if next < 2 {
		next = 2 // never clobber the header
	}
	cell, err := excelize.CoordinatesToCellName(1, next)
	if err != nil {
		return fmt.Errorf("compute cell: %w", err)
	}
	if err := s.file.SetSheetRow(sheet, cell, rowToAny(row)); err != nil {
		return fmt.Errorf("append row to %s: %w", sheet, err)
	}
	return s.save()
}

// UpdateRow overwrites data row n (1-based, header excluded) and persists.
func (s *Store) UpdateRow(sheet string, n int, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cell, err := excelize.CoordinatesToCellName(1, n+1)
	if err != nil {
		return fmt.Errorf("compute cell: %w", err)
	}
	if err := s.file.SetSheetRow(sheet, cell, rowToAny(row)); err != nil {
		return fmt.Errorf("update row in %s: %w", sheet, err)
	}
	return s.save()
}

// DeleteRow removes data row n (1-based, header excluded) and persists.
func (s *Store) DeleteRow(sheet string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.file.RemoveRow(sheet, n+1); err != nil {
		return fmt.Errorf("delete row in %s: %w", sheet, err)
	}
	return s.save()
}

// CopyTo writes a consistent snapshot of the workbook to dst.
func (s *Store) CopyTo(dst string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, err := s.file.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("serialize workbook: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := os.WriteFile(dst, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// RestoreFrom swaps the live workbook with the file at src and reloads.
// Schema checks run again, so a stale snapshot also goes through the
// migrate path.
func (s *Store) RestoreFrom(src string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if err := s.file.Close(); err != nil {
		s.logger.Warn("close workbook before restore failed", zap.Error(err))
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("overwrite workbook: %w", err)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("reopen workbook: %w", err)
	}
	s.file = f
	return s.ensureSchema()
}

// Close releases the underlying workbook handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// resetSheet rewrites header + rows from scratch. Caller holds the lock
// (or is still single-threaded during Open).
func (s *Store) resetSheet(sheet string, rows [][]string) error {
	if err := s.file.DeleteSheet(sheet); err != nil {
		return fmt.Errorf("reset sheet %s: %w", sheet, err)
	}
	if _, err := s.file.NewSheet(sheet); err != nil {
		return fmt.Errorf("recreate sheet %s: %w", sheet, err)
	}
	if err := s.file.SetSheetRow(sheet, "A1", rowToAny(headerFor(sheet))); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("compute cell: %w", err)
		}
		if err := s.file.SetSheetRow(sheet, cell, rowToAny(row)); err != nil {
			return fmt.Errorf("write row to %s: %w", sheet, err)
		}
	}
	return nil
}

func (s *Store) save() error {
	if err := s.file.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func rowToAny(row []string) *[]interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return &out
}
