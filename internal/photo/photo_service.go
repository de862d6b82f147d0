package photo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-roster/internal/employee"
	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxPhotoSize caps uploads; roster photos are thumbnails, not originals.
const MaxPhotoSize = 5 << 20

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
}

// EmployeeDirectory is the slice of the employee module the photo service
// uses: the full roster (to know which files are referenced) and the photo
// URL column.
type EmployeeDirectory interface {
	FindAll(ctx context.Context) ([]employee.Employee, error)
	FindByID(ctx context.Context, empID string) (*employee.Employee, error)
	SetPhotoURL(ctx context.Context, empID, photoURL string) error
}

type PhotoResponse struct {
	EmpID    string `json:"empId"`
	PhotoURL string `json:"photoUrl"`
}

var (
	ErrUnsupportedFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Unsupported photo format, expected png, jpeg or webp",
		http.StatusBadRequest,
	)
	ErrPhotoTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Photo exceeds the size limit",
		http.StatusBadRequest,
	)
	ErrEmployeeUnknown = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
)

type Service interface {
	Upload(ctx context.Context, empID, filename string, size int64, r io.Reader) (PhotoResponse, error)
	CleanupStale(ctx context.Context, ttl time.Duration) (int, error)
}

type service struct {
	directory EmployeeDirectory
	dir       string
	baseURL   string
	logger    *zap.Logger
}

// NewService stores photos under dir and serves them below baseURL
// (e.g. "/photos").
func NewService(directory EmployeeDirectory, dir, baseURL string, logger ...*zap.Logger) Service {
	l := zap.L().Named("photo.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("photo.service")
	}
	return &service{
		directory: directory,
		dir:       dir,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    l,
	}
}

func (s *service) Upload(ctx context.Context, empID, filename string, size int64, r io.Reader) (PhotoResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return PhotoResponse{}, ErrUnsupportedFormat
	}
	if size > MaxPhotoSize {
		return PhotoResponse{}, ErrPhotoTooLarge
	}

	if _, err := s.directory.FindByID(ctx, empID); err != nil {
		s.logger.Warn("photo upload rejected: unknown employee",
			zap.String("request_id", rid),
			zap.String("employee_id", empID),
		)
		return PhotoResponse{}, ErrEmployeeUnknown
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return PhotoResponse{}, mapStorageError(err)
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(s.dir, name)

	out, err := os.Create(dst)
	if err != nil {
		return PhotoResponse{}, mapStorageError(err)
	}
	// LimitReader + 1: a stream one byte over the cap is detectable
	written, err := io.Copy(out, io.LimitReader(r, MaxPhotoSize+1))
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst)
		return PhotoResponse{}, mapStorageError(err)
	}
	if written > MaxPhotoSize {
		_ = os.Remove(dst)
		return PhotoResponse{}, ErrPhotoTooLarge
	}

	url := s.baseURL + "/" + name
	if err := s.directory.SetPhotoURL(ctx, empID, url); err != nil {
		_ = os.Remove(dst)
		s.logger.Error("photo upload: stamping url failed",
			zap.String("request_id", rid),
			zap.String("employee_id", empID),
			zap.Error(err),
		)
		return PhotoResponse{}, mapStorageError(err)
	}

	s.logger.Info("photo uploaded",
		zap.String("request_id", rid),
		zap.String("employee_id", empID),
		zap.String("file", name),
	)
	return PhotoResponse{EmpID: empID, PhotoURL: url}, nil
}

// CleanupStale removes photo files older than ttl that no employee row
// references anymore. Best effort: an unreadable roster aborts, an
// undeletable file is only logged.
func (s *service) CleanupStale(ctx context.Context, ttl time.Duration) (int, error) {
	emps, err := s.directory.FindAll(ctx)
	if err != nil {
		return 0, mapStorageError(err)
	}

	referenced := make(map[string]struct{}, len(emps))
	for _, emp := range emps {
		if emp.PhotoURL == "" {
			continue
		}
		referenced[filepath.Base(emp.PhotoURL)] = struct{}{}
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, mapStorageError(err)
	}

	cutoff := time.Now().Add(-ttl)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := referenced[entry.Name()]; ok {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			s.logger.Warn("stale photo not removed",
				zap.String("file", entry.Name()),
				zap.Error(err),
			)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("stale photos removed", zap.Int("count", removed))
	}
	return removed, nil
}

func mapStorageError(err error) error {
	if err == nil {
		return nil
	}
	return apperror.Wrap(err, apperror.CodeStoreError,
		fmt.Sprintf("Photo storage error: %v", errKind(err)),
		http.StatusInternalServerError,
	)
}

// errKind keeps raw paths out of user-facing messages.
func errKind(err error) string {
	switch {
	case os.IsNotExist(err):
		return "missing file"
	case os.IsPermission(err):
		return "permission denied"
	default:
		return "io failure"
	}
}
