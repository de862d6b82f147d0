package backup

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	snapshotPrefix = "roster-"
	snapshotExt    = ".xlsx"
	// preRestorePrefix marks the safety copy taken right before a restore
	// overwrites the live workbook.
	preRestorePrefix = "prerestore-"
)

// Snapshotter is what the service needs from the sheet store.
type Snapshotter interface {
	CopyTo(dst string) error
	RestoreFrom(src string) error
}

type BackupInfo struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	SizeBytes int64  `json:"sizeBytes"`
}

type RestoreRequest struct {
	ID string `json:"id" binding:"required"`
}

var (
	ErrBackupNotFound = apperror.New(
		apperror.CodeNotFound,
		"Backup not found",
		http.StatusNotFound,
	)
	ErrInvalidBackupID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid backup id",
		http.StatusBadRequest,
	)
)

//go:generate mockgen -source=backup_service.go -destination=mock/backup_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context) (BackupInfo, error)
	List(ctx context.Context) ([]BackupInfo, error)
	Restore(ctx context.Context, req RestoreRequest) (BackupInfo, error)
}

type service struct {
	store  Snapshotter
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Snapshotter, dir string, logger ...*zap.Logger) Service {
	l := zap.L().Named("backup.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("backup.service")
	}
	return &service{
		store:  store,
		dir:    dir,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context) (BackupInfo, error) {
	rid := contextutil.GetRequestID(ctx)

	id := fmt.Sprintf("%s%s-%s%s",
		snapshotPrefix,
		s.now().Format("20060102T150405"),
		uuid.NewString()[:8],
		snapshotExt,
	)
	dst := filepath.Join(s.dir, id)

	if err := s.store.CopyTo(dst); err != nil {
		s.logger.Error("create backup failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return BackupInfo{}, mapStoreError(err)
	}

	info, err := s.describe(id)
	if err != nil {
		return BackupInfo{}, mapStoreError(err)
	}

	s.logger.Info("backup created",
		zap.String("request_id", rid),
		zap.String("backup_id", id),
	)
	return info, nil
}

func (s *service) List(_ context.Context) ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, mapStoreError(err)
	}

	infos := make([]BackupInfo, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		info, err := s.describe(name)
		if err != nil {
			s.logger.Warn("skipping unreadable backup", zap.String("backup_id", name), zap.Error(err))
			continue
		}
		infos = append(infos, info)
	}

	// newest first
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt > infos[j].CreatedAt
	})
	return infos, nil
}

func (s *service) Restore(ctx context.Context, req RestoreRequest) (BackupInfo, error) {
	rid := contextutil.GetRequestID(ctx)

	id := req.ID
	// the id is a file name; anything path-like is hostile
	if id != filepath.Base(id) || !strings.HasPrefix(id, snapshotPrefix) || !strings.HasSuffix(id, snapshotExt) {
		return BackupInfo{}, ErrInvalidBackupID
	}

	src := filepath.Join(s.dir, id)
	info, err := s.describe(id)
	if err != nil {
		if os.IsNotExist(err) {
			return BackupInfo{}, ErrBackupNotFound
		}
		return BackupInfo{}, mapStoreError(err)
	}

	// safety copy of the live workbook before overwriting it
	safety := filepath.Join(s.dir, fmt.Sprintf("%s%s%s",
		preRestorePrefix, s.now().Format("20060102T150405"), snapshotExt))
	if err := s.store.CopyTo(safety); err != nil {
		s.logger.Error("pre-restore snapshot failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return BackupInfo{}, mapStoreError(err)
	}

	if err := s.store.RestoreFrom(src); err != nil {
		s.logger.Error("restore failed",
			zap.String("request_id", rid),
			zap.String("backup_id", id),
			zap.Error(err),
		)
		return BackupInfo{}, mapStoreError(err)
	}

	s.logger.Info("backup restored",
		zap.String("request_id", rid),
		zap.String("backup_id", id),
	)
	return info, nil
}

func (s *service) describe(id string) (BackupInfo, error) {
	st, err := os.Stat(filepath.Join(s.dir, id))
	if err != nil {
		return BackupInfo{}, err
	}
	return BackupInfo{
		ID:        id,
		CreatedAt: st.ModTime().UTC().Format(time.RFC3339),
		SizeBytes: st.Size(),
	}, nil
}

func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	return apperror.Wrap(err, apperror.CodeStoreError,
		"Backup storage could not be read or written",
		http.StatusInternalServerError,
	)
}
