package app

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"

	"go-roster/internal/api"
	"go-roster/internal/backup"
	"go-roster/internal/employee"
	"go-roster/internal/middleware"
	"go-roster/internal/photo"
	"go-roster/internal/position"
	"go-roster/internal/preference"
	"go-roster/internal/sheetstore"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(router *gin.Engine, store *sheetstore.Store, cfg Config) {
	dispatcher := api.NewDispatcher()

	// Repositories share the one store handle; its mutex is the only
	// write coordination the workbook gets.
	employeeRepo := employee.NewRepository(store)
	positionRepo := position.NewRepository(store)
	preferenceRepo := preference.NewRepository(store)

	employeeService := employee.NewService(employeeRepo, preferenceRepo)
	positionService := position.NewService(positionRepo)
	preferenceService := preference.NewService(preferenceRepo, employeeRepo)
	backupService := backup.NewService(store, cfg.BackupDir)
	photoService := photo.NewService(employeeRepo, cfg.PhotoDir, cfg.PhotoBaseURL)

	employee.RegisterActions(dispatcher, employee.NewHandler(employeeService))
	position.RegisterActions(dispatcher, position.NewHandler(positionService))
	preference.RegisterActions(dispatcher, preference.NewHandler(preferenceService))
	backup.RegisterActions(dispatcher, backup.NewHandler(backupService))

	// sheet.url: the "open the spreadsheet" link in the editor UI
	dispatcher.Register("sheet.url", func(_ context.Context, _ json.RawMessage) (any, error) {
		abs, err := filepath.Abs(store.Path())
		if err != nil {
			abs = store.Path()
		}
		return map[string]string{"path": abs, "url": "file://" + abs}, nil
	})

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.ContextLogger(zap.L()))
	apiGroup.Use(middleware.RateLimitByIP(20, 40))
	{
		apiGroup.POST("/actions", dispatcher.Handle)
		photo.RegisterRoutes(apiGroup, photo.NewHandler(photoService))
	}

	router.Static("/photos", cfg.PhotoDir)

	router.GET("/healthz", func(c *gin.Context) {
		if err := store.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "workbook": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
