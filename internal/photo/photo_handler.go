package photo

import (
	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/contextutil"
	"go-roster/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the one endpoint that cannot ride the action dispatcher:
// photo upload is multipart, not JSON.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("photo.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("photo.handler")
	}
	return &Handler{service: service, logger: l}
}

// Upload handles POST /api/v1/photos with fields `empId` and `file`.
// Same always-200 envelope as the action endpoint.
func (h *Handler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	log := contextutil.GetLogger(ctx, h.logger)

	empID := c.PostForm("empId")
	if empID == "" {
		response.Error(c, apperror.CodeInvalidInput, "Emp Id is required", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("photo upload without file", zap.Error(err))
		response.Error(c, apperror.CodeInvalidInput, "A photo file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("photo upload: open multipart file failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.ErrInternal)
		response.Error(c, httpErr.Code, httpErr.Message, nil)
		return
	}
	defer file.Close()

	resp, err := h.service.Upload(ctx, empID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		log.Warn("photo upload failed",
			zap.String("employee_id", empID),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, resp)
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/photos", h.Upload)
}
