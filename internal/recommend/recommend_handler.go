package recommend

import (
	"net/http"

	"topcv/internal/shared/apperror"
	"topcv/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 5 MB, same ceiling the resume upload enforces.
const maxCVBytes = 5 << 20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("recommend.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recommend.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("recommend request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Recommend(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Recommend(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ScreenCV(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	role := c.GetString("role")

	jobID := c.PostForm("job_id")
	if jobID == "" {
		httpErr := apperror.ToHTTP(apperror.RequiredField("job_id"))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	fileHeader, err := c.FormFile("cv_file")
	if err != nil {
		httpErr := apperror.ToHTTP(apperror.RequiredField("cv_file"))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	if fileHeader.Size > maxCVBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, apperror.CodeInvalidInput, "file exceeds the 5MB limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer file.Close()

	resp, err := h.service.ScreenCV(c.Request.Context(), userID, role, jobID, fileHeader.Filename, file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
