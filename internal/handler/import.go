package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maintdesk/workorder-service/internal/errs"
	"github.com/maintdesk/workorder-service/internal/service"
)

type ImportHandler struct {
	svc *service.ImportService
}

func NewImportHandler(svc *service.ImportService) *ImportHandler {
	return &ImportHandler{svc: svc}
}

// Preview принимает multipart-поле "file" (xlsx/xls/csv), парсит книгу и
// возвращает сводку партии. Хранилище не меняется.
func (h *ImportHandler) Preview(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `multipart field "file" is required`})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer f.Close()

	summary, err := h.svc.Preview(c.Request.Context(), f, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrImportBusy):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, errs.ErrNoExternalID):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, summary)
}

type commitRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func (h *ImportHandler) Commit(c *gin.Context) {
	var req commitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: mode is required"})
		return
	}
	count, err := h.svc.Commit(c.Request.Context(), req.Mode)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUnknownImportMode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, errs.ErrNoPreview):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": req.Mode, "work_orders": count})
}

func (h *ImportHandler) Cancel(c *gin.Context) {
	h.svc.Cancel()
	c.Status(http.StatusNoContent)
}
