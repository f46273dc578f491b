package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maintdesk/workorder-service/internal/errs"
	"github.com/maintdesk/workorder-service/internal/model"
	"github.com/maintdesk/workorder-service/internal/service"
)

type VendorHandler struct {
	svc *service.VendorService
}

func NewVendorHandler(svc *service.VendorService) *VendorHandler {
	return &VendorHandler{svc: svc}
}

type createVendorRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Website  string `json:"website"`
	Notes    string `json:"notes"`
}

func (h *VendorHandler) Create(c *gin.Context) {
	var req createVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: name is required"})
		return
	}
	v := &model.Vendor{
		Name:     req.Name,
		Category: req.Category,
		Phone:    req.Phone,
		Email:    req.Email,
		Website:  req.Website,
		Notes:    req.Notes,
	}
	if err := h.svc.Create(c.Request.Context(), v); err != nil {
		if errors.Is(err, errs.ErrVendorName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create vendor"})
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *VendorHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list vendors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"vendors": items,
		"total":   len(items),
	})
}

func (h *VendorHandler) Get(c *gin.Context) {
	v, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, errs.ErrVendorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *VendorHandler) Update(c *gin.Context) {
	var patch service.VendorPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	v, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrVendorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
		case errors.Is(err, errs.ErrVendorName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *VendorHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, errs.ErrVendorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
