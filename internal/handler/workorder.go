package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maintdesk/workorder-service/internal/errs"
	"github.com/maintdesk/workorder-service/internal/model"
	"github.com/maintdesk/workorder-service/internal/service"
)

type WorkOrderHandler struct {
	svc *service.WorkOrderService
}

func NewWorkOrderHandler(svc *service.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{svc: svc}
}

type createWorkOrderRequest struct {
	Title       string `json:"title" binding:"required"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Notes       string `json:"notes"`
	Description string `json:"description"`
}

func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req createWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: title is required"})
		return
	}
	wo := &model.WorkOrder{
		Title:    req.Title,
		Status:   model.WorkOrderStatus(req.Status),
		Priority: model.Priority(req.Priority),
		Notes:    req.Notes,
	}
	if req.Description != "" {
		wo.Description = &req.Description
	}
	if err := h.svc.Create(c.Request.Context(), wo); err != nil {
		if errors.Is(err, errs.ErrInvalidStatus) || errors.Is(err, errs.ErrInvalidPriority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create work order"})
		return
	}
	c.JSON(http.StatusCreated, wo)
}

func (h *WorkOrderHandler) Get(c *gin.Context) {
	w, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, errs.ErrWorkOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "work order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WorkOrderHandler) List(c *gin.Context) {
	filter := service.WorkOrderFilter{
		Query:          c.Query("q"),
		Status:         model.WorkOrderStatus(c.Query("status")),
		Priority:       model.Priority(c.Query("priority")),
		TrackingStatus: c.Query("tracking_status"),
		RespOrg:        c.Query("resp_org"),
	}
	items, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list work orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"work_orders": items,
		"total":       total,
	})
}

func (h *WorkOrderHandler) FilterOptions(c *gin.Context) {
	tracking, respOrgs, err := h.svc.FilterOptions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to collect filter options"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tracking_statuses": tracking,
		"resp_orgs":         respOrgs,
	})
}

func (h *WorkOrderHandler) Update(c *gin.Context) {
	var patch service.WorkOrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if patch.Title == nil && patch.Notes == nil && patch.Priority == nil && patch.Description == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no changes"})
		return
	}
	w, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrWorkOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "work order not found"})
		case errors.Is(err, errs.ErrInvalidPriority):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, w)
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *WorkOrderHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: status is required"})
		return
	}
	w, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), model.WorkOrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrWorkOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "work order not found"})
		case errors.Is(err, errs.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WorkOrderHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, errs.ErrWorkOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "work order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkOrderHandler) Clear(c *gin.Context) {
	if err := h.svc.ClearAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear work orders"})
		return
	}
	c.Status(http.StatusNoContent)
}
