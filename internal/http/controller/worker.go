package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"examflow/internal/domain"
	"examflow/internal/http/dto"
	"examflow/internal/http/resp"
	"examflow/internal/model"
)

func (h *Handler) Messages(c *gin.Context) {
	var msg model.ScheduleMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}

	sent, err := h.bridge.Receive(c.Request.Context(), msg)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownMessageType):
			c.JSON(http.StatusAccepted, dto.StatusResponse{Code: resp.CodeIgnored, Message: "message type ignored"})
		case errors.Is(err, domain.ErrUnsupportedLocale):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "lang must be one of: ko, en, jp, cn, es"})
		default:
			h.log.Error("schedule message failed", zap.Int("exams", len(msg.Exams)), zap.Error(err))
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to apply schedule"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ScheduleResponse{Code: resp.CodeOK, Sent: sent})
}

func (h *Handler) Permission(c *gin.Context) {
	var req dto.PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}
	p, err := h.bridge.SetPermission(req.Permission)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "permission must be one of: granted, denied, default"})
		return
	}
	c.JSON(http.StatusOK, dto.PermissionResponse{Permission: string(p)})
}

func (h *Handler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.bridge.State())
}

func (h *Handler) Click(c *gin.Context) {
	var req dto.ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}
	c.JSON(http.StatusOK, h.bridge.Click(c.Request.Context(), req.Tag))
}

func (h *Handler) Lifecycle(c *gin.Context) {
	c.JSON(http.StatusOK, dto.LifecycleResponse{
		State:     string(h.lifecycle.State()),
		Namespace: h.lifecycle.Namespace(),
	})
}

func (h *Handler) LifecycleUpdate(c *gin.Context) {
	if err := h.lifecycle.Update(c.Request.Context()); err != nil {
		if errors.Is(err, domain.ErrAssetFetch) {
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{Code: resp.CodeBadGateway, Message: err.Error()})
			return
		}
		h.log.Error("lifecycle update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "lifecycle update failed"})
		return
	}
	h.Lifecycle(c)
}
