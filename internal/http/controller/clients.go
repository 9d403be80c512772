package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"examflow/internal/http/dto"
	"examflow/internal/http/resp"
	"examflow/internal/model"
	"examflow/internal/sse"
)

// Clients streams worker events to one page until it disconnects.
func (h *Handler) Clients(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "url required"})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.log.Error("streaming unsupported", zap.String("url", pageURL))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "streaming unsupported"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	client := &sse.Client{
		Info: model.Client{ID: uuid.NewString(), Type: model.ClientTypeWindow, URL: pageURL},
		Ch:   make(chan model.Event, 16),
	}
	h.hub.Register(client)
	defer h.hub.Unregister(client)
	h.log.Debug("client connected", zap.String("client_id", client.Info.ID), zap.String("url", pageURL))

	if _, err := fmt.Fprintf(c.Writer, ": connected %s\n\n", client.Info.ID); err != nil {
		return
	}
	flusher.Flush()

	heartbeat := time.NewTicker(h.heartbeat())
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-h.hub.Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(c.Writer, ": ping\n\n"); err != nil {
				h.log.Error("heartbeat write failed", zap.String("client_id", client.Info.ID), zap.Error(err))
				return
			}
			flusher.Flush()
		case event, ok := <-client.Ch:
			if !ok {
				return
			}
			if err := writeEvent(c.Writer, event); err != nil {
				h.log.Error("write event failed", zap.String("client_id", client.Info.ID), zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func (h *Handler) heartbeat() time.Duration {
	if h.cfg.SSEHeartbeat > 0 {
		return h.cfg.SSEHeartbeat
	}
	return 15 * time.Second
}

// writeEvent frames an event as "event: <type>" with the JSON data payload,
// so pages can addEventListener per type.
func writeEvent(w http.ResponseWriter, event model.Event) error {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
	return err
}
