package events

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigFastest

const heartbeatInterval = 30 * time.Second

type Handler struct{ bus *Bus }

func RegisterRoutes(r gin.IRoutes, bus *Bus) {
	h := &Handler{bus: bus}
	r.GET("/api-events", h.Stream)
}

// @Summary  Change notifications (Server-Sent Events)
// @Tags     events
// @Produce  text/event-stream
// @Success  200
// @Router   /api-events [get]
func (h *Handler) Stream(c *gin.Context) {
	ch, cancel := h.bus.Subscribe(64)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			c.SSEvent("ping", "")
			return true
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			payload, err := json.MarshalToString(ev)
			if err != nil {
				return true
			}
			c.SSEvent(string(ev.Topic), payload)
			return true
		}
	})
}
