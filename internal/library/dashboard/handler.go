package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/platform/httpx"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/api-dashboard", h.Get)
}

// @Summary  Dashboard statistics
// @Tags     dashboard
// @Produce  json
// @Param    as_of  query  string  false  "day to evaluate (YYYY-MM-DD)"  Format(date)
// @Success  200  {object}  dashboard.Stats
// @Router   /api-dashboard [get]
func (h *Handler) Get(c *gin.Context) {
	asOf, ok := httpx.QueryDate(c, "as_of")
	if !ok {
		return
	}
	st, err := h.svc.Stats(c.Request.Context(), asOf)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
