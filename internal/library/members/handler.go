package members

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library-backend/internal/platform/httpx"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/api-members", h.Get)
	r.POST("/api-members", h.Create)
	r.PUT("/api-members", h.Update)
	r.DELETE("/api-members", h.Delete)
}

// @Summary  Get one member (id) or list members
// @Tags     members
// @Produce  json
// @Param    id      query  string  false  "member id"
// @Param    search  query  string  false  "name/email"
// @Param    active  query  bool    false  "filter by is_active"
// @Success  200  {array}  members.MemberResponse
// @Router   /api-members [get]
func (h *Handler) Get(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		res, err := h.svc.Get(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
		return
	}

	f := Filter{Search: c.Query("search")}
	if v := c.Query("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			httpx.Invalid(c, "active must be a boolean")
			return
		}
		f.Active = &b
	}
	list, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary  Register a member
// @Tags     members
// @Accept   json
// @Produce  json
// @Param    body  body  members.CreateMemberRequest  true  "member"
// @Success  201  {object}  members.MemberResponse
// @Failure  409  {object}  httpx.ErrorBody
// @Router   /api-members [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Invalid(c, httpx.BindMessage(err))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary  Update a member
// @Tags     members
// @Accept   json
// @Produce  json
// @Param    id    query  string                       true  "member id"
// @Param    body  body   members.UpdateMemberRequest  true  "fields to change"
// @Success  200  {object}  members.MemberResponse
// @Router   /api-members [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := httpx.RequireID(c)
	if !ok {
		return
	}
	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Invalid(c, httpx.BindMessage(err))
		return
	}
	res, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary  Delete a member
// @Tags     members
// @Param    id  query  string  true  "member id"
// @Success  200
// @Failure  409  {object}  httpx.ErrorBody
// @Router   /api-members [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := httpx.RequireID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
