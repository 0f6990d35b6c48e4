package books

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library-backend/internal/platform/httpx"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/api-books", h.Get)       // ?id= で1件、なければ一覧
	r.POST("/api-books", h.Create)   // 201
	r.PUT("/api-books", h.Update)    // ?id= 必須
	r.DELETE("/api-books", h.Delete) // ?id= 必須
}

// ---------- handlers ----------

// @Summary  Get one book (id) or list books
// @Tags     books
// @Produce  json
// @Param    id              query  string  false  "book id"
// @Param    search          query  string  false  "title/author/isbn"
// @Param    genre           query  string  false  "genre"
// @Param    available_only  query  bool    false  "only books with copies left"
// @Success  200  {array}   books.BookResponse
// @Failure  404  {object}  httpx.ErrorBody
// @Router   /api-books [get]
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

	f := Filter{
		Search: c.Query("search"),
		Genre:  c.Query("genre"),
	}
	if v := c.Query("available_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			httpx.Invalid(c, "available_only must be a boolean")
			return
		}
		f.AvailableOnly = b
	}
	list, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary  Create a book
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    body  body  books.CreateBookRequest  true  "book"
// @Success  201  {object}  books.BookResponse
// @Failure  400  {object}  httpx.ErrorBody
// @Failure  409  {object}  httpx.ErrorBody
// @Router   /api-books [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookRequest
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

// @Summary  Update a book
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    id    query  string                   true  "book id"
// @Param    body  body   books.UpdateBookRequest  true  "fields to change"
// @Success  200  {object}  books.BookResponse
// @Failure  400  {object}  httpx.ErrorBody
// @Failure  404  {object}  httpx.ErrorBody
// @Router   /api-books [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := httpx.RequireID(c)
	if !ok {
		return
	}
	var req UpdateBookRequest
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

// @Summary  Delete a book
// @Tags     books
// @Produce  json
// @Param    id  query  string  true  "book id"
// @Success  200
// @Failure  409  {object}  httpx.ErrorBody
// @Router   /api-books [delete]
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
