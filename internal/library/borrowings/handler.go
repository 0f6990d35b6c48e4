package borrowings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/platform/httpx"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/api-borrowings", h.Get)
	r.POST("/api-borrowings", h.Borrow)
	r.PUT("/api-borrowings", h.Update) // action=return で返却
	r.DELETE("/api-borrowings", h.Delete)
}

// @Summary  Get one borrowing (id) or list borrowings
// @Tags     borrowings
// @Produce  json
// @Param    id         query  string  false  "borrowing id"
// @Param    status     query  string  false  "status"  Enums(borrowed, returned, overdue)
// @Param    member_id  query  string  false  "member id"
// @Param    book_id    query  string  false  "book id"
// @Param    search     query  string  false  "book title or member name"
// @Success  200  {array}  borrowings.BorrowingResponse
// @Router   /api-borrowings [get]
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
		Status:   Status(c.Query("status")),
		MemberID: c.Query("member_id"),
		BookID:   c.Query("book_id"),
		Search:   c.Query("search"),
	}
	list, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary  Borrow a book
// @Tags     borrowings
// @Accept   json
// @Produce  json
// @Param    body  body  borrowings.BorrowRequest  true  "loan"
// @Success  201  {object}  borrowings.BorrowingResponse
// @Failure  400  {object}  httpx.ErrorBody  "NOT_AVAILABLE / INACTIVE_MEMBER / INVALID_INPUT"
// @Failure  404  {object}  httpx.ErrorBody
// @Router   /api-borrowings [post]
func (h *Handler) Borrow(c *gin.Context) {
	var req BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Invalid(c, httpx.BindMessage(err))
		return
	}
	res, err := h.svc.Borrow(c.Request.Context(), req)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary  Return a book (action=return) or change the due date
// @Tags     borrowings
// @Accept   json
// @Produce  json
// @Param    id      query  string                             true   "borrowing id"
// @Param    action  query  string                             false  "action"  Enums(return)
// @Param    as_of   query  string                             false  "return date (YYYY-MM-DD)"  Format(date)
// @Param    body    body   borrowings.UpdateBorrowingRequest  false  "new due date"
// @Success  200  {object}  borrowings.BorrowingResponse
// @Failure  409  {object}  httpx.ErrorBody  "ALREADY_RETURNED"
// @Router   /api-borrowings [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := httpx.RequireID(c)
	if !ok {
		return
	}

	switch c.Query("action") {
	case "return":
		asOf, ok := httpx.QueryDate(c, "as_of")
		if !ok {
			return
		}
		res, err := h.svc.Return(c.Request.Context(), id, asOf)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	case "":
		var req UpdateBorrowingRequest
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
	default:
		httpx.Invalid(c, "unknown action (supported: return)")
	}
}

// @Summary  Delete a borrowing
// @Tags     borrowings
// @Param    id  query  string  true  "borrowing id"
// @Success  200
// @Router   /api-borrowings [delete]
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
