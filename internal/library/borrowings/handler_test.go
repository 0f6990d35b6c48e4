package borrowings

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/platform/httpx"
)

func newTestRouter(t *testing.T) (*gin.Engine, *fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	httpx.RegisterValidators()
	f := newFixture(t)
	r := gin.New()
	RegisterRoutes(r, f.svc)
	return r, f
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func Test_Handler_BorrowAndReturn(t *testing.T) {
	r, f := newTestRouter(t)
	book := f.book(t, "dune", 1)
	ada := f.member(t, "ada")

	w := do(r, http.MethodPost, "/api-borrowings",
		`{"book_id":"`+book.ID+`","member_id":"`+ada.ID+`","due_date":"2024-01-10"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var loan BorrowingResponse
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &loan))
	assert.Equal(t, StatusBorrowed, loan.Status)
	assert.Contains(t, w.Body.String(), `"return_date":null`)
	assert.Contains(t, w.Body.String(), `"book":{`)
	assert.Contains(t, w.Body.String(), `"member":{`)

	// second copy does not exist
	w = do(r, http.MethodPost, "/api-borrowings",
		`{"book_id":"`+book.ID+`","member_id":"`+ada.ID+`","due_date":"2024-01-10"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NOT_AVAILABLE"`)

	w = do(r, http.MethodPut, "/api-borrowings?id="+loan.ID+"&action=return&as_of=2024-01-15", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var returned BorrowingResponse
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &returned))
	assert.Equal(t, StatusReturned, returned.Status)
	assert.InDelta(t, 2.50, returned.LateFee, 0.0001)
	assert.Contains(t, w.Body.String(), `"return_date":"2024-01-15"`)

	w = do(r, http.MethodPut, "/api-borrowings?id="+loan.ID+"&action=return", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"ALREADY_RETURNED"`)

	w = do(r, http.MethodGet, "/api-borrowings?status=returned", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []BorrowingResponse
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, loan.ID, list[0].ID)

	w = do(r, http.MethodDelete, "/api-borrowings?id="+loan.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func Test_Handler_ExtendDueDate(t *testing.T) {
	r, f := newTestRouter(t)
	book := f.book(t, "dune", 1)
	ada := f.member(t, "ada")
	w := do(r, http.MethodPost, "/api-borrowings",
		`{"book_id":"`+book.ID+`","member_id":"`+ada.ID+`","due_date":"2024-01-10"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var loan BorrowingResponse
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &loan))

	w = do(r, http.MethodPut, "/api-borrowings?id="+loan.ID, `{"due_date":"2024-01-31"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"due_date":"2024-01-31"`)
}

func Test_Handler_Errors(t *testing.T) {
	r, f := newTestRouter(t)
	book := f.book(t, "dune", 1)
	ada := f.member(t, "ada")

	testCases := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"missing fields", http.MethodPost, "/api-borrowings", `{"book_id":"` + book.ID + `"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad due date", http.MethodPost, "/api-borrowings", `{"book_id":"` + book.ID + `","member_id":"` + ada.ID + `","due_date":"tomorrow"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown member", http.MethodPost, "/api-borrowings", `{"book_id":"` + book.ID + `","member_id":"nope","due_date":"2024-01-10"}`, http.StatusNotFound, "NOT_FOUND"},
		{"unknown id", http.MethodGet, "/api-borrowings?id=nope", "", http.StatusNotFound, "NOT_FOUND"},
		{"bad status", http.MethodGet, "/api-borrowings?status=lost", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"put without id", http.MethodPut, "/api-borrowings?action=return", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"bad as_of", http.MethodPut, "/api-borrowings?id=x&action=return&as_of=15-01-2024", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown action", http.MethodPut, "/api-borrowings?id=x&action=renew", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"return unknown id", http.MethodPut, "/api-borrowings?id=nope&action=return", "", http.StatusNotFound, "NOT_FOUND"},
		{"delete without id", http.MethodDelete, "/api-borrowings", "", http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, tc.method, tc.target, tc.body)

			assert.Equal(t, tc.wantStatus, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"code":"`+tc.wantCode+`"`)
		})
	}
}
