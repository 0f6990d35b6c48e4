package httpx

import (
	"errors"
	"log"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/dates"
)

const (
	HeaderRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
)

// ---------- error body ----------

type ErrorBody struct {
	Error string      `json:"error"`
	Code  apierr.Code `json:"code"`
}

// Error writes err as {"error","code"}; 500s get a generic message and the cause is logged.
func Error(c *gin.Context, err error) {
	status := apierr.HTTPStatus(err)
	msg := "internal server error"
	var e *apierr.Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	if status == http.StatusInternalServerError {
		log.Printf("[ERROR] request_id=%s %s %s: %v", RequestID(c), c.Request.Method, c.Request.URL.Path, err)
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg, Code: apierr.CodeOf(err)})
}

// Invalid writes a 400 INVALID_INPUT body.
func Invalid(c *gin.Context, msg string) {
	Error(c, apierr.Invalid(msg))
}

// MethodNotAllowed is installed as the engine's NoMethod handler.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, ErrorBody{Error: "Method not allowed", Code: apierr.CodeMethodNotAllowed})
}

// NotFound is installed as the engine's NoRoute handler.
func NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, ErrorBody{Error: "route not found", Code: apierr.CodeNotFound})
}

// RequireID reads the mandatory ?id= query parameter of PUT/DELETE.
func RequireID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		Invalid(c, "id query parameter is required")
		return "", false
	}
	return id, true
}

// QueryDate parses an optional YYYY-MM-DD query parameter.
func QueryDate(c *gin.Context, key string) (dates.Date, bool) {
	v := c.Query(key)
	if v == "" {
		return dates.Date{}, true
	}
	d, err := dates.Parse(v)
	if err != nil {
		Invalid(c, key+": "+err.Error())
		return dates.Date{}, false
	}
	return d, true
}

// ---------- request id ----------

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func RequestID(c *gin.Context) string { return c.GetString(ctxRequestID) }

// ---------- validation ----------

// RegisterValidators adds the "date" tag (YYYY-MM-DD strings) to gin's validator.
func RegisterValidators() {
	registerOnce.Do(registerValidators)
}

var registerOnce sync.Once

func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := dates.Parse(s)
		return err == nil
	})
}

// BindMessage turns a binding error into a short client message.
func BindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			field := fe.Field()
			switch fe.Tag() {
			case "required":
				parts = append(parts, field+" is required")
			case "date":
				parts = append(parts, field+" must be YYYY-MM-DD")
			case "email":
				parts = append(parts, field+" must be a valid email")
			default:
				parts = append(parts, field+" is invalid ("+fe.Tag()+")")
			}
		}
		return strings.Join(parts, "; ")
	}
	return "invalid json"
}
