// Package app wires the HTTP engine, services and event subscribers.
package app

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "library-backend/docs"
	"library-backend/internal/library/books"
	"library-backend/internal/library/borrowings"
	"library-backend/internal/library/dashboard"
	"library-backend/internal/library/members"
	"library-backend/internal/platform/clock"
	"library-backend/internal/platform/config"
	"library-backend/internal/platform/db"
	"library-backend/internal/platform/events"
	"library-backend/internal/platform/httpx"
)

type App struct {
	Engine    *gin.Engine
	Bus       *events.Bus
	Dashboard *dashboard.Service

	unsubscribe []func()
}

func New(cfg *config.Config, conn *db.DB, clk clock.Clock) *App {
	httpx.RegisterValidators()

	bus := events.NewBus()
	bookSvc := books.NewService(conn, clk, bus)
	memberSvc := members.NewService(conn, clk, bus)
	borrowSvc := borrowings.NewService(conn, clk, borrowings.FeePolicy{RatePerDay: cfg.LateFee.RatePerDay}, bus)
	dashSvc := dashboard.NewService(conn, clk)

	a := &App{Bus: bus, Dashboard: dashSvc}
	a.unsubscribe = append(a.unsubscribe,
		bus.SubscribeFunc(dashSvc.Invalidate),
		bus.SubscribeFunc(func(ev events.Event) {
			log.Printf("[INFO] event %s.%s id=%s", ev.Topic, ev.Action, ev.EntityID)
		}),
	)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), httpx.RequestIDMiddleware())
	_ = r.SetTrustedProxies(nil)
	r.Use(cors.New(corsConfig(cfg.CORS.AllowOrigins)))

	r.HandleMethodNotAllowed = true
	r.NoMethod(httpx.MethodNotAllowed)
	r.NoRoute(noRoute(cfg.Server.StaticDir))

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	books.RegisterRoutes(r, bookSvc)
	members.RegisterRoutes(r, memberSvc)
	borrowings.RegisterRoutes(r, borrowSvc)
	dashboard.RegisterRoutes(r, dashSvc)
	events.RegisterRoutes(r, bus)

	a.Engine = r
	return a
}

// Close detaches the event subscribers.
func (a *App) Close() {
	for _, fn := range a.unsubscribe {
		fn()
	}
	a.unsubscribe = nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowHeaders:  []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type", httpx.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", httpx.HeaderRequestID},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}

func noRoute(staticDir string) gin.HandlerFunc {
	var spa http.FileSystem
	if staticDir != "" {
		if st, err := os.Stat(staticDir); err == nil && st.IsDir() {
			spa = http.Dir(staticDir)
		} else {
			log.Printf("[WARN] static_dir %q not usable, UI is not served", staticDir)
		}
	}

	return func(c *gin.Context) {
		// API は対象外
		if spa == nil || strings.HasPrefix(c.Request.URL.Path, "/api-") {
			httpx.NotFound(c)
			return
		}
		serveSPA(c, spa)
	}
}
