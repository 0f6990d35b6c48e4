// @title           Library API
// @version         1.0
// @description     Books, members, borrowings and dashboard statistics.
// @BasePath        /
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"library-backend/internal/app"
	"library-backend/internal/platform/clock"
	"library-backend/internal/platform/config"
	"library-backend/internal/platform/dates"
	"library-backend/internal/platform/db"
)

const shutdownTimeout = 10 * time.Second

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "librarian",
		Short:         "Library management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to config.yaml")
	root.AddCommand(serveCmd(), migrateCmd(), statsCmd())

	if err := root.Execute(); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

// open reads the config and connects to the database.
func open(ctx context.Context) (*config.Config, *db.DB, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[INFO] mode:%s driver:%s", cfg.Mode, cfg.DB.Driver)

	conn, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return cfg, conn, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, conn, err := open(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := db.Migrate(ctx, conn); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			if cfg.Mode == "release" {
				gin.SetMode(gin.ReleaseMode)
			}
			a := app.New(cfg, conn, clock.System{Location: cfg.Location()})
			defer a.Close()

			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           a.Engine,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				var err error
				if cfg.TLSEnabled() {
					log.Printf("[INFO] listening on https://%s", cfg.Server.Addr)
					err = srv.ListenAndServeTLS(cfg.Certificate.Cert, cfg.Certificate.Key)
				} else {
					log.Printf("[INFO] listening on http://%s", cfg.Server.Addr)
					err = srv.ListenAndServe()
				}
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			// Graceful shutdown
			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			log.Println("[INFO] shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and indexes for the configured driver",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, conn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := db.Migrate(cmd.Context(), conn); err != nil {
				return err
			}
			log.Println("[INFO] migration done")
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	var asOf string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard statistics as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var day dates.Date
			if asOf != "" {
				d, err := dates.Parse(asOf)
				if err != nil {
					return err
				}
				day = d
			}

			cfg, conn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			a := app.New(cfg, conn, clock.System{Location: cfg.Location()})
			defer a.Close()
			st, err := a.Dashboard.Stats(cmd.Context(), day)
			if err != nil {
				return err
			}

			out, err := jsoniter.ConfigFastest.MarshalIndent(st, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "day to evaluate (YYYY-MM-DD, default today)")
	return cmd
}
