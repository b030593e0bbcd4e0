package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/frp/ssnt-nutrition/internal/api"
	"github.com/frp/ssnt-nutrition/internal/app/tracker"
	"github.com/frp/ssnt-nutrition/internal/daemon"
	"github.com/frp/ssnt-nutrition/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("config", "c", "", "Path to TOML config file")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long:  `Open the event store and serve the portions API until interrupted.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := daemon.Load(cfgPath)
	if err != nil {
		return err
	}

	db, err := sqlite.OpenPath(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := api.NewServer(tracker.New(db))
	if cfg.Metrics.Enabled {
		srv.EnableMetrics()
	}

	addr := cfg.BindAddress()
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Printf("[serve] shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Printf("[serve] instance %s, store %s", srv.InstanceID(), cfg.Store.Path)
	log.Printf("[serve] starting server at %s...", addr)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
