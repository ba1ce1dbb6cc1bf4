package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"teachersday/internal/config"
	"teachersday/internal/web"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var open bool
	var datastarURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Teacher's Day page",
		Long: strings.TrimSpace(`
Serve the Teacher's Day page from a local HTTP server.

The photo folder is read on every request, so photos dropped into it show up
on the next selection (and open pages refresh on their own).
`),
		Example: strings.TrimSpace(`
teachersday serve --addr 127.0.0.1:8501
teachersday --images ./photos serve --addr :8080 --open
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServeWith(cmd, app, addr, open, datastarURL)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.cfg.Addr, "Bind address (host:port or :port) [$"+config.EnvAddr+"]")
	cmd.Flags().BoolVar(&open, "open", app.cfg.Open, "Open the page in your default browser [$"+config.EnvOpen+"]")
	cmd.Flags().StringVar(&datastarURL, "datastar-url", "", "Override the datastar client script URL")
	return cmd
}

func runServeWith(cmd *cobra.Command, app *App, addr string, open bool, datastarURL string) error {
	listenAddr := strings.TrimSpace(addr)
	if listenAddr == "" {
		return writeErr(cmd, errors.New("serve: missing --addr"))
	}

	g, log, err := app.gallery(cmd)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = log.Sync() }()

	srv, err := web.NewServer(web.ServerConfig{
		Addr:        listenAddr,
		Gallery:     g,
		Logger:      log,
		DatastarURL: datastarURL,
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	defer srv.Close()

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return writeErr(cmd, err)
	}
	url := "http://" + ln.Addr().String() + "/"

	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.Serve(ln) }()

	log.Info("serving", zap.String("url", url), zap.String("images", g.Dir()), zap.Int("teachers", len(g.Roster().Names())))
	fmt.Fprintf(cmd.ErrOrStderr(), "Teacher's Day page running at %s (photos from %s)\n", url, g.Dir())
	if open {
		if err := openPath(url); err != nil {
			log.Warn("failed to open browser", zap.Error(err))
		}
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return writeErr(cmd, err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// Close the watcher first so open /events streams end and Shutdown does
	// not wait on them.
	_ = srv.Close()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown timed out; closing connections", zap.Error(err))
		_ = httpSrv.Close()
	}
	return nil
}

func openPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("empty path")
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Run()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path).Run()
	default:
		return exec.Command("xdg-open", path).Run()
	}
}
