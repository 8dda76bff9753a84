// Command clickup-mock serves the fake ClickUp API on a local port.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goclickup/goclickup/internal/logging"
	"github.com/goclickup/goclickup/pkg/clickuptest"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = "localhost:7432"
	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout = 30 * time.Second
)

type options struct {
	addr       string
	token      string
	pageSize   int
	noCompress bool
	logLevel   string
	logFormat  string
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "clickup-mock",
		Short: "Serve a fake ClickUp API",
		Long: `Serve a fake ClickUp API with a sample workspace for manual testing.

Point a client at http://<addr>/api/v1/ and http://<addr>/api/v2/ with the
configured token. State lives in memory and is lost on exit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(logging.Config{
				Level:  logging.ParseLevel(opts.logLevel),
				Format: logging.ParseFormat(opts.logFormat),
			})
			return serve(cmd.Context(), opts, logger, func(addr string) {
				fmt.Fprintf(stdout, "Serving fake ClickUp API on http://%s\n", addr)
				fmt.Fprintf(stdout, "  v1: http://%s/api/v1/\n", addr)
				fmt.Fprintf(stdout, "  v2: http://%s/api/v2/\n", addr)
				fmt.Fprintf(stdout, "  token: %s\n", opts.token)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.addr, "addr", DefaultAddr, "Address to listen on")
	flags.StringVar(&opts.token, "token", clickuptest.DefaultToken, "Accepted API token")
	flags.IntVar(&opts.pageSize, "page-size", 100, "Tasks per page")
	flags.BoolVar(&opts.noCompress, "no-compress", false, "Disable gzip/deflate responses")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
	return cmd
}

// serve runs the fake API until ctx is done. ready receives the bound
// address once the listener is open.
func serve(ctx context.Context, opts options, logger *slog.Logger, ready func(addr string)) error {
	srvOpts := []clickuptest.Option{
		clickuptest.WithToken(opts.token),
		clickuptest.WithPageSize(opts.pageSize),
		clickuptest.WithLogger(logger),
	}
	if opts.noCompress {
		srvOpts = append(srvOpts, clickuptest.WithoutCompression())
	}
	fake := clickuptest.New(srvOpts...)

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", opts.addr, err)
	}

	server := &http.Server{
		Handler:      fake.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()
	if ready != nil {
		ready(ln.Addr().String())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
