package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"co2d/internal/artifacts"
	"co2d/internal/config"
	"co2d/internal/httpapi"
	"co2d/internal/manager"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var (
		addr      string
		watch     bool
		cacheSize int
		cors      bool
	)
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve predictions over HTTP",
		Example: "  co2d serve --addr :8080 --store-path ./artifacts --watch",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, g)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr = addr
			}
			if flags.Changed("watch") {
				cfg.Watch = watch
			}
			if flags.Changed("cache-size") {
				cfg.CacheSize = cacheSize
			}
			if flags.Changed("cors") {
				cfg.CORS.Enabled = cors
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log, closeLog, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			defer closeLog()
			return fnServe(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8080")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload artifacts when the store changes")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 0, "Prediction cache entries (0 disables)")
	cmd.Flags().BoolVar(&cors, "cors", false, "Enable CORS")
	return cmd
}

// runServe loads the artifact set and serves until SIGINT/SIGTERM or ctx is
// done. A load failure returns before anything listens.
func runServe(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	store, err := artifacts.Open(artifacts.Options{Kind: cfg.Store.Kind, Path: cfg.Store.Path, Keep: cfg.Store.Keep})
	if err != nil {
		return err
	}
	mgr, err := manager.New(manager.Config{
		Store:     store,
		StoreName: cfg.Store.Kind + ":" + cfg.Store.Path,
		WatchPath: watchPath(store),
		CacheSize: cfg.CacheSize,
		Publisher: manager.LogPublisher{Logger: log},
		Logger:    &log,
	})
	if err != nil {
		_ = store.Close()
		return err
	}
	defer mgr.Close()
	if err := mgr.Load(ctx); err != nil {
		return fmt.Errorf("load artifacts: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpapi.SetLogger(log)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)
	httpapi.SetBaseContext(ctx)

	if cfg.Watch {
		if err := mgr.Watch(ctx); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: httpapi.NewMux(mgr), ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	log.Info().Str("addr", ln.Addr().String()).Str("version", mgr.Version()).Str("store", cfg.Store.Kind+":"+cfg.Store.Path).Msg("co2d listening")

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}

func watchPath(s artifacts.Store) string {
	switch st := s.(type) {
	case *artifacts.FileStore:
		return st.Dir()
	case *artifacts.BoltStore:
		return st.Path()
	default:
		return ""
	}
}
