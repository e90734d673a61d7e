package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/cli"
	bridge "github.com/aretw0/waypoint/pkg/adapters/http"
	"github.com/aretw0/waypoint/pkg/dispatch"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/observability"
	"github.com/aretw0/waypoint/pkg/surface"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP activation bridge",
	Long: `Runs the UI loop with one headless window per section, the HTTP bridge
and a Prometheus /metrics endpoint until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTP.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		loop := dispatch.NewLoop(dispatch.WithLogger(logger))
		app, closeApp, err := cli.NewApp(ctx, cfg, logger, metrics.Hooks(), waypoint.WithExecutor(loop))
		if err != nil {
			return err
		}
		defer closeApp()

		bounds := domain.Rect{W: 390, H: 844}
		for _, name := range app.Sections() {
			scene := surface.NewScene(bounds)
			scene.SetRoot(surface.NewNode(name+"/root", bounds))
			if err := app.Attach(ctx, name, scene); err != nil {
				return err
			}
		}

		srv := bridge.NewServer(app, bridge.WithLogger(logger))
		cancel := app.Outputs().Subscribe(func(o waypoint.Output) {
			srv.Streams.Broadcast(o.Section, o)
		})
		defer cancel()

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		servers := []*http.Server{
			{Addr: cfg.HTTP.Addr, Handler: srv.Handler()},
			{Addr: cfg.Metrics.Addr, Handler: mux},
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return loop.Run(gctx)
		})
		for _, s := range servers {
			g.Go(func() error {
				logger.Info("listening", "addr", s.Addr)
				if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
		}
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down")
			sctx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
			defer cancel()
			var errs []error
			for _, s := range servers {
				if err := s.Shutdown(sctx); err != nil {
					errs = append(errs, err, s.Close())
				}
			}
			return errors.Join(errs...)
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Info("stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Bridge listen address (overrides http.addr)")
}
