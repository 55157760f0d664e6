package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/exarch/internal/logging"
	"github.com/yaklabco/exarch/internal/metrics"
	"github.com/yaklabco/exarch/pkg/config"
	"github.com/yaklabco/exarch/pkg/server"
)

// errNoCertificate is returned when serve has no certificate or key.
var errNoCertificate = errors.New("a TLS certificate and key are required (--cert, --key)")

type serveFlags struct {
	cert            string
	key             string
	root            string
	host            string
	port            int
	timeout         time.Duration
	maxConnections  int
	metricsAddr     string
	noFailureStatus bool
}

func newServeCommand() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve [root]",
		Short: "Serve an existing tree of Markdown files",
		Long: `Serve a directory of Markdown documents over the Gemini protocol.

Each request names a document relative to the root. The document is converted
to Gemtext when requested and sent with status 20. Requests for a directory
are answered with its index file; a request without an extension also matches
the same name with ".md" appended.`,
		Example: `  exarch serve -c cert.pem -k key.pem ./site
  exarch serve --port 1966 --metrics-addr 127.0.0.1:9465 ./site
  EXARCH_TLS_CERT=cert.pem EXARCH_TLS_KEY=key.pem exarch serve`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.cert, "cert", "c", "", "path to the PEM certificate")
	cmd.Flags().StringVarP(&flags.key, "key", "k", "", "path to the PEM private key")
	cmd.Flags().StringVarP(&flags.root, "root", "r", "", "directory of Markdown files to serve (default: current directory)")
	cmd.Flags().StringVar(&flags.host, "host", config.DefaultHost, "address to listen on")
	cmd.Flags().IntVarP(&flags.port, "port", "p", config.DefaultPort, "port to listen on")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", config.DefaultTimeout, "deadline for one connection")
	cmd.Flags().IntVar(&flags.maxConnections, "max-connections", 0, "concurrent connection cap (0 = unlimited)")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&flags.noFailureStatus, "no-failure-status", false,
		"close failed requests without sending a status line")

	return cmd
}

// serveConfig collects the flags the user actually set.
func serveConfig(cmd *cobra.Command, args []string, flags *serveFlags) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("cert") {
		cfg.TLS.Cert = flags.cert
	}
	if changed("key") {
		cfg.TLS.Key = flags.key
	}
	if changed("root") {
		cfg.Root = flags.root
	}
	if len(args) > 0 {
		cfg.Root = args[0]
	}
	if changed("host") {
		cfg.Host = flags.host
	}
	if changed("port") {
		cfg.Port = flags.port
	}
	if changed("timeout") {
		cfg.Timeout = flags.timeout
	}
	if changed("max-connections") {
		cfg.MaxConnections = flags.maxConnections
	}
	if changed("metrics-addr") {
		cfg.MetricsAddr = flags.metricsAddr
	}
	if changed("no-failure-status") {
		cfg.FailureStatus = config.BoolPtr(!flags.noFailureStatus)
	}

	return cfg
}

func runServe(cmd *cobra.Command, args []string, flags *serveFlags) error {
	cfg, err := loadConfig(cmd, serveConfig(cmd, args, flags))
	if err != nil {
		return err
	}
	if cfg.TLS.Cert == "" || cfg.TLS.Key == "" {
		return withExitCode(ExitInvalidUsage, errNoCertificate)
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}

	tlsConfig, err := server.LoadTLSConfig(cfg.TLS.Cert, cfg.TLS.Key)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logging.Default())

	// The metrics listener is bound before the server starts so that a bad
	// address fails the command immediately.
	var (
		metricsLn  net.Listener
		registry   *prom.Registry
		recorder   metrics.Recorder = metrics.NoopRecorder{}
		listenConf net.ListenConfig
	)
	if cfg.MetricsAddr != "" {
		metricsLn, err = listenConf.Listen(ctx, "tcp", cfg.MetricsAddr)
		if err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("metrics listener: %w", err))
		}
		registry = metrics.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	srv, err := server.New(server.Config{
		Root:           cfg.Root,
		IndexFiles:     cfg.IndexFiles,
		TLS:            tlsConfig,
		Timeout:        cfg.Timeout,
		MaxConnections: cfg.MaxConnections,
		SilentFailures: !cfg.FailureStatusEnabled(),
		Recorder:       recorder,
	})
	if err != nil {
		if metricsLn != nil {
			_ = metricsLn.Close()
		}
		return withExitCode(ExitIOError, err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return srv.ListenAndServe(groupCtx, cfg.Addr())
	})
	if metricsLn != nil {
		logging.FromContext(ctx).Info("serving metrics",
			logging.FieldAddr, metricsLn.Addr().String())
		group.Go(func() error {
			return metrics.Serve(groupCtx, metricsLn, registry)
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return withExitCode(ExitIOError, err)
	}

	logging.FromContext(ctx).Info("server stopped")
	return nil
}
