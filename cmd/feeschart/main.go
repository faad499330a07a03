package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/HaPhanBaoMinh/feeschart/internal/app"
	"github.com/HaPhanBaoMinh/feeschart/internal/chart"
	"github.com/HaPhanBaoMinh/feeschart/internal/config"
	"github.com/HaPhanBaoMinh/feeschart/internal/domain"
	"github.com/HaPhanBaoMinh/feeschart/internal/infrastructure/llama"
	"github.com/HaPhanBaoMinh/feeschart/internal/infrastructure/mock"
	"github.com/HaPhanBaoMinh/feeschart/internal/logging"
	"github.com/HaPhanBaoMinh/feeschart/internal/observability"
	"github.com/HaPhanBaoMinh/feeschart/internal/ui/widgets"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "feeschart [protocol]",
	Short: "Terminal chart of a protocol's daily fees from DefiLlama",
	Long: `feeschart fetches the daily fees series of a protocol from the DefiLlama
API once and draws it as a filled line chart.

Examples:
  feeschart
  feeschart aave
  feeschart --timezone UTC --time-layout 3:04PM
  FEESCHART_PROTOCOL=uniswap feeschart`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.String("base-url", llama.DefaultBaseURL, "DefiLlama API base URL")
	f.String("protocol", llama.DefaultProtocol, "protocol slug")
	f.String("data-type", llama.DefaultDataType, "summary data type")
	f.Duration("fetch-timeout", 0, "fetch timeout, 0 waits forever")
	f.String("timezone", "Local", "IANA timezone for time labels")
	f.String("time-layout", "", "Go time layout for time labels (default follows the locale)")
	f.String("locale", "", "locale for time labels, e.g. en_US (default from LC_ALL, LC_TIME, LANG)")
	f.String("log-file", config.DefaultLogFile(), "diagnostic log file")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address")
	f.Bool("mock", false, "use a built-in series instead of the API")
	f.Bool("debug-http", false, "dump HTTP requests and responses to the log at debug level")
	f.BoolP("version", "v", false, "Print version information")

	// dashes in flags become underscores in viper
	for _, name := range []string{
		"base-url", "protocol", "data-type", "fetch-timeout", "timezone",
		"time-layout", "locale", "log-file", "log-level", "metrics-addr", "mock",
		"debug-http",
	} {
		if err := viper.BindPFlag(flagKey(name), f.Lookup(name)); err != nil {
			log.Fatalf("failed to bind %s: %v", name, err)
		}
	}

	config.SetDefaults(viper.GetViper())
	if err := config.BindEnv(viper.GetViper()); err != nil {
		log.Fatalf("failed to bind environment: %v", err)
	}
}

func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func run(cmd *cobra.Command, args []string) error {
	if v, _ := cmd.Flags().GetBool("version"); v {
		fmt.Printf("feeschart version %s\n", version)
		return nil
	}

	// positional protocol only when neither flag nor env set one
	if len(args) == 1 && !cmd.Flags().Changed("protocol") && os.Getenv("FEESCHART_PROTOCOL") == "" {
		viper.Set(config.KeyProtocol, args[0])
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger.Info("starting feeschart",
		zap.String("version", version),
		zap.String("time_layout", cfg.TimeLayout))

	var metrics *observability.Metrics
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = observability.NewMetrics(reg, "")
		stop := observability.Serve(observability.NewServer(cfg.MetricsAddr, reg), logger)
		defer stop()
	}

	var repo domain.SeriesRepo
	if cfg.Mock {
		repo = mock.New()
	} else {
		lc := cfg.LlamaConfig()
		lc.Logger = logger.Sugar()
		repo = llama.New(lc)
	}
	logger.Info("using series source", zap.String("endpoint", repo.Endpoint()))

	// one-time renderer setup, before any chart is drawn
	widgets.Register(lipgloss.NewRenderer(os.Stdout))

	m := app.New(repo,
		app.WithContext(cmd.Context()),
		app.WithLogger(logger),
		app.WithMetrics(metrics),
		app.WithFormatter(chart.NewFormatter(cfg.Location, cfg.TimeLayout)),
		app.WithTitle(cfg.Protocol),
	)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
