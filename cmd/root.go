package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/adoq/adoq/auth"
	"github.com/adoq/adoq/azdo"
	"github.com/adoq/adoq/config"
	"github.com/adoq/adoq/filter"
	"github.com/adoq/adoq/output"
)

var (
	cfgFile    string
	orgFlag    string
	outputFile string

	cfg     *config.Config
	logger  zerolog.Logger
	client  *azdo.Client
	filters *filter.Registry

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "adoq",
	Short: "Read-only query tool for the Azure DevOps REST API",
	Long: `adoq is a read-only command-line client for the Azure DevOps REST API.
It covers projects, repositories, pull requests, work items, pipelines,
wikis, search, test plans, iterations, and security alerts, printing the
service's JSON responses to stdout or a file.

The organization comes from --org, the ADOQ_ORG environment variable, or
the organization key in config.yaml. Authentication uses ADOQ_TOKEN /
SYSTEM_ACCESSTOKEN when set, otherwise the Azure CLI (az login).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeApp,
}

// SetVersion stores the build-time version information.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute runs the root command. Any error is reported as a JSON object on
// stderr; with --output-file it is echoed on stdout as well so the failure
// survives truncated terminal capture.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func reportError(err error) {
	writeError(os.Stdout, os.Stderr, err)
}

func writeError(stdout, stderr io.Writer, err error) {
	detail, _ := json.Marshal(map[string]string{"error": err.Error()})
	fmt.Fprintln(stderr, string(detail))
	if outputFile != "" {
		fmt.Fprintf(stdout, "ERROR: failed to write %s: %v\n", outputFile, err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&orgFlag, "org", "", "Azure DevOps organization name or URL (e.g. 'myorg' or 'https://dev.azure.com/myorg')")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output-file", "o", "", "write output to this file instead of stdout")

	rootCmd.AddCommand(newCoreCommand())
	rootCmd.AddCommand(newReposCommand())
	rootCmd.AddCommand(newWitCommand())
	rootCmd.AddCommand(newPipelinesCommand())
	rootCmd.AddCommand(newWikiCommand())
	rootCmd.AddCommand(newSearchCommand())
	rootCmd.AddCommand(newTestCommand())
	rootCmd.AddCommand(newWorkCommand())
	rootCmd.AddCommand(newSecurityCommand())
	rootCmd.AddCommand(newUpdateCommand())
}

// initializeApp loads configuration and builds the API client. The client
// is only constructed when an organization is known; commands that need it
// fetch it through requireClient so the update command keeps working
// without one.
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	filters, err = filter.NewRegistry(cfg.Filter.Presets)
	if err != nil {
		return err
	}

	org := orgFlag
	if org == "" {
		org = cfg.Organization
	}
	if org == "" {
		return nil
	}

	cacheDir := cfg.Auth.CacheDir
	if cacheDir == "" {
		cacheDir, err = auth.DefaultCacheDir()
		if err != nil {
			return err
		}
	}
	tokens := auth.NewProvider(auth.NewCache(cacheDir), logger)

	userAgent := cfg.HTTP.UserAgent
	if userAgent == "" {
		userAgent = "adoq/" + version
	}

	client, err = azdo.NewClient(org, tokens, logger,
		azdo.WithTimeout(cfg.HTTP.Timeout),
		azdo.WithSearchTimeout(cfg.HTTP.SearchTimeout),
		azdo.WithRetryMax(cfg.HTTP.MaxRetries),
		azdo.WithRetryWait(cfg.HTTP.RetryWait),
		azdo.WithRetryWaitMax(cfg.HTTP.MaxRetryWait),
		azdo.WithPageLimit(cfg.HTTP.PageLimit),
		azdo.WithAPIVersion(cfg.HTTP.APIVersion),
		azdo.WithUserAgent(userAgent),
	)
	if err != nil {
		return fmt.Errorf("failed to create Azure DevOps client: %w", err)
	}

	return nil
}

// requireClient returns the API client built during initialization.
func requireClient() (*azdo.Client, error) {
	if client == nil {
		return nil, azdo.ErrNoOrganization
	}
	return client, nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only on a real terminal
	out := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(out).With().Timestamp().Logger()
}

// newOutput returns the writer honoring --output-file.
func newOutput() *output.Writer {
	return output.New(outputFile)
}

// addFilterFlags registers the client-side filter flags shared by the
// listing commands.
func addFilterFlags(cmd *cobra.Command, where, preset *string) {
	cmd.Flags().StringVar(where, "where", "", "client-side filter expression applied to the fetched items")
	cmd.Flags().StringVar(preset, "preset", "", "named filter preset from config")
}

// applyFilter narrows items with --where or --preset. With neither set the
// items pass through untouched.
func applyFilter(items []json.RawMessage, where, preset string) ([]json.RawMessage, error) {
	if where == "" && preset == "" {
		return items, nil
	}

	var (
		compiled filter.CompiledFilter
		err      error
	)
	if where != "" {
		compiled, err = filters.Compile(where)
	} else {
		compiled, err = filters.Get(preset)
	}
	if err != nil {
		return nil, err
	}

	kept := filter.Apply(compiled, items)
	logger.Debug().
		Int("matched", len(kept)).
		Int("total", len(items)).
		Str("filter", compiled.Expression()).
		Msg("Applied client-side filter")
	return kept, nil
}

// parseIntList parses a comma-separated list of integers.
func parseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid ID '%s': must be an integer", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no IDs given")
	}
	return ids, nil
}

// splitPaths splits a comma-separated path list, dropping empty entries.
func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	paths := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	return paths
}
