package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/repograb/repograb/internal/config"
	"github.com/repograb/repograb/internal/engine"
	"github.com/repograb/repograb/internal/git"
	"github.com/repograb/repograb/internal/hosting"
	"github.com/repograb/repograb/internal/probe"
	"github.com/repograb/repograb/internal/store"
	"github.com/repograb/repograb/internal/strategy"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgPath   string
	workDir   string
	logLevel  string
	logFormat string
	quiet     bool
	verbose   bool
	globalCfg *config.Config
	logger    *slog.Logger

	// Global components
	globalStore    *store.Store
	globalHosting  *hosting.Client
	globalCLI      *hosting.CLI
	globalRegistry *strategy.Registry
	globalExecutor *engine.Executor
	globalProber   *probe.Prober
)

// initializeComponents initializes the store, clients, registry, and executor
func initializeComponents() error {
	if globalCfg == nil {
		return fmt.Errorf("config not loaded")
	}

	if !globalCfg.History.Disabled {
		st, err := store.New(globalCfg.HistoryDBPath(), logger)
		if err != nil {
			return fmt.Errorf("failed to initialize history store: %w", err)
		}
		globalStore = st
	}

	gitClient := git.NewExecClient(globalCfg.CloneTimeout(), logger)
	globalHosting = hosting.NewClient(globalCfg.GitHub.APIURL, globalCfg.Token(), globalCfg.APITimeout(), logger)
	globalCLI = hosting.NewCLI(logger)

	globalRegistry = strategy.NewRegistry(gitClient, globalHosting, globalCLI, globalCfg.GitHub.Host, logger)
	globalExecutor = engine.New(globalRegistry, globalStore, logger)
	globalProber = probe.New(globalCLI.AuthStatus, logger)

	logger.Debug("components initialized")
	return nil
}

// shouldSkipComponentInit checks if a command should skip component initialization
func shouldSkipComponentInit(cmdName string) bool {
	skipInitCmds := map[string]bool{
		"help":       true,
		"version":    true,
		"config":     true,
		"strategies": true,
		"analyze":    true,
		"doctor":     true,
	}
	return skipInitCmds[cmdName]
}

// closeStore closes the history store connection
func closeStore() {
	if globalStore != nil {
		if err := globalStore.Close(); err != nil {
			logger.Error("failed to close history store", "error", err)
		}
	}
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repograb",
		Short: "Acquire remote Git repositories under selectable strategies",
		Long: `repograb clones or mirrors a remote Git repository under one of ten
strategies with different network, disk, and filtering tradeoffs: full,
shallow, sparse, toplevel, structure, filetype, analysis, mirror, bundle,
and metadata. It can also query hosting metadata without cloning and
report on the structure of an acquired working tree.`,
		Example: `  repograb grab octocat/Hello-World
  repograb grab octocat/Hello-World --strategy shallow --depth 5
  repograb grab https://github.com/octocat/Hello-World.git --strategy sparse --sparse-paths docs,src
  repograb info octocat/Hello-World
  repograb grab octocat/Hello-World --strategy bundle --compress
  repograb history --limit 10`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()

			if shouldSkipConfig(cmd.Name()) {
				return nil
			}

			if cfgPath == "" {
				var err error
				cfgPath, err = config.FindConfigFile()
				if err != nil {
					logger.Debug("config file not found, using defaults", "error", err)
				}
			}

			if cfgPath != "" {
				var err error
				globalCfg, err = config.Load(cfgPath)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
			} else {
				globalCfg = config.DefaultConfig()
			}

			// Override with command-line flags if provided
			if workDir != "" {
				globalCfg.Defaults.WorkDir = workDir
			}

			if !quiet {
				logger.Debug("config loaded", "path", cfgPath, "work_dir", globalCfg.Defaults.WorkDir)
			}

			if !shouldSkipComponentInit(cmd.Name()) {
				if err := initializeComponents(); err != nil {
					return fmt.Errorf("failed to initialize components: %w", err)
				}
			}

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeStore()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (auto-discovered if not specified)")
	cmd.PersistentFlags().StringVar(&workDir, "work-dir", "", "override base directory for default target paths")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text or json)")
	cmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-error output")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level diagnostic output")

	cmd.AddCommand(
		newGrabCmd(),
		newInfoCmd(),
		newAnalyzeCmd(),
		newHistoryCmd(),
		newStrategiesCmd(),
		newDoctorCmd(),
		newConfigCmd(),
	)

	return cmd
}

// setupLogging initializes the slog logger based on flags
func setupLogging() {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	var handler slog.Handler
	if strings.ToLower(logFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// shouldSkipConfig checks if a command should skip config loading
func shouldSkipConfig(cmdName string) bool {
	skipConfigCmds := map[string]bool{
		"help":    true,
		"version": true,
	}
	return skipConfigCmds[cmdName]
}
