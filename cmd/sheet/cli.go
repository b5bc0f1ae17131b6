package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arthur-debert/probsheet/sheet"
	"github.com/arthur-debert/probsheet/sheet/storage"
)

// CLI wires the cobra command tree to a viper configuration
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper

	logger    *slog.Logger
	logCloser io.Closer

	// storeOptions are appended when a store is opened; tests use them to
	// pin the clock and id generator
	storeOptions []sheet.Option
}

// NewCLI creates the command tree with configuration loaded
func NewCLI() *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addCommands()

	return cli
}

// Execute runs the root command
func (cli *CLI) Execute() error {
	defer cli.closeLog()
	return cli.rootCmd.Execute()
}

// setupViperConfig configures Viper with environment variables and config files
func (cli *CLI) setupViperConfig() {
	// PROBSHEET_CONFIG names an explicit config file
	if configFile := os.Getenv("PROBSHEET_CONFIG"); configFile != "" {
		cli.viperInst.SetConfigFile(configFile)
	} else {
		cli.viperInst.SetConfigName("probsheet")
		cli.viperInst.SetConfigType("yaml")
		cli.viperInst.AddConfigPath(".")
		cli.viperInst.AddConfigPath("$HOME/.probsheet")
	}

	cli.viperInst.AutomaticEnv()
	cli.viperInst.SetEnvPrefix("PROBSHEET")

	// --log-level -> PROBSHEET_LOG_LEVEL
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	cli.viperInst.SetDefault("backend", storage.KindFile)
	cli.viperInst.SetDefault("data", getXDGDataDir())
	cli.viperInst.SetDefault("log-level", "warn")

	// Missing config files are fine
	_ = cli.viperInst.ReadInConfig()
}

// createRootCommand creates the root Cobra command with Viper integration
func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "sheet",
		Short: "Track practice problems grouped by topic and section",
		Long: `sheet keeps a checklist of practice problems.

Problems live in sections, sections live in topics. Every change is saved
immediately. Nodes are addressed by the ids shown in 'sheet show'; positions
for the move commands start at 1.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (PROBSHEET_*)
3. Configuration file (PROBSHEET_CONFIG, ./probsheet.yaml, ~/.probsheet/probsheet.yaml)

Examples:
  sheet show
  sheet problem toggle t1 st1 q2
  sheet problem add t1 st1 "Valid Palindrome" --url https://leetcode.com/problems/valid-palindrome/
  PROBSHEET_BACKEND=sqlite sheet stats`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, closer, err := initLogging(
				cli.viperInst.GetString("log-level"),
				cli.viperInst.GetBool("verbose"),
				cmd.ErrOrStderr(),
			)
			if err != nil {
				// Logging is best-effort; the command still runs
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
				return nil
			}
			cli.logger = logger
			cli.logCloser = closer
			cli.logger.Debug("command started", "command", cmd.CommandPath(), "args", args)
			return nil
		},
	}

	cli.addGlobalFlags()
}

// addGlobalFlags adds persistent flags that apply to all commands
func (cli *CLI) addGlobalFlags() {
	flags := cli.rootCmd.PersistentFlags()

	flags.StringP("backend", "b", storage.KindFile, fmt.Sprintf("Storage backend (%s)", strings.Join(storage.Kinds, "|")))
	flags.StringP("data", "d", getXDGDataDir(), "Directory the sheet is stored in")
	flags.String("log-level", "warn", "Log level (debug|info|warn|error)")
	flags.BoolP("verbose", "v", false, "Also write log records to stderr")

	_ = cli.viperInst.BindPFlags(flags)
}

// addCommands registers every subcommand
func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.showCommand(),
		cli.statsCommand(),
		cli.topicCommand(),
		cli.sectionCommand(),
		cli.problemCommand(),
		cli.exportCommand(),
		cli.importCommand(),
	)
}

// withStore opens the configured backend, runs fn and closes it again
func (cli *CLI) withStore(operation string, fn func(*sheet.Store) error) error {
	kind := cli.viperInst.GetString("backend")
	dataDir := cli.viperInst.GetString("data")

	backend, err := storage.Open(kind, dataDir)
	if err != nil {
		return NewStoreError(operation, err, CommonSuggestions.CheckData, CommonSuggestions.CheckConfig)
	}

	opts := append([]sheet.Option{sheet.WithLogger(cli.logger)}, cli.storeOptions...)
	store := sheet.New(backend, opts...)
	defer func() {
		if err := store.Close(); err != nil {
			cli.logger.Warn("failed to close backend", "error", err)
		}
	}()

	cli.logger.Debug("store opened", "backend", kind, "data", dataDir, "restored", store.Restored())
	return WrapError(operation, fn(store))
}

func (cli *CLI) closeLog() {
	if cli.logCloser != nil {
		_ = cli.logCloser.Close()
		cli.logCloser = nil
	}
}
