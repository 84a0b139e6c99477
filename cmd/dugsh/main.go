package main

import (
	"fmt"
	"os"

	"github.com/michaelscutari/dugsh/internal/config"
	"github.com/michaelscutari/dugsh/internal/logging"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	err := rootCmd.Execute()
	_ = logging.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dugsh",
	Short: "Directory sizes from a recorded shell session",
	Long: `dugsh replays a terminal transcript of cd/ls commands into a
directory tree and reports directory sizes. It can print the answers,
dump the tree, list directories, or browse them in a TUI.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	configPath string
	logLevel   string
	verbose    bool

	threshold    int64
	capacity     int64
	requiredFree int64

	cfg = config.DefaultConfig()
)

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Int64VarP(&threshold, "threshold", "t", 0, "Small-directory threshold in bytes (default from config)")
	rootCmd.PersistentFlags().Int64Var(&capacity, "capacity", 0, "Device capacity in bytes (default from config)")
	rootCmd.PersistentFlags().Int64Var(&requiredFree, "required-free", 0, "Free space needed in bytes (default from config)")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(tuiCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("threshold") {
		cfg.WithThreshold(threshold)
	}
	if cmd.Flags().Changed("capacity") {
		cfg.WithCapacity(capacity)
	}
	if cmd.Flags().Changed("required-free") {
		cfg.WithRequiredFree(requiredFree)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if verbose {
		level = "debug"
	}
	if err := logging.Init(logging.Config{Level: level, Format: cfg.LogFormat}); err != nil {
		return fmt.Errorf("failed to init logging: %w", err)
	}
	return nil
}
