package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ryanlidster/slimctl/internal/config"
	slimerrors "github.com/ryanlidster/slimctl/internal/errors"
)

var (
	cfgFile    string
	jsonOut    bool
	verbose    bool
	playerFlag string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "slimctl",
	Short: "Control Squeezebox players from the command line",
	Long: `Slimctl talks to a Lyrion/Logitech Media Server and drives the
players attached to it: playback, volume, playlists and sync groups.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.slimrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&playerFlag, "player", "p", "", "player name or reference (default: defaults.player)")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Log.Verbose {
		verbose = true
	}

	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, slimerrors.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
