package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/panelkit/panelkit/pkg/buildinfo"
)

// Execute runs the panelkit CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (solve,
// show, cache), loads the optional panelkit.toml configuration, and
// configures logging based on the --verbose flag. The logger is
// attached to the context and accessible to all commands via
// loggerFromContext.
func Execute() error {
	var (
		verbose    bool
		configPath string
		cfg        = defaultConfig()
	)

	root := &cobra.Command{
		Use:          "panelkit",
		Short:        "panelkit solves constraint-based figure layouts",
		Long:         `panelkit is a CLI tool for solving panel layout documents: it turns a tree of sizing rules into absolute panel geometry and reports the result.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)

			loaded, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to panelkit.toml")

	root.AddCommand(newSolveCmd(&cfg))
	root.AddCommand(newShowCmd(&cfg))
	root.AddCommand(newCacheCmd(&cfg))

	if err := root.ExecuteContext(context.Background()); err != nil {
		printError("%s", err)
		return err
	}
	return nil
}
