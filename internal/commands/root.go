// Package commands wires the CLI surface: analyze, contacts, session.
package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/commtrace-dev/commtrace/internal/buildinfo"
	"github.com/commtrace-dev/commtrace/internal/config"
)

// defaultConfigFile is looked up in the working directory when --config is
// not given.
const defaultConfigFile = "commtrace.yaml"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "commtrace",
		Short:   "Analyze exported phone and bank records",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to commtrace.yaml")

	rootCmd.AddCommand(newAnalyzeCommand(&configPath))
	rootCmd.AddCommand(newContactsCommand(&configPath))
	rootCmd.AddCommand(newSessionCommand(&configPath))

	return rootCmd
}

// loadConfig resolves the effective configuration: an explicit --config path
// must exist; otherwise commtrace.yaml in the working directory is used when
// present, and the defaults when not.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Load(defaultConfigFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}
