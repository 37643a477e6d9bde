// Package main contains the minidb CLI. It uses the cobra package; the repl
// command opens the store, loads the catalog, and hands the terminal to the
// interactive session.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"minidb/internal/catalog"
	"minidb/internal/config"
	"minidb/internal/engine"
	"minidb/internal/output"
	"minidb/internal/parser"
	"minidb/internal/repl"
	"minidb/internal/storage"
)

type replFlags struct {
	configFile string
	storePath  string
	prompt     string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "minidb",
		Short: "Embedded relational database with a SQL REPL",
	}

	rootCmd.AddCommand(replCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func replCmd() *cobra.Command {
	flags := &replFlags{}
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runRepl(flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "Config file (default minidb.toml when present)")
	cmd.Flags().StringVar(&flags.storePath, "store", "", "Store directory (overrides config)")
	cmd.Flags().StringVar(&flags.prompt, "prompt", "", "Prompt string (overrides config)")

	return cmd
}

func runRepl(flags *replFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	defer store.Close()

	cat, err := catalog.Load(store)
	if err != nil {
		return err
	}

	out := output.New(os.Stdout, cfg.Prompt)
	eng := engine.New(cat, store, out)
	return repl.New(os.Stdin, out, parser.New(), eng).Run()
}

func loadConfig(flags *replFlags) (config.Config, error) {
	path, required := config.DefaultFile, false
	if flags.configFile != "" {
		path, required = flags.configFile, true
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return cfg, err
	}
	if flags.storePath != "" {
		cfg.StorePath = flags.storePath
	}
	if flags.prompt != "" {
		cfg.Prompt = flags.prompt
	}
	return cfg, nil
}
