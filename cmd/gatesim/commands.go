package main

import (
	"fmt"
	"os"
	"strings"

	"gatesim/internal/config"
	"gatesim/internal/loader"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dbPath     string
	backend    string
	logLevel   string
	ephemeral  bool
	frames     bool
	accessible bool

	exportFormat string
	importName   string

	rootCmd = &cobra.Command{
		Use:   "gatesim",
		Short: "A logic gate circuit editor",
		Long: `gatesim places logic gates on a canvas, wires them together and keeps
named simulations in a local store. Run without a subcommand to open the
interactive prompt.`,
		SilenceUsage: true,
		RunE:         runRepl,
	}
	replCmd = &cobra.Command{
		Use:   "repl",
		Short: "Open the interactive prompt",
		Args:  cobra.NoArgs,
		RunE:  runRepl,
	}
	execCmd = &cobra.Command{
		Use:   "exec [command...]",
		Short: "Run commands against the current simulation",
		Long:  `Each argument is evaluated as one command line, in order. Stops at the first failing command.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExec,
	}
	lsCmd = &cobra.Command{
		Use:   "ls",
		Short: "List saved simulations",
		Args:  cobra.NoArgs,
		RunE:  runLs,
	}
	exportCmd = &cobra.Command{
		Use:   "export [path]",
		Short: "Write the current simulation to a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	importCmd = &cobra.Command{
		Use:   "import [path]",
		Short: "Load a simulation from a JSON or YAML file and switch to it",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
	gatesCmd = &cobra.Command{
		Use:   "gates",
		Short: "List gate templates",
		Args:  cobra.NoArgs,
		RunE:  runGates,
	}
	gatesLoadCmd = &cobra.Command{
		Use:   "load [library.yaml]",
		Short: "Import gate templates from a YAML library",
		Args:  cobra.ExactArgs(1),
		RunE:  runGatesLoad,
	}
	gatesDumpCmd = &cobra.Command{
		Use:   "dump [library.yaml]",
		Short: "Write every gate template to a YAML library",
		Args:  cobra.ExactArgs(1),
		RunE:  runGatesDump,
	}
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Show the active configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfig,
	}
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default: search the standard locations)")
	flags.StringVar(&dbPath, "db", "", "storage path, overrides the config")
	flags.StringVar(&backend, "backend", "", "storage backend: sqlite, badger or memory")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.BoolVar(&ephemeral, "ephemeral", false, "keep everything in memory for this run")
	flags.BoolVar(&frames, "frames", false, "draw the canvas after every change")
	flags.BoolVar(&accessible, "accessible", false, "use plain prompts instead of forms")

	exportCmd.Flags().StringVar(&exportFormat, "format", "", "json or yaml (default: from the file extension)")
	importCmd.Flags().StringVar(&importName, "name", "", "store under this name instead of the one in the file")

	gatesCmd.AddCommand(gatesLoadCmd, gatesDumpCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(replCmd, execCmd, lsCmd, exportCmd, importCmd, gatesCmd, configCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	for _, line := range args {
		if err := a.manager.Eval(cmd.Context(), line); err != nil {
			return fmt.Errorf("%q failed", line)
		}
	}
	return nil
}

func runLs(cmd *cobra.Command, _ []string) error {
	return runExec(cmd, []string{"ls"})
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()
	return a.manager.ExportFile(cmd.Context(), args[0], exportFormat)
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()
	return a.manager.ImportFile(cmd.Context(), args[0], importName)
}

func runGates(cmd *cobra.Command, _ []string) error {
	return runExec(cmd, []string{"gate ls"})
}

func runGatesLoad(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()
	return a.importLibrary(cmd.Context(), args[0])
}

func runGatesDump(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	list, err := a.manager.Templates().List(cmd.Context())
	if err != nil {
		return err
	}
	data, err := loader.ExportYAML(list)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d gates to %s\n", len(list), args[0])
	return nil
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	if path == "" {
		path = "(defaults)"
	}
	fmt.Printf("Config: %s\n%s\n", path, cfg.Summary())
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// loadConfig resolves the config file and applies command line overrides
func loadConfig() (*config.Config, string, error) {
	cfg, path, err := config.Resolve(configPath)
	if err != nil {
		return nil, path, err
	}
	if backend != "" {
		cfg.Storage.Backend = strings.ToLower(backend)
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	if ephemeral {
		cfg.Storage.Backend = config.BackendMemory
	}
	if logLevel != "" {
		cfg.Log.Level = strings.ToLower(logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
