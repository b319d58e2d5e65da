package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"fmeta/internal/app"
	"fmeta/internal/config"
	"fmeta/internal/fm"
	"fmeta/internal/render"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Stderr, rootCmd.Execute))
}

// run executes the command tree and returns the process exit code. A panic
// is reported like any other unexpected failure.
func run(stderr io.Writer, execute func() error) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "Unexpected error: %v\n", r)
			code = 1
		}
	}()

	if err := execute(); err != nil {
		fmt.Fprintln(stderr, errorMessage(err))
		return 1
	}
	return 0
}

// errorMessage maps an error to the line printed before exiting.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, fm.ErrNotFound):
		return "Error: File not found."
	case errors.Is(err, fm.ErrNotAFile):
		return "Error: Path is not a file."
	case errors.Is(err, fm.ErrAccessDenied):
		return "Error: Access denied."
	case errors.Is(err, fm.ErrIO):
		return fmt.Sprintf("OS error: %v", err)
	case errors.Is(err, fm.ErrUnexpected):
		return fmt.Sprintf("Unexpected error: %v", err)
	case errors.Is(err, fm.ErrJournalDisabled):
		return "Error: inspection journal is disabled; set [journal] type in the config file."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

var (
	configPath string
	verbose    bool
)

// loadConfig reads the config file named by --config, or the default one.
// A missing file yields the default configuration.
func loadConfig() (*config.Config, map[string]string, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, nil, fmt.Errorf("getting defaults: %w", err)
	}

	path := configPath
	if path == "" {
		path = defaults["config_path"]
	}
	defaults["config_path"] = path

	cfg, err := config.ReadOrDefault(path, defaults["base_dir"])
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, defaults, nil
}

// newApp reads the config and creates an FMApp. The caller must defer app.Close().
// command identifies the CLI command being run (e.g. "show", "history").
func newApp(command string) (*app.FMApp, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewFMApp(cfg, app.Options{Command: command, Verbose: verbose})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:           "fmeta",
	Short:         "Inspect file metadata",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// show command
var showCmd = &cobra.Command{
	Use:   "show PATH",
	Short: "Show the metadata of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		withDigest, _ := cmd.Flags().GetBool("digest")
		sha1Alias, _ := cmd.Flags().GetBool("sha1")
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := newApp("show")
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.Inspect(args[0], withDigest || sha1Alias)
		if err != nil {
			return err
		}

		if asJSON {
			return render.JSON(cmd.OutOrStdout(), rec)
		}
		return render.Text(cmd.OutOrStdout(), rec, time.Now())
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recent inspections from the journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("history")
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No inspections recorded.")
			return nil
		}
		return render.History(cmd.OutOrStdout(), entries)
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}
		path := configPath
		if path == "" {
			path = defaults["config_path"]
		}

		cfg := config.NewConfig(defaults["base_dir"])
		cfg.LogDir = defaults["log_dir"]

		if err := config.Init(path, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration initialized at %s\n", path)
		fmt.Fprintf(out, "Log Dir: %s\n", cfg.LogDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, defaults, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration from %s:\n\n", defaults["config_path"])
		fmt.Fprintf(out, "Log Dir:          %s\n", cfg.LogDir)
		fmt.Fprintf(out, "Digest Algorithm: %s\n", cfg.Digest.Algorithm)
		fmt.Fprintf(out, "Chunk Size:       %d\n", cfg.Digest.ChunkSize)
		fmt.Fprintf(out, "Identity Source:  %s\n", cfg.Identity.Source)
		fmt.Fprintf(out, "Journal:          %s\n", cfg.Journal.Type)
		if cfg.Journal.Type == "sqlite" {
			fmt.Fprintf(out, "Journal Data Dir: %s\n", cfg.Journal.DataDir)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/fmeta.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolP("digest", "d", false, "Compute a digest of the file content")
	showCmd.Flags().Bool("sha1", false, "Alias for --digest")
	showCmd.Flags().Bool("json", false, "Print the record as JSON")
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of inspections to show")
	rootCmd.AddCommand(configCmd)
}
