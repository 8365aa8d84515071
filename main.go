package main

import (
	"fmt"
	"io"
	"os"

	"library-catalog/library"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultEnvFile = ".env"

func newRootCmd() *cobra.Command {
	var (
		envFile  string
		store    string
		logLevel string
		seed     string
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:           "library-catalog",
		Short:         "Menu-driven library book catalog with issue/return tracking and undo",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := library.LoadConfig(envFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("store") {
				cfg.Store = store
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("seed") {
				cfg.Seed = seed
			}
			if flags.Changed("quiet") {
				cfg.Quiet = quiet
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := library.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			manager, err := library.NewLibraryManager(cfg.Store, logger)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer manager.Close()
			logger.WithField("store", cfg.Store).Debug("catalog ready")

			if cfg.Seed != "" {
				if err := seedCatalog(cmd.OutOrStdout(), manager, cfg.Seed); err != nil {
					return err
				}
			}

			in := cmd.InOrStdin()
			interactive := !cfg.Quiet && isTerminal(in)
			newConsole(in, cmd.OutOrStdout(), manager, interactive).run()
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&envFile, "env-file", defaultEnvFile, "optional dotenv file with LIBRARY_* settings")
	flags.StringVar(&store, "store", library.StoreMemory, "registry backend: memory or sqlite")
	flags.StringVar(&logLevel, "log-level", "warn", "log level written to stderr")
	flags.StringVar(&seed, "seed", "", "CSV file of id,title,author rows to load at startup")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress menu and prompts")
	return cmd
}

// isTerminal reports whether r is a file attached to a terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// seedCatalog loads the seed file and prints a short import summary.
func seedCatalog(out io.Writer, mgr *library.LibraryManager, path string) error {
	report, err := mgr.ImportBooksFromFile(path)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	for _, skipped := range report.Skipped {
		fmt.Fprintf(out, "Skipped: %v\n", skipped)
	}
	fmt.Fprintf(out, "Loaded %d book(s) from %s\n", report.Imported, path)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
