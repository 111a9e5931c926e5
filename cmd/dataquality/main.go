// Command dataquality scans identity CSV files for bad, missing and
// inconsistent PII fields and writes a cleaned copy.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/dataquality/internal/config"
	"github.com/JonMunkholm/dataquality/internal/core"
	"github.com/JonMunkholm/dataquality/internal/logging"
)

// flags holds command-line overrides. Empty values leave the environment's
// configuration in place.
type flags struct {
	inputFile   string
	outputPath  string
	statesFile  string
	zipsFile    string
	phoneFormat string
	logLevel    string
	logFormat   string
	envFile     string
}

func main() {
	var f flags
	root := newRootCmd(&f)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()

	if err != nil {
		slog.Debug("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", core.FormatUserError(err))
		fmt.Fprintf(os.Stderr, "  %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(f *flags) *cobra.Command {
	root := &cobra.Command{
		Use:   "dataquality",
		Short: "Validate and clean PII fields in a CSV file",
		Long: `dataquality checks the social_security, state, zip, phone1 and email
columns of a CSV file. Values in a non-canonical but valid shape are
rewritten, bad and missing values are reported, and the cleaned table is
written to new_data_quality_case_study.csv in the output directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return runScan(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.statesFile, "states-file", "", "State reference file {name: code} (default: built-in)")
	pf.StringVar(&f.zipsFile, "zips-file", "", "Zip reference file {state: [zip, ...]} (default: additional_state_code_data.json)")
	pf.StringVar(&f.phoneFormat, "phone-format", "", "Canonical phone format: hyphen or paren (default: hyphen)")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&f.logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&f.envFile, "env-file", ".env", "Environment file to load if present")

	root.Flags().StringVarP(&f.inputFile, "input-file", "i", "", "CSV file to scan (default: data_quality_case_study.csv)")
	root.Flags().StringVarP(&f.outputPath, "output-path", "o", "", "Directory for the cleaned CSV (default: current directory)")

	root.AddCommand(newServeCmd(f))
	root.AddCommand(newReferenceCmd())
	return root
}

// loadConfig reads .env and the environment, applies flag overrides, then
// validates and sets up logging.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	if _, err := config.LoadDotEnv(f.envFile); err != nil {
		return nil, err
	}

	cfg, err := config.LoadUnvalidated()
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		flag string
		dst  *string
		val  string
	}{
		{"input-file", &cfg.Scan.InputFile, f.inputFile},
		{"output-path", &cfg.Scan.OutputPath, f.outputPath},
		{"phone-format", &cfg.Scan.PhoneFormat, f.phoneFormat},
		{"states-file", &cfg.Reference.StatesFile, f.statesFile},
		{"zips-file", &cfg.Reference.ZipsFile, f.zipsFile},
		{"log-level", &cfg.Logging.Level, f.logLevel},
		{"log-format", &cfg.Logging.Format, f.logFormat},
	}
	for _, o := range overrides {
		if fl := cmd.Flags().Lookup(o.flag); fl != nil && fl.Changed {
			*o.dst = o.val
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())
	return cfg, nil
}
