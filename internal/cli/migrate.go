package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojslint/internal/configloader"
	"github.com/yaklabco/gojslint/internal/logging"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert an ESLint configuration to gojslint format",
		Long: `Convert a legacy ESLint configuration file (.eslintrc.json, .eslintrc,
.eslintrc.yaml, .eslintrc.yml) to gojslint format (.gojslint.yml).

If no input file is specified, the command looks for an ESLint
configuration file in the current directory.

Rule severities and options carry over; "extends" entries such as
eslint:recommended map to the closest gojslint rule pack. Keys without a
gojslint counterpart (env, globals, plugins, overrides) are reported and
skipped. JavaScript configuration files (eslint.config.js, .eslintrc.js)
cannot be converted automatically.

Examples:
  gojslint migrate                       Auto-detect and convert ESLint config
  gojslint migrate .eslintrc.json        Convert specific file
  gojslint migrate --output config.yml   Write to custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.DefaultProjectConfig, "Output file path")

	return cmd
}

func runMigrate(cmd *cobra.Command, flags *migrateFlags) error {
	logger := logging.NewInteractive(cmd.OutOrStdout())

	inputPath := flags.input
	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath = configloader.FindESLintConfig(cwd)
		if inputPath == "" {
			return errors.New("no ESLint configuration file found in current directory")
		}

		logger.Info("found ESLint config", logging.FieldPath, inputPath)
	}

	if !configloader.CanMigrate(inputPath) {
		return fmt.Errorf("migration not supported: %s", configloader.GetMigrationWarning(inputPath))
	}

	if _, err := os.Stat(inputPath); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("input file does not exist: %s", inputPath)
	}

	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	if _, err := os.Stat(absOutput); err == nil {
		if !flags.force {
			return fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	result, err := configloader.ConvertESLintConfig(inputPath)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	if err := configloader.WriteConfig(result.Config, absOutput, configloader.GenerateMigrationHeader(inputPath)); err != nil {
		return err
	}

	logger.Info("migration complete", logging.FieldInput, inputPath, logging.FieldOutput, flags.output)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	logger.Info("you can now delete the old ESLint configuration file")

	return nil
}
