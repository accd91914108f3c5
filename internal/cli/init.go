package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojslint/internal/configloader"
	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	pack   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gojslint configuration file",
		Long: `Create a new .gojslint.yml configuration file in the current directory
with sensible defaults. The file can be customized to enable or disable
rules, change severities, and configure other options.

Examples:
  gojslint init                      Create minimal .gojslint.yml
  gojslint init --full               Document every rule in the file
  gojslint init --pack recommended   Start from a rule pack
  gojslint init --format toml        Create .gojslint.toml instead
  gojslint init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gojslint.yml or .gojslint.toml)")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"Rule pack to start from: "+strings.Join(rules.PackNames(), ", "))

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.OutOrStdout())

	if flags.format != "yaml" && flags.format != "toml" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrUsage, flags.format)
	}

	var pack *rules.Pack
	if flags.pack != "" {
		pack = rules.PackByName(flags.pack)
		if pack == nil {
			return fmt.Errorf("%w: unknown pack %q: must be one of %s",
				ErrUsage, flags.pack, strings.Join(rules.PackNames(), ", "))
		}
		if flags.format != "yaml" {
			return fmt.Errorf("%w: --pack requires --format yaml", ErrUsage)
		}
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.DefaultProjectConfig
		if flags.format == "toml" {
			outputPath = ".gojslint.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if pack != nil {
		cfg := config.NewConfig()
		rules.ApplyPack(cfg, *pack)
		header := config.DefaultTemplateHeader() + "\n# Rule pack: " + pack.Name + "\n\n"
		if err := configloader.WriteConfig(cfg, absPath, header); err != nil {
			return err
		}
		logger.Info("created configuration file", logging.FieldPath, outputPath, logging.FieldPack, pack.Name)
		return nil
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
		Rules:  templateRules(lint.DefaultRegistry),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template includes all rules with documentation")
	}
	logger.Info("run 'gojslint rules' to see all available rules")

	return nil
}

func templateRules(registry *lint.Registry) []config.RuleInfo {
	registered := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(registered))
	for _, rule := range registered {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Description: rule.Description(),
			Type:        string(rule.Type()),
			Severity:    rule.DefaultSeverity(),
			CanFix:      rule.CanFix(),
		})
	}
	return infos
}
