package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gojslint/internal/ui/pretty"
	"github.com/yaklabco/gojslint/pkg/config"
)

func TestNewStyles_NoColorIsPlain(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	for name, style := range map[string]interface{ Render(...string) string }{
		"error":   styles.Error,
		"warning": styles.Warning,
		"bold":    styles.Bold,
		"file":    styles.FilePath,
		"fixable": styles.TableFixable,
		"legend":  styles.TableLegend,
	} {
		assert.Equal(t, "no-alert", style.Render("no-alert"), name)
	}
}

func TestStyles_Severity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	assert.Equal(t, styles.Error, styles.Severity(config.SeverityError))
	assert.Equal(t, styles.Warning, styles.Severity(config.SeverityWarn))
	assert.Equal(t, styles.Dim, styles.Severity(config.SeverityOff))
}

//nolint:paralleltest // Uses t.Setenv.
func TestIsColorEnabled(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		noColor string
		force   string
		want    bool
	}{
		{name: "always on buffer", mode: pretty.ColorAlways, want: true},
		{name: "always ignores NO_COLOR", mode: pretty.ColorAlways, noColor: "1", want: true},
		{name: "never on stdout", mode: pretty.ColorNever, force: "1", want: false},
		{name: "auto on buffer", mode: pretty.ColorAuto, want: false},
		{name: "empty mode is auto", mode: "", want: false},
		{name: "unknown mode is auto", mode: "sometimes", want: false},
		{name: "FORCE_COLOR", mode: pretty.ColorAuto, force: "1", want: true},
		{name: "FORCE_COLOR=0", mode: pretty.ColorAuto, force: "0", want: false},
		{name: "NO_COLOR beats FORCE_COLOR", mode: pretty.ColorAuto, noColor: "1", force: "1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("FORCE_COLOR", tt.force)

			var buf bytes.Buffer
			assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, &buf))
		})
	}
}

//nolint:paralleltest // Uses t.Setenv.
func TestIsColorEnabled_NoColorOnFile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("FORCE_COLOR", "")

	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, os.Stdout))
}
