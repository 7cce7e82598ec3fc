package config

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	opts, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "foot", opts.Terminal)
	assert.Equal(t, "bemenu-run", opts.Launcher)
	assert.Equal(t, 8, opts.OuterGap)
	assert.Equal(t, "Super", opts.Modifier)
	assert.Equal(t, "/usr/share/fonts/TTF/DejaVuSans.ttf", opts.FontPath)
	assert.Equal(t, 12.0, opts.FontSize)
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	t.Setenv("RIVERWM_TERMINAL", "alacritty")
	t.Setenv("RIVERWM_OUTER_GAP", "20")

	opts, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "alacritty", opts.Terminal)
	assert.Equal(t, 20, opts.OuterGap)
}

func TestBindFlagsOverridesEnvDefault(t *testing.T) {
	t.Setenv("RIVERWM_MODIFIER", "Super")
	opts, err := Load()
	require.NoError(t, err)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	BindFlags(fs, &opts)
	require.NoError(t, fs.Parse([]string{"-modifier=Alt", "-border-width=4"}))

	assert.Equal(t, "Alt", opts.Modifier)
	assert.Equal(t, 4, opts.BorderWidth)
}

func TestBindFlagsOverridesFontOptions(t *testing.T) {
	opts, err := Load()
	require.NoError(t, err)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	BindFlags(fs, &opts)
	require.NoError(t, fs.Parse([]string{"-font-path=/tmp/custom.ttf", "-font-size=16.5"}))

	assert.Equal(t, "/tmp/custom.ttf", opts.FontPath)
	assert.Equal(t, 16.5, opts.FontSize)
}

func TestValidateRejectsNegativeGap(t *testing.T) {
	opts := Options{OuterGap: -1}
	err := opts.Validate()
	require.Error(t, err)
	var negErr *NegativeOptionError
	require.ErrorAs(t, err, &negErr)
	assert.Equal(t, "outer gap", negErr.Name)
}

func TestValidateAcceptsZeroValues(t *testing.T) {
	opts := Options{OuterGap: 0, InnerGap: 0, BorderWidth: 0, TabHeight: 0}
	assert.NoError(t, opts.Validate())
}
