// Package config loads the command-line surface named in spec §6: the
// terminal/launcher programs, gap/border pixel sizes, and default binding
// modifier. Values load from the environment via envconfig, then flags
// (when supplied) override them — the same two-layer shape as the
// teacher's env-first config packages, thinned to a single flat struct
// since this client has no nested subsystems to group.
package config

import (
	"flag"
	"strconv"

	"github.com/kelseyhightower/envconfig"
)

// Options is the command-line surface consumed by the core (§6).
type Options struct {
	Terminal string `envconfig:"RIVERWM_TERMINAL" default:"foot"`
	Launcher string `envconfig:"RIVERWM_LAUNCHER" default:"bemenu-run"`

	OuterGap    int `envconfig:"RIVERWM_OUTER_GAP" default:"8"`
	InnerGap    int `envconfig:"RIVERWM_INNER_GAP" default:"8"`
	BorderWidth int `envconfig:"RIVERWM_BORDER_WIDTH" default:"2"`
	TabHeight   int `envconfig:"RIVERWM_TAB_HEIGHT" default:"24"`

	// FontPath/FontSize configure the tabbed layout's decoration buffer
	// text (§4.7); an unreadable or empty FontPath degrades to tab bars
	// with no glyphs rather than a startup failure, since the font is
	// cosmetic.
	FontPath string  `envconfig:"RIVERWM_FONT_PATH" default:"/usr/share/fonts/TTF/DejaVuSans.ttf"`
	FontSize float64 `envconfig:"RIVERWM_FONT_SIZE" default:"12"`

	// Modifier is one of Shift/Ctrl/Alt/Super (§6); default Super per the
	// union-of-variants Open Question resolved in DESIGN.md.
	Modifier string `envconfig:"RIVERWM_MODIFIER" default:"Super"`
}

// Load reads Options from the environment, applying envconfig's declared
// defaults for anything unset.
func Load() (Options, error) {
	var opts Options
	if err := envconfig.Process("", &opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// BindFlags registers flag.Var-style overrides for every field in opts on
// fs, to be parsed after Load populates the environment-derived defaults.
// Each flag's default is opts' current value, so an unset flag leaves the
// environment-derived value in place.
func BindFlags(fs *flag.FlagSet, opts *Options) {
	fs.StringVar(&opts.Terminal, "terminal", opts.Terminal, "path to the terminal program run by spawn-terminal")
	fs.StringVar(&opts.Launcher, "launcher", opts.Launcher, "path to the launcher program run by spawn-launcher")
	fs.IntVar(&opts.OuterGap, "outer-gap", opts.OuterGap, "outer gap in pixels")
	fs.IntVar(&opts.InnerGap, "inner-gap", opts.InnerGap, "inner gap in pixels")
	fs.IntVar(&opts.BorderWidth, "border-width", opts.BorderWidth, "window border width in pixels")
	fs.IntVar(&opts.TabHeight, "tab-height", opts.TabHeight, "tabbed-layout tab bar height in pixels")
	fs.StringVar(&opts.Modifier, "modifier", opts.Modifier, "default binding modifier: Shift, Ctrl, Alt or Super")
	fs.StringVar(&opts.FontPath, "font-path", opts.FontPath, "TTF/OTF font file used for tab bar labels")
	fs.Float64Var(&opts.FontSize, "font-size", opts.FontSize, "tab bar label point size")
}

// Validate checks the non-negativity constraints spec §6 places on the
// pixel-size options.
func (o Options) Validate() error {
	for _, pair := range []struct {
		name  string
		value int
	}{
		{"outer gap", o.OuterGap},
		{"inner gap", o.InnerGap},
		{"border width", o.BorderWidth},
		{"tab height", o.TabHeight},
	} {
		if pair.value < 0 {
			return &NegativeOptionError{Name: pair.name, Value: pair.value}
		}
	}
	return nil
}

// NegativeOptionError reports a pixel-size option that violates its
// non-negative-integer constraint (§6).
type NegativeOptionError struct {
	Name  string
	Value int
}

func (e *NegativeOptionError) Error() string {
	return "riverwm: " + e.Name + " must be non-negative, got " + strconv.Itoa(e.Value)
}
