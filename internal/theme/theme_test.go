package theme

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/require"

	"github.com/glowcat/glowcat/internal/highlight"
)

func TestAttrSequence(t *testing.T) {
	require.Equal(t, "", Attr{}.Sequence())
	require.Equal(t, "\x1b[38;2;100;100;100m", attrDim.Sequence())
	require.Equal(t, "\x1b[1;38;2;0;200;200m", attrHeader.Sequence())
	require.Equal(t, "\x1b[1m", Attr{Bold: true}.Sequence())
	require.Equal(t, "\x1b[1;2;3;4m", Attr{Bold: true, Dim: true, Italic: true, Underline: true}.Sequence())
}

func TestResolve_ReservedStyles(t *testing.T) {
	th := Load("catppuccin-mocha", "", "")

	require.Equal(t, Attr{}, th.Resolve(highlight.StyleNone))
	require.Equal(t, attrDim, th.Resolve(highlight.StyleLineNumber))
	require.Equal(t, attrDim, th.Resolve(highlight.StyleGrid))
	require.Equal(t, attrDim, th.Resolve(highlight.StyleEOLMarker))
	require.Equal(t, attrAdded, th.Resolve(highlight.StyleAdded))
	require.Equal(t, attrModified, th.Resolve(highlight.StyleModified))
	require.Equal(t, attrRemoved, th.Resolve(highlight.StyleRemoved))
	require.Equal(t, attrHeader, th.Resolve(highlight.StyleHeader))
}

func TestResolve_TokenStyleHasColor(t *testing.T) {
	th := Load("catppuccin-mocha", "", "")
	a := th.Resolve(highlight.StyleID(chroma.Keyword))
	require.True(t, a.HasFG)
}

func TestLoad_DirectName(t *testing.T) {
	th := Load("dracula", "", "")
	require.Equal(t, "dracula", th.Name())
}

func TestLoad_UnknownFallsBackToAuto(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	th := Load("definitely-not-a-theme", "", "")
	require.Equal(t, DefaultDark, th.Name())
}

func TestLoad_AutoHonorsBackgroundHint(t *testing.T) {
	t.Setenv("COLORFGBG", "0;15")
	require.Equal(t, DefaultLight, Load("auto", "", "").Name())

	t.Setenv("COLORFGBG", "15;0")
	require.Equal(t, DefaultDark, Load("auto", "", "").Name())
}

func TestLoad_DarkLightOverrides(t *testing.T) {
	require.Equal(t, "dracula", Load("dark", "", "dracula").Name())
	require.Equal(t, "solarized-light", Load("light", "solarized-light", "").Name())

	// Unknown override falls back to the side's default.
	require.Equal(t, DefaultDark, Load("dark", "", "nope").Name())
}

func TestNames_NotEmptyAndContainsDefaults(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	require.Contains(t, names, DefaultDark)
	require.Contains(t, names, DefaultLight)
}
