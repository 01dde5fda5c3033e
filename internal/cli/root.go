package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	qcli "github.com/glowcat/glowcat/internal/q/cli"
	"github.com/glowcat/glowcat/internal/theme"
)

func newRootCommand() *qcli.Command {
	root := &qcli.Command{
		Name:      "glowcat",
		UsageArgs: "[FILE ...]",
		Short:     "glowcat is cat with syntax highlighting.",
		Long: "glowcat prints files to stdout with syntax highlighting, optional line\n" +
			"numbers, git change markers, and visible unprintable characters.\n" +
			"Language and theme are detected automatically and can be overridden.",
		Example: "  glowcat main.go\n" +
			"  glowcat -n config.toml\n" +
			"  glowcat main.go#L10-L20\n" +
			"  glowcat --language json response.log\n" +
			"  glowcat --theme dracula main.js\n" +
			"  cat file.go | glowcat",
	}

	fs := root.Flags()
	numbers := fs.Bool("numbers", 'n', false, "show line numbers")
	changesOn := fs.Bool("changes", 0, false, "show git change markers (+ added, ~ modified, - removed)")
	showAll := fs.Bool("show-all", 'A', false, "show unprintable characters as visible glyphs")
	plain := fs.Bool("plain", 'p', false, "only show plain style, no decorations")
	colorWhen := fs.String("color", 0, "auto", "when to use colored output: auto, always, never")
	themeName := fs.String("theme", 0, "auto", "color theme, or auto/dark/light")
	themeLight := fs.String("theme-light", 0, "", "theme for light backgrounds (used with --theme=auto/light)")
	themeDark := fs.String("theme-dark", 0, "", "theme for dark backgrounds (used with --theme=auto/dark)")
	language := fs.String("language", 'l', "", "force a specific language instead of auto-detection")
	linesSpec := fs.String("lines", 0, "", "show only selected lines (e.g. 10-20, 10:20, 10,20, 10)")
	styleSpec := fs.String("style", 0, "", "style components to display (numbers,changes; +/- to add/remove)")
	squeeze := fs.Bool("squeeze-blank", 's', false, "squeeze consecutive empty lines into one")
	squeezeLimit := fs.Int("squeeze-limit", 0, 0, "maximum number of consecutive empty lines")
	fileHeaders := fs.Bool("file-headers", 0, false, "show file headers between files")
	fileName := fs.String("file-name", 0, "", "name to display for stdin (used with --file-headers)")
	listThemes := fs.Bool("list-themes", 0, false, "list supported themes")
	fs.Bool("unbuffered", 'u', false, "no-op, output is always unbuffered")

	root.Run = func(c *qcli.Context) error {
		if *listThemes {
			return writeThemeList(c)
		}

		opts := viewOptions{
			numbers:      *numbers,
			changes:      *changesOn,
			showAll:      *showAll,
			language:     *language,
			linesSpec:    *linesSpec,
			squeeze:      *squeeze || *squeezeLimit > 0,
			squeezeLimit: 1,
			fileHeaders:  *fileHeaders,
			fileName:     *fileName,
		}
		if *squeezeLimit > 0 {
			opts.squeezeLimit = *squeezeLimit
		}
		applyStyleComponents(&opts, *styleSpec)
		if *plain {
			opts.numbers = false
			opts.changes = false
		}
		if *numbers {
			opts.numbers = true
		}

		color, err := resolveColor(*colorWhen, c.Out)
		if err != nil {
			return err
		}
		opts.color = color
		opts.theme = theme.Load(*themeName, *themeLight, *themeDark)

		return runView(c, opts)
	}

	root.AddCommand(newThemesCommand())
	return root
}

func newThemesCommand() *qcli.Command {
	return &qcli.Command{
		Name:  "themes",
		Short: "List supported themes.",
		Run:   writeThemeList,
	}
}

func writeThemeList(c *qcli.Context) error {
	for _, name := range theme.Names() {
		if _, err := fmt.Fprintln(c.Out, name); err != nil {
			return err
		}
	}
	return nil
}

// resolveColor maps the --color flag to a final on/off decision. "auto" turns
// color on only when stdout is a terminal and the NO_COLOR convention is
// unset; "always" and "never" are unconditional.
func resolveColor(when string, out io.Writer) (bool, error) {
	switch when {
	case "auto", "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, qcli.UsageError{Message: fmt.Sprintf("invalid value for --color: %q (expected auto, always, or never)", when)}
	}
}

// applyStyleComponents folds --style tokens into the decoration flags. Bare
// tokens replace the set; "+x"/"-x" adjust it.
func applyStyleComponents(opts *viewOptions, spec string) {
	if spec == "" {
		return
	}
	for _, raw := range strings.Split(spec, ",") {
		switch strings.TrimSpace(raw) {
		case "plain", "none":
			opts.numbers = false
			opts.changes = false
		case "full":
			opts.numbers = true
			opts.changes = true
		case "numbers", "+numbers":
			opts.numbers = true
		case "-numbers":
			opts.numbers = false
		case "changes", "+changes":
			opts.changes = true
		case "-changes":
			opts.changes = false
		}
	}
}
