package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/glowcat/glowcat/internal/changes"
	"github.com/glowcat/glowcat/internal/detectlang"
	"github.com/glowcat/glowcat/internal/highlight"
	"github.com/glowcat/glowcat/internal/notation"
	qcli "github.com/glowcat/glowcat/internal/q/cli"
	"github.com/glowcat/glowcat/internal/render"
	"github.com/glowcat/glowcat/internal/simplelogger"
	"github.com/glowcat/glowcat/internal/theme"
)

type viewOptions struct {
	numbers bool
	changes bool
	showAll bool
	color   bool

	theme    theme.Theme
	language string

	linesSpec    string
	squeeze      bool
	squeezeLimit int
	fileHeaders  bool
	fileName     string
}

// lineRange is a 1-based inclusive line selection.
type lineRange struct {
	start int
	end   int
}

type fileSpec struct {
	path string
	rng  *lineRange
}

// runView renders every file in c.Args in order. Per-file read failures are
// reported and skipped; write failures abort (nothing downstream would
// succeed either).
func runView(c *qcli.Context, opts viewOptions) error {
	if opts.language != "" {
		resolved, ok := detectlang.Resolve(opts.language)
		if !ok {
			return fmt.Errorf("unsupported language: %s", opts.language)
		}
		opts.language = resolved
	}

	var globalRange *lineRange
	if opts.linesSpec != "" {
		rng, err := parseLineRange(opts.linesSpec)
		if err != nil {
			return qcli.UsageError{Message: err.Error()}
		}
		globalRange = &rng
	}

	paths := c.Args
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	hadError := false
	var specs []fileSpec
	for _, path := range paths {
		spec, err := parseFileSpec(path, globalRange)
		if err != nil {
			fmt.Fprintf(c.Err, "glowcat: %v\n", err)
			hadError = true
			continue
		}
		specs = append(specs, spec)
	}

	showHeaders := opts.fileHeaders && len(specs) > 1
	stdinConsumed := false
	wroteOutput := false
	lastEndedWithNewline := true

	for _, spec := range specs {
		isStdin := spec.path == "-"
		if isStdin {
			if stdinConsumed {
				continue
			}
			stdinConsumed = true
		}

		content, err := readSpec(c.In, spec)
		if err != nil {
			fmt.Fprintf(c.Err, "glowcat: %s: %v\n", spec.path, err)
			hadError = true
			continue
		}

		if showHeaders {
			if wroteOutput && !lastEndedWithNewline {
				if _, err := io.WriteString(c.Out, "\n"); err != nil {
					return err
				}
			}
			sink := render.NewSink(c.Out, opts.theme, opts.color)
			if err := sink.WriteLine(render.HeaderLine(displayName(spec, opts.fileName))); err != nil {
				return err
			}
			wroteOutput = true
			lastEndedWithNewline = true
		}

		ended, err := emitFile(c.Out, spec, content, isStdin, opts)
		if err != nil {
			return err
		}
		wroteOutput = true
		lastEndedWithNewline = ended
	}

	if hadError {
		return qcli.ExitError{Code: 1, Err: errors.New("some files could not be displayed")}
	}
	return nil
}

func readSpec(stdin io.Reader, spec fileSpec) (string, error) {
	if spec.path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(spec.path)
	return string(b), err
}

// emitFile runs the render pipeline for one buffer: slice to the requested
// line range, squeeze blank runs, classify changes, highlight, compose, emit.
// Returns whether the emitted output ended with a newline.
func emitFile(out io.Writer, spec fileSpec, content string, isStdin bool, opts viewOptions) (bool, error) {
	firstLine := 1
	if spec.rng != nil {
		content = sliceByLineRange(content, *spec.rng)
		firstLine = spec.rng.start
	}
	if opts.squeeze {
		content = squeezeBlankLines(content, opts.squeezeLimit)
	}

	endedWithNewline := content == "" || strings.HasSuffix(content, "\n")

	// Fast path: no color and no decorations means plain pass-through, except
	// show-all and squeeze still transform the text.
	if !opts.color && !opts.numbers && !opts.changes && !opts.showAll {
		_, err := io.WriteString(out, content)
		return endedWithNewline, err
	}

	var ch changes.Result
	if opts.changes && !isStdin {
		ch, _ = changes.ForFile(spec.path, content)
	}

	spans := highlightContent(spec.path, content, isStdin, opts)

	cfg := render.Config{
		Numbers:   opts.numbers,
		Changes:   opts.changes,
		ShowAll:   opts.showAll,
		Notation:  notation.Detect(),
		FirstLine: firstLine,
	}
	comp := render.NewCompositor(cfg, content, spans, ch)
	sink := render.NewSink(out, opts.theme, opts.color)
	for _, line := range comp.Lines() {
		if err := sink.WriteLine(comp.Render(line)); err != nil {
			return endedWithNewline, err
		}
	}
	return endedWithNewline, nil
}

// highlightContent produces the span stream for one buffer. Highlighting is
// best-effort: no lexer or a tokenize failure degrades to unstyled spans.
func highlightContent(path string, content string, isStdin bool, opts viewOptions) []highlight.Span {
	if !opts.color {
		return highlight.Plain(len(content))
	}

	language := opts.language
	if language == "" {
		name := path
		if isStdin {
			name = opts.fileName
		}
		language = detectlang.Detect(name, content)
	}
	if language == "" {
		return highlight.Plain(len(content))
	}

	source, ok := highlight.NewChromaSource(language)
	if !ok {
		return highlight.Plain(len(content))
	}
	spans, err := source.Spans(content)
	if err != nil {
		simplelogger.Log("cli: highlight %s as %s: %v", path, language, err)
		return highlight.Plain(len(content))
	}
	return spans
}

func displayName(spec fileSpec, stdinName string) string {
	if spec.path == "-" {
		if stdinName != "" {
			return stdinName
		}
		return "-"
	}
	return spec.path
}

// parseFileSpec splits a trailing #L range off an argument ("main.go#L10-L20").
// Arguments without a suffix inherit the --lines range.
func parseFileSpec(arg string, defaultRange *lineRange) (fileSpec, error) {
	idx := strings.LastIndex(arg, "#L")
	if idx < 0 {
		idx = strings.LastIndex(arg, "#l")
	}
	if idx < 0 {
		return fileSpec{path: arg, rng: defaultRange}, nil
	}

	pathPart := arg[:idx]
	rangePart := arg[idx+2:]
	if pathPart == "" {
		return fileSpec{}, errors.New("missing file path before line range")
	}
	if rangePart == "" {
		return fileSpec{}, errors.New("missing line range after #L")
	}
	rng, err := parseLineRange(rangePart)
	if err != nil {
		return fileSpec{}, fmt.Errorf("invalid line range '#L%s' (expected #L<start>-<end>, #L<start>:<end>, #L<start>,<end>, or #L<start>)", rangePart)
	}
	return fileSpec{path: pathPart, rng: &rng}, nil
}

// parseLineRange accepts start-end, start:end, start,end, or a single line.
// An "L" prefix on either side is tolerated ("10-L20"). Reversed bounds are
// normalized.
func parseLineRange(raw string) (lineRange, error) {
	parseErr := fmt.Errorf("invalid line range '%s' (expected start-end, start:end, start,end, or start)", raw)

	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "L")

	var parts []string
	for _, sep := range []string{"-", ":", ","} {
		if strings.Contains(raw, sep) {
			parts = strings.SplitN(raw, sep, 2)
			break
		}
	}
	if parts == nil {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return lineRange{}, parseErr
		}
		return lineRange{start: n, end: n}, nil
	}

	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || start < 1 {
		return lineRange{}, parseErr
	}
	endRaw := strings.TrimPrefix(strings.TrimSpace(parts[1]), "L")
	end, err := strconv.Atoi(endRaw)
	if err != nil || end < 1 {
		return lineRange{}, parseErr
	}
	if start > end {
		start, end = end, start
	}
	return lineRange{start: start, end: end}, nil
}

// sliceByLineRange keeps lines start..end (1-based, inclusive). A range past
// the end of the buffer yields the available lines.
func sliceByLineRange(content string, rng lineRange) string {
	lines := render.SplitLines(content)
	if rng.start > len(lines) {
		return ""
	}
	startByte := lines[rng.start-1].Start
	last := rng.end
	if last > len(lines) {
		last = len(lines)
	}
	endByte := lines[last-1].End
	if lines[last-1].HasNewline {
		endByte++
	}
	return content[startByte:endByte]
}

// squeezeBlankLines caps runs of blank lines at limit. A line is blank when
// it is empty or a lone carriage return.
func squeezeBlankLines(content string, limit int) string {
	if content == "" {
		return ""
	}
	if limit < 1 {
		limit = 1
	}

	var b strings.Builder
	b.Grow(len(content))
	blanks := 0
	for _, line := range render.SplitLines(content) {
		text := line.Text(content)
		isBlank := text == "" || text == "\r"
		if isBlank {
			blanks++
			if blanks > limit {
				continue
			}
		} else {
			blanks = 0
		}
		b.WriteString(text)
		if line.HasNewline {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
