package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type Options struct {
	// Args is the argv excluding the program name (typically os.Args[1:]).
	Args []string

	// In/Out/Err override standard I/O. If nil, defaults are used.
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Context is passed to a command handler.
//
// Positional args are in Args. Flag values are typically read via variables bound
// at command construction time (e.g. fs.Bool(...)).
type Context struct {
	context.Context

	Command *Command
	Args    []string

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run executes a command tree as a CLI program and returns a process exit code:
// 0 for success, 1 for handler errors, 2 for usage errors.
func Run(ctx context.Context, root *Command, opts Options) int {
	if root == nil {
		panic("cli: Run called with nil root")
	}
	if root.Name == "" {
		panic("cli: Run called with root.Name empty")
	}

	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	selected, args, parseErr := parseArgv(root, opts.Args, out)
	if parseErr != nil {
		if errors.Is(parseErr, errHelpPrinted) {
			return 0
		}
		printUsageError(root, selected, parseErr, errOut)
		return 2
	}

	if selected.Run == nil {
		if len(args) == 0 {
			printUsageError(root, selected, usageErrorf("missing required subcommand"), errOut)
			return 2
		}
		printUsageError(root, selected, usageErrorf("unknown subcommand: %s", args[0]), errOut)
		return 2
	}

	c := &Context{
		Context: ctx,
		Command: selected,
		Args:    args,
		In:      in,
		Out:     out,
		Err:     errOut,
	}
	if err := selected.Run(c); err != nil {
		return exitForHandlerError(root, selected, err, errOut)
	}
	return 0
}

var errHelpPrinted = errors.New("help printed")

func parseArgv(root *Command, argv []string, out io.Writer) (*Command, []string, error) {
	selected := root
	selectionEnded := false
	parsingEnded := false
	var positional []string

	for i := 0; i < len(argv); i++ {
		token := argv[i]

		if parsingEnded {
			positional = append(positional, argv[i:]...)
			break
		}

		if token == "--" {
			parsingEnded = true
			selectionEnded = true
			continue
		}

		if token == "-h" || token == "--help" {
			writeHelp(out, root, selected)
			return selected, nil, errHelpPrinted
		}

		if isFlagToken(token) {
			consumed, err := parseFlagToken(selected.flags, token, argv, i)
			if err != nil {
				return selected, nil, err
			}
			i += consumed
			continue
		}

		if !selectionEnded {
			if len(positional) == 0 {
				if child := selected.childByToken(token); child != nil {
					selected = child
					continue
				}
			}
			selectionEnded = true
		}

		positional = append(positional, token)
	}
	return selected, positional, nil
}

func isFlagToken(token string) bool {
	return strings.HasPrefix(token, "-") && token != "-" // "-" is a valid positional arg (stdin).
}

func parseFlagToken(fs *FlagSet, token string, argv []string, idx int) (int, error) {
	var next *string
	if idx+1 < len(argv) {
		next = &argv[idx+1]
	}

	var name string
	var shorthand rune
	var inlineValue *string

	switch {
	case strings.HasPrefix(token, "--"):
		var value string
		var hasValue bool
		name, value, hasValue = splitFlagValue(token[2:])
		if hasValue {
			inlineValue = &value
		}
	case len(token) >= 3 && token[2] != '=':
		// Single-dash long flag: -name or -name=value.
		var value string
		var hasValue bool
		name, value, hasValue = splitFlagValue(token[1:])
		if hasValue {
			inlineValue = &value
		}
	default:
		if len(token) < 2 {
			return 0, usageErrorf("unknown flag: %s", token)
		}
		shorthand = rune(token[1])
		if len(token) >= 3 && token[2] == '=' {
			v := token[3:]
			inlineValue = &v
		}
	}

	def := fs.lookup(name, shorthand)
	if def == nil {
		return 0, usageErrorf("unknown flag: %s", token)
	}

	consumeNext := false
	var raw string
	switch {
	case inlineValue != nil:
		raw = *inlineValue
	case def.kind == flagBool:
		raw = "true"
	case next == nil || *next == "--":
		return 0, usageErrorf("flag needs a value: %s", token)
	default:
		raw = *next
		consumeNext = true
	}

	if err := setFlagValue(def, raw); err != nil {
		return 0, usageErrorf("invalid value for %s: %v", displayFlag(def), err)
	}
	if consumeNext {
		return 1, nil
	}
	return 0, nil
}

func splitFlagValue(s string) (name, value string, ok bool) {
	if i := strings.IndexByte(s, '='); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

func exitForHandlerError(root, cmd *Command, err error, errOut io.Writer) int {
	var ec ExitCoder
	if errors.As(err, &ec) {
		code := ec.ExitCode()
		if code == 2 {
			printUsageError(root, cmd, err, errOut)
			return 2
		}
		if code != 0 {
			if msg := err.Error(); msg != "" {
				fmt.Fprintln(errOut, msg)
			}
		}
		return code
	}

	if msg := err.Error(); msg != "" {
		fmt.Fprintln(errOut, msg)
	}
	return 1
}

func printUsageError(root, cmd *Command, err error, errOut io.Writer) {
	msg := usageErrorMessage(err)
	if msg != "" {
		fmt.Fprintln(errOut, msg)
		fmt.Fprintln(errOut)
	}
	writeHelp(errOut, root, cmd)
}

func usageErrorMessage(err error) string {
	var ue UsageError
	if errors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	if err == nil || errors.Is(err, errHelpPrinted) {
		return ""
	}
	return err.Error()
}
