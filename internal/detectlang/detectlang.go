// Package detectlang picks the lexer used to highlight a file.
//
// Detection order: an explicit override wins, then well-known filenames, then
// the lexer registry's filename patterns, then the shebang line, then content
// analysis. Every step degrades to the next; a file nothing recognizes is
// rendered as plain text.
package detectlang

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// Filenames whose language is not recoverable from the extension.
var knownFilenames = map[string]string{
	"makefile":       "Makefile",
	"gnumakefile":    "Makefile",
	"dockerfile":     "Docker",
	"containerfile":  "Docker",
	"rakefile":       "Ruby",
	"gemfile":        "Ruby",
	"vagrantfile":    "Ruby",
	"cmakelists.txt": "CMake",
	"go.mod":         "Go",
	"go.sum":         "Go",
	"cargo.lock":     "TOML",
	"pkgbuild":       "Bash",
	".bashrc":        "Bash",
	".bash_profile":  "Bash",
	".zshrc":         "Bash",
	".gitignore":     "plaintext",
	".gitattributes": "plaintext",
}

var shebangInterpreters = map[string]string{
	"sh":     "Bash",
	"bash":   "Bash",
	"zsh":    "Bash",
	"dash":   "Bash",
	"python": "Python",
	"ruby":   "Ruby",
	"perl":   "Perl",
	"node":   "JavaScript",
	"deno":   "TypeScript",
	"php":    "PHP",
	"awk":    "Awk",
	"lua":    "Lua",
	"fish":   "Fish",
}

// Detect returns the lexer name for a file, or "" when nothing matched.
// content may be empty (e.g. when only the name is known); detection then
// skips the shebang and analysis steps.
func Detect(filename string, content string) string {
	if name, ok := knownFilenames[strings.ToLower(filepath.Base(filename))]; ok {
		return name
	}

	if lexer := lexers.Match(filepath.Base(filename)); lexer != nil {
		return lexer.Config().Name
	}

	if name := fromShebang(content); name != "" {
		return name
	}

	if lexer := lexers.Analyse(content); lexer != nil {
		return lexer.Config().Name
	}

	return ""
}

// Resolve maps a user-supplied language name or alias (ex: "py", "golang") to
// a registered lexer name. ok is false when no lexer matches.
func Resolve(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if lexer := lexers.Get(name); lexer != nil {
		return lexer.Config().Name, true
	}
	return "", false
}

func fromShebang(content string) string {
	if !strings.HasPrefix(content, "#!") {
		return ""
	}
	line := content[2:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}

	interpreter := filepath.Base(fields[0])
	if interpreter == "env" {
		fields = fields[1:]
		for len(fields) > 0 && strings.HasPrefix(fields[0], "-") {
			fields = fields[1:]
		}
		if len(fields) == 0 {
			return ""
		}
		interpreter = filepath.Base(fields[0])
	}

	// "python3.12" matches "python".
	interpreter = strings.TrimRight(interpreter, "0123456789.")

	if name, ok := shebangInterpreters[interpreter]; ok {
		return name
	}
	return ""
}
