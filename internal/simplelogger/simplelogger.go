package simplelogger

import (
	"bytes"
	"fmt"
	"os"
	"sync"
)

var mu sync.Mutex

// Log is a minimal printf-style logger. It appends formatted output to the
// file named by the GLOWCAT_LOG_FILE environment variable.
//
// glowcat's stdout is the rendered file and its stderr is reserved for
// per-file read errors, so diagnostics from best-effort subsystems (git
// lookups, highlighter failures) land here where they can't corrupt either
// stream.
//
// With GLOWCAT_LOG_FILE unset or unopenable, Log is a no-op.
func Log(format string, args ...any) {
	path := os.Getenv("GLOWCAT_LOG_FILE")
	if path == "" {
		return
	}

	// One open/write/close per call keeps entries whole within a process.
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = f.Write(b.Bytes())
}
