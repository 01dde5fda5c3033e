package changes

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/glowcat/glowcat/internal/simplelogger"
)

// ForFile classifies current (the buffer about to be rendered) against the
// file's content at HEAD. ok reports whether git data was available; when ok
// is false the caller should render without change decorations.
//
// Git access is best-effort: a missing git binary, a path outside any
// repository, an untracked file, or any subprocess failure all degrade to
// ok==false rather than an error. Failures are logged for diagnosis.
func ForFile(path string, current string) (Result, bool) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return Result{}, false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		simplelogger.Log("changes: abs %q: %v", path, err)
		return Result{}, false
	}
	dir := filepath.Dir(abs)

	top, err := gitOutput(dir, gitPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return Result{}, false
	}

	rel, err := filepath.Rel(top, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return Result{}, false
	}

	// No output trimming: the blob must be byte-exact or trailing-newline
	// differences would show up as phantom modifications.
	cmd := exec.Command(gitPath, "show", "HEAD:"+filepath.ToSlash(rel))
	cmd.Dir = dir
	old, err := cmd.Output()
	if err != nil {
		simplelogger.Log("changes: git show HEAD:%s: %v", filepath.ToSlash(rel), err)
		return Result{}, false
	}

	return Classify(string(old), current), true
}

func gitOutput(dir, gitPath string, args ...string) (string, error) {
	cmd := exec.Command(gitPath, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return trimTrailingNewline(string(out)), nil
}

func trimTrailingNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s
}
