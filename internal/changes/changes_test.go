package changes

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify_Identical(t *testing.T) {
	text := "a\nb\nc\n"
	res := Classify(text, text)
	require.False(t, res.HasChanges())
	for i := 1; i <= 3; i++ {
		require.Equal(t, TagUnchanged, res.TagFor(i))
	}
	require.Empty(t, res.Markers())
}

func TestClassify_SingleLineModified(t *testing.T) {
	res := Classify("a\nb\nc\n", "a\nx\nc\n")
	require.Equal(t, TagUnchanged, res.TagFor(1))
	require.Equal(t, TagModified, res.TagFor(2))
	require.Equal(t, TagUnchanged, res.TagFor(3))
	require.Empty(t, res.Markers())
}

func TestClassify_AppendedLine(t *testing.T) {
	res := Classify("a\nb\n", "a\nb\nc\n")
	require.Equal(t, TagUnchanged, res.TagFor(1))
	require.Equal(t, TagUnchanged, res.TagFor(2))
	require.Equal(t, TagAdded, res.TagFor(3))
	require.Empty(t, res.Markers())
}

func TestClassify_DeletedLine(t *testing.T) {
	res := Classify("a\nb\nc\n", "a\nc\n")
	require.Equal(t, TagUnchanged, res.TagFor(1))
	require.Equal(t, TagUnchanged, res.TagFor(2))
	require.Equal(t, []DeletionMarker{{AfterLine: 1, Count: 1}}, res.Markers())
	require.Equal(t, 1, res.DeletedAfter(1))
	require.Equal(t, 0, res.DeletedAfter(2))
}

func TestClassify_DeletionBeforeFirstLine(t *testing.T) {
	res := Classify("gone\na\nb\n", "a\nb\n")
	require.Equal(t, TagUnchanged, res.TagFor(1))
	require.Equal(t, TagUnchanged, res.TagFor(2))
	require.Equal(t, []DeletionMarker{{AfterLine: 0, Count: 1}}, res.Markers())
}

func TestClassify_ReplaceRunPairsThenAdds(t *testing.T) {
	// One old line replaced by three new lines: the first pairs up as a
	// modification, the rest are additions.
	res := Classify("a\nb\nz\n", "a\nx\ny\nw\nz\n")
	require.Equal(t, TagUnchanged, res.TagFor(1))
	require.Equal(t, TagModified, res.TagFor(2))
	require.Equal(t, TagAdded, res.TagFor(3))
	require.Equal(t, TagAdded, res.TagFor(4))
	require.Equal(t, TagUnchanged, res.TagFor(5))
	require.Empty(t, res.Markers())
}

func TestClassify_ReplaceRunPairsThenDeletes(t *testing.T) {
	// Three old lines replaced by one: one modification plus a marker for the
	// two extra deletions, anchored after the modified line.
	res := Classify("a\nb\nc\nd\nz\n", "a\nx\nz\n")
	require.Equal(t, TagUnchanged, res.TagFor(1))
	require.Equal(t, TagModified, res.TagFor(2))
	require.Equal(t, TagUnchanged, res.TagFor(3))
	require.Equal(t, []DeletionMarker{{AfterLine: 2, Count: 2}}, res.Markers())
}

func TestClassify_EmptyOld(t *testing.T) {
	res := Classify("", "a\nb\n")
	require.Equal(t, TagAdded, res.TagFor(1))
	require.Equal(t, TagAdded, res.TagFor(2))
	require.Empty(t, res.Markers())
}

func TestClassify_EmptyNew(t *testing.T) {
	res := Classify("a\nb\n", "")
	require.True(t, res.HasChanges())
	require.Equal(t, []DeletionMarker{{AfterLine: 0, Count: 2}}, res.Markers())
}

func TestClassify_NoTrailingNewline(t *testing.T) {
	res := Classify("a\nb", "a\nb\nc")
	require.Equal(t, TagUnchanged, res.TagFor(1))
	// "b" gains a newline and "c" appears; both sides of the tail changed.
	require.NotEqual(t, TagUnchanged, res.TagFor(3))
}

func TestClassify_OutOfRangeLines(t *testing.T) {
	res := Classify("a\n", "a\n")
	require.Equal(t, TagUnchanged, res.TagFor(0))
	require.Equal(t, TagUnchanged, res.TagFor(99))
}

func TestTagString(t *testing.T) {
	require.Equal(t, "unchanged", TagUnchanged.String())
	require.Equal(t, "added", TagAdded.String())
	require.Equal(t, "modified", TagModified.String())
}

func TestForFile_OutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0o644))

	_, ok := ForFile(path, "hello\n")
	require.False(t, ok)
}

func TestForFile_TracksCommittedFile(t *testing.T) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	runGit := func(args ...string) {
		cmd := exec.Command(gitPath, args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	runGit("init")
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0o644))
	runGit("add", "file.txt")
	runGit("commit", "-m", "initial")

	current := "a\nX\nc\n"
	res, ok := ForFile(path, current)
	require.True(t, ok)
	require.Equal(t, TagModified, res.TagFor(2))
	require.Equal(t, TagUnchanged, res.TagFor(1))
	require.Equal(t, TagUnchanged, res.TagFor(3))

	_, ok = ForFile(filepath.Join(dir, "untracked.txt"), "x\n")
	require.False(t, ok)
}

func TestCountLines(t *testing.T) {
	require.Equal(t, 0, countLines(""))
	require.Equal(t, 1, countLines("a"))
	require.Equal(t, 1, countLines("a\n"))
	require.Equal(t, 2, countLines("a\nb"))
	require.Equal(t, 2, countLines("a\nb\n"))
	require.Equal(t, 2, countLines(strings.Repeat("x", 10)+"\n\n"))
}
