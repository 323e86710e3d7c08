package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// FakeTranspiler writes an executable POSIX shell script named "butane" into a
// temporary directory and returns its path. body runs after the shebang.
func FakeTranspiler(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "butane")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// RecordingTranspiler returns a fake transpiler that writes its arguments, one per
// line, to argsFile and copies stdin to stdinFile before printing stdout.
func RecordingTranspiler(t *testing.T, stdout string) (bin, argsFile, stdinFile string) {
	t.Helper()

	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args.txt")
	stdinFile = filepath.Join(dir, "stdin.txt")
	bin = FakeTranspiler(t, "for a in \"$@\"; do printf '%s\\n' \"$a\"; done > '"+argsFile+"'\n"+
		"cat > '"+stdinFile+"'\n"+
		"printf '%s' '"+stdout+"'")
	return bin, argsFile, stdinFile
}

// WriteFile writes content to name under a temporary directory and returns the path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
