package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "app.tmd")
	require.NoError(t, os.WriteFile(location, []byte("App -> Main\nMain @ src/main.ts:\n"), 0o644))
	broken := filepath.Join(dir, "broken.tmd")
	require.NoError(t, os.WriteFile(broken, []byte("App -> Main\n"), 0o644))

	testCases := []struct {
		description string
		args        []string
		code        int
		expect      string
	}{
		{description: "no command", args: nil, code: 2, expect: "usage: typedmind"},
		{description: "detect", args: []string{"detect", location}, expect: "shortform 1.00 (shortform lines: 2, longform lines: 0)\n"},
		{description: "format longform", args: []string{"format", "-to", "longform", location}, expect: "program App {\n  entry: Main\n}\n\nfile Main {\n  path: \"src/main.ts\"\n}\n"},
		{description: "format toggle", args: []string{"format", location}, expect: "program App {"},
		{description: "check valid", args: []string{"check", location}, expect: "2 entities, 0 errors"},
		{description: "check invalid", args: []string{"check", "-q", broken}, code: 1, expect: "entry point 'Main' is not a defined File"},
		{description: "export", args: []string{"export", location}, expect: "type: entry"},
		{description: "unknown target", args: []string{"format", "-to", "xml", location}, code: 1},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			var output bytes.Buffer
			code := run(testCase.args, &output)
			assert.Equal(t, testCase.code, code)
			assert.Contains(t, output.String(), testCase.expect)
		})
	}
}

func TestRun_FormatLogs(t *testing.T) {
	var logs bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&logs)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})

	dir := t.TempDir()
	location := filepath.Join(dir, "mixed.tmd")
	require.NoError(t, os.WriteFile(location, []byte("App -> Main\nfile Main {\n  path: x\n}\nrun :: () => void\n"), 0o644))

	var output bytes.Buffer
	assert.Equal(t, 0, run([]string{"format", location}, &output))
	assert.Equal(t, "App -> Main\nMain @ x:\nrun :: () => void\n", output.String())
	assert.Contains(t, logs.String(), "[WARN] toggling mixed-syntax document {longform=3, shortform=2, url="+location+"}")

	logs.Reset()
	output.Reset()
	assert.Equal(t, 0, run([]string{"format", "-w", "-to", "shortform", location}, &output))
	assert.Empty(t, output.String())
	assert.Contains(t, logs.String(), "[INFO] document formatted {to=shortform, url="+location+"}")
	written, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "App -> Main\nMain @ x:\nrun :: () => void\n", string(written))
}
