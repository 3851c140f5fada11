package typedmind_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/typedmind"
	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/generator"
	"github.com/viant/typedmind/graph"
)

func TestCheckFile(t *testing.T) {
	testCases := []struct {
		description string
		files       map[string]string
		valid       bool
		errors      []string
	}{
		{
			description: "aliased import satisfies references",
			files: map[string]string{
				"main.tmd": `@import "./shared.tmd" as Shared
App -> Main
Main @ src/main.ts:
  <- [Shared.formatUser]
  -> [run]
run :: (u: Shared.User) => void
  <- [Shared.User, Shared.formatUser]
`,
				"shared.tmd": `Models @ src/models.ts:
  -> [User, formatUser]
User % "user record"
  - id: string
formatUser :: (u: User) => string
  <- [User]
`,
			},
			valid: true,
		},
		{
			description: "missing import",
			files: map[string]string{
				"main.tmd": "@import \"./absent.tmd\"\nApp -> Main\nMain @ src/main.ts:\n",
			},
			errors: []string{"cannot resolve import './absent.tmd'"},
		},
		{
			description: "local name shadows import",
			files: map[string]string{
				"main.tmd":   "@import \"./shared.tmd\"\nApp -> Main\nMain @ src/main.ts:\n  -> [User]\nUser % \"local\"\n",
				"shared.tmd": "User % \"imported\"\n",
			},
			errors: []string{"'User' is declared locally and imported"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range testCase.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
			}
			report, err := typedmind.CheckFile(context.Background(), filepath.Join(dir, "main.tmd"), nil)
			require.NoError(t, err)
			assert.Equal(t, testCase.valid, report.Valid)
			assert.NotZero(t, report.Fingerprint)
			errs := diagnostic.Filter(report.Diagnostics, diagnostic.Error)
			require.Len(t, errs, len(testCase.errors), errs)
			for i, expect := range testCase.errors {
				assert.Contains(t, errs[i].Message, expect)
			}
		})
	}
}

func TestCheckFile_MergedGraph(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.tmd"), []byte("@import \"./shared.tmd\" as Shared\nrun :: () => void\n  <- [Shared.User]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared.tmd"), []byte("User % \"user\"\n"), 0o644))

	report, err := typedmind.CheckFile(context.Background(), filepath.Join(dir, "main.tmd"), nil)
	require.NoError(t, err)
	fn := report.Graph.Lookup("run").(*graph.Function)
	assert.Equal(t, "Shared.User", fn.Input)
	assert.Empty(t, fn.Dependencies)
	user := report.Graph.Lookup("Shared.User")
	require.NotNil(t, user)
	assert.Contains(t, user.Meta().Source, "shared.tmd")
}

func TestCheckFile_Unreadable(t *testing.T) {
	_, err := typedmind.CheckFile(context.Background(), filepath.Join(t.TempDir(), "absent.tmd"), nil)
	assert.Error(t, err)
}

func TestFacade(t *testing.T) {
	text := "App -> Main\nMain @ src/main.ts:\n"
	result, err := typedmind.Parse(text)
	require.NoError(t, err)
	assert.True(t, typedmind.Validate(result.Graph).Valid)
	assert.Equal(t, generator.Shortform, typedmind.DetectFormat(text).Format)

	long, err := typedmind.ToggleFormat(text)
	require.NoError(t, err)
	assert.Equal(t, "program App {\n  entry: Main\n}\n\nfile Main {\n  path: \"src/main.ts\"\n}\n", long)

	resolved := typedmind.ResolveImports(context.Background(), []*graph.Import{{Path: "absent.tmd"}}, t.TempDir())
	assert.Len(t, resolved.Errors, 1)
	assert.Zero(t, resolved.Graph.Len())
}
