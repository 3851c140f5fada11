package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/graph"
	"github.com/viant/typedmind/parser"
)

const todoShortform = `# Todo application
@import "./shared.tmd" as Shared
TodoApp -> AppEntry v1.0.0
AppEntry @ src/index.ts:
  <- [createApp]
  -> [main]
createApp :: (config: Config) => App
  "Creates the application"
  <- [Config, AppRoot, DB_URL, Logger]
Config % "Application settings"
  - port: number "listen port"
  - host?: string
AppRoot &! "Root component"
DB_URL $env "Database url" (required)
Logger <: BaseLogger # structured logging
  => [log, flush]
`

func TestParse_Shortform(t *testing.T) {
	result, err := parser.Parse(todoShortform)
	require.NoError(t, err)
	assert.Empty(t, result.ParseErrors)
	assert.Equal(t, 7, result.Graph.Len())

	require.Len(t, result.Imports, 1)
	assert.Equal(t, "./shared.tmd", result.Imports[0].Path)
	assert.Equal(t, "Shared", result.Imports[0].Alias)

	program, ok := result.Graph.Lookup("TodoApp").(*graph.Program)
	require.True(t, ok)
	assert.Equal(t, "AppEntry", program.Entry)
	assert.Equal(t, "1.0.0", program.Version)
	assert.Equal(t, graph.Position{Line: 3, Column: 1}, program.Position)

	file, ok := result.Graph.Lookup("AppEntry").(*graph.File)
	require.True(t, ok)
	assert.Equal(t, "src/index.ts", file.Path)
	assert.EqualValues(t, []string{"createApp"}, file.Imports)
	assert.EqualValues(t, []string{"main"}, file.Exports)

	fn, ok := result.Graph.Lookup("createApp").(*graph.Function)
	require.True(t, ok)
	assert.Equal(t, "(config: Config) => App", fn.Signature)
	assert.Equal(t, "Creates the application", fn.Description)
	assert.Equal(t, "Config", fn.Input)
	assert.EqualValues(t, []string{"AppRoot"}, fn.Affects)
	assert.EqualValues(t, []string{"DB_URL"}, fn.Consumes)
	assert.EqualValues(t, []string{"Logger"}, fn.Calls)
	assert.Empty(t, fn.Dependencies)

	dto, ok := result.Graph.Lookup("Config").(*graph.DTO)
	require.True(t, ok)
	assert.Equal(t, "Application settings", dto.Purpose)
	assert.EqualValues(t, []*graph.DTOField{
		{Name: "port", Type: "number", Description: "listen port"},
		{Name: "host", Type: "string", Optional: true},
	}, dto.Fields)

	component, ok := result.Graph.Lookup("AppRoot").(*graph.UIComponent)
	require.True(t, ok)
	assert.True(t, component.Root)
	assert.EqualValues(t, []string{"createApp"}, component.AffectedBy)

	param, ok := result.Graph.Lookup("DB_URL").(*graph.RunParameter)
	require.True(t, ok)
	assert.Equal(t, graph.ParamEnv, param.ParamType)
	assert.True(t, param.Required)
	assert.EqualValues(t, []string{"createApp"}, param.ConsumedBy)

	class, ok := result.Graph.Lookup("Logger").(*graph.Class)
	require.True(t, ok)
	assert.Equal(t, "BaseLogger", class.Extends)
	assert.EqualValues(t, []string{"log", "flush"}, class.Methods)
	assert.Equal(t, "structured logging", class.Comment)
}

func TestParse_Distribution(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		assert      func(t *testing.T, fn *graph.Function)
	}{
		{
			description: "single dto becomes input",
			input: `handle :: () => void
  <- [Request]
Request %`,
			assert: func(t *testing.T, fn *graph.Function) {
				assert.Equal(t, "Request", fn.Input)
				assert.Empty(t, fn.Dependencies)
			},
		},
		{
			description: "two dtos are ambiguous",
			input: `handle :: () => void
  <- [Request, Response]
Request %
Response %`,
			assert: func(t *testing.T, fn *graph.Function) {
				assert.Equal(t, "", fn.Input)
				assert.EqualValues(t, []string{"Request", "Response"}, fn.Dependencies)
			},
		},
		{
			description: "explicit input keeps dto as leftover",
			input: `handle :: () => void
  <- Request
  <- [Other]
Request %
Other %`,
			assert: func(t *testing.T, fn *graph.Function) {
				assert.Equal(t, "Request", fn.Input)
				assert.EqualValues(t, []string{"Other"}, fn.Dependencies)
			},
		},
		{
			description: "assets constants and unknown names",
			input: `handle :: () => void
  <- [Logo, Settings, lodash, missing]
Logo ~ "logo image"
Settings ! src/settings.json
lodash ^ "utilities" v4.17.21`,
			assert: func(t *testing.T, fn *graph.Function) {
				assert.EqualValues(t, []string{"Logo", "Settings"}, fn.Consumes)
				assert.EqualValues(t, []string{"lodash", "missing"}, fn.Dependencies)
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			result, err := parser.Parse(testCase.input)
			require.NoError(t, err)
			assert.Empty(t, result.ParseErrors)
			fn, ok := result.Graph.Lookup("handle").(*graph.Function)
			require.True(t, ok)
			testCase.assert(t, fn)
		})
	}
}

func TestParse_FileWithMethodsIsClass(t *testing.T) {
	result, err := parser.Parse(`UserService @ src/user.ts:
  <- [Database]

  => [find, save]
Database ^ "driver"`)
	require.NoError(t, err)
	class, ok := result.Graph.Lookup("UserService").(*graph.Class)
	require.True(t, ok)
	assert.EqualValues(t, []string{"find", "save"}, class.Methods)
	assert.EqualValues(t, []string{"Database"}, class.Imports)

	dependency, ok := result.Graph.Lookup("Database").(*graph.Dependency)
	require.True(t, ok)
	assert.EqualValues(t, []string{"UserService"}, dependency.ImportedBy)
}

func TestParse_DTOFieldTypes(t *testing.T) {
	testCases := []struct {
		description string
		field       string
		expect      *graph.DTOField
	}{
		{
			description: "type with description",
			field:       `- port: number "listen port"`,
			expect:      &graph.DTOField{Name: "port", Type: "number", Description: "listen port"},
		},
		{
			description: "string literal union",
			field:       `- mode: "a" | "b"`,
			expect:      &graph.DTOField{Name: "mode", Type: `"a" | "b"`},
		},
		{
			description: "string literal union with description",
			field:       `- mode: "a" | "b" "run mode"`,
			expect:      &graph.DTOField{Name: "mode", Type: `"a" | "b"`, Description: "run mode"},
		},
		{
			description: "optional string literal union",
			field:       `- mode: "a" | "b" (optional)`,
			expect:      &graph.DTOField{Name: "mode", Type: `"a" | "b"`, Optional: true},
		},
		{
			description: "single string literal",
			field:       `- kind: "draft"`,
			expect:      &graph.DTOField{Name: "kind", Type: `"draft"`},
		},
		{
			description: "function type with description",
			field:       `- onSave: (u: User) => void "callback"`,
			expect:      &graph.DTOField{Name: "onSave", Type: "(u: User) => void", Description: "callback"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			result, err := parser.Parse("Settings %\n  " + testCase.field)
			require.NoError(t, err)
			require.Empty(t, result.ParseErrors)
			dto := result.Graph.Lookup("Settings").(*graph.DTO)
			require.Len(t, dto.Fields, 1)
			assert.EqualValues(t, testCase.expect, dto.Fields[0])
		})
	}
}

func TestParse_NamingConflicts(t *testing.T) {
	result, err := parser.Parse(`User @ src/user.ts:
  -> [getUser]
User <: Base
Base <: Object`)
	require.NoError(t, err)
	require.Len(t, result.NamingConflicts, 1)
	conflict := result.NamingConflicts[0]
	assert.Equal(t, "User", conflict.Name)
	assert.True(t, conflict.IsFileClassCollision())
	assert.EqualValues(t, []graph.Kind{graph.KindFile, graph.KindClass}, conflict.Kinds())
	assert.Equal(t, 1, conflict.Declarations[0].Position.Line)
	assert.Equal(t, 3, conflict.Declarations[1].Position.Line)
	assert.Equal(t, graph.KindClass, result.Graph.KindOf("User"))
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		severity    diagnostic.Severity
		message     string
		line        int
	}{
		{
			description: "missing colon on file",
			input:       "Broken @ src/broken.ts",
			severity:    diagnostic.Error,
			message:     `malformed entity declaration "Broken @ src/broken.ts"`,
			line:        1,
		},
		{
			description: "orphan continuation",
			input:       "  -> [main]",
			severity:    diagnostic.Error,
			message:     `continuation line "-> [main]" has no preceding entity`,
			line:        1,
		},
		{
			description: "operator not valid for kind",
			input:       "Config %\n  => [save]",
			severity:    diagnostic.Error,
			message:     "operator '=>' is not valid for DTO 'Config'",
			line:        2,
		},
		{
			description: "stray text",
			input:       "just some words",
			severity:    diagnostic.Warning,
			message:     `unrecognized line "just some words" ignored`,
			line:        1,
		},
		{
			description: "unterminated block",
			input:       "file Main {\n  path: src/main.ts",
			severity:    diagnostic.Error,
			message:     "unterminated block for 'Main': missing closing brace",
			line:        1,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			result, err := parser.Parse(testCase.input)
			require.NoError(t, err)
			require.Len(t, result.ParseErrors, 1)
			actual := result.ParseErrors[0]
			assert.Equal(t, testCase.severity, actual.Severity)
			assert.Equal(t, testCase.message, actual.Message)
			assert.Equal(t, testCase.line, actual.Position.Line)
			assert.Equal(t, diagnostic.CodeParse, actual.Code)
		})
	}
}

func TestParse_UnterminatedBlockRecovers(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expect      []string
	}{
		{
			description: "declaration after open block",
			input:       "file Main {\n  path: x\nrun :: () => void\n",
			expect:      []string{"Main", "run"},
		},
		{
			description: "block header after open array",
			input:       "file Main {\n  exports: [\n    run,\nfunction run {\n  signature: \"() => void\"\n}\n",
			expect:      []string{"Main", "run"},
		},
		{
			description: "import after open block",
			input:       "dto User {\n  purpose: \"user\"\n@import \"./shared.tmd\"\nLib ^ \"library\"\n",
			expect:      []string{"User", "Lib"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			result, err := parser.Parse(testCase.input)
			require.NoError(t, err)
			require.Len(t, result.ParseErrors, 1)
			assert.Contains(t, result.ParseErrors[0].Message, "missing closing brace")
			assert.Equal(t, 1, result.ParseErrors[0].Position.Line)
			assert.Equal(t, len(testCase.expect), result.Graph.Len())
			for _, name := range testCase.expect {
				assert.True(t, result.Graph.Has(name), name)
			}
		})
	}

	result, err := parser.Parse("dto User {\n  purpose: \"user\"\n@import \"./shared.tmd\"\n")
	require.NoError(t, err)
	require.Len(t, result.Imports, 1)
	assert.Equal(t, "./shared.tmd", result.Imports[0].Path)
}

func TestParse_Strict(t *testing.T) {
	_, err := parser.Parse("Main @ src/main.ts:\nBroken @ src/broken.ts", parser.WithStrict())
	require.Error(t, err)
	var syntaxErr *parser.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 2, syntaxErr.Line)
	assert.Equal(t, "Broken @ src/broken.ts", syntaxErr.Text)

	result, err := parser.Parse("just some words", parser.WithStrict())
	require.NoError(t, err)
	assert.Len(t, result.ParseErrors, 1)
}

func TestParse_Longform(t *testing.T) {
	input := `program TodoApp {
  entry: AppEntry
  version: "1.0.0"
}

file AppEntry {
  path: src/index.ts
  imports: [createApp]
  exports: [
    main,
    helper
  ]
}

function createApp {
  signature: "(config: Config) => App"
  dependencies: [Config]
}

dto Config {
  purpose: "Application settings"
  fields: {
    port: {
      type: number
      description: "listen port"
    }
    host: {
      type: string
      optional: true
    }
  }
}

parameter DB_URL {
  type: env
  description: "Database url"
  required: true
  default: "postgres://localhost"
}

Widget {
  type: UIComponent
  purpose: "Dashboard widget"
  root: true
  comment: "shown on start"
}
`
	result, err := parser.Parse(input)
	require.NoError(t, err)
	assert.Empty(t, result.ParseErrors)
	assert.Equal(t, []string{"TodoApp", "AppEntry", "createApp", "Config", "DB_URL", "Widget"}, result.Graph.Names())

	program := result.Graph.Lookup("TodoApp").(*graph.Program)
	assert.Equal(t, "AppEntry", program.Entry)
	assert.Equal(t, "1.0.0", program.Version)

	file := result.Graph.Lookup("AppEntry").(*graph.File)
	assert.Equal(t, "src/index.ts", file.Path)
	assert.EqualValues(t, []string{"main", "helper"}, file.Exports)
	assert.Equal(t, 6, file.Position.Line)

	fn := result.Graph.Lookup("createApp").(*graph.Function)
	assert.Equal(t, "(config: Config) => App", fn.Signature)
	assert.Equal(t, "Config", fn.Input)

	dto := result.Graph.Lookup("Config").(*graph.DTO)
	assert.EqualValues(t, []*graph.DTOField{
		{Name: "port", Type: "number", Description: "listen port"},
		{Name: "host", Type: "string", Optional: true},
	}, dto.Fields)

	param := result.Graph.Lookup("DB_URL").(*graph.RunParameter)
	assert.Equal(t, graph.ParamEnv, param.ParamType)
	assert.True(t, param.Required)
	assert.Equal(t, "postgres://localhost", param.DefaultValue)

	widget := result.Graph.Lookup("Widget").(*graph.UIComponent)
	assert.True(t, widget.Root)
	assert.Equal(t, "shown on start", widget.Comment)
}

func TestParse_GenericBlockWithoutType(t *testing.T) {
	result, err := parser.Parse("Thing {\n  purpose: \"x\"\n}")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Graph.Len())
	require.Len(t, result.ParseErrors, 1)
	assert.Equal(t, "block 'Thing' has no valid type: field", result.ParseErrors[0].Message)
}

func TestParse_GrammarValidation(t *testing.T) {
	result, err := parser.Parse(`TOKEN $secret "api token"`, parser.WithGrammarValidation(true))
	require.NoError(t, err)
	assert.Empty(t, result.ParseErrors)
	require.Len(t, result.GrammarErrors, 1)
	assert.Equal(t, diagnostic.CodeGrammar, result.GrammarErrors[0].Code)
	assert.True(t, result.HasErrors())
}

func TestParse_Source(t *testing.T) {
	result, err := parser.Parse("Main @ src/main.ts:\nBroken @ x", parser.WithSource("mem://localhost/app.tmd"))
	require.NoError(t, err)
	assert.Equal(t, "mem://localhost/app.tmd", result.Graph.Lookup("Main").Meta().Source)
	require.Len(t, result.ParseErrors, 1)
	assert.Equal(t, "mem://localhost/app.tmd", result.ParseErrors[0].File)
}
