package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/graph"
	"github.com/viant/typedmind/parser"
	"github.com/viant/typedmind/validator"
)

func validate(t *testing.T, text string, options ...validator.Option) (*parser.Result, *validator.Result) {
	t.Helper()
	parsed, err := parser.Parse(text)
	require.NoError(t, err)
	require.Empty(t, parsed.ParseErrors)
	options = append([]validator.Option{validator.WithParseResult(parsed)}, options...)
	return parsed, validator.Validate(parsed.Graph, options...)
}

func messages(diagnostics []*diagnostic.Diagnostic, code diagnostic.Code) []string {
	var result []string
	for _, d := range diagnostics {
		if d.Code == code {
			result = append(result, d.Message)
		}
	}
	return result
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		options     []validator.Option
		code        diagnostic.Code
		expect      []string
	}{
		{
			description: "inheritance cycle reported once",
			input:       "A <: B\nB <: C\nC <: A",
			options:     []validator.Option{validator.WithSkipExportCheck(true)},
			code:        diagnostic.CodeStructural,
			expect:      []string{"circular inheritance detected: A -> B -> C -> A"},
		},
		{
			description: "self extension",
			input:       "A <: A",
			options:     []validator.Option{validator.WithSkipExportCheck(true)},
			code:        diagnostic.CodeStructural,
			expect:      []string{"Class 'A' extends itself"},
		},
		{
			description: "file import cycle through exports",
			input: `A @ a.ts:
  <- [fb]
  -> [fa]
B @ b.ts:
  <- [fa]
  -> [fb]
fa :: () => void
fb :: () => void`,
			code:   diagnostic.CodeStructural,
			expect: []string{"circular import detected: A -> B -> A"},
		},
		{
			description: "containment cycle and parent count",
			input: `Shell &! "shell"
  > [Left]
Left & "left"
  > [Right]
Right & "right"
  > [Left]`,
			code: diagnostic.CodeStructural,
			expect: []string{
				"circular containment detected: Left -> Right -> Left",
				"non-root UIComponent 'Left' must be contained by exactly one component, found 2",
			},
		},
		{
			description: "duplicate path and export",
			input: `A @ src/a.ts:
  -> [shared]
B @ src/a.ts:
  -> [shared]
shared :: () => void`,
			code: diagnostic.CodeStructural,
			expect: []string{
				"duplicate path 'src/a.ts': used by File 'A' and File 'B'",
				"'shared' is exported by both File 'A' and File 'B'",
			},
		},
		{
			description: "file and class naming conflict",
			input: `User @ src/user.ts:
  -> [getUser]
User <:
getUser :: () => void`,
			code:   diagnostic.CodeNamingConflict,
			expect: []string{"naming conflict: 'User' is declared as both File and Class"},
		},
		{
			description: "reference matrix",
			input: `run :: () => void
  ~> [Settings, missing]
Settings %`,
			code: diagnostic.CodeReference,
			expect: []string{
				"Function 'run' cannot use calls to reference DTO 'Settings' (allowed: Function, Class, ClassFile)",
				"Function 'run' calls undefined entity 'missing'",
			},
		},
		{
			description: "method calls",
			input: `Service <:
  => [start]
run :: () => void
  ~> [Service.start, Service.stop, Ghost.walk]`,
			code: diagnostic.CodeReference,
			expect: []string{
				"Function 'run' calls 'Service.stop' but Class 'Service' has no method 'stop'",
				"Function 'run' calls 'Ghost.walk' but 'Ghost' is not defined",
			},
		},
		{
			description: "affectedBy without matching affects",
			input: `Panel &! "panel"
  <~ [render, ghost]
render :: () => void`,
			code: diagnostic.CodeReference,
			expect: []string{
				"UIComponent 'Panel' is affectedBy 'render' but 'render' does not affect it",
				"UIComponent 'Panel' is affectedBy undefined Function 'ghost'",
			},
		},
		{
			description: "dto field types",
			input: `User % "user"
  - id: string
  - posts: Post[]
  - owner: Map<string, Account>
  - onSave: (user: User) => void
  - helper: run | null
Post %
run :: () => void`,
			code: diagnostic.CodeType,
			expect: []string{
				"DTO 'User' field 'owner' references undefined type 'Account'",
				"DTO 'User' field 'onSave' cannot have a function type '(user: User) => void'",
				"DTO 'User' field 'helper' type 'run' must be a DTO or Class, found Function",
			},
		},
		{
			description: "leftover dependencies",
			input: `run :: () => void
  <- [lodash, Req, Res, ghost]
lodash ^ "utilities"
Req %
Res %`,
			code: diagnostic.CodeReference,
			expect: []string{
				"Function 'run' depends on Dependency 'lodash' directly",
				"Function 'run' has ambiguous DTO dependency 'Req'",
				"Function 'run' has ambiguous DTO dependency 'Res'",
				"Function 'run' depends on undefined entity 'ghost'",
			},
		},
		{
			description: "asset program",
			input: `Bundle ~ "bundle"
  >> Web
Web -> Main
Main @ src/main.ts:
Other ~ "other"
  >> Main`,
			code:   diagnostic.CodeReference,
			expect: []string{"Asset 'Other' containsProgram 'Main' must be a Program, found File"},
		},
		{
			description: "consumption targets",
			input: `run :: () => void
  $< [API_KEY, helper]
API_KEY $env "key"
helper :: () => void`,
			code:   diagnostic.CodeReference,
			expect: []string{"Function 'run' cannot consume Function 'helper' (allowed: RunParameter, Asset, Dependency, Constants)"},
		},
		{
			description: "imports",
			input: `Main @ src/main.ts:
  <- [helpr, Util*, helper]
helper :: () => void`,
			code: diagnostic.CodeImport,
			expect: []string{
				"File 'Main' imports undefined entity 'helpr'",
				"File 'Main' wildcard import 'Util*' does not match any entity",
			},
		},
		{
			description: "dependency exports satisfy imports",
			input: `Main @ src/main.ts:
  <- [useQuery]
react-query ^ "data fetching"
  -> [useQuery]`,
			code: diagnostic.CodeImport,
		},
		{
			description: "containedBy without matching contains",
			input: `Parent &! "root"
Child & "child"
  < [Parent]
Other & "other"
  < [run]
run :: () => void`,
			code: diagnostic.CodeReference,
			expect: []string{
				"UIComponent 'Child' is containedBy 'Parent' but 'Parent' does not contain it",
				"UIComponent 'Other' is containedBy Function 'run'; only UIComponents can contain components",
			},
		},
		{
			description: "consumedBy without matching consumes",
			input: `parameter PORT {
  type: env
  consumedBy: [start, ghost, Config]
}
start :: () => void
Config %`,
			code: diagnostic.CodeReference,
			expect: []string{
				"RunParameter 'PORT' is consumedBy 'start' but 'start' does not consume it",
				"RunParameter 'PORT' is consumedBy undefined Function 'ghost'",
				"RunParameter 'PORT' is consumedBy DTO 'Config'; only Functions consume parameters",
			},
		},
		{
			description: "importedBy without matching imports",
			input: `dependency lodash {
  purpose: "utilities"
  importedBy: [Main, ghost]
}
Main @ src/main.ts:`,
			code: diagnostic.CodeReference,
			expect: []string{
				"Dependency 'lodash' is importedBy File 'Main' but 'Main' does not import it",
				"Dependency 'lodash' is importedBy undefined entity 'ghost'",
			},
		},
		{
			description: "function input and output must be DTOs",
			input: `run :: () => void
  <- Reqest
  -> helper
helper :: () => void`,
			options: []validator.Option{validator.WithSkipExportCheck(true)},
			code:    diagnostic.CodeType,
			expect: []string{
				"Function 'run' input 'Reqest' is not a defined DTO",
				"Function 'run' output 'helper' must be a DTO, found Function",
			},
		},
		{
			description: "undefined and illegal exports",
			input: `App -> Main
Main @ src/main.ts:
  -> [run, ghost, App]
run :: () => void`,
			code: diagnostic.CodeReference,
			expect: []string{
				"File 'Main' exports undefined entity 'ghost'",
				"File 'Main' cannot export Program 'App'",
			},
		},
		{
			description: "export completeness",
			input: `App -> Main
Main @ src/main.ts:
  -> [run]
run :: () => void
helper :: () => void
Service <:
  => [save]
save :: () => void
Service.stop :: () => void`,
			code: diagnostic.CodeStructural,
			expect: []string{
				"Class 'Service' is not exported by any File",
				"Function 'helper' is not exported by any File and is not a class method",
			},
		},
		{
			description: "anchored paths may share a file",
			input: `Header @ src/view.ts#header:
Footer @ src/view.ts#footer:
Same @ src/view.ts#header:
Util @ src/util.ts:
Helpers @ src/util.ts:`,
			code:   diagnostic.CodeStructural,
			expect: []string{"duplicate path 'src/util.ts': used by File 'Util' and File 'Helpers'"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			_, result := validate(t, testCase.input, testCase.options...)
			assert.EqualValues(t, testCase.expect, messages(result.Errors, testCase.code))
		})
	}
}

func TestValidate_EntryPoint(t *testing.T) {
	_, result := validate(t, "App -> Main")
	require.Len(t, result.Errors, 1)
	assert.False(t, result.Valid)
	assert.Equal(t, "Program 'App' entry point 'Main' is not a defined File", result.Errors[0].Message)
	assert.Equal(t, diagnostic.Error, result.Errors[0].Severity)
	assert.Equal(t, graph.Position{Line: 1, Column: 1}, result.Errors[0].Position)

	parsed, result := validate(t, "App -> Main\nMain @ src/index.ts:")
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.EqualValues(t, []*graph.Reference{{From: "App", Type: graph.RelEntry, FromType: graph.KindProgram}},
		parsed.Graph.Lookup("Main").Meta().ReferencedBy)

	validator.Validate(parsed.Graph)
	assert.Len(t, parsed.Graph.Lookup("Main").Meta().ReferencedBy, 1)
}

func TestValidate_Orphans(t *testing.T) {
	input := `App -> Main
Main @ src/index.ts:
  <- [helper]
Utils @ src/utils.ts:
  -> [helper, unused]
helper :: () => void
unused :: () => void
Lonely @ src/lonely.ts:
  -> [lonelyFn]
lonelyFn :: () => void`
	_, result := validate(t, input)
	orphans := diagnostic.Filter(result.Errors, diagnostic.Warning)
	require.Len(t, orphans, 1)
	assert.Equal(t, diagnostic.CodeOrphan, orphans[0].Code)
	assert.Equal(t, "orphaned File 'Lonely': none of its exports are imported and nothing references it", orphans[0].Message)
	assert.True(t, result.Valid)

	_, result = validate(t, input, validator.WithSkipOrphans(true))
	assert.Empty(t, messages(result.Errors, diagnostic.CodeOrphan))
}

func TestValidate_WildcardKeepsFileAlive(t *testing.T) {
	input := `App -> Main
Main @ src/index.ts:
  <- [str*]
Strings @ src/strings.ts:
  -> [strTrim]
strTrim :: (s: string) => string`
	_, result := validate(t, input)
	assert.Empty(t, messages(result.Errors, diagnostic.CodeOrphan))
	assert.True(t, result.Valid)
}

func TestValidate_BidirectionalAffects(t *testing.T) {
	parsed, result := validate(t, `App -> Main
Main @ src/main.ts:
  -> [render]
render :: () => void
  ~ [Panel]
Panel &! "panel"`)
	assert.True(t, result.Valid)
	panel := parsed.Graph.Lookup("Panel").(*graph.UIComponent)
	assert.EqualValues(t, []string{"render"}, panel.AffectedBy)

	_, result = validate(t, `Panel &! "panel"
  <~ [render]`)
	assert.False(t, result.Valid)
	assert.EqualValues(t, []string{"UIComponent 'Panel' is affectedBy undefined Function 'render'"},
		messages(result.Errors, diagnostic.CodeReference))
}

func TestValidate_ImportSuggestion(t *testing.T) {
	_, result := validate(t, "Main @ src/main.ts:\n  <- [helpr]\nhelper :: () => void")
	var actual *diagnostic.Diagnostic
	for _, d := range result.Errors {
		if d.Code == diagnostic.CodeImport {
			actual = d
		}
	}
	require.NotNil(t, actual)
	assert.Equal(t, "did you mean 'helper'?", actual.Suggestion)
}

func TestValidate_NamingConflictSuggestion(t *testing.T) {
	_, result := validate(t, "User @ src/user.ts:\nUser <:")
	var conflicts []*diagnostic.Diagnostic
	for _, d := range result.Errors {
		if d.Code == diagnostic.CodeNamingConflict {
			conflicts = append(conflicts, d)
		}
	}
	require.Len(t, conflicts, 1)
	assert.Equal(t, "merge them into a ClassFile: User #: path <: Base", conflicts[0].Suggestion)
	assert.Equal(t, 2, conflicts[0].Position.Line)
}

func TestAllowed(t *testing.T) {
	testCases := []struct {
		source   graph.Kind
		relation string
		target   graph.Kind
		expect   bool
	}{
		{graph.KindFunction, graph.RelCalls, graph.KindClass, true},
		{graph.KindFunction, graph.RelCalls, graph.KindDTO, false},
		{graph.KindFile, graph.RelImports, graph.KindDependency, true},
		{graph.KindFile, graph.RelImports, graph.KindProgram, false},
		{graph.KindFunction, graph.RelConsumes, graph.KindConstants, true},
		{graph.KindConstants, graph.RelSchema, graph.KindDTO, true},
		{graph.KindConstants, graph.RelSchema, graph.KindFunction, false},
		{graph.KindProgram, graph.RelEntry, graph.KindClassFile, true},
		{graph.KindClass, graph.RelCalls, graph.KindFunction, false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, validator.Allowed(testCase.source, testCase.relation, testCase.target),
			"%s %s %s", testCase.source, testCase.relation, testCase.target)
	}
}

func TestTypeNames(t *testing.T) {
	testCases := []struct {
		expr   string
		expect []string
	}{
		{expr: "string", expect: []string{"string"}},
		{expr: "User[]", expect: []string{"User"}},
		{expr: "User | Admin | null", expect: []string{"User", "Admin", "null"}},
		{expr: "[User, number]", expect: []string{"User", "number"}},
		{expr: "Map<string, Array<Post>>", expect: []string{"Map", "string", "Array", "Post"}},
		{expr: "(User | Guest)[]", expect: []string{"User", "Guest"}},
		{expr: "'a' | 'b'"},
		{expr: "{ id: string }"},
	}
	for _, testCase := range testCases {
		assert.EqualValues(t, testCase.expect, validator.TypeNames(testCase.expr), testCase.expr)
	}
}
