package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/viant/typedmind/graph"
)

const (
	namePattern           = `([A-Za-z_][\w.]*)`
	dependencyNamePattern = `(@?[A-Za-z0-9_][\w@./-]*)`
	listPattern           = `\[(.*)\]`
)

// declarationPattern matches an unindented entity declaration line
type declarationPattern struct {
	kind graph.Kind
	expr *regexp.Regexp
}

// declarationPatterns are tried in order: several patterns accept subsets of others' input.
var declarationPatterns = []declarationPattern{
	{graph.KindProgram, regexp.MustCompile(`^` + namePattern + `\s*->\s*` + namePattern + `(?:\s+v(\S+))?$`)},
	{graph.KindFile, regexp.MustCompile(`^` + namePattern + `\s*@\s*(.+?)\s*:$`)},
	{graph.KindFunction, regexp.MustCompile(`^` + namePattern + `\s*::\s*(.+)$`)},
	{graph.KindClassFile, regexp.MustCompile(`^` + namePattern + `\s*#:\s*(.+?)(?:\s*<:\s*(.*))?$`)},
	{graph.KindClass, regexp.MustCompile(`^` + namePattern + `\s*<:\s*(.*)$`)},
	{graph.KindConstants, regexp.MustCompile(`^` + namePattern + `\s*!\s*(.+?)(?:\s*:\s*` + namePattern + `)?$`)},
	{graph.KindDTO, regexp.MustCompile(`^` + namePattern + `\s*%\s*(?:"([^"]*)")?$`)},
	{graph.KindAsset, regexp.MustCompile(`^` + namePattern + `\s*~\s*"([^"]*)"$`)},
	{graph.KindUIComponent, regexp.MustCompile(`^` + namePattern + `\s*(&!?)\s*"([^"]*)"$`)},
	{graph.KindRunParameter, regexp.MustCompile(`^` + namePattern + `\s*\$([A-Za-z]\w*)\s*"([^"]*)"(?:\s*=\s*"([^"]*)")?(\s*\(required\))?$`)},
	{graph.KindDependency, regexp.MustCompile(`^` + dependencyNamePattern + `\s*\^\s*"([^"]*)"(?:\s+v(\S+))?$`)},
}

var (
	longformHeaderExpr = regexp.MustCompile(`^([A-Za-z]+)\s+` + dependencyNamePattern + `\s*\{$`)
	genericHeaderExpr  = regexp.MustCompile(`^` + dependencyNamePattern + `\s*\{$`)
	importExpr         = regexp.MustCompile(`^@?import\s+"([^"]+)"(?:\s+as\s+([A-Za-z_]\w*))?$`)
	methodsAheadExpr   = regexp.MustCompile(`^=>\s*\[`)
)

// Operator identifies a continuation line form
type Operator string

const (
	OpDepends         Operator = "<- []"
	OpInput           Operator = "<-"
	OpExports         Operator = "-> []"
	OpOutput          Operator = "->"
	OpCalls           Operator = "~>"
	OpAffects         Operator = "~"
	OpConsumes        Operator = "$<"
	OpMethods         Operator = "=>"
	OpContainsProgram Operator = ">>"
	OpContains        Operator = ">"
	OpContainedBy     Operator = "<"
	OpAffectedBy      Operator = "<~"
	OpDescription     Operator = `""`
	OpField           Operator = "-"
)

type continuationPattern struct {
	op   Operator
	expr *regexp.Regexp
}

// continuationPatterns are ordered so that longer operators win over their prefixes
var continuationPatterns = []continuationPattern{
	{OpAffectedBy, regexp.MustCompile(`^<~\s*` + listPattern + `$`)},
	{OpDepends, regexp.MustCompile(`^<-\s*` + listPattern + `$`)},
	{OpInput, regexp.MustCompile(`^<-\s*` + namePattern + `$`)},
	{OpExports, regexp.MustCompile(`^->\s*` + listPattern + `$`)},
	{OpOutput, regexp.MustCompile(`^->\s*` + namePattern + `$`)},
	{OpCalls, regexp.MustCompile(`^~>\s*` + listPattern + `$`)},
	{OpAffects, regexp.MustCompile(`^~\s*` + listPattern + `$`)},
	{OpConsumes, regexp.MustCompile(`^\$<\s*` + listPattern + `$`)},
	{OpMethods, regexp.MustCompile(`^=>\s*` + listPattern + `$`)},
	{OpContainsProgram, regexp.MustCompile(`^>>\s*` + namePattern + `$`)},
	{OpContains, regexp.MustCompile(`^>\s*` + listPattern + `$`)},
	{OpContainedBy, regexp.MustCompile(`^<\s*` + listPattern + `$`)},
	{OpDescription, regexp.MustCompile(`^"([^"]*)"$`)},
	{OpField, regexp.MustCompile(`^-\s*([A-Za-z_]\w*)(\?)?\s*:\s*(.+?)(?:\s+("[^"]*"))?(\s*\(optional\))?$`)},
}

// relationOperators flag an unmatched line as a malformed declaration rather than stray text
var relationOperators = []string{"->", "<-", "::", "<:", "#:", "@", "!", "%", "~", "&", "$", "^", "=>", "{"}

// LineKind classifies a source line
type LineKind int

const (
	LineBlank LineKind = iota
	LineComment
	LineImport
	LineLongformHeader
	LineDeclaration
	LineContinuation
	LineUnknown
)

// Line is a classified source line
type Line struct {
	Kind     LineKind
	Number   int // 1-based
	Indent   int
	Text     string // trimmed, trailing comment removed
	Comment  string
	Entity   graph.Kind // declarations and typed longform headers
	Keyword  string     // longform header keyword, empty for generic headers
	Operator Operator   // continuations
	Groups   []string   // regular expression submatches, Groups[0] is the full match
	Import   *graph.Import
}

// Classify matches a single source line against the pattern table
func Classify(raw string, number int) *Line {
	line := &Line{Number: number}
	indentLen := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
	line.Indent = indentLen
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		line.Kind = LineBlank
		return line
	}
	if isCommentLine(trimmed) {
		line.Kind = LineComment
		line.Comment = strings.TrimSpace(strings.TrimLeft(trimmed, "#/"))
		return line
	}
	line.Text, line.Comment = splitComment(trimmed)
	if line.Indent > 0 {
		for _, pattern := range continuationPatterns {
			if groups := pattern.expr.FindStringSubmatch(line.Text); groups != nil {
				line.Kind = LineContinuation
				line.Operator = pattern.op
				line.Groups = groups
				return line
			}
		}
		line.Kind = LineUnknown
		return line
	}
	if groups := importExpr.FindStringSubmatch(line.Text); groups != nil {
		line.Kind = LineImport
		line.Import = &graph.Import{
			Path:     groups[1],
			Alias:    groups[2],
			Position: graph.Position{Line: number, Column: 1},
			Raw:      trimmed,
		}
		return line
	}
	if groups := longformHeaderExpr.FindStringSubmatch(line.Text); groups != nil {
		if kind, ok := graph.KindForKeyword(groups[1]); ok {
			line.Kind = LineLongformHeader
			line.Entity = kind
			line.Keyword = groups[1]
			line.Groups = groups
			return line
		}
	}
	for _, pattern := range declarationPatterns {
		if groups := pattern.expr.FindStringSubmatch(line.Text); groups != nil {
			line.Kind = LineDeclaration
			line.Entity = pattern.kind
			line.Groups = groups
			return line
		}
	}
	if groups := genericHeaderExpr.FindStringSubmatch(line.Text); groups != nil {
		line.Kind = LineLongformHeader
		line.Groups = []string{groups[0], "", groups[1]}
		return line
	}
	line.Kind = LineUnknown
	return line
}

// ResemblesDeclaration reports whether an unmatched line uses a relation operator
func (l *Line) ResemblesDeclaration() bool {
	for _, op := range relationOperators {
		if strings.Contains(l.Text, op) {
			return true
		}
	}
	return false
}

func isCommentLine(trimmed string) bool {
	if strings.HasPrefix(trimmed, "//") {
		return true
	}
	return strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(trimmed, "#:")
}

// splitComment removes a trailing `# comment` that is outside quotes and preceded by whitespace
func splitComment(text string) (string, string) {
	inQuote := false
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"':
			inQuote = !inQuote
		case '#':
			if inQuote || i == 0 || !isSpace(text[i-1]) {
				continue
			}
			if i+1 < len(text) && !isSpace(text[i+1]) {
				continue
			}
			return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:])
		}
	}
	return text, ""
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// splitList splits a comma separated list honoring quotes and nested brackets
func splitList(body string) []string {
	var result []string
	depth := 0
	inQuote := false
	start := 0
	flush := func(end int) {
		item := strings.TrimSpace(body[start:end])
		item = strings.Trim(item, `"'`)
		if item != "" {
			result = append(result, item)
		}
	}
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '"':
			inQuote = !inQuote
		case '[', '<', '{', '(':
			if !inQuote {
				depth++
			}
		case ']', '>', '}', ')':
			if !inQuote && depth > 0 {
				depth--
			}
		case ',':
			if !inQuote && depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(body))
	return result
}
