package parser

import (
	"strings"

	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/grammar"
	"github.com/viant/typedmind/graph"
)

// lookaheadLines bounds the File-vs-Class disambiguation scan
const lookaheadLines = 10

// Result holds the outcome of parsing one document
type Result struct {
	Graph           *graph.Graph
	Imports         []*graph.Import
	ParseErrors     []*diagnostic.Diagnostic
	NamingConflicts []*graph.NamingConflict
	GrammarErrors   []*diagnostic.Diagnostic
}

// HasErrors reports error severity parse or grammar diagnostics
func (r *Result) HasErrors() bool {
	return diagnostic.HasErrors(r.ParseErrors) || diagnostic.HasErrors(r.GrammarErrors)
}

// Diagnostics returns parse and grammar diagnostics together
func (r *Result) Diagnostics() []*diagnostic.Diagnostic {
	result := make([]*diagnostic.Diagnostic, 0, len(r.ParseErrors)+len(r.GrammarErrors))
	result = append(result, r.ParseErrors...)
	return append(result, r.GrammarErrors...)
}

// Parser parses shortform and longform TypedMind documents into an entity graph.
// A Parser is not safe for concurrent use; use one instance per goroutine.
type Parser struct {
	options   *Options
	result    *Result
	current   graph.Entity
	conflicts map[string]*graph.NamingConflict
	lines     []string
}

// New creates a parser
func New(options ...Option) *Parser {
	opts := DefaultOptions()
	for _, option := range options {
		option(opts)
	}
	return &Parser{options: opts}
}

// Parse parses text with the given options
func Parse(text string, options ...Option) (*Result, error) {
	return New(options...).Parse(text)
}

// Parse parses text into a new entity graph. In error recovery mode malformed lines are recorded
// and skipped; otherwise the first malformed line is returned as *SyntaxError.
func (p *Parser) Parse(text string) (*Result, error) {
	p.result = &Result{Graph: graph.NewGraph()}
	p.current = nil
	p.conflicts = map[string]*graph.NamingConflict{}
	p.lines = strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	for i := 0; i < len(p.lines); i++ {
		line := Classify(p.lines[i], i+1)
		switch line.Kind {
		case LineBlank, LineComment:
			continue
		case LineImport:
			p.current = nil
			p.result.Imports = append(p.result.Imports, line.Import)
		case LineLongformHeader:
			p.current = nil
			block := NewLongformParser()
			entity := block.Parse(p.lines, i)
			for _, d := range block.Diagnostics() {
				if err := p.report(d, p.lines[i]); err != nil {
					return nil, err
				}
			}
			if entity != nil {
				p.declare(entity)
			}
			if consumed := block.ConsumedLines(); consumed > 0 {
				i += consumed - 1
			}
		case LineDeclaration:
			entity := p.newEntity(line)
			p.declare(entity)
			p.current = entity
		case LineContinuation:
			if p.current == nil {
				d := diagnostic.Errorf(diagnostic.CodeParse, position(line), "continuation line %q has no preceding entity", line.Text)
				if err := p.report(d, p.lines[i]); err != nil {
					return nil, err
				}
				continue
			}
			if d := applyContinuation(p.current, line); d != nil {
				if err := p.report(d, p.lines[i]); err != nil {
					return nil, err
				}
			}
		case LineUnknown:
			if err := p.reportUnknown(line, p.lines[i]); err != nil {
				return nil, err
			}
		}
	}

	Distribute(p.result.Graph)
	graph.Link(p.result.Graph)
	if p.options.ValidateGrammar {
		p.result.GrammarErrors = grammar.Validate(p.result.Graph)
	}
	return p.result, nil
}

func (p *Parser) reportUnknown(line *Line, raw string) error {
	var d *diagnostic.Diagnostic
	switch {
	case line.Indent > 0:
		d = diagnostic.Errorf(diagnostic.CodeParse, position(line), "unrecognized continuation line %q", line.Text)
		if p.current == nil {
			d.Severity = diagnostic.Warning
		}
	case line.ResemblesDeclaration():
		d = diagnostic.Errorf(diagnostic.CodeParse, position(line), "malformed entity declaration %q", line.Text).
			WithSuggestion(suggestDeclaration(line.Text))
	default:
		d = diagnostic.Warnf(diagnostic.CodeParse, position(line), "unrecognized line %q ignored", line.Text)
	}
	return p.report(d, raw)
}

func (p *Parser) report(d *diagnostic.Diagnostic, raw string) error {
	if p.options.Source != "" {
		d.File = p.options.Source
	}
	p.result.ParseErrors = append(p.result.ParseErrors, d)
	if !p.options.ErrorRecovery && d.Severity == diagnostic.Error {
		return newSyntaxError(d, strings.TrimSpace(raw))
	}
	return nil
}

// declare adds entity to the graph, recording redeclarations as naming conflicts;
// the later declaration replaces the earlier one.
func (p *Parser) declare(entity graph.Entity) {
	meta := entity.Meta()
	meta.Source = p.options.Source
	if prev := p.result.Graph.Add(entity); prev != nil {
		conflict, ok := p.conflicts[meta.Name]
		if !ok {
			conflict = &graph.NamingConflict{Name: meta.Name}
			conflict.Declarations = append(conflict.Declarations, &graph.Declaration{Kind: prev.Kind(), Position: prev.Meta().Position})
			p.conflicts[meta.Name] = conflict
			p.result.NamingConflicts = append(p.result.NamingConflicts, conflict)
		}
		conflict.Declarations = append(conflict.Declarations, &graph.Declaration{Kind: entity.Kind(), Position: meta.Position})
	}
}

func (p *Parser) newEntity(line *Line) graph.Entity {
	kind := line.Entity
	if kind == graph.KindFile && p.hasMethodsAhead(line.Number) {
		kind = graph.KindClass
	}
	g := line.Groups
	entity := graph.New(kind, g[1], position(line))
	meta := entity.Meta()
	meta.Raw = strings.TrimSpace(p.lines[line.Number-1])
	meta.Comment = line.Comment

	switch actual := entity.(type) {
	case *graph.Program:
		actual.Entry = g[2]
		actual.Version = g[3]
	case *graph.File:
		actual.Path = g[2]
	case *graph.Function:
		actual.Signature = strings.TrimSpace(g[2])
	case *graph.ClassFile:
		actual.Path = strings.TrimSpace(g[2])
		actual.Extends, actual.Implements = parseInheritance(g[3])
	case *graph.Class:
		if line.Entity == graph.KindClass {
			actual.Extends, actual.Implements = parseInheritance(g[2])
		}
	case *graph.Constants:
		actual.Path = strings.TrimSpace(g[2])
		actual.Schema = g[3]
	case *graph.DTO:
		actual.Purpose = g[2]
	case *graph.Asset:
		actual.Description = g[2]
	case *graph.UIComponent:
		actual.Root = g[2] == "&!"
		actual.Purpose = g[3]
	case *graph.RunParameter:
		actual.ParamType = g[2]
		actual.Description = g[3]
		actual.DefaultValue = g[4]
		actual.Required = strings.TrimSpace(g[5]) != ""
	case *graph.Dependency:
		actual.Purpose = g[2]
		actual.Version = g[3]
	}
	return entity
}

// hasMethodsAhead reports a `=>` continuation in the lines following a File declaration
func (p *Parser) hasMethodsAhead(lineNumber int) bool {
	for j := lineNumber; j < len(p.lines) && j <= lineNumber+lookaheadLines; j++ {
		next := Classify(p.lines[j], j+1)
		switch next.Kind {
		case LineBlank, LineComment:
			continue
		case LineContinuation:
			if methodsAheadExpr.MatchString(next.Text) {
				return true
			}
			continue
		case LineUnknown:
			if next.Indent > 0 {
				continue
			}
		}
		return false
	}
	return false
}

// parseInheritance splits `Base, [I1, I2]` into extends and implements
func parseInheritance(text string) (string, []string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	var implements []string
	if open := strings.Index(text, "["); open != -1 {
		closing := strings.LastIndex(text, "]")
		if closing < open {
			closing = len(text)
		}
		implements = splitList(text[open+1 : closing])
		text = strings.TrimSpace(text[:open])
		text = strings.TrimSpace(strings.TrimSuffix(text, ","))
	}
	parts := splitList(text)
	if len(parts) == 0 {
		return "", implements
	}
	if len(parts) > 1 {
		implements = graph.AppendUnique(parts[1:], implements...)
	}
	return parts[0], implements
}

func position(line *Line) graph.Position {
	return graph.Position{Line: line.Number, Column: line.Indent + 1}
}

func suggestDeclaration(text string) string {
	switch {
	case strings.Contains(text, "@") && !strings.HasSuffix(text, ":"):
		return "File declarations end with a colon: Name @ path:"
	case strings.Contains(text, "$"):
		return `run parameters use: NAME $env "description" [= "default"] [(required)]`
	case strings.Contains(text, "^"):
		return `dependencies use: name ^ "purpose" [v1.0.0]`
	case strings.Contains(text, "&") || strings.Contains(text, "~"):
		return `UI components and assets need a quoted description: Name & "purpose"`
	}
	return "check the operator and quoting of the declaration"
}
