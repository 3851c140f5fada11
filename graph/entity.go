package graph

// Position represents a 1-based line and column in DSL source
type Position struct {
	Line   int `yaml:"line"`
	Column int `yaml:"column"`
}

// Reference is a weak back-reference from another entity
type Reference struct {
	From     string `yaml:"from"`
	Type     string `yaml:"type"` // relation kind, e.g. calls, imports
	FromType Kind   `yaml:"fromType"`
}

// Base holds the fields shared by every entity variant
type Base struct {
	Name         string       `yaml:"name"`
	Position     Position     `yaml:"position"`
	Raw          string       `yaml:"raw,omitempty"`
	Comment      string       `yaml:"comment,omitempty"`
	Source       string       `yaml:"source,omitempty"` // location of the defining document, set for imported entities
	ReferencedBy []*Reference `yaml:"referencedBy,omitempty"`
}

// Meta returns the shared entity fields
func (b *Base) Meta() *Base {
	return b
}

// Entity is implemented by all architecture graph nodes
type Entity interface {
	Kind() Kind
	Meta() *Base
}

// Program is an application entry point
type Program struct {
	Base    `yaml:",inline"`
	Entry   string   `yaml:"entry"`
	Version string   `yaml:"version,omitempty"`
	Purpose string   `yaml:"purpose,omitempty"`
	Exports []string `yaml:"exports,omitempty"`
}

func (p *Program) Kind() Kind { return KindProgram }

// File is a source file
type File struct {
	Base    `yaml:",inline"`
	Path    string   `yaml:"path"`
	Imports []string `yaml:"imports,omitempty"`
	Exports []string `yaml:"exports,omitempty"`
	Purpose string   `yaml:"purpose,omitempty"`
}

func (f *File) Kind() Kind { return KindFile }

// Function is a callable with an opaque signature
type Function struct {
	Base        `yaml:",inline"`
	Signature   string   `yaml:"signature"`
	Description string   `yaml:"description,omitempty"`
	Calls       []string `yaml:"calls,omitempty"`
	Input       string   `yaml:"input,omitempty"`
	Output      string   `yaml:"output,omitempty"`
	Affects     []string `yaml:"affects,omitempty"`
	Consumes    []string `yaml:"consumes,omitempty"`
	// Dependencies holds the generic `<-` list until it is distributed; afterwards only
	// names that could not be classified remain.
	Dependencies []string `yaml:"dependencies,omitempty"`
}

func (f *Function) Kind() Kind { return KindFunction }

// Class is a class or interface declaration
type Class struct {
	Base       `yaml:",inline"`
	Extends    string   `yaml:"extends,omitempty"`
	Implements []string `yaml:"implements,omitempty"`
	Methods    []string `yaml:"methods,omitempty"`
	Imports    []string `yaml:"imports,omitempty"`
	Purpose    string   `yaml:"purpose,omitempty"`
}

func (c *Class) Kind() Kind { return KindClass }

// ClassFile fuses a class with the file defining it
type ClassFile struct {
	Base       `yaml:",inline"`
	Path       string   `yaml:"path"`
	Extends    string   `yaml:"extends,omitempty"`
	Implements []string `yaml:"implements,omitempty"`
	Methods    []string `yaml:"methods,omitempty"`
	Imports    []string `yaml:"imports,omitempty"`
	Exports    []string `yaml:"exports,omitempty"`
	Purpose    string   `yaml:"purpose,omitempty"`
}

func (c *ClassFile) Kind() Kind { return KindClassFile }

// Constants is a configuration or constants file
type Constants struct {
	Base    `yaml:",inline"`
	Path    string `yaml:"path"`
	Schema  string `yaml:"schema,omitempty"`
	Purpose string `yaml:"purpose,omitempty"`
}

func (c *Constants) Kind() Kind { return KindConstants }

// DTOField is a single data-transfer object field; Type is opaque and may encode arrays, unions, tuples or generics
type DTOField struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
	Optional    bool   `yaml:"optional,omitempty"`
}

// DTO is a data-transfer object
type DTO struct {
	Base    `yaml:",inline"`
	Purpose string      `yaml:"purpose,omitempty"`
	Fields  []*DTOField `yaml:"fields,omitempty"`
}

func (d *DTO) Kind() Kind { return KindDTO }

// Field returns a DTO field by name
func (d *DTO) Field(name string) *DTOField {
	for _, field := range d.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// Asset is a static resource
type Asset struct {
	Base            `yaml:",inline"`
	Description     string `yaml:"description"`
	ContainsProgram string `yaml:"containsProgram,omitempty"`
}

func (a *Asset) Kind() Kind { return KindAsset }

// UIComponent is a user interface component
type UIComponent struct {
	Base        `yaml:",inline"`
	Purpose     string   `yaml:"purpose"`
	Root        bool     `yaml:"root,omitempty"`
	Contains    []string `yaml:"contains,omitempty"`
	ContainedBy []string `yaml:"containedBy,omitempty"`
	AffectedBy  []string `yaml:"affectedBy,omitempty"`
}

func (u *UIComponent) Kind() Kind { return KindUIComponent }

// Run parameter kinds
const (
	ParamEnv     = "env"
	ParamIAM     = "iam"
	ParamRuntime = "runtime"
	ParamConfig  = "config"
)

// ParamTypes lists the accepted run parameter kinds
var ParamTypes = []string{ParamEnv, ParamIAM, ParamRuntime, ParamConfig}

// RunParameter is an environment, IAM, runtime or config parameter
type RunParameter struct {
	Base         `yaml:",inline"`
	ParamType    string   `yaml:"paramType"`
	Description  string   `yaml:"description"`
	Required     bool     `yaml:"required,omitempty"`
	DefaultValue string   `yaml:"defaultValue,omitempty"`
	ConsumedBy   []string `yaml:"consumedBy,omitempty"`
}

func (r *RunParameter) Kind() Kind { return KindRunParameter }

// Dependency is an external package
type Dependency struct {
	Base       `yaml:",inline"`
	Purpose    string   `yaml:"purpose"`
	Version    string   `yaml:"version,omitempty"`
	ImportedBy []string `yaml:"importedBy,omitempty"`
	Exports    []string `yaml:"exports,omitempty"`
}

func (d *Dependency) Kind() Kind { return KindDependency }

// New creates an empty entity of the given kind
func New(kind Kind, name string, position Position) Entity {
	base := Base{Name: name, Position: position}
	switch kind {
	case KindProgram:
		return &Program{Base: base}
	case KindFile:
		return &File{Base: base}
	case KindFunction:
		return &Function{Base: base}
	case KindClass:
		return &Class{Base: base}
	case KindClassFile:
		return &ClassFile{Base: base, Exports: []string{name}}
	case KindConstants:
		return &Constants{Base: base}
	case KindDTO:
		return &DTO{Base: base}
	case KindAsset:
		return &Asset{Base: base}
	case KindUIComponent:
		return &UIComponent{Base: base}
	case KindRunParameter:
		return &RunParameter{Base: base}
	case KindDependency:
		return &Dependency{Base: base}
	}
	return nil
}

// Exports returns the export list of exporting entities
func Exports(entity Entity) []string {
	switch actual := entity.(type) {
	case *Program:
		return actual.Exports
	case *File:
		return actual.Exports
	case *ClassFile:
		return actual.Exports
	case *Dependency:
		return actual.Exports
	}
	return nil
}

// Imports returns the import list of importing entities
func Imports(entity Entity) []string {
	switch actual := entity.(type) {
	case *File:
		return actual.Imports
	case *Class:
		return actual.Imports
	case *ClassFile:
		return actual.Imports
	}
	return nil
}

// Methods returns class methods
func Methods(entity Entity) []string {
	switch actual := entity.(type) {
	case *Class:
		return actual.Methods
	case *ClassFile:
		return actual.Methods
	}
	return nil
}

// Extends returns the parent class name
func Extends(entity Entity) string {
	switch actual := entity.(type) {
	case *Class:
		return actual.Extends
	case *ClassFile:
		return actual.Extends
	}
	return ""
}

// PathOf returns the path of path-bearing entities
func PathOf(entity Entity) string {
	switch actual := entity.(type) {
	case *File:
		return actual.Path
	case *ClassFile:
		return actual.Path
	case *Constants:
		return actual.Path
	}
	return ""
}

// IsClassLike reports whether the entity is a Class or ClassFile
func IsClassLike(entity Entity) bool {
	if entity == nil {
		return false
	}
	kind := entity.Kind()
	return kind == KindClass || kind == KindClassFile
}

// IsFileLike reports whether the entity is a File or ClassFile
func IsFileLike(entity Entity) bool {
	if entity == nil {
		return false
	}
	kind := entity.Kind()
	return kind == KindFile || kind == KindClassFile
}

// AppendUnique appends names not yet present, preserving order
func AppendUnique(list []string, names ...string) []string {
	for _, name := range names {
		if name == "" || Contains(list, name) {
			continue
		}
		list = append(list, name)
	}
	return list
}

// Contains reports whether list has name
func Contains(list []string, name string) bool {
	for _, candidate := range list {
		if candidate == name {
			return true
		}
	}
	return false
}
