package graph

import "strings"

// Kind identifies an entity variant
type Kind string

const (
	KindProgram      Kind = "Program"
	KindFile         Kind = "File"
	KindFunction     Kind = "Function"
	KindClass        Kind = "Class"
	KindClassFile    Kind = "ClassFile"
	KindConstants    Kind = "Constants"
	KindDTO          Kind = "DTO"
	KindAsset        Kind = "Asset"
	KindUIComponent  Kind = "UIComponent"
	KindRunParameter Kind = "RunParameter"
	KindDependency   Kind = "Dependency"
)

// Kinds lists all variants in serialization priority order
var Kinds = []Kind{
	KindProgram,
	KindFile,
	KindClassFile,
	KindClass,
	KindFunction,
	KindDTO,
	KindConstants,
	KindAsset,
	KindUIComponent,
	KindRunParameter,
	KindDependency,
}

var kindPriority = func() map[Kind]int {
	result := make(map[Kind]int, len(Kinds))
	for i, kind := range Kinds {
		result[kind] = i
	}
	return result
}()

// Priority returns kind position in serialization order
func (k Kind) Priority() int {
	if p, ok := kindPriority[k]; ok {
		return p
	}
	return len(Kinds)
}

// Keyword returns longform block keyword
func (k Kind) Keyword() string {
	switch k {
	case KindProgram:
		return "program"
	case KindFile:
		return "file"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindClassFile:
		return "classFile"
	case KindConstants:
		return "constants"
	case KindDTO:
		return "dto"
	case KindAsset:
		return "asset"
	case KindUIComponent:
		return "component"
	case KindRunParameter:
		return "parameter"
	case KindDependency:
		return "dependency"
	}
	return ""
}

// KindForKeyword maps a longform keyword (or a type: value) to a kind, matching case-insensitively
func KindForKeyword(keyword string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(keyword)) {
	case "program":
		return KindProgram, true
	case "file":
		return KindFile, true
	case "function":
		return KindFunction, true
	case "class":
		return KindClass, true
	case "classfile":
		return KindClassFile, true
	case "constants":
		return KindConstants, true
	case "dto":
		return KindDTO, true
	case "asset":
		return KindAsset, true
	case "component", "uicomponent":
		return KindUIComponent, true
	case "parameter", "runparameter":
		return KindRunParameter, true
	case "dependency":
		return KindDependency, true
	}
	return "", false
}
