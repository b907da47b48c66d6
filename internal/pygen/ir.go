package pygen

// This file houses the intermediate representation handed to the emission
// templates (model -> annotation/metadata/method lines -> render).

// classModel is the root template model for one generated class.
type classModel struct {
	Imports   []string
	Name      string
	Base      string
	Docstring string
	Empty     bool
	Fields    []fieldModel
	Methods   []methodModel
}

// fieldModel is one field line: name, computed annotation, and the optional
// Field(...) metadata call.
type fieldModel struct {
	Name       string
	Annotation string
	Meta       *metaModel
}

// metaModel carries rendered Field(...) keyword arguments. Wrapped selects the
// multi-line form used when the inline call would run long.
type metaModel struct {
	Args    []string
	Wrapped bool
}

// methodModel is one method block: optional decorator plus pre-indented lines.
type methodModel struct {
	Decorator string
	Lines     []string
}
