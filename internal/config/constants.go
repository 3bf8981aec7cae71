package config

// SignatureFileExtensions are the recognized signature file extensions.
var SignatureFileExtensions = []string{".yaml", ".yml"}

// RuntimeImportPath is the Go import path of the foreign value bridge
// every generated file depends on.
const RuntimeImportPath = "github.com/funvibe/jsbind/pkg/ojs"

// RuntimePackage is the package name generated code uses for the bridge.
const RuntimePackage = "ojs"

// ForeignTypeName is how signatures spell the opaque foreign value.
const ForeignTypeName = RuntimePackage + ".Value"

// Conversion function suffixes: T → TToJS / TOfJS.
const (
	ToJSSuffix = "ToJS"
	OfJSSuffix = "OfJS"
)

// SetterPrefix marks a declaration as a property setter during auto-detection.
const SetterPrefix = "set_"

// DefaultParamPrefix names unnamed parameters in generated functions.
const DefaultParamPrefix = "arg"

// GeneratedHeader is the first line of every generated file.
const GeneratedHeader = "// Code generated by jsbind. DO NOT EDIT."

// Signature item keys.
const (
	KeyPackage    = "package"
	KeyImportPath = "import_path"
	KeyDecls      = "decls"
	KeyModule     = "module"
	KeyType       = "type"
	KeyRepr       = "repr"
	KeyVal        = "val"
	KeyEnum       = "enum"
	KeyCases      = "cases"
	KeyRecord     = "record"
	KeyFields     = "fields"
	KeyExtern     = "extern"
	KeyGo         = "go"
	KeyImport     = "import"
	KeyToJS       = "to_js"
	KeyOfJS       = "of_js"
	KeyName       = "name"
	KeyJS         = "js"
	KeyDefault    = "default"
)

// Binding attribute keys, in the order they are reported.
const (
	AttrCast   = "cast"
	AttrExpr   = "expr"
	AttrGet    = "get"
	AttrSet    = "set"
	AttrCall   = "call"
	AttrGlobal = "global"
)

// BindingAttributes lists every recognized binding attribute.
var BindingAttributes = []string{AttrCast, AttrExpr, AttrGet, AttrSet, AttrCall, AttrGlobal}

// Custom expression call forms.
const (
	ExprCall   = "call"
	ExprGlobal = "global"
	ExprNew    = "new"
)

// DefaultFragmentPackage names the root package of an expanded fragment.
const DefaultFragmentPackage = "bindings"
