// Package parser turns a signature document into the declaration model.
//
// The signature is a YAML document whose items are mappings discriminated by
// their key set (module, type, val, enum, record, extern). Type shapes and
// attribute payloads are Go expressions, parsed with go/parser and narrowed to
// the supported subset. Any other shape is an UnsupportedSignatureForm.
package parser

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/config"
	"github.com/funvibe/jsbind/internal/diagnostics"
	"github.com/funvibe/jsbind/internal/symbols"
	"github.com/funvibe/jsbind/internal/token"
)

// Parser converts one signature document. It holds no state beyond the file
// name used for positions and may be discarded after Parse.
type Parser struct {
	file string
}

func New(file string) *Parser {
	return &Parser{file: file}
}

// Parse decodes src as YAML and converts the resulting tree.
func Parse(file string, src []byte) (*ast.File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, diagnostics.NewError(diagnostics.ErrUnsupportedForm,
			token.Position{File: file, Line: 1, Column: 1},
			fmt.Sprintf("invalid signature document: %v", err))
	}
	return New(file).ParseDocument(&doc)
}

// ParseDocument converts an already decoded YAML tree.
func (p *Parser) ParseDocument(doc *yaml.Node) (*ast.File, error) {
	root := doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, p.errorf(diagnostics.ErrUnsupportedForm, root, "empty signature document")
		}
		root = root.Content[0]
	}
	f := &ast.File{Name: p.file, Pos: p.pos(root)}
	if root.Kind == yaml.SequenceNode {
		// A fragment: items only, the package comes from the caller.
		decls, err := p.parseDecls(root)
		if err != nil {
			return nil, err
		}
		f.Decls = decls
		return f, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, p.errorf(diagnostics.ErrUnsupportedForm, root, "signature must be a mapping with package and decls")
	}

	var decls *yaml.Node
	err := p.eachKey(root, func(key, val *yaml.Node) error {
		switch key.Value {
		case config.KeyPackage:
			name, err := p.scalar(val, "package")
			if err != nil {
				return err
			}
			f.Package = name
		case config.KeyImportPath:
			path, err := p.scalar(val, "import_path")
			if err != nil {
				return err
			}
			f.ImportPath = path
		case config.KeyDecls:
			decls = val
		default:
			return p.errorf(diagnostics.ErrUnsupportedForm, key, "unknown top-level key %q", key.Value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if decls != nil {
		f.Decls, err = p.parseDecls(decls)
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// parseDecls converts a sequence of signature items in order.
func (p *Parser) parseDecls(seq *yaml.Node) ([]ast.Decl, error) {
	if seq.Kind == yaml.ScalarNode && seq.Tag == "!!null" {
		return nil, nil
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, p.errorf(diagnostics.ErrUnsupportedForm, seq, "decls must be a list of signature items")
	}
	decls := make([]ast.Decl, 0, len(seq.Content))
	for _, item := range seq.Content {
		d, err := p.parseItem(item)
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

// discriminators in precedence order; "type" is last because value items
// use it for their type shape.
var discriminators = []string{
	config.KeyVal,
	config.KeyModule,
	config.KeyEnum,
	config.KeyRecord,
	config.KeyExtern,
	config.KeyType,
}

func (p *Parser) parseItem(item *yaml.Node) (ast.Decl, error) {
	if item.Kind != yaml.MappingNode {
		return nil, p.errorf(diagnostics.ErrUnsupportedForm, item, "signature item must be a mapping")
	}
	var form string
	for _, d := range discriminators {
		if findKey(item, d) == nil {
			continue
		}
		if form == "" {
			form = d
			continue
		}
		// "type" is the shape of a val, not a second form.
		if form == config.KeyVal && d == config.KeyType {
			continue
		}
		return nil, p.errorf(diagnostics.ErrUnsupportedForm, findKey(item, d),
			"signature item cannot be both %s and %s", form, d)
	}

	switch form {
	case config.KeyVal:
		return p.parseValue(item)
	case config.KeyModule:
		return p.parseModule(item)
	case config.KeyEnum:
		return p.parseEnum(item)
	case config.KeyRecord:
		return p.parseRecord(item)
	case config.KeyExtern:
		return p.parseExtern(item)
	case config.KeyType:
		return p.parseOpaque(item)
	}
	return nil, p.errorf(diagnostics.ErrUnsupportedForm, item,
		"unrecognized signature item: expected one of val, module, type, enum, record, extern")
}

func (p *Parser) parseModule(item *yaml.Node) (ast.Decl, error) {
	d := &ast.ModuleDecl{Pos: p.pos(item)}
	var body *yaml.Node
	err := p.eachKey(item, func(key, val *yaml.Node) error {
		switch key.Value {
		case config.KeyModule:
			name, err := p.name(val, "module name")
			if err != nil {
				return err
			}
			d.Name = name
		case config.KeyDecls:
			body = val
		default:
			return p.unknownKey(key, "module")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if body != nil {
		if d.Decls, err = p.parseDecls(body); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// parseOpaque accepts the single opaque-type pattern: an abstract type whose
// representation, when spelled out, is the foreign value.
func (p *Parser) parseOpaque(item *yaml.Node) (ast.Decl, error) {
	d := &ast.OpaqueTypeDecl{Pos: p.pos(item)}
	err := p.eachKey(item, func(key, val *yaml.Node) error {
		switch key.Value {
		case config.KeyType:
			name, err := p.name(val, "type name")
			if err != nil {
				return err
			}
			d.Name = name
		case config.KeyRepr:
			repr, err := p.scalar(val, "repr")
			if err != nil {
				return err
			}
			if repr != config.ForeignTypeName {
				return p.errorf(diagnostics.ErrUnsupportedForm, val,
					"type %s: only abstract types represented as %s are supported, got %q",
					d.Name, config.ForeignTypeName, repr)
			}
		default:
			return p.unknownKey(key, "type")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (p *Parser) parseValue(item *yaml.Node) (ast.Decl, error) {
	d := &ast.ValueDecl{Pos: p.pos(item)}
	var typeNode *yaml.Node
	var attrs []*yaml.Node // key nodes, in source order
	err := p.eachKey(item, func(key, val *yaml.Node) error {
		switch key.Value {
		case config.KeyVal:
			name, err := p.name(val, "value name")
			if err != nil {
				return err
			}
			d.Name = name
		case config.KeyType:
			typeNode = val
		default:
			if !slices.Contains(config.BindingAttributes, key.Value) {
				return p.unknownKey(key, "val")
			}
			attrs = append(attrs, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if typeNode == nil {
		return nil, p.errorf(diagnostics.ErrUnsupportedForm, item, "val %s: type is required", d.Name)
	}
	d.TypePos = p.pos(typeNode)
	if d.Type, err = p.parseTypeNode(typeNode); err != nil {
		return nil, err
	}
	if len(attrs) > 1 {
		names := make([]string, len(attrs))
		for i, a := range attrs {
			names[i] = a.Value
		}
		return nil, p.errorf(diagnostics.ErrMultipleBindings, attrs[1],
			"val %s: conflicting binding attributes %v", d.Name, names)
	}
	if len(attrs) == 1 {
		key := attrs[0]
		d.BindingPos = p.pos(key)
		if d.Binding, err = p.parseBinding(d.Name, key, findKey(item, key.Value)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (p *Parser) parseExtern(item *yaml.Node) (ast.Decl, error) {
	d := &ast.ExternTypeDecl{Pos: p.pos(item)}
	err := p.eachKey(item, func(key, val *yaml.Node) error {
		var err error
		switch key.Value {
		case config.KeyExtern:
			d.Name, err = p.name(val, "extern name")
		case config.KeyGo:
			d.GoType, err = p.scalar(val, "go")
		case config.KeyImport:
			d.Import, err = p.scalar(val, "import")
		case config.KeyToJS:
			d.ToJS, err = p.scalar(val, "to_js")
		case config.KeyOfJS:
			d.OfJS, err = p.scalar(val, "of_js")
		default:
			err = p.unknownKey(key, "extern")
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if d.GoType == "" || d.ToJS == "" || d.OfJS == "" {
		return nil, p.errorf(diagnostics.ErrUnsupportedForm, item,
			"extern %s: go, to_js and of_js are required", d.Name)
	}
	return d, nil
}

// --- yaml helpers ---

func (p *Parser) pos(n *yaml.Node) token.Position {
	return token.Position{File: p.file, Line: n.Line, Column: n.Column}
}

func (p *Parser) errorf(code diagnostics.ErrorCode, n *yaml.Node, format string, args ...any) *diagnostics.DiagnosticError {
	return diagnostics.Errorf(code, p.pos(n), format, args...)
}

func (p *Parser) unknownKey(key *yaml.Node, form string) error {
	return p.errorf(diagnostics.ErrUnsupportedForm, key, "unknown key %q in %s item", key.Value, form)
}

// eachKey walks a mapping node in source order. Duplicate keys are rejected.
func (p *Parser) eachKey(m *yaml.Node, fn func(key, val *yaml.Node) error) error {
	seen := make(map[string]bool, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return p.errorf(diagnostics.ErrUnsupportedForm, key, "mapping keys must be plain names")
		}
		if seen[key.Value] {
			return p.errorf(diagnostics.ErrUnsupportedForm, key, "duplicate key %q", key.Value)
		}
		seen[key.Value] = true
		if err := fn(key, val); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) scalar(n *yaml.Node, what string) (string, error) {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", p.errorf(diagnostics.ErrUnsupportedForm, n, "%s must be a scalar", what)
	}
	return n.Value, nil
}

// name reads a declaration name: a scalar usable as an identifier.
func (p *Parser) name(n *yaml.Node, what string) (string, error) {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", p.errorf(diagnostics.ErrIdentifierExpected, n, "%s must be a name", what)
	}
	if !symbols.IsName(n.Value) {
		return "", p.errorf(diagnostics.ErrIdentifierExpected, n, "%s %q is not an identifier", what, n.Value)
	}
	return n.Value, nil
}

// findKey returns the value node for key in mapping m, or nil.
func findKey(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
