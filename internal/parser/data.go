package parser

import (
	"gopkg.in/yaml.v3"

	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/config"
	"github.com/funvibe/jsbind/internal/diagnostics"
)

// parseEnum reads
//
//	enum: kind
//	cases:
//	  - foo                 # tag "foo"
//	  - {name: bar, js: 42} # integer tag
//	  - {name: other, default: true}
func (p *Parser) parseEnum(item *yaml.Node) (ast.Decl, error) {
	d := &ast.EnumDecl{Pos: p.pos(item)}
	var cases *yaml.Node
	err := p.eachKey(item, func(key, val *yaml.Node) error {
		switch key.Value {
		case config.KeyEnum:
			name, err := p.name(val, "enum name")
			if err != nil {
				return err
			}
			d.Name = name
		case config.KeyCases:
			cases = val
		default:
			return p.unknownKey(key, "enum")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if cases == nil || cases.Kind != yaml.SequenceNode || len(cases.Content) == 0 {
		return nil, p.errorf(diagnostics.ErrUnsupportedForm, item, "enum %s: cases must be a non-empty list", d.Name)
	}
	for _, c := range cases.Content {
		ec, err := p.parseEnumCase(c)
		if err != nil {
			return nil, err
		}
		d.Cases = append(d.Cases, ec)
	}
	return d, nil
}

func (p *Parser) parseEnumCase(n *yaml.Node) (*ast.EnumCase, error) {
	ec := &ast.EnumCase{Pos: p.pos(n)}
	if n.Kind == yaml.ScalarNode {
		name, err := p.name(n, "enum case")
		if err != nil {
			return nil, err
		}
		ec.Name = name
		ec.Tag = ast.Tag{Kind: ast.TagString, Str: name}
		return ec, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, p.errorf(diagnostics.ErrUnsupportedForm, n, "enum case must be a name or a mapping")
	}
	var tagNode *yaml.Node
	err := p.eachKey(n, func(key, val *yaml.Node) error {
		switch key.Value {
		case config.KeyName:
			name, err := p.name(val, "enum case")
			if err != nil {
				return err
			}
			ec.Name = name
		case config.KeyJS:
			tagNode = val
		case config.KeyDefault:
			var def bool
			if err := val.Decode(&def); err != nil {
				return p.errorf(diagnostics.ErrInvalidEnum, val, "default must be true or false")
			}
			ec.Default = def
		default:
			return p.unknownKey(key, "enum case")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ec.Name == "" {
		return nil, p.errorf(diagnostics.ErrUnsupportedForm, n, "enum case: name is required")
	}
	ec.Tag = ast.Tag{Kind: ast.TagString, Str: ec.Name}
	if tagNode != nil {
		switch tagNode.Tag {
		case "!!str":
			ec.Tag = ast.Tag{Kind: ast.TagString, Str: tagNode.Value}
		case "!!int":
			var v int
			if err := tagNode.Decode(&v); err != nil {
				return nil, p.errorf(diagnostics.ErrInvalidEnum, tagNode, "enum case %s: %v", ec.Name, err)
			}
			ec.Tag = ast.Tag{Kind: ast.TagInt, Int: v}
		default:
			return nil, p.errorf(diagnostics.ErrInvalidEnum, tagNode,
				"enum case %s: tag must be a string or an integer literal", ec.Name)
		}
	}
	return ec, nil
}

// parseRecord reads
//
//	record: point
//	fields:
//	  - {name: x, type: int}
//	  - {name: label, type: string, js: text}
func (p *Parser) parseRecord(item *yaml.Node) (ast.Decl, error) {
	d := &ast.RecordDecl{Pos: p.pos(item)}
	var fields *yaml.Node
	err := p.eachKey(item, func(key, val *yaml.Node) error {
		switch key.Value {
		case config.KeyRecord:
			name, err := p.name(val, "record name")
			if err != nil {
				return err
			}
			d.Name = name
		case config.KeyFields:
			fields = val
		default:
			return p.unknownKey(key, "record")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if fields == nil || fields.Kind != yaml.SequenceNode {
		return nil, p.errorf(diagnostics.ErrUnsupportedForm, item, "record %s: fields must be a list", d.Name)
	}
	for _, fn := range fields.Content {
		f, err := p.parseField(fn)
		if err != nil {
			return nil, err
		}
		d.Fields = append(d.Fields, f)
	}
	return d, nil
}

func (p *Parser) parseField(n *yaml.Node) (*ast.RecordField, error) {
	if n.Kind != yaml.MappingNode {
		return nil, p.errorf(diagnostics.ErrUnsupportedForm, n, "record field must be a mapping with name and type")
	}
	f := &ast.RecordField{Pos: p.pos(n)}
	var typeNode *yaml.Node
	err := p.eachKey(n, func(key, val *yaml.Node) error {
		switch key.Value {
		case config.KeyName:
			name, err := p.name(val, "field name")
			if err != nil {
				return err
			}
			f.Name = name
		case config.KeyType:
			typeNode = val
		case config.KeyJS:
			js, err := p.scalar(val, "js")
			if err != nil {
				return err
			}
			f.JSName = js
		default:
			return p.unknownKey(key, "record field")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if f.Name == "" || typeNode == nil {
		return nil, p.errorf(diagnostics.ErrUnsupportedForm, n, "record field: name and type are required")
	}
	if f.JSName == "" {
		f.JSName = f.Name
	}
	if f.Type, err = p.parseTypeNode(typeNode); err != nil {
		return nil, err
	}
	return f, nil
}
