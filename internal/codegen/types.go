package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/symbols"
)

func (dg *declGen) symbol(d ast.Decl) *symbols.Symbol {
	sym, _ := dg.uc.m.Table.FindLocal(d.DeclName())
	return sym
}

// VisitOpaqueType emits the type and its identity conversion pair.
func (dg *declGen) VisitOpaqueType(d *ast.OpaqueTypeDecl) error {
	sym := dg.symbol(d)
	value := dg.uc.rt("Value")
	var b strings.Builder
	fmt.Fprintf(&b, "// %s is an opaque foreign value.\n", sym.GoType)
	fmt.Fprintf(&b, "type %s %s\n\n", sym.GoType, value)
	fmt.Fprintf(&b, "func %s(x %s) %s { return %s(x) }\n\n", sym.ToJS, sym.GoType, value, value)
	fmt.Fprintf(&b, "func %s(v %s) %s { return %s(v) }\n", sym.OfJS, value, sym.GoType, sym.GoType)
	dg.uc.u.Add(sym.GoType, b.String())
	return nil
}

// VisitEnum emits an int type with one constant per case, and a pair that
// maps cases to their tags and back.
func (dg *declGen) VisitEnum(d *ast.EnumDecl) error {
	sym := dg.symbol(d)
	typ := sym.GoType
	consts := make([]string, len(d.Cases))
	for i, c := range d.Cases {
		consts[i] = typ + symbols.GoName(c.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// %s is encoded as a string or number tag.\n", typ)
	fmt.Fprintf(&b, "type %s int\n\nconst (\n", typ)
	for i, name := range consts {
		if i == 0 {
			fmt.Fprintf(&b, "\t%s %s = iota\n", name, typ)
		} else {
			fmt.Fprintf(&b, "\t%s\n", name)
		}
	}
	b.WriteString(")\n\n")

	fmt.Fprintf(&b, "func (x %s) String() string {\n\tswitch x {\n", typ)
	for i, c := range d.Cases {
		fmt.Fprintf(&b, "\tcase %s:\n\t\treturn %q\n", consts[i], c.Name)
	}
	fmt.Fprintf(&b, "\t}\n\treturn %q + strconv.Itoa(int(x)) + \")\"\n}\n\n", typ+"(")
	dg.uc.u.AddImport("strconv", "")

	fmt.Fprintf(&b, "func %s(x %s) %s {\n\tswitch x {\n", sym.ToJS, typ, dg.uc.rt("Value"))
	for i, c := range d.Cases {
		fmt.Fprintf(&b, "\tcase %s:\n\t\treturn %s\n", consts[i], dg.tagToJS(c.Tag))
	}
	fmt.Fprintf(&b, "\t}\n\tpanic(&%s{Type: %q, Value: int(x)})\n}\n\n", dg.uc.rt("EncodeError"), typ)

	fmt.Fprintf(&b, "func %s(v %s) %s {\n", sym.OfJS, dg.uc.rt("Value"), typ)
	fmt.Fprintf(&b, "\tswitch %s(v) {\n", dg.uc.rt("TypeOf"))
	for _, kind := range []ast.TagKind{ast.TagString, ast.TagInt} {
		dg.decodeKind(&b, d, consts, kind)
	}
	b.WriteString("\t}\n")
	fmt.Fprintf(&b, "\tpanic(&%s{Type: %q, Value: %s(v)})\n}\n", dg.uc.rt("DecodeError"), typ, dg.uc.rt("Describe"))

	dg.uc.u.Add(typ, b.String())
	return nil
}

func (dg *declGen) tagToJS(t ast.Tag) string {
	if t.Kind == ast.TagInt {
		return dg.uc.rt("IntToJS") + "(" + strconv.Itoa(t.Int) + ")"
	}
	return dg.uc.rt("StringToJS") + "(" + strconv.Quote(t.Str) + ")"
}

// decodeKind writes the case of the TypeOf switch for one tag kind. Integer
// tags are matched on the float value so that 1.5 never decodes as 1.
func (dg *declGen) decodeKind(b *strings.Builder, d *ast.EnumDecl, consts []string, kind ast.TagKind) {
	var fallback string
	var cases []int
	for i, c := range d.Cases {
		if c.Tag.Kind != kind {
			continue
		}
		cases = append(cases, i)
		if c.Default {
			fallback = consts[i]
		}
	}
	if len(cases) == 0 {
		return
	}
	if kind == ast.TagInt {
		fmt.Fprintf(b, "\tcase %s:\n\t\tswitch %s(v) {\n", dg.uc.rt("TypeNumber"), dg.uc.rt("FloatOfJS"))
	} else {
		fmt.Fprintf(b, "\tcase %s:\n\t\tswitch %s(v) {\n", dg.uc.rt("TypeString"), dg.uc.rt("StringOfJS"))
	}
	for _, i := range cases {
		fmt.Fprintf(b, "\t\tcase %s:\n\t\t\treturn %s\n", d.Cases[i].Tag, consts[i])
	}
	b.WriteString("\t\t}\n")
	if fallback != "" {
		fmt.Fprintf(b, "\t\treturn %s\n", fallback)
	}
}

// VisitRecord emits a struct and a pair mapping each field to one property.
func (dg *declGen) VisitRecord(d *ast.RecordDecl) error {
	sym := dg.symbol(d)
	typ := sym.GoType
	mr := &Marshaller{uc: dg.uc, pos: d.Pos}

	type field struct {
		goName, goType, js, toJS, ofJS string
	}
	fields := make([]field, len(d.Fields))
	for i, f := range d.Fields {
		mr.pos = f.Pos
		goName := symbols.GoName(f.Name)
		goType, err := mr.GoType(f.Type)
		if err != nil {
			return err
		}
		toJS, err := mr.ToJS(f.Type, "x."+goName)
		if err != nil {
			return err
		}
		ofJS, err := mr.OfJS(f.Type, fmt.Sprintf("%s(v, %q)", dg.uc.rt("Get"), f.JSName))
		if err != nil {
			return err
		}
		fields[i] = field{goName: goName, goType: goType, js: f.JSName, toJS: toJS, ofJS: ofJS}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// %s is passed as a plain object.\n", typ)
	fmt.Fprintf(&b, "type %s struct {\n", typ)
	for _, f := range fields {
		fmt.Fprintf(&b, "\t%s %s `js:%q`\n", f.goName, f.goType, f.js)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "func %s(x %s) %s {\n", sym.ToJS, typ, dg.uc.rt("Value"))
	fmt.Fprintf(&b, "\to := %s()\n", dg.uc.rt("NewObject"))
	for _, f := range fields {
		fmt.Fprintf(&b, "\t%s(o, %q, %s)\n", dg.uc.rt("Set"), f.js, f.toJS)
	}
	b.WriteString("\treturn o\n}\n\n")

	fmt.Fprintf(&b, "func %s(v %s) %s {\n\treturn %s{\n", sym.OfJS, dg.uc.rt("Value"), typ, typ)
	for _, f := range fields {
		fmt.Fprintf(&b, "\t\t%s: %s,\n", f.goName, f.ofJS)
	}
	b.WriteString("\t}\n}\n")

	dg.uc.u.Add(typ, b.String())
	return nil
}
