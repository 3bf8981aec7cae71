package bindgen

import (
	"errors"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/funvibe/jsbind/internal/diagnostics"
)

const domSignature = `
package: dom
import_path: example.com/dom
decls:
  - type: element
  - enum: kind
    cases:
      - {name: Foo, js: foo}
      - {name: Bar, js: 42}
      - Baz
  - record: rect
    fields:
      - {name: width, type: float64}
      - {name: height, type: float64}
      - {name: labels, type: "[]string"}
  - val: length
    type: func(element) int
  - val: set_width
    type: func(element, int)
  - val: join
    type: func(el element, sep string, rest ...string) string
  - val: bounds
    type: func(element) rect
    call: getBoundingClientRect
  - val: kind_of
    type: func(element) kind
    get: kind
  - val: on_click
    type: func(element, func())
    expr: call(arg0, "addEventListener", "click", arg1)
  - val: document
    type: element
    global: document
  - module: events
    decls:
      - type: event
      - val: target
        type: func(event) element
`

func TestGenerate_ProducesValidGo(t *testing.T) {
	t.Parallel()
	files, err := Generate("dom.yaml", []byte(domSignature), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 || files[0].Name != "dom.go" || files[1].Name != "events/events.go" {
		t.Fatalf("files = %v", names(files))
	}
	for _, f := range files {
		fset := token.NewFileSet()
		if _, err := parser.ParseFile(fset, f.Name, f.Content, parser.AllErrors); err != nil {
			t.Errorf("%s does not parse: %v\n%s", f.Name, err, f.Content)
		}
	}
	typeCheck(t, "example.com/dom", files)

	dom := string(files[0].Content)
	for _, want := range []string{
		"// Code generated by jsbind. DO NOT EDIT.",
		"package dom",
		"func Length(arg0 Element) int {",
		"func Join(el Element, sep string, rest ...string) string {",
		"ojs.Call(ElementToJS(el), \"join\", append([]ojs.Value{ojs.StringToJS(sep)}, ojs.Map(rest, ojs.StringToJS)...))",
		"func Bounds(arg0 Element) Rect {",
		"return RectOfJS(ojs.Call(ElementToJS(arg0), \"getBoundingClientRect\", nil))",
		"ojs.Call(ElementToJS(arg0), \"addEventListener\", []ojs.Value{ojs.StringToJS(\"click\"), ojs.FuncOf0(arg1)})",
		"var Document Element = ElementOfJS(ojs.Global(\"document\"))",
	} {
		if !strings.Contains(dom, want) {
			t.Errorf("dom.go lacks %q", want)
		}
	}

	events := string(files[1].Content)
	for _, want := range []string{
		"package events",
		"\"example.com/dom\"",
		"func Target(arg0 Event) dom.Element {",
	} {
		if !strings.Contains(events, want) {
			t.Errorf("events.go lacks %q:\n%s", want, events)
		}
	}
}

func TestGenerate_ParamsDoNotShadowPackageNames(t *testing.T) {
	t.Parallel()
	src := `package: dom
import_path: example.com/dom
decls:
  - type: element
  - val: width
    type: func(ElementToJS element) int
  - val: resize
    type: func(Element element, ojs int, Resize int)
`
	files, err := Generate("dom.yaml", []byte(src), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	typeCheck(t, "example.com/dom", files)
	dom := string(files[0].Content)
	for _, want := range []string{
		"func Width(ElementToJS_ Element) int {",
		"func Resize(Element_ Element, ojs_ int, Resize_ int) {",
		"ojs.CallUnit(ElementToJS(Element_), \"resize\", []ojs.Value{ojs.IntToJS(ojs_), ojs.IntToJS(Resize_)})",
	} {
		if !strings.Contains(dom, want) {
			t.Errorf("dom.go lacks %q:\n%s", want, dom)
		}
	}
}

func TestGenerate_Overrides(t *testing.T) {
	t.Parallel()
	src := "package: dom\ndecls:\n  - type: element\n  - module: css\n    decls:\n      - val: style\n        type: func(element) ojs.Value\n"
	if _, err := Generate("dom.yaml", []byte(src), Options{}); diagnostics.CodeOf(err) != diagnostics.ErrUnresolvedType {
		t.Fatalf("expected UnresolvedType without import path, got %v", err)
	}
	files, err := Generate("dom.yaml", []byte(src), Options{Package: "web", ImportPath: "example.com/web"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if files[0].Name != "web.go" || !strings.Contains(string(files[0].Content), "package web") {
		t.Errorf("package override not applied: %v", names(files))
	}
	if !strings.Contains(string(files[1].Content), "\"example.com/web\"") {
		t.Errorf("import path override not applied:\n%s", files[1].Content)
	}
}

func TestGenerate_NoOutputOnError(t *testing.T) {
	t.Parallel()
	src := "package: dom\ndecls:\n  - val: w\n    type: func(widget) int\n"
	files, err := Generate("dom.yaml", []byte(src), Options{})
	if files != nil {
		t.Errorf("files = %v, want none", names(files))
	}
	var de *Error
	if !errors.As(err, &de) {
		t.Fatalf("expected a diagnostic, got %v", err)
	}
	if de.Code != diagnostics.ErrUnresolvedType || de.Pos.Line != 4 {
		t.Errorf("diagnostic = %v", de)
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()
	fragment := `
- type: canvas
- val: get_context
  type: func(canvas, kind string) ojs.Value
  call: getContext
`
	files, err := Expand([]byte(fragment), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0].Name != "bindings.go" {
		t.Fatalf("files = %v, want bindings.go", names(files))
	}
	src := string(files[0].Content)
	if !strings.Contains(src, "package bindings") || strings.Contains(src, "// Source:") {
		t.Errorf("unexpected fragment output:\n%s", src)
	}
	if !strings.Contains(src, "return ojs.Call(CanvasToJS(arg0), \"getContext\", []ojs.Value{ojs.StringToJS(kind)})") {
		t.Errorf("unexpected fragment output:\n%s", src)
	}

	files, err = Expand([]byte(fragment), "gfx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if files[0].Name != "gfx.go" {
		t.Errorf("file = %s, want gfx.go", files[0].Name)
	}
}

func TestArchive(t *testing.T) {
	t.Parallel()
	files := []File{{Name: "a.go", Content: []byte("package a\n")}}
	got := string(Archive(files))
	want := "// Code generated by jsbind. DO NOT EDIT.\n-- a.go --\npackage a\n"
	if got != want {
		t.Errorf("archive = %q, want %q", got, want)
	}
}

func names(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}
