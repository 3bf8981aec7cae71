// Package emitter renders generated units into formatted Go source files.
package emitter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/funvibe/jsbind/internal/config"
	"github.com/funvibe/jsbind/internal/diagnostics"
	"github.com/funvibe/jsbind/internal/gofile"
	"github.com/funvibe/jsbind/internal/token"
)

var unitTemplate = template.Must(template.New("unit").Funcs(template.FuncMap{
	"comment": comment,
}).Parse(unitFileTemplate))

const unitFileTemplate = `{{.Header}}
{{- if .Source}}
// Source: {{.Source}}
{{- end}}

{{comment .Doc}}
package {{.Package}}
{{- if .Imports}}

import (
{{- range .Imports}}
{{- if .Alias}}
	{{.Alias}} "{{.Path}}"
{{- else}}
	"{{.Path}}"
{{- end}}
{{- end}}
)
{{- end}}
{{range .Decls}}
{{.Code}}
{{- end}}
`

var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

// Emit renders and formats every unit. A unit that does not format is an
// internal error: the generator produced invalid Go.
func Emit(units []*gofile.Unit) ([]gofile.GeneratedFile, error) {
	files := make([]gofile.GeneratedFile, 0, len(units))
	for _, u := range units {
		f, err := EmitUnit(u)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func EmitUnit(u *gofile.Unit) (gofile.GeneratedFile, error) {
	src, err := Render(u)
	if err != nil {
		return gofile.GeneratedFile{}, diagnostics.Errorf(diagnostics.ErrInternal,
			token.Position{File: u.Source}, "rendering %s: %v", u.Filename, err)
	}
	out, err := imports.Process(u.Filename, src, formatOptions)
	if err != nil {
		return gofile.GeneratedFile{}, diagnostics.Errorf(diagnostics.ErrInternal,
			token.Position{File: u.Source}, "generated %s is not valid Go: %v", u.Filename, err)
	}
	return gofile.GeneratedFile{Filename: u.Filename, Content: out}, nil
}

// Render executes the file template without formatting.
func Render(u *gofile.Unit) ([]byte, error) {
	data := struct {
		Header  string
		Source  string
		Doc     string
		Package string
		Imports []gofile.Import
		Decls   []gofile.Decl
	}{
		Header:  config.GeneratedHeader,
		Source:  u.Source,
		Doc:     u.Doc,
		Package: u.Package,
		Imports: u.SortedImports(),
		Decls:   u.Decls,
	}
	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	return buf.Bytes(), nil
}

func comment(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("// "+l, " ")
	}
	return strings.Join(lines, "\n")
}
