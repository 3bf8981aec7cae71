// Package bindgen is the library entry point of the binding generator.
//
// Generate turns a whole signature file into Go packages; Expand does the
// same for a fragment, a bare list of signature items, which is how
// bindings are produced inline from other tools.
package bindgen

import (
	"github.com/funvibe/jsbind/internal/analyzer"
	"github.com/funvibe/jsbind/internal/codegen"
	"github.com/funvibe/jsbind/internal/config"
	"github.com/funvibe/jsbind/internal/diagnostics"
	"github.com/funvibe/jsbind/internal/emitter"
	"github.com/funvibe/jsbind/internal/gofile"
	"github.com/funvibe/jsbind/internal/parser"
	"github.com/funvibe/jsbind/internal/pipeline"
	"github.com/funvibe/jsbind/internal/token"
)

// Options override the signature header.
type Options struct {
	// Package replaces the header's package name.
	Package string
	// ImportPath replaces the header's import_path.
	ImportPath string
}

// File is one generated Go source file.
type File struct {
	// Name is the slash-separated path relative to the output directory.
	Name    string
	Content []byte
}

// Error is a generation-time diagnostic. Use errors.As to get at the code
// and position.
type Error = diagnostics.DiagnosticError

// NewPipeline returns the four generator stages in order.
func NewPipeline() *pipeline.Pipeline {
	return pipeline.New(
		&parser.ParserProcessor{},
		&analyzer.AnalyzerProcessor{},
		&codegen.CodegenProcessor{},
		&emitter.EmitterProcessor{},
	)
}

// Generate runs the generator over the signature src read from path. It
// returns no files at all when any stage fails.
func Generate(path string, src []byte, opts Options) ([]File, error) {
	ctx := pipeline.NewPipelineContext(path, src)
	ctx.PackageOverride = opts.Package
	ctx.ImportPathOverride = opts.ImportPath
	ctx = NewPipeline().Run(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(ctx.Files) == 0 {
		return nil, diagnostics.NewError(diagnostics.ErrInternal, token.Position{File: path}, "no files were generated")
	}
	files := make([]File, len(ctx.Files))
	for i, f := range ctx.Files {
		files[i] = File{Name: f.Filename, Content: f.Content}
	}
	return files, nil
}

// Expand generates bindings for a fragment: a YAML list of signature items
// without header. The root package is called pkg, or "bindings" when pkg is
// empty. Fragments with nested modules produce more than one file.
func Expand(fragment []byte, pkg string) ([]File, error) {
	if pkg == "" {
		pkg = config.DefaultFragmentPackage
	}
	return Generate("", fragment, Options{Package: pkg})
}

// Archive packs generated files into a txtar archive.
func Archive(files []File) []byte {
	return emitter.Archive(config.GeneratedHeader+"\n", toGoFiles(files))
}

// WriteDir writes generated files under dir.
func WriteDir(dir string, files []File) error {
	return emitter.WriteDir(dir, toGoFiles(files))
}

func toGoFiles(files []File) []gofile.GeneratedFile {
	out := make([]gofile.GeneratedFile, len(files))
	for i, f := range files {
		out[i] = gofile.GeneratedFile{Filename: f.Name, Content: f.Content}
	}
	return out
}
