package bindgen

import (
	"go/ast"
	"go/build"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/jsbind/internal/config"
)

type importerFunc func(path string) (*types.Package, error)

func (f importerFunc) Import(path string) (*types.Package, error) { return f(path) }

// typeCheck compiles generated files against the ojs sources of this
// repository. The root package has importPath; a file under dir/ belongs to
// importPath/dir.
func typeCheck(t *testing.T, importPath string, files []File) {
	t.Helper()
	fset := token.NewFileSet()
	sources := make(map[string][]*ast.File)
	for _, f := range files {
		pkgPath := importPath
		if dir := path.Dir(f.Name); dir != "." {
			pkgPath += "/" + dir
		}
		af, err := parser.ParseFile(fset, f.Name, f.Content, parser.ParseComments)
		if err != nil {
			t.Fatalf("%s does not parse: %v", f.Name, err)
		}
		sources[pkgPath] = append(sources[pkgPath], af)
	}
	sources[config.RuntimeImportPath] = parseRuntime(t, fset)

	std := importer.Default()
	checked := make(map[string]*types.Package)
	var check importerFunc
	check = func(pkgPath string) (*types.Package, error) {
		if p, ok := checked[pkgPath]; ok {
			return p, nil
		}
		pkgFiles, ok := sources[pkgPath]
		if !ok {
			return std.Import(pkgPath)
		}
		conf := types.Config{Importer: check}
		p, err := conf.Check(pkgPath, fset, pkgFiles, nil)
		if err != nil {
			return nil, err
		}
		checked[pkgPath] = p
		return p, nil
	}
	for pkgPath := range sources {
		if _, err := check(pkgPath); err != nil {
			t.Errorf("%s does not type-check: %v", pkgPath, err)
		}
	}
}

// parseRuntime parses the ojs files built for the host platform.
func parseRuntime(t *testing.T, fset *token.FileSet) []*ast.File {
	t.Helper()
	dir := filepath.Join("..", "ojs")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading runtime sources: %v", err)
	}
	var out []*ast.File
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		if ok, err := build.Default.MatchFile(dir, name); err != nil || !ok {
			continue
		}
		af, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, 0)
		if err != nil {
			t.Fatalf("parsing %s: %v", name, err)
		}
		out = append(out, af)
	}
	return out
}
