// Package gofile models one generated Go source file, first as a list of
// declarations plus imports (a Unit) and then as rendered bytes.
package gofile

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Unit is a generated Go file before rendering.
type Unit struct {
	// Filename is the slash-separated path relative to the output root.
	Filename string
	Package  string
	// Source is the signature file the unit was generated from.
	Source string
	// Doc is the package comment, without comment markers.
	Doc   string
	Decls []Decl

	imports map[string]*importEntry // by path
	names   map[string]string       // local name → path, "" when reserved
}

type importEntry struct {
	name  string
	plain bool // rendered without alias
	used  bool
}

// Decl is one top-level declaration in source form.
type Decl struct {
	// Name is the declared Go identifier, for diagnostics and tests.
	Name string
	Code string
}

func NewUnit(filename, pkg, source string) *Unit {
	return &Unit{
		Filename: filename,
		Package:  pkg,
		Source:   source,
		imports:  make(map[string]*importEntry),
		names:    make(map[string]string),
	}
}

// Book assigns pkgPath a local name derived from want (or from the path when
// want is empty) without importing it yet, and returns that name.
// Repeated calls for the same path return the same name.
func (u *Unit) Book(pkgPath, want string) string {
	if e, ok := u.imports[pkgPath]; ok {
		return e.name
	}
	if want == "" {
		want = ImportAlias(pkgPath)
	}
	name := want
	for i := 2; u.Taken(name); i++ {
		name = want + strconv.Itoa(i)
	}
	u.imports[pkgPath] = &importEntry{name: name}
	u.names[name] = pkgPath
	return name
}

// AddImport books pkgPath and marks it used.
func (u *Unit) AddImport(pkgPath, want string) string {
	name := u.Book(pkgPath, want)
	u.imports[pkgPath].used = true
	return name
}

// AddPlainImport imports pkgPath without an alias, for packages whose
// identifiers are written by the user with the package's own name.
func (u *Unit) AddPlainImport(pkgPath string) {
	if e, ok := u.imports[pkgPath]; ok {
		e.plain, e.used = true, true
		return
	}
	name := ImportAlias(pkgPath)
	u.imports[pkgPath] = &importEntry{name: name, plain: true, used: true}
	if !u.Taken(name) {
		u.names[name] = pkgPath
	}
}

// Reserve blocks a local name so that no import gets it.
func (u *Unit) Reserve(names ...string) {
	for _, n := range names {
		if !u.Taken(n) {
			u.names[n] = ""
		}
	}
}

// Taken reports whether name is used by an import or reserved.
func (u *Unit) Taken(name string) bool {
	_, ok := u.names[name]
	return ok
}

func (u *Unit) Add(name, code string) {
	u.Decls = append(u.Decls, Decl{Name: name, Code: code})
}

// Import is one entry of a rendered import block. Alias is empty when the
// package is imported under its own name.
type Import struct {
	Path  string
	Alias string
}

// SortedImports returns the used imports ordered by path.
func (u *Unit) SortedImports() []Import {
	entries := make([]Import, 0, len(u.imports))
	for p, e := range u.imports {
		if !e.used {
			continue
		}
		alias := e.name
		if e.plain || e.name == p[strings.LastIndex(p, "/")+1:] {
			alias = ""
		}
		entries = append(entries, Import{Path: p, Alias: alias})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// GeneratedFile is a rendered, formatted Go source file.
type GeneratedFile struct {
	Filename string
	Content  []byte
}

// goReservedWords are Go keywords that cannot be used as import names.
var goReservedWords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
}

// ImportAlias returns a valid Go identifier for an import path.
// Handles hyphens (go-dom → godom), versioned paths (v2 → parent)
// and reserved words (type → pkgType).
func ImportAlias(pkgPath string) string {
	parts := strings.Split(pkgPath, "/")
	last := parts[len(parts)-1]
	if len(last) > 1 && last[0] == 'v' && len(parts) > 1 {
		allDigits := true
		for _, c := range last[1:] {
			if c < '0' || c > '9' {
				allDigits = false
				break
			}
		}
		if allDigits {
			last = parts[len(parts)-2]
		}
	}

	alias := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, last)

	if alias == "" || unicode.IsDigit(rune(alias[0])) {
		alias = "pkg" + alias
	}
	if goReservedWords[alias] {
		alias = "pkg" + strings.ToUpper(alias[:1]) + alias[1:]
	}
	return alias
}
