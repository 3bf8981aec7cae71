package symbols

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/config"
)

// GoName turns a signature name into an exported Go identifier:
// "set_width" → "SetWidth", "appendChild" → "AppendChild".
func GoName(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}

// PackageName turns a module name into a Go package name: lower case,
// letters and digits only.
func PackageName(name string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, name)
	if s == "" || token.IsKeyword(s) || unicode.IsDigit(rune(s[0])) {
		s = "pkg" + s
	}
	return s
}

// IsName reports whether s is usable as a signature name. Go keywords are
// allowed: "type" is a perfectly good JS property.
func IsName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

// ParamName is the Go (and custom expression) name of the i-th parameter:
// its declared name, or arg<i> when the signature left it unnamed.
func ParamName(i int, p ast.Param) string {
	if p.Name != "" {
		return p.Name
	}
	return config.DefaultParamPrefix + strconv.Itoa(i)
}
