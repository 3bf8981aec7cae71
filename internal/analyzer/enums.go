package analyzer

import (
	"github.com/funvibe/jsbind/internal/ast"
	"github.com/funvibe/jsbind/internal/diagnostics"
)

// checkEnum verifies that case tags form a bijection and that there is at
// most one catch-all case per tag kind.
func checkEnum(d *ast.EnumDecl) error {
	tags := make(map[ast.Tag]*ast.EnumCase, len(d.Cases))
	defaults := make(map[ast.TagKind]*ast.EnumCase, 2)
	for _, c := range d.Cases {
		if prev, ok := tags[c.Tag]; ok {
			return diagnostics.Errorf(diagnostics.ErrInvalidEnum, c.Pos,
				"enum %s: case %s reuses tag %s of case %s", d.Name, c.Name, c.Tag, prev.Name)
		}
		tags[c.Tag] = c
		if !c.Default {
			continue
		}
		if prev, ok := defaults[c.Tag.Kind]; ok {
			return diagnostics.Errorf(diagnostics.ErrInvalidEnum, c.Pos,
				"enum %s: case %s is a second %s default after %s", d.Name, c.Name, c.Tag.Kind, prev.Name)
		}
		defaults[c.Tag.Kind] = c
	}
	return nil
}
