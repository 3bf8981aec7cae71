// Package diagnostics defines the generation-time error taxonomy.
//
// Every failure of the generator is a *DiagnosticError carrying a code, a
// source position and a human readable message. The generator stops at the
// first one.
package diagnostics

import (
	"errors"
	"fmt"

	"github.com/funvibe/jsbind/internal/token"
)

type ErrorCode string

const (
	// ErrUnsupportedForm: a signature item or type expression outside the supported shapes.
	ErrUnsupportedForm ErrorCode = "UnsupportedSignatureForm"
	// ErrExpressionExpected: an attribute requires an expression payload and none was given.
	ErrExpressionExpected ErrorCode = "ExpressionExpected"
	// ErrIdentifierExpected: a name payload is neither an identifier nor a string literal.
	ErrIdentifierExpected ErrorCode = "IdentifierExpected"
	// ErrInvalidExpression: a payload or custom expression has an unsupported shape.
	ErrInvalidExpression ErrorCode = "InvalidExpression"
	// ErrMultipleBindings: more than one binding attribute on a single declaration.
	ErrMultipleBindings ErrorCode = "MultipleBindingDeclarations"
	// ErrBindingTypeMismatch: the declared type does not fit the binding kind.
	ErrBindingTypeMismatch ErrorCode = "BindingTypeMismatch"
	// ErrUnresolvedType: a named type has no conversion pair in scope.
	ErrUnresolvedType ErrorCode = "UnresolvedType"
	// ErrImportCycle: module cross references would make generated packages import each other.
	ErrImportCycle ErrorCode = "ImportCycle"
	// ErrInvalidEnum: enumeration tags are not a bijection or defaults collide.
	ErrInvalidEnum ErrorCode = "InvalidEnum"
	// ErrDuplicateDeclaration: two declarations produce the same Go identifier.
	ErrDuplicateDeclaration ErrorCode = "DuplicateDeclaration"
	// ErrInternal: the generator produced output it cannot format. Always a bug.
	ErrInternal ErrorCode = "Internal"
)

// DiagnosticError is a located generation-time error.
type DiagnosticError struct {
	Code    ErrorCode
	Pos     token.Position
	Message string
}

func NewError(code ErrorCode, pos token.Position, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Pos: pos, Message: message}
}

// Errorf is NewError with a formatted message.
func Errorf(code ErrorCode, pos token.Position, format string, args ...any) *DiagnosticError {
	return NewError(code, pos, fmt.Sprintf(format, args...))
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%s: error[%s]: %s", e.Pos, e.Code, e.Message)
}

// Is matches another *DiagnosticError with the same code, so callers can
// write errors.Is(err, &DiagnosticError{Code: ErrInvalidEnum}).
func (e *DiagnosticError) Is(target error) bool {
	t, ok := target.(*DiagnosticError)
	return ok && t.Code == e.Code
}

// CodeOf returns the code of the first DiagnosticError in err's chain,
// or the empty code when there is none.
func CodeOf(err error) ErrorCode {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
