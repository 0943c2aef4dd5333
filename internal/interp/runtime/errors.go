package runtime

import "fmt"

// ============================================================================
// Evaluator error kinds (spec.md §7)
// ============================================================================
//
// Each error kind is a distinct Go type, grounded on the teacher's
// internal/interp/runtime/errors.go (ConversionError, ArithmeticError,
// TypeError, ...): one struct, one New*Error constructor, one Is*Error
// predicate. parse-error lives in internal/reader (ParseError, rendered with
// source context by internal/errors), not here, since only the reader/lexer
// can describe a source position; fatal is represented as
// a plain wrapped error, never a distinct type, since it never has
// evaluator-specific structure to report.
// ============================================================================

// UnboundSymbolError is raised when Env.Lookup finds no matching binding.
type UnboundSymbolError struct {
	Name string
}

func (e *UnboundSymbolError) Error() string {
	return fmt.Sprintf("unbound symbol: %s", e.Name)
}

// NewUnboundSymbolError creates an UnboundSymbolError for name.
func NewUnboundSymbolError(name string) error {
	return &UnboundSymbolError{Name: name}
}

// IsUnboundSymbolError reports whether err is an UnboundSymbolError.
func IsUnboundSymbolError(err error) bool {
	_, ok := err.(*UnboundSymbolError)
	return ok
}

// ============================================================================

// ArityMismatchError is raised when an intrinsic or closure receives the
// wrong number of arguments.
type ArityMismatchError struct {
	Expected int
	Got      int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("arity mismatch: expected %d argument(s), got %d", e.Expected, e.Got)
}

// NewArityMismatchError creates an ArityMismatchError.
func NewArityMismatchError(expected, got int) error {
	return &ArityMismatchError{Expected: expected, Got: got}
}

// IsArityMismatchError reports whether err is an ArityMismatchError.
func IsArityMismatchError(err error) bool {
	_, ok := err.(*ArityMismatchError)
	return ok
}

// ============================================================================

// TypeMismatchError is raised when an operation is applied to an
// incompatible value (a non-pair to car, a non-number to +, ...).
type TypeMismatchError struct {
	Expected string
	Got      Value
}

func (e *TypeMismatchError) Error() string {
	gotType := "nil"
	if e.Got != nil {
		gotType = e.Got.Type()
	}
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, gotType)
}

// NewTypeMismatchError creates a TypeMismatchError.
func NewTypeMismatchError(expected string, got Value) error {
	return &TypeMismatchError{Expected: expected, Got: got}
}

// IsTypeMismatchError reports whether err is a TypeMismatchError.
func IsTypeMismatchError(err error) bool {
	_, ok := err.(*TypeMismatchError)
	return ok
}

// ============================================================================

// NotAProcedureError is raised when apply is attempted on a value that is
// none of intrinsic, closure, continuation, or a recognised special symbol.
type NotAProcedureError struct {
	Got Value
}

func (e *NotAProcedureError) Error() string {
	gotType := "nil"
	if e.Got != nil {
		gotType = e.Got.Type()
	}
	return fmt.Sprintf("not a procedure: %s", gotType)
}

// NewNotAProcedureError creates a NotAProcedureError.
func NewNotAProcedureError(got Value) error {
	return &NotAProcedureError{Got: got}
}

// IsNotAProcedureError reports whether err is a NotAProcedureError.
func IsNotAProcedureError(err error) bool {
	_, ok := err.(*NotAProcedureError)
	return ok
}

// ============================================================================

// ImproperListError is raised when list-walking encounters a non-nil tail
// where a proper list was required.
type ImproperListError struct {
	Tail Value
}

func (e *ImproperListError) Error() string {
	return "improper list: expected a proper list"
}

// NewImproperListError creates an ImproperListError.
func NewImproperListError(tail Value) error {
	return &ImproperListError{Tail: tail}
}

// IsImproperListError reports whether err is an ImproperListError.
func IsImproperListError(err error) bool {
	_, ok := err.(*ImproperListError)
	return ok
}

// ============================================================================

// UserError is raised by the `error` procedure: spec.md §4.G/§6's exact
// "Error: <reason>: <arg>" format is rendered by its Error() method.
type UserError struct {
	Reason Value
	Arg    Value
	// Message is the already-formatted "Error: reason: arg" text, built by
	// the `error` intrinsic (it alone knows how to stringify reason
	// unquoted and arg quoted).
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a UserError with a pre-formatted message.
func NewUserError(reason, arg Value, message string) error {
	return &UserError{Reason: reason, Arg: arg, Message: message}
}

// IsUserError reports whether err is a UserError.
func IsUserError(err error) bool {
	_, ok := err.(*UserError)
	return ok
}
