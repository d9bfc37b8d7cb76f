package cfg

import "fmt"

// StructuralError reports a malformed input to the generator: a Goto (or
// synthesized jump) whose target label was never bound. It is returned,
// not panicked — unlike an assertion violation, this can be triggered
// by an ordinary ill-formed ast.Stmt tree, not only by a bug in the
// generator itself.
type StructuralError struct {
	Message string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("cfg: structural error: %s", e.Message)
}
