package cfg

import "fmt"

// Label names a jump target. It wraps either a user-visible ast.Label's
// name or a generator-synthesized name.
type Label string

// labelGen synthesizes unique labels of the shape "$$<role>_<counter>",
// scoped to a single generator instance rather than a package-level
// global, so that two Generator values lowering distinct ast.Stmt trees
// concurrently never collide.
type labelGen struct {
	counter int
}

func (g *labelGen) next(role string) Label {
	g.counter++
	return Label(fmt.Sprintf("$$%s_%d", role, g.counter))
}
