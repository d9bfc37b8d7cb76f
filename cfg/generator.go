package cfg

import "github.com/rvandoren/silver/ast"

// Generator lowers an ast.Stmt into a Block graph by running the three
// phases in sequence: linearize, build, materialize. Each Generator owns
// its own labelGen, so two Generators lowering different trees
// concurrently never share synthesized label names.
type Generator struct {
	gen   *labelGen
	notes []string
}

// NewGenerator returns a Generator ready to lower statement trees.
func NewGenerator() *Generator {
	return &Generator{gen: &labelGen{}}
}

// WithNote appends a free-form diagnostic note to the Generator, surfaced
// later via Notes. Intended for callers that want to record why a
// generation run was invoked (e.g. which source file triggered it)
// without the cfg package itself depending on a logger.
func (g *Generator) WithNote(note string) *Generator {
	g.notes = append(g.notes, note)
	return g
}

// Notes returns the notes accumulated via WithNote, in call order.
func (g *Generator) Notes() []string {
	return g.notes
}

// Generate lowers s into a Block graph rooted at the returned entry
// block. It fails with a *StructuralError if s contains a Goto (direct or
// synthesized from an If/While) whose target Label was never declared
// anywhere in s.
func (g *Generator) Generate(s ast.Stmt) (Block, error) {
	lr := newLinearizer(g.gen).linearize(s)
	b := newBuilder(lr)
	root, err := b.buildRange(0, len(lr.nodes))
	if err != nil {
		return nil, err
	}
	m := newMaterializer()
	return m.materialize(root), nil
}
