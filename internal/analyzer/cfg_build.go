package analyzer

import (
	"fmt"
	"log"

	"github.com/cflowgraph/pycfg/internal/cfg"
	"github.com/cflowgraph/pycfg/internal/parser"
)

// LabelMainModule is the key BuildAll uses for the graph built from a
// file's module-level statements.
const LabelMainModule = "__main__"

// CFGBuilder builds one graph per function scope found in an AST, plus one
// for the enclosing module body. Grounded on pyscn's CFGBuilder, whose
// BuildAll walks function/class defs (including nested ones) to produce a
// named map of per-scope graphs; retargeted here to build cfg.Graph values
// through cfg.Builder instead of that package's BasicBlock/Edge model.
type CFGBuilder struct {
	logger *log.Logger
}

// NewCFGBuilder creates a builder ready for Build or BuildAll.
func NewCFGBuilder() *CFGBuilder {
	return &CFGBuilder{}
}

// SetLogger installs a sink for non-fatal diagnostics raised while
// recursing into nested scopes.
func (b *CFGBuilder) SetLogger(logger *log.Logger) {
	b.logger = logger
}

func (b *CFGBuilder) logError(format string, args ...interface{}) {
	if b.logger != nil {
		b.logger.Printf("CFGBuilder: "+format, args...)
	}
}

// Build constructs a single graph from one node's body (a module, function,
// or class def).
func (b *CFGBuilder) Build(node *parser.Node) (*cfg.Graph, error) {
	if node == nil {
		return nil, fmt.Errorf("cannot build CFG from nil node")
	}
	return b.build(node.Body)
}

func (b *CFGBuilder) build(stmts []*parser.Node) (*cfg.Graph, error) {
	builder := cfg.NewBuilder()
	builder.SetLogger(b.logger)
	return builder.Build(stmts)
}

// BuildAll builds a graph for the module body under LabelMainModule, plus
// one for every function def found directly in the module body or in the
// body of a class or function; defs nested inside if/for/while/try/with
// blocks are not collected. Nested functions and methods are qualified by
// their enclosing scope ("Outer.inner", "Class.method"), matching pyscn's
// dotted naming.
func (b *CFGBuilder) BuildAll(node *parser.Node) (map[string]*cfg.Graph, error) {
	if node == nil {
		return nil, fmt.Errorf("cannot build CFGs from nil node")
	}

	graphs := make(map[string]*cfg.Graph)

	mainGraph, err := b.build(node.Body)
	if err != nil {
		return nil, err
	}
	graphs[LabelMainModule] = mainGraph

	b.collectScopes(node.Body, "", graphs)

	return graphs, nil
}

func (b *CFGBuilder) collectScopes(stmts []*parser.Node, prefix string, graphs map[string]*cfg.Graph) {
	for _, stmt := range stmts {
		switch stmt.Type {
		case parser.NodeFunctionDef, parser.NodeAsyncFunctionDef:
			name := qualifyScope(prefix, stmt.Name)
			g, err := b.build(stmt.Body)
			if err != nil {
				b.logError("failed to build graph for %s: %v", name, err)
				continue
			}
			graphs[name] = g
			b.collectScopes(stmt.Body, name, graphs)
		case parser.NodeClassDef:
			b.collectScopes(stmt.Body, qualifyScope(prefix, stmt.Name), graphs)
		}
	}
}

func qualifyScope(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
