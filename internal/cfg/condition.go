package cfg

import "github.com/cflowgraph/pycfg/internal/parser"

// Condition is the closed set of edge labels a block's outgoing switch can
// carry. Every variant is a value type implementing condition() as an
// unexported marker method, so the set is closed to this package: consumers
// type switch on the concrete type rather than inspecting a tag field.
type Condition interface {
	condition()
	// String renders the label the way a visualizer would show it;
	// callers that need the precise variant should type-switch instead.
	String() string
}

// Test is a boolean expression guarding a branch (if/elif, while).
type Test struct {
	Expr *parser.Node
}

func (Test) condition() {}
func (t Test) String() string { return sourceOf(t.Expr) }

// Iterator guards a for-loop body: "the iterator is not exhausted".
// Target receives the yielded element on each pass through the guard.
type Iterator struct {
	Target  *parser.Node
	Iter    *parser.Node
	IsAsync bool
}

func (Iterator) condition() {}
func (i Iterator) String() string {
	prefix := "for "
	if i.IsAsync {
		prefix = "async for "
	}
	return prefix + sourceOf(i.Target) + " in " + sourceOf(i.Iter)
}

// Match is a single case of a match statement: "subject matches this case's
// pattern". Guard clauses travel with Case by reference.
type Match struct {
	Subject *parser.Node
	Case    *parser.Node
}

func (Match) condition() {}
func (m Match) String() string {
	return sourceOf(m.Subject) + " matches " + sourceOf(m.Case)
}

// ExceptHandler matches an in-flight exception against a handler's type_.
// A bare handler (Handler.Test == nil) is the catch-all.
type ExceptHandler struct {
	Handler *parser.Node
}

func (ExceptHandler) condition() {}
func (e ExceptHandler) String() string {
	if e.Handler == nil || e.Handler.Test == nil {
		return "except any exception"
	}
	return "except " + sourceOf(e.Handler.Test)
}

// UncaughtException marks the path taken when no handler in the dispatch
// block's switch matched.
type UncaughtException struct{}

func (UncaughtException) condition()     {}
func (UncaughtException) String() string { return "uncaught exception" }

// Else is the fallthrough taken when no preceding condition in the same
// switch fired: if/elif/else fallthrough, loop exhaustion, match default.
type Else struct{}

func (Else) condition()     {}
func (Else) String() string { return "Else" }

// Always is an unconditional edge.
type Always struct{}

func (Always) condition()     {}
func (Always) String() string { return "" }

// Deferred is emitted only by the deferred-jump resolver (C6): a placeholder
// standing in for a return/break/continue whose real target could only be
// computed after the protecting finally ran. At query time it behaves like
// Always except its Stmt records which jump it resolves, for diagnostics;
// consumers that don't care may treat it as Always.
type Deferred struct {
	Stmt *parser.Node
}

func (Deferred) condition() {}
func (d Deferred) String() string {
	return "deferred " + sourceOf(d.Stmt)
}

// sourceOf renders a best-effort source fragment for a borrowed AST node.
// The CFG core never evaluates expressions; this is purely for the String()
// methods used by diagnostics and the visualizer fallback path.
func sourceOf(n *parser.Node) string {
	if n == nil {
		return ""
	}
	return n.String()
}
