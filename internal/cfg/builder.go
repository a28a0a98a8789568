package cfg

import (
	"fmt"
	"log"

	"github.com/cflowgraph/pycfg/internal/parser"
)

// jumpKind distinguishes the three non-local jumps the builder tracks.
// raise is deliberately absent: per design, it carries no control-flow edge.
type jumpKind int

const (
	jumpReturn jumpKind = iota
	jumpBreak
	jumpContinue
)

// deferredJump is a recorded jump AST node awaiting resolution once its
// protecting finally has run.
type deferredJump struct {
	kind jumpKind
	stmt *parser.Node
}

// loopContext is the (guard, exit) pair active inside a loop body: continue
// targets guard, break targets exit.
type loopContext struct {
	guard BlockID
	exit  BlockID
}

// Builder holds the cursor, the pending fall-through target, and the two
// ambient stacks that a single forward pass over a statement sequence
// threads through every composite construct (C4). Construction of a Graph
// is one-shot: create a Builder, call Build once, discard it.
type Builder struct {
	store       *store
	initial     BlockID
	terminal    BlockID
	current     BlockID
	currentExit BlockID
	loopStack   []*loopContext
	tryStack    []*tryContext
	logger      *log.Logger
}

// NewBuilder returns a Builder ready to construct a single Graph.
func NewBuilder() *Builder {
	s := newStore(8)
	initial := s.newBlock(Generic)
	terminal := s.newBlock(Terminal)
	return &Builder{
		store:       s,
		initial:     initial,
		terminal:    terminal,
		current:     initial,
		currentExit: terminal,
	}
}

// SetLogger installs a sink for non-fatal diagnostics. Construction failures
// are still reported through Build's error return; the logger only records
// the message before that happens.
func (b *Builder) SetLogger(logger *log.Logger) {
	b.logger = logger
}

func (b *Builder) logf(format string, args ...interface{}) {
	if b.logger != nil {
		b.logger.Printf("cfg builder: "+format, args...)
	}
}

// Build walks stmts in source order and returns the resulting Graph.
// Function and class bodies nested inside stmts are pushed as ordinary
// statements, never descended into — callers wanting their control flow
// run a fresh Builder over each one's own body.
//
// A malformed input (break/continue outside any loop, or a try node with
// no handlers, no else, and no finally) aborts construction; Build recovers
// the internal panic and reports it as an error rather than propagating it,
// since a conforming parser should never produce such a tree.
func (b *Builder) Build(stmts []*parser.Node) (g *Graph, err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logf("aborted: %v", r)
			err = fmt.Errorf("cfg: %v", r)
		}
	}()

	b.processStmts(stmts)
	b.finishBlock()

	return &Graph{store: b.store, initial: b.initial, terminal: b.terminal}, nil
}

// processStmts is the single forward pass (C5): each statement knows
// whether another follows, so composite constructs can decide whether their
// own fall-through needs a fresh block or can reuse the enclosing exit.
func (b *Builder) processStmts(stmts []*parser.Node) {
	for i, stmt := range stmts {
		hasMore := i+1 < len(stmts)
		b.processStmt(stmt, hasMore)
	}
}

func (b *Builder) processStmt(stmt *parser.Node, hasMore bool) {
	switch stmt.Type {
	case parser.NodeIf:
		b.processIf(stmt, hasMore)
	case parser.NodeMatch:
		b.processMatch(stmt, hasMore)
	case parser.NodeWhile:
		b.processLoop(hasMore, Test{Expr: stmt.Test}, stmt.Body, stmt.Orelse)
	case parser.NodeFor, parser.NodeAsyncFor:
		b.processLoop(hasMore, forCondition(stmt), stmt.Body, stmt.Orelse)
	case parser.NodeTry:
		b.processTry(stmt, hasMore)
	case parser.NodeReturn:
		b.processJump(jumpReturn, stmt, hasMore)
	case parser.NodeBreak:
		b.processJump(jumpBreak, stmt, hasMore)
	case parser.NodeContinue:
		b.processJump(jumpContinue, stmt, hasMore)
	default:
		// Assignments, imports, expressions, pass, delete, function/class
		// defs, global/nonlocal, with, raise, assert: all simple statements
		// here. with's potential exception fan-out and raise/assert's
		// control transfer are open points, not modeled.
		b.pushStmt(stmt)
	}
}

func forCondition(stmt *parser.Node) Condition {
	var target *parser.Node
	if len(stmt.Targets) > 0 {
		target = stmt.Targets[0]
	}
	return Iterator{
		Target:  target,
		Iter:    stmt.Iter,
		IsAsync: stmt.Type == parser.NodeAsyncFor,
	}
}

func (b *Builder) newBlock() BlockID              { return b.store.newBlock(Generic) }
func (b *Builder) newLoopGuard() BlockID          { return b.store.newBlock(LoopGuard) }
func (b *Builder) newExceptionDispatch() BlockID  { return b.store.newBlock(ExceptionDispatch) }
func (b *Builder) newRecovery() BlockID           { return b.store.newBlock(Recovery) }
func (b *Builder) moveTo(id BlockID)              { b.current = id }
func (b *Builder) pushStmt(stmt *parser.Node)     { b.store.pushStmt(b.current, stmt) }
func (b *Builder) setOutgoing(edge Edge)          { b.store.setOutgoing(b.current, edge) }
func (b *Builder) hasOutgoing() bool              { return b.store.outgoing(b.current).IsWired() }

// nextOrExit is the recurring "allocate next_block" rule: a fresh block
// when more statements remain in this sequence, otherwise the enclosing
// exit directly (no dead block just to hold the handoff).
func (b *Builder) nextOrExit(hasMore bool) BlockID {
	if hasMore {
		return b.newBlock()
	}
	return b.currentExit
}

// finishBlock wires current's fall-through to currentExit if nothing else
// already gave it an outgoing edge. Called after every body recursion and
// once more at the end of Build.
//
// When current already equals currentExit, a nested composite that was the
// last statement of this body moved straight onto the shared exit block
// itself (terminal, a loop guard, a dispatch or recovery block, or an
// enclosing next_block) instead of a fresh one. That block is wired by
// whoever owns it — or, for terminal, never wired at all — so there is
// nothing for this call to do; wiring it here would double-set its edge
// and leave a stale predecessor entry behind.
func (b *Builder) finishBlock() {
	if b.current == b.currentExit {
		return
	}
	if !b.hasOutgoing() {
		b.setOutgoing(AlwaysEdge(b.currentExit))
	}
}

// recurse is the save/restore idiom from 4.2: move into block, override the
// exit for the duration of stmts, wire any leftover fall-through, then
// restore the outer exit. Every composite construct's arms and clause
// bodies go through this, so the override never leaks past its own body.
func (b *Builder) recurse(block, exit BlockID, stmts []*parser.Node) {
	outer := b.currentExit
	b.moveTo(block)
	b.currentExit = exit
	b.processStmts(stmts)
	b.finishBlock()
	b.currentExit = outer
}

func (b *Builder) pushLoop(guard, exit BlockID) {
	b.loopStack = append(b.loopStack, &loopContext{guard: guard, exit: exit})
}

func (b *Builder) popLoop() {
	b.loopStack = b.loopStack[:len(b.loopStack)-1]
}

func (b *Builder) loopGuard() BlockID {
	if len(b.loopStack) == 0 {
		panic("continue outside of a loop")
	}
	return b.loopStack[len(b.loopStack)-1].guard
}

func (b *Builder) loopExit() BlockID {
	if len(b.loopStack) == 0 {
		panic("break outside of a loop")
	}
	return b.loopStack[len(b.loopStack)-1].exit
}

// processJump handles return/break/continue identically up to their real
// target: push the statement, defer through the innermost try-context if
// one still needs to run a finally, otherwise jump directly. A break or
// continue validates its loop context immediately even when deferred, so a
// malformed tree is rejected at the jump site rather than later at
// resolution time.
func (b *Builder) processJump(kind jumpKind, stmt *parser.Node, hasMore bool) {
	b.pushStmt(stmt)

	switch kind {
	case jumpBreak:
		b.loopExit()
	case jumpContinue:
		b.loopGuard()
	}

	if b.shouldDeferJumps() {
		top := b.currentTry()
		top.deferredJumps = append(top.deferredJumps, deferredJump{kind: kind, stmt: stmt})
		b.setOutgoing(AlwaysEdge(b.currentExit))
	} else {
		b.setOutgoing(AlwaysEdge(b.jumpTarget(kind)))
	}

	if hasMore {
		b.moveTo(b.newBlock())
	}
}

func (b *Builder) jumpTarget(kind jumpKind) BlockID {
	switch kind {
	case jumpReturn:
		return b.terminal
	case jumpBreak:
		return b.loopExit()
	case jumpContinue:
		return b.loopGuard()
	default:
		panic("unknown jump kind")
	}
}
