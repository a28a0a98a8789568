package cfg

import "github.com/cflowgraph/pycfg/internal/parser"

// TryKind classifies a try statement by which clauses it carries. Fixed at
// context-push time from the shape of the AST node and never revisited.
type TryKind int

const (
	TryExcept TryKind = iota
	TryFinally
	TryExceptElse
	TryExceptFinally
	TryExceptElseFinally
)

func (k TryKind) hasFinally() bool {
	switch k {
	case TryFinally, TryExceptFinally, TryExceptElseFinally:
		return true
	default:
		return false
	}
}

func (k TryKind) hasElse() bool {
	switch k {
	case TryExceptElse, TryExceptElseFinally:
		return true
	default:
		return false
	}
}

// tryState is a try-context's position in the Try -> Dispatch ->
// (Except|Else)? -> Finally? -> Recovery progression.
type tryState int

const (
	tryStateTry tryState = iota
	tryStateDispatch
	tryStateExcept
	tryStateElse
	tryStateFinally
	tryStateRecovery
)

// tryContext is one live try-stack entry: its fixed kind, its current
// position in that kind's state progression, and the jumps recorded while
// a finally still has to run before they can fire.
type tryContext struct {
	kind          TryKind
	state         tryState
	deferredJumps []deferredJump
}

// classifyTry fixes a TryKind from clause presence. The empty combination
// (no handlers, no else, no finally) is the one malformed shape the
// invariants call out explicitly; a bare else with no handlers is likewise
// rejected since it cannot arise from a conforming parser.
func classifyTry(stmt *parser.Node) TryKind {
	hasHandlers := len(stmt.Handlers) > 0
	hasElse := len(stmt.Orelse) > 0
	hasFinally := len(stmt.Finalbody) > 0

	switch {
	case hasHandlers && hasElse && hasFinally:
		return TryExceptElseFinally
	case hasHandlers && hasFinally:
		return TryExceptFinally
	case hasHandlers && hasElse:
		return TryExceptElse
	case hasFinally:
		return TryFinally
	case hasHandlers:
		return TryExcept
	default:
		panic("try statement has no handlers, no else, and no finally")
	}
}

func (b *Builder) pushTry(kind TryKind) *tryContext {
	ctx := &tryContext{kind: kind, state: tryStateTry}
	b.tryStack = append(b.tryStack, ctx)
	return ctx
}

func (b *Builder) popTry() *tryContext {
	ctx := b.tryStack[len(b.tryStack)-1]
	b.tryStack = b.tryStack[:len(b.tryStack)-1]
	return ctx
}

func (b *Builder) currentTry() *tryContext {
	if len(b.tryStack) == 0 {
		return nil
	}
	return b.tryStack[len(b.tryStack)-1]
}

// shouldDeferJumps reports whether the innermost try-context will still run
// a finally after a jump raised right now: it hasn't yet left its try body,
// or it has and its kind carries one.
func (b *Builder) shouldDeferJumps() bool {
	top := b.currentTry()
	if top == nil {
		return false
	}
	switch top.state {
	case tryStateTry:
		return true
	case tryStateExcept, tryStateElse:
		return top.kind.hasFinally()
	default:
		return false
	}
}

// processTry dispatches on the fixed TryKind to the five clause-combination
// builders in 4.3.
func (b *Builder) processTry(stmt *parser.Node, hasMore bool) {
	kind := classifyTry(stmt)
	nextBlock := b.nextOrExit(hasMore)

	tryBlock := b.newBlock()
	b.setOutgoing(AlwaysEdge(tryBlock))

	ctx := b.pushTry(kind)

	switch kind {
	case TryFinally:
		b.buildTryFinally(ctx, stmt, tryBlock, nextBlock)
	case TryExcept:
		b.buildTryExcept(ctx, stmt, tryBlock, nextBlock)
	case TryExceptElse:
		b.buildTryExceptElse(ctx, stmt, tryBlock, nextBlock)
	case TryExceptFinally:
		b.buildTryExceptFinally(ctx, stmt, tryBlock, nextBlock, false)
	case TryExceptElseFinally:
		b.buildTryExceptFinally(ctx, stmt, tryBlock, nextBlock, true)
	}

	b.moveTo(nextBlock)
}

