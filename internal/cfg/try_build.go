package cfg

import "github.com/cflowgraph/pycfg/internal/parser"

// buildTryFinally: body falls through to the finally block; the finally
// falls through to recovery, where the deferred-jump resolver decides the
// recovery block's real outgoing edge.
func (b *Builder) buildTryFinally(ctx *tryContext, stmt *parser.Node, tryBlock, nextBlock BlockID) {
	finallyBlock := b.newBlock()
	recoveryBlock := b.newRecovery()

	ctx.state = tryStateTry
	b.recurse(tryBlock, finallyBlock, stmt.Body)

	ctx.state = tryStateFinally
	b.recurse(finallyBlock, recoveryBlock, stmt.Finalbody)

	b.moveTo(recoveryBlock)
	b.currentExit = nextBlock
	ctx.state = tryStateRecovery
	b.resolveDeferred(ctx)
}

// buildTryExcept: no finally, no else. Dispatch's Else arm goes straight to
// next_block; the popped context's deferred jumps (recorded only while it
// sat in state Try, since its own kind has no finally) are never resolved
// — by the time dispatch's Else fires, the statement that recorded them
// already reached its recorded destination, so nothing is lost.
func (b *Builder) buildTryExcept(ctx *tryContext, stmt *parser.Node, tryBlock, nextBlock BlockID) {
	dispatch := b.newExceptionDispatch()

	ctx.state = tryStateTry
	b.recurse(tryBlock, dispatch, stmt.Body)

	b.moveTo(dispatch)
	ctx.state = tryStateDispatch
	handlerBlocks := newBlocks(b, len(stmt.Handlers))

	pairs := make([]CondTarget, 0, len(stmt.Handlers)+1)
	for i, h := range stmt.Handlers {
		pairs = append(pairs, CondTarget{Cond: ExceptHandler{Handler: h}, Target: handlerBlocks[i]})
	}
	pairs = append(pairs, CondTarget{Cond: Else{}, Target: nextBlock})
	b.setOutgoing(SwitchEdge(pairs...))

	ctx.state = tryStateExcept
	for i, h := range stmt.Handlers {
		b.recurse(handlerBlocks[i], nextBlock, h.Body)
	}

	b.popTry()
}

// buildTryExceptElse: as buildTryExcept, but Else routes to an else block
// that then falls through to next_block, run only when the try body
// completed without raising.
func (b *Builder) buildTryExceptElse(ctx *tryContext, stmt *parser.Node, tryBlock, nextBlock BlockID) {
	dispatch := b.newExceptionDispatch()

	ctx.state = tryStateTry
	b.recurse(tryBlock, dispatch, stmt.Body)

	b.moveTo(dispatch)
	ctx.state = tryStateDispatch
	handlerBlocks := newBlocks(b, len(stmt.Handlers))
	elseBlock := b.newBlock()

	pairs := make([]CondTarget, 0, len(stmt.Handlers)+1)
	for i, h := range stmt.Handlers {
		pairs = append(pairs, CondTarget{Cond: ExceptHandler{Handler: h}, Target: handlerBlocks[i]})
	}
	pairs = append(pairs, CondTarget{Cond: Else{}, Target: elseBlock})
	b.setOutgoing(SwitchEdge(pairs...))

	ctx.state = tryStateExcept
	for i, h := range stmt.Handlers {
		b.recurse(handlerBlocks[i], nextBlock, h.Body)
	}

	ctx.state = tryStateElse
	b.recurse(elseBlock, nextBlock, stmt.Orelse)

	b.popTry()
}

// buildTryExceptFinally covers both TryExceptFinally and
// TryExceptElseFinally: every path out of dispatch (handlers, the optional
// else, and an uncaught exception when no bare handler is present) funnels
// into the finally block before reaching recovery.
func (b *Builder) buildTryExceptFinally(ctx *tryContext, stmt *parser.Node, tryBlock, nextBlock BlockID, hasElse bool) {
	dispatch := b.newExceptionDispatch()
	finallyBlock := b.newBlock()
	recoveryBlock := b.newRecovery()

	ctx.state = tryStateTry
	b.recurse(tryBlock, dispatch, stmt.Body)

	b.moveTo(dispatch)
	ctx.state = tryStateDispatch
	handlerBlocks := newBlocks(b, len(stmt.Handlers))

	var elseBlock BlockID
	elseTarget := finallyBlock
	if hasElse {
		elseBlock = b.newBlock()
		elseTarget = elseBlock
	}

	hasBareHandler := false
	pairs := make([]CondTarget, 0, len(stmt.Handlers)+2)
	for i, h := range stmt.Handlers {
		pairs = append(pairs, CondTarget{Cond: ExceptHandler{Handler: h}, Target: handlerBlocks[i]})
		if h.Test == nil {
			hasBareHandler = true
		}
	}
	if !hasBareHandler {
		pairs = append(pairs, CondTarget{Cond: UncaughtException{}, Target: finallyBlock})
	}
	pairs = append(pairs, CondTarget{Cond: Else{}, Target: elseTarget})
	b.setOutgoing(SwitchEdge(pairs...))

	ctx.state = tryStateExcept
	for i, h := range stmt.Handlers {
		b.recurse(handlerBlocks[i], finallyBlock, h.Body)
	}

	if hasElse {
		ctx.state = tryStateElse
		b.recurse(elseBlock, finallyBlock, stmt.Orelse)
	}

	ctx.state = tryStateFinally
	b.recurse(finallyBlock, recoveryBlock, stmt.Finalbody)

	b.moveTo(recoveryBlock)
	b.currentExit = nextBlock
	ctx.state = tryStateRecovery
	b.resolveDeferred(ctx)
}

func newBlocks(b *Builder, n int) []BlockID {
	ids := make([]BlockID, n)
	for i := range ids {
		ids[i] = b.newBlock()
	}
	return ids
}
