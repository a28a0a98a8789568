package cfg

// resolveDeferred is the deferred-jump resolver (C6). It runs once a
// try-context's finally has completed and current sits at that context's
// recovery block, with currentExit already set to the block that follows
// the whole try statement.
//
// Popping may hand the jumps up rather than firing them: if the new
// innermost try-context still needs to run its own finally before any of
// these jumps can really happen, the jumps move there unresolved and the
// recovery block just falls through to currentExit, exactly as an
// ordinary block with nothing pending would.
func (b *Builder) resolveDeferred(ctx *tryContext) {
	b.popTry()

	if parent := b.currentTry(); parent != nil && b.shouldDeferJumps() {
		parent.deferredJumps = append(parent.deferredJumps, ctx.deferredJumps...)
		b.setOutgoing(AlwaysEdge(b.currentExit))
		return
	}

	if len(ctx.deferredJumps) == 0 {
		b.setOutgoing(AlwaysEdge(b.currentExit))
		return
	}

	pairs := make([]CondTarget, 0, len(ctx.deferredJumps)+1)
	for _, j := range ctx.deferredJumps {
		pairs = append(pairs, CondTarget{Cond: Deferred{Stmt: j.stmt}, Target: b.deferredTarget(j.kind)})
	}
	pairs = append(pairs, CondTarget{Cond: Always{}, Target: b.currentExit})
	b.setOutgoing(SwitchEdge(pairs...))
}

func (b *Builder) deferredTarget(kind jumpKind) BlockID {
	switch kind {
	case jumpReturn:
		return b.terminal
	case jumpBreak:
		return b.loopExit()
	case jumpContinue:
		return b.loopGuard()
	default:
		panic("unknown deferred jump kind")
	}
}
