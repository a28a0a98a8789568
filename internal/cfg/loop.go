package cfg

import "github.com/cflowgraph/pycfg/internal/parser"

// processLoop implements the shared while/for shape from 4.3: a guard
// block holding the test or iterator, a body that re-enters the guard on
// fall-through, and an optional else clause run only when the guard's
// condition fails naturally (never after a break).
func (b *Builder) processLoop(hasMore bool, cond Condition, body, orelse []*parser.Node) {
	nextBlock := b.nextOrExit(hasMore)

	guard := b.newLoopGuard()
	b.setOutgoing(AlwaysEdge(guard))
	b.moveTo(guard)

	bodyBlock := b.newBlock()
	hasElse := len(orelse) > 0

	elseTarget := nextBlock
	var elseBlock BlockID
	if hasElse {
		elseBlock = b.newBlock()
		elseTarget = elseBlock
	}

	b.setOutgoing(SwitchEdge(
		CondTarget{Cond: cond, Target: bodyBlock},
		CondTarget{Cond: Else{}, Target: elseTarget},
	))

	b.pushLoop(guard, nextBlock)
	b.recurse(bodyBlock, guard, body)
	if hasElse {
		b.recurse(elseBlock, nextBlock, orelse)
	}
	b.popLoop()

	b.moveTo(nextBlock)
}
