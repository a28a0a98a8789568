package cfg

import "github.com/cflowgraph/pycfg/internal/parser"

// ifArm is one tested arm of an if/elif chain, or the trailing catch-all
// else (Test == nil) when present.
type ifArm struct {
	test *parser.Node
	body []*parser.Node
}

// ifArms flattens the parser's nested elif-as-Orelse[0] representation into
// a flat source-order sequence of arms.
func ifArms(stmt *parser.Node) []ifArm {
	arms := []ifArm{{test: stmt.Test, body: stmt.Body}}
	rest := stmt.Orelse
	for len(rest) == 1 && rest[0].Type == parser.NodeElifClause {
		elif := rest[0]
		arms = append(arms, ifArm{test: elif.Test, body: elif.Body})
		rest = elif.Orelse
	}
	if len(rest) > 0 {
		arms = append(arms, ifArm{body: rest})
	}
	return arms
}

// processIf implements the if/elif/else rule from 4.3: one target block per
// arm, a switch from current, an (Else, next_block) fallback only when
// there is no catch-all arm.
func (b *Builder) processIf(stmt *parser.Node, hasMore bool) {
	nextBlock := b.nextOrExit(hasMore)
	arms := ifArms(stmt)

	targets := make([]BlockID, len(arms))
	for i := range arms {
		targets[i] = b.newBlock()
	}

	hasElse := false
	pairs := make([]CondTarget, 0, len(arms)+1)
	for i, arm := range arms {
		if arm.test == nil {
			hasElse = true
			pairs = append(pairs, CondTarget{Cond: Else{}, Target: targets[i]})
		} else {
			pairs = append(pairs, CondTarget{Cond: Test{Expr: arm.test}, Target: targets[i]})
		}
	}
	if !hasElse {
		pairs = append(pairs, CondTarget{Cond: Else{}, Target: nextBlock})
	}
	b.setOutgoing(SwitchEdge(pairs...))

	for i, arm := range arms {
		b.recurse(targets[i], nextBlock, arm.body)
	}

	b.moveTo(nextBlock)
}

// isWildcardCase reports whether a match case is an irrefutable catch-all:
// an unguarded capture pattern, written "_" or a bare name.
func isWildcardCase(c *parser.Node) bool {
	if c.Value != nil {
		return false // a guard clause means this case can still fall through
	}
	if c.Test == nil {
		return true
	}
	switch c.Test.Type {
	case parser.NodeMatchAs:
		return c.Test.Test == nil
	case parser.NodeName:
		return c.Test.Name == "_"
	default:
		return false
	}
}

// processMatch is the same shape as processIf, with Match{subject, case}
// conditions and a wildcard pattern standing in for a catch-all else arm.
func (b *Builder) processMatch(stmt *parser.Node, hasMore bool) {
	nextBlock := b.nextOrExit(hasMore)
	cases := stmt.Body

	targets := make([]BlockID, len(cases))
	for i := range cases {
		targets[i] = b.newBlock()
	}

	wildcard := false
	pairs := make([]CondTarget, 0, len(cases)+1)
	for i, c := range cases {
		pairs = append(pairs, CondTarget{Cond: Match{Subject: stmt.Test, Case: c}, Target: targets[i]})
		if isWildcardCase(c) {
			wildcard = true
		}
	}
	if !wildcard {
		pairs = append(pairs, CondTarget{Cond: Else{}, Target: nextBlock})
	}
	b.setOutgoing(SwitchEdge(pairs...))

	for i, c := range cases {
		b.recurse(targets[i], nextBlock, c.Body)
	}

	b.moveTo(nextBlock)
}
