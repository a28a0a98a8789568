package analyzer

import (
	"github.com/cflowgraph/pycfg/internal/cfg"
	"github.com/cflowgraph/pycfg/internal/parser"
)

// DFABuilder constructs def-use chain information from a graph
type DFABuilder struct {
	graph *cfg.Graph
	info  *DFAInfo
}

// NewDFABuilder creates a new DFA builder
func NewDFABuilder() *DFABuilder {
	return &DFABuilder{}
}

// Build creates DFA information for the given graph
func (b *DFABuilder) Build(g *cfg.Graph) (*DFAInfo, error) {
	if g == nil {
		return nil, nil
	}

	b.graph = g
	b.info = NewDFAInfo(g)

	b.collectDefinitions()
	b.collectUses()
	b.linkDefUse()

	return b.info, nil
}

// collectDefinitions walks the graph to find all variable definitions
func (b *DFABuilder) collectDefinitions() {
	for id := 0; id < b.graph.NumBlocks(); id++ {
		bid := cfg.BlockID(id)
		if b.graph.Kind(bid) == cfg.Terminal {
			continue
		}
		for pos, stmt := range b.graph.Stmts(bid) {
			for _, def := range b.extractDefinitions(stmt, bid, pos) {
				b.info.AddDef(def)
			}
		}
	}
}

// collectUses walks the graph to find all variable uses
func (b *DFABuilder) collectUses() {
	for id := 0; id < b.graph.NumBlocks(); id++ {
		bid := cfg.BlockID(id)
		if b.graph.Kind(bid) == cfg.Terminal {
			continue
		}
		for pos, stmt := range b.graph.Stmts(bid) {
			for _, use := range b.extractUses(stmt, bid, pos) {
				b.info.AddUse(use)
			}
		}
	}
}

// linkDefUse connects definitions to their uses, using a simplified
// reaching-definitions approximation: within a block, a def at position i
// reaches a use at position j when i < j with no intervening def; across
// blocks, the nearest definition found by a predecessor-edge BFS.
func (b *DFABuilder) linkDefUse() {
	for varName, chain := range b.info.Chains {
		for _, use := range chain.Uses {
			def := b.findReachingDef(varName, use)
			if def != nil {
				chain.AddPair(NewDefUsePair(def, use))
			}
		}
	}
}

func (b *DFABuilder) findReachingDef(varName string, use *VarReference) *VarReference {
	if use == nil {
		return nil
	}

	chain := b.info.Chains[varName]
	if chain == nil {
		return nil
	}

	if sameBlockDef := b.findDefInBlockBefore(chain.Defs, use.Block, use.Position); sameBlockDef != nil {
		return sameBlockDef
	}

	return b.findDefInPredecessors(chain.Defs, use.Block)
}

func (b *DFABuilder) findDefInBlockBefore(defs []*VarReference, block cfg.BlockID, usePos int) *VarReference {
	var lastDef *VarReference
	for _, def := range defs {
		if def.Block == block && def.Position < usePos {
			if lastDef == nil || def.Position > lastDef.Position {
				lastDef = def
			}
		}
	}
	return lastDef
}

func (b *DFABuilder) findDefInPredecessors(defs []*VarReference, startBlock cfg.BlockID) *VarReference {
	visited := make(map[cfg.BlockID]bool)
	queue := append([]cfg.BlockID{}, b.graph.Predecessors(startBlock)...)
	for _, p := range queue {
		visited[p] = true
	}

	for len(queue) > 0 {
		block := queue[0]
		queue = queue[1:]

		var lastDef *VarReference
		for _, def := range defs {
			if def.Block == block {
				if lastDef == nil || def.Position > lastDef.Position {
					lastDef = def
				}
			}
		}
		if lastDef != nil {
			return lastDef
		}

		for _, p := range b.graph.Predecessors(block) {
			if !visited[p] {
				visited[p] = true
				queue = append(queue, p)
			}
		}
	}

	return nil
}

// extractDefinitions extracts all definitions from a statement
func (b *DFABuilder) extractDefinitions(stmt *parser.Node, block cfg.BlockID, pos int) []*VarReference {
	if stmt == nil {
		return nil
	}

	var defs []*VarReference

	switch stmt.Type {
	case parser.NodeAssign:
		defs = append(defs, b.extractAssignmentDefs(stmt, block, pos)...)
	case parser.NodeAugAssign:
		defs = append(defs, b.extractAugAssignDefs(stmt, block, pos)...)
	case parser.NodeAnnAssign:
		defs = append(defs, b.extractAnnAssignDefs(stmt, block, pos)...)
	case parser.NodeFor, parser.NodeAsyncFor:
		defs = append(defs, b.extractForTargetDefs(stmt, block, pos)...)
	case parser.NodeFunctionDef, parser.NodeAsyncFunctionDef:
		defs = append(defs, b.extractParameterDefs(stmt, block, pos)...)
	case parser.NodeImport:
		defs = append(defs, b.extractImportDefs(stmt, block, pos)...)
	case parser.NodeImportFrom:
		defs = append(defs, b.extractImportFromDefs(stmt, block, pos)...)
	case parser.NodeWith, parser.NodeAsyncWith:
		defs = append(defs, b.extractWithTargetDefs(stmt, block, pos)...)
	case parser.NodeExceptHandler:
		defs = append(defs, b.extractExceptTargetDefs(stmt, block, pos)...)
	case parser.NodeNamedExpr:
		defs = append(defs, b.extractNamedExprDefs(stmt, block, pos)...)
	}

	return defs
}

// extractUses extracts all uses from a statement
func (b *DFABuilder) extractUses(stmt *parser.Node, block cfg.BlockID, pos int) []*VarReference {
	if stmt == nil {
		return nil
	}

	var uses []*VarReference

	if stmt.Type == parser.NodeAssign || stmt.Type == parser.NodeAnnAssign {
		if valueNode, ok := stmt.Value.(*parser.Node); ok {
			uses = append(uses, b.extractUsesFromExpression(valueNode, block, stmt, pos)...)
		}
		return uses
	}

	if stmt.Type == parser.NodeAugAssign {
		if len(stmt.Targets) > 0 && stmt.Targets[0] != nil && stmt.Targets[0].Type == parser.NodeName {
			uses = append(uses, NewVarReference(stmt.Targets[0].Name, UseKindRead, block, stmt, pos))
		}
		if valueNode, ok := stmt.Value.(*parser.Node); ok {
			uses = append(uses, b.extractUsesFromExpression(valueNode, block, stmt, pos)...)
		}
		return uses
	}

	uses = append(uses, b.extractUsesFromExpression(stmt, block, stmt, pos)...)

	return uses
}

// extractUsesFromExpression recursively extracts variable uses from an expression
func (b *DFABuilder) extractUsesFromExpression(expr *parser.Node, block cfg.BlockID, stmt *parser.Node, pos int) []*VarReference {
	if expr == nil {
		return nil
	}

	var uses []*VarReference

	switch expr.Type {
	case parser.NodeName:
		uses = append(uses, NewVarReference(expr.Name, UseKindRead, block, stmt, pos))

	case parser.NodeAttribute:
		if baseNode, ok := expr.Value.(*parser.Node); ok {
			if baseNode.Type == parser.NodeName {
				uses = append(uses, NewVarReference(baseNode.Name, UseKindAttribute, block, stmt, pos))
			} else {
				uses = append(uses, b.extractUsesFromExpression(baseNode, block, stmt, pos)...)
			}
		} else if len(expr.Children) > 0 {
			base := expr.Children[0]
			if base != nil && base.Type == parser.NodeName {
				uses = append(uses, NewVarReference(base.Name, UseKindAttribute, block, stmt, pos))
			} else if base != nil {
				uses = append(uses, b.extractUsesFromExpression(base, block, stmt, pos)...)
			}
		}

	case parser.NodeSubscript:
		if len(expr.Children) > 0 {
			base := expr.Children[0]
			if base != nil && base.Type == parser.NodeName {
				uses = append(uses, NewVarReference(base.Name, UseKindSubscript, block, stmt, pos))
			} else if base != nil {
				uses = append(uses, b.extractUsesFromExpression(base, block, stmt, pos)...)
			}
		}
		if len(expr.Children) > 1 {
			uses = append(uses, b.extractUsesFromExpression(expr.Children[1], block, stmt, pos)...)
		}

	case parser.NodeCall:
		if len(expr.Children) > 0 {
			funcNode := expr.Children[0]
			if funcNode != nil && funcNode.Type == parser.NodeName {
				uses = append(uses, NewVarReference(funcNode.Name, UseKindCall, block, stmt, pos))
			} else if funcNode != nil {
				uses = append(uses, b.extractUsesFromExpression(funcNode, block, stmt, pos)...)
			}
		}
		for _, arg := range expr.Args {
			uses = append(uses, b.extractUsesFromExpression(arg, block, stmt, pos)...)
		}
		for _, kw := range expr.Keywords {
			if len(kw.Children) > 0 {
				uses = append(uses, b.extractUsesFromExpression(kw.Children[0], block, stmt, pos)...)
			}
		}

	case parser.NodeBinOp:
		uses = append(uses, b.extractUsesFromExpression(expr.Left, block, stmt, pos)...)
		uses = append(uses, b.extractUsesFromExpression(expr.Right, block, stmt, pos)...)

	case parser.NodeUnaryOp:
		if len(expr.Children) > 0 {
			uses = append(uses, b.extractUsesFromExpression(expr.Children[0], block, stmt, pos)...)
		}

	case parser.NodeCompare:
		uses = append(uses, b.extractUsesFromExpression(expr.Left, block, stmt, pos)...)
		for _, child := range expr.Children {
			uses = append(uses, b.extractUsesFromExpression(child, block, stmt, pos)...)
		}

	case parser.NodeTuple, parser.NodeList, parser.NodeSet:
		for _, child := range expr.Children {
			uses = append(uses, b.extractUsesFromExpression(child, block, stmt, pos)...)
		}

	case parser.NodeDict:
		for _, child := range expr.Children {
			uses = append(uses, b.extractUsesFromExpression(child, block, stmt, pos)...)
		}

	case parser.NodeIfExp:
		uses = append(uses, b.extractUsesFromExpression(expr.Test, block, stmt, pos)...)
		for _, child := range expr.Children {
			uses = append(uses, b.extractUsesFromExpression(child, block, stmt, pos)...)
		}

	case parser.NodeLambda:
		// Body contains uses but parameters are local; lambda internals
		// are skipped here.

	case parser.NodeBoolOp:
		for _, child := range expr.Children {
			uses = append(uses, b.extractUsesFromExpression(child, block, stmt, pos)...)
		}

	default:
		for _, child := range expr.Children {
			uses = append(uses, b.extractUsesFromExpression(child, block, stmt, pos)...)
		}
	}

	return uses
}

func (b *DFABuilder) extractAssignmentDefs(stmt *parser.Node, block cfg.BlockID, pos int) []*VarReference {
	var defs []*VarReference
	for _, target := range stmt.Targets {
		defs = append(defs, b.extractNamesFromTarget(target, DefKindAssign, block, stmt, pos)...)
	}
	return defs
}

func (b *DFABuilder) extractAugAssignDefs(stmt *parser.Node, block cfg.BlockID, pos int) []*VarReference {
	var defs []*VarReference
	if len(stmt.Targets) > 0 && stmt.Targets[0] != nil {
		target := stmt.Targets[0]
		if target.Type == parser.NodeName {
			defs = append(defs, NewVarReference(target.Name, DefKindAugmented, block, stmt, pos))
		}
	}
	return defs
}

func (b *DFABuilder) extractAnnAssignDefs(stmt *parser.Node, block cfg.BlockID, pos int) []*VarReference {
	var defs []*VarReference
	if len(stmt.Targets) > 0 && stmt.Targets[0] != nil {
		target := stmt.Targets[0]
		if target.Type == parser.NodeName {
			defs = append(defs, NewVarReference(target.Name, DefKindAssign, block, stmt, pos))
		}
	}
	return defs
}

func (b *DFABuilder) extractForTargetDefs(stmt *parser.Node, block cfg.BlockID, pos int) []*VarReference {
	var defs []*VarReference
	for _, target := range stmt.Targets {
		defs = append(defs, b.extractNamesFromTarget(target, DefKindForTarget, block, stmt, pos)...)
	}
	return defs
}

func (b *DFABuilder) extractParameterDefs(stmt *parser.Node, block cfg.BlockID, pos int) []*VarReference {
	var defs []*VarReference
	for _, child := range stmt.Children {
		if child != nil && child.Type == parser.NodeArguments {
			for _, arg := range child.Children {
				if arg != nil && arg.Type == parser.NodeArg && arg.Name != "" {
					defs = append(defs, NewVarReference(arg.Name, DefKindParameter, block, stmt, pos))
				}
			}
			break
		}
	}
	return defs
}

func (b *DFABuilder) extractImportDefs(stmt *parser.Node, block cfg.BlockID, pos int) []*VarReference {
	var defs []*VarReference
	for _, name := range stmt.Names {
		defs = append(defs, NewVarReference(name, DefKindImport, block, stmt, pos))
	}
	for _, child := range stmt.Children {
		if child != nil && child.Type == parser.NodeAlias {
			name := child.Name
			if name == "" && len(child.Names) > 0 {
				name = child.Names[0]
			}
			if name != "" {
				defs = append(defs, NewVarReference(name, DefKindImport, block, stmt, pos))
			}
		}
	}
	return defs
}

func (b *DFABuilder) extractImportFromDefs(stmt *parser.Node, block cfg.BlockID, pos int) []*VarReference {
	var defs []*VarReference
	for _, name := range stmt.Names {
		defs = append(defs, NewVarReference(name, DefKindImport, block, stmt, pos))
	}
	for _, child := range stmt.Children {
		if child != nil && child.Type == parser.NodeAlias {
			name := child.Name
			if name == "" && len(child.Names) > 0 {
				name = child.Names[0]
			}
			if name != "" {
				defs = append(defs, NewVarReference(name, DefKindImport, block, stmt, pos))
			}
		}
	}
	return defs
}

func (b *DFABuilder) extractWithTargetDefs(stmt *parser.Node, block cfg.BlockID, pos int) []*VarReference {
	var defs []*VarReference
	for _, child := range stmt.Children {
		if child != nil && child.Type == parser.NodeWithItem {
			if len(child.Children) > 1 && child.Children[1] != nil {
				target := child.Children[1]
				defs = append(defs, b.extractNamesFromTarget(target, DefKindWithTarget, block, stmt, pos)...)
			}
		}
	}
	return defs
}

func (b *DFABuilder) extractExceptTargetDefs(stmt *parser.Node, block cfg.BlockID, pos int) []*VarReference {
	var defs []*VarReference
	if stmt.Name != "" {
		defs = append(defs, NewVarReference(stmt.Name, DefKindExceptTarget, block, stmt, pos))
	}
	return defs
}

func (b *DFABuilder) extractNamedExprDefs(stmt *parser.Node, block cfg.BlockID, pos int) []*VarReference {
	var defs []*VarReference
	if len(stmt.Children) > 0 && stmt.Children[0] != nil {
		target := stmt.Children[0]
		if target.Type == parser.NodeName {
			defs = append(defs, NewVarReference(target.Name, DefKindAssign, block, stmt, pos))
		}
	}
	return defs
}

// extractNamesFromTarget extracts all names from an assignment target (handles tuples)
func (b *DFABuilder) extractNamesFromTarget(target *parser.Node, kind DefUseKind, block cfg.BlockID, stmt *parser.Node, pos int) []*VarReference {
	if target == nil {
		return nil
	}

	var defs []*VarReference

	switch target.Type {
	case parser.NodeName:
		defs = append(defs, NewVarReference(target.Name, kind, block, stmt, pos))

	case parser.NodeTuple, parser.NodeList:
		for _, elem := range target.Children {
			defs = append(defs, b.extractNamesFromTarget(elem, kind, block, stmt, pos)...)
		}

	case parser.NodeStarred:
		if len(target.Children) > 0 {
			defs = append(defs, b.extractNamesFromTarget(target.Children[0], kind, block, stmt, pos)...)
		}

	default:
		// tree-sitter's pattern_list node covers tuple unpacking like a, b = 1, 2.
		if string(target.Type) == "pattern_list" {
			for _, elem := range target.Children {
				if elem != nil && elem.Type != "," && string(elem.Type) != "," {
					defs = append(defs, b.extractNamesFromTarget(elem, kind, block, stmt, pos)...)
				}
			}
		}
	}

	return defs
}
