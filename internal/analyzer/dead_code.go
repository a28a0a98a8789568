package analyzer

import (
	"sort"
	"strconv"
	"time"

	"github.com/cflowgraph/pycfg/internal/cfg"
)

// SeverityLevel represents the severity of a dead code finding.
type SeverityLevel string

const (
	SeverityLevelCritical SeverityLevel = "critical"
	SeverityLevelWarning  SeverityLevel = "warning"
	SeverityLevelInfo     SeverityLevel = "info"
)

// DeadCodeReason represents the reason why a block is considered dead.
type DeadCodeReason string

const (
	// ReasonUnreachable marks a block with no path from initial at all.
	ReasonUnreachable DeadCodeReason = "unreachable"
	// ReasonUnreachableHandler marks an except handler block that has no
	// path from initial.
	ReasonUnreachableHandler DeadCodeReason = "unreachable_except_handler"
)

// DeadCodeFinding is a single dead-code detection result, shaped to carry
// everything the reporting layer needs without reaching back into the graph.
type DeadCodeFinding struct {
	FilePath     string
	FunctionName string
	StartLine    int
	EndLine      int
	Code         string
	Reason       DeadCodeReason
	Severity     SeverityLevel
	Description  string
	Context      []string
	BlockID      string
}

// DeadCodeResult collects every finding for one function's graph.
type DeadCodeResult struct {
	FunctionName   string
	FilePath       string
	Findings       []DeadCodeFinding
	TotalBlocks    int
	DeadBlocks     int
	ReachableRatio float64
	AnalysisTime   time.Duration
}

// DetectInFunction runs the dead-code sweep over a single function's graph.
// name and filePath are optional labels stamped onto the result and every
// finding; pass "" for either when the caller doesn't have them yet.
func DetectInFunction(g *cfg.Graph, name, filePath string) *DeadCodeResult {
	if g == nil {
		return nil
	}

	start := time.Now()
	reachable := g.Reachable()

	result := &DeadCodeResult{FunctionName: name, FilePath: filePath, TotalBlocks: g.NumBlocks()}

	for id := 0; id < g.NumBlocks(); id++ {
		bid := cfg.BlockID(id)
		if reachable[bid] {
			continue
		}
		result.DeadBlocks++
		result.Findings = append(result.Findings, findingFor(g, bid, ReasonUnreachable, name, filePath))
	}

	ra := NewReachabilityAnalyzer(g)
	for _, bid := range ra.UnreachableExceptHandlers() {
		if reachable[bid] {
			continue // already reported as a plain unreachable block above
		}
		result.Findings = append(result.Findings, findingFor(g, bid, ReasonUnreachableHandler, name, filePath))
	}

	sort.Slice(result.Findings, func(i, j int) bool {
		return result.Findings[i].StartLine < result.Findings[j].StartLine
	})

	if g.NumBlocks() > 0 {
		result.ReachableRatio = float64(len(reachable)) / float64(g.NumBlocks())
	}
	result.AnalysisTime = time.Since(start)

	return result
}

func findingFor(g *cfg.Graph, id cfg.BlockID, reason DeadCodeReason, functionName, filePath string) DeadCodeFinding {
	stmts := g.Stmts(id)
	finding := DeadCodeFinding{
		FilePath:     filePath,
		FunctionName: functionName,
		Reason:       reason,
		Severity:     severityFor(g.Kind(id)),
		Description:  descriptionFor(reason, g.Kind(id)),
		BlockID:      blockIDString(id),
	}
	if len(stmts) > 0 {
		finding.StartLine = stmts[0].Location.StartLine
		finding.EndLine = stmts[len(stmts)-1].Location.EndLine
		finding.Code = stmts[0].String()
		for _, s := range stmts {
			finding.Context = append(finding.Context, s.String())
		}
	}
	return finding
}

func severityFor(kind cfg.BlockKind) SeverityLevel {
	switch kind {
	case cfg.Terminal:
		return SeverityLevelInfo
	case cfg.Recovery, cfg.ExceptionDispatch:
		return SeverityLevelWarning
	default:
		return SeverityLevelCritical
	}
}

func descriptionFor(reason DeadCodeReason, kind cfg.BlockKind) string {
	switch reason {
	case ReasonUnreachableHandler:
		return "except handler is unreachable because its try body never raises into it"
	default:
		return "block " + kind.String() + " has no path from the function entry"
	}
}

func blockIDString(id cfg.BlockID) string {
	return strconv.Itoa(int(id))
}
