package sim

import (
	"maps"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// dfsDepthWindow caps the depth component of the DFS visited key, so a form
// seen at depths d and d+dfsDepthWindow counts as the same visit.
const dfsDepthWindow = 50

// derivationNode is one sentential form in the search tree.
type derivationNode struct {
	form   string
	parent *derivationNode
	rule   Production // production that produced form from parent.form
	depth  int
}

// path returns the nodes from the root down to n.
func (n *derivationNode) path() []*derivationNode {
	var out []*derivationNode
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, cur)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// SearchStats describes how a derivation search ended.
type SearchStats struct {
	Strategy       Strategy // strategy that produced the verdict
	Explored       int      // forms expanded, summed over both passes in auto mode
	BudgetExceeded bool
}

// derive searches for a left-most derivation of target. It returns the node
// holding target, or nil when none was found.
func (g *Grammar) derive(target string) (*derivationNode, SearchStats) {
	switch g.opts.strategy {
	case StrategyBFS:
		n, explored, exceeded := g.bfs(target)
		return n, SearchStats{Strategy: StrategyBFS, Explored: explored, BudgetExceeded: exceeded}
	case StrategyDFS:
		n, explored, exceeded := g.dfs(target)
		return n, SearchStats{Strategy: StrategyDFS, Explored: explored, BudgetExceeded: exceeded}
	default:
		n, explored, exceeded := g.bfs(target)
		if n != nil || !exceeded {
			return n, SearchStats{Strategy: StrategyBFS, Explored: explored, BudgetExceeded: exceeded}
		}
		logrus.Infof("bfs budget of %d expansions spent, falling back to dfs", g.opts.maxSteps)
		n, dfsExplored, exceeded := g.dfs(target)
		return n, SearchStats{Strategy: StrategyDFS, Explored: explored + dfsExplored, BudgetExceeded: exceeded}
	}
}

// leftmost returns the byte offset and symbol of the left-most non-terminal.
func (g *Grammar) leftmost(form string) (int, rune, bool) {
	for i, r := range form {
		if g.IsNonTerminal(r) {
			return i, r, true
		}
	}
	return 0, 0, false
}

// children expands the left-most non-terminal of n with each alternative in
// declared order.
func (g *Grammar) children(n *derivationNode) []*derivationNode {
	i, nt, ok := g.leftmost(n.form)
	if !ok {
		return nil
	}
	rest := n.form[i+utf8.RuneLen(nt):]
	out := make([]*derivationNode, 0, len(g.productions[nt]))
	for _, body := range g.productions[nt] {
		out = append(out, &derivationNode{
			form:   n.form[:i] + body + rest,
			parent: n,
			rule:   Production{Head: nt, Body: body},
			depth:  n.depth + 1,
		})
	}
	return out
}

// prune reports whether form can be abandoned. The terminal-count and prefix
// checks are exact for left-most derivations; the length bound is a heuristic
// that can cut derivations passing through long forms.
func (g *Grammar) prune(form, target string) bool {
	targetLen := utf8.RuneCountInString(target)
	if utf8.RuneCountInString(form) > g.opts.pruning.LengthFactor*targetLen+1 {
		return true
	}
	terminals := 0
	prefix := 0 // length in bytes of the leading terminal run
	seenNonTerminal := false
	for i, r := range form {
		if g.IsNonTerminal(r) {
			if !seenNonTerminal {
				prefix = i
				seenNonTerminal = true
			}
			continue
		}
		terminals++
	}
	if terminals > targetLen {
		return true
	}
	if !seenNonTerminal {
		return form != target
	}
	return len(target) < prefix || form[:prefix] != target[:prefix]
}

// bfs explores forms level by level. The visited set is shared by the whole
// search and holds every form ever enqueued.
func (g *Grammar) bfs(target string) (*derivationNode, int, bool) {
	root := &derivationNode{form: string(g.start)}
	if root.form == target {
		return root, 0, false
	}
	visited := map[string]bool{root.form: true}
	var frontier Queue[*derivationNode]
	frontier.Enqueue(root)

	explored := 0
	for frontier.Len() > 0 {
		if explored >= g.opts.maxSteps {
			return nil, explored, true
		}
		n, _ := frontier.Dequeue()
		explored++
		for _, child := range g.children(n) {
			if visited[child.form] {
				continue
			}
			visited[child.form] = true
			if child.form == target {
				logrus.Debugf("[bfs %04d] reached %q at depth %d", explored, target, child.depth)
				return child, explored, false
			}
			if g.prune(child.form, target) {
				continue
			}
			frontier.Enqueue(child)
		}
	}
	return nil, explored, false
}

type visitKey struct {
	form  string
	depth int
}

// dfsSearch is the state of one depth-first pass.
type dfsSearch struct {
	g        *Grammar
	target   string
	explored int
	exceeded bool
}

// dfs explores alternatives in declared order. Each branch carries its own
// copy of the visited set, so siblings never hide each other's forms.
func (g *Grammar) dfs(target string) (*derivationNode, int, bool) {
	s := &dfsSearch{g: g, target: target}
	found := s.visit(&derivationNode{form: string(g.start)}, map[visitKey]bool{})
	return found, s.explored, s.exceeded
}

func (s *dfsSearch) visit(n *derivationNode, visited map[visitKey]bool) *derivationNode {
	if n.form == s.target {
		return n
	}
	key := visitKey{form: n.form, depth: n.depth % dfsDepthWindow}
	if visited[key] || (n.depth > 0 && s.g.prune(n.form, s.target)) {
		return nil
	}
	if s.explored >= s.g.opts.maxSteps {
		s.exceeded = true
		return nil
	}
	s.explored++
	branch := maps.Clone(visited)
	branch[key] = true
	for _, child := range s.g.children(n) {
		if found := s.visit(child, branch); found != nil {
			return found
		}
		if s.exceeded {
			return nil
		}
	}
	return nil
}
