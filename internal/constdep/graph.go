package constdep

import "sort"

// Graph is the dependency relation over a unit's targets, keyed by
// discovery index. Edges point from consumer to dependency: "the consumer's
// value cannot be computed until the dependency's value is known." The
// graph exclusively owns its edge set; all visitation state during
// scheduling lives in locally owned arrays, never on tree nodes.
type Graph struct {
	set  *TargetSet
	deps [][]int // consumer index -> sorted, deduplicated dependency indices
}

// NewGraph creates an empty graph over the target set.
func NewGraph(set *TargetSet) *Graph {
	return &Graph{set: set, deps: make([][]int, set.Len())}
}

// setDeps installs the dependency list for one consumer. Lists come from
// the reference finder already deduplicated and sorted.
func (g *Graph) setDeps(consumer int, deps []int) {
	g.deps[consumer] = deps
}

// Schedule is the scheduler's verdict over one unit: every target ends up
// either Ordered or Cyclic, never both, never neither.
type Schedule struct {
	// Order holds the non-cyclic targets, every dependency strictly
	// before its consumers, ties broken by discovery order.
	Order []int

	// Cycles holds one group per strongly connected component with more
	// than one member or with a self-loop.
	Cycles []CycleGroup
}

// Schedule decomposes the graph into strongly connected components and
// derives the evaluation order.
//
// A target that depends on a cyclic target without being part of the cycle
// is still ordered: its edge into the cycle counts as satisfied here, and
// the Evaluator reports the unresolved dependency when it actually hits it.
// That keeps scheduling pure and cycle detection the only diagnosis done in
// this package.
func (g *Graph) Schedule() *Schedule {
	n := g.set.Len()
	sccs := g.tarjan()

	cyclic := make([]bool, n)
	var groups []CycleGroup
	for _, scc := range sccs {
		if len(scc) == 1 && !g.hasSelfLoop(scc[0]) {
			continue
		}
		sort.Ints(scc)
		for _, v := range scc {
			cyclic[v] = true
		}
		members := make([]Target, len(scc))
		for i, v := range scc {
			members[i] = g.set.At(v)
		}
		groups = append(groups, CycleGroup{Members: members})
	}
	sort.Slice(groups, func(i, j int) bool {
		gi, _ := g.set.lookup(groups[i].Members[0].key())
		gj, _ := g.set.lookup(groups[j].Members[0].key())
		return gi < gj
	})

	// Kahn over the non-cyclic part. Edges touching a cyclic endpoint are
	// dropped: cyclic targets are never scheduled, and edges into a cycle
	// are treated as satisfied.
	indeg := make([]int, n)
	consumers := make([][]int, n)
	for v := 0; v < n; v++ {
		if cyclic[v] {
			continue
		}
		for _, d := range g.deps[v] {
			if cyclic[d] {
				continue
			}
			indeg[v]++
			consumers[d] = append(consumers[d], v)
		}
	}

	var ready []int
	for v := 0; v < n; v++ {
		if !cyclic[v] && indeg[v] == 0 {
			ready = append(ready, v)
		}
	}

	order := make([]int, 0, n)
	for len(ready) > 0 {
		v := ready[0]
		ready = ready[1:]
		order = append(order, v)
		for _, c := range consumers[v] {
			indeg[c]--
			if indeg[c] == 0 {
				i := sort.SearchInts(ready, c)
				ready = append(ready, 0)
				copy(ready[i+1:], ready[i:])
				ready[i] = c
			}
		}
	}

	return &Schedule{Order: order, Cycles: groups}
}

func (g *Graph) hasSelfLoop(v int) bool {
	for _, d := range g.deps[v] {
		if d == v {
			return true
		}
	}
	return false
}

// tarjan finds strongly connected components. Single-node components
// without self-loops are not cycles; the caller filters them.
func (g *Graph) tarjan() [][]int {
	n := g.set.Len()
	const unvisited = -1

	var (
		next    int
		stack   []int
		indices = make([]int, n)
		lowlink = make([]int, n)
		onStack = make([]bool, n)
		sccs    [][]int
	)
	for i := range indices {
		indices[i] = unvisited
	}

	var strongConnect func(v int)
	strongConnect = func(v int) {
		indices[v] = next
		lowlink[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.deps[v] {
			if indices[w] == unvisited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for v := 0; v < n; v++ {
		if indices[v] == unvisited {
			strongConnect(v)
		}
	}
	return sccs
}
