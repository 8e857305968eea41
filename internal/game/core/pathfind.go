package core

import (
	"container/heap"
	"math"
)

// CostImpassable marks a hex that can never be entered.
const CostImpassable = math.MaxInt32

// NoCostLimit disables the maxCost ceiling on a path search.
const NoCostLimit = -1

// CostFunc returns the cost of entering a hex, or CostImpassable.
// Costs must be at least 1 so the distance heuristic stays admissible.
type CostFunc func(HexCoord) int

// BoundsFunc reports whether a hex is part of the searchable map.
// A nil BoundsFunc means the grid is unbounded.
type BoundsFunc func(HexCoord) bool

// ZoneFunc reports whether a hex lies inside an enemy zone of control.
type ZoneFunc func(HexCoord) bool

type pathNode struct {
	coord HexCoord
	g     int // cost from start
	h     int // heuristic to goal
	index int
}

type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	fi, fj := pq[i].g+pq[i].h, pq[j].g+pq[j].h
	if fi != fj {
		return fi < fj
	}
	// Tie-break equal f-scores by lower heuristic: prefer nodes closer
	// to the goal.
	return pq[i].h < pq[j].h
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*pq)
	*pq = append(*pq, n)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*pq = old[:len(old)-1]
	return n
}

// FindPath runs an A* search from start to goal. cost is the per-hex entry
// cost (the start hex is free). maxCost, when not NoCostLimit, is a hard
// ceiling on total path cost. The returned path includes both endpoints.
// The second return value is false when the goal is unreachable or every
// route exceeds maxCost.
func FindPath(start, goal HexCoord, cost CostFunc, maxCost int, inBounds BoundsFunc) ([]HexCoord, bool) {
	if start == goal {
		return []HexCoord{start}, true
	}
	if inBounds != nil && (!inBounds(start) || !inBounds(goal)) {
		return nil, false
	}

	open := &pathQueue{}
	heap.Init(open)
	heap.Push(open, &pathNode{coord: start, g: 0, h: Distance(start, goal)})

	gScore := map[HexCoord]int{start: 0}
	cameFrom := map[HexCoord]HexCoord{}
	closed := map[HexCoord]bool{}

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if closed[current.coord] {
			continue
		}
		if current.coord == goal {
			return rebuildPath(cameFrom, goal), true
		}
		closed[current.coord] = true

		for _, n := range current.coord.Neighbors() {
			if closed[n] {
				continue
			}
			if inBounds != nil && !inBounds(n) {
				continue
			}
			c := cost(n)
			if c >= CostImpassable {
				continue
			}
			tentative := current.g + c
			if maxCost != NoCostLimit && tentative > maxCost {
				continue
			}
			if best, seen := gScore[n]; seen && tentative >= best {
				continue
			}
			gScore[n] = tentative
			cameFrom[n] = current.coord
			heap.Push(open, &pathNode{coord: n, g: tentative, h: Distance(n, goal)})
		}
	}

	return nil, false
}

func rebuildPath(cameFrom map[HexCoord]HexCoord, goal HexCoord) []HexCoord {
	path := []HexCoord{goal}
	cur := goal
	for {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	// Reverse into start-to-goal order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
