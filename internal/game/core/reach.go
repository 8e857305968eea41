package core

// Reachable performs a movement-budget-bounded flood fill from start and
// returns, for every reachable hex, the movement remaining when stopping
// there. The start hex is included with the full budget. A hex is kept only
// when strictly more remaining budget is found than previously recorded.
//
// zoc, when non-nil, marks hexes inside an enemy zone of control: entering
// one consumes all remaining movement, layered on top of the terrain cost.
func Reachable(start HexCoord, budget int, cost CostFunc, inBounds BoundsFunc, zoc ZoneFunc) map[HexCoord]int {
	best := map[HexCoord]int{start: budget}
	if budget <= 0 {
		return best
	}

	frontier := []HexCoord{start}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		remaining := best[cur]
		if remaining <= 0 {
			continue
		}

		for _, n := range cur.Neighbors() {
			if inBounds != nil && !inBounds(n) {
				continue
			}
			c := cost(n)
			if c >= CostImpassable {
				continue
			}

			if c > remaining {
				continue
			}
			after := remaining - c
			if zoc != nil && zoc(n) {
				// Entering an enemy zone of control drains the
				// mover's entire remaining allowance, on top of the
				// terrain cost the hex must still be affordable for.
				after = 0
			}

			if prev, seen := best[n]; seen && prev >= after {
				continue
			}
			best[n] = after
			frontier = append(frontier, n)
		}
	}

	return best
}
