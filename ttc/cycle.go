package ttc

// follow walks next from start and returns the first cycle it closes. The
// path is kept in an arena with a node -> index map, so the repeated suffix
// is found with one lookup instead of a rescan.
//
// Since next is a function, every walk ends in exactly one cycle; a
// self-loop comes back as a one-node cycle.
func follow(start Pair, next func(Pair) Pair) []Pair {
	pos := make(map[Pair]int)
	path := make([]Pair, 0, 8)

	cur := start
	for {
		if i, seen := pos[cur]; seen {
			return path[i:]
		}
		pos[cur] = len(path)
		path = append(path, cur)
		cur = next(cur)
	}
}

// canonical returns a copy of cycle rotated to begin at its smallest node.
// Nodes of a cycle are distinct, so the smallest node fixes the minimal
// rotation.
func canonical(cycle []Pair) []Pair {
	k := 0
	for i := 1; i < len(cycle); i++ {
		if comparePairs(cycle[i], cycle[k]) < 0 {
			k = i
		}
	}

	out := make([]Pair, 0, len(cycle))
	out = append(out, cycle[k:]...)
	out = append(out, cycle[:k]...)

	return out
}
