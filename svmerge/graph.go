package svmerge

// unionFind is a disjoint-set forest over call ids 0..n-1 with path
// compression and union by rank.  Each set is one connected component of the
// overlap graph.
type unionFind struct {
	parent []int32
	rank   []uint8
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{parent: make([]int32, n), rank: make([]uint8, n)}
	for i := range u.parent {
		u.parent[i] = int32(i)
	}
	return u
}

func (u *unionFind) find(x int) int {
	root := x
	for int(u.parent[root]) != root {
		root = int(u.parent[root])
	}
	for int(u.parent[x]) != root {
		next := int(u.parent[x])
		u.parent[x] = int32(root)
		x = next
	}
	return root
}

// union joins the sets holding a and b.  It returns false if they were
// already joined.
func (u *unionFind) union(a, b int) bool {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return false
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = int32(rb)
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = int32(ra)
	default:
		u.parent[rb] = int32(ra)
		u.rank[ra]++
	}
	return true
}

// components returns the sets, ordered by their smallest member.  Members are
// in ascending order.
func (u *unionFind) components() [][]int {
	var (
		comps  [][]int
		byRoot = map[int]int{}
	)
	for i := range u.parent {
		root := u.find(i)
		c, ok := byRoot[root]
		if !ok {
			c = len(comps)
			byRoot[root] = c
			comps = append(comps, nil)
		}
		comps[c] = append(comps[c], i)
	}
	return comps
}
