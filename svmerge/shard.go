package svmerge

import (
	"sort"
	"sync/atomic"

	"github.com/grailbio/base/traverse"
)

// edge joins two matching calls, a < b.
type edge struct{ a, b int32 }

// shards groups call ids by key.  Calls with different keys can never match,
// so each group is searched independently.  Groups are returned in key order
// and ids within a group ascend.
func shards(n int, key func(id int) string) [][]int {
	byKey := map[string][]int{}
	for id := 0; id < n; id++ {
		k := key(id)
		byKey[k] = append(byKey[k], id)
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	groups := make([][]int, len(keys))
	for i, k := range keys {
		groups[i] = byKey[k]
	}
	return groups
}

// findEdges runs candidates on every call and keeps the hits for which match
// returns true, in parallel over the shards.  The result holds the distinct
// edges of each shard.  candidates and match must be safe for concurrent use.
func (b *Batch) findEdges(groups [][]int, total int, candidates func(id int) []int, match func(a, b int) bool) ([][]edge, error) {
	nJobs := b.parallelism()
	if nJobs > len(groups) {
		nJobs = len(groups)
	}
	if nJobs == 0 {
		return nil, nil
	}
	var (
		edges = make([][]edge, len(groups))
		stats = make([]Stats, nJobs)
		done  int64
	)
	err := traverse.Each(nJobs, func(jobIdx int) error {
		for shardIdx := jobIdx; shardIdx < len(groups); shardIdx += nJobs {
			var shardEdges []edge
			for _, id := range groups[shardIdx] {
				hits := candidates(id)
				stats[jobIdx].Candidates += len(hits)
				for _, h := range hits {
					if h == id || !match(id, h) {
						continue
					}
					if h < id {
						shardEdges = append(shardEdges, edge{int32(h), int32(id)})
					} else {
						shardEdges = append(shardEdges, edge{int32(id), int32(h)})
					}
				}
				if n := atomic.AddInt64(&done, 1); n%progressInterval == 0 {
					b.Printf("searched %d of %d calls", n, total)
				}
			}
			edges[shardIdx] = dedupEdges(shardEdges)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, s := range stats {
		b.Stats = b.Stats.Merge(s)
	}
	return edges, nil
}

func dedupEdges(edges []edge) []edge {
	if len(edges) == 0 {
		return nil
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].a != edges[j].a {
			return edges[i].a < edges[j].a
		}
		return edges[i].b < edges[j].b
	})
	out := edges[:1]
	for _, e := range edges[1:] {
		if e != out[len(out)-1] {
			out = append(out, e)
		}
	}
	return out
}

// cluster joins the edges found by findEdges and returns the components of n
// calls.
func (b *Batch) cluster(n int, edges [][]edge) [][]int {
	u := newUnionFind(n)
	for _, shardEdges := range edges {
		b.Stats.Edges += len(shardEdges)
		for _, e := range shardEdges {
			u.union(int(e.a), int(e.b))
		}
	}
	comps := u.components()
	for _, c := range comps {
		b.Stats.Clusters++
		if len(c) == 1 {
			b.Stats.Singletons++
		}
		if len(c) > b.Stats.LargestCluster {
			b.Stats.LargestCluster = len(c)
		}
	}
	return comps
}
