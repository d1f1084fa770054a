package interval

import (
	"fmt"
	"sort"

	itree "github.com/biogo/store/interval"
)

// element is a tree entry. start and end are 0-based, half-open.
type element struct {
	id         uintptr
	start, end int
}

func (e element) Overlap(b itree.IntRange) bool { return e.start < b.End && b.Start < e.end }
func (e element) ID() uintptr                   { return e.id }
func (e element) Range() itree.IntRange         { return itree.IntRange{Start: e.start, End: e.end} }

// query is a half-open probe range.
type query struct{ start, end int }

func (q query) Overlap(b itree.IntRange) bool { return q.start < b.End && b.Start < q.end }

// Tree maps half-open intervals on named chromosomes to integer ids.  All
// Inserts must happen before Build; queries are only valid after Build.
// A built tree is safe for concurrent queries.
type Tree struct {
	byChrom map[string]*itree.IntTree
	n       int
	built   bool
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{byChrom: map[string]*itree.IntTree{}}
}

// Insert adds [start, end) on chrom with the given id.  Empty or inverted
// intervals are rejected.
func (t *Tree) Insert(chrom string, start, end, id int) error {
	if t.built {
		panic("interval.Tree: Insert after Build")
	}
	if start >= end {
		return fmt.Errorf("interval.Tree: null interval [%d, %d) on %s", start, end, chrom)
	}
	tr := t.byChrom[chrom]
	if tr == nil {
		tr = &itree.IntTree{}
		t.byChrom[chrom] = tr
	}
	if err := tr.Insert(element{id: uintptr(id), start: start, end: end}, true); err != nil {
		return fmt.Errorf("interval.Tree: insert [%d, %d) on %s: %v", start, end, chrom, err)
	}
	t.n++
	return nil
}

// Build finalizes the tree.
func (t *Tree) Build() {
	for _, tr := range t.byChrom {
		tr.AdjustRanges()
	}
	t.built = true
}

// Len returns the number of inserted intervals.
func (t *Tree) Len() int { return t.n }

// Chroms returns the chromosomes that have at least one interval, sorted.
func (t *Tree) Chroms() []string {
	chroms := make([]string, 0, len(t.byChrom))
	for c := range t.byChrom {
		chroms = append(chroms, c)
	}
	sort.Strings(chroms)
	return chroms
}

// Query returns the ids of intervals on chrom that contain pos, sorted
// ascending.
func (t *Tree) Query(chrom string, pos int) []int {
	return t.QueryRange(chrom, pos, pos+1)
}

// QueryRange returns the ids of intervals on chrom that share at least one
// position with [start, end), sorted ascending.
func (t *Tree) QueryRange(chrom string, start, end int) []int {
	if !t.built {
		panic("interval.Tree: query before Build")
	}
	tr := t.byChrom[chrom]
	if tr == nil || start >= end {
		return nil
	}
	hits := tr.Get(query{start: start, end: end})
	if len(hits) == 0 {
		return nil
	}
	ids := make([]int, len(hits))
	for i, h := range hits {
		ids[i] = int(h.ID())
	}
	sort.Ints(ids)
	return ids
}
