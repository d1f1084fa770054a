package interval

import "github.com/grailbio/svdistil/variant"

// WindowSpan returns the half-open 0-based window [start, end) searched
// around a 1-based breakend position pos.  The window is split so that
// window/2 positions fall before pos and the remainder after it; start is
// clamped at zero.
func WindowSpan(pos, window int) (start, end int) {
	wl := window / 2
	wr := window - wl
	start = pos - wl
	if start < 0 {
		start = 0
	}
	return start, pos + wr
}

// BreakendIndex holds two trees over a list of SVs: one over the windows
// around the low breakends and one over the windows around the high
// breakends.  Ids are indexes into the list.
type BreakendIndex struct {
	Low, High *Tree
	Window    int
}

// NewBreakendIndex builds the index.  window must be positive.
func NewBreakendIndex(svs []variant.SV, window int) (*BreakendIndex, error) {
	idx := &BreakendIndex{Low: NewTree(), High: NewTree(), Window: window}
	for i := range svs {
		sv := &svs[i]
		start, end := WindowSpan(sv.Low.Pos, window)
		if err := idx.Low.Insert(sv.Low.Chrom, start, end, i); err != nil {
			return nil, err
		}
		start, end = WindowSpan(sv.High.Pos, window)
		if err := idx.High.Insert(sv.High.Chrom, start, end, i); err != nil {
			return nil, err
		}
	}
	idx.Low.Build()
	idx.High.Build()
	return idx, nil
}

// Candidates returns, sorted ascending, the ids of indexed SVs whose low
// window contains sv's low position and whose high window contains sv's
// high position.  sv itself is included if it was indexed.
func (idx *BreakendIndex) Candidates(sv *variant.SV) []int {
	lo := idx.Low.Query(sv.Low.Chrom, sv.Low.Pos)
	if len(lo) == 0 {
		return nil
	}
	hi := idx.High.Query(sv.High.Chrom, sv.High.Pos)
	return intersectSorted(lo, hi)
}

func intersectSorted(a, b []int) []int {
	var out []int
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
