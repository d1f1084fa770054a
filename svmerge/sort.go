package svmerge

import (
	"github.com/biogo/store/llrb"
	"github.com/grailbio/svdistil/variant"
)

// svKey orders SV records by (Low, High).  seq breaks ties so that equal
// positions keep cluster order.
type svKey struct {
	rec *SVRecord
	seq int
}

func (k svKey) Compare(other llrb.Comparable) int {
	o := other.(svKey)
	if c := variant.Compare(k.rec.Low, o.rec.Low); c != 0 {
		return c
	}
	if c := variant.Compare(k.rec.High, o.rec.High); c != 0 {
		return c
	}
	return k.seq - o.seq
}

func sortSVRecords(recs []SVRecord) {
	var tree llrb.Tree
	for i := range recs {
		tree.Insert(svKey{rec: &recs[i], seq: i})
	}
	sorted := make([]SVRecord, 0, len(recs))
	tree.Do(func(c llrb.Comparable) bool {
		sorted = append(sorted, *c.(svKey).rec)
		return false
	})
	copy(recs, sorted)
}

// cnvKey orders CNV records by (Chrom, Start, End).
type cnvKey struct {
	rec *CNVRecord
	seq int
}

func (k cnvKey) Compare(c llrb.Comparable) int {
	o := c.(cnvKey)
	switch {
	case k.rec.Chrom < o.rec.Chrom:
		return -1
	case k.rec.Chrom > o.rec.Chrom:
		return 1
	case k.rec.Start != o.rec.Start:
		return k.rec.Start - o.rec.Start
	case k.rec.End != o.rec.End:
		return k.rec.End - o.rec.End
	}
	return k.seq - o.seq
}

func sortCNVRecords(recs []CNVRecord) {
	var tree llrb.Tree
	for i := range recs {
		tree.Insert(cnvKey{rec: &recs[i], seq: i})
	}
	sorted := make([]CNVRecord, 0, len(recs))
	tree.Do(func(c llrb.Comparable) bool {
		sorted = append(sorted, *c.(cnvKey).rec)
		return false
	})
	copy(recs, sorted)
}
